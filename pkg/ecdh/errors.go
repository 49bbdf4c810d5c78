package ecdh

import (
	"errors"
	"fmt"
)

// Arithmetic errors.
var (
	ErrNotInvertible   = errors.New("value has no modular inverse")
	ErrInvalidModulus  = errors.New("modulus must be at least 2")
	ErrEmptyCurve      = errors.New("no points to perform operation")
	ErrIndexOutOfRange = errors.New("point index out of range")
	ErrInvalidScalar   = errors.New("invalid scalar")
	ErrMalformedInput  = errors.New("malformed input")
)

// Protocol errors.
var (
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrUnknownGroup      = errors.New("unknown group")
	ErrInvalidMsg        = errors.New("invalid message received")
	ErrProtocolDone      = errors.New("protocol already finished")
	ErrSecretMismatch    = errors.New("shared secrets do not match")
)

// PartyError represents an error caused by a specific party.
// It lets the caller tell a misbehaving counterpart apart from a local failure.
type PartyError struct {
	PartyID PartyID
	Reason  string
	Err     error
}

func (e *PartyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("party %s: %s: %v", e.PartyID.ID(), e.Reason, e.Err)
	}
	return fmt.Sprintf("party %s: %s", e.PartyID.ID(), e.Reason)
}

func (e *PartyError) Unwrap() error {
	return e.Err
}

// NewPartyError creates a new PartyError.
func NewPartyError(party PartyID, reason string, err error) *PartyError {
	return &PartyError{
		PartyID: party,
		Reason:  reason,
		Err:     err,
	}
}
