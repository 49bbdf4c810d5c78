package ecdh

import "math/big"

// PartyID represents a participant in a key exchange.
// It must be unique within a session.
type PartyID interface {
	// ID returns the unique string identifier for the party.
	ID() string

	// Moniker returns a human-readable name for the party (optional).
	Moniker() string
}

// Message is the generic interface for all protocol messages.
type Message interface {
	// Type returns a string identifier for the message type.
	Type() string

	// From returns the sender's PartyID.
	From() PartyID

	// To returns the intended recipients.
	// If nil or empty, the message is treated as a broadcast message.
	To() []PartyID

	// IsBroadcast returns true if the message is intended for all parties.
	IsBroadcast() bool

	// Payload returns the serialized data of the message.
	Payload() []byte

	// RoundNumber returns the protocol round this message belongs to.
	RoundNumber() uint32
}

// StateMachine is the core engine that drives the protocol.
// It follows a functional state transition pattern.
type StateMachine interface {
	// Update applies an incoming message to the current state.
	// It returns:
	// - next: The new state machine (the same machine once the exchange is done).
	// - out: A slice of messages to be sent to other parties.
	// - err: An error if the transition failed.
	Update(msg Message) (next StateMachine, out []Message, err error)

	// Result returns the final output of the protocol.
	// Returns nil if the protocol is not yet finished.
	Result() interface{}

	// Details returns metadata about the current state (e.g., "Exchange stage PublicKeysExchanged").
	Details() string
}

// Parameters holds the configuration for one party of a key exchange.
type Parameters struct {
	PartyID PartyID // The identity of the local party
	Peer    PartyID // The counterpart
	Group   string  // "toy", "secp256k1" or "ed25519"

	// Curve coefficients, modulus and generator. Only read by the toy group.
	A, B, P *big.Int
	Gx, Gy  *big.Int

	// PrivateScalar is the party's secret. A random one is drawn when nil.
	PrivateScalar *big.Int

	// Fold reproduces the demo's scalar convention, where a private key k
	// yields (k+1)*G because the fold starts from G itself.
	Fold bool

	// Stepwise routes toy-curve multiplication through a scratch point
	// sequence, appending every intermediate sum.
	Stepwise bool

	SessionID []byte // Unique session identifier
}
