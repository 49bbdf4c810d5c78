package exchange

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// round2 accepts the peer's public key and derives the shared secret.
func (s *state) round2(msg ecdh.Message) (ecdh.StateMachine, []ecdh.Message, error) {
	sender := msg.From()

	var payload publicKeyPayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		return nil, nil, ecdh.NewPartyError(sender, "undecodable payload", fmt.Errorf("%v: %w", err, ecdh.ErrMalformedInput))
	}
	if payload.Group != s.group.Name() {
		return nil, nil, ecdh.NewPartyError(sender, fmt.Sprintf("public key for group %q", payload.Group), ecdh.ErrInvalidMsg)
	}
	if !bytes.Equal(payload.SessionID, s.params.SessionID) {
		return nil, nil, ecdh.NewPartyError(sender, "session id mismatch", ecdh.ErrInvalidMsg)
	}

	// Decoding gives this party its own copy of the peer's key.
	peer, err := s.group.DecodeElement(payload.PublicKey)
	if err != nil {
		return nil, nil, ecdh.NewPartyError(sender, "invalid public key", err)
	}
	if peer.IsIdentity() {
		return nil, nil, ecdh.NewPartyError(sender, "public key is the identity", ecdh.ErrInvalidMsg)
	}
	s.peer = peer
	s.advance(PublicKeysExchanged)

	shared, err := s.derive(peer, s.private)
	if err != nil {
		return nil, nil, fmt.Errorf("derive shared secret: %w", err)
	}
	if shared.IsIdentity() {
		s.logger().Warn("exchange: shared secret is the identity")
	}
	s.shared = shared
	s.advance(SharedSecretDerived)

	return s, nil, nil
}
