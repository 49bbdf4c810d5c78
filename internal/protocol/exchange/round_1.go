package exchange

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// round1 publishes the public key to the peer.
func (s *state) round1() (ecdh.StateMachine, []ecdh.Message, error) {
	payload, err := json.Marshal(&publicKeyPayload{
		Group:     s.group.Name(),
		SessionID: s.params.SessionID,
		PublicKey: s.public.Bytes(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode public key: %w", err)
	}

	msg := &ExchangeMessage{
		FromParty:  s.params.PartyID,
		ToParties:  []ecdh.PartyID{s.params.Peer},
		IsBcast:    false,
		Data:       payload,
		TypeString: MsgPublicKey,
		RoundNum:   1,
	}

	s.logger().WithField("publicKey", s.public.String()).Debug("exchange: public key published")
	return s, []ecdh.Message{msg}, nil
}
