package exchange

import (
	"crypto/rand"
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// maxDraws bounds how often a random private scalar is redrawn when it
// maps the generator to the identity.
const maxDraws = 64

type state struct {
	params *ecdh.Parameters
	group  curves.Group
	stage  Stage

	private *big.Int
	public  curves.Element
	peer    curves.Element
	shared  curves.Element
}

// NewStateMachine initializes one party of a key exchange.
// It derives the party's public key right away and returns the message
// carrying it to the peer.
func NewStateMachine(params *ecdh.Parameters) (ecdh.StateMachine, []ecdh.Message, error) {
	if params == nil || params.PartyID == nil || params.Peer == nil {
		return nil, nil, fmt.Errorf("party and peer are required: %w", ecdh.ErrInvalidParameters)
	}
	if params.PartyID.ID() == params.Peer.ID() {
		return nil, nil, fmt.Errorf("party %s cannot exchange with itself: %w", params.PartyID.ID(), ecdh.ErrInvalidParameters)
	}

	s := &state{params: params, stage: ParametersAgreed}
	if err := s.chooseGenerator(); err != nil {
		return nil, nil, err
	}
	if err := s.choosePrivateKey(); err != nil {
		return nil, nil, err
	}
	return s.round1()
}

func (s *state) logger() *log.Entry {
	return log.WithFields(log.Fields{
		"party": s.params.PartyID.ID(),
		"group": s.params.Group,
		"stage": s.stage,
	})
}

func (s *state) advance(stage Stage) {
	s.stage = stage
	s.logger().Debug("exchange: stage reached")
}

// chooseGenerator resolves the group both parties agreed on.
func (s *state) chooseGenerator() error {
	opts := curves.GroupOptions{Stepwise: s.params.Stepwise}
	if s.params.Group == curves.GroupToy {
		p := s.params
		if p.A == nil || p.B == nil || p.P == nil || p.Gx == nil || p.Gy == nil {
			return fmt.Errorf("toy group needs a, b, p and a generator: %w", ecdh.ErrInvalidParameters)
		}
		curveParams, err := curves.NewParams(p.A, p.B, p.P)
		if err != nil {
			return err
		}
		opts.Params = curveParams
		opts.Generator = curves.NewPoint(p.Gx, p.Gy)
	}

	group, err := curves.LookupGroup(s.params.Group, opts)
	if err != nil {
		return err
	}
	s.group = group
	s.advance(GeneratorChosen)
	return nil
}

// choosePrivateKey takes the configured scalar or draws one, and derives
// the public key from it.
func (s *state) choosePrivateKey() error {
	if k := s.params.PrivateScalar; k != nil {
		if k.Sign() < 1 {
			return fmt.Errorf("private scalar %s: %w", k, ecdh.ErrInvalidScalar)
		}
		public, err := s.derive(s.group.Generator(), k)
		if err != nil {
			return err
		}
		if public.IsIdentity() {
			return fmt.Errorf("private scalar %s maps the generator to the identity: %w", k, ecdh.ErrInvalidScalar)
		}
		s.private, s.public = new(big.Int).Set(k), public
		s.advance(PrivateKeysChosen)
		return nil
	}

	for i := 0; i < maxDraws; i++ {
		k, err := s.group.RandomScalar(rand.Reader)
		if err != nil {
			return fmt.Errorf("draw private scalar: %w", err)
		}
		public, err := s.derive(s.group.Generator(), k)
		if err != nil {
			return err
		}
		if !public.IsIdentity() {
			s.private, s.public = k, public
			s.advance(PrivateKeysChosen)
			return nil
		}
	}
	return fmt.Errorf("no usable private scalar after %d draws: %w", maxDraws, ecdh.ErrInvalidScalar)
}

// derive multiplies e by the private scalar, applying the demo fold.
func (s *state) derive(e curves.Element, k *big.Int) (curves.Element, error) {
	if s.params.Fold {
		k = new(big.Int).Add(k, big.NewInt(1))
	}
	return s.group.ScalarMult(e, k)
}

func (s *state) Update(msg ecdh.Message) (ecdh.StateMachine, []ecdh.Message, error) {
	if s.stage == SharedSecretDerived {
		return nil, nil, ecdh.ErrProtocolDone
	}

	sender := msg.From()
	if sender.ID() == s.params.PartyID.ID() {
		return s, nil, nil // Ignore own messages if looped back
	}
	if sender.ID() != s.params.Peer.ID() {
		return nil, nil, ecdh.NewPartyError(sender, "not part of this exchange", ecdh.ErrInvalidMsg)
	}
	if msg.RoundNumber() != 1 || msg.Type() != MsgPublicKey {
		return nil, nil, ecdh.NewPartyError(sender,
			fmt.Sprintf("unexpected message %s in round %d", msg.Type(), msg.RoundNumber()), ecdh.ErrInvalidMsg)
	}

	return s.round2(msg)
}

func (s *state) Result() interface{} {
	if s.stage != SharedSecretDerived {
		return nil
	}
	return &Result{
		Group:         s.group.Name(),
		PublicKey:     s.public,
		PeerPublicKey: s.peer,
		SharedSecret:  s.shared,
	}
}

func (s *state) Details() string {
	return fmt.Sprintf("Exchange stage %s", s.stage)
}
