package exchange

import (
	"context"
	"fmt"
	"math/big"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// SessionConfig describes one two-party exchange run locally.
type SessionConfig struct {
	Group string

	// Toy curve coefficients, modulus and generator.
	A, B, P *big.Int
	Gx, Gy  *big.Int

	// Private scalars; random ones are drawn when nil.
	AlicePrivate *big.Int
	BobPrivate   *big.Int

	Fold      bool
	Stepwise  bool
	SessionID []byte
}

// Outcome holds both parties' results of a session.
type Outcome struct {
	Alice *Result
	Bob   *Result
}

// Parties of every local session.
var (
	Alice = &Party{IDStr: "alice", Name: "Alice"}
	Bob   = &Party{IDStr: "bob", Name: "Bob"}
)

func (cfg *SessionConfig) parameters(self, peer ecdh.PartyID, private *big.Int) *ecdh.Parameters {
	return &ecdh.Parameters{
		PartyID:       self,
		Peer:          peer,
		Group:         cfg.Group,
		A:             cfg.A,
		B:             cfg.B,
		P:             cfg.P,
		Gx:            cfg.Gx,
		Gy:            cfg.Gy,
		PrivateScalar: private,
		Fold:          cfg.Fold,
		Stepwise:      cfg.Stepwise,
		SessionID:     cfg.SessionID,
	}
}

// RunSession performs a complete exchange between Alice and Bob and checks
// that both derived the same shared secret.
func RunSession(cfg SessionConfig) (*Outcome, error) {
	parties := []ecdh.PartyID{Alice, Bob}
	sms := make([]ecdh.StateMachine, len(parties))
	outMsgs := make([][]ecdh.Message, len(parties))

	privates := []*big.Int{cfg.AlicePrivate, cfg.BobPrivate}
	for i := range parties {
		params := cfg.parameters(parties[i], parties[1-i], privates[i])
		var err error
		sms[i], outMsgs[i], err = NewStateMachine(params)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", parties[i].ID(), err)
		}
	}

	sms, err := routeMessages(parties, sms, outMsgs)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(parties))
	for i, sm := range sms {
		res, ok := sm.Result().(*Result)
		if !ok || res == nil {
			return nil, fmt.Errorf("%s did not complete (%s): %w", parties[i].ID(), sm.Details(), ecdh.ErrInvalidParameters)
		}
		results[i] = res
	}

	out := &Outcome{Alice: results[0], Bob: results[1]}
	if !out.Alice.SharedSecret.Equal(out.Bob.SharedSecret) {
		return out, ecdh.ErrSecretMismatch
	}

	log.WithFields(log.Fields{
		"group":    cfg.Group,
		"alicePub": out.Alice.PublicKey.String(),
		"bobPub":   out.Bob.PublicKey.String(),
	}).Debug("exchange: session complete")
	return out, nil
}

// routeMessages delivers every outgoing message to its recipients.
func routeMessages(parties []ecdh.PartyID, sms []ecdh.StateMachine, outMsgs [][]ecdh.Message) ([]ecdh.StateMachine, error) {
	allMsgs := []ecdh.Message{}
	for _, msgs := range outMsgs {
		allMsgs = append(allMsgs, msgs...)
	}

	for i := 0; i < len(sms); i++ {
		for _, msg := range allMsgs {
			// Skip own messages
			if msg.From().ID() == parties[i].ID() {
				continue
			}
			if !msg.IsBroadcast() && !addressedTo(msg, parties[i]) {
				continue
			}

			next, _, err := sms[i].Update(msg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", parties[i].ID(), err)
			}
			sms[i] = next
		}
	}
	return sms, nil
}

func addressedTo(msg ecdh.Message, party ecdh.PartyID) bool {
	for _, dest := range msg.To() {
		if dest.ID() == party.ID() {
			return true
		}
	}
	return false
}

// RunBatch runs independent sessions concurrently. Each session keeps its
// arithmetic on a single goroutine; results are returned in input order.
func RunBatch(ctx context.Context, cfgs []SessionConfig, workers int) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range cfgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := RunSession(cfgs[i])
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
