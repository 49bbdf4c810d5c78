package exchange

import (
	"errors"
	"math/big"
	"testing"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

func toyParams(self, peer ecdh.PartyID, private int64) *ecdh.Parameters {
	return &ecdh.Parameters{
		PartyID:       self,
		Peer:          peer,
		Group:         curves.GroupToy,
		A:             big.NewInt(2),
		B:             big.NewInt(3),
		P:             big.NewInt(97),
		Gx:            big.NewInt(3),
		Gy:            big.NewInt(6),
		PrivateScalar: big.NewInt(private),
		Fold:          true,
		SessionID:     []byte("test-session"),
	}
}

func TestRound1(t *testing.T) {
	sm, msgs, err := NewStateMachine(toyParams(Alice, Bob, 7))
	if err != nil {
		t.Fatalf("Failed to create state machine: %v", err)
	}

	if len(msgs) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(msgs))
	}
	msg := msgs[0]
	if msg.RoundNumber() != 1 || msg.Type() != MsgPublicKey {
		t.Errorf("unexpected message %s in round %d", msg.Type(), msg.RoundNumber())
	}
	if msg.IsBroadcast() || len(msg.To()) != 1 || msg.To()[0].ID() != "bob" {
		t.Errorf("public key must be addressed to the peer")
	}

	s, ok := sm.(*state)
	if !ok {
		t.Fatal("StateMachine is not of type *state")
	}
	if s.stage != PrivateKeysChosen {
		t.Errorf("expected stage PrivateKeysChosen, got %s", s.stage)
	}
	// 7 folds from G = 8G = (80, 87)
	if got := s.public.String(); got != "(80, 87)" {
		t.Errorf("public key = %s, want (80, 87)", got)
	}
	if sm.Result() != nil {
		t.Error("Result must be nil before the exchange completes")
	}
	if got := sm.Details(); got != "Exchange stage PrivateKeysChosen" {
		t.Errorf("Details() = %q", got)
	}
}

func TestRound2Transition(t *testing.T) {
	alice, aliceMsgs, err := NewStateMachine(toyParams(Alice, Bob, 5))
	if err != nil {
		t.Fatal(err)
	}
	bob, bobMsgs, err := NewStateMachine(toyParams(Bob, Alice, 7))
	if err != nil {
		t.Fatal(err)
	}

	// Own messages looped back are ignored.
	if next, out, err := alice.Update(aliceMsgs[0]); err != nil || next != alice || out != nil {
		t.Fatalf("own message should be ignored: %v", err)
	}

	alice, _, err = alice.Update(bobMsgs[0])
	if err != nil {
		t.Fatalf("alice update failed: %v", err)
	}
	bob, _, err = bob.Update(aliceMsgs[0])
	if err != nil {
		t.Fatalf("bob update failed: %v", err)
	}

	ra, ok := alice.Result().(*Result)
	if !ok {
		t.Fatal("alice did not finish")
	}
	rb, ok := bob.Result().(*Result)
	if !ok {
		t.Fatal("bob did not finish")
	}

	if !ra.SharedSecret.Equal(rb.SharedSecret) {
		t.Fatalf("shared secrets differ: %s vs %s", ra.SharedSecret, rb.SharedSecret)
	}
	if got := ra.SharedSecret.String(); got != "(80, 87)" {
		t.Errorf("shared secret = %s, want (80, 87)", got)
	}
	if !ra.PeerPublicKey.Equal(rb.PublicKey) || !rb.PeerPublicKey.Equal(ra.PublicKey) {
		t.Error("peer public keys were not recorded")
	}

	if _, _, err := alice.Update(bobMsgs[0]); !errors.Is(err, ecdh.ErrProtocolDone) {
		t.Errorf("expected ErrProtocolDone, got %v", err)
	}
}

func TestInvalidParameters(t *testing.T) {
	cases := map[string]*ecdh.Parameters{
		"nil":          nil,
		"no peer":      {PartyID: Alice, Group: curves.GroupSecp256k1},
		"self":         {PartyID: Alice, Peer: Alice, Group: curves.GroupSecp256k1},
		"toy no curve": {PartyID: Alice, Peer: Bob, Group: curves.GroupToy},
	}
	for name, params := range cases {
		if _, _, err := NewStateMachine(params); !errors.Is(err, ecdh.ErrInvalidParameters) {
			t.Errorf("%s: expected ErrInvalidParameters, got %v", name, err)
		}
	}

	_, _, err := NewStateMachine(&ecdh.Parameters{PartyID: Alice, Peer: Bob, Group: "p521"})
	if !errors.Is(err, ecdh.ErrUnknownGroup) {
		t.Errorf("expected ErrUnknownGroup, got %v", err)
	}
}

func TestInvalidPrivateScalar(t *testing.T) {
	for _, k := range []int64{0, -3} {
		if _, _, err := NewStateMachine(toyParams(Alice, Bob, k)); !errors.Is(err, ecdh.ErrInvalidScalar) {
			t.Errorf("k=%d: expected ErrInvalidScalar, got %v", k, err)
		}
	}

	// Without the fold, 5 * (3, 6) is the identity.
	params := toyParams(Alice, Bob, 5)
	params.Fold = false
	if _, _, err := NewStateMachine(params); !errors.Is(err, ecdh.ErrInvalidScalar) {
		t.Errorf("expected ErrInvalidScalar for an identity public key, got %v", err)
	}
}

func TestRejectsBadMessages(t *testing.T) {
	_, bobMsgs, err := NewStateMachine(toyParams(Bob, Alice, 7))
	if err != nil {
		t.Fatal(err)
	}
	good := bobMsgs[0].(*ExchangeMessage)
	eve := NewParty("eve")

	identity := *good
	identity.Data = []byte(`{"group":"toy","sessionId":"dGVzdC1zZXNzaW9u","publicKey":"AA=="}`)

	cases := map[string]ExchangeMessage{
		"unknown sender": {FromParty: eve, ToParties: good.ToParties, Data: good.Data, TypeString: MsgPublicKey, RoundNum: 1},
		"wrong type":     {FromParty: Bob, ToParties: good.ToParties, Data: good.Data, TypeString: "Other", RoundNum: 1},
		"wrong round":    {FromParty: Bob, ToParties: good.ToParties, Data: good.Data, TypeString: MsgPublicKey, RoundNum: 2},
		"not json":       {FromParty: Bob, ToParties: good.ToParties, Data: []byte("{"), TypeString: MsgPublicKey, RoundNum: 1},
		"wrong group":    {FromParty: Bob, ToParties: good.ToParties, Data: []byte(`{"group":"ed25519"}`), TypeString: MsgPublicKey, RoundNum: 1},
		"wrong session":  {FromParty: Bob, ToParties: good.ToParties, Data: []byte(`{"group":"toy"}`), TypeString: MsgPublicKey, RoundNum: 1},
		"identity":       identity,
	}

	for name, msg := range cases {
		msg := msg
		alice, _, err := NewStateMachine(toyParams(Alice, Bob, 5))
		if err != nil {
			t.Fatal(err)
		}

		_, _, err = alice.Update(&msg)
		var pe *ecdh.PartyError
		if !errors.As(err, &pe) {
			t.Errorf("%s: expected a PartyError, got %v", name, err)
			continue
		}
		if pe.PartyID.ID() != msg.FromParty.ID() {
			t.Errorf("%s: blamed %s", name, pe.PartyID.ID())
		}
		if alice.Result() != nil {
			t.Errorf("%s: rejected message must not complete the exchange", name)
		}
	}
}

func TestStageString(t *testing.T) {
	want := []string{"ParametersAgreed", "GeneratorChosen", "PrivateKeysChosen", "PublicKeysExchanged", "SharedSecretDerived"}
	for i, w := range want {
		if got := Stage(i).String(); got != w {
			t.Errorf("Stage(%d) = %s, want %s", i, got, w)
		}
	}
	if got := Stage(9).String(); got != "Stage(9)" {
		t.Errorf("unknown stage renders as %s", got)
	}
}
