package ecdh

import (
	"errors"
	"testing"
)

// MockPartyID implements PartyID for testing purposes.
type MockPartyID struct {
	id      string
	moniker string
}

func (m *MockPartyID) ID() string {
	return m.id
}

func (m *MockPartyID) Moniker() string {
	return m.moniker
}

// MockMessage implements Message for testing purposes.
type MockMessage struct {
	msgType     string
	from        PartyID
	to          []PartyID
	isBroadcast bool
	payload     []byte
	round       uint32
}

func (m *MockMessage) Type() string {
	return m.msgType
}

func (m *MockMessage) From() PartyID {
	return m.from
}

func (m *MockMessage) To() []PartyID {
	return m.to
}

func (m *MockMessage) IsBroadcast() bool {
	return m.isBroadcast
}

func (m *MockMessage) Payload() []byte {
	return m.payload
}

func (m *MockMessage) RoundNumber() uint32 {
	return m.round
}

func TestInterfaces(t *testing.T) {
	var _ PartyID = &MockPartyID{}
	var _ Message = &MockMessage{}

	pid := &MockPartyID{id: "alice", moniker: "Alice"}
	if pid.ID() != "alice" {
		t.Errorf("expected alice, got %s", pid.ID())
	}

	msg := &MockMessage{
		msgType: "test",
		from:    pid,
		to:      []PartyID{&MockPartyID{id: "bob"}},
		round:   1,
	}

	if msg.Type() != "test" {
		t.Errorf("expected test, got %s", msg.Type())
	}
	if msg.IsBroadcast() {
		t.Error("expected p2p message")
	}
}

func TestPartyError(t *testing.T) {
	bob := &MockPartyID{id: "bob"}

	err := NewPartyError(bob, "bad public key", ErrInvalidMsg)
	if !errors.Is(err, ErrInvalidMsg) {
		t.Fatal("PartyError should unwrap to its cause")
	}
	if got, want := err.Error(), "party bob: bad public key: invalid message received"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	var pe *PartyError
	if !errors.As(error(err), &pe) || pe.PartyID.ID() != "bob" {
		t.Error("errors.As should recover the blamed party")
	}

	bare := NewPartyError(bob, "duplicate message", nil)
	if got, want := bare.Error(), "party bob: duplicate message"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
