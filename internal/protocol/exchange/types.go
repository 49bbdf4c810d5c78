package exchange

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// MsgPublicKey is the type string of the only protocol message.
const MsgPublicKey = "ExchangePublicKey"

// Stage is the position of a party in the exchange.
type Stage int

const (
	ParametersAgreed Stage = iota
	GeneratorChosen
	PrivateKeysChosen
	PublicKeysExchanged
	SharedSecretDerived
)

func (s Stage) String() string {
	switch s {
	case ParametersAgreed:
		return "ParametersAgreed"
	case GeneratorChosen:
		return "GeneratorChosen"
	case PrivateKeysChosen:
		return "PrivateKeysChosen"
	case PublicKeysExchanged:
		return "PublicKeysExchanged"
	case SharedSecretDerived:
		return "SharedSecretDerived"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Result is what a party holds once the exchange completes.
type Result struct {
	Group         string
	PublicKey     curves.Element
	PeerPublicKey curves.Element
	SharedSecret  curves.Element
}

// Key derives n bytes of key material from the shared secret with
// HKDF-SHA256. Both parties obtain the same bytes for the same info.
func (r *Result) Key(info []byte, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("key length %d: %w", n, ecdh.ErrInvalidParameters)
	}
	out := make([]byte, n)
	kdf := hkdf.New(sha256.New, r.SharedSecret.Bytes(), []byte(r.Group), info)
	if _, err := io.ReadFull(kdf, out); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return out, nil
}

// publicKeyPayload is the JSON body of a MsgPublicKey message.
type publicKeyPayload struct {
	Group     string `json:"group"`
	SessionID []byte `json:"sessionId,omitempty"`
	PublicKey []byte `json:"publicKey"`
}

// ExchangeMessage is the concrete implementation of ecdh.Message.
type ExchangeMessage struct {
	FromParty  ecdh.PartyID
	ToParties  []ecdh.PartyID
	IsBcast    bool
	Data       []byte
	TypeString string
	RoundNum   uint32
}

func (m *ExchangeMessage) Type() string {
	return m.TypeString
}

func (m *ExchangeMessage) From() ecdh.PartyID {
	return m.FromParty
}

func (m *ExchangeMessage) To() []ecdh.PartyID {
	return m.ToParties
}

func (m *ExchangeMessage) IsBroadcast() bool {
	return m.IsBcast
}

func (m *ExchangeMessage) Payload() []byte {
	return m.Data
}

func (m *ExchangeMessage) RoundNumber() uint32 {
	return m.RoundNum
}

// Party is a minimal ecdh.PartyID.
type Party struct {
	IDStr string
	Name  string
}

func (p *Party) ID() string      { return p.IDStr }
func (p *Party) Moniker() string { return p.Name }

// NewParty returns a party whose moniker is its id.
func NewParty(id string) *Party {
	return &Party{IDStr: id, Name: id}
}
