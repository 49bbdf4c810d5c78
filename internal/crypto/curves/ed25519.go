package curves

import (
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"filippo.io/edwards25519"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// l = 2^252 + 27742317777372353535851937790883648493
var ed25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Ed25519 is the prime-order subgroup of edwards25519.
type Ed25519 struct{}

// NewEd25519 returns a new instance of the Ed25519 group.
func NewEd25519() Group {
	return &Ed25519{}
}

func (c *Ed25519) Name() string {
	return GroupEd25519
}

func (c *Ed25519) Order() *big.Int {
	return new(big.Int).Set(ed25519Order)
}

func (c *Ed25519) Generator() Element {
	return &Ed25519Element{p: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519) RandomScalar(r io.Reader) (*big.Int, error) {
	return randomScalar(r, ed25519Order)
}

func (c *Ed25519) ScalarMult(e Element, k *big.Int) (Element, error) {
	ee, ok := e.(*Ed25519Element)
	if !ok {
		return nil, fmt.Errorf("element of type %T: %w", e, ecdh.ErrInvalidParameters)
	}
	if k == nil || k.Sign() < 0 {
		return nil, fmt.Errorf("scalar %v: %w", k, ecdh.ErrInvalidScalar)
	}

	s, err := ed25519Scalar(k)
	if err != nil {
		return nil, err
	}
	res := edwards25519.NewIdentityPoint().ScalarMult(s, ee.p)
	return &Ed25519Element{p: res}, nil
}

func (c *Ed25519) DecodeElement(b []byte) (Element, error) {
	p, err := edwards25519.NewIdentityPoint().SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ecdh.ErrMalformedInput)
	}
	return &Ed25519Element{p: p}, nil
}

// ed25519Scalar converts k mod l to an edwards25519 scalar.
func ed25519Scalar(k *big.Int) (*edwards25519.Scalar, error) {
	// edwards25519 uses little-endian, big.Int.Bytes() is big-endian.
	bytes := new(big.Int).Mod(k, ed25519Order).Bytes()

	var buf [32]byte
	for i := 0; i < len(bytes); i++ {
		buf[len(bytes)-1-i] = bytes[i]
	}
	return edwards25519.NewScalar().SetCanonicalBytes(buf[:])
}

// Ed25519Element wraps an edwards25519 point.
type Ed25519Element struct {
	p *edwards25519.Point
}

func (e *Ed25519Element) Bytes() []byte {
	return e.p.Bytes()
}

func (e *Ed25519Element) Equal(other Element) bool {
	o, ok := other.(*Ed25519Element)
	return ok && e.p.Equal(o.p) == 1
}

func (e *Ed25519Element) IsIdentity() bool {
	return e.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (e *Ed25519Element) String() string {
	return hex.EncodeToString(e.Bytes())
}
