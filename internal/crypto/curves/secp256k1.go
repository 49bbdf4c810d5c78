package curves

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// Secp256k1 is the secp256k1 group backed by decred's implementation.
type Secp256k1 struct{}

// NewSecp256k1 returns a new instance of the Secp256k1 group.
func NewSecp256k1() Group {
	return &Secp256k1{}
}

// Secp256k1Params returns secp256k1 as plain curve parameters and its
// generator, so the generic arithmetic can run on a real curve.
func Secp256k1Params() (*Params, Point) {
	cp := secp256k1.S256().Params()
	params, err := NewParams(big.NewInt(0), cp.B, cp.P)
	if err != nil {
		panic(err)
	}
	return params, NewPoint(cp.Gx, cp.Gy)
}

func (c *Secp256k1) Name() string {
	return GroupSecp256k1
}

func (c *Secp256k1) Order() *big.Int {
	return new(big.Int).Set(secp256k1.S256().Params().N)
}

func (c *Secp256k1) Generator() Element {
	var g secp256k1.JacobianPoint
	one := new(secp256k1.ModNScalar).SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &g)
	g.ToAffine()
	return &Secp256k1Element{p: g}
}

func (c *Secp256k1) RandomScalar(r io.Reader) (*big.Int, error) {
	return randomScalar(r, c.Order())
}

func (c *Secp256k1) ScalarMult(e Element, k *big.Int) (Element, error) {
	se, ok := e.(*Secp256k1Element)
	if !ok {
		return nil, fmt.Errorf("element of type %T: %w", e, ecdh.ErrInvalidParameters)
	}
	if k == nil || k.Sign() < 0 {
		return nil, fmt.Errorf("scalar %v: %w", k, ecdh.ErrInvalidScalar)
	}

	reduced := new(big.Int).Mod(k, secp256k1.S256().Params().N)
	s := new(secp256k1.ModNScalar)
	s.SetByteSlice(reduced.Bytes())

	var out secp256k1.JacobianPoint
	in := se.p
	secp256k1.ScalarMultNonConst(s, &in, &out)
	out.ToAffine()
	return &Secp256k1Element{p: out}, nil
}

// DecodeElement parses 0x00 (identity) or a SEC1 public key.
func (c *Secp256k1) DecodeElement(b []byte) (Element, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return &Secp256k1Element{}, nil
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ecdh.ErrMalformedInput)
	}
	var p secp256k1.JacobianPoint
	pub.AsJacobian(&p)
	return &Secp256k1Element{p: p}, nil
}

// Secp256k1Element is an affine secp256k1 point.
type Secp256k1Element struct {
	p secp256k1.JacobianPoint
}

func (e *Secp256k1Element) IsIdentity() bool {
	return e.p.Z.IsZero() || (e.p.X.IsZero() && e.p.Y.IsZero())
}

// Bytes returns the compressed SEC1 encoding, or 0x00 for the identity.
func (e *Secp256k1Element) Bytes() []byte {
	if e.IsIdentity() {
		return []byte{0x00}
	}
	return secp256k1.NewPublicKey(&e.p.X, &e.p.Y).SerializeCompressed()
}

func (e *Secp256k1Element) Equal(other Element) bool {
	o, ok := other.(*Secp256k1Element)
	return ok && bytes.Equal(e.Bytes(), o.Bytes())
}

func (e *Secp256k1Element) String() string {
	return hex.EncodeToString(e.Bytes())
}
