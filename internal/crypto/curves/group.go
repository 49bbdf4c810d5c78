package curves

import (
	crand "crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// Element is a member of a Group.
type Element interface {
	// Bytes returns the canonical encoding of the element.
	Bytes() []byte

	// Equal reports whether both elements encode the same group member.
	Equal(other Element) bool

	// IsIdentity reports whether the element is the group identity.
	IsIdentity() bool

	String() string
}

// Group is the arithmetic a key exchange needs from a curve.
type Group interface {
	// Name returns the name of the group.
	Name() string

	// Generator returns the agreed base element G.
	Generator() Element

	// Order returns the order of G, or nil when it is not known.
	Order() *big.Int

	// RandomScalar draws a private scalar in [1, Order) or, when the
	// order is unknown, in [1, p).
	RandomScalar(r io.Reader) (*big.Int, error)

	// ScalarMult computes k * e.
	ScalarMult(e Element, k *big.Int) (Element, error)

	// DecodeElement parses an encoding produced by Element.Bytes.
	DecodeElement(b []byte) (Element, error)
}

// Group names understood by LookupGroup.
const (
	GroupToy       = "toy"
	GroupSecp256k1 = "secp256k1"
	GroupEd25519   = "ed25519"
)

// GroupOptions carries what a toy group needs. Named groups ignore it.
type GroupOptions struct {
	Params    *Params
	Generator Point
	Stepwise  bool
}

// LookupGroup returns a fresh Group instance for name.
func LookupGroup(name string, opts GroupOptions) (Group, error) {
	switch name {
	case GroupToy:
		if opts.Params == nil {
			return nil, fmt.Errorf("toy group without curve parameters: %w", ecdh.ErrInvalidParameters)
		}
		return NewWeierstrass(opts.Params, opts.Generator, opts.Stepwise)
	case GroupSecp256k1:
		return NewSecp256k1(), nil
	case GroupEd25519:
		return NewEd25519(), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ecdh.ErrUnknownGroup)
	}
}

// randomScalar draws uniformly from [1, bound).
func randomScalar(r io.Reader, bound *big.Int) (*big.Int, error) {
	if bound.Cmp(two) < 0 {
		return big.NewInt(1), nil
	}
	k, err := crand.Int(r, new(big.Int).Sub(bound, big.NewInt(1)))
	if err != nil {
		return nil, err
	}
	return k.Add(k, big.NewInt(1)), nil
}
