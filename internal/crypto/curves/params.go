package curves

import (
	"fmt"
	"math/big"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/field"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Params describes the curve y^2 = x^3 + ax + b (mod p).
// The modulus is expected to be prime but primality is not checked; with a
// composite modulus some operations fail with ecdh.ErrNotInvertible.
type Params struct {
	a, b, p *big.Int
}

// NewParams validates the modulus and reduces a and b into [0, p).
func NewParams(a, b, p *big.Int) (*Params, error) {
	if p == nil || p.Cmp(two) < 0 {
		return nil, fmt.Errorf("curve modulus %v: %w", p, ecdh.ErrInvalidModulus)
	}
	if a == nil || b == nil {
		return nil, fmt.Errorf("curve coefficients: %w", ecdh.ErrInvalidParameters)
	}
	return &Params{
		a: field.Mod(a, p),
		b: field.Mod(b, p),
		p: new(big.Int).Set(p),
	}, nil
}

// A returns a copy of the linear coefficient.
func (c *Params) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the constant coefficient.
func (c *Params) B() *big.Int { return new(big.Int).Set(c.b) }

// P returns a copy of the modulus.
func (c *Params) P() *big.Int { return new(big.Int).Set(c.p) }

func (c *Params) String() string {
	return fmt.Sprintf("y^2 = x^3 + (%s)x + (%s) %% %s", c.a, c.b, c.p)
}

// Point returns (x mod p, y mod p).
func (c *Params) Point(x, y *big.Int) Point {
	return Point{x: field.Mod(x, c.p), y: field.Mod(y, c.p)}
}

// IsOnCurve reports whether pt satisfies the curve equation.
func (c *Params) IsOnCurve(pt Point) bool {
	if pt.inf {
		return true
	}

	lhs := new(big.Int).Mul(pt.y, pt.y)
	lhs.Mod(lhs, c.p)

	rhs := new(big.Int).Exp(pt.x, three, c.p)
	rhs.Add(rhs, new(big.Int).Mul(c.a, pt.x))
	rhs.Add(rhs, c.b)
	rhs.Mod(rhs, c.p)

	return lhs.Cmp(rhs) == 0
}

// Neg returns -pt.
func (c *Params) Neg(pt Point) Point {
	if pt.inf {
		return pt
	}
	return Point{x: new(big.Int).Set(pt.x), y: field.Mod(new(big.Int).Neg(pt.y), c.p)}
}

// Double returns 2*pt using the tangent line through pt.
func (c *Params) Double(pt Point) (Point, error) {
	if pt.inf || pt.y.Sign() == 0 {
		return Infinity(), nil
	}

	// s = (3x^2 + a) / 2y
	inv, err := field.ModInverse(new(big.Int).Mul(two, pt.y), c.p)
	if err != nil {
		return Point{}, fmt.Errorf("double %s: %w", pt, err)
	}
	s := new(big.Int).Mul(pt.x, pt.x)
	s.Mul(s, three)
	s.Add(s, c.a)
	s.Mul(s, inv)
	s.Mod(s, c.p)

	// x' = s^2 - 2x
	x := new(big.Int).Mul(s, s)
	x.Sub(x, new(big.Int).Mul(two, pt.x))
	x.Mod(x, c.p)

	return Point{x: x, y: c.lineY(s, pt, x)}, nil
}

// Add returns p0 + p1. Coordinate-equal inputs are doubled.
func (c *Params) Add(p0, p1 Point) (Point, error) {
	switch {
	case p0.inf:
		return p1, nil
	case p1.inf:
		return p0, nil
	}

	if p0.x.Cmp(p1.x) == 0 {
		if p0.y.Cmp(p1.y) == 0 {
			return c.Double(p0)
		}
		if c.Neg(p0).Equal(p1) {
			return Infinity(), nil
		}
		// Only reachable for off-curve points or a composite modulus.
		return Point{}, fmt.Errorf("add %s and %s: vertical secant: %w", p0, p1, ecdh.ErrNotInvertible)
	}

	// s = (y0 - y1) / (x0 - x1)
	inv, err := field.ModInverse(new(big.Int).Sub(p0.x, p1.x), c.p)
	if err != nil {
		return Point{}, fmt.Errorf("add %s and %s: %w", p0, p1, err)
	}
	s := new(big.Int).Sub(p0.y, p1.y)
	s.Mul(s, inv)
	s.Mod(s, c.p)

	// x' = s^2 - (x0 + x1)
	x := new(big.Int).Mul(s, s)
	x.Sub(x, p0.x)
	x.Sub(x, p1.x)
	x.Mod(x, c.p)

	return Point{x: x, y: c.lineY(s, p0, x)}, nil
}

// lineY computes y' = s(x0 - x') - y0.
func (c *Params) lineY(s *big.Int, p0 Point, x *big.Int) *big.Int {
	y := new(big.Int).Sub(p0.x, x)
	y.Mul(y, s)
	y.Sub(y, p0.y)
	return y.Mod(y, c.p)
}

// ScalarMult returns k*pt by left-to-right double-and-add.
func (c *Params) ScalarMult(pt Point, k *big.Int) (Point, error) {
	if k == nil || k.Sign() < 0 {
		return Point{}, fmt.Errorf("scalar %v: %w", k, ecdh.ErrInvalidScalar)
	}

	var err error
	acc := Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		if acc, err = c.Double(acc); err != nil {
			return Point{}, err
		}
		if k.Bit(i) == 1 {
			if acc, err = c.Add(acc, pt); err != nil {
				return Point{}, err
			}
		}
	}
	return acc, nil
}
