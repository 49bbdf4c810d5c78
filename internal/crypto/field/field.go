// Package field implements the modular arithmetic the curve code is built on.
package field

import (
	"fmt"
	"math/big"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

var one = big.NewInt(1)

// ExtendedGCD returns g = gcd(a, b) together with Bezout coefficients s, t
// such that a*s + b*t = g. g is never negative.
func ExtendedGCD(a, b *big.Int) (g, s, t *big.Int) {
	s, prevS := big.NewInt(0), big.NewInt(1)
	t, prevT := big.NewInt(1), big.NewInt(0)
	r, prevR := new(big.Int).Set(b), new(big.Int).Set(a)

	q := new(big.Int)
	tmp := new(big.Int)
	for r.Sign() != 0 {
		q.Div(prevR, r)

		// (prevR, r) = (r, prevR - q*r), likewise for s and t
		tmp.Mul(q, r)
		prevR, r = r, new(big.Int).Sub(prevR, tmp)
		tmp.Mul(q, s)
		prevS, s = s, new(big.Int).Sub(prevS, tmp)
		tmp.Mul(q, t)
		prevT, t = t, new(big.Int).Sub(prevT, tmp)
	}

	if prevR.Sign() < 0 {
		prevR.Neg(prevR)
		prevS.Neg(prevS)
		prevT.Neg(prevT)
	}
	return prevR, prevS, prevT
}

// Mod reduces n into [0, p) for any sign of n.
func Mod(n, p *big.Int) *big.Int {
	return new(big.Int).Mod(n, p)
}

// ModInverse returns x in [0, p) with n*x = 1 (mod p).
// It returns ecdh.ErrNotInvertible when gcd(n, p) != 1.
func ModInverse(n, p *big.Int) (*big.Int, error) {
	if p.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("inverse mod %s: %w", p, ecdh.ErrInvalidModulus)
	}

	g, x, _ := ExtendedGCD(Mod(n, p), p)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("inverse of %s mod %s (gcd %s): %w", n, p, g, ecdh.ErrNotInvertible)
	}
	return Mod(x, p), nil
}
