package field

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

func TestExtendedGCD(t *testing.T) {
	tests := []struct {
		a, b, g int64
	}{
		{240, 46, 2},
		{46, 240, 2},
		{17, 97, 1},
		{0, 5, 5},
		{5, 0, 5},
		{-12, 18, 6},
		{12, -18, 6},
		{-7, -21, 7},
	}

	for _, tt := range tests {
		a, b := big.NewInt(tt.a), big.NewInt(tt.b)
		g, s, u := ExtendedGCD(a, b)
		assert.Equal(t, big.NewInt(tt.g), g, "gcd(%d, %d)", tt.a, tt.b)

		// a*s + b*t == g
		lhs := new(big.Int).Mul(a, s)
		lhs.Add(lhs, new(big.Int).Mul(b, u))
		assert.Equal(t, 0, lhs.Cmp(g), "bezout identity for (%d, %d)", tt.a, tt.b)
	}
}

func TestModInverseProperty(t *testing.T) {
	p := big.NewInt(97)
	for n := int64(1); n < 97; n++ {
		inv, err := ModInverse(big.NewInt(n), p)
		require.NoError(t, err)

		assert.True(t, inv.Sign() >= 0 && inv.Cmp(p) < 0, "inverse of %d not reduced", n)
		prod := new(big.Int).Mul(big.NewInt(n), inv)
		assert.Equal(t, int64(1), prod.Mod(prod, p).Int64(), "n=%d", n)
	}
}

func TestModInverseNegativeAndLarge(t *testing.T) {
	p := big.NewInt(97)

	inv, err := ModInverse(big.NewInt(-3), p)
	require.NoError(t, err)
	// -3 * 32 = -96 = 1 mod 97
	assert.Equal(t, big.NewInt(32), inv)

	inv, err = ModInverse(big.NewInt(97*4+3), p)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(65), inv)
}

func TestModInverseNotInvertible(t *testing.T) {
	tests := []struct {
		n, p int64
	}{
		{0, 97},
		{97, 97},
		{194, 97},
		{4, 100},
		{15, 100},
		{-10, 100},
	}

	for _, tt := range tests {
		_, err := ModInverse(big.NewInt(tt.n), big.NewInt(tt.p))
		assert.ErrorIs(t, err, ecdh.ErrNotInvertible, "n=%d p=%d", tt.n, tt.p)
	}

	// Coprime values still invert under a composite modulus.
	inv, err := ModInverse(big.NewInt(3), big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(67), inv)
}

func TestModInverseInvalidModulus(t *testing.T) {
	for _, p := range []int64{1, 0, -5} {
		_, err := ModInverse(big.NewInt(3), big.NewInt(p))
		assert.ErrorIs(t, err, ecdh.ErrInvalidModulus, "p=%d", p)
	}
}

func TestMod(t *testing.T) {
	p := big.NewInt(97)
	assert.Equal(t, big.NewInt(96), Mod(big.NewInt(-1), p))
	assert.Equal(t, big.NewInt(0), Mod(big.NewInt(-97), p))
	assert.Equal(t, big.NewInt(3), Mod(big.NewInt(100), p))
}
