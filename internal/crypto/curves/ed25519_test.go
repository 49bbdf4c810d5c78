package curves

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

func TestEd25519Scalar(t *testing.T) {
	val := big.NewInt(12345)
	s, err := ed25519Scalar(val)
	require.NoError(t, err)

	// Little-endian encoding of 12345 = 0x3039.
	b := s.Bytes()
	assert.Equal(t, byte(0x39), b[0])
	assert.Equal(t, byte(0x30), b[1])

	// Values at or above the order are reduced.
	wrapped, err := ed25519Scalar(new(big.Int).Add(ed25519Order, val))
	require.NoError(t, err)
	assert.Equal(t, s.Bytes(), wrapped.Bytes())
}

func TestEd25519Point(t *testing.T) {
	group := NewEd25519()

	g := group.Generator()
	assert.False(t, g.IsIdentity())

	p2, err := group.ScalarMult(g, big.NewInt(2))
	require.NoError(t, err)
	p3, err := group.ScalarMult(g, big.NewInt(3))
	require.NoError(t, err)
	assert.False(t, p2.Equal(p3))

	decoded, err := group.DecodeElement(p2.Bytes())
	require.NoError(t, err)
	assert.True(t, p2.Equal(decoded))

	order, err := group.ScalarMult(g, group.Order())
	require.NoError(t, err)
	assert.True(t, order.IsIdentity())
}

func TestEd25519DiffieHellman(t *testing.T) {
	group := NewEd25519()

	a, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)
	b, err := group.RandomScalar(rand.Reader)
	require.NoError(t, err)

	A, err := group.ScalarMult(group.Generator(), a)
	require.NoError(t, err)
	B, err := group.ScalarMult(group.Generator(), b)
	require.NoError(t, err)

	sa, err := group.ScalarMult(B, a)
	require.NoError(t, err)
	sb, err := group.ScalarMult(A, b)
	require.NoError(t, err)
	assert.True(t, sa.Equal(sb))
}

func TestEd25519DecodeMalformed(t *testing.T) {
	_, err := NewEd25519().DecodeElement([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ecdh.ErrMalformedInput)
}
