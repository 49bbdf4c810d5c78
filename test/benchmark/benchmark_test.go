package benchmark

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
	"github.com/rharkanson/go-ecc-dh/internal/crypto/field"
	"github.com/rharkanson/go-ecc-dh/internal/protocol/exchange"
)

// toyConfig is the demo curve with generator (3, 6).
func toyConfig(stepwise bool) exchange.SessionConfig {
	return exchange.SessionConfig{
		Group:    curves.GroupToy,
		A:        big.NewInt(2),
		B:        big.NewInt(3),
		P:        big.NewInt(97),
		Gx:       big.NewInt(3),
		Gy:       big.NewInt(6),
		Fold:     true,
		Stepwise: stepwise,
	}
}

// BenchmarkModInverse benchmarks the extended Euclidean inverse modulo
// the secp256k1 field prime.
func BenchmarkModInverse(b *testing.B) {
	params, _ := curves.Secp256k1Params()
	n, err := rand.Int(rand.Reader, params.P())
	if err != nil {
		b.Fatal(err)
	}
	n.Add(n, big.NewInt(1))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := field.ModInverse(n, params.P()); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkScalarMult compares the generic affine arithmetic with the
// library backed groups for a full size scalar.
func BenchmarkScalarMult(b *testing.B) {
	params, g := curves.Secp256k1Params()
	affine, err := curves.NewWeierstrass(params, g, false)
	if err != nil {
		b.Fatal(err)
	}

	for _, group := range []curves.Group{affine, curves.NewSecp256k1(), curves.NewEd25519()} {
		k, err := group.RandomScalar(rand.Reader)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("%s/%T", group.Name(), group), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := group.ScalarMult(group.Generator(), k); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkStepwise shows the cost of storing every intermediate point
// against double-and-add on the same toy curve.
func BenchmarkStepwise(b *testing.B) {
	for _, n := range []int{16, 256, 4096} {
		b.Run(fmt.Sprintf("DoubleAndAdd/%d", n), func(b *testing.B) {
			c := newToyCurve(b)
			for i := 0; i < b.N; i++ {
				if _, err := c.Multiply(0, n); err != nil {
					b.Fatal(err)
				}
				if err := c.DeletePoints(0); err != nil {
					b.Fatal(err)
				}
			}
		})
		b.Run(fmt.Sprintf("Stepwise/%d", n), func(b *testing.B) {
			c := newToyCurve(b)
			for i := 0; i < b.N; i++ {
				if _, err := c.MultiplyStepwise(0, n); err != nil {
					b.Fatal(err)
				}
				if err := c.DeletePoints(0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func newToyCurve(b *testing.B) *curves.Curve {
	b.Helper()
	c, err := curves.NewCurve(big.NewInt(2), big.NewInt(3), big.NewInt(97))
	if err != nil {
		b.Fatal(err)
	}
	c.AddPoint(big.NewInt(0), big.NewInt(10))
	return c
}

// BenchmarkSession benchmarks a complete two-party exchange per group.
func BenchmarkSession(b *testing.B) {
	cfgs := map[string]exchange.SessionConfig{
		"toy":          toyConfig(false),
		"toy-stepwise": toyConfig(true),
		"secp256k1":    {Group: curves.GroupSecp256k1},
		"ed25519":      {Group: curves.GroupEd25519},
	}
	for name, cfg := range cfgs {
		cfg := cfg
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				cfg.SessionID = []byte(fmt.Sprintf("bench-session-%d", i))
				if _, err := exchange.RunSession(cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBatch benchmarks concurrent secp256k1 sessions.
func BenchmarkBatch(b *testing.B) {
	cfgs := make([]exchange.SessionConfig, 64)
	for i := range cfgs {
		cfgs[i] = exchange.SessionConfig{Group: curves.GroupSecp256k1, SessionID: []byte(fmt.Sprintf("batch-%d", i))}
	}

	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := exchange.RunBatch(context.Background(), cfgs, workers); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
