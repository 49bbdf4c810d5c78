package curves

import (
	"fmt"
	"io"
	"math/big"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// MaxStepwiseScalar bounds the scalars a stepwise group accepts, since each
// unit of the scalar costs one stored point.
const MaxStepwiseScalar = 1 << 20

// Weierstrass is a Group over a short Weierstrass curve described by Params.
// It is meant for small textbook curves: the generator is not checked for
// membership and its order is not computed.
//
// In stepwise mode every multiplication runs through the group's own point
// sequence with Curve.MultiplyStepwise, after which the sequence is pruned
// to the result. A stepwise group must not be shared between goroutines.
type Weierstrass struct {
	params   *Params
	g        Point
	size     int
	stepwise bool
	work     *Curve
}

// NewWeierstrass builds a group with generator g, reduced modulo p.
func NewWeierstrass(params *Params, g Point, stepwise bool) (*Weierstrass, error) {
	if g.IsInfinity() || g.x == nil {
		return nil, fmt.Errorf("generator must be an affine point: %w", ecdh.ErrInvalidParameters)
	}
	return &Weierstrass{
		params:   params,
		g:        params.Point(g.x, g.y),
		size:     (params.p.BitLen() + 7) / 8,
		stepwise: stepwise,
		work:     NewCurveFromParams(params),
	}, nil
}

// Params returns the curve parameters.
func (w *Weierstrass) Params() *Params {
	return w.params
}

// Workspace returns the point sequence used in stepwise mode.
func (w *Weierstrass) Workspace() *Curve {
	return w.work
}

func (w *Weierstrass) Name() string {
	return GroupToy
}

func (w *Weierstrass) Generator() Element {
	return w.element(w.g)
}

func (w *Weierstrass) Order() *big.Int {
	return nil
}

func (w *Weierstrass) RandomScalar(r io.Reader) (*big.Int, error) {
	return randomScalar(r, w.params.p)
}

// ScalarMult computes k * e.
func (w *Weierstrass) ScalarMult(e Element, k *big.Int) (Element, error) {
	we, ok := e.(*WeierstrassElement)
	if !ok {
		return nil, fmt.Errorf("element of type %T: %w", e, ecdh.ErrInvalidParameters)
	}
	if k == nil || k.Sign() < 0 {
		return nil, fmt.Errorf("scalar %v: %w", k, ecdh.ErrInvalidScalar)
	}

	if !w.stepwise || we.pt.IsInfinity() || k.Cmp(two) < 0 {
		pt, err := w.params.ScalarMult(we.pt, k)
		if err != nil {
			return nil, err
		}
		return w.element(pt), nil
	}

	if k.Cmp(big.NewInt(MaxStepwiseScalar)) > 0 {
		return nil, fmt.Errorf("stepwise scalar %s above %d: %w", k, MaxStepwiseScalar, ecdh.ErrInvalidScalar)
	}
	pt, err := w.stepwiseMult(we.pt, int(k.Int64()))
	if err != nil {
		return nil, err
	}
	return w.element(pt), nil
}

// stepwiseMult computes k*pt (k >= 2) on the workspace: the base point is
// folded k-1 times and the sequence is then pruned to the final point.
func (w *Weierstrass) stepwiseMult(pt Point, k int) (Point, error) {
	w.work.Reset()
	w.work.appendPoint(pt)

	if _, err := w.work.MultiplyStepwise(0, k-1); err != nil {
		return Point{}, err
	}
	if err := w.work.DeletePoints(w.work.Len() - 1); err != nil {
		return Point{}, err
	}
	return w.work.Last()
}

// DecodeElement parses 0x00 (infinity) or 0x04 || x || y.
func (w *Weierstrass) DecodeElement(b []byte) (Element, error) {
	if len(b) == 1 && b[0] == 0x00 {
		return w.element(Infinity()), nil
	}
	if len(b) != 1+2*w.size || b[0] != 0x04 {
		return nil, fmt.Errorf("point encoding of %d bytes: %w", len(b), ecdh.ErrMalformedInput)
	}

	x := new(big.Int).SetBytes(b[1 : 1+w.size])
	y := new(big.Int).SetBytes(b[1+w.size:])
	if x.Cmp(w.params.p) >= 0 || y.Cmp(w.params.p) >= 0 {
		return nil, fmt.Errorf("coordinate not reduced mod %s: %w", w.params.p, ecdh.ErrMalformedInput)
	}
	return w.element(Point{x: x, y: y}), nil
}

// ElementOf wraps pt, reduced modulo p, as a group element.
func (w *Weierstrass) ElementOf(pt Point) Element {
	if pt.IsInfinity() {
		return w.element(pt)
	}
	return w.element(w.params.Point(pt.x, pt.y))
}

func (w *Weierstrass) element(pt Point) *WeierstrassElement {
	return &WeierstrassElement{pt: pt, size: w.size}
}

// WeierstrassElement is a Point tagged with its encoding width.
type WeierstrassElement struct {
	pt   Point
	size int
}

// Point returns the underlying curve point.
func (e *WeierstrassElement) Point() Point {
	return e.pt
}

func (e *WeierstrassElement) Bytes() []byte {
	if e.pt.IsInfinity() {
		return []byte{0x00}
	}
	out := make([]byte, 1+2*e.size)
	out[0] = 0x04
	e.pt.x.FillBytes(out[1 : 1+e.size])
	e.pt.y.FillBytes(out[1+e.size:])
	return out
}

func (e *WeierstrassElement) Equal(other Element) bool {
	o, ok := other.(*WeierstrassElement)
	return ok && e.pt.Equal(o.pt)
}

func (e *WeierstrassElement) IsIdentity() bool {
	return e.pt.IsInfinity()
}

func (e *WeierstrassElement) String() string {
	return e.pt.String()
}
