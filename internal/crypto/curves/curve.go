package curves

import (
	"fmt"
	"math/big"

	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// NoIndex selects the default point of an operation: the first or last
// point for Sum, the last point for Duplicate, nothing for DeletePoints.
const NoIndex = -1

// Curve is an ordered sequence of points stored against a set of curve
// parameters. Operations reference points by position and append their
// result to the sequence. A Curve is not safe for concurrent use.
type Curve struct {
	params *Params
	points []Point
}

// NewCurve creates an empty curve y^2 = x^3 + ax + b (mod p).
func NewCurve(a, b, p *big.Int) (*Curve, error) {
	params, err := NewParams(a, b, p)
	if err != nil {
		return nil, err
	}
	return NewCurveFromParams(params), nil
}

// NewCurveFromParams creates an empty curve over existing parameters.
func NewCurveFromParams(params *Params) *Curve {
	return &Curve{params: params}
}

// Params returns the curve parameters.
func (c *Curve) Params() *Params {
	return c.params
}

func (c *Curve) String() string {
	return c.params.String()
}

// Len returns the number of stored points.
func (c *Curve) Len() int {
	return len(c.points)
}

// Points returns a copy of the stored points in insertion order.
func (c *Curve) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// At returns the point at index i.
func (c *Curve) At(i int) (Point, error) {
	if i < 0 || i >= len(c.points) {
		return Point{}, fmt.Errorf("index %d of %d points: %w", i, len(c.points), ecdh.ErrIndexOutOfRange)
	}
	return c.points[i], nil
}

// Last returns the most recently appended point.
func (c *Curve) Last() (Point, error) {
	if len(c.points) == 0 {
		return Point{}, ecdh.ErrEmptyCurve
	}
	return c.points[len(c.points)-1], nil
}

// AddPoint reduces (x, y) modulo p and appends it. Curve membership is
// not checked; see Validate.
func (c *Curve) AddPoint(x, y *big.Int) Point {
	pt := c.params.Point(x, y)
	c.points = append(c.points, pt)
	return pt
}

func (c *Curve) appendPoint(pt Point) Point {
	c.points = append(c.points, pt)
	return pt
}

// Validate reports whether the point at index satisfies the curve equation.
func (c *Curve) Validate(index int) (bool, error) {
	pt, err := c.At(index)
	if err != nil {
		return false, err
	}
	return c.params.IsOnCurve(pt), nil
}

// Reset removes every point.
func (c *Curve) Reset() {
	c.points = nil
}

// DeletePoints clears the curve. When keep is not NoIndex the point at
// that position survives as the only entry.
func (c *Curve) DeletePoints(keep int) error {
	if keep == NoIndex {
		c.Reset()
		return nil
	}

	pt, err := c.At(keep)
	if err != nil {
		return fmt.Errorf("delete points: %w", err)
	}
	c.points = []Point{pt}
	return nil
}

// resolve maps a caller index to a position, substituting def for negative
// indices.
func (c *Curve) resolve(index, def int) (int, error) {
	if len(c.points) == 0 {
		return 0, ecdh.ErrEmptyCurve
	}
	if index < 0 {
		return def, nil
	}
	if index >= len(c.points) {
		return 0, fmt.Errorf("index %d of %d points: %w", index, len(c.points), ecdh.ErrIndexOutOfRange)
	}
	return index, nil
}

// Duplicate doubles the point at index (default: last) and appends the result.
func (c *Curve) Duplicate(index int) (Point, error) {
	i, err := c.resolve(index, len(c.points)-1)
	if err != nil {
		return Point{}, err
	}

	pt, err := c.params.Double(c.points[i])
	if err != nil {
		return Point{}, err
	}
	return c.appendPoint(pt), nil
}

// Sum adds the points at index1 (default: first) and index2 (default: last)
// and appends the result. Equal points are doubled.
func (c *Curve) Sum(index1, index2 int) (Point, error) {
	i, err := c.resolve(index1, 0)
	if err != nil {
		return Point{}, err
	}
	j, err := c.resolve(index2, len(c.points)-1)
	if err != nil {
		return Point{}, err
	}

	if c.points[i].Equal(c.points[j]) {
		return c.Duplicate(i)
	}

	pt, err := c.params.Add(c.points[i], c.points[j])
	if err != nil {
		return Point{}, err
	}
	return c.appendPoint(pt), nil
}

// clamp resolves a Multiply base index; out of range values are clamped.
func (c *Curve) clamp(index int) int {
	switch {
	case index < 0:
		return 0
	case index > len(c.points)-1:
		return len(c.points) - 1
	}
	return index
}

// Multiply folds the point P at index n times, each step adding P to the
// previous result, and appends the final value (n+1)*P. Only the final
// point is stored.
func (c *Curve) Multiply(index, n int) (Point, error) {
	if len(c.points) == 0 {
		return Point{}, ecdh.ErrEmptyCurve
	}
	if n < 1 {
		return Point{}, fmt.Errorf("multiply by %d: %w", n, ecdh.ErrInvalidScalar)
	}

	base := c.points[c.clamp(index)]
	pt, err := c.params.ScalarMult(base, big.NewInt(int64(n)+1))
	if err != nil {
		return Point{}, err
	}
	return c.appendPoint(pt), nil
}

// MultiplyStepwise performs the same fold as Multiply one summation at a
// time: step i sums the base point with the point at index+i. Every
// intermediate result is appended and returned, so the sequence grows by n.
// When the base is the last point the final value equals Multiply's.
func (c *Curve) MultiplyStepwise(index, n int) ([]Point, error) {
	if len(c.points) == 0 {
		return nil, ecdh.ErrEmptyCurve
	}
	if n < 1 {
		return nil, fmt.Errorf("multiply by %d: %w", n, ecdh.ErrInvalidScalar)
	}

	base := c.clamp(index)
	start := len(c.points)
	for i := 0; i < n; i++ {
		if _, err := c.Sum(base, base+i); err != nil {
			c.points = c.points[:start]
			return nil, fmt.Errorf("multiply step %d: %w", i, err)
		}
	}
	return c.Points()[start:], nil
}
