package curves

import (
	"fmt"
	"math/big"
)

// Point is an affine point (x, y) or the point at infinity, which acts as
// the group identity. Points are immutable values: accessors hand out copies.
type Point struct {
	x, y *big.Int
	inf  bool
}

// NewPoint returns the affine point (x, y). Coordinates are copied but not
// reduced; use Params.Point to obtain a reduced point.
func NewPoint(x, y *big.Int) Point {
	return Point{x: new(big.Int).Set(x), y: new(big.Int).Set(y)}
}

// Infinity returns the point at infinity.
func Infinity() Point {
	return Point{inf: true}
}

// IsInfinity reports whether p is the group identity.
func (p Point) IsInfinity() bool {
	return p.inf
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *big.Int {
	if p.inf {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *big.Int {
	if p.inf {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports coordinate equality. All infinities are equal.
func (p Point) Equal(q Point) bool {
	if p.inf || q.inf {
		return p.inf == q.inf
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

func (p Point) String() string {
	if p.inf {
		return "infinity"
	}
	return fmt.Sprintf("(%s, %s)", p.x, p.y)
}
