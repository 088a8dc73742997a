package geom

import (
	"errors"
	"math"
	"strconv"
)

var ErrOutOfRange = errors.New("point is out of the unit square")

// Point is a location in the plane. It is a value type, so a stored point can not be
// changed through a copy handed out by a container.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsNaN reports whether either coordinate is NaN. Such a point has no distance to anything.
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func (p Point) Equal(p1 Point) bool {
	return p.X == p1.X && p.Y == p1.Y
}

func (p Point) DistanceSquaredTo(p1 Point) float64 {
	dx := p.X - p1.X
	dy := p.Y - p1.Y
	return dx*dx + dy*dy
}

func (p Point) DistanceTo(p1 Point) float64 {
	return math.Sqrt(p.DistanceSquaredTo(p1))
}

// InUnitSquare reports whether both coordinates lie in [0, 1]. NaN coordinates are never inside.
func (p Point) InUnitSquare() bool {
	return UnitSquare().Contains(p)
}

// ValidateUnit returns ErrOutOfRange for points outside the unit square.
func (p Point) ValidateUnit() error {
	if !p.InUnitSquare() {
		return ErrOutOfRange
	}
	return nil
}

// Compare orders points by y and then by x.
func (p Point) Compare(p1 Point) int {
	switch {
	case p.Y < p1.Y:
		return -1
	case p.Y > p1.Y:
		return 1
	case p.X < p1.X:
		return -1
	case p.X > p1.X:
		return 1
	}
	return 0
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}
