package geom

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidRect = errors.New("invalid rectangle")

// Rect is an axis-aligned rectangle, closed on all sides.
type Rect struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

func NewRect(minX, minY, maxX, maxY float64) (Rect, error) {
	r := Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	if err := r.Validate(); err != nil {
		return Rect{}, err
	}
	return r, nil
}

func UnitSquare() Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
}

func (r Rect) Validate() error {
	for _, v := range []float64{r.MinX, r.MinY, r.MaxX, r.MaxY} {
		if math.IsNaN(v) {
			return fmt.Errorf("%w: NaN coordinate", ErrInvalidRect)
		}
	}
	if r.MinX > r.MaxX || r.MinY > r.MaxY {
		return fmt.Errorf("%w: min corner %v is above max corner %v", ErrInvalidRect, r.Min(), r.Max())
	}
	return nil
}

func (r Rect) Min() Point {
	return Point{X: r.MinX, Y: r.MinY}
}

func (r Rect) Max() Point {
	return Point{X: r.MaxX, Y: r.MaxY}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX &&
		p.Y >= r.MinY && p.Y <= r.MaxY
}

// Intersects reports whether the rectangles share at least one point, touching edges included.
func (r Rect) Intersects(r1 Rect) bool {
	return r.MinX <= r1.MaxX && r.MaxX >= r1.MinX &&
		r.MinY <= r1.MaxY && r.MaxY >= r1.MinY
}

// DistanceSquaredTo is the squared distance from p to the closest point of r, zero when p is inside.
func (r Rect) DistanceSquaredTo(p Point) float64 {
	var dx, dy float64
	if p.X < r.MinX {
		dx = p.X - r.MinX
	} else if p.X > r.MaxX {
		dx = p.X - r.MaxX
	}
	if p.Y < r.MinY {
		dy = p.Y - r.MinY
	} else if p.Y > r.MaxY {
		dy = p.Y - r.MaxY
	}
	return dx*dx + dy*dy
}

// SplitX cuts r with the vertical line through x.
func (r Rect) SplitX(x float64) (left, right Rect) {
	left, right = r, r
	left.MaxX = x
	right.MinX = x
	return left, right
}

// SplitY cuts r with the horizontal line through y.
func (r Rect) SplitY(y float64) (below, above Rect) {
	below, above = r, r
	below.MaxY = y
	above.MinY = y
	return below, above
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v, %v]", r.Min(), r.Max())
}
