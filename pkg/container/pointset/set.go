// Package pointset is a brute-force point set. Every query is a linear scan, which makes it the
// reference the kd-tree is checked against.
package pointset

import (
	"fmt"
	"math"

	"github.com/go-sod/kdset/pkg/container/avltree"
	"github.com/go-sod/kdset/pkg/container/pqueue"
	"github.com/go-sod/kdset/pkg/geom"
)

type item geom.Point

func (i item) Compare(current avltree.Item) int {
	return geom.Point(i).Compare(geom.Point(current.(item)))
}

func New() *Set {
	return &Set{points: avltree.New()}
}

// Set keeps points ordered by y and then by x.
type Set struct {
	points *avltree.Tree
}

func (s *Set) Len() int {
	return s.points.Len()
}

func (s *Set) IsEmpty() bool {
	return s.points.Len() == 0
}

// Insert adds p. Unlike the kd-tree the set accepts any finite point.
func (s *Set) Insert(p geom.Point) error {
	if p.IsNaN() {
		return fmt.Errorf("insert %v: NaN coordinate", p)
	}
	s.points.Add(item(p))
	return nil
}

func (s *Set) Contains(p geom.Point) bool {
	return s.points.Contains(item(p))
}

func (s *Set) Points() []geom.Point {
	points := make([]geom.Point, 0, s.points.Len())
	s.points.Walk(func(current avltree.Item) bool {
		points = append(points, geom.Point(current.(item)))
		return true
	})
	return points
}

func (s *Set) Range(r geom.Rect) []geom.Point {
	items := s.points.Filter(func(current avltree.Item) bool {
		return r.Contains(geom.Point(current.(item)))
	})
	points := make([]geom.Point, len(items))
	for i := range items {
		points[i] = geom.Point(items[i].(item))
	}
	return points
}

// Nearest returns the first point in set order with the minimum distance to p.
func (s *Set) Nearest(p geom.Point) (geom.Point, bool) {
	var (
		best     geom.Point
		bestDist = math.Inf(1)
		found    bool
	)
	s.points.Walk(func(current avltree.Item) bool {
		candidate := geom.Point(current.(item))
		if d := candidate.DistanceSquaredTo(p); d < bestDist {
			best, bestDist, found = candidate, d, true
		}
		return true
	})
	return best, found
}

func (s *Set) KNearest(p geom.Point, k int) []geom.Point {
	if k <= 0 {
		return []geom.Point{}
	}
	queue := pqueue.New(pqueue.WithCap(uint(k)))
	s.points.Walk(func(current avltree.Item) bool {
		candidate := geom.Point(current.(item))
		queue.Push(candidate, candidate.DistanceSquaredTo(p))
		return true
	})
	items := queue.PopAll()
	points := make([]geom.Point, len(items))
	for i := range items {
		points[i] = items[i].(geom.Point)
	}
	return points
}
