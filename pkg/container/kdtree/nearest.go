package kdtree

import (
	"math"

	"github.com/go-sod/kdset/pkg/container/pqueue"
	"github.com/go-sod/kdset/pkg/geom"
)

// Nearest returns the stored point closest to p. The second result is false when the tree
// is empty or p has a NaN coordinate. Which of several equally distant points is returned is
// unspecified.
func (t *Tree) Nearest(p geom.Point) (geom.Point, bool) {
	if t.root == nil || p.IsNaN() {
		return geom.Point{}, false
	}
	s := &nearestSearch{query: p, pruning: t.pruning, best: t.root.point, bestDist: math.Inf(1)}
	s.visit(t.root)
	return s.best, true
}

// KNearest returns up to k stored points closest to p, nearest first.
func (t *Tree) KNearest(p geom.Point, k int) []geom.Point {
	if t.root == nil || k <= 0 || p.IsNaN() {
		return []geom.Point{}
	}
	s := &kNearestSearch{query: p, pruning: t.pruning, queue: pqueue.New(pqueue.WithCap(uint(k)))}
	s.visit(t.root)

	items := s.queue.PopAll()
	points := make([]geom.Point, len(items))
	for i := range items {
		points[i] = items[i].(geom.Point)
	}
	return points
}

// lowerBound is the smallest squared distance from p to any point stored under far, the
// child of parent on the other side of the split from p.
func lowerBound(pruning Pruning, parent, far *node, p geom.Point) float64 {
	if pruning == PruneSplit {
		return parent.perpendicularDistanceSquaredTo(p)
	}
	return far.region.DistanceSquaredTo(p)
}

// nearestSearch holds the best candidate of a single Nearest call.
type nearestSearch struct {
	query    geom.Point
	pruning  Pruning
	best     geom.Point
	bestDist float64
}

func (s *nearestSearch) visit(n *node) {
	if n == nil {
		return
	}

	if d := n.point.DistanceSquaredTo(s.query); d <= s.bestDist {
		s.best = n.point
		s.bestDist = d
	}

	cmp := n.compare(s.query)
	if cmp == 0 {
		return
	}
	near, far := n.left, n.right
	if cmp > 0 {
		near, far = n.right, n.left
	}

	s.visit(near)
	if far != nil && lowerBound(s.pruning, n, far, s.query) < s.bestDist {
		s.visit(far)
	}
}

type kNearestSearch struct {
	query   geom.Point
	pruning Pruning
	queue   *pqueue.Queue
}

func (s *kNearestSearch) visit(n *node) {
	if n == nil {
		return
	}

	if d := n.point.DistanceSquaredTo(s.query); d < s.queue.Worst() {
		s.queue.Push(n.point, d)
	}

	near, far := n.left, n.right
	if n.compare(s.query) > 0 {
		near, far = n.right, n.left
	}

	s.visit(near)
	if far != nil && lowerBound(s.pruning, n, far, s.query) < s.queue.Worst() {
		s.visit(far)
	}
}
