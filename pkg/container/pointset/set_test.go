package pointset

import (
	"testing"

	"github.com/go-sod/kdset/pkg/geom"
)

func TestSet(t *testing.T) {
	s := New()
	if !s.IsEmpty() {
		t.Errorf("a new set must be empty")
	}
	if _, ok := s.Nearest(geom.Point{X: 0.1, Y: 0.1}); ok {
		t.Errorf("nearest on an empty set must report nothing found")
	}
	for _, p := range []geom.Point{{X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}, {X: 0.75, Y: 0.25}, {X: 0.5, Y: 0.5}} {
		if err := s.Insert(p); err != nil {
			t.Fatalf("insert %v, got error: %v", p, err)
		}
	}
	if s.Len() != 3 {
		t.Errorf("set length, got: %d, expected: %d", s.Len(), 3)
	}
	if !s.Contains(geom.Point{X: 0.25, Y: 0.75}) {
		t.Errorf("the set must contain (0.25, 0.75)")
	}
	if s.Contains(geom.Point{X: 0.75, Y: 0.75}) {
		t.Errorf("the set must not contain (0.75, 0.75)")
	}

	expectedOrder := []geom.Point{{X: 0.75, Y: 0.25}, {X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}}
	for i, p := range s.Points() {
		if !p.Equal(expectedOrder[i]) {
			t.Errorf("point %d in set order, got: %v, expected: %v", i, p, expectedOrder[i])
		}
	}

	got := s.Range(geom.Rect{MinX: 0, MinY: 0.5, MaxX: 1, MaxY: 1})
	if len(got) != 2 {
		t.Errorf("range with a boundary point, got: %v, expected 2 points", got)
	}

	nearest, ok := s.Nearest(geom.Point{X: 0.7, Y: 0.3})
	if !ok || !nearest.Equal(geom.Point{X: 0.75, Y: 0.25}) {
		t.Errorf("nearest, got: %v, expected: %v", nearest, geom.Point{X: 0.75, Y: 0.25})
	}

	knn := s.KNearest(geom.Point{X: 0.7, Y: 0.3}, 2)
	if len(knn) != 2 || !knn[0].Equal(geom.Point{X: 0.75, Y: 0.25}) || !knn[1].Equal(geom.Point{X: 0.5, Y: 0.5}) {
		t.Errorf("k nearest, got: %v", knn)
	}
}
