package kdtree

import (
	"math/rand"
	"testing"

	"github.com/go-sod/kdset/pkg/geom"
)

func benchTree(b *testing.B, pruning Pruning, n int) (*Tree, []geom.Point) {
	b.Helper()
	r := rand.New(rand.NewSource(1))
	tree := New(WithPruning(pruning))
	for _, p := range randomPoints(r, n, 0) {
		_ = tree.Insert(p)
	}
	return tree, randomPoints(r, 1024, 0)
}

func BenchmarkTree_Nearest(b *testing.B) {
	for _, pruning := range strategies {
		b.Run(pruning.String(), func(b *testing.B) {
			tree, queries := benchTree(b, pruning, 100000)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tree.Nearest(queries[i%len(queries)])
			}
		})
	}
}

func BenchmarkTree_Range(b *testing.B) {
	for _, pruning := range strategies {
		b.Run(pruning.String(), func(b *testing.B) {
			tree, queries := benchTree(b, pruning, 100000)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				q := queries[i%len(queries)]
				tree.Range(geom.Rect{MinX: q.X / 2, MinY: q.Y / 2, MaxX: q.X, MaxY: q.Y})
			}
		})
	}
}

func BenchmarkTree_Insert(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	points := randomPoints(r, b.N, 0)
	tree := New()
	b.ResetTimer()
	for i := range points {
		_ = tree.Insert(points[i])
	}
}
