package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-sod/kdset/pkg/container/pointset"
	"github.com/go-sod/kdset/pkg/geom"
	"github.com/spf13/cobra"
	"github.com/valyala/fastrand"
)

func randUnit() float64 {
	return float64(fastrand.Uint32()) / math.MaxUint32
}

func randPoint() geom.Point {
	return geom.Point{X: randUnit(), Y: randUnit()}
}

type checkOpts struct {
	queries int
}

type checkResult struct {
	Size              int `json:"size"`
	RangeQueries      int `json:"rangeQueries"`
	RangeMismatches   int `json:"rangeMismatches"`
	NearestQueries    int `json:"nearestQueries"`
	NearestMismatches int `json:"nearestMismatches"`
}

func (r checkResult) ok() bool {
	return r.RangeMismatches == 0 && r.NearestMismatches == 0
}

func newCheckCommand(global *globalOpts) *cobra.Command {
	opts := checkOpts{}
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Compare range and nearest answers of the tree with a brute-force set on random queries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(global, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			set := pointset.New()
			for _, p := range tree.Points() {
				if err := set.Insert(p); err != nil {
					return err
				}
			}

			res := checkResult{Size: tree.Len()}
			for i := 0; i < opts.queries; i++ {
				a, b := randPoint(), randPoint()
				r := geom.Rect{
					MinX: math.Min(a.X, b.X), MinY: math.Min(a.Y, b.Y),
					MaxX: math.Max(a.X, b.X), MaxY: math.Max(a.Y, b.Y),
				}
				res.RangeQueries++
				if !samePoints(tree.Range(r), set.Range(r)) {
					res.RangeMismatches++
				}

				q := randPoint()
				res.NearestQueries++
				got, gotOK := tree.Nearest(q)
				expected, expectedOK := set.Nearest(q)
				if gotOK != expectedOK || q.DistanceSquaredTo(got) != q.DistanceSquaredTo(expected) {
					res.NearestMismatches++
				}
			}

			err = printResult(cmd.OutOrStdout(), global.output, res, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "size %d: range %d/%d mismatched, nearest %d/%d mismatched\n",
					res.Size, res.RangeMismatches, res.RangeQueries, res.NearestMismatches, res.NearestQueries)
				return err
			})
			if err != nil {
				return err
			}
			if !res.ok() {
				return fmt.Errorf("tree and brute-force answers differ")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.queries, "queries", 1000, "number of random queries of each kind")
	return cmd
}

func samePoints(a, b []geom.Point) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[geom.Point]int, len(a))
	for _, p := range a {
		seen[p]++
	}
	for _, p := range b {
		if seen[p] == 0 {
			return false
		}
		seen[p]--
	}
	return true
}

func newGenCommand(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "gen N",
		Short: "Print N random points in the unit square",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 {
				return fmt.Errorf("N must be a non-negative integer, got %q", args[0])
			}
			points := make([]geom.Point, n)
			for i := range points {
				points[i] = randPoint()
			}
			return printPoints(cmd.OutOrStdout(), global.output, points)
		},
	}
}
