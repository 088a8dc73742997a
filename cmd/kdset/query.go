package main

import (
	"fmt"
	"io"

	"github.com/go-sod/kdset/pkg/geom"
	"github.com/spf13/cobra"
)

func newRangeCommand(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "range FILE MINX MINY MAXX MAXY",
		Short: "Print the points inside the rectangle, boundary included",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(global, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			r, err := geom.NewRect(v[0], v[1], v[2], v[3])
			if err != nil {
				return err
			}
			return printPoints(cmd.OutOrStdout(), global.output, tree.Range(r))
		},
	}
}

type nearestOpts struct {
	k      int
	metric string
}

type neighbour struct {
	Point    geom.Point `json:"point"`
	Distance float64    `json:"distance"`
}

func newNearestCommand(global *globalOpts) *cobra.Command {
	opts := nearestOpts{}
	cmd := &cobra.Command{
		Use:   "nearest FILE X Y",
		Short: "Print the nearest points to (X, Y) with their distances",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.k < 1 {
				return fmt.Errorf("k must be positive, got %d", opts.k)
			}
			dist, err := geom.DistanceFuncFor(geom.DistanceFuncType(opts.metric))
			if err != nil {
				return err
			}
			tree, err := loadTree(global, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			q := geom.Point{X: v[0], Y: v[1]}

			var points []geom.Point
			if opts.k == 1 {
				if p, ok := tree.Nearest(q); ok {
					points = append(points, p)
				}
			} else {
				points = tree.KNearest(q, opts.k)
			}
			result := make([]neighbour, len(points))
			for i, p := range points {
				result[i] = neighbour{Point: p, Distance: dist(q, p)}
			}
			return printResult(cmd.OutOrStdout(), global.output, struct {
				Neighbours []neighbour `json:"neighbours"`
			}{result}, func(w io.Writer) error {
				for _, n := range result {
					if _, err := fmt.Fprintf(w, "%v %v %v\n", n.Point.X, n.Point.Y, n.Distance); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&opts.k, "k", "k", 1, "number of neighbours")
	cmd.Flags().StringVar(&opts.metric, "metric", string(geom.DistanceFuncTypeEuclidean), "distance reported: EUCLIDEAN, CHEBYSHEV or MANHATTAN")
	return cmd
}

func newContainsCommand(global *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "contains FILE X Y",
		Short: "Report whether (X, Y) is in the point set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := loadTree(global, args[0], cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			v, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			found := tree.Contains(geom.Point{X: v[0], Y: v[1]})
			return printResult(cmd.OutOrStdout(), global.output, struct {
				Contains bool `json:"contains"`
			}{found}, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, found)
				return err
			})
		},
	}
}
