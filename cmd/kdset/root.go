package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ghodss/yaml"
	"github.com/go-sod/kdset/internal/buildinfo"
	"github.com/go-sod/kdset/internal/pointfile"
	"github.com/go-sod/kdset/pkg/container/kdtree"
	"github.com/go-sod/kdset/pkg/geom"
	"github.com/spf13/cobra"
)

type globalOpts struct {
	output  string
	pruning string
}

func newRootCommand() *cobra.Command {
	opts := &globalOpts{}
	cmd := &cobra.Command{
		Use:           "kdset",
		Short:         "Query point sets in the unit square with a 2-d tree",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format: text, json or yaml")
	cmd.PersistentFlags().StringVar(&opts.pruning, "pruning", "region", "pruning strategy: region or split")

	cmd.AddCommand(
		newRangeCommand(opts),
		newNearestCommand(opts),
		newContainsCommand(opts),
		newCheckCommand(opts),
		newGenCommand(opts),
	)
	return cmd
}

// loadTree builds a tree from the point file. Points outside the unit square are skipped and
// reported on errOut.
func loadTree(opts *globalOpts, name string, errOut io.Writer) (*kdtree.Tree, error) {
	pruning, err := kdtree.PruningFor(opts.pruning)
	if err != nil {
		return nil, err
	}
	points, err := pointfile.ReadFile(name)
	if err != nil {
		return nil, err
	}
	tree := kdtree.New(kdtree.WithPruning(pruning))
	var skipped int
	for _, p := range points {
		if err := tree.Insert(p); err != nil {
			skipped++
		}
	}
	if skipped > 0 {
		_, _ = fmt.Fprintf(errOut, "skipped %d points outside the unit square\n", skipped)
	}
	return tree, nil
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not a number", arg)
		}
		values[i] = v
	}
	return values, nil
}

// printResult writes v as json or yaml, or calls text for the plain format.
func printResult(w io.Writer, format string, v interface{}, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		out, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "text", "":
		return text(w)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

type pointsResult struct {
	Points []geom.Point `json:"points"`
}

func printPoints(w io.Writer, format string, points []geom.Point) error {
	return printResult(w, format, pointsResult{Points: points}, func(w io.Writer) error {
		return pointfile.Write(w, points)
	})
}
