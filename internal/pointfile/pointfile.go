// Package pointfile reads and writes point lists: whitespace separated "x y" pairs, one pair per line
// by convention, though any whitespace between numbers is accepted.
package pointfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-sod/kdset/pkg/geom"
)

var ErrMalformed = errors.New("malformed point list")

func Read(r io.Reader) ([]geom.Point, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var (
		points []geom.Point
		coords [2]float64
		token  int
	)
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q is not a number", ErrMalformed, token, scanner.Text())
		}
		coords[token%2] = v
		if token%2 == 1 {
			points = append(points, geom.Point{X: coords[0], Y: coords[1]})
		}
		token++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading point list: %w", err)
	}
	if token%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates (%d)", ErrMalformed, token)
	}
	return points, nil
}

func ReadFile(name string) ([]geom.Point, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open point list: %w", err)
	}
	defer f.Close()

	points, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return points, nil
}

func Write(w io.Writer, points []geom.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range points {
		if _, err := fmt.Fprintf(bw, "%s %s\n",
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
		); err != nil {
			return fmt.Errorf("writing point list: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing point list: %w", err)
	}
	return nil
}
