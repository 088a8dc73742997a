package geom

import (
	"fmt"
	"math"
)

type DistanceFunc func(p, p1 Point) float64

type DistanceFuncType string

const (
	DistanceFuncTypeEuclidean DistanceFuncType = "EUCLIDEAN"
	DistanceFuncTypeChebyshev DistanceFuncType = "CHEBYSHEV"
	DistanceFuncTypeManhattan DistanceFuncType = "MANHATTAN"
)

func EuclideanDistance(p, p1 Point) float64 {
	return p.DistanceTo(p1)
}

func ChebyshevDistance(p, p1 Point) float64 {
	return math.Max(math.Abs(p.X-p1.X), math.Abs(p.Y-p1.Y))
}

func ManhattanDistance(p, p1 Point) float64 {
	return math.Abs(p.X-p1.X) + math.Abs(p.Y-p1.Y)
}

func DistanceFuncFor(d DistanceFuncType) (DistanceFunc, error) {
	switch d {
	case DistanceFuncTypeEuclidean:
		return EuclideanDistance, nil
	case DistanceFuncTypeChebyshev:
		return ChebyshevDistance, nil
	case DistanceFuncTypeManhattan:
		return ManhattanDistance, nil
	default:
		return nil, fmt.Errorf("unknown distance function: %s", d)
	}
}
