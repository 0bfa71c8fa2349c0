// Package metrics provides the distance metric used for neighbor search and
// the classification scores reported by evaluation.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const errLength = "metrics: vector length mismatch"

// DistanceFunc computes the distance between two feature vectors of equal
// length.
type DistanceFunc func(a, b []float64) float64

// EuclideanDistance returns the L2 norm of a - b:
//
//	sqrt(sum((a[f] - b[f])^2))
//
// It is symmetric, non-negative and zero iff a and b are identical. Vectors
// of different lengths are a caller error and panic.
func EuclideanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(errLength)
	}
	var sum float64
	for f, v := range a {
		d := v - b[f]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanDistance returns the L1 norm of a - b.
func ManhattanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// ChebyshevDistance returns the L-infinity norm of a - b.
func ChebyshevDistance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

// Distance returns the distance function registered under name, or false.
func Distance(name string) (DistanceFunc, bool) {
	switch name {
	case "euclidean", "":
		return EuclideanDistance, true
	case "manhattan":
		return ManhattanDistance, true
	case "chebyshev":
		return ChebyshevDistance, true
	default:
		return nil, false
	}
}
