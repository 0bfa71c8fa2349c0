package metrics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 6, 3}, 5},
		{"Identical", []float64{0.3, 0.7}, []float64{0.3, 0.7}, 0},
		{"Zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"Single", []float64{2}, []float64{-1}, 3},
		{"Unit diagonal", []float64{0, 0}, []float64{1, 1}, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, EuclideanDistance(tt.a, tt.b), 1e-12)
		})
	}
}

func TestEuclideanDistanceProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		a := make([]float64, 20)
		b := make([]float64, 20)
		for f := range a {
			a[f] = r.Float64()
			b[f] = r.Float64()
		}
		d := EuclideanDistance(a, b)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.Equal(t, d, EuclideanDistance(b, a))
		assert.Equal(t, 0.0, EuclideanDistance(a, a))
	}
}

func TestEuclideanDistanceLengthMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { EuclideanDistance([]float64{1, 2}, []float64{1}) })
}

func TestDistanceLookup(t *testing.T) {
	a, b := []float64{0, 0}, []float64{3, -4}

	for name, want := range map[string]float64{"": 5, "euclidean": 5, "manhattan": 7, "chebyshev": 4} {
		fn, ok := Distance(name)
		assert.True(t, ok, name)
		assert.InDelta(t, want, fn(a, b), 1e-12, name)
	}
	_, ok := Distance("cosine")
	assert.False(t, ok)
}
