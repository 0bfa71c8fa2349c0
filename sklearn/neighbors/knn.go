// Package neighbors implements the distance-weighted k-nearest-neighbors
// classifier.
//
// A query is labeled by the K training samples closest to it. Each of them
// votes for its own label with weight 1/(distance+epsilon); the label with
// the strictly larger total wins, and an exact tie goes to H.
package neighbors

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/YuminosukeSato/knnloo/core/model"
	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/metrics"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
)

const (
	// DefaultNNeighbors is the K used when none is configured.
	DefaultNNeighbors = 5
	// DefaultEpsilon keeps a duplicate sample at distance 0 from producing
	// an infinite weight.
	DefaultEpsilon = 1e-6
)

// Neighbor is one training sample ranked against a query.
type Neighbor struct {
	Index    int
	Distance float64
	Label    dataset.Label
}

// Weights holds the accumulated vote of each label.
type Weights struct {
	P float64
	H float64
}

// Winner applies the decision rule: P only if its weight is strictly
// greater, H otherwise.
func (w Weights) Winner() dataset.Label {
	if w.P > w.H {
		return dataset.LabelP
	}
	return dataset.LabelH
}

// KNeighborsClassifier is a distance-weighted KNN classifier.
type KNeighborsClassifier struct {
	model.BaseEstimator

	nNeighbors int
	epsilon    float64
	metric     metrics.DistanceFunc

	train *dataset.Dataset
}

var (
	_ model.QueryClassifier = (*KNeighborsClassifier)(nil)
	_ model.Classifier      = (*KNeighborsClassifier)(nil)
)

// NewKNeighborsClassifier creates a classifier with K=5, epsilon=1e-6 and
// Euclidean distance unless overridden by opts.
func NewKNeighborsClassifier(opts ...Option) *KNeighborsClassifier {
	c := &KNeighborsClassifier{
		nNeighbors: DefaultNNeighbors,
		epsilon:    DefaultEpsilon,
		metric:     metrics.EuclideanDistance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NeighborCount returns K.
func (c *KNeighborsClassifier) NeighborCount() int {
	return c.nNeighbors
}

// Epsilon returns the distance offset used for weighting.
func (c *KNeighborsClassifier) Epsilon() float64 {
	return c.epsilon
}

// ValidateFor checks that K can be served by a training set of trainSize
// samples.
func (c *KNeighborsClassifier) ValidateFor(trainSize int) error {
	if c.nNeighbors < 1 {
		return errors.NewConfigurationError("n_neighbors", "must be at least 1", c.nNeighbors)
	}
	if c.nNeighbors > trainSize {
		return errors.NewConfigurationError("n_neighbors",
			fmt.Sprintf("must not exceed the %d available training samples", trainSize), c.nNeighbors)
	}
	if c.epsilon < 0 {
		return errors.NewConfigurationError("epsilon", "must not be negative", c.epsilon)
	}
	return nil
}

// FindNeighbors ranks every sample of train by its distance to query,
// closest first. Samples at equal distance keep their order in train.
func FindNeighbors(query []float64, train model.LabeledSet, metric metrics.DistanceFunc) []Neighbor {
	return findNeighborsInto(make([]Neighbor, train.Len()), query, train, metric)
}

// findNeighborsInto is FindNeighbors writing into neighbors, which must
// hold train.Len() entries.
func findNeighborsInto(neighbors []Neighbor, query []float64, train model.LabeledSet, metric metrics.DistanceFunc) []Neighbor {
	for i := range neighbors {
		neighbors[i] = Neighbor{
			Index:    i,
			Distance: metric(query, train.Row(i)),
			Label:    train.Label(i),
		}
	}
	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return neighbors
}

// Vote accumulates 1/(distance+eps) per label over the first k neighbors.
// neighbors must be sorted and hold at least k entries.
func Vote(neighbors []Neighbor, k int, eps float64) Weights {
	var w Weights
	for _, n := range neighbors[:k] {
		weight := 1.0 / (n.Distance + eps)
		switch n.Label {
		case dataset.LabelP:
			w.P += weight
		case dataset.LabelH:
			w.H += weight
		}
	}
	return w
}

// Classify labels query using train as the training set. It does not
// require Fit and does not modify the classifier.
func (c *KNeighborsClassifier) Classify(query []float64, train model.LabeledSet) (dataset.Label, error) {
	if err := c.ValidateFor(train.Len()); err != nil {
		return 0, err
	}
	buf := defaultPool.Get(train.Len())
	defer defaultPool.Put(buf)
	neighbors := findNeighborsInto(buf.Neighbors, query, train, c.metric)
	return Vote(neighbors, c.nNeighbors, c.epsilon).Winner(), nil
}

// Fit stores ds as the training set used by Predict. The dataset is
// referenced, not copied.
func (c *KNeighborsClassifier) Fit(ds *dataset.Dataset) error {
	if ds.Len() == 0 {
		return errors.NewEmptyDatasetError("KNeighborsClassifier.Fit")
	}
	if err := c.ValidateFor(ds.Len()); err != nil {
		return err
	}
	c.train = ds
	c.SetFitted()
	return nil
}

// Predict labels each row against the fitted training set.
func (c *KNeighborsClassifier) Predict(rows [][]float64) ([]dataset.Label, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNeighborsClassifier", "Predict")
	}
	out := make([]dataset.Label, len(rows))
	for i, row := range rows {
		if len(row) != c.train.NFeatures() {
			return nil, errors.NewSampleDimensionError("KNeighborsClassifier.Predict", i, c.train.NFeatures(), len(row))
		}
		label, err := c.Classify(row, c.train)
		if err != nil {
			return nil, err
		}
		out[i] = label
	}
	return out, nil
}

// GetParams returns the classifier's hyperparameters.
func (c *KNeighborsClassifier) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"n_neighbors": c.nNeighbors,
		"epsilon":     c.epsilon,
		"weights":     "distance",
	}
}

// String returns a string representation of the classifier.
func (c *KNeighborsClassifier) String() string {
	return fmt.Sprintf("KNeighborsClassifier(n_neighbors=%d, epsilon=%g)", c.nNeighbors, c.epsilon)
}
