// Package model_selection provides leave-one-out cross-validation for the
// neighbor classifiers.
package model_selection

import (
	"github.com/YuminosukeSato/knnloo/core/model"
	"github.com/YuminosukeSato/knnloo/dataset"
)

// CVFold represents a single fold in cross-validation
type CVFold struct {
	TrainIndices []int
	TestIndices  []int
}

// LeaveOneOut holds out each sample exactly once.
type LeaveOneOut struct{}

// GetNSplits returns the number of folds for n samples.
func (LeaveOneOut) GetNSplits(n int) int {
	return n
}

// Split returns one fold per sample. Fold i tests on [i] and trains on
// every other index in ascending order, the same indices the HoldOut view
// for sample i presents.
func (LeaveOneOut) Split(n int) []CVFold {
	folds := make([]CVFold, n)
	for i := 0; i < n; i++ {
		view := HoldOut{n: n, excluded: i}
		train := make([]int, view.Len())
		for j := range train {
			train[j] = view.TrainIndex(j)
		}
		folds[i] = CVFold{
			TrainIndices: train,
			TestIndices:  []int{i},
		}
	}
	return folds
}

// TrainingSet returns the training data of fold i: ds without sample i.
func (LeaveOneOut) TrainingSet(ds *dataset.Dataset, i int) HoldOut {
	return NewHoldOut(ds, i)
}

// HoldOut is a training-set view of a dataset with one sample removed. It
// presents the remaining samples in their original order without copying
// them, so Row(i) of the view is the dataset row TrainIndex(i).
type HoldOut struct {
	ds       *dataset.Dataset
	n        int
	excluded int
}

var _ model.LabeledSet = HoldOut{}

// NewHoldOut returns the view of ds without sample excluded.
func NewHoldOut(ds *dataset.Dataset, excluded int) HoldOut {
	return HoldOut{ds: ds, n: ds.Len(), excluded: excluded}
}

// Len returns the number of training samples, one less than the dataset.
func (h HoldOut) Len() int {
	return h.n - 1
}

// TrainIndex maps a view index to the dataset index.
func (h HoldOut) TrainIndex(i int) int {
	if i >= h.excluded {
		return i + 1
	}
	return i
}

// Row returns the features of the i-th training sample.
func (h HoldOut) Row(i int) []float64 {
	return h.ds.Row(h.TrainIndex(i))
}

// Label returns the label of the i-th training sample.
func (h HoldOut) Label(i int) dataset.Label {
	return h.ds.Label(h.TrainIndex(i))
}

// Excluded returns the held-out dataset index.
func (h HoldOut) Excluded() int {
	return h.excluded
}
