// Package dataset holds labeled biomarker samples and reads them from CSV
// files or SQLite tables.
package dataset

import (
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sample is one labeled feature vector.
type Sample struct {
	ID       string
	Features []float64
	Label    Label
}

// Dataset is an ordered set of samples sharing one feature count. Features
// are stored row-major in a gonum matrix so that scaling and distance
// computation work on contiguous rows.
type Dataset struct {
	ids    []string
	labels []Label
	x      *mat.Dense
}

// NewDataset builds a Dataset from samples. Every sample must have the
// same number of features as the first one and a valid label.
func NewDataset(samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, errors.NewEmptyDatasetError("NewDataset")
	}
	nFeatures := len(samples[0].Features)
	if nFeatures == 0 {
		return nil, errors.NewConfigurationError("features", "samples must have at least one feature", 0)
	}

	data := make([]float64, 0, len(samples)*nFeatures)
	ids := make([]string, len(samples))
	labels := make([]Label, len(samples))
	for i, s := range samples {
		if len(s.Features) != nFeatures {
			return nil, errors.NewSampleDimensionError("NewDataset", i, nFeatures, len(s.Features))
		}
		if !s.Label.Valid() {
			return nil, errors.NewMalformedRecordError("", i+1, "label", "label must be P or H, got "+s.Label.String())
		}
		data = append(data, s.Features...)
		ids[i] = s.ID
		labels[i] = s.Label
	}

	return &Dataset{
		ids:    ids,
		labels: labels,
		x:      mat.NewDense(len(samples), nFeatures, data),
	}, nil
}

// FromMatrix wraps an existing feature matrix. The matrix is used as is,
// not copied. ids may be nil.
func FromMatrix(x *mat.Dense, labels []Label, ids []string) (*Dataset, error) {
	if x == nil || x.IsEmpty() {
		return nil, errors.NewEmptyDatasetError("FromMatrix")
	}
	r, _ := x.Dims()
	if len(labels) != r {
		return nil, errors.NewDimensionError("FromMatrix", r, len(labels), 0)
	}
	if ids == nil {
		ids = make([]string, r)
	} else if len(ids) != r {
		return nil, errors.NewDimensionError("FromMatrix", r, len(ids), 0)
	}
	for i, l := range labels {
		if !l.Valid() {
			return nil, errors.NewMalformedRecordError("", i+1, "label", "label must be P or H, got "+l.String())
		}
	}
	return &Dataset{
		ids:    append([]string(nil), ids...),
		labels: append([]Label(nil), labels...),
		x:      x,
	}, nil
}

// Len returns the number of samples. A zero Dataset has length 0.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.labels)
}

// NFeatures returns the feature count F.
func (d *Dataset) NFeatures() int {
	if d == nil || d.x == nil {
		return 0
	}
	_, c := d.x.Dims()
	return c
}

// Row returns the features of sample i. The slice aliases the dataset's
// storage: writes to it modify the dataset.
func (d *Dataset) Row(i int) []float64 {
	return d.x.RawRowView(i)
}

// Label returns the label of sample i.
func (d *Dataset) Label(i int) Label {
	return d.labels[i]
}

// ID returns the identifier column of sample i.
func (d *Dataset) ID(i int) string {
	return d.ids[i]
}

// Labels returns a copy of all labels in order.
func (d *Dataset) Labels() []Label {
	return append([]Label(nil), d.labels...)
}

// Matrix exposes the underlying feature matrix.
func (d *Dataset) Matrix() *mat.Dense {
	return d.x
}

// Sample returns a copy of sample i.
func (d *Dataset) Sample(i int) Sample {
	return Sample{
		ID:       d.ids[i],
		Features: append([]float64(nil), d.Row(i)...),
		Label:    d.labels[i],
	}
}

// Clone returns a deep copy, useful before in-place scaling.
func (d *Dataset) Clone() *Dataset {
	return &Dataset{
		ids:    append([]string(nil), d.ids...),
		labels: append([]Label(nil), d.labels...),
		x:      mat.DenseCopyOf(d.x),
	}
}

// CountLabels returns the number of samples per label.
func (d *Dataset) CountLabels() map[Label]int {
	counts := make(map[Label]int, len(Labels))
	for _, l := range d.labels {
		counts[l]++
	}
	return counts
}
