package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataset(t *testing.T, rows [][]float64) *dataset.Dataset {
	t.Helper()
	samples := make([]dataset.Sample, len(rows))
	for i, r := range rows {
		label := dataset.LabelH
		if i%2 == 1 {
			label = dataset.LabelP
		}
		samples[i] = dataset.Sample{Features: r, Label: label}
	}
	ds, err := dataset.NewDataset(samples)
	require.NoError(t, err)
	return ds
}

func TestComputeScalingParameters(t *testing.T) {
	ds := newDataset(t, [][]float64{
		{0, 5, -1},
		{10, 5, 3},
		{4, 5, 1},
	})

	var warnings []error
	errors.SetWarningHandler(func(w error) { warnings = append(warnings, w) })
	defer errors.SetWarningHandler(nil)

	params, err := ComputeScalingParameters(ds)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 5, -1}, params.Min)
	// constant column widened to min+1
	assert.Equal(t, []float64{10, 6, 3}, params.Max)
	for f := range params.Min {
		assert.Greater(t, params.Max[f], params.Min[f])
	}

	require.Len(t, warnings, 1)
	var cw *errors.ConstantFeatureWarning
	require.True(t, errors.As(warnings[0], &cw))
	assert.Equal(t, 1, cw.Feature)
}

func TestApplyScaling(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	ds := newDataset(t, [][]float64{
		{0, 5, -1},
		{10, 5, 3},
		{4, 5, 1},
	})
	params, err := ComputeScalingParameters(ds)
	require.NoError(t, err)
	require.NoError(t, ApplyScaling(ds, params))

	want := [][]float64{
		{0, 0, 0},
		{1, 0, 1},
		{0.4, 0, 0.5},
	}
	for i, row := range want {
		assert.InDeltaSlice(t, row, ds.Row(i), 1e-12, "row %d", i)
	}
	for i := 0; i < ds.Len(); i++ {
		for _, v := range ds.Row(i) {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestScalingIdempotence(t *testing.T) {
	errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(nil)

	ds := newDataset(t, [][]float64{
		{3.2, 100, 7},
		{-1.5, 250, 7},
		{0.25, 175, 7},
		{8, 120, 7},
	})
	require.NoError(t, NewMinMaxScaler().FitTransformInPlace(ds))
	before := ds.Clone()

	params, err := ComputeScalingParameters(ds)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, params.Min)
	// non-constant features rescale to exactly [0,1]; the constant column is
	// all zero and widened again
	assert.Equal(t, []float64{1, 1, 1}, params.Max)

	require.NoError(t, ApplyScaling(ds, params))
	for i := 0; i < ds.Len(); i++ {
		assert.Equal(t, before.Row(i), ds.Row(i))
	}
}

func TestComputeScalingParametersErrors(t *testing.T) {
	_, err := ComputeScalingParameters(&dataset.Dataset{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	ds := newDataset(t, [][]float64{{1, math.NaN()}, {2, 3}})
	_, err = ComputeScalingParameters(ds)
	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr), "got %v", err)
	assert.Equal(t, 1, numErr.Index)
}

func TestComputeScalingParametersRejectsNonFiniteInAnyRow(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		feature int
	}{
		{"NaN in middle row", [][]float64{{1, 2}, {math.NaN(), 3}, {5, 4}}, 0},
		{"NaN in last row", [][]float64{{1, 2}, {3, 3}, {5, math.NaN()}}, 1},
		{"positive Inf", [][]float64{{1, 2}, {math.Inf(1), 3}}, 0},
		{"negative Inf", [][]float64{{1, 2}, {3, math.Inf(-1)}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ComputeScalingParameters(newDataset(t, tt.rows))
			assert.Nil(t, params)

			var numErr *errors.NumericalInstabilityError
			require.True(t, errors.As(err, &numErr), "got %v", err)
			assert.Equal(t, tt.feature, numErr.Index)
		})
	}
}

func TestMinMaxScalerFitRejectsNaN(t *testing.T) {
	ds := newDataset(t, [][]float64{{0, 0}, {0, 1}, {math.NaN(), 10}, {10, 9}})
	scaler := NewMinMaxScaler()

	err := scaler.FitTransformInPlace(ds)
	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr), "got %v", err)
	assert.False(t, scaler.IsFitted())
	assert.Equal(t, 10.0, ds.Row(2)[1])
}

func TestApplyScalingDimensionMismatch(t *testing.T) {
	ds := newDataset(t, [][]float64{{1, 2}, {3, 4}})
	params := &ScalingParameters{Min: []float64{0}, Max: []float64{1}}

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(ApplyScaling(ds, params), &dimErr))
}

func TestMinMaxScaler(t *testing.T) {
	ds := newDataset(t, [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 9}})
	scaler := NewMinMaxScaler()

	assert.Equal(t, "MinMaxScaler(feature_range=[0.0, 1.0])", scaler.String())
	var nfErr *errors.NotFittedError
	assert.True(t, errors.As(scaler.TransformInPlace(ds), &nfErr))
	_, err := scaler.TransformRow([]float64{1, 1})
	assert.True(t, errors.As(err, &nfErr))

	require.NoError(t, scaler.FitTransformInPlace(ds))
	assert.True(t, scaler.IsFitted())
	assert.Equal(t, "MinMaxScaler(feature_range=[0.0, 1.0], n_features=2)", scaler.String())
	assert.Equal(t, []float64{1, 0.9}, ds.Row(3))

	row, err := scaler.TransformRow([]float64{5, 5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.5}, row)

	_, err = scaler.TransformRow([]float64{5})
	assert.Error(t, err)

	_, err = scaler.TransformRow([]float64{5, math.NaN()})
	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, 1, numErr.Index)
}

func TestMinMaxScalerZeroValue(t *testing.T) {
	var scaler MinMaxScaler
	ds := newDataset(t, [][]float64{{1}, {2}})
	require.NoError(t, scaler.Fit(ds))
	assert.Equal(t, []float64{1}, scaler.Params.Min)
}
