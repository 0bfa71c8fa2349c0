package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Evaluate",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "knnloo: Evaluate: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			wantMsg: "knnloo: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			assert.Equal(t, tt.wantMsg, err.Error())
			// スタックトレースの存在確認
			assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")

			var modelErr *ModelError
			assert.True(t, As(err, &modelErr))
		})
	}
}

func TestNewEmptyDatasetError(t *testing.T) {
	err := NewEmptyDatasetError("Evaluator.Evaluate")

	assert.True(t, Is(err, ErrEmptyData))
	assert.Equal(t, "knnloo: Evaluator.Evaluate: empty dataset: empty data", err.Error())
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("ApplyScaling", 20, 19, 1)
	assert.Equal(t, "knnloo: ApplyScaling: dimension mismatch on axis 1 (features). Expected 20, got 19", err.Error())

	var dimErr *DimensionError
	require.True(t, As(err, &dimErr))
	assert.Equal(t, -1, dimErr.Index)

	err = NewSampleDimensionError("NewDataset", 7, 3, 2)
	assert.Equal(t, "knnloo: NewDataset: dimension mismatch on axis 1 (features) at sample 7. Expected 3, got 2", err.Error())
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("MinMaxScaler", "Transform")

	assert.Equal(t, "knnloo: MinMaxScaler: this model is not fitted yet. Call Fit() before using Transform()", err.Error())
	var notFittedErr *NotFittedError
	assert.True(t, As(err, &notFittedErr))
}

func TestNewConfigurationError(t *testing.T) {
	err := NewConfigurationError("n_neighbors", "must be smaller than the number of samples", 4)

	assert.Equal(t, "knnloo: invalid configuration for 'n_neighbors': must be smaller than the number of samples (got: 4)", err.Error())
	var cfgErr *ConfigurationError
	require.True(t, As(err, &cfgErr))
	assert.Equal(t, "n_neighbors", cfgErr.Param)
}

func TestNewMalformedRecordError(t *testing.T) {
	err := NewMalformedRecordError("DARWIN.csv", 12, "label", "missing value")
	assert.Equal(t, "knnloo: DARWIN.csv: malformed record 12: label: missing value", err.Error())

	err = NewMalformedRecordError("", 3, "feature_2", "not a number")
	assert.Equal(t, "knnloo: malformed record 3: feature_2: not a number", err.Error())

	var recErr *MalformedRecordError
	require.True(t, As(err, &recErr))
	assert.Equal(t, 3, recErr.Record)
}

func TestMarshalZerologObject(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Error().Object("detail", &ConfigurationError{Param: "features", Reason: "header mismatch", Value: 18}).Msg("config")

	var entry map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ConfigurationError", entry["detail"]["type"])
	assert.Equal(t, "features", entry["detail"]["param"])
}

func TestWrapAndIs(t *testing.T) {
	wrapped := Wrapf(ErrEmptyData, "in %s", "ReadCSV")

	assert.True(t, Is(wrapped, ErrEmptyData))
	assert.True(t, strings.Contains(wrapped.Error(), "in ReadCSV"))
}

func TestWarn(t *testing.T) {
	defer SetWarningHandler(warningHandler)
	defer SetZerologWarnFunc(nil)

	var got []error
	SetWarningHandler(func(w error) { got = append(got, w) })
	Warn(NewConstantFeatureWarning(3, 1.5))
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Error(), "feature 3 is constant")

	var viaZerolog int
	SetZerologWarnFunc(func(error) { viaZerolog++ })
	Warn(NewConstantFeatureWarning(4, 0))
	assert.Equal(t, 1, viaZerolog)
	assert.Len(t, got, 1)
}

func TestCheckScalar(t *testing.T) {
	assert.NoError(t, CheckScalar("op", 3.5, 0))
	assert.NoError(t, CheckScalar("op", -2, 0))

	err := CheckScalar("MinMaxScaler.Fit", math.NaN(), 4)
	var numErr *NumericalInstabilityError
	require.True(t, As(err, &numErr))
	assert.Equal(t, 4, numErr.Index)

	assert.Error(t, CheckScalar("accuracy", math.Inf(1), 0))
}
