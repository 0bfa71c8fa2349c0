package model_selection

import (
	"context"
	"math/rand"
	"testing"

	"github.com/YuminosukeSato/knnloo/core/model"
	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/YuminosukeSato/knnloo/pkg/log"
	"github.com/YuminosukeSato/knnloo/preprocessing"
	"github.com/YuminosukeSato/knnloo/sklearn/neighbors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDataset(t *testing.T, rows [][]float64, labels string) *dataset.Dataset {
	t.Helper()
	require.Len(t, labels, len(rows))
	samples := make([]dataset.Sample, len(rows))
	for i, r := range rows {
		samples[i] = dataset.Sample{Features: r, Label: dataset.Label(labels[i])}
	}
	ds, err := dataset.NewDataset(samples)
	require.NoError(t, err)
	return ds
}

func randomDataset(t *testing.T, n, features int, seed int64) *dataset.Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	samples := make([]dataset.Sample, n)
	for i := range samples {
		row := make([]float64, features)
		for f := range row {
			row[f] = rng.NormFloat64() * 10
		}
		label := dataset.LabelH
		if row[0]+rng.NormFloat64()*5 > 0 {
			label = dataset.LabelP
		}
		samples[i] = dataset.Sample{Features: row, Label: label}
	}
	ds, err := dataset.NewDataset(samples)
	require.NoError(t, err)
	return ds
}

// recordingClassifier checks every training view and predicts H.
type recordingClassifier struct {
	t     *testing.T
	k     int
	sizes []int
}

func (r *recordingClassifier) NeighborCount() int { return r.k }

func (r *recordingClassifier) Classify(query []float64, train model.LabeledSet) (dataset.Label, error) {
	r.sizes = append(r.sizes, train.Len())
	prev := -1.0
	for i := 0; i < train.Len(); i++ {
		v := train.Row(i)[0]
		assert.NotEqual(r.t, query[0], v, "held-out sample is in its own training set")
		assert.Greater(r.t, v, prev, "training order changed")
		prev = v
	}
	return dataset.LabelH, nil
}

type panickingClassifier struct{}

func (panickingClassifier) NeighborCount() int { return 1 }

func (panickingClassifier) Classify([]float64, model.LabeledSet) (dataset.Label, error) {
	panic("boom")
}

func TestEvaluateSeparableScenario(t *testing.T) {
	ds := newDataset(t, [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 9}}, "HHPP")
	require.NoError(t, preprocessing.NewMinMaxScaler().FitTransformInPlace(ds))

	clf := neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(1))
	res, err := NewEvaluator(clf).Evaluate(context.Background(), ds)

	require.NoError(t, err)
	assert.Equal(t, 4, res.NSamples)
	assert.Equal(t, 4, res.Correct)
	assert.Equal(t, 100.0, res.Accuracy)
	assert.Equal(t, []dataset.Label{'H', 'H', 'P', 'P'}, res.Predictions)
	assert.Equal(t, 2, res.Confusion.TruePositive)
	assert.Equal(t, 2, res.Confusion.TrueNegative)
}

func TestEvaluateAllWrong(t *testing.T) {
	ds := newDataset(t, [][]float64{{0}, {1}}, "HP")

	clf := neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(1))
	res, err := NewEvaluator(clf).Evaluate(context.Background(), ds)

	require.NoError(t, err)
	assert.Equal(t, 0, res.Correct)
	assert.Equal(t, 0.0, res.Accuracy)
	assert.Equal(t, []dataset.Label{'P', 'H'}, res.Predictions)
}

func TestEvaluateEachSampleHeldOutOnce(t *testing.T) {
	ds := newDataset(t, [][]float64{{0}, {1}, {2}, {3}, {4}}, "HPHPH")
	clf := &recordingClassifier{t: t, k: 1}

	var folds []FoldResult
	ev := NewEvaluator(clf)
	ev.OnFold = func(f FoldResult) { folds = append(folds, f) }

	res, err := ev.Evaluate(context.Background(), ds)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4, 4, 4, 4}, clf.sizes)
	require.Len(t, folds, 5)
	for i, f := range folds {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, 4, f.TrainSize)
		assert.Equal(t, ds.Label(i), f.Truth)
	}
	// always predicting H gets the three H samples right
	assert.Equal(t, 3, res.Correct)
	assert.Equal(t, 60.0, res.Accuracy)
}

func TestEvaluateNeighborBounds(t *testing.T) {
	ds := newDataset(t, [][]float64{{0}, {1}, {2}, {3}}, "HHPP")
	ctx := context.Background()

	t.Run("k equal to n-1", func(t *testing.T) {
		clf := neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(3))
		_, err := NewEvaluator(clf).Evaluate(ctx, ds)
		assert.NoError(t, err)
	})

	for _, k := range []int{0, 4, 5} {
		clf := neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(k))
		_, err := NewEvaluator(clf).Evaluate(ctx, ds)
		require.Error(t, err, "k=%d", k)

		var cfgErr *errors.ConfigurationError
		require.True(t, errors.As(err, &cfgErr), "k=%d", k)
		assert.Equal(t, "n_neighbors", cfgErr.Param)
	}
}

func TestEvaluateEmptyDataset(t *testing.T) {
	clf := neighbors.NewKNeighborsClassifier()
	_, err := NewEvaluator(clf).Evaluate(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestEvaluateParallelMatchesSequential(t *testing.T) {
	ds := randomDataset(t, 97, 6, 7)
	clf := neighbors.NewKNeighborsClassifier()
	ctx := context.Background()

	seq, err := NewEvaluator(clf).Evaluate(ctx, ds)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		ev := NewEvaluator(clf)
		ev.Workers = workers
		folds := 0
		ev.OnFold = func(FoldResult) { folds++ }

		par, err := ev.Evaluate(ctx, ds)
		require.NoError(t, err)
		assert.Equal(t, seq.Correct, par.Correct, "workers=%d", workers)
		assert.Equal(t, seq.Accuracy, par.Accuracy, "workers=%d", workers)
		assert.Equal(t, seq.Predictions, par.Predictions, "workers=%d", workers)
		assert.Equal(t, seq.Confusion, par.Confusion, "workers=%d", workers)
		assert.Equal(t, ds.Len(), folds)
	}
}

func TestEvaluateDoesNotModifyDataset(t *testing.T) {
	ds := randomDataset(t, 20, 3, 1)
	before := ds.Clone()

	_, err := NewEvaluator(neighbors.NewKNeighborsClassifier()).Evaluate(context.Background(), ds)
	require.NoError(t, err)

	for i := 0; i < ds.Len(); i++ {
		assert.Equal(t, before.Row(i), ds.Row(i))
		assert.Equal(t, before.Label(i), ds.Label(i))
	}
}

func TestEvaluateCancelled(t *testing.T) {
	ds := randomDataset(t, 20, 2, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEvaluator(neighbors.NewKNeighborsClassifier()).Evaluate(ctx, ds)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEvaluateRecoversPanic(t *testing.T) {
	ds := newDataset(t, [][]float64{{0}, {1}, {2}}, "HPH")

	_, err := NewEvaluator(panickingClassifier{}).Evaluate(context.Background(), ds)
	require.Error(t, err)

	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "boom", panicErr.PanicValue)
}

func TestEvaluateLogs(t *testing.T) {
	ds := newDataset(t, [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 9}}, "HHPP")
	logger, _ := log.NewTestLogger(log.LevelDebug)

	ev := NewEvaluator(neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(1)))
	ev.Logger = logger
	_, err := ev.Evaluate(context.Background(), ds)
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("leave-one-out finished"))
	assert.True(t, logger.ContainsField(log.OperationKey, log.OperationEvaluate))
	assert.True(t, logger.ContainsField(log.AccuracyKey, 100.0))
	assert.True(t, logger.ContainsField(log.FoldKey, 3.0))
}

func TestCrossValScore(t *testing.T) {
	ds := newDataset(t, [][]float64{{0}, {0.1}, {5}, {5.1}}, "HHPP")

	score, err := CrossValScore(context.Background(), neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(1)), ds)
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}
