package model_selection

import (
	"context"
	"sync"
	"time"

	"github.com/YuminosukeSato/knnloo/core/model"
	"github.com/YuminosukeSato/knnloo/core/parallel"
	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/metrics"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/YuminosukeSato/knnloo/pkg/log"
)

// FoldResult is the outcome of classifying one held-out sample.
type FoldResult struct {
	Index      int
	TrainSize  int
	Truth      dataset.Label
	Prediction dataset.Label
}

// Correct reports whether the prediction matched the true label.
func (f FoldResult) Correct() bool {
	return f.Truth == f.Prediction
}

// Result aggregates a full leave-one-out run.
type Result struct {
	NSamples    int
	Correct     int
	Accuracy    float64 // percent
	Predictions []dataset.Label
	Confusion   metrics.ConfusionMatrix
	Duration    time.Duration
}

// Evaluator runs leave-one-out cross-validation: every sample is classified
// once using all other samples as training data.
type Evaluator struct {
	// Classifier labels each held-out sample.
	Classifier model.QueryClassifier

	// Workers is the number of goroutines used. Values <= 1 run the folds
	// sequentially in index order.
	Workers int

	// OnFold, if set, is called once per held-out sample. Calls are
	// serialised but their order is only guaranteed when Workers <= 1.
	OnFold func(FoldResult)

	// Logger defaults to the process-wide logger.
	Logger log.Logger
}

// NewEvaluator creates a sequential evaluator for clf.
func NewEvaluator(clf model.QueryClassifier) *Evaluator {
	return &Evaluator{Classifier: clf, Workers: 1}
}

// Validate checks the run can start on a dataset of n samples: it must not
// be empty and K must be smaller than n so that every training set of n-1
// samples can supply K neighbors.
func (e *Evaluator) Validate(n int) error {
	if n == 0 {
		return errors.NewEmptyDatasetError("Evaluator.Evaluate")
	}
	k := e.Classifier.NeighborCount()
	if k < 1 {
		return errors.NewConfigurationError("n_neighbors", "must be at least 1", k)
	}
	if k >= n {
		return errors.NewConfigurationError("n_neighbors",
			"must be smaller than the number of samples", k)
	}
	return nil
}

// Evaluate classifies every sample of ds against the rest and returns the
// accuracy. ds is only read.
func (e *Evaluator) Evaluate(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	n := ds.Len()
	if err := e.Validate(n); err != nil {
		return nil, err
	}

	logger := e.Logger
	if logger == nil {
		logger = log.GetLoggerWithName("model_selection")
	}
	logger = logger.With(log.OperationKey, log.OperationEvaluate, log.PhaseKey, log.PhaseValidation)
	logger.Debug("leave-one-out started",
		log.SamplesKey, n,
		log.FeaturesKey, ds.NFeatures(),
		log.NeighborsKey, e.Classifier.NeighborCount(),
		log.WorkersKey, max(e.Workers, 1),
	)

	var splitter LeaveOneOut
	nSplits := splitter.GetNSplits(n)

	start := time.Now()
	predictions := make([]dataset.Label, n)

	var (
		mu        sync.Mutex
		correct   int
		confusion metrics.ConfusionMatrix
	)

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}
	err := parallel.ParallelizeWithThreshold(ctx, nSplits, 0, workers, func(ctx context.Context, lo, hi int) (err error) {
		defer errors.Recover(&err, "leave-one-out")

		// per-worker partial sums, merged once at the end of the chunk
		var partial int
		var partialCM metrics.ConfusionMatrix
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			fold, err := e.evaluateFold(splitter, ds, i)
			if err != nil {
				return err
			}
			predictions[i] = fold.Prediction
			partialCM.Add(fold.Truth, fold.Prediction)
			if fold.Correct() {
				partial++
			}
			if e.OnFold != nil {
				mu.Lock()
				e.OnFold(fold)
				mu.Unlock()
			}
			if logger.Enabled(ctx, log.LevelDebug) {
				logger.Debug("fold classified",
					log.FoldKey, i,
					log.TrueLabelKey, fold.Truth.String(),
					log.PredictionKey, fold.Prediction.String(),
				)
			}
		}

		mu.Lock()
		correct += partial
		confusion.Merge(partialCM)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "leave-one-out evaluation")
	}

	accuracy, err := metrics.Accuracy(correct, n)
	if err != nil {
		return nil, err
	}
	res := &Result{
		NSamples:    n,
		Correct:     correct,
		Accuracy:    accuracy,
		Predictions: predictions,
		Confusion:   confusion,
		Duration:    time.Since(start),
	}

	logger.Info("leave-one-out finished",
		log.SamplesKey, n,
		log.CorrectKey, correct,
		log.AccuracyKey, accuracy,
		log.DurationMsKey, res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Evaluator) evaluateFold(splitter LeaveOneOut, ds *dataset.Dataset, i int) (FoldResult, error) {
	train := splitter.TrainingSet(ds, i)
	pred, err := e.Classifier.Classify(ds.Row(i), train)
	if err != nil {
		return FoldResult{}, errors.Wrapf(err, "classifying sample %d", i)
	}
	return FoldResult{
		Index:      i,
		TrainSize:  train.Len(),
		Truth:      ds.Label(i),
		Prediction: pred,
	}, nil
}

// CrossValScore is a convenience wrapper returning only the accuracy in
// percent of a sequential leave-one-out run.
func CrossValScore(ctx context.Context, clf model.QueryClassifier, ds *dataset.Dataset) (float64, error) {
	res, err := NewEvaluator(clf).Evaluate(ctx, ds)
	if err != nil {
		return 0, err
	}
	return res.Accuracy, nil
}
