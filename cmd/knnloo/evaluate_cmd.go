package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/YuminosukeSato/knnloo/config"
	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/YuminosukeSato/knnloo/pkg/log"
	"github.com/YuminosukeSato/knnloo/preprocessing"
	"github.com/YuminosukeSato/knnloo/sklearn/model_selection"
	"github.com/spf13/cobra"
)

type evaluateCmdConfig struct {
	*rootCmdConfig
	input    string
	features int
	k        int
	workers  int
	metric   string
	table    string
}

func evaluateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	ecc := &evaluateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Estimate classifier accuracy with leave-one-out cross-validation",
		Long: `Load a labeled dataset, scale every feature to [0,1] and classify each
sample against all the others, reporting the share classified correctly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ecc.config(cmd)
			if err != nil {
				return withExitCode(exitConfig, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return ecc.run(ctx, cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&(ecc.input), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().IntVarP(&(ecc.features), "features", "f", 0, "number of feature columns per record (0 derives it from the CSV header)")
	cmd.Flags().IntVarP(&(ecc.k), "neighbors", "k", 0, "number of nearest neighbors that vote")
	cmd.Flags().IntVarP(&(ecc.workers), "workers", "w", 0, "number of goroutines classifying held-out samples")
	cmd.Flags().StringVar(&(ecc.metric), "metric", "", "distance metric: euclidean, manhattan or chebyshev")
	cmd.Flags().StringVar(&(ecc.table), "table", "", "table to read when the input is a SQLite3 file")
	return cmd
}

// config loads the config file and applies the flags set on the command
// line over it.
func (ecc *evaluateCmdConfig) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(ecc.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = ecc.input
	}
	if flags.Changed("features") {
		cfg.Features = ecc.features
	}
	if flags.Changed("neighbors") {
		cfg.K = ecc.k
	}
	if flags.Changed("workers") {
		cfg.Workers = ecc.workers
	}
	if flags.Changed("metric") {
		cfg.Metric = ecc.metric
	}
	if flags.Changed("table") {
		cfg.Table = ecc.table
	}
	if ecc.logLevel != "" {
		cfg.LogLevel = ecc.logLevel
	}
	if ecc.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (ecc *evaluateCmdConfig) run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	logger := log.NewZerologLogger(cmd.ErrOrStderr(), cfg.Level())
	previous := log.GetLogger()
	log.SetLogger(logger)
	errors.SetZerologWarnFunc(logger.Warning())
	defer func() {
		errors.SetZerologWarnFunc(nil)
		log.SetLogger(previous)
	}()

	ds, err := ecc.load(ctx, cmd, cfg, logger)
	if err != nil {
		logger.Error("loading dataset failed", err, log.SourceKey, cfg.Input)
		return withExitCode(exitLoad, err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total samples loaded: %d\n", ds.Len())

	scaler := preprocessing.NewMinMaxScaler()
	if err := errors.SafeExecute("scaling", func() error { return scaler.FitTransformInPlace(ds) }); err != nil {
		logger.Error("scaling failed", err)
		return withExitCode(exitEvaluation, err)
	}

	evaluator := model_selection.NewEvaluator(cfg.Classifier())
	evaluator.Workers = cfg.Workers
	evaluator.Logger = logger.With(log.ComponentKey, "model_selection")
	res, err := evaluator.Evaluate(ctx, ds)
	if err != nil {
		logger.Error("evaluation failed", err)
		return withExitCode(exitEvaluation, err)
	}

	logger.Debug("confusion matrix",
		"true_positive", res.Confusion.TruePositive,
		"false_negative", res.Confusion.FalseNegative,
		"false_positive", res.Confusion.FalsePositive,
		"true_negative", res.Confusion.TrueNegative,
		"sensitivity", res.Confusion.Sensitivity(),
		"specificity", res.Confusion.Specificity(),
	)
	fmt.Fprintf(out, "Model accuracy: %.5f%%\n", res.Accuracy)
	return nil
}

func (ecc *evaluateCmdConfig) load(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger log.Logger) (*dataset.Dataset, error) {
	opts := cfg.ReadOptions()
	logger = logger.With(log.PhaseKey, log.PhaseLoading, log.SourceKey, cfg.Input)
	switch {
	case cfg.Input == "":
		logger.Debug("reading dataset from STDIN")
		opts.Source = "stdin"
		return dataset.ReadCSV(cmd.InOrStdin(), opts)
	case cfg.IsSQLite():
		logger.Debug("reading dataset from SQLite3", "table", cfg.Table)
		return dataset.ReadSQLite(ctx, cfg.Input, cfg.Table, opts)
	default:
		logger.Debug("reading dataset from CSV")
		return dataset.ReadCSVFromFilePath(cfg.Input, opts)
	}
}
