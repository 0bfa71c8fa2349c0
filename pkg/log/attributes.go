package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "KNeighborsClassifier".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	ComponentKey = "ml.component"

	// PhaseKey indicates the pipeline phase.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	SourceKey   = "data.source"
	RecordKey   = "data.record"
)

// Evaluation metrics and hyperparameters.
const (
	DurationMsKey  = "perf.duration_ms"
	AccuracyKey    = "metrics.accuracy"
	CorrectKey     = "metrics.correct"
	NeighborsKey   = "hyperparams.n_neighbors"
	EpsilonKey     = "hyperparams.epsilon"
	WorkersKey     = "infra.workers"
	FoldKey        = "cv.fold"
	PredictionKey  = "preds.label"
	TrueLabelKey   = "preds.true_label"
	ErrorTypeKey   = "error.type"
	SuggestionKey  = "error.suggestion"
	ConfigFileKey  = "config.file"
	ConfigLevelKey = "config.log_level"
)

// Standard attribute values.
const (
	OperationFit       = "fit"
	OperationTransform = "transform"
	OperationPredict   = "predict"
	OperationEvaluate  = "evaluate"
	OperationLoad      = "load"

	PhasePreprocessing = "preprocessing"
	PhaseValidation    = "validation"
	PhaseLoading       = "loading"
)
