// Standard attribute keys for structured log records. Keys follow a
// hierarchical naming convention ("model.name", "data.samples") so records
// can be filtered by prefix.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "LibLinearSVR".
	ModelNameKey = "model.name"

	// EstimatorIDKey identifies one estimator instance (a UUID string).
	EstimatorIDKey = "estimator.id"

	// OperationKey is the operation being performed ("fit", "predict", ...).
	OperationKey = "ml.operation"

	// ComponentKey identifies the emitting package or component.
	ComponentKey = "ml.component"

	// SolverKey names the optimisation routine used by a fit.
	SolverKey = "ml.solver"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	SparseKey   = "data.sparse"
)

// Performance and convergence.
const (
	DurationMsKey = "perf.duration_ms"
	IterationKey  = "training.iteration"
	LossKey       = "metrics.loss"
	R2ScoreKey    = "metrics.r2_score"
	PredsKey      = "preds.count"
)

// Error context.
const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
	ErrorCodeKey      = "error.code"
)

// Hyperparameters and configuration.
const (
	HyperParamsKey    = "model.hyperparams"
	RegularizationKey = "hyperparams.regularization"
	RandomSeedKey     = "config.random_seed"
)

// Standard values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)
