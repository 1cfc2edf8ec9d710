// Package log defines standard attribute keys for the training pipeline.
//
// These keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples") so records from train, predict and precision runs can be
// filtered the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator, e.g. "GradientDescent".
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "load", "save", "plot"
	OperationKey = "ml.operation"

	// PathKey records the file a record refers to (dataset, parameter file, plot).
	PathKey = "io.path"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of valid samples loaded.
	SamplesKey = "data.samples"

	// SkippedRowsKey indicates the number of malformed rows dropped by the loader.
	SkippedRowsKey = "data.skipped_rows"

	// MeanKey and ScaleKey record the standardization parameters of the feature.
	MeanKey  = "data.mean"
	ScaleKey = "data.scale"
)

// Training and Evaluation
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// LearningRateKey records alpha.
	LearningRateKey = "hyperparams.learning_rate"

	// EpochsKey records the configured number of epochs.
	EpochsKey = "hyperparams.epochs"

	// EpochKey records the current epoch number during training.
	EpochKey = "training.epoch"

	// LossKey records the cost (1/2m)·Σ(h-y)² during training.
	LossKey = "metrics.loss"

	// Theta0Key and Theta1Key record the model parameters.
	Theta0Key = "model.theta0"
	Theta1Key = "model.theta1"

	// R2ScoreKey, MSEKey, RMSEKey and MAEKey record evaluation results.
	R2ScoreKey = "metrics.r2_score"
	MSEKey     = "metrics.mse"
	RMSEKey    = "metrics.rmse"
	MAEKey     = "metrics.mae"

	// MileageKey and PriceKey record a single prediction.
	MileageKey = "preds.mileage"
	PriceKey   = "preds.price"
)

// Error Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// SuggestionKey provides a hint for resolving an issue.
	SuggestionKey = "error.suggestion"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"
	OperationLoad    = "load"
	OperationSave    = "save"
	OperationPlot    = "plot"
)
