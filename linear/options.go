package linear

import "github.com/YuminosukeSato/carprice/pkg/log"

// 既定のハイパーパラメータ
const (
	DefaultLearningRate = 0.05
	DefaultEpochs       = 20000
)

// Option is a function that configures GradientDescent
type Option func(*GradientDescent)

// WithLearningRate sets alpha
func WithLearningRate(alpha float64) Option {
	return func(gd *GradientDescent) {
		gd.alpha = alpha
	}
}

// WithEpochs sets the exact number of full-batch iterations
func WithEpochs(epochs int) Option {
	return func(gd *GradientDescent) {
		gd.epochs = epochs
	}
}

// WithLogger sets the logger used for training progress
func WithLogger(logger log.Logger) Option {
	return func(gd *GradientDescent) {
		gd.logger = logger
	}
}

// WithLogEvery logs the cost every n epochs at debug level. 0 disables it.
func WithLogEvery(n int) Option {
	return func(gd *GradientDescent) {
		gd.logEvery = n
	}
}
