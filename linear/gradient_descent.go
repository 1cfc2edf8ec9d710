package linear

import (
	"context"
	"time"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
	"github.com/YuminosukeSato/carprice/preprocessing"
)

// Train はバッチ勾配降下法で h(z) = a + b*z を学習する
//
// (0, 0) から始め、各エポックで全サンプルを一度走査して
//
//	a' = a - alpha * Σ(h(z_i) - y_i) / m
//	b' = b - alpha * Σ(h(z_i) - y_i) * z_i / m
//
// を同時に更新する（両方とも更新前の a, b から計算する）。
// ちょうど epochs 回反復し、収束判定や学習率の減衰は行わない。
// 発散の検出も行わないので、alpha の選択は呼び出し側の責任。
func Train(zs, ys []float64, alpha float64, epochs int) (a, b float64) {
	return train(zs, ys, alpha, epochs, nil)
}

// train は Train の本体。progress が nil でなければ各エポック終了後に呼ばれる。
func train(zs, ys []float64, alpha float64, epochs int, progress func(epoch int, a, b float64)) (a, b float64) {
	m := float64(len(zs))
	for epoch := 0; epoch < epochs; epoch++ {
		var sumErr, sumErrX float64
		for i, z := range zs {
			e := a + b*z - ys[i]
			sumErr += e
			sumErrX += e * z
		}
		a, b = a-alpha*(sumErr/m), b-alpha*(sumErrX/m)

		if progress != nil {
			progress(epoch+1, a, b)
		}
	}
	return a, b
}

// Cost は二乗誤差コスト (1/2m)·Σ(a + b*z_i - y_i)² を返す
func Cost(zs, ys []float64, a, b float64) float64 {
	var sum float64
	for i, z := range zs {
		e := a + b*z - ys[i]
		sum += e * e
	}
	return sum / (2 * float64(len(zs)))
}

// GradientDescent は走行距離から価格を予測する一変数線形回帰モデル
//
// Fit は特徴量を標準化してから Train を実行し、結果を元の単位の
// パラメータに戻す。標準化は最適化の条件数を良くするためだけのもので、
// Thetas() の利用者からは見えない。
type GradientDescent struct {
	model.BaseEstimator

	alpha    float64
	epochs   int
	logger   log.Logger
	logEvery int

	scaler *preprocessing.StandardScaler
	thetas model.Thetas
}

var (
	_ model.Fitter    = (*GradientDescent)(nil)
	_ model.Predictor = (*GradientDescent)(nil)
)

// NewGradientDescent は新しいモデルを作成する
//
// 使用例:
//
//	gd := linear.NewGradientDescent(
//	    linear.WithLearningRate(0.05),
//	    linear.WithEpochs(20000),
//	)
//	if err := gd.Fit(ds.X, ds.Y); err != nil {
//	    return err
//	}
//	thetas, _ := gd.Thetas()
func NewGradientDescent(opts ...Option) *GradientDescent {
	gd := &GradientDescent{
		alpha:  DefaultLearningRate,
		epochs: DefaultEpochs,
		logger: log.Nop(),
	}
	for _, opt := range opts {
		opt(gd)
	}
	if gd.logger == nil {
		gd.logger = log.Nop()
	}
	return gd
}

// Fit はモデルを訓練データで学習させる
func (gd *GradientDescent) Fit(xs, ys []float64) error {
	if len(xs) == 0 {
		return errors.NewModelError("GradientDescent.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(ys) != len(xs) {
		return errors.NewDimensionError("GradientDescent.Fit", len(xs), len(ys))
	}
	if !(gd.alpha > 0) {
		return errors.NewValidationError("alpha", "learning rate must be positive", gd.alpha)
	}
	if gd.epochs <= 0 {
		return errors.NewValidationError("epochs", "epoch count must be positive", gd.epochs)
	}

	scaler := preprocessing.NewStandardScaler()
	zs, err := scaler.FitTransform(xs)
	if err != nil {
		return err
	}

	logger := gd.logger.With(log.ModelNameKey, "GradientDescent")
	logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, len(xs),
		log.LearningRateKey, gd.alpha,
		log.EpochsKey, gd.epochs,
		log.MeanKey, scaler.Mean,
		log.ScaleKey, scaler.Scale,
	)

	var progress func(epoch int, a, b float64)
	if gd.logEvery > 0 && logger.Enabled(context.Background(), log.LevelDebug) {
		progress = func(epoch int, a, b float64) {
			if epoch%gd.logEvery != 0 && epoch != gd.epochs {
				return
			}
			logger.Debug("Training progress",
				log.EpochKey, epoch,
				log.LossKey, Cost(zs, ys, a, b),
				"a", a,
				"b", b,
			)
		}
	}

	start := time.Now()
	a, b := train(zs, ys, gd.alpha, gd.epochs, progress)

	gd.scaler = scaler
	gd.thetas = model.FromStandardized(a, b, scaler.Mean, scaler.Scale)
	gd.SetFitted()

	logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.LossKey, Cost(zs, ys, a, b),
		log.Theta0Key, gd.thetas.Theta0,
		log.Theta1Key, gd.thetas.Theta1,
	)
	return nil
}

// Thetas は元の単位での学習済みパラメータを返す
func (gd *GradientDescent) Thetas() (model.Thetas, error) {
	if !gd.IsFitted() {
		return model.Thetas{}, errors.NewNotFittedError("GradientDescent", "Thetas")
	}
	return gd.thetas, nil
}

// Scaler は学習に使った標準化パラメータを返す。未学習なら nil。
func (gd *GradientDescent) Scaler() *preprocessing.StandardScaler {
	return gd.scaler
}

// Predict は走行距離 x に対する価格を予測する
func (gd *GradientDescent) Predict(x float64) (float64, error) {
	if !gd.IsFitted() {
		return 0, errors.NewNotFittedError("GradientDescent", "Predict")
	}
	return gd.thetas.Estimate(x), nil
}

// LearningRate は alpha を返す
func (gd *GradientDescent) LearningRate() float64 { return gd.alpha }

// Epochs はエポック数を返す
func (gd *GradientDescent) Epochs() int { return gd.epochs }
