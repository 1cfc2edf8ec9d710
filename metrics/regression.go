// Package metrics は学習済みパラメータの当てはまりを評価する指標を提供する
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// MSE は平均二乗誤差（Mean Squared Error）を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE は平方根平均二乗誤差（Root Mean Squared Error）を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差（Mean Absolute Error）を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred|
	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score は決定係数（R²）を計算する
//
// 全変動（TSS）が 0 の場合、残差変動も 0（完全一致）なら 1.0 を返し、
// そうでなければ ErrUndefinedR2 を包んだ ValueError を返す。NaN は返さない。
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkVectors("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// yTrueの平均を計算
	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	// 全変動（TSS）と残差変動（RSS）を計算
	var tss, rss float64
	for i := 0; i < n; i++ {
		yTrueVal := yTrue.AtVec(i)
		yPredVal := yPred.AtVec(i)

		tss += (yTrueVal - yMean) * (yTrueVal - yMean)
		rss += (yTrueVal - yPredVal) * (yTrueVal - yPredVal)
	}

	// 全変動が0の場合（すべてのyTrueが同じ値）
	if tss == 0 {
		if rss == 0 {
			return 1.0, nil
		}
		return 0, errors.NewValueErrorWithCause("R2Score",
			"all observed prices are equal and the prediction does not match them", errors.ErrUndefinedR2)
	}

	// R² = 1 - RSS/TSS
	return 1 - rss/tss, nil
}

func checkVectors(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewModelError(op, "empty vector", errors.ErrEmptyData)
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len())
	}
	return n, nil
}

// Report はデータセットに対する評価結果
type Report struct {
	R2   float64
	MSE  float64
	RMSE float64
	MAE  float64
}

func (r Report) String() string {
	return fmt.Sprintf("R²: %.6f\nMSE: %.6f\nRMSE: %.6f\nMAE: %.6f", r.R2, r.MSE, r.RMSE, r.MAE)
}

// Predictions は ds.X の各走行距離に対する推定価格を返す。ds は空であってはならない。
func Predictions(ds *dataset.Dataset, t model.Thetas) *mat.VecDense {
	pred := make([]float64, ds.Len())
	floats.ScaleTo(pred, t.Theta1, ds.X)
	floats.AddConst(t.Theta0, pred)
	return mat.NewVecDense(len(pred), pred)
}

// Evaluate は theta0 + theta1*x の予測を観測価格と比較し、各指標をまとめて返す
func Evaluate(ds *dataset.Dataset, t model.Thetas) (Report, error) {
	if ds == nil || ds.Len() == 0 {
		return Report{}, errors.NewModelError("metrics.Evaluate", "empty data", errors.ErrEmptyData)
	}

	_, yTrue := ds.Vectors()
	yPred := Predictions(ds, t)

	r2, err := R2Score(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}
	mae, err := MAE(yTrue, yPred)
	if err != nil {
		return Report{}, err
	}

	return Report{R2: r2, MSE: mse, RMSE: math.Sqrt(mse), MAE: mae}, nil
}
