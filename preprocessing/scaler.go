package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// MeanStd は平均 mu と母標準偏差 sigma を計算する
//
// 分散は m で割る（m-1 ではない）。分散がちょうど 0 の場合（全て同じ値）は
// ゼロ除算を避けるため sigma = 1.0 を返す。
func MeanStd(xs []float64) (mu, sigma float64, err error) {
	m := len(xs)
	if m == 0 {
		return 0, 0, errors.NewModelError("preprocessing.MeanStd", "empty data", errors.ErrEmptyData)
	}

	mu, sigma = stat.PopMeanStdDev(xs, nil)
	if sigma == 0 || math.IsNaN(sigma) {
		return mu, 1.0, nil
	}
	return mu, sigma, nil
}

// Standardize は各要素を (x - mu) / sigma に写した新しいスライスを返す。入力は変更しない。
func Standardize(xs []float64, mu, sigma float64) []float64 {
	zs := make([]float64, len(xs))
	for i, x := range xs {
		zs[i] = (x - mu) / sigma
	}
	return zs
}

// StandardScaler は一変数の標準化スケーラー
// データを平均0、標準偏差1に変換する
type StandardScaler struct {
	model.BaseEstimator

	// Mean は特徴量の平均値
	Mean float64

	// Scale は特徴量の母標準偏差（常に正）
	Scale float64
}

var _ model.Transformer = (*StandardScaler)(nil)

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	zs, err := scaler.FitTransform(xs)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit は訓練データから平均と標準偏差を計算する
func (s *StandardScaler) Fit(xs []float64) error {
	mu, sigma, err := MeanStd(xs)
	if err != nil {
		return err
	}
	s.Mean = mu
	s.Scale = sigma
	s.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(xs []float64) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	return Standardize(xs, s.Mean, s.Scale), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(xs []float64) ([]float64, error) {
	if err := s.Fit(xs); err != nil {
		return nil, err
	}
	return s.Transform(xs)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(zs []float64) ([]float64, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}
	xs := make([]float64, len(zs))
	for i, z := range zs {
		xs[i] = z*s.Scale + s.Mean
	}
	return xs, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(mean=%g, scale=%g)", s.Mean, s.Scale)
}
