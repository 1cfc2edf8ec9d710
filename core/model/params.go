package model

import (
	"fmt"
	"math"
)

// Thetas は仮説 price = Theta0 + Theta1 * mileage のパラメータ（元の単位）
type Thetas struct {
	Theta0 float64 `json:"theta0"`
	Theta1 float64 `json:"theta1"`
}

// FromStandardized は標準化空間で学習した (a, b) を元の単位のパラメータに戻す
//
//	theta1 = b / sigma
//	theta0 = a - b*mu/sigma
//
// 標準化した特徴量 z = (x - mu) / sigma に対する a + b*z は
// 未標準化の x に対する theta0 + theta1*x と同じ直線になる。
func FromStandardized(a, b, mu, sigma float64) Thetas {
	return Thetas{
		Theta0: a - (b*mu)/sigma,
		Theta1: b / sigma,
	}
}

// Estimate は仮説を適用して価格を推定する。入力の検証は行わない。
func Estimate(mileage, theta0, theta1 float64) float64 {
	return theta0 + theta1*mileage
}

// Estimate は t の仮説を mileage に適用する
func (t Thetas) Estimate(mileage float64) float64 {
	return Estimate(mileage, t.Theta0, t.Theta1)
}

// IsZero はパラメータが既定値 (0, 0) かどうかを返す
func (t Thetas) IsZero() bool {
	return t.Theta0 == 0 && t.Theta1 == 0
}

// IsFinite は両方のパラメータが有限値かどうかを返す
func (t Thetas) IsFinite() bool {
	return !math.IsNaN(t.Theta0) && !math.IsInf(t.Theta0, 0) &&
		!math.IsNaN(t.Theta1) && !math.IsInf(t.Theta1, 0)
}

// String はパラメータの文字列表現を返す
func (t Thetas) String() string {
	return fmt.Sprintf("Thetas(theta0=%.6f, theta1=%.12f)", t.Theta0, t.Theta1)
}

// ClampPrice は負の推定価格を 0 に切り上げる（価格は負にならない）
func ClampPrice(price float64) float64 {
	if price < 0 {
		return 0.0
	}
	return price
}
