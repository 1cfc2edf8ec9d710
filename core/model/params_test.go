package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name    string
		mileage float64
		theta0  float64
		theta1  float64
	}{
		{name: "zero params", mileage: 42000, theta0: 0, theta1: 0},
		{name: "typical fit", mileage: 240000, theta0: 8499.599649, theta1: -0.021448963},
		{name: "negative mileage not validated", mileage: -5, theta0: 100, theta1: 2},
		{name: "fractional", mileage: 0.1, theta0: 0.2, theta1: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.mileage, tt.theta0, tt.theta1)
			if got != tt.theta0+tt.theta1*tt.mileage {
				t.Errorf("Estimate() = %v, want exactly %v", got, tt.theta0+tt.theta1*tt.mileage)
			}
			th := Thetas{Theta0: tt.theta0, Theta1: tt.theta1}
			if th.Estimate(tt.mileage) != got {
				t.Errorf("Thetas.Estimate() = %v, want %v", th.Estimate(tt.mileage), got)
			}
		})
	}
}

func TestEstimateMayBeNegative(t *testing.T) {
	got := Estimate(1e6, 100, -0.01)
	assert.Less(t, got, 0.0)
	assert.Equal(t, 0.0, ClampPrice(got))
	assert.Equal(t, 12.5, ClampPrice(12.5))
}

func TestFromStandardized(t *testing.T) {
	// y = 3 + 2x を標準化空間で表すと a = 3 + 2*mu, b = 2*sigma
	mu, sigma := 50.0, 20.0
	a := 3 + 2*mu
	b := 2 * sigma

	th := FromStandardized(a, b, mu, sigma)

	if math.Abs(th.Theta0-3) > 1e-12 {
		t.Errorf("Theta0 = %v, want 3", th.Theta0)
	}
	if math.Abs(th.Theta1-2) > 1e-12 {
		t.Errorf("Theta1 = %v, want 2", th.Theta1)
	}

	// 標準化空間と元の空間で同じ予測になる
	for _, x := range []float64{0, 10, 50, 123.4} {
		z := (x - mu) / sigma
		assert.InDelta(t, a+b*z, th.Estimate(x), 1e-9)
	}
}

func TestThetasIsFinite(t *testing.T) {
	assert.True(t, Thetas{Theta0: 1, Theta1: -1}.IsFinite())
	assert.False(t, Thetas{Theta0: math.NaN()}.IsFinite())
	assert.False(t, Thetas{Theta1: math.Inf(-1)}.IsFinite())
	assert.True(t, Thetas{}.IsZero())
	assert.Contains(t, Thetas{Theta0: 1}.String(), "theta0=1.000000")
}
