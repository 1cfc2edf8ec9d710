// Package dataset loads the mileage/price samples the regression is fitted on.
package dataset

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Dataset holds two parallel sample sequences: X (mileage, km) and Y (price).
// Loaders guarantee len(X) == len(Y) >= 1.
type Dataset struct {
	X []float64
	Y []float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Vectors returns X and Y as gonum vectors. The vectors share no memory with d.
func (d *Dataset) Vectors() (x, y *mat.VecDense) {
	x = mat.NewVecDense(len(d.X), append([]float64(nil), d.X...))
	y = mat.NewVecDense(len(d.Y), append([]float64(nil), d.Y...))
	return x, y
}

// Bounds returns the smallest and largest mileage.
func (d *Dataset) Bounds() (min, max float64) {
	return floats.Min(d.X), floats.Max(d.X)
}
