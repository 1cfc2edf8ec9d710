// Package visualize draws the dataset together with the fitted regression line.
package visualize

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// Default output size of the saved figure.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// NewPlot builds a scatter of the samples plus the line theta0 + theta1*x
// drawn between the smallest and the largest mileage.
func NewPlot(ds *dataset.Dataset, t model.Thetas) (*plot.Plot, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errors.NewModelError("visualize.NewPlot", "empty data", errors.ErrEmptyData)
	}

	p := plot.New()
	p.Title.Text = "Linear regression: price ~ mileage"
	p.X.Label.Text = "mileage (km)"
	p.Y.Label.Text = "price"

	samples := make(plotter.XYs, ds.Len())
	for i := range ds.X {
		samples[i] = plotter.XY{X: ds.X[i], Y: ds.Y[i]}
	}
	sc, err := plotter.NewScatter(samples)
	if err != nil {
		return nil, errors.Wrap(err, "scatter")
	}
	sc.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 220}
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)
	p.Legend.Add("data", sc)

	xMin, xMax := ds.Bounds()
	fit, err := plotter.NewLine(plotter.XYs{
		{X: xMin, Y: t.Estimate(xMin)},
		{X: xMax, Y: t.Estimate(xMax)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "fit line")
	}
	fit.Color = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	fit.Width = vg.Points(1.5)
	p.Add(fit)
	p.Legend.Add("fit", fit)

	p.Add(plotter.NewGrid())
	return p, nil
}

// SavePlot renders NewPlot to path. The image format follows the file
// extension (.png, .svg, .pdf ...). Missing parent directories are created.
func SavePlot(path string, ds *dataset.Dataset, t model.Thetas) error {
	p, err := NewPlot(ds, t)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create directory %s", dir)
		}
	}
	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}
