package app

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
	"github.com/YuminosukeSato/carprice/visualize"
)

// Plot はデータの散布図と回帰直線を cfg.PlotPath に描画する
func Plot(cfg *config.Config, logger log.Logger, out io.Writer) error {
	return errors.SafeExecute("plot", func() error {
		ds, err := dataset.Load(cfg.DataPath, logger)
		if err != nil {
			return err
		}
		thetas := model.Load(cfg.ThetaPath)

		if err := visualize.SavePlot(cfg.PlotPath, ds, thetas); err != nil {
			return err
		}
		logger.Info("Plot saved",
			log.OperationKey, log.OperationPlot,
			log.PathKey, cfg.PlotPath,
		)
		fmt.Fprintf(out, "Saved plot to %s\n", cfg.PlotPath)
		return nil
	})
}
