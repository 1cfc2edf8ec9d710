package app

import (
	"fmt"
	"io"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/metrics"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// Evaluate は保存済みパラメータの当てはまりを学習データで評価し、out に表示する
func Evaluate(cfg *config.Config, logger log.Logger, out io.Writer) (report metrics.Report, err error) {
	err = errors.SafeExecute("precision", func() error {
		ds, err := dataset.Load(cfg.DataPath, logger)
		if err != nil {
			return err
		}
		thetas := model.Load(cfg.ThetaPath)

		report, err = metrics.Evaluate(ds, thetas)
		if err != nil {
			return err
		}

		logger.Info("Model evaluated",
			log.OperationKey, log.OperationScore,
			log.SamplesKey, ds.Len(),
			log.R2ScoreKey, report.R2,
			log.MSEKey, report.MSE,
			log.RMSEKey, report.RMSE,
			log.MAEKey, report.MAE,
		)
		fmt.Fprintln(out, "Model precision:")
		fmt.Fprintf(out, "  R² score = %.4f\n", report.R2)
		fmt.Fprintf(out, "  MSE      = %.2f\n", report.MSE)
		fmt.Fprintf(out, "  RMSE     = %.2f€\n", report.RMSE)
		fmt.Fprintf(out, "  MAE      = %.2f€\n", report.MAE)
		return nil
	})
	return report, err
}
