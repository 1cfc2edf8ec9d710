package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/internal/history"
	"github.com/YuminosukeSato/carprice/linear"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// Train はデータを読み込んで学習し、元の単位のパラメータを cfg.ThetaPath に保存する
//
// 保存後、cfg.LogPath に 1 行追記し、cfg.HistoryPath が空でなければ
// SQLite の履歴にも記録する。
func Train(ctx context.Context, cfg *config.Config, logger log.Logger, out io.Writer) (thetas model.Thetas, err error) {
	err = errors.SafeExecute("train", func() error {
		ds, err := dataset.Load(cfg.DataPath, logger)
		if err != nil {
			return err
		}

		gd := linear.NewGradientDescent(
			linear.WithLearningRate(cfg.Alpha),
			linear.WithEpochs(cfg.Epochs),
			linear.WithLogger(logger),
			linear.WithLogEvery(cfg.LogEvery),
		)
		if err := gd.Fit(ds.X, ds.Y); err != nil {
			return err
		}
		thetas, err = gd.Thetas()
		if err != nil {
			return err
		}

		// 学習率が大きすぎると発散する。壊れた値は保存しない。
		if err := errors.CheckNumericalStability("train", []float64{thetas.Theta0, thetas.Theta1}, cfg.Epochs); err != nil {
			logger.Error("Training diverged", err,
				log.ErrorTypeKey, "NumericalInstabilityError",
				log.SuggestionKey, "lower the learning rate",
				log.LearningRateKey, cfg.Alpha,
			)
			return errors.Wrapf(err, "refusing to save parameters, try a smaller alpha than %g", cfg.Alpha)
		}

		if err := model.Save(cfg.ThetaPath, thetas); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved thetas (original units): θ0=%.6f, θ1=%.12f -> %s\n",
			thetas.Theta0, thetas.Theta1, cfg.ThetaPath)
		logger.Info("Parameters saved",
			log.OperationKey, log.OperationSave,
			log.PathKey, cfg.ThetaPath,
		)

		run := history.Run{
			ModelName:  "GradientDescent",
			Alpha:      cfg.Alpha,
			Epochs:     cfg.Epochs,
			Thetas:     thetas,
			DataPoints: ds.Len(),
			TrainedAt:  time.Now().UTC(),
		}
		return record(ctx, cfg, run)
	})
	return thetas, err
}

func record(ctx context.Context, cfg *config.Config, run history.Run) error {
	if cfg.LogPath != "" {
		tl, err := history.OpenTextLog(cfg.LogPath)
		if err != nil {
			return err
		}
		defer tl.Close()
		if err := tl.Append(run); err != nil {
			return err
		}
	}

	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Record(ctx, run); err != nil {
			return err
		}
	}
	return nil
}
