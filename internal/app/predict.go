package app

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// Prompt は走行距離の入力を促す文字列
const Prompt = "Enter a mileage (km): "

// Predict は in から走行距離を 1 行読み、推定価格を out に書く
//
// パラメータファイルが使えない場合は (0, 0) で予測する（警告のみ）。
// 入力が不正な場合は価格を出力せずにエラーを返す。
func Predict(in io.Reader, out io.Writer, cfg *config.Config, logger log.Logger) error {
	return errors.SafeExecute("predict", func() error {
		thetas := model.Load(cfg.ThetaPath)

		fmt.Fprint(out, Prompt)
		raw, err := readLine(in)
		if err != nil {
			return err
		}
		return estimate(raw, out, thetas, logger)
	})
}

// PredictMileage はプロンプトを出さずに raw を走行距離として予測する
func PredictMileage(raw string, out io.Writer, cfg *config.Config, logger log.Logger) error {
	return errors.SafeExecute("predict", func() error {
		return estimate(raw, out, model.Load(cfg.ThetaPath), logger)
	})
}

func estimate(raw string, out io.Writer, thetas model.Thetas, logger log.Logger) error {
	mileage, err := ParseMileage(raw)
	if err != nil {
		return err
	}

	price := thetas.Estimate(mileage)
	if err := errors.CheckScalar("predict", price, 0); err != nil {
		return err
	}
	price = model.ClampPrice(price)

	logger.Debug("Price estimated",
		log.OperationKey, log.OperationPredict,
		log.MileageKey, mileage,
		log.PriceKey, price,
		log.Theta0Key, thetas.Theta0,
		log.Theta1Key, thetas.Theta1,
	)
	fmt.Fprintf(out, "Estimated price: %.2f€\n", price)
	return nil
}

// ParseMileage は前後の空白を除いて走行距離を解釈する。負の値と数値でない値は拒否する。
func ParseMileage(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errors.NewValueErrorWithCause("predict",
			"Invalid input. Please enter a numeric mileage (km).", errors.ErrInvalidMileage)
	}

	mileage, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(mileage) || math.IsInf(mileage, 0) {
		return 0, errors.NewValueErrorWithCause("predict",
			"Invalid input. Please enter a numeric mileage (km).", errors.ErrInvalidMileage)
	}
	if mileage < 0 {
		return 0, errors.NewValueErrorWithCause("predict",
			"Mileage cannot be negative.", errors.ErrNegativeMileage)
	}
	return mileage, nil
}

// readLine は 1 行読む。何も読めずに EOF になった場合は ErrNoInput。
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, io.EOF) && line != "":
		return line, nil
	case errors.Is(err, io.EOF):
		return "", errors.NewValueErrorWithCause("predict", "No input received.", errors.ErrNoInput)
	default:
		return "", errors.Wrap(err, "read mileage")
	}
}
