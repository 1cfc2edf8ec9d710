package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/carprice/core/model"
	"github.com/YuminosukeSato/carprice/dataset"
	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/internal/history"
	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

const lineCSV = "km,price\n0,100\n50000,50\n100000,0\n"

// testConfig は一時ディレクトリ内のパスを指す設定を返す
func testConfig(t *testing.T, csv string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.DataPath = filepath.Join(dir, "data.csv")
	cfg.ThetaPath = filepath.Join(dir, "thetas.json")
	cfg.LogPath = filepath.Join(dir, "model_params.txt")
	cfg.PlotPath = filepath.Join(dir, "regression_plot.png")
	require.NoError(t, os.WriteFile(cfg.DataPath, []byte(csv), 0o644))
	return cfg
}

func TestTrain(t *testing.T) {
	cfg := testConfig(t, lineCSV)
	cfg.HistoryPath = filepath.Join(filepath.Dir(cfg.DataPath), "history.db")
	logger, _ := log.NewTestLogger(log.LevelInfo)
	var out bytes.Buffer

	thetas, err := Train(context.Background(), cfg, logger, &out)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, thetas.Theta0, 1e-6)
	assert.InDelta(t, -0.001, thetas.Theta1, 1e-9)
	assert.True(t, strings.HasPrefix(out.String(), "Saved thetas (original units): θ0=100.000000, θ1=-0.001000000000 -> "))
	assert.True(t, strings.HasSuffix(out.String(), cfg.ThetaPath+"\n"))

	saved, err := model.LoadStrict(cfg.ThetaPath)
	require.NoError(t, err)
	assert.Equal(t, thetas, saved)

	logged, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Equal(t, "alpha=0.05, epochs=20000, theta0=100.000000, theta1=-0.001000\n", string(logged))

	store, err := history.Open(cfg.HistoryPath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 3, runs[0].DataPoints)
	assert.Equal(t, thetas, runs[0].Thetas)

	assert.True(t, logger.ContainsMessage("Training completed"))
	assert.True(t, logger.ContainsMessage("Parameters saved"))
}

func TestTrain_AppendsLogAcrossRuns(t *testing.T) {
	cfg := testConfig(t, lineCSV)
	cfg.Epochs = 100

	for i := 0; i < 2; i++ {
		_, err := Train(context.Background(), cfg, log.Nop(), &bytes.Buffer{})
		require.NoError(t, err)
	}

	logged, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(logged), "alpha=0.05, epochs=100, "))
}

func TestTrain_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
	}{
		{"empty file", "", errors.ErrEmptyData},
		{"short header", "km\n1\n", errors.ErrInvalidHeader},
		{"no valid rows", "km,price\nabc,def\n", errors.ErrNoValidRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, tt.csv)
			var out bytes.Buffer

			_, err := Train(context.Background(), cfg, log.Nop(), &out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Empty(t, out.String())

			_, statErr := os.Stat(cfg.ThetaPath)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestTrain_DivergenceIsNotSaved(t *testing.T) {
	cfg := testConfig(t, lineCSV)
	cfg.Alpha = 5

	logger, _ := log.NewTestLogger(log.LevelInfo)
	_, err := Train(context.Background(), cfg, logger, &bytes.Buffer{})

	assert.True(t, logger.ContainsMessage("Training diverged"))
	var numErr *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &numErr), "got %v", err)
	_, statErr := os.Stat(cfg.ThetaPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPredict(t *testing.T) {
	cfg := testConfig(t, lineCSV)
	require.NoError(t, model.Save(cfg.ThetaPath, model.Thetas{Theta0: 100, Theta1: -0.001}))

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "mileage", input: "50000\n", want: "Estimated price: 50.00€\n"},
		{name: "surrounding spaces", input: "  0  \n", want: "Estimated price: 100.00€\n"},
		{name: "no trailing newline", input: "25000", want: "Estimated price: 75.00€\n"},
		{name: "negative estimate is clamped", input: "200000\n", want: "Estimated price: 0.00€\n"},
		{name: "negative mileage", input: "-5\n", wantErr: errors.ErrNegativeMileage},
		{name: "not a number", input: "abc\n", wantErr: errors.ErrInvalidMileage},
		{name: "blank line", input: "\n", wantErr: errors.ErrInvalidMileage},
		{name: "nan", input: "NaN\n", wantErr: errors.ErrInvalidMileage},
		{name: "no input", input: "", wantErr: errors.ErrNoInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := Predict(strings.NewReader(tt.input), &out, cfg, log.Nop())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Equal(t, Prompt, out.String(), "no price must be printed on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Prompt+tt.want, out.String())
		})
	}
}

func TestPredict_NegativeMileageMessage(t *testing.T) {
	cfg := testConfig(t, lineCSV)

	err := Predict(strings.NewReader("-5\n"), &bytes.Buffer{}, cfg, log.Nop())

	var valErr *errors.ValueError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "Mileage cannot be negative.", valErr.Message)
}

func TestPredict_MissingParameterFile(t *testing.T) {
	cfg := testConfig(t, lineCSV)

	var warned error
	errors.SetWarningHandler(func(w error) { warned = w })
	t.Cleanup(errors.ResetWarningHandler)

	var out bytes.Buffer
	require.NoError(t, Predict(strings.NewReader("42000\n"), &out, cfg, log.Nop()))

	assert.Equal(t, Prompt+"Estimated price: 0.00€\n", out.String())
	var pfw *errors.ParameterFileWarning
	assert.True(t, errors.As(warned, &pfw))
}

func TestPredictMileage(t *testing.T) {
	cfg := testConfig(t, lineCSV)
	require.NoError(t, model.Save(cfg.ThetaPath, model.Thetas{Theta0: 8000, Theta1: -0.02}))
	logger, _ := log.NewTestLogger(log.LevelDebug)

	var out bytes.Buffer
	require.NoError(t, PredictMileage("100000", &out, cfg, logger))

	assert.Equal(t, "Estimated price: 6000.00€\n", out.String())
	assert.True(t, logger.ContainsField(log.MileageKey, 100000.0))

	err := PredictMileage("-1", &bytes.Buffer{}, cfg, logger)
	assert.True(t, errors.Is(err, errors.ErrNegativeMileage))
}

func TestParseMileage(t *testing.T) {
	got, err := ParseMileage(" 1.5e5\r\n")
	require.NoError(t, err)
	assert.Equal(t, 150000.0, got)

	got, err = ParseMileage("-0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = ParseMileage("+Inf")
	assert.True(t, errors.Is(err, errors.ErrInvalidMileage))
}

func TestEvaluate(t *testing.T) {
	cfg := testConfig(t, lineCSV)
	require.NoError(t, model.Save(cfg.ThetaPath, model.Thetas{Theta0: 100, Theta1: -0.001}))
	logger, _ := log.NewTestLogger(log.LevelInfo)

	var out bytes.Buffer
	report, err := Evaluate(cfg, logger, &out)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, report.R2, 1e-12)
	assert.InDelta(t, 0.0, report.RMSE, 1e-9)
	assert.Contains(t, out.String(), "Model precision:\n")
	assert.Contains(t, out.String(), "R² score = 1.0000")
	assert.Contains(t, out.String(), "RMSE     = 0.00€")
	assert.True(t, logger.ContainsMessage("Model evaluated"))
}

func TestEvaluate_ConstantPrices(t *testing.T) {
	cfg := testConfig(t, "km,price\n1,5\n2,5\n")
	require.NoError(t, model.Save(cfg.ThetaPath, model.Thetas{Theta0: 4}))

	var out bytes.Buffer
	_, err := Evaluate(cfg, log.Nop(), &out)
	assert.True(t, errors.Is(err, errors.ErrUndefinedR2))
	assert.Empty(t, out.String())
}

func TestTrainThenEvaluateAndPlot(t *testing.T) {
	csv := "km,price\n240000,3650\n139800,3800\n150500,4400\n185530,4450\n176000,5250\n114800,5350\n166800,5800\n89000,7990\n144500,5999\n84000,6200\n82029,5800\n63060,6390\n74000,6600\n97500,6800\n67000,6800\n76025,6900\n48235,6900\n93000,6990\n60949,7490\n65674,7555\n54000,7990\n68500,7990\n22899,7990\n61789,8290\n"
	cfg := testConfig(t, csv)

	thetas, err := Train(context.Background(), cfg, log.Nop(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Less(t, thetas.Theta1, 0.0)
	assert.Greater(t, thetas.Theta0, 8000.0)

	// 勾配降下の結果は最小二乗解に収束している
	ds, err := dataset.Load(cfg.DataPath, nil)
	require.NoError(t, err)
	alpha, beta := stat.LinearRegression(ds.X, ds.Y, nil, false)
	assert.InDelta(t, alpha, thetas.Theta0, 1e-6)
	assert.InDelta(t, beta, thetas.Theta1, 1e-9)

	report, err := Evaluate(cfg, log.Nop(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.InDelta(t, stat.RSquared(ds.X, ds.Y, nil, alpha, beta), report.R2, 1e-9)
	assert.InDelta(t, 0.6975814598, report.R2, 1e-6)

	var out bytes.Buffer
	require.NoError(t, Plot(cfg, log.Nop(), &out))
	assert.Equal(t, "Saved plot to "+cfg.PlotPath+"\n", out.String())
	info, err := os.Stat(cfg.PlotPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewLogger(t *testing.T) {
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })

	cfg := config.Default()
	cfg.LogFormat = config.LogFormatJSON
	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Info("hello", log.PathKey, "data.csv")
	assert.Contains(t, buf.String(), `"message":"hello"`)

	cfg.LogFormat = config.LogFormatConsole
	buf.Reset()
	logger = NewLogger(cfg, &buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	// 警告もロガーに流れる
	buf.Reset()
	errors.Warn(errors.NewParameterFileWarning("thetas.json", errors.ErrEmptyData))
	assert.Contains(t, buf.String(), "thetas.json")
}
