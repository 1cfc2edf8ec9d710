// Package config はコマンド群が共有する設定を扱う
//
// 既定値は Default() に集約し、YAML ファイル → コマンドラインフラグの順に上書きする。
package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/YuminosukeSato/carprice/pkg/errors"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// ログ出力形式
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config は学習・予測・評価・描画の設定
type Config struct {
	DataPath    string  `yaml:"data"`         // 学習データ CSV
	ThetaPath   string  `yaml:"thetas"`       // パラメータ JSON
	Alpha       float64 `yaml:"alpha"`        // 学習率
	Epochs      int     `yaml:"epochs"`       // 反復回数
	LogEvery    int     `yaml:"log_every"`    // 進捗ログの間隔（0 で無効）
	LogPath     string  `yaml:"training_log"` // 学習結果を追記するテキストログ
	HistoryPath string  `yaml:"history"`      // SQLite の学習履歴（空なら記録しない）
	PlotPath    string  `yaml:"plot"`         // 回帰直線の画像
	LogLevel    string  `yaml:"log_level"`
	LogFormat   string  `yaml:"log_format"`
}

// Default は既定の設定を返す
func Default() *Config {
	return &Config{
		DataPath:  "data.csv",
		ThetaPath: "thetas.json",
		Alpha:     0.05,
		Epochs:    20000,
		LogEvery:  0,
		LogPath:   "model_params.txt",
		PlotPath:  "regression_plot.png",
		LogLevel:  "info",
		LogFormat: LogFormatConsole,
	}
}

// LoadFile は YAML ファイルを読み込み、既定値に重ねた設定を返す。
// ファイルに書かれていないキーは既定値のまま残る。
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	return Parse(data)
}

// Parse は YAML を既定値に重ねて解釈し、検証する
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.NewModelError("config.Parse", "invalid YAML", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveFile は設定を YAML として書き出す
func (c *Config) SaveFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write config file %s", path)
	}
	return nil
}

// Validate は設定値を検証する
func (c *Config) Validate() error {
	if !(c.Alpha > 0) || math.IsInf(c.Alpha, 0) {
		return errors.NewValidationError("alpha", "learning rate must be a positive finite number", c.Alpha)
	}
	if c.Epochs <= 0 {
		return errors.NewValidationError("epochs", "epoch count must be positive", c.Epochs)
	}
	if c.LogEvery < 0 {
		return errors.NewValidationError("log_every", "must not be negative", c.LogEvery)
	}
	if c.DataPath == "" {
		return errors.NewValidationError("data", "path must not be empty", c.DataPath)
	}
	if c.ThetaPath == "" {
		return errors.NewValidationError("thetas", "path must not be empty", c.ThetaPath)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatConsole, LogFormatJSON:
	default:
		return errors.NewValidationError("log_format", "must be console or json", c.LogFormat)
	}
	return nil
}

// Level は LogLevel を解釈した値を返す。Validate 済みであること。
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return level
}
