package config

import (
	"flag"
	"io"
)

// Binder はコマンド固有のフラグを cfg に結び付けて登録する
type Binder func(fs *flag.FlagSet, cfg *Config)

// FromArgs はコマンドライン引数から設定を組み立てる
//
// 優先順位はフラグ > -config の YAML > Default()。
// -config が指定された場合はファイルを読んだあと、同じ引数をもう一度
// 解釈して明示されたフラグで上書きする。
func FromArgs(name string, args []string, output io.Writer, bind Binder) (*Config, error) {
	var configPath string

	cfg := Default()
	fs := newFlagSet(name, output, cfg, &configPath, bind)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if configPath != "" {
		fileCfg, err := LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		fs = newFlagSet(name, output, fileCfg, &configPath, bind)
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newFlagSet(name string, output io.Writer, cfg *Config, configPath *string, bind Binder) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	fs.StringVar(configPath, "config", *configPath, "YAML configuration file")
	fs.StringVar(&cfg.DataPath, "data", cfg.DataPath, "CSV file with header: km,price")
	fs.StringVar(&cfg.ThetaPath, "thetas", cfg.ThetaPath, "JSON file holding theta0 and theta1")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console or json")

	if bind != nil {
		bind(fs, cfg)
	}
	return fs
}

// BindTrain は学習コマンドのフラグを登録する
func BindTrain(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "learning rate")
	fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "number of gradient steps")
	fs.StringVar(&cfg.ThetaPath, "out", cfg.ThetaPath, "output JSON file for learned parameters")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "append one line per run to this file (empty disables)")
	fs.StringVar(&cfg.HistoryPath, "history", cfg.HistoryPath, "SQLite database recording every run (empty disables)")
	fs.IntVar(&cfg.LogEvery, "log-every", cfg.LogEvery, "log the cost every n epochs at debug level (0 disables)")
}

// BindPlot は描画コマンドのフラグを登録する
func BindPlot(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.PlotPath, "out", cfg.PlotPath, "output image (.png, .svg, .pdf)")
}
