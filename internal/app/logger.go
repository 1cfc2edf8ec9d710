// Package app は各コマンドが共有する操作（学習・予測・評価・描画）を提供する
package app

import (
	"io"

	"github.com/YuminosukeSato/carprice/internal/config"
	"github.com/YuminosukeSato/carprice/pkg/log"
)

// NewLogger は設定に従ってロガーを作成し、警告の出力先にも設定する
func NewLogger(cfg *config.Config, w io.Writer) log.Logger {
	var logger log.Logger
	switch cfg.LogFormat {
	case config.LogFormatJSON:
		logger = log.SetupLogger(w, cfg.Level())
	default:
		logger = log.NewZerologLogger(w, cfg.Level())
	}
	log.InstallWarnings(logger)
	return logger
}
