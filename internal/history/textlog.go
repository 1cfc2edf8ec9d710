package history

import (
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// DefaultMaxSizeMB はローテーションするファイルサイズ
const DefaultMaxSizeMB = 10

// TextLog は学習結果を 1 行ずつ追記するログ
type TextLog struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// OpenTextLog は path に追記するログを開く。既存の内容は残る。
//
// サイズが DefaultMaxSizeMB を超えると path は path-<timestamp> に退避されるが、
// 退避したファイルは削除しない（MaxBackups, MaxAge ともに 0）。
// 新しく作るファイルのパーミッションは 0644。
func OpenTextLog(path string) (*TextLog, error) {
	if err := ensureFile(path); err != nil {
		return nil, err
	}
	return &TextLog{w: &lumberjack.Logger{
		Filename:  path,
		MaxSize:   DefaultMaxSizeMB,
		LocalTime: true,
	}}, nil
}

// ensureFile は path がなければ 0644 で作成する。
// lumberjack は既存ファイルのモードを引き継ぎ、新規ファイルは 0600 で作るため。
func ensureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat training log %s", path)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return errors.Wrapf(err, "create training log %s", path)
	}
	defer f.Close()
	if err := f.Chmod(0o644); err != nil {
		return errors.Wrapf(err, "chmod training log %s", path)
	}
	return nil
}

// NewTextLog は任意の Writer に書き込む TextLog を作成する
func NewTextLog(w io.WriteCloser) *TextLog {
	return &TextLog{w: w}
}

// Append は run を 1 行追記する
func (l *TextLog) Append(run Run) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := io.WriteString(l.w, run.Line()+"\n"); err != nil {
		return errors.Wrap(err, "append training log")
	}
	return nil
}

// Close はファイルを閉じる
func (l *TextLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}
