// Package history は学習結果を記録する
//
// 学習ごとに 1 行のテキストログ（lumberjack でサイズ上限付き）と、
// 任意で SQLite の training_log テーブルへ追記する。
package history

import (
	"fmt"
	"strconv"
	"time"

	"github.com/YuminosukeSato/carprice/core/model"
)

// Run は 1 回の学習結果
type Run struct {
	ModelName  string
	Alpha      float64
	Epochs     int
	Thetas     model.Thetas
	DataPoints int
	TrainedAt  time.Time
}

// Line はテキストログに追記する 1 行（改行なし）を返す
//
//	alpha=0.05, epochs=20000, theta0=8499.599650, theta1=-0.021449
func (r Run) Line() string {
	return fmt.Sprintf("alpha=%s, epochs=%d, theta0=%.6f, theta1=%.6f",
		strconv.FormatFloat(r.Alpha, 'g', -1, 64), r.Epochs, r.Thetas.Theta0, r.Thetas.Theta1)
}
