package model

import (
	"encoding/json"
	"io"
	"os"

	"github.com/YuminosukeSato/carprice/pkg/errors"
)

// record は永続化用の表現。欠損フィールドを検出するためポインタで受ける。
type record struct {
	Theta0 *float64 `json:"theta0"`
	Theta1 *float64 `json:"theta1"`
}

// Save はパラメータをJSONファイルに保存する。既存のファイルは上書きされる。
//
// 使用例:
//
//	err := model.Save("thetas.json", model.Thetas{Theta0: 8499.6, Theta1: -0.0214})
func Save(filename string, t Thetas) error {
	// 既存のファイルを壊さないよう、開く前に検査する
	if !t.IsFinite() {
		return errors.NewNumericalInstabilityError("model.Save", []float64{t.Theta0, t.Theta1}, 0)
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create parameter file %s", filename)
	}
	defer file.Close()

	if err := SaveToWriter(file, t); err != nil {
		return err
	}
	return file.Close()
}

// SaveToWriter はパラメータを {"theta0": ..., "theta1": ...} としてWriterに書き出す
func SaveToWriter(w io.Writer, t Thetas) error {
	if !t.IsFinite() {
		return errors.NewNumericalInstabilityError("model.Save", []float64{t.Theta0, t.Theta1}, 0)
	}
	if err := json.NewEncoder(w).Encode(t); err != nil {
		return errors.Wrap(err, "failed to encode thetas")
	}
	return nil
}

// LoadStrict はJSONファイルからパラメータを読み込み、失敗の原因をそのまま返す
func LoadStrict(filename string) (Thetas, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Thetas{}, errors.Wrapf(err, "failed to open parameter file %s", filename)
	}
	defer file.Close()

	return LoadFromReader(file)
}

// LoadFromReader はReaderからパラメータを読み込む。
// theta0 と theta1 の両方が数値として存在しなければエラーになる。
// 末尾に空白以外のデータが続く場合もエラーになる。
func LoadFromReader(r io.Reader) (Thetas, error) {
	var rec record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rec); err != nil {
		return Thetas{}, errors.Wrap(err, "failed to decode thetas")
	}
	// オブジェクトの後ろに余計なデータがあれば壊れたファイルとみなす
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Thetas{}, errors.NewValueError("model.Load", "extra data after the parameter object")
	}
	if rec.Theta0 == nil {
		return Thetas{}, errors.NewValueError("model.Load", "missing field theta0")
	}
	if rec.Theta1 == nil {
		return Thetas{}, errors.NewValueError("model.Load", "missing field theta1")
	}
	return Thetas{Theta0: *rec.Theta0, Theta1: *rec.Theta1}, nil
}

// Load はパラメータを読み込む。ファイルが存在しない・読めない・壊れている・
// フィールドが欠けている場合は失敗せず (0, 0) を返し、警告を出す。
func Load(filename string) Thetas {
	t, err := LoadStrict(filename)
	if err != nil {
		errors.Warn(errors.NewParameterFileWarning(filename, err))
		return Thetas{}
	}
	return t
}
