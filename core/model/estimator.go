package model

// Fitter は学習可能な一変数モデルのインターフェース
type Fitter interface {
	// Fit は走行距離 xs と価格 ys でモデルを学習させる
	Fit(xs, ys []float64) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は一つの入力値に対する予測を行う
	Predict(x float64) (float64, error)
}

// Transformer は特徴量変換のインターフェース
type Transformer interface {
	// Fit は変換に必要な統計量を学習する
	Fit(xs []float64) error

	// Transform はデータを変換する（入力は変更しない）
	Transform(xs []float64) ([]float64, error)
}
