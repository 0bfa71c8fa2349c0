package model

import "github.com/YuminosukeSato/knnloo/dataset"

// Fitter は学習可能な推定器のインターフェース
type Fitter interface {
	// Fit はデータセットから推定器の状態を学習する
	Fit(ds *dataset.Dataset) error
}

// InPlaceTransformer はデータセットを直接書き換える変換器のインターフェース
type InPlaceTransformer interface {
	Fitter

	// TransformInPlace は学習済みパラメータでデータセットの特徴量を書き換える
	TransformInPlace(ds *dataset.Dataset) error
}

// Predictor は特徴量ベクトルからラベルを予測するインターフェース
type Predictor interface {
	// Predict は各行のラベルを予測する
	Predict(rows [][]float64) ([]dataset.Label, error)
}

// Classifier は学習と予測の両方を持つ分類器
type Classifier interface {
	Fitter
	Predictor
}

// ParameterGetter はハイパーパラメータを公開するインターフェース
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
