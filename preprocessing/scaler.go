package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/knnloo/core/model"
	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/YuminosukeSato/knnloo/pkg/log"
)

// ScalingParameters は特徴量ごとの最小値・最大値
// 不変条件: すべての f について Max[f] > Min[f]
type ScalingParameters struct {
	Min []float64
	Max []float64
}

// NFeatures は特徴量の数を返す
func (p *ScalingParameters) NFeatures() int {
	return len(p.Min)
}

// ComputeScalingParameters はデータセット全体から各特徴量の最小値・最大値を計算する
//
// 最小値と最大値が一致する定数特徴量は、ゼロ除算を避けるため
// Max = Min + 1 に調整し、ConstantFeatureWarning を発生させる。
//
// 戻り値:
//   - *ScalingParameters: 特徴量ごとの (min, max)
//   - error: 空のデータセット、またはNaN/Infを含む場合
func ComputeScalingParameters(ds *dataset.Dataset) (*ScalingParameters, error) {
	n := ds.Len()
	if n == 0 {
		return nil, errors.NewEmptyDatasetError("ComputeScalingParameters")
	}

	c := ds.NFeatures()
	params := &ScalingParameters{
		Min: make([]float64, c),
		Max: make([]float64, c),
	}
	x := ds.Matrix()

	for f := 0; f < c; f++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < n; i++ {
			v := x.At(i, f)
			// NaN は比較をすり抜けるため、すべての値を検査する
			if err := errors.CheckScalar("ComputeScalingParameters", v, f); err != nil {
				return nil, errors.Wrapf(err, "sample %d", i)
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}

		// 定数特徴量の場合、範囲を1に広げる
		if hi == lo {
			errors.Warn(errors.NewConstantFeatureWarning(f, lo))
			hi = lo + 1.0
		}
		params.Min[f] = lo
		params.Max[f] = hi
	}

	return params, nil
}

// ApplyScaling はデータセットの特徴量をその場で [0,1] に変換する
//
//	x[f] = (x[f] - Min[f]) / (Max[f] - Min[f])
func ApplyScaling(ds *dataset.Dataset, params *ScalingParameters) error {
	if ds.Len() == 0 {
		return errors.NewEmptyDatasetError("ApplyScaling")
	}
	if c := ds.NFeatures(); c != params.NFeatures() {
		return errors.NewDimensionError("ApplyScaling", params.NFeatures(), c, 1)
	}

	for i := 0; i < ds.Len(); i++ {
		row := ds.Row(i)
		for f := range row {
			row[f] = (row[f] - params.Min[f]) / (params.Max[f] - params.Min[f])
		}
	}
	return nil
}

// MinMaxScaler は ComputeScalingParameters と ApplyScaling を推定器の形にまとめたもの
type MinMaxScaler struct {
	model.BaseEstimator

	// Params は学習したスケーリングパラメータ
	Params *ScalingParameters

	logger log.Logger
}

var _ model.InPlaceTransformer = (*MinMaxScaler)(nil)

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler()
//	if err := scaler.FitTransformInPlace(ds); err != nil {
//	    return err
//	}
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

func (m *MinMaxScaler) log() log.Logger {
	if m.logger == nil {
		m.logger = log.GetLoggerWithName("preprocessing").With(log.ModelNameKey, "MinMaxScaler")
	}
	return m.logger
}

// Fit はデータセットから最小値・最大値を計算する
func (m *MinMaxScaler) Fit(ds *dataset.Dataset) error {
	params, err := ComputeScalingParameters(ds)
	if err != nil {
		return err
	}
	m.Params = params
	m.SetFitted()

	m.log().Debug("scaling parameters computed",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NFeatures(),
	)
	return nil
}

// TransformInPlace は学習済みパラメータでデータセットをその場でスケーリングする
func (m *MinMaxScaler) TransformInPlace(ds *dataset.Dataset) error {
	if !m.IsFitted() {
		return errors.NewNotFittedError("MinMaxScaler", "TransformInPlace")
	}
	return ApplyScaling(ds, m.Params)
}

// FitTransformInPlace は学習とその場でのスケーリングを続けて行う
func (m *MinMaxScaler) FitTransformInPlace(ds *dataset.Dataset) error {
	if err := m.Fit(ds); err != nil {
		return err
	}
	return m.TransformInPlace(ds)
}

// TransformRow は1行をスケーリングした新しいスライスを返す。
// データセット外のクエリを学習済みのスケールに合わせるために使う。
func (m *MinMaxScaler) TransformRow(row []float64) ([]float64, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "TransformRow")
	}
	if len(row) != m.Params.NFeatures() {
		return nil, errors.NewDimensionError("MinMaxScaler.TransformRow", m.Params.NFeatures(), len(row), 1)
	}
	out := make([]float64, len(row))
	for f, v := range row {
		if err := errors.CheckScalar("MinMaxScaler.TransformRow", v, f); err != nil {
			return nil, err
		}
		out[f] = (v - m.Params.Min[f]) / (m.Params.Max[f] - m.Params.Min[f])
	}
	return out, nil
}

// GetParams はスケーラーのパラメータを取得する
func (m *MinMaxScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"feature_range": [2]float64{0, 1},
	}
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return "MinMaxScaler(feature_range=[0.0, 1.0])"
	}
	return fmt.Sprintf("MinMaxScaler(feature_range=[0.0, 1.0], n_features=%d)", m.Params.NFeatures())
}
