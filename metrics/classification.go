package metrics

import (
	"fmt"

	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
)

// AccuracyScore は正解率をパーセントで返す
//
//	accuracy = 100 * correct / n
func AccuracyScore(yTrue, yPred []dataset.Label) (float64, error) {
	n := len(yTrue)
	if n == 0 {
		return 0, errors.NewEmptyDatasetError("AccuracyScore")
	}
	if len(yPred) != n {
		return 0, errors.NewDimensionError("AccuracyScore", n, len(yPred), 0)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return Accuracy(correct, n)
}

// Accuracy は正解数とサンプル数から正解率（%）を計算する
func Accuracy(correct, n int) (float64, error) {
	if n == 0 {
		return 0, errors.NewEmptyDatasetError("Accuracy")
	}
	return 100.0 * float64(correct) / float64(n), nil
}

// ConfusionMatrix は2クラスの混同行列
// LabelP を陽性クラスとして扱う
type ConfusionMatrix struct {
	TruePositive  int
	FalseNegative int
	FalsePositive int
	TrueNegative  int
}

// NewConfusionMatrix は正解ラベルと予測ラベルから混同行列を作成する
func NewConfusionMatrix(yTrue, yPred []dataset.Label) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(yPred) != len(yTrue) {
		return cm, errors.NewDimensionError("NewConfusionMatrix", len(yTrue), len(yPred), 0)
	}
	for i := range yTrue {
		cm.Add(yTrue[i], yPred[i])
	}
	return cm, nil
}

// Add は1件の結果を加算する
func (c *ConfusionMatrix) Add(truth, pred dataset.Label) {
	switch {
	case truth == dataset.LabelP && pred == dataset.LabelP:
		c.TruePositive++
	case truth == dataset.LabelP:
		c.FalseNegative++
	case pred == dataset.LabelP:
		c.FalsePositive++
	default:
		c.TrueNegative++
	}
}

// Merge は別の混同行列を加算する（ワーカーごとの部分集計の統合用）
func (c *ConfusionMatrix) Merge(o ConfusionMatrix) {
	c.TruePositive += o.TruePositive
	c.FalseNegative += o.FalseNegative
	c.FalsePositive += o.FalsePositive
	c.TrueNegative += o.TrueNegative
}

// Total はサンプル数を返す
func (c ConfusionMatrix) Total() int {
	return c.TruePositive + c.FalseNegative + c.FalsePositive + c.TrueNegative
}

// Correct は正解数を返す
func (c ConfusionMatrix) Correct() int {
	return c.TruePositive + c.TrueNegative
}

// Sensitivity は陽性クラス（P）の再現率を返す。P が1件もない場合は0
func (c ConfusionMatrix) Sensitivity() float64 {
	return ratio(c.TruePositive, c.TruePositive+c.FalseNegative)
}

// Specificity は陰性クラス（H）の再現率を返す。H が1件もない場合は0
func (c ConfusionMatrix) Specificity() float64 {
	return ratio(c.TrueNegative, c.TrueNegative+c.FalsePositive)
}

// String は混同行列の文字列表現を返す
func (c ConfusionMatrix) String() string {
	return fmt.Sprintf("ConfusionMatrix(tp=%d, fn=%d, fp=%d, tn=%d)",
		c.TruePositive, c.FalseNegative, c.FalsePositive, c.TrueNegative)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
