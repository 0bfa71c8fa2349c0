// Package model は推定器の共通状態とインターフェースを定義する。
package model

import "github.com/YuminosukeSato/knnloo/dataset"

// LabeledSet はラベル付きの行集合への読み取り専用ビュー。
// *dataset.Dataset はこれを満たす。Leave-one-outでは1行を除いたビューを渡す。
type LabeledSet interface {
	Len() int
	Row(i int) []float64
	Label(i int) dataset.Label
}

// QueryClassifier は単一のクエリを任意の訓練集合に対して分類する。
// Leave-one-out評価器はこのインターフェースだけに依存する。
type QueryClassifier interface {
	// Classify は train を訓練集合として query のラベルを返す
	Classify(query []float64, train LabeledSet) (dataset.Label, error)

	// NeighborCount は投票に使う近傍数Kを返す
	NeighborCount() int
}
