// Package knnloo estimates how well a distance-weighted K-nearest-neighbor
// classifier separates two classes of biomarker samples, P and H, using
// leave-one-out cross-validation.
//
// Every feature is min-max scaled to [0,1] over the whole dataset. Each
// sample is then classified against all the others: the K closest samples by
// Euclidean distance vote with weight 1/(distance+1e-6), and P wins only when
// its total weight is strictly greater than H's. The reported accuracy is the
// share of samples whose predicted label matches the true one.
//
// # Installation
//
//	go install github.com/YuminosukeSato/knnloo/cmd/knnloo@latest
//
// # Quick Start
//
//	knnloo evaluate --input biomarkers.csv --neighbors 5
//
// prints
//
//	Total samples loaded: 120
//	Model accuracy: 93.33333%
//
// The same run from Go:
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/knnloo/dataset"
//	    "github.com/YuminosukeSato/knnloo/preprocessing"
//	    "github.com/YuminosukeSato/knnloo/sklearn/model_selection"
//	    "github.com/YuminosukeSato/knnloo/sklearn/neighbors"
//	)
//
//	func main() {
//	    ds, err := dataset.ReadCSVFromFilePath("biomarkers.csv", dataset.ReadOptions{})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := preprocessing.NewMinMaxScaler().FitTransformInPlace(ds); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    clf := neighbors.NewKNeighborsClassifier(neighbors.WithNNeighbors(5))
//	    res, err := model_selection.NewEvaluator(clf).Evaluate(context.Background(), ds)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("Model accuracy: %.5f%%\n", res.Accuracy)
//	}
//
// # Packages
//
//   - dataset: Samples and labels, CSV and SQLite3 loaders
//   - preprocessing: MinMaxScaler
//   - metrics: Distance functions, accuracy, confusion matrix
//   - sklearn/neighbors: KNeighborsClassifier with inverse-distance voting
//   - sklearn/model_selection: LeaveOneOut splitter and evaluator
//   - config: YAML run configuration
//   - core/model: Core interfaces and base types
//   - core/parallel: Parallel processing utilities
//   - pkg/errors, pkg/log: Error types and structured logging
//
// # Performance
//
// A leave-one-out run costs O(n² · F) distance work. Evaluator.Workers splits
// the held-out samples across goroutines; each worker keeps its own counts
// and the results are identical to a sequential run.
//
// # License
//
// knnloo is released under the MIT License.
package knnloo
