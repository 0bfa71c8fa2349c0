// Package config は評価実行の設定をYAMLファイルから読み込む。
package config

import (
	"os"
	"strings"

	"github.com/YuminosukeSato/knnloo/dataset"
	"github.com/YuminosukeSato/knnloo/metrics"
	"github.com/YuminosukeSato/knnloo/pkg/errors"
	"github.com/YuminosukeSato/knnloo/pkg/log"
	"github.com/YuminosukeSato/knnloo/sklearn/neighbors"
	yaml "gopkg.in/yaml.v2"
)

// Config は1回の leave-one-out 評価に必要な設定
type Config struct {
	Input    string `yaml:"input"`     // CSV (.csv) または SQLite (.db) のパス。空なら標準入力
	Features int    `yaml:"features"`  // 特徴量数。0ならヘッダーから決定
	K        int    `yaml:"k"`         // 投票に使う近傍数
	Workers  int    `yaml:"workers"`   // 評価の並列数
	Metric   string `yaml:"metric"`    // euclidean, manhattan, chebyshev
	LogLevel string `yaml:"log_level"` // debug, info, warn, error
	Table    string `yaml:"table"`     // SQLite入力のテーブル名
}

// Default はデフォルト設定を返す
func Default() *Config {
	return &Config{
		K:        neighbors.DefaultNNeighbors,
		Workers:  1,
		Metric:   "euclidean",
		LogLevel: "info",
		Table:    dataset.DefaultTable,
	}
}

// Parse はYAMLをデフォルト設定の上に読み込む。
// YAMLに現れないキーはデフォルト値のまま残る。
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing yaml config")
	}
	return cfg, nil
}

// Load はファイルから設定を読み込む。空のパスはデフォルト設定を返す。
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	log.GetLoggerWithName("config").Debug("config loaded", log.ConfigFileKey, path)
	return cfg, nil
}

// Validate はデータを読む前に判定できる設定の誤りを報告する。
// K がデータセットのサイズより小さいかどうかは評価時に確認する。
func (c *Config) Validate() error {
	if c.Features < 0 {
		return errors.NewConfigurationError("features", "must not be negative", c.Features)
	}
	if c.K < 1 {
		return errors.NewConfigurationError("k", "must be at least 1", c.K)
	}
	if c.Workers < 0 {
		return errors.NewConfigurationError("workers", "must not be negative", c.Workers)
	}
	if _, ok := metrics.Distance(c.Metric); !ok {
		return errors.NewConfigurationError("metric", "must be one of euclidean, manhattan, chebyshev", c.Metric)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.NewConfigurationError("log_level", "must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// IsSQLite は入力がSQLiteデータベースかどうかを返す
func (c *Config) IsSQLite() bool {
	return strings.HasSuffix(c.Input, ".db")
}

// Level は検証済みのログレベルを返す
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.LevelInfo
	}
	return level
}

// ReadOptions はデータセットの読み込みオプションを返す
func (c *Config) ReadOptions() dataset.ReadOptions {
	return dataset.ReadOptions{
		NFeatures: c.Features,
		Source:    c.Input,
	}
}

// Classifier は設定から分類器を構築する。Validate 済みであること。
func (c *Config) Classifier() *neighbors.KNeighborsClassifier {
	metric, _ := metrics.Distance(c.Metric)
	return neighbors.NewKNeighborsClassifier(
		neighbors.WithNNeighbors(c.K),
		neighbors.WithMetric(metric),
	)
}
