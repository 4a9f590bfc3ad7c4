// Package preprocessing は推定器の前段で特徴量を整える変換器を提供します。
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/paramgo/core/model"
	"github.com/YuminosukeSato/paramgo/core/parallel"
	"github.com/YuminosukeSato/paramgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler は各特徴量を平均0・標準偏差1に変換する
//
// LibLinearSVR のように prefers_data_scaled な推定器の前に置く。
// 疎な入力には WithMean(false) を使うとゼロが保たれる。
type StandardScaler struct {
	model.BaseEstimator

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（分散0の特徴量は1）
	Scale []float64

	NFeatures int

	withMean bool
	withStd  bool
}

// ScalerOption configures a StandardScaler.
type ScalerOption func(*StandardScaler)

// WithMean sets whether to subtract the mean.
func WithMean(on bool) ScalerOption {
	return func(s *StandardScaler) {
		s.withMean = on
	}
}

// WithStd sets whether to divide by the standard deviation.
func WithStd(on bool) ScalerOption {
	return func(s *StandardScaler) {
		s.withStd = on
	}
}

// NewStandardScaler は新しいStandardScalerを作成する（デフォルトは平均・分散とも使用）
//
//	scaler := preprocessing.NewStandardScaler()
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(opts ...ScalerOption) *StandardScaler {
	s := &StandardScaler{withMean: true, withStd: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fit は訓練データから平均と標準偏差（母標準偏差）を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}
	if err := errors.CheckMatrix("StandardScaler.Fit", X, 0); err != nil {
		return err
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		m, v := stat.PopMeanVariance(col, nil)
		if s.withMean {
			mean[j] = m
		}
		scale[j] = 1
		// 定数特徴量はゼロ除算を避けるため1のまま
		if sd := math.Sqrt(v); s.withStd && sd > 1e-8 {
			scale[j] = sd
		}
	}

	s.Mean, s.Scale, s.NFeatures = mean, scale, c
	s.SetFitted()
	return nil
}

// Transform は学習済みの統計量でデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("Transform", X, func(v float64, j int) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	})
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	return s.apply("InverseTransform", X, func(v float64, j int) float64 {
		return v*s.Scale[j] + s.Mean[j]
	})
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

func (s *StandardScaler) apply(method string, X mat.Matrix, fn func(v float64, j int) float64) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", method)
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler."+method, s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, j, fn(X.At(i, j), j))
			}
		}
	})
	return result, nil
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.withMean,
		"with_std":  s.withStd,
	}
}

func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.withMean, s.withStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.withMean, s.withStd, s.NFeatures)
}
