// Package regression は自動モデル選択フレームワーク向けの回帰コンポーネントを提供します。
//
// 各コンポーネントは探索アルゴリズムから渡された設定 (configspace.Configuration)
// を型付きパラメータに変換し、数値ライブラリのモデルを構築・学習します。
// 同時に探索空間と能力記述子を公開し、フレームワークが適用可否を判断できるようにします。
package regression

import (
	"time"

	"github.com/YuminosukeSato/paramgo/components"
	"github.com/YuminosukeSato/paramgo/configspace"
	"github.com/YuminosukeSato/paramgo/metrics"
	"github.com/YuminosukeSato/paramgo/pkg/errors"
	"github.com/YuminosukeSato/paramgo/pkg/log"
	"github.com/YuminosukeSato/paramgo/svm"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"
)

// LibLinearSVRName is the registry name of the component.
const LibLinearSVRName = "liblinear_svr"

// LibLinearSVRParams are the typed hyperparameters of LibLinearSVR.
type LibLinearSVRParams struct {
	Loss             svm.Loss
	Epsilon          float64
	Dual             bool
	Tol              float64
	C                float64
	FitIntercept     bool
	InterceptScaling float64
	// RandomState seeds the solver. nil leaves it unseeded.
	RandomState *int64
}

// AsMap returns the parameters keyed by their hyperparameter names.
func (p LibLinearSVRParams) AsMap() map[string]interface{} {
	m := map[string]interface{}{
		"loss":              string(p.Loss),
		"epsilon":           p.Epsilon,
		"dual":              p.Dual,
		"tol":               p.Tol,
		"C":                 p.C,
		"fit_intercept":     p.FitIntercept,
		"intercept_scaling": p.InterceptScaling,
	}
	if p.RandomState != nil {
		m["random_state"] = *p.RandomState
	}
	return m
}

// ParseLibLinearSVRParams converts a hyperparameter assignment into typed
// parameters. C, tol, epsilon and intercept_scaling accept numbers or numeric
// strings. dual and fit_intercept are true only for the string "True" or the
// bool true. random_state is optional.
func ParseLibLinearSVRParams(cfg configspace.Configuration) (LibLinearSVRParams, error) {
	var p LibLinearSVRParams

	lossName, err := cfg.String("loss")
	if err != nil {
		return p, err
	}
	if p.Loss, err = svm.ParseLoss(lossName); err != nil {
		return p, err
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"C", &p.C},
		{"tol", &p.Tol},
		{"epsilon", &p.Epsilon},
		{"intercept_scaling", &p.InterceptScaling},
	}
	for _, f := range floats {
		if *f.dst, err = cfg.Float64(f.name); err != nil {
			return p, err
		}
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"dual", &p.Dual},
		{"fit_intercept", &p.FitIntercept},
	}
	for _, f := range flags {
		v, ok := cfg.Get(f.name)
		if !ok {
			return p, errors.NewValidationError(f.name, "missing value", nil)
		}
		*f.dst = parseFlag(v)
	}

	if v, ok := cfg.Get("random_state"); ok && v != nil {
		seed, err := cfg.Int64("random_state")
		if err != nil {
			return p, err
		}
		p.RandomState = &seed
	}
	return p, nil
}

// parseFlag は "True" という文字列のみを真とみなす
func parseFlag(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "True"
	default:
		return false
	}
}

// fitState は未学習 / 学習済みを表すタグ付き状態
type fitState interface {
	isFitState()
}

type unfitted struct{}

type fitted struct {
	model *svm.LinearSVR
}

func (unfitted) isFitState() {}
func (fitted) isFitState()   {}

// Option configures a LibLinearSVR.
type Option func(*LibLinearSVR)

// WithLogger sets the base logger. Records are tagged with the estimator id.
func WithLogger(logger log.Logger) Option {
	return func(a *LibLinearSVR) {
		a.logger = logger
	}
}

// WithMaxIter caps the solver iterations of the wrapped estimator.
func WithMaxIter(maxIter int) Option {
	return func(a *LibLinearSVR) {
		a.maxIter = maxIter
	}
}

// LibLinearSVR adapts svm.LinearSVR to the model-selection framework.
// It is not safe for concurrent Fit calls.
type LibLinearSVR struct {
	params  LibLinearSVRParams
	state   fitState
	id      string
	maxIter int
	logger  log.Logger
}

// NewLibLinearSVR creates an unfitted adapter from typed parameters.
func NewLibLinearSVR(params LibLinearSVRParams, opts ...Option) *LibLinearSVR {
	a := &LibLinearSVR{
		params:  params,
		state:   unfitted{},
		id:      uuid.NewString(),
		maxIter: 1000,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.GetLoggerWithName("regression")
	}
	a.logger = a.logger.With(log.ModelNameKey, "LibLinearSVR", log.EstimatorIDKey, a.id)
	return a
}

// NewLibLinearSVRFromConfiguration parses cfg once and creates an unfitted
// adapter. Unparseable values are reported here rather than at Fit.
func NewLibLinearSVRFromConfiguration(cfg configspace.Configuration, opts ...Option) (*LibLinearSVR, error) {
	params, err := ParseLibLinearSVRParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewLibLinearSVR(params, opts...), nil
}

func (a *LibLinearSVR) estimatorOptions() []svm.Option {
	opts := []svm.Option{
		svm.WithLoss(a.params.Loss),
		svm.WithEpsilon(a.params.Epsilon),
		svm.WithDual(a.params.Dual),
		svm.WithTol(a.params.Tol),
		svm.WithC(a.params.C),
		svm.WithFitIntercept(a.params.FitIntercept),
		svm.WithInterceptScaling(a.params.InterceptScaling),
		svm.WithMaxIter(a.maxIter),
		svm.WithLogger(a.logger),
	}
	if a.params.RandomState != nil {
		opts = append(opts, svm.WithRandomState(*a.params.RandomState))
	}
	return opts
}

// Fit builds a fresh svm.LinearSVR from the parameters and trains it. The
// previous fit is replaced only when training succeeds. Errors of the
// numerical library are returned unchanged.
func (a *LibLinearSVR) Fit(X, y mat.Matrix) error {
	start := time.Now()
	rows, cols := X.Dims()
	a.logger.Debug("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.SparseKey, svm.IsSparse(X),
		log.HyperParamsKey, a.params.AsMap(),
	)

	est := svm.NewLinearSVR(a.estimatorOptions()...)
	if err := errors.SafeExecute("LibLinearSVR.Fit", func() error { return est.Fit(X, y) }); err != nil {
		a.logger.Error("fit failed", log.OperationKey, log.OperationFit, log.ErrAttrKey, err)
		return err
	}

	a.state = fitted{model: est}
	a.logger.Info("fit completed",
		log.OperationKey, log.OperationFit,
		log.IterationKey, est.NIter(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Predict returns one prediction per row of X.
func (a *LibLinearSVR) Predict(X mat.Matrix) (mat.Matrix, error) {
	s, ok := a.state.(fitted)
	if !ok {
		a.logger.Debug("predict before fit", log.OperationKey, log.OperationPredict, log.ErrorCodeKey, log.ErrorNotFitted)
		return nil, errors.NewNotFittedError("LibLinearSVR", "Predict")
	}

	pred, err := s.model.Predict(X)
	if err != nil {
		var de *errors.DimensionError
		if errors.As(err, &de) {
			a.logger.Debug("predict failed", log.OperationKey, log.OperationPredict, log.ErrorCodeKey, log.ErrorDimensionMismatch)
		}
		return nil, err
	}
	rows, _ := pred.Dims()
	a.logger.Debug("predict completed", log.OperationKey, log.OperationPredict, log.PredsKey, rows)
	return pred, nil
}

// Score returns the R² of the predictions for X against y.
func (a *LibLinearSVR) Score(X, y mat.Matrix) (float64, error) {
	pred, err := a.Predict(X)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2ScoreMatrix(y, pred)
	if err != nil {
		return 0, err
	}
	a.logger.Debug("score computed", log.OperationKey, log.OperationScore, log.R2ScoreKey, score)
	return score, nil
}

// IsFitted reports whether Fit has succeeded at least once.
func (a *LibLinearSVR) IsFitted() bool {
	_, ok := a.state.(fitted)
	return ok
}

// Estimator returns the fitted numerical model.
func (a *LibLinearSVR) Estimator() (*svm.LinearSVR, bool) {
	s, ok := a.state.(fitted)
	if !ok {
		return nil, false
	}
	return s.model, true
}

// Params returns the typed parameters.
func (a *LibLinearSVR) Params() LibLinearSVRParams { return a.params }

// ID returns the estimator id attached to log records.
func (a *LibLinearSVR) ID() string { return a.id }

// Properties returns the capability descriptor.
func (a *LibLinearSVR) Properties() components.Properties { return LibLinearSVRProperties() }

// SearchSpace returns the hyperparameter search space.
func (a *LibLinearSVR) SearchSpace(dataset *components.DatasetProperties) *configspace.ConfigurationSpace {
	return LibLinearSVRSearchSpace(dataset)
}

func (a *LibLinearSVR) String() string { return "paramgo LibLinearSVR" }

var libLinearSVRProperties = components.Properties{
	ShortName:                "Liblinear-SVR",
	Name:                     "Liblinear Support Vector Regression",
	HandlesMissingValues:     false,
	HandlesNominalValues:     false,
	HandlesNumericalFeatures: true,
	PrefersDataScaled:        true,
	PrefersDataNormalized:    false,
	HandlesRegression:        true,
	HandlesClassification:    false,
	HandlesMulticlass:        false,
	HandlesMultilabel:        false,
	// liblinearは内部で乱数を使うため決定的ではない
	IsDeterministic: false,
	HandlesSparse:   true,
	Input:           []components.DataType{components.Sparse, components.Dense},
	Output:          []components.OutputType{components.Predictions},
}

// LibLinearSVRProperties returns the capability descriptor of LibLinearSVR.
func LibLinearSVRProperties() components.Properties {
	p := libLinearSVRProperties
	p.Input = append([]components.DataType(nil), p.Input...)
	p.Output = append([]components.OutputType(nil), p.Output...)
	return p
}

// LibLinearSVRSearchSpace declares the hyperparameters of LibLinearSVR.
// dataset is accepted for interface compatibility and does not change the
// space.
func LibLinearSVRSearchSpace(_ *components.DatasetProperties) *configspace.ConfigurationSpace {
	cs := configspace.NewConfigurationSpace()
	add := func(hp configspace.Hyperparameter, err error) {
		if err != nil {
			panic(err)
		}
		if _, err := cs.AddHyperparameter(hp); err != nil {
			panic(err)
		}
	}

	add(configspace.NewUniformFloat("C", 0.03125, 32768, 1.0, true))
	add(configspace.NewCategorical("loss",
		[]string{string(svm.EpsilonInsensitive), string(svm.SquaredEpsilonInsensitive)},
		string(svm.EpsilonInsensitive)))
	// 経験的な範囲
	add(configspace.NewUniformFloat("epsilon", 0.001, 1, 0.1, true))
	add(configspace.NewConstant("dual", "False"))
	add(configspace.NewUniformFloat("tol", 1e-5, 1e-1, 1e-4, true))
	add(configspace.NewConstant("fit_intercept", "True"))
	add(configspace.NewConstant("intercept_scaling", 1))
	return cs
}
