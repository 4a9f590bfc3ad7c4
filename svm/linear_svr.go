// Package svm provides liblinear-style linear support vector regression.
//
// LinearSVR solves the L2-regularized problem
//
//	min_w ½‖w‖² + C Σ ℓ(yᵢ − wᵀxᵢ)
//
// where ℓ is the epsilon-insensitive loss max(0, |r| − ε) or its square.
// The intercept is learned as the weight of a synthetic feature whose value is
// intercept_scaling, so it is regularized like every other weight.
package svm

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/YuminosukeSato/paramgo/core/model"
	"github.com/YuminosukeSato/paramgo/core/parallel"
	"github.com/YuminosukeSato/paramgo/metrics"
	"github.com/YuminosukeSato/paramgo/pkg/errors"
	"github.com/YuminosukeSato/paramgo/pkg/log"
	"gonum.org/v1/gonum/mat"
)

// Loss selects the regression loss.
type Loss string

const (
	// EpsilonInsensitive is the L1 loss max(0, |r| − ε).
	EpsilonInsensitive Loss = "epsilon_insensitive"
	// SquaredEpsilonInsensitive is the L2 loss max(0, |r| − ε)².
	SquaredEpsilonInsensitive Loss = "squared_epsilon_insensitive"
)

// ParseLoss converts a loss name to a Loss.
func ParseLoss(name string) (Loss, error) {
	switch Loss(name) {
	case EpsilonInsensitive, SquaredEpsilonInsensitive:
		return Loss(name), nil
	default:
		return "", errors.NewValidationError("loss",
			fmt.Sprintf("must be %q or %q", EpsilonInsensitive, SquaredEpsilonInsensitive), name)
	}
}

const weightsVersion = "1.0"

// LinearSVR is a linear support vector regressor.
type LinearSVR struct {
	model.BaseEstimator

	// ハイパーパラメータ
	epsilon          float64
	tol              float64
	c                float64
	loss             Loss
	dual             bool
	fitIntercept     bool
	interceptScaling float64
	maxIter          int
	randomState      int64
	hasSeed          bool
	logger           log.Logger

	// 学習結果
	coef      []float64
	intercept float64
	nIter     int
	nFeatures int

	mu sync.RWMutex
}

// NewLinearSVR creates a LinearSVR with scikit-learn's defaults: C=1,
// epsilon=0, tol=1e-4, epsilon-insensitive loss, dual solver, intercept with
// scaling 1, at most 1000 iterations and no seed.
func NewLinearSVR(opts ...Option) *LinearSVR {
	m := &LinearSVR{
		epsilon:          0.0,
		tol:              1e-4,
		c:                1.0,
		loss:             EpsilonInsensitive,
		dual:             true,
		fitIntercept:     true,
		interceptScaling: 1.0,
		maxIter:          1000,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.GetLoggerWithName("svm")
	}
	return m
}

func (m *LinearSVR) validateParams() error {
	switch {
	case !(m.c > 0):
		return errors.NewValidationError("C", "must be positive", m.c)
	case !(m.epsilon >= 0):
		return errors.NewValidationError("epsilon", "must be non-negative", m.epsilon)
	case !(m.tol > 0):
		return errors.NewValidationError("tol", "must be positive", m.tol)
	case m.maxIter <= 0:
		return errors.NewValidationError("max_iter", "must be positive", m.maxIter)
	case m.fitIntercept && !(m.interceptScaling > 0):
		return errors.NewValidationError("intercept_scaling", "must be positive when fit_intercept is true", m.interceptScaling)
	}
	_, err := ParseLoss(string(m.loss))
	return err
}

func (m *LinearSVR) newRand() *rand.Rand {
	if m.hasSeed {
		return rand.New(rand.NewSource(m.randomState))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// Fit trains the model on X (n_samples × n_features) and the column vector y.
// A failed fit leaves any previous fit in place.
func (m *LinearSVR) Fit(X, y mat.Matrix) (err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer errors.Recover(&err, "LinearSVR.Fit")

	if err := m.validateParams(); err != nil {
		return err
	}

	bias := -1.0
	if m.fitIntercept {
		bias = m.interceptScaling
	}
	prob, err := newProblem("LinearSVR.Fit", X, y, bias)
	if err != nil {
		return err
	}

	var (
		w         []float64
		iter      int
		converged bool
	)
	if m.dual || m.loss == EpsilonInsensitive {
		if !m.dual {
			m.logger.Debug("no primal solver for epsilon_insensitive loss, using dual coordinate descent",
				log.SolverKey, "dual_cd")
		}
		res := solveDual(prob, m.loss, m.c, m.epsilon, m.tol, m.maxIter, m.newRand())
		w, iter, converged = res.w, res.iter, res.converged
	} else {
		res, err := solvePrimal(prob, m.c, m.epsilon, m.tol, m.maxIter)
		if err != nil {
			return err
		}
		w, iter, converged = res.w, res.iter, res.converged
	}

	if err := errors.CheckVector("LinearSVR.Fit", w, iter); err != nil {
		return err
	}
	if !converged {
		errors.Warn(errors.NewConvergenceWarning("LinearSVR", iter, "Liblinear failed to converge, increase the number of iterations."))
	}

	m.coef = append([]float64(nil), w[:prob.nFeatures]...)
	m.intercept = 0
	if m.fitIntercept {
		m.intercept = m.interceptScaling * w[prob.nFeatures]
	}
	m.nIter = iter
	m.nFeatures = prob.nFeatures
	m.SetFitted()
	return nil
}

// Predict returns an n×1 matrix holding wᵀx + b for every row of X.
func (m *LinearSVR) Predict(X mat.Matrix) (mat.Matrix, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("LinearSVR", "Predict")
	}

	rows, cols := X.Dims()
	if cols != m.nFeatures {
		return nil, errors.NewDimensionError("LinearSVR.Predict", m.nFeatures, cols, 1)
	}
	if rows == 0 {
		return nil, errors.NewModelError("LinearSVR.Predict", "empty data", errors.ErrEmptyData)
	}

	out := make([]float64, rows)
	parallel.ParallelizeWithThreshold(rows, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = dot(m.coef, sparseRow(X, i, cols)) + m.intercept
		}
	})
	return mat.NewDense(rows, 1, out), nil
}

// Score returns the R² of the predictions for X against y.
func (m *LinearSVR) Score(X, y mat.Matrix) (float64, error) {
	pred, err := m.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}

// Coef returns a copy of the learned weights, excluding the intercept.
func (m *LinearSVR) Coef() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.coef...)
}

// Intercept returns the learned intercept, or 0 when fit_intercept is false.
func (m *LinearSVR) Intercept() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.intercept
}

// NIter returns the number of solver iterations run by the last fit.
func (m *LinearSVR) NIter() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nIter
}

// GetParams returns the hyperparameters keyed by their scikit-learn names.
func (m *LinearSVR) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"C":                 m.c,
		"epsilon":           m.epsilon,
		"loss":              string(m.loss),
		"dual":              m.dual,
		"tol":               m.tol,
		"fit_intercept":     m.fitIntercept,
		"intercept_scaling": m.interceptScaling,
		"max_iter":          m.maxIter,
		"random_state":      nil,
	}
	if m.hasSeed {
		params["random_state"] = m.randomState
	}
	return params
}

// ExportWeights exports the fitted coefficients and intercept.
func (m *LinearSVR) ExportWeights() (*model.ModelWeights, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("LinearSVR", "ExportWeights")
	}
	return &model.ModelWeights{
		ModelType:       "LinearSVR",
		Version:         weightsVersion,
		Coefficients:    append([]float64(nil), m.coef...),
		Intercept:       m.intercept,
		Hyperparameters: m.GetParams(),
		Metadata: map[string]interface{}{
			"n_iter":     m.nIter,
			"n_features": m.nFeatures,
		},
		IsFitted: true,
	}, nil
}

// ImportWeights restores coefficients and intercept exported by
// ExportWeights. Hyperparameters of the receiver are left unchanged.
func (m *LinearSVR) ImportWeights(weights *model.ModelWeights) error {
	if weights == nil {
		return errors.NewValueError("LinearSVR.ImportWeights", "weights must not be nil")
	}
	if err := weights.Validate(); err != nil {
		return err
	}
	if weights.ModelType != "LinearSVR" {
		return errors.NewValidationError("model_type", "expected LinearSVR", weights.ModelType)
	}
	if !weights.IsFitted {
		return errors.NewValidationError("is_fitted", "cannot import weights of an unfitted model", false)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.coef = append([]float64(nil), weights.Coefficients...)
	m.intercept = weights.Intercept
	m.nFeatures = len(weights.Coefficients)
	m.nIter = 0
	m.SetFitted()
	return nil
}
