package svm

import "github.com/YuminosukeSato/paramgo/pkg/log"

// Option configures a LinearSVR.
type Option func(*LinearSVR)

// WithC sets the inverse regularization strength.
func WithC(c float64) Option {
	return func(m *LinearSVR) {
		m.c = c
	}
}

// WithEpsilon sets the width of the insensitive tube.
func WithEpsilon(epsilon float64) Option {
	return func(m *LinearSVR) {
		m.epsilon = epsilon
	}
}

// WithLoss selects the epsilon-insensitive (L1) or squared
// epsilon-insensitive (L2) loss.
func WithLoss(loss Loss) Option {
	return func(m *LinearSVR) {
		m.loss = loss
	}
}

// WithDual selects the dual coordinate descent solver.
func WithDual(dual bool) Option {
	return func(m *LinearSVR) {
		m.dual = dual
	}
}

// WithTol sets the stopping tolerance.
func WithTol(tol float64) Option {
	return func(m *LinearSVR) {
		m.tol = tol
	}
}

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(m *LinearSVR) {
		m.fitIntercept = fit
	}
}

// WithInterceptScaling sets the value of the synthetic bias feature.
func WithInterceptScaling(scaling float64) Option {
	return func(m *LinearSVR) {
		m.interceptScaling = scaling
	}
}

// WithMaxIter caps the number of solver iterations.
func WithMaxIter(maxIter int) Option {
	return func(m *LinearSVR) {
		m.maxIter = maxIter
	}
}

// WithRandomState seeds the permutation used by the dual solver.
func WithRandomState(seed int64) Option {
	return func(m *LinearSVR) {
		m.randomState = seed
		m.hasSeed = true
	}
}

// WithLogger sets the logger used for solver diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(m *LinearSVR) {
		m.logger = logger
	}
}
