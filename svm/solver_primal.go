package svm

import (
	"math"

	"github.com/YuminosukeSato/paramgo/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// primalResult is the outcome of one primal L-BFGS run.
type primalResult struct {
	w         []float64
	iter      int
	converged bool
	status    optimize.Status
}

// solvePrimal minimises the L2-loss SVR primal
//
//	f(w) = ½‖w‖² + C Σ max(0, |wᵀxᵢ − yᵢ| − ε)²
//
// with L-BFGS. f is convex and continuously differentiable. Optimisation
// stops when the infinity norm of the gradient drops below tol times its
// value at w = 0.
func solvePrimal(prob *problem, c, p, tol float64, maxIter int) (primalResult, error) {
	fn := func(w []float64) float64 {
		f := 0.5 * floats.Dot(w, w)
		for i, row := range prob.rows {
			if d := residualOutsideTube(dot(w, row)-prob.y[i], p); d != 0 {
				f += c * d * d
			}
		}
		return f
	}
	grad := func(g, w []float64) {
		copy(g, w)
		for i, row := range prob.rows {
			if d := residualOutsideTube(dot(w, row)-prob.y[i], p); d != 0 {
				axpy(2*c*d, row, g)
			}
		}
	}

	w0 := make([]float64, prob.n)
	g0 := make([]float64, prob.n)
	grad(g0, w0)
	gnorm0 := floats.Norm(g0, math.Inf(1))
	if gnorm0 == 0 {
		return primalResult{w: w0, converged: true, status: optimize.GradientThreshold}, nil
	}

	settings := &optimize.Settings{
		GradientThreshold: tol * gnorm0,
		MajorIterations:   maxIter,
	}
	result, err := optimize.Minimize(optimize.Problem{Func: fn, Grad: grad}, w0, settings, &optimize.LBFGS{})
	if result == nil {
		return primalResult{}, errors.NewModelError("LinearSVR.Fit", "primal solver failed", err)
	}
	if verr := errors.CheckVector("LinearSVR.Fit", result.X, result.MajorIterations); verr != nil {
		return primalResult{}, verr
	}

	// A line search that can no longer decrease f leaves a usable point.
	converged := err == nil && result.Status != optimize.IterationLimit
	return primalResult{
		w:         result.X,
		iter:      result.MajorIterations,
		converged: converged,
		status:    result.Status,
	}, nil
}

// residualOutsideTube returns d shifted towards zero by p, or zero when
// |d| <= p.
func residualOutsideTube(d, p float64) float64 {
	switch {
	case d > p:
		return d - p
	case d < -p:
		return d + p
	default:
		return 0
	}
}
