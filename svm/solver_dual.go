package svm

import (
	"math"
	"math/rand"
)

// dualResult is the outcome of one dual coordinate descent run.
type dualResult struct {
	w         []float64
	iter      int
	converged bool
}

// solveDual solves the L1- or L2-loss SVR dual
//
//	min_β  ½ βᵀQβ − yᵀβ + ε‖β‖₁ + ½λ‖β‖²   s.t. −U ≤ βᵢ ≤ U
//
// by coordinate descent over a random permutation with shrinking, keeping
// w = Σ βᵢ xᵢ up to date. L1 loss uses λ = 0, U = C; L2 loss uses
// λ = 1/(2C), U = ∞. Iteration stops once the summed projected-gradient
// violation falls below tol times its first-pass value.
func solveDual(prob *problem, loss Loss, c, p, tol float64, maxIter int, rng *rand.Rand) dualResult {
	l := len(prob.rows)
	w := make([]float64, prob.n)
	beta := make([]float64, l)
	qd := make([]float64, l)
	index := make([]int, l)

	lambda, upper := 0.0, c
	if loss == SquaredEpsilonInsensitive {
		lambda, upper = 0.5/c, math.Inf(1)
	}

	for i, row := range prob.rows {
		qd[i] = squaredNorm(row) + lambda
		index[i] = i
	}

	activeSize := l
	gmaxOld := math.Inf(1)
	gnorm1Init := -1.0
	iter := 0

	for iter < maxIter {
		gmaxNew, gnorm1New := 0.0, 0.0

		for j := 0; j < activeSize; j++ {
			k := j + rng.Intn(activeSize-j)
			index[j], index[k] = index[k], index[j]
		}

		for s := 0; s < activeSize; s++ {
			i := index[s]
			g := -prob.y[i] + lambda*beta[i] + dot(w, prob.rows[i])
			h := qd[i]
			gp, gn := g+p, g-p

			violation := 0.0
			shrink := false
			switch {
			case beta[i] == 0:
				if gp < 0 {
					violation = -gp
				} else if gn > 0 {
					violation = gn
				} else if gp > gmaxOld && gn < -gmaxOld {
					shrink = true
				}
			case beta[i] >= upper:
				if gp > 0 {
					violation = gp
				} else if gp < -gmaxOld {
					shrink = true
				}
			case beta[i] <= -upper:
				if gn < 0 {
					violation = -gn
				} else if gn > gmaxOld {
					shrink = true
				}
			case beta[i] > 0:
				violation = math.Abs(gp)
			default:
				violation = math.Abs(gn)
			}

			if shrink {
				activeSize--
				index[s], index[activeSize] = index[activeSize], index[s]
				s--
				continue
			}

			gmaxNew = math.Max(gmaxNew, violation)
			gnorm1New += violation

			// Newton step on the one-variable piecewise quadratic
			var d float64
			switch {
			case gp < h*beta[i]:
				d = -gp / h
			case gn > h*beta[i]:
				d = -gn / h
			default:
				d = -beta[i]
			}
			if math.Abs(d) < 1e-12 {
				continue
			}

			betaOld := beta[i]
			beta[i] = math.Min(math.Max(beta[i]+d, -upper), upper)
			if d = beta[i] - betaOld; d != 0 {
				axpy(d, prob.rows[i], w)
			}
		}

		if iter == 0 {
			gnorm1Init = gnorm1New
		}
		iter++

		if gnorm1New <= tol*gnorm1Init {
			if activeSize == l {
				return dualResult{w: w, iter: iter, converged: true}
			}
			// re-check every variable before stopping
			activeSize = l
			gmaxOld = math.Inf(1)
			continue
		}
		gmaxOld = gmaxNew
	}

	return dualResult{w: w, iter: iter, converged: false}
}
