package svm

import (
	"github.com/YuminosukeSato/paramgo/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// feature is one non-zero entry of a training row.
type feature struct {
	index int
	value float64
}

// problem holds the training set in row-sparse form. When a bias is used it
// is stored as an extra feature at index nFeatures.
type problem struct {
	rows      [][]feature
	y         []float64
	nFeatures int
	n         int // weight vector length, nFeatures plus one when bias > 0
	bias      float64
}

// newProblem validates X and y and converts X to sparse rows. bias <= 0
// disables the bias feature.
func newProblem(op string, X, y mat.Matrix, bias float64) (*problem, error) {
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}

	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return nil, errors.NewDimensionError(op, nSamples, yRows, 0)
	}
	if yCols != 1 {
		return nil, errors.NewValueError(op, "y must be a column vector (n×1 matrix)")
	}
	if err := errors.CheckMatrix(op, X, 0); err != nil {
		return nil, err
	}
	if err := errors.CheckMatrix(op, y, 0); err != nil {
		return nil, err
	}

	prob := &problem{
		rows:      make([][]feature, nSamples),
		y:         mat.Col(nil, 0, y),
		nFeatures: nFeatures,
		n:         nFeatures,
		bias:      bias,
	}
	if bias > 0 {
		prob.n++
	}
	for i := 0; i < nSamples; i++ {
		row := sparseRow(X, i, nFeatures)
		if bias > 0 {
			row = append(row, feature{index: nFeatures, value: bias})
		}
		prob.rows[i] = row
	}
	return prob, nil
}

// sparseRow collects the non-zero entries of row i. Inputs implementing
// mat.RowNonZeroDoer are walked without touching their zero entries.
func sparseRow(X mat.Matrix, i, cols int) []feature {
	var row []feature
	if nz, ok := X.(mat.RowNonZeroDoer); ok {
		nz.DoRowNonZero(i, func(_, j int, v float64) {
			row = append(row, feature{index: j, value: v})
		})
		return row
	}
	for j := 0; j < cols; j++ {
		if v := X.At(i, j); v != 0 {
			row = append(row, feature{index: j, value: v})
		}
	}
	return row
}

// IsSparse reports whether X exposes its non-zero structure.
func IsSparse(X mat.Matrix) bool {
	if _, dense := X.(*mat.Dense); dense {
		return false
	}
	_, ok := X.(mat.RowNonZeroDoer)
	return ok
}

func dot(w []float64, row []feature) float64 {
	var s float64
	for _, f := range row {
		s += w[f.index] * f.value
	}
	return s
}

func axpy(a float64, row []feature, w []float64) {
	for _, f := range row {
		w[f.index] += a * f.value
	}
}

func squaredNorm(row []feature) float64 {
	var s float64
	for _, f := range row {
		s += f.value * f.value
	}
	return s
}
