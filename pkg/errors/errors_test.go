package errors

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "empty data",
			err:     fmt.Errorf("no rows"),
			wantMsg: "paramgo: Fit: empty data: no rows",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			wantMsg: "paramgo: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			// スタックトレースにテストファイルが含まれること
			if formatted := fmt.Sprintf("%+v", err); !strings.Contains(formatted, "errors_test.go") {
				t.Error("Expected stack trace to contain test file name")
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
			if tt.err != nil && !Is(err, tt.err) {
				t.Error("ModelError should unwrap to the original error")
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("LibLinearSVR", "Predict")

	want := "paramgo: LibLinearSVR: this model is not fitted yet. Call Fit() before using Predict()"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var nf *NotFittedError
	if !As(err, &nf) {
		t.Fatal("Error should be castable to *NotFittedError")
	}
	if nf.ModelName != "LibLinearSVR" || nf.Method != "Predict" {
		t.Errorf("unexpected fields: %+v", nf)
	}
}

func TestNewDimensionError(t *testing.T) {
	tests := []struct {
		axis int
		want string
	}{
		{0, "paramgo: Fit: dimension mismatch on axis 0 (rows). Expected 10, got 9"},
		{1, "paramgo: Fit: dimension mismatch on axis 1 (features). Expected 10, got 9"},
	}
	for _, tt := range tests {
		err := NewDimensionError("Fit", 10, 9, tt.axis)
		if err.Error() != tt.want {
			t.Errorf("Error() = %v, want %v", err.Error(), tt.want)
		}
		var dimErr *DimensionError
		if !As(err, &dimErr) {
			t.Error("Error should be castable to *DimensionError")
		}
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("C", "must be positive", -1.0)
	want := "paramgo: validation failed for parameter 'C': must be positive (got: -1)"
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
	var ve *ValidationError
	if !As(err, &ve) || ve.ParamName != "C" {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestNumericalInstabilityErrorMessage(t *testing.T) {
	values := []float64{math.NaN(), 1, 2, 3, 4, 5, 6}
	err := NewNumericalInstabilityError("dual_cd", values, 3)
	msg := err.Error()
	if !strings.Contains(msg, "dual_cd") || !strings.Contains(msg, "iteration 3") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.HasSuffix(msg, ", ...]") {
		t.Errorf("expected truncated value list, got %q", msg)
	}
}

func TestCheckMatrix(t *testing.T) {
	clean := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if err := CheckMatrix("fit", clean, 0); err != nil {
		t.Errorf("CheckMatrix(clean) = %v", err)
	}

	dirty := mat.NewDense(2, 2, []float64{1, math.Inf(1), 3, math.NaN()})
	err := CheckMatrix("fit", dirty, 0)
	var ni *NumericalInstabilityError
	if !As(err, &ni) {
		t.Fatalf("CheckMatrix(dirty) = %v, want NumericalInstabilityError", err)
	}
	if len(ni.Values) != 1 {
		t.Errorf("expected scan to stop after first bad row, got %v", ni.Values)
	}
}

func TestCheckScalarAndVector(t *testing.T) {
	if err := CheckScalar("loss", 1.5, 1); err != nil {
		t.Errorf("CheckScalar(1.5) = %v", err)
	}
	if err := CheckScalar("loss", math.NaN(), 1); err == nil {
		t.Error("CheckScalar(NaN) should fail")
	}
	if err := CheckVector("w", []float64{0, 1, 2}, 0); err != nil {
		t.Errorf("CheckVector(clean) = %v", err)
	}
	if err := CheckVector("w", []float64{0, math.Inf(-1)}, 0); err == nil {
		t.Error("CheckVector(-Inf) should fail")
	}
}

func TestWarnUsesRegisteredFunc(t *testing.T) {
	var got []error
	SetZerologWarnFunc(func(w error) { got = append(got, w) })
	defer SetZerologWarnFunc(nil)

	Warn(NewConvergenceWarning("LinearSVR", 1000, ""))

	if len(got) != 1 {
		t.Fatalf("expected one warning, got %d", len(got))
	}
	if !strings.Contains(got[0].Error(), "failed to converge after 1000 iterations") {
		t.Errorf("unexpected warning %q", got[0].Error())
	}
}

func TestWarnFallsBackToHandler(t *testing.T) {
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(nil)

	w := NewConvergenceWarning("LinearSVR", 10, "tolerance not reached")
	Warn(w)
	if got != w {
		t.Errorf("handler received %v, want %v", got, w)
	}
}

func TestConvergenceWarningMarshalZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Warn().Object("warning", NewConvergenceWarning("LinearSVR", 5, "stop")).Msg("w")

	out := buf.String()
	for _, want := range []string{`"algorithm":"LinearSVR"`, `"iterations":5`, `"type":"ConvergenceWarning"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %s missing %s", out, want)
		}
	}
}
