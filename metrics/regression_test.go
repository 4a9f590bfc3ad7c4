package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{"perfect prediction", []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5}, 0, false},
		{"simple case", []float64{1, 2, 3, 4}, []float64{1.5, 2.5, 2.5, 3.5}, 0.25, false},
		{"larger errors", []float64{10, 20, 30}, []float64{12, 18, 33}, 17.0 / 3.0, false},
		{"dimension mismatch", []float64{1, 2, 3}, []float64{1, 2}, 0, true},
		{"empty vectors", nil, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MSE() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSEAndMAE(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4}
	yPred := []float64{2, 2, 3, 2}

	rmse, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if want := math.Sqrt(5.0 / 4.0); math.Abs(rmse-want) > 1e-12 {
		t.Errorf("RMSE() = %v, want %v", rmse, want)
	}

	mae, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(mae-0.75) > 1e-12 {
		t.Errorf("MAE() = %v, want 0.75", mae)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{"perfect", []float64{1, 2, 3}, []float64{1, 2, 3}, 1, false},
		{"mean predictor", []float64{1, 2, 3}, []float64{2, 2, 2}, 0, false},
		{"worse than mean", []float64{1, 2, 3}, []float64{3, 2, 1}, -3, false},
		{"constant target", []float64{2, 2, 2}, []float64{1, 2, 3}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorrelation(t *testing.T) {
	r, err := Correlation([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("Correlation() = %v, want 1", r)
	}

	if _, err := Correlation([]float64{1, 1, 1}, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for constant input")
	}
	if _, err := Correlation([]float64{1}, []float64{1}); err == nil {
		t.Error("expected error for a single sample")
	}
}

func TestR2ScoreMatrix(t *testing.T) {
	yTrue := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	yPred := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	got, err := R2ScoreMatrix(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("R2ScoreMatrix() = %v, want 1", got)
	}

	wide := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := R2ScoreMatrix(wide, wide); err == nil {
		t.Error("expected error for a multi-column input")
	}
}

func BenchmarkMSE(b *testing.B) {
	n := 10000
	yTrue := make([]float64, n)
	yPred := make([]float64, n)
	for i := 0; i < n; i++ {
		yTrue[i] = float64(i)
		yPred[i] = float64(i) + 0.1
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
