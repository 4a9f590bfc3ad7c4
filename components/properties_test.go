package components

import "testing"

func TestProperties_Supports(t *testing.T) {
	regressor := Properties{
		HandlesRegression: true,
		HandlesSparse:     true,
		Input:             []DataType{Sparse, Dense},
	}
	denseClassifier := Properties{
		HandlesClassification: true,
		HandlesMulticlass:     true,
		Input:                 []DataType{Dense},
	}

	tests := []struct {
		name    string
		props   Properties
		dataset DatasetProperties
		want    bool
	}{
		{"regressor on regression", regressor, DatasetProperties{Task: Regression}, true},
		{"regressor on sparse regression", regressor, DatasetProperties{Task: Regression, Sparse: true}, true},
		{"regressor on classification", regressor, DatasetProperties{Task: BinaryClassification}, false},
		{"classifier on multiclass", denseClassifier, DatasetProperties{Task: MulticlassClassification}, true},
		{"classifier on multilabel", denseClassifier, DatasetProperties{Task: MultilabelClassification}, false},
		{"classifier on sparse data", denseClassifier, DatasetProperties{Task: BinaryClassification, Sparse: true}, false},
		{"classifier on regression", denseClassifier, DatasetProperties{Task: Regression}, false},
		{"unknown task", regressor, DatasetProperties{Task: Task(99)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.props.Supports(tt.dataset); got != tt.want {
				t.Errorf("Supports(%+v) = %v, want %v", tt.dataset, got, tt.want)
			}
		})
	}
}

func TestProperties_Accepts(t *testing.T) {
	p := Properties{Input: []DataType{Sparse, Dense}}
	if !p.Accepts(Sparse) || !p.Accepts(Dense) {
		t.Error("Accepts() must report declared input types")
	}
	if p.Accepts(SignedData) {
		t.Error("Accepts(SignedData) = true, want false")
	}
}

func TestConstantNames(t *testing.T) {
	if Sparse.String() != "SPARSE" || Predictions.String() != "PREDICTIONS" || Regression.String() != "regression" {
		t.Error("unexpected constant names")
	}
}
