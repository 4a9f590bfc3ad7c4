// Package components はモデル選択フレームワークが参照するコンポーネントの
// メタデータ（扱えるデータ・タスク・出力の種類）を定義します。
package components

// DataType describes a kind of input a component accepts.
type DataType int

const (
	Dense DataType = iota
	Sparse
	UnsignedData
	SignedData
)

func (d DataType) String() string {
	switch d {
	case Dense:
		return "DENSE"
	case Sparse:
		return "SPARSE"
	case UnsignedData:
		return "UNSIGNED_DATA"
	case SignedData:
		return "SIGNED_DATA"
	default:
		return "UNKNOWN"
	}
}

// OutputType describes what a component produces.
type OutputType int

const (
	// Predictions は最終的な予測値
	Predictions OutputType = iota
	// Input は入力と同じ形式のデータ（前処理コンポーネント用）
	Input
)

func (o OutputType) String() string {
	switch o {
	case Predictions:
		return "PREDICTIONS"
	case Input:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}

// Task is the learning problem of a dataset.
type Task int

const (
	Regression Task = iota
	BinaryClassification
	MulticlassClassification
	MultilabelClassification
)

func (t Task) String() string {
	switch t {
	case Regression:
		return "regression"
	case BinaryClassification:
		return "binary.classification"
	case MulticlassClassification:
		return "multiclass.classification"
	case MultilabelClassification:
		return "multilabel.classification"
	default:
		return "unknown"
	}
}

// Properties は1つのコンポーネントの能力記述子
type Properties struct {
	ShortName string
	Name      string

	HandlesMissingValues     bool
	HandlesNominalValues     bool
	HandlesNumericalFeatures bool
	PrefersDataScaled        bool
	PrefersDataNormalized    bool
	HandlesRegression        bool
	HandlesClassification    bool
	HandlesMulticlass        bool
	HandlesMultilabel        bool
	IsDeterministic          bool
	HandlesSparse            bool

	Input  []DataType
	Output []OutputType
	// PreferredDType is empty when the component has no preference.
	PreferredDType string
}

// DatasetProperties describes the dataset a component would be trained on.
type DatasetProperties struct {
	Task   Task
	Sparse bool
	Signed bool
}

// Supports reports whether a component with these properties can be used on
// the dataset.
func (p Properties) Supports(d DatasetProperties) bool {
	switch d.Task {
	case Regression:
		if !p.HandlesRegression {
			return false
		}
	case BinaryClassification:
		if !p.HandlesClassification {
			return false
		}
	case MulticlassClassification:
		if !p.HandlesClassification || !p.HandlesMulticlass {
			return false
		}
	case MultilabelClassification:
		if !p.HandlesClassification || !p.HandlesMultilabel {
			return false
		}
	default:
		return false
	}
	if d.Sparse && !p.HandlesSparse {
		return false
	}
	return true
}

// Accepts reports whether dt is listed in Input.
func (p Properties) Accepts(dt DataType) bool {
	for _, in := range p.Input {
		if in == dt {
			return true
		}
	}
	return false
}
