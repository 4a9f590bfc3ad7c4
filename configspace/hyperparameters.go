// Package configspace は探索アルゴリズムが扱うハイパーパラメータ空間を表現します。
//
// 空間は連続値 (UniformFloat)、整数 (UniformInteger)、カテゴリ (Categorical)、
// 定数 (Constant) の各ハイパーパラメータと、親の値に応じて子を有効にする
// EqualsCondition から構成されます。サンプリングされた割り当ては
// Configuration として扱い、値は文字列のまま渡されることがあります。
package configspace

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/YuminosukeSato/paramgo/pkg/errors"
)

// Hyperparameter is one named dimension of a ConfigurationSpace.
type Hyperparameter interface {
	Name() string
	DefaultValue() interface{}
	// IsLegal reports whether value may be assigned to this hyperparameter.
	IsLegal(value interface{}) bool
	Sample(rng *rand.Rand) interface{}
	String() string
}

// UniformFloat は [Lower, Upper] の連続値ハイパーパラメータ
type UniformFloat struct {
	name    string
	Lower   float64
	Upper   float64
	Default float64
	Log     bool
}

// NewUniformFloat declares a float range. Log-scaled ranges need Lower > 0.
func NewUniformFloat(name string, lower, upper, defaultValue float64, log bool) (*UniformFloat, error) {
	if err := checkRange(name, lower, upper, defaultValue, log); err != nil {
		return nil, err
	}
	return &UniformFloat{name: name, Lower: lower, Upper: upper, Default: defaultValue, Log: log}, nil
}

func (h *UniformFloat) Name() string { return h.name }

func (h *UniformFloat) DefaultValue() interface{} { return h.Default }

func (h *UniformFloat) IsLegal(value interface{}) bool {
	v, err := ToFloat64(value)
	return err == nil && v >= h.Lower && v <= h.Upper
}

func (h *UniformFloat) Sample(rng *rand.Rand) interface{} {
	if h.Log {
		lo, hi := math.Log(h.Lower), math.Log(h.Upper)
		return clamp(math.Exp(lo+rng.Float64()*(hi-lo)), h.Lower, h.Upper)
	}
	return h.Lower + rng.Float64()*(h.Upper-h.Lower)
}

func (h *UniformFloat) String() string {
	return fmt.Sprintf("%s, Type: UniformFloat, Range: [%g, %g], Default: %g%s",
		h.name, h.Lower, h.Upper, h.Default, logSuffix(h.Log))
}

// UniformInteger は [Lower, Upper] の整数ハイパーパラメータ
type UniformInteger struct {
	name    string
	Lower   int
	Upper   int
	Default int
	Log     bool
}

// NewUniformInteger declares an integer range.
func NewUniformInteger(name string, lower, upper, defaultValue int, log bool) (*UniformInteger, error) {
	if err := checkRange(name, float64(lower), float64(upper), float64(defaultValue), log); err != nil {
		return nil, err
	}
	return &UniformInteger{name: name, Lower: lower, Upper: upper, Default: defaultValue, Log: log}, nil
}

func (h *UniformInteger) Name() string { return h.name }

func (h *UniformInteger) DefaultValue() interface{} { return h.Default }

func (h *UniformInteger) IsLegal(value interface{}) bool {
	v, err := ToFloat64(value)
	return err == nil && v == math.Trunc(v) && v >= float64(h.Lower) && v <= float64(h.Upper)
}

func (h *UniformInteger) Sample(rng *rand.Rand) interface{} {
	if h.Log {
		lo, hi := math.Log(float64(h.Lower)), math.Log(float64(h.Upper))
		v := math.Round(math.Exp(lo + rng.Float64()*(hi-lo)))
		return int(clamp(v, float64(h.Lower), float64(h.Upper)))
	}
	return h.Lower + rng.Intn(h.Upper-h.Lower+1)
}

func (h *UniformInteger) String() string {
	return fmt.Sprintf("%s, Type: UniformInteger, Range: [%d, %d], Default: %d%s",
		h.name, h.Lower, h.Upper, h.Default, logSuffix(h.Log))
}

// Categorical は文字列の選択肢から一つを選ぶハイパーパラメータ
type Categorical struct {
	name    string
	Choices []string
	Default string
}

// NewCategorical declares a categorical choice. An empty default selects the
// first choice.
func NewCategorical(name string, choices []string, defaultValue string) (*Categorical, error) {
	if len(choices) == 0 {
		return nil, errors.NewValidationError(name, "choices must not be empty", choices)
	}
	seen := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		if _, dup := seen[c]; dup {
			return nil, errors.NewValidationError(name, "duplicate choice", c)
		}
		seen[c] = struct{}{}
	}
	if defaultValue == "" {
		defaultValue = choices[0]
	}
	if _, ok := seen[defaultValue]; !ok {
		return nil, errors.NewValidationError(name, "default must be one of the choices", defaultValue)
	}
	return &Categorical{name: name, Choices: append([]string(nil), choices...), Default: defaultValue}, nil
}

func (h *Categorical) Name() string { return h.name }

func (h *Categorical) DefaultValue() interface{} { return h.Default }

func (h *Categorical) IsLegal(value interface{}) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, c := range h.Choices {
		if c == s {
			return true
		}
	}
	return false
}

func (h *Categorical) Sample(rng *rand.Rand) interface{} {
	return h.Choices[rng.Intn(len(h.Choices))]
}

func (h *Categorical) String() string {
	return fmt.Sprintf("%s, Type: Categorical, Choices: {%s}, Default: %s",
		h.name, strings.Join(h.Choices, ", "), h.Default)
}

// Constant は常に同じ値をとるハイパーパラメータ
type Constant struct {
	name  string
	Value interface{}
}

// NewConstant declares a fixed value. Only strings, bools and numbers are
// accepted.
func NewConstant(name string, value interface{}) (*Constant, error) {
	switch value.(type) {
	case string, bool:
	default:
		if _, err := ToFloat64(value); err != nil {
			return nil, errors.NewValidationError(name, "constant must be a string, bool or number", value)
		}
	}
	return &Constant{name: name, Value: value}, nil
}

func (h *Constant) Name() string { return h.name }

func (h *Constant) DefaultValue() interface{} { return h.Value }

func (h *Constant) IsLegal(value interface{}) bool { return valuesEqual(h.Value, value) }

func (h *Constant) Sample(*rand.Rand) interface{} { return h.Value }

func (h *Constant) String() string {
	return fmt.Sprintf("%s, Type: Constant, Value: %v", h.name, h.Value)
}

// UnParametrized is a Constant for settings that are fixed but still
// reported to the search algorithm.
type UnParametrized struct {
	Constant
}

// NewUnParametrized declares a fixed, documented setting.
func NewUnParametrized(name string, value interface{}) (*UnParametrized, error) {
	c, err := NewConstant(name, value)
	if err != nil {
		return nil, err
	}
	return &UnParametrized{Constant: *c}, nil
}

func (h *UnParametrized) String() string {
	return fmt.Sprintf("%s, Type: UnParametrized, Value: %v", h.name, h.Value)
}

func checkRange(name string, lower, upper, defaultValue float64, log bool) error {
	switch {
	case name == "":
		return errors.NewValidationError("name", "must not be empty", name)
	case !(lower < upper):
		return errors.NewValidationError(name, fmt.Sprintf("lower must be less than upper %g", upper), lower)
	case log && lower <= 0:
		return errors.NewValidationError(name, "log-scaled range needs a positive lower bound", lower)
	case defaultValue < lower || defaultValue > upper:
		return errors.NewValidationError(name, fmt.Sprintf("default must lie in [%g, %g]", lower, upper), defaultValue)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func logSuffix(log bool) string {
	if log {
		return ", on log-scale"
	}
	return ""
}
