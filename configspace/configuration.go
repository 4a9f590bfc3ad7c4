package configspace

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/paramgo/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Configuration is one assignment of values to hyperparameter names. Values
// coming from a search algorithm or a YAML file may be strings even when the
// hyperparameter is numeric.
type Configuration map[string]interface{}

// Get returns the raw value for name.
func (c Configuration) Get(name string) (interface{}, bool) {
	v, ok := c[name]
	return v, ok
}

// Float64 returns the value for name converted with ToFloat64.
func (c Configuration) Float64(name string) (float64, error) {
	v, ok := c[name]
	if !ok {
		return 0, errors.NewValidationError(name, "missing value", nil)
	}
	f, err := ToFloat64(v)
	if err != nil {
		return 0, errors.NewValidationError(name, "not a number", v)
	}
	return f, nil
}

// Int64 returns the value for name as an integer. Floats must be integral.
func (c Configuration) Int64(name string) (int64, error) {
	v, ok := c[name]
	if !ok {
		return 0, errors.NewValidationError(name, "missing value", nil)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint32:
		return int64(n), nil
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, nil
		}
	}
	f, err := ToFloat64(v)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, errors.NewValidationError(name, "not an integer", v)
	}
	return int64(f), nil
}

// String returns the value for name formatted as a string.
func (c Configuration) String(name string) (string, error) {
	v, ok := c[name]
	if !ok {
		return "", errors.NewValidationError(name, "missing value", nil)
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// Names returns the assigned names in sorted order.
func (c Configuration) Names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// WriteYAML writes the configuration as a YAML mapping with sorted keys.
func (c Configuration) WriteYAML(w io.Writer) error {
	ms := make(yaml.MapSlice, 0, len(c))
	for _, k := range c.Names() {
		ms = append(ms, yaml.MapItem{Key: k, Value: c[k]})
	}
	data, err := yaml.Marshal(ms)
	if err != nil {
		return errors.Wrap(err, "encode configuration")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "write configuration")
	}
	return nil
}

// LoadConfiguration reads a YAML mapping of hyperparameter names to values.
// Unquoted True/False are decoded as bools.
func LoadConfiguration(r io.Reader) (Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read configuration")
	}
	cfg := Configuration{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}
	return cfg, nil
}

// ToFloat64 converts numeric kinds and numeric strings to float64.
func ToFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse %q", n)
		}
		return f, nil
	default:
		return 0, errors.Newf("unsupported numeric type %T", v)
	}
}

// valuesEqual compares two scalar values. Numbers compare by value regardless
// of kind, bools match "True"/"False" case-insensitively and everything else
// compares by its printed form.
func valuesEqual(a, b interface{}) bool {
	_, aStr := a.(string)
	_, bStr := b.(string)
	_, aBool := a.(bool)
	_, bBool := b.(bool)
	if aBool || bBool {
		return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b))
	}
	if !aStr && !bStr {
		fa, errA := ToFloat64(a)
		fb, errB := ToFloat64(b)
		if errA == nil && errB == nil {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
