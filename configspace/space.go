package configspace

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/YuminosukeSato/paramgo/pkg/errors"
)

// EqualsCondition activates Child only while Parent equals Value.
type EqualsCondition struct {
	Child  string
	Parent string
	Value  interface{}
}

// NewEqualsCondition builds a condition. value must be legal for parent.
func NewEqualsCondition(child, parent Hyperparameter, value interface{}) (*EqualsCondition, error) {
	if child.Name() == parent.Name() {
		return nil, errors.NewValidationError(child.Name(), "a hyperparameter cannot be conditioned on itself", parent.Name())
	}
	if !parent.IsLegal(value) {
		return nil, errors.NewValidationError(parent.Name(), "condition value is not legal for parent", value)
	}
	return &EqualsCondition{Child: child.Name(), Parent: parent.Name(), Value: value}, nil
}

func (c *EqualsCondition) String() string {
	return fmt.Sprintf("%s | %s == %v", c.Child, c.Parent, c.Value)
}

// ConfigurationSpace is an ordered set of hyperparameters plus the
// conditions between them.
type ConfigurationSpace struct {
	hyperparameters map[string]Hyperparameter
	order           []string
	conditions      map[string]*EqualsCondition // child -> condition
}

// NewConfigurationSpace returns an empty space.
func NewConfigurationSpace() *ConfigurationSpace {
	return &ConfigurationSpace{
		hyperparameters: make(map[string]Hyperparameter),
		conditions:      make(map[string]*EqualsCondition),
	}
}

// AddHyperparameter adds hp and returns it so declarations can be chained.
func (cs *ConfigurationSpace) AddHyperparameter(hp Hyperparameter) (Hyperparameter, error) {
	if hp == nil {
		return nil, errors.NewValueError("ConfigurationSpace.AddHyperparameter", "hyperparameter must not be nil")
	}
	if _, dup := cs.hyperparameters[hp.Name()]; dup {
		return nil, errors.NewValidationError(hp.Name(), "hyperparameter already exists in the space", hp.Name())
	}
	cs.hyperparameters[hp.Name()] = hp
	cs.order = append(cs.order, hp.Name())
	return hp, nil
}

// AddCondition registers cond. Both ends must already be in the space and a
// child may have only one condition.
func (cs *ConfigurationSpace) AddCondition(cond *EqualsCondition) error {
	if cond == nil {
		return errors.NewValueError("ConfigurationSpace.AddCondition", "condition must not be nil")
	}
	for _, name := range []string{cond.Child, cond.Parent} {
		if _, ok := cs.hyperparameters[name]; !ok {
			return errors.NewValidationError(name, "unknown hyperparameter in condition", cond.String())
		}
	}
	if _, dup := cs.conditions[cond.Child]; dup {
		return errors.NewValidationError(cond.Child, "hyperparameter already has a condition", cond.String())
	}
	// 親を辿って循環を検出
	for p := cond.Parent; ; {
		if p == cond.Child {
			return errors.NewValidationError(cond.Child, "condition creates a cycle", cond.String())
		}
		parent, ok := cs.conditions[p]
		if !ok {
			break
		}
		p = parent.Parent
	}
	cs.conditions[cond.Child] = cond
	return nil
}

// Get returns the hyperparameter called name.
func (cs *ConfigurationSpace) Get(name string) (Hyperparameter, bool) {
	hp, ok := cs.hyperparameters[name]
	return hp, ok
}

// Names returns hyperparameter names in insertion order.
func (cs *ConfigurationSpace) Names() []string {
	return append([]string(nil), cs.order...)
}

// Hyperparameters returns the hyperparameters in insertion order.
func (cs *ConfigurationSpace) Hyperparameters() []Hyperparameter {
	out := make([]Hyperparameter, len(cs.order))
	for i, name := range cs.order {
		out[i] = cs.hyperparameters[name]
	}
	return out
}

// Len returns the number of hyperparameters.
func (cs *ConfigurationSpace) Len() int { return len(cs.order) }

// Conditions returns the conditions sorted by child name.
func (cs *ConfigurationSpace) Conditions() []*EqualsCondition {
	out := make([]*EqualsCondition, 0, len(cs.conditions))
	for _, c := range cs.conditions {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Child < out[j].Child })
	return out
}

// IsActive reports whether name takes part in cfg: it has no condition, or
// its parent is active and holds the condition value.
func (cs *ConfigurationSpace) IsActive(name string, cfg Configuration) bool {
	cond, ok := cs.conditions[name]
	if !ok {
		return true
	}
	v, ok := cfg[cond.Parent]
	return ok && valuesEqual(v, cond.Value) && cs.IsActive(cond.Parent, cfg)
}

// DefaultConfiguration assigns every active hyperparameter its default.
func (cs *ConfigurationSpace) DefaultConfiguration() Configuration {
	cfg := make(Configuration, len(cs.order))
	for _, name := range cs.order {
		cfg[name] = cs.hyperparameters[name].DefaultValue()
	}
	cs.dropInactive(cfg)
	return cfg
}

// SampleConfiguration draws every hyperparameter from rng and drops the
// ones left inactive by their conditions.
func (cs *ConfigurationSpace) SampleConfiguration(rng *rand.Rand) Configuration {
	cfg := make(Configuration, len(cs.order))
	for _, name := range cs.order {
		cfg[name] = cs.hyperparameters[name].Sample(rng)
	}
	cs.dropInactive(cfg)
	return cfg
}

func (cs *ConfigurationSpace) dropInactive(cfg Configuration) {
	var inactive []string
	for _, name := range cs.order {
		if !cs.IsActive(name, cfg) {
			inactive = append(inactive, name)
		}
	}
	for _, name := range inactive {
		delete(cfg, name)
	}
}

// Validate checks that cfg assigns a legal value to every active
// hyperparameter and nothing else.
func (cs *ConfigurationSpace) Validate(cfg Configuration) error {
	for _, name := range cfg.Names() {
		if _, ok := cs.hyperparameters[name]; !ok {
			return errors.NewValidationError(name, "unknown hyperparameter", cfg[name])
		}
	}
	for _, name := range cs.order {
		hp := cs.hyperparameters[name]
		v, set := cfg[name]
		active := cs.IsActive(name, cfg)
		switch {
		case active && !set:
			return errors.NewValidationError(name, "active hyperparameter has no value", nil)
		case !active && set:
			return errors.NewValidationError(name, "inactive hyperparameter must not have a value", v)
		case active && !hp.IsLegal(v):
			return errors.NewValidationError(name, "illegal value", v)
		}
	}
	return nil
}

func (cs *ConfigurationSpace) String() string {
	var b strings.Builder
	b.WriteString("Configuration space object:\n  Hyperparameters:\n")
	for _, hp := range cs.Hyperparameters() {
		fmt.Fprintf(&b, "    %s\n", hp)
	}
	if conds := cs.Conditions(); len(conds) > 0 {
		b.WriteString("  Conditions:\n")
		for _, c := range conds {
			fmt.Fprintf(&b, "    %s\n", c)
		}
	}
	return b.String()
}
