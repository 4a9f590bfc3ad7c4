package regression

import (
	"sort"
	"sync"

	"github.com/YuminosukeSato/paramgo/components"
	"github.com/YuminosukeSato/paramgo/configspace"
	"github.com/YuminosukeSato/paramgo/core/model"
	"github.com/YuminosukeSato/paramgo/pkg/errors"
)

// Regressor is what the framework needs from a regression component.
type Regressor interface {
	model.Regressor
	Properties() components.Properties
	SearchSpace(dataset *components.DatasetProperties) *configspace.ConfigurationSpace
}

// Factory describes one registered regression component.
type Factory struct {
	Name        string
	Properties  func() components.Properties
	SearchSpace func(dataset *components.DatasetProperties) *configspace.ConfigurationSpace
	// New parses cfg and returns an unfitted component.
	New func(cfg configspace.Configuration) (Regressor, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	if err := Register(Factory{
		Name:        LibLinearSVRName,
		Properties:  LibLinearSVRProperties,
		SearchSpace: LibLinearSVRSearchSpace,
		New: func(cfg configspace.Configuration) (Regressor, error) {
			a, err := NewLibLinearSVRFromConfiguration(cfg)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	}); err != nil {
		panic(err)
	}
}

// Register adds f under f.Name. Registering a name twice is an error.
func Register(f Factory) error {
	if f.Name == "" || f.Properties == nil || f.SearchSpace == nil || f.New == nil {
		return errors.NewValueError("regression.Register", "factory must have a name and all constructors")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[f.Name]; dup {
		return errors.NewValidationError("name", "component already registered", f.Name)
	}
	registry[f.Name] = f
	return nil
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Names returns the registered names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Available returns the factories whose properties support dataset, sorted
// by name.
func Available(dataset components.DatasetProperties) []Factory {
	var out []Factory
	for _, name := range Names() {
		f, _ := Lookup(name)
		if f.Properties().Supports(dataset) {
			out = append(out, f)
		}
	}
	return out
}
