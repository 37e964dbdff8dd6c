package effect

import (
	"errors"
	"fmt"
	"sort"

	"github.com/khanaslam439/vidar/layer"
)

// Factory builds one effect from its parameters.
type Factory func(p Params) (layer.Effect, error)

// Registry maps effect type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("effect registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Names returns the registered effect types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds an effect of type p.Type. Effects built with p.Disabled start
// disabled.
func (r *Registry) New(p Params) (layer.Effect, error) {
	factory := r.Lookup(p.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, p.Type)
	}

	fx, err := factory(p)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", p.Type, err)
	}

	if p.Disabled {
		if s, ok := fx.(interface{ SetEnabled(bool) }); ok {
			s.SetEnabled(false)
		}
	}
	return fx, nil
}
