package effect

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/khanaslam439/vidar/layer"
)

// Base tracks the layer an effect is attached to. Concrete effects embed it.
type Base struct {
	id       string
	disabled bool
	target   *layer.Visual
}

func newBase() Base {
	return Base{id: uuid.NewString()}
}

// ID returns a unique identifier assigned at construction.
func (b *Base) ID() string {
	if b.id == "" {
		b.id = uuid.NewString()
	}
	return b.id
}

// Enabled reports whether the pipeline should apply the effect.
func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled toggles the effect without removing it from its layer.
func (b *Base) SetEnabled(enabled bool) { b.disabled = !enabled }

// Target returns the layer the effect is attached to, or nil.
func (b *Base) Target() *layer.Visual { return b.target }

// Attach binds the effect to target. An effect belongs to one layer at a time.
func (b *Base) Attach(target *layer.Visual) error {
	if target == nil {
		return fmt.Errorf("%w: nil target", layer.ErrConfiguration)
	}
	if b.target != nil {
		return layer.ErrEffectAttached
	}
	b.target = target
	return nil
}

// Detach releases the effect from its layer.
func (b *Base) Detach() { b.target = nil }
