package layer

import (
	"fmt"
	"slices"
)

// Effect post-processes a visual layer's surface after the layer has drawn.
// An effect belongs to at most one layer at a time.
type Effect interface {
	Enabled() bool
	// Attach binds the effect to target. It fails with ErrEffectAttached
	// while the effect belongs to another layer.
	Attach(target *Visual) error
	Detach()
	Apply(target *Visual, t float64) error
}

// Effects is the ordered effect pipeline of one visual layer. Inserting an
// effect attaches it to the owner; removing it detaches it first.
type Effects struct {
	owner *Visual
	list  []Effect
}

// Len returns the number of effects.
func (e *Effects) Len() int { return len(e.list) }

// At returns the effect at index i.
func (e *Effects) At(i int) Effect { return e.list[i] }

// All returns a copy of the pipeline in application order.
func (e *Effects) All() []Effect {
	out := make([]Effect, len(e.list))
	copy(out, e.list)
	return out
}

// IndexOf returns the position of fx, or -1.
func (e *Effects) IndexOf(fx Effect) int {
	for i, x := range e.list {
		if x == fx {
			return i
		}
	}
	return -1
}

// Append attaches fx and adds it to the end of the pipeline.
func (e *Effects) Append(fx Effect) error {
	return e.InsertAt(len(e.list), fx)
}

// InsertAt attaches fx and inserts it before index i (0 <= i <= Len()).
// Nothing is inserted when attaching fails.
func (e *Effects) InsertAt(i int, fx Effect) error {
	if fx == nil {
		return fmt.Errorf("%w: nil effect", ErrConfiguration)
	}
	if i < 0 || i > len(e.list) {
		return fmt.Errorf("%w: insert at %d (len %d)", ErrIndexOutOfRange, i, len(e.list))
	}
	if err := fx.Attach(e.owner); err != nil {
		return err
	}

	e.list = append(e.list, nil)
	copy(e.list[i+1:], e.list[i:])
	e.list[i] = fx

	return nil
}

// RemoveAt detaches and removes the effect at index i.
func (e *Effects) RemoveAt(i int) (Effect, error) {
	if i < 0 || i >= len(e.list) {
		return nil, fmt.Errorf("%w: remove at %d (len %d)", ErrIndexOutOfRange, i, len(e.list))
	}

	fx := e.list[i]
	fx.Detach()
	e.list = slices.Delete(e.list, i, i+1)

	return fx, nil
}

// Remove detaches and removes fx. It reports whether fx was present.
func (e *Effects) Remove(fx Effect) bool {
	i := e.IndexOf(fx)
	if i < 0 {
		return false
	}
	_, _ = e.RemoveAt(i)
	return true
}

// apply runs every enabled effect in order.
func (e *Effects) apply(t float64) error {
	for i, fx := range e.list {
		if !fx.Enabled() {
			continue
		}
		if err := fx.Apply(e.owner, t); err != nil {
			return fmt.Errorf("layer: apply effect %d: %w", i, err)
		}
	}
	return nil
}
