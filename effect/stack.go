package effect

import (
	"fmt"

	"github.com/khanaslam439/vidar/layer"
)

// Stack applies a fixed sequence of effects as one. Attaching the stack
// attaches every child to the same layer.
type Stack struct {
	Base
	children []layer.Effect
}

// NewStack creates a stack of effects applied in order.
func NewStack(children ...layer.Effect) (*Stack, error) {
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: stack child %d is nil", ErrInvalidParameter, i)
		}
	}
	s := &Stack{Base: newBase(), children: make([]layer.Effect, len(children))}
	copy(s.children, children)
	return s, nil
}

// Children returns a copy of the child effects.
func (s *Stack) Children() []layer.Effect {
	out := make([]layer.Effect, len(s.children))
	copy(out, s.children)
	return out
}

// Attach attaches the stack and its children. Nothing stays attached when any
// child fails.
func (s *Stack) Attach(target *layer.Visual) error {
	if err := s.Base.Attach(target); err != nil {
		return err
	}
	for i, c := range s.children {
		if err := c.Attach(target); err != nil {
			for _, done := range s.children[:i] {
				done.Detach()
			}
			s.Base.Detach()
			return fmt.Errorf("effect: attach stack child %d: %w", i, err)
		}
	}
	return nil
}

// Detach detaches every child and then the stack.
func (s *Stack) Detach() {
	for _, c := range s.children {
		c.Detach()
	}
	s.Base.Detach()
}

// Apply runs every enabled child in order.
func (s *Stack) Apply(target *layer.Visual, t float64) error {
	for i, c := range s.children {
		if !c.Enabled() {
			continue
		}
		if err := c.Apply(target, t); err != nil {
			return fmt.Errorf("effect: stack child %d: %w", i, err)
		}
	}
	return nil
}
