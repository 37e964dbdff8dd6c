package layer

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks construction-time configuration errors.
	// Layers are not created when it is returned.
	ErrConfiguration = errors.New("layer: invalid configuration")

	// ErrState marks caller contract violations such as attaching twice.
	ErrState = errors.New("layer: invalid state")
)

var (
	// ErrAlreadyAttached is returned when attaching an attached layer.
	ErrAlreadyAttached = fmt.Errorf("%w: layer already attached", ErrState)

	// ErrEffectAttached is returned when inserting an effect that already
	// belongs to a layer.
	ErrEffectAttached = fmt.Errorf("%w: effect already attached", ErrState)

	// ErrIndexOutOfRange is returned by Effects for invalid positions.
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrState)
)
