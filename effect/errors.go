package effect

import "errors"

var (
	// ErrUnknownEffect is returned by Registry.New for unregistered types.
	ErrUnknownEffect = errors.New("effect: unknown effect type")

	// ErrInvalidParameter is returned for out-of-range effect parameters.
	ErrInvalidParameter = errors.New("effect: invalid parameter")
)
