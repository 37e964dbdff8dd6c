package val

// Value is a property that is unset, constant, or a function of relative time.
// The zero Value is unset.
type Value[T any] struct {
	set      bool
	constant T
	fn       func(t float64) T
}

// Const returns a constant Value.
func Const[T any](v T) Value[T] {
	return Value[T]{set: true, constant: v}
}

// Func returns a Value animated by fn. A nil fn yields an unset Value.
func Func[T any](fn func(t float64) T) Value[T] {
	if fn == nil {
		return Value[T]{}
	}
	return Value[T]{set: true, fn: fn}
}

// IsSet reports whether v holds a constant or a function.
func (v Value[T]) IsSet() bool { return v.set }

// IsAnimated reports whether v is a function of time.
func (v Value[T]) IsAnimated() bool { return v.fn != nil }

// Constant returns the stored constant and whether v is a set, non-animated value.
func (v Value[T]) Constant() (T, bool) {
	return v.constant, v.set && v.fn == nil
}

// At evaluates v at t. ok is false when v is unset.
func (v Value[T]) At(t float64) (T, bool) {
	if !v.set {
		var zero T
		return zero, false
	}
	if v.fn != nil {
		return v.fn(t), true
	}
	return v.constant, true
}

// Resolve evaluates v at t, returning the zero value of T when v is unset.
func Resolve[T any](v Value[T], t float64) T {
	out, _ := v.At(t)
	return out
}

// ResolveOr evaluates v at t, or returns fallback() when v is unset.
// fallback is not called for set values.
func ResolveOr[T any](v Value[T], t float64, fallback func() T) T {
	if out, ok := v.At(t); ok {
		return out
	}
	if fallback == nil {
		var zero T
		return zero
	}
	return fallback()
}

// Or returns v when set, otherwise def.
func Or[T any](v, def Value[T]) Value[T] {
	if v.set {
		return v
	}
	return def
}

// Map returns a Value applying f to every resolution of v. Unset stays unset.
func Map[T, U any](v Value[T], f func(T) U) Value[U] {
	if !v.set {
		return Value[U]{}
	}
	if v.fn == nil {
		return Const(f(v.constant))
	}
	fn := v.fn
	return Func(func(t float64) U { return f(fn(t)) })
}
