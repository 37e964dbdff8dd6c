// Package val resolves time-varying properties.
//
// A [Value] is unset, constant, or animated. Resolving it at a relative time
// yields the effective value: constants are returned as-is, animated values
// call their function with the time, and unset values defer to an explicit
// fallback supplied by the owner (for example a layer falling back to the
// composition's width). Resolution has no side effects.
//
// [Keyframes] builds animated numeric values from (time, value) pairs using the
// kernels in package interp.
package val
