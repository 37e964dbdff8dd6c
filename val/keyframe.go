package val

import (
	"errors"
	"sort"

	"github.com/khanaslam439/vidar/interp"
)

// ErrNoKeyframes is returned when an animation is built from zero keyframes.
var ErrNoKeyframes = errors.New("val: no keyframes")

// Keyframe pins a value at a relative time. Mode selects how the segment
// starting at this keyframe is interpolated towards the next one.
type Keyframe[T any] struct {
	Time  float64
	Value T
	Mode  interp.Mode
}

// KF is shorthand for a linear numeric keyframe.
func KF(time, value float64) Keyframe[float64] {
	return Keyframe[float64]{Time: time, Value: value}
}

// Lerper blends between two values of T. Implementations receive the segment
// endpoints, their outer neighbours (for ModeHermite) and the fraction.
type Lerper[T any] func(mode interp.Mode, frac float64, prev, from, to, next T) T

// Keyframes builds an animated numeric Value. Before the first keyframe the
// first value holds, after the last keyframe the last value holds.
func Keyframes(frames ...Keyframe[float64]) (Value[float64], error) {
	return KeyframesOf(LerpFloat, frames...)
}

// MustKeyframes is like Keyframes but panics on error.
func MustKeyframes(frames ...Keyframe[float64]) Value[float64] {
	v, err := Keyframes(frames...)
	if err != nil {
		panic(err)
	}
	return v
}

// KeyframesOf builds an animated Value of any type using lerp.
// A nil lerp steps between values.
func KeyframesOf[T any](lerp Lerper[T], frames ...Keyframe[T]) (Value[T], error) {
	if len(frames) == 0 {
		return Value[T]{}, ErrNoKeyframes
	}
	if lerp == nil {
		lerp = stepLerp[T]
	}

	sorted := make([]Keyframe[T], len(frames))
	copy(sorted, frames)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	if len(sorted) == 1 {
		return Const(sorted[0].Value), nil
	}

	return Func(func(t float64) T {
		return evalKeyframes(sorted, lerp, t)
	}), nil
}

func evalKeyframes[T any](frames []Keyframe[T], lerp Lerper[T], t float64) T {
	last := len(frames) - 1
	if t <= frames[0].Time {
		return frames[0].Value
	}
	if t >= frames[last].Time {
		return frames[last].Value
	}

	i := sort.Search(len(frames), func(i int) bool { return frames[i].Time > t }) - 1
	from, to := frames[i], frames[i+1]

	span := to.Time - from.Time
	if span <= 0 {
		return to.Value
	}
	frac := (t - from.Time) / span

	prev := from.Value
	if i > 0 {
		prev = frames[i-1].Value
	}
	next := to.Value
	if i+2 <= last {
		next = frames[i+2].Value
	}

	return lerp(from.Mode, frac, prev, from.Value, to.Value, next)
}

// LerpFloat interpolates numeric keyframes with the kernels in package interp.
func LerpFloat(mode interp.Mode, frac float64, prev, from, to, next float64) float64 {
	return interp.Segment(mode, frac, prev, from, to, next)
}

func stepLerp[T any](_ interp.Mode, frac float64, _, from, to, _ T) T {
	if frac >= 1 {
		return to
	}
	return from
}
