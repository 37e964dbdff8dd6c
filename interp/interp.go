package interp

import (
	"fmt"
	"math"
)

// Mode selects an interpolation kernel.
type Mode int

const (
	// ModeLinear is the default mode.
	ModeLinear Mode = iota
	ModeCosine
	ModeHermite
	ModeStep
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeCosine:
		return "cosine"
	case ModeHermite:
		return "hermite"
	case ModeStep:
		return "step"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves a mode name. The empty string is linear.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "linear":
		return ModeLinear, nil
	case "cosine":
		return ModeCosine, nil
	case "hermite":
		return ModeHermite, nil
	case "step":
		return ModeStep, nil
	default:
		return ModeLinear, fmt.Errorf("interp: unknown mode %q", name)
	}
}

// Segment interpolates between x0 and x1 at frac in [0,1] using mode.
// xm1 and x2 are the neighbouring values; only ModeHermite reads them.
func Segment(mode Mode, frac, xm1, x0, x1, x2 float64) float64 {
	switch mode {
	case ModeCosine:
		return Cosine2(frac, x0, x1)
	case ModeHermite:
		return Hermite4(frac, xm1, x0, x1, x2)
	case ModeStep:
		return Step(frac, x0, x1)
	default:
		return Linear2(frac, x0, x1)
	}
}

// Linear2 computes 2-point linear interpolation.
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Cosine2 eases from x0 to x1 following half a cosine period.
func Cosine2(t, x0, x1 float64) float64 {
	f := (1 - math.Cos(t*math.Pi)) / 2
	return x0 + f*(x1-x0)
}

// Step holds x0 until t reaches 1.
func Step(t, x0, x1 float64) float64 {
	if t >= 1 {
		return x1
	}
	return x0
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}
