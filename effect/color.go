package effect

import (
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/val"
)

// Brightness adds Amount to every colour channel. Amount is on the 0-255
// channel scale; negative values darken.
type Brightness struct {
	Base
	amount val.Value[float64]
}

// NewBrightness creates a brightness effect.
func NewBrightness(amount val.Value[float64]) *Brightness {
	return &Brightness{Base: newBase(), amount: amount}
}

// Amount returns the stored offset.
func (e *Brightness) Amount() val.Value[float64] { return e.amount }

// SetAmount replaces the offset.
func (e *Brightness) SetAmount(amount val.Value[float64]) { e.amount = amount }

// Apply implements layer.Effect.
func (e *Brightness) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}
	amount := val.Resolve(e.amount, t)
	if amount == 0 {
		return nil
	}

	f := readFrame(img, true)
	for _, plane := range [][]float64{f.r, f.g, f.b} {
		for i := range plane {
			plane[i] += amount
		}
	}
	f.write(img)
	return nil
}

// Contrast scales every colour channel away from mid-grey by Amount.
// 1 leaves the image unchanged and 0 produces flat grey.
type Contrast struct {
	Base
	amount val.Value[float64]
}

// NewContrast creates a contrast effect.
func NewContrast(amount val.Value[float64]) *Contrast {
	return &Contrast{Base: newBase(), amount: amount}
}

// Amount returns the stored factor.
func (e *Contrast) Amount() val.Value[float64] { return e.amount }

// SetAmount replaces the factor.
func (e *Contrast) SetAmount(amount val.Value[float64]) { e.amount = amount }

// Apply implements layer.Effect.
func (e *Contrast) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}
	k := val.ResolveOr(e.amount, t, func() float64 { return 1 })
	if k == 1 {
		return nil
	}

	const mid = 127.5
	f := readFrame(img, true)
	for _, plane := range [][]float64{f.r, f.g, f.b} {
		for i, v := range plane {
			plane[i] = (v-mid)*k + mid
		}
	}
	f.write(img)
	return nil
}

// Grayscale blends each pixel towards its Rec. 709 luma. Amount 1 is fully
// grey, 0 leaves the image unchanged.
type Grayscale struct {
	Base
	amount val.Value[float64]
}

// NewGrayscale creates a grayscale effect.
func NewGrayscale(amount val.Value[float64]) *Grayscale {
	return &Grayscale{Base: newBase(), amount: amount}
}

// Amount returns the stored blend factor.
func (e *Grayscale) Amount() val.Value[float64] { return e.amount }

// SetAmount replaces the blend factor.
func (e *Grayscale) SetAmount(amount val.Value[float64]) { e.amount = amount }

// Apply implements layer.Effect.
func (e *Grayscale) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}
	k := val.ResolveOr(e.amount, t, func() float64 { return 1 })
	if k == 0 {
		return nil
	}

	f := readFrame(img, true)
	for i := range f.r {
		luma := 0.2126*f.r[i] + 0.7152*f.g[i] + 0.0722*f.b[i]
		f.r[i] += (luma - f.r[i]) * k
		f.g[i] += (luma - f.g[i]) * k
		f.b[i] += (luma - f.b[i]) * k
	}
	f.write(img)
	return nil
}

// ChannelFactors multiplies each channel. Unset factors are 1.
type ChannelFactors struct {
	R, G, B, A val.Value[float64]
}

// Channels multiplies each channel, including alpha, by a factor.
type Channels struct {
	Base
	factors ChannelFactors
}

// NewChannels creates a channel multiplier.
func NewChannels(factors ChannelFactors) *Channels {
	return &Channels{Base: newBase(), factors: factors}
}

// Factors returns the stored factors.
func (e *Channels) Factors() ChannelFactors { return e.factors }

// SetFactors replaces the factors.
func (e *Channels) SetFactors(factors ChannelFactors) { e.factors = factors }

// Apply implements layer.Effect.
func (e *Channels) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}

	one := func() float64 { return 1 }
	factors := [4]float64{
		val.ResolveOr(e.factors.R, t, one),
		val.ResolveOr(e.factors.G, t, one),
		val.ResolveOr(e.factors.B, t, one),
		val.ResolveOr(e.factors.A, t, one),
	}
	if factors == [4]float64{1, 1, 1, 1} {
		return nil
	}

	f := readFrame(img, true)
	for c, plane := range [][]float64{f.r, f.g, f.b, f.a} {
		if factors[c] != 1 {
			vecmath.MulBlockInPlace(plane, f.constant(len(plane), factors[c]))
		}
	}
	f.write(img)
	return nil
}
