// Package paint holds colour and text styling types shared by layers and
// drawing surfaces.
package paint

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/khanaslam439/vidar/core"
	"github.com/khanaslam439/vidar/interp"
)

// ErrInvalidColor is returned by ParseColor for unrecognised input.
var ErrInvalidColor = errors.New("paint: invalid color")

// Color is a straight-alpha colour. R, G and B are in [0, 255], A in [0, 1].
type Color struct {
	R, G, B float64
	A       float64
}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a colour with alpha a.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Transparent is fully transparent black.
var Transparent = Color{}

// NRGBA converts c to an 8-bit non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: core.ClampByte(c.R),
		G: core.ClampByte(c.G),
		B: core.ClampByte(c.B),
		A: core.ClampByte(c.A * 255),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// String renders c in CSS rgba() notation.
func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// FromColor converts any color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: float64(n.R), G: float64(n.G), B: float64(n.B), A: float64(n.A) / 255}
}

// Lerp blends two colours component-wise.
func Lerp(from, to Color, f float64) Color {
	return Color{
		R: core.Lerp(from.R, to.R, f),
		G: core.Lerp(from.G, to.G, f),
		B: core.Lerp(from.B, to.B, f),
		A: core.Lerp(from.A, to.A, f),
	}
}

// LerpColor adapts Lerp to keyframe interpolation. Hermite falls back to
// linear because colour channels must not overshoot.
func LerpColor(mode interp.Mode, frac float64, _, from, to, _ Color) Color {
	switch mode {
	case interp.ModeStep:
		if frac >= 1 {
			return to
		}
		return from
	case interp.ModeCosine:
		return Lerp(from, to, interp.Cosine2(frac, 0, 1))
	default:
		return Lerp(from, to, frac)
	}
}

// ParseColor parses CSS-style colours: named colours, "transparent",
// #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b) and rgba(r, g, b, a).
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case s == "transparent":
		return Transparent, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}

	if named, ok := colornames.Map[s]; ok {
		return FromColor(named), nil
	}

	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (Color, error) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}

	if len(h) == 6 {
		return RGB(float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)), nil
	}
	return RGBA(float64(v>>24&0xff), float64(v>>16&0xff), float64(v>>8&0xff), float64(v&0xff)/255), nil
}

func parseFunc(body string, n int) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return Color{}, fmt.Errorf("%w: expected %d components, got %d", ErrInvalidColor, n, len(parts))
	}

	comps := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || !core.Finite(v) {
			return Color{}, fmt.Errorf("%w: component %q", ErrInvalidColor, p)
		}
		comps[i] = v
	}

	c := RGB(comps[0], comps[1], comps[2])
	if n == 4 {
		c.A = core.Clamp(comps[3], 0, 1)
	}
	return c, nil
}
