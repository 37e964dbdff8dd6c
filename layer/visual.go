package layer

import (
	"math"

	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/raster"
	"github.com/khanaslam439/vidar/val"
)

// Border is an optional outline. It is drawn only while Color is set;
// an unset Thickness strokes 1 unit wide.
type Border struct {
	Color     val.Value[paint.Color]
	Thickness val.Value[float64]
}

// VisualOptions configures a Visual. Unset values are explicit "no value"
// entries: an unset Width or Height falls back to the composition.
type VisualOptions struct {
	Options

	X, Y          val.Value[float64]
	Width, Height val.Value[float64]
	Opacity       val.Value[float64]
	Background    val.Value[paint.Color]
	Border        Border

	// Surface overrides the default in-memory raster surface.
	Surface func() Surface
}

// DefaultVisualOptions returns the visual layer defaults.
func DefaultVisualOptions() VisualOptions {
	return VisualOptions{
		Options: DefaultOptions(),
		X:       val.Const(0.0),
		Y:       val.Const(0.0),
		Opacity: val.Const(1.0),
	}
}

// Visual is a layer that draws onto its own surface, which the composition
// then places at (X, Y).
type Visual struct {
	Base

	x, y, width, height val.Value[float64]
	opacity             val.Value[float64]
	background          val.Value[paint.Color]
	border              Border

	surface Surface
	effects Effects

	// content draws variant-specific content after the background and border.
	content func(t float64) error
}

// NewVisual creates a visual layer that draws only its background and border.
func NewVisual(startTime, duration float64, opts VisualOptions) (*Visual, error) {
	v := &Visual{}
	if err := v.init(TypeVisual, startTime, duration, opts); err != nil {
		return nil, err
	}
	v.bind(v)
	return v, nil
}

func (v *Visual) init(kind string, startTime, duration float64, opts VisualOptions) error {
	if err := v.Base.init(kind, startTime, duration, opts.Options); err != nil {
		return err
	}

	v.x, v.y = opts.X, opts.Y
	v.width, v.height = opts.Width, opts.Height
	v.opacity = opts.Opacity
	v.background = opts.Background
	v.border = opts.Border

	if opts.Surface != nil {
		v.surface = opts.Surface()
	} else {
		v.surface = raster.New(0, 0)
	}
	v.effects.owner = v

	return nil
}

// Surface returns the layer's drawing surface.
func (v *Visual) Surface() Surface { return v.surface }

// Effects returns the layer's effect pipeline.
func (v *Visual) Effects() *Effects { return &v.effects }

// X returns the stored horizontal position.
func (v *Visual) X() val.Value[float64] { return v.x }

// SetX sets the horizontal position in the composition.
func (v *Visual) SetX(x val.Value[float64]) { setProp(&v.Base, &v.x, "x", x) }

// Y returns the stored vertical position.
func (v *Visual) Y() val.Value[float64] { return v.y }

// SetY sets the vertical position in the composition.
func (v *Visual) SetY(y val.Value[float64]) { setProp(&v.Base, &v.y, "y", y) }

// Width returns the stored width, which may be unset.
func (v *Visual) Width() val.Value[float64] { return v.width }

// SetWidth sets the width. An unset value falls back to the composition.
func (v *Visual) SetWidth(w val.Value[float64]) { setProp(&v.Base, &v.width, "width", w) }

// Height returns the stored height, which may be unset.
func (v *Visual) Height() val.Value[float64] { return v.height }

// SetHeight sets the height. An unset value falls back to the composition.
func (v *Visual) SetHeight(h val.Value[float64]) { setProp(&v.Base, &v.height, "height", h) }

// Opacity returns the stored opacity.
func (v *Visual) Opacity() val.Value[float64] { return v.opacity }

// SetOpacity sets the global paint alpha applied to everything the layer draws.
func (v *Visual) SetOpacity(o val.Value[float64]) { setProp(&v.Base, &v.opacity, "opacity", o) }

// Background returns the stored background colour.
func (v *Visual) Background() val.Value[paint.Color] { return v.background }

// SetBackground sets the fill painted under the content. Unset paints nothing.
func (v *Visual) SetBackground(c val.Value[paint.Color]) {
	setProp(&v.Base, &v.background, "background", c)
}

// Border returns the stored border.
func (v *Visual) Border() Border { return v.border }

// SetBorder replaces the border.
func (v *Visual) SetBorder(b Border) {
	v.border = b
	v.changed("border", b)
}

// ResolveX resolves the horizontal position at relative time t.
func (v *Visual) ResolveX(t float64) float64 { return val.Resolve(v.x, t) }

// ResolveY resolves the vertical position at relative time t.
func (v *Visual) ResolveY(t float64) float64 { return val.Resolve(v.y, t) }

// ResolveWidth resolves the width at relative time t. An unset width resolves
// to the composition width at composition time StartTime()+t.
func (v *Visual) ResolveWidth(t float64) float64 {
	return val.ResolveOr(v.width, t, func() float64 { return v.movieDimension(t, Movie.Width) })
}

// ResolveHeight resolves the height like ResolveWidth.
func (v *Visual) ResolveHeight(t float64) float64 {
	return val.ResolveOr(v.height, t, func() float64 { return v.movieDimension(t, Movie.Height) })
}

func (v *Visual) movieDimension(t float64, dim func(Movie) val.Value[float64]) float64 {
	if v.movie == nil {
		return 0
	}
	return val.Resolve(dim(v.movie), v.startTime+t)
}

// ResolveOpacity resolves the opacity at relative time t; unset is opaque.
func (v *Visual) ResolveOpacity(t float64) float64 {
	return val.ResolveOr(v.opacity, t, func() float64 { return 1 })
}

// Render draws one frame: resize and set opacity, paint background, border and
// content, then run the effect pipeline unless the surface is empty.
func (v *Visual) Render(t float64) error {
	v.beginRender(t)
	if err := v.doRender(t); err != nil {
		return err
	}
	return v.endRender(t)
}

func (v *Visual) beginRender(t float64) {
	v.surface.Resize(surfaceDim(v.ResolveWidth(t)), surfaceDim(v.ResolveHeight(t)))
	v.surface.SetGlobalAlpha(v.ResolveOpacity(t))
}

func (v *Visual) doRender(t float64) error {
	v.drawBackground(t)
	if v.content != nil {
		return v.content(t)
	}
	return nil
}

// drawBackground paints the background fill and the border stroke.
func (v *Visual) drawBackground(t float64) {
	w, h := v.surface.Size()

	if bg, ok := v.background.At(t); ok {
		v.surface.FillRect(0, 0, float64(w), float64(h), bg)
	}

	if c, ok := v.border.Color.At(t); ok {
		thickness := val.ResolveOr(v.border.Thickness, t, func() float64 { return 1 })
		v.surface.StrokeRect(0, 0, float64(w), float64(h), thickness, c)
	}
}

func (v *Visual) endRender(t float64) error {
	w, h := v.surface.Size()
	if w*h <= 0 {
		return nil
	}
	return v.effects.apply(t)
}

// surfaceDim converts a resolved dimension to whole pixels, as canvas does.
func surfaceDim(d float64) int {
	if d <= 0 || math.IsNaN(d) {
		return 0
	}
	if d > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(d)
}
