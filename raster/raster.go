// Package raster is an in-memory RGBA drawing surface with canvas-like
// semantics: global alpha, filled and stroked rectangles, bitmap text and
// scaled image blits. It satisfies layer.Surface.
//
// Text is drawn with a fixed 7x13 bitmap face; the CSS font string is
// accepted but not used for glyph selection.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/khanaslam439/vidar/core"
	"github.com/khanaslam439/vidar/paint"
)

// Surface is an RGBA canvas. The zero Surface is an empty 0x0 canvas.
type Surface struct {
	img   *image.RGBA
	alpha float64
	face  font.Face
}

// New returns a cleared width x height surface.
func New(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Resize sets the dimensions, clears every pixel and resets global alpha to 1.
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	if s.img != nil && s.img.Rect.Dx() == width && s.img.Rect.Dy() == height {
		clear(s.img.Pix)
	} else {
		s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	s.alpha = 1
}

// Size returns the dimensions in pixels.
func (s *Surface) Size() (width, height int) {
	if s.img == nil {
		return 0, 0
	}
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

// GlobalAlpha returns the alpha applied to every drawing operation.
func (s *Surface) GlobalAlpha() float64 { return s.alpha }

// SetGlobalAlpha sets the alpha applied to every drawing operation.
// Values are clamped to [0, 1]; NaN is ignored.
func (s *Surface) SetGlobalAlpha(alpha float64) {
	if math.IsNaN(alpha) {
		return
	}
	s.alpha = core.Clamp(alpha, 0, 1)
}

// Pixels returns the backing image.
func (s *Surface) Pixels() *image.RGBA {
	if s.img == nil {
		s.img = image.NewRGBA(image.Rectangle{})
	}
	return s.img
}

// FillRect composites c over the rectangle.
func (s *Surface) FillRect(x, y, w, h float64, c paint.Color) {
	img := s.Pixels()
	r := rectOf(x, y, w, h).Intersect(img.Rect)
	if r.Empty() {
		return
	}
	draw.DrawMask(img, r, image.NewUniform(c.NRGBA()), image.Point{}, s.mask(), image.Point{}, draw.Over)
}

// StrokeRect strokes the outline of the rectangle with a line of lineWidth
// centred on its edges.
func (s *Surface) StrokeRect(x, y, w, h, lineWidth float64, c paint.Color) {
	if lineWidth <= 0 || math.IsNaN(lineWidth) {
		return
	}
	half := lineWidth / 2

	s.FillRect(x-half, y-half, w+lineWidth, lineWidth, c)
	s.FillRect(x-half, y+h-half, w+lineWidth, lineWidth, c)
	if inner := h - lineWidth; inner > 0 {
		s.FillRect(x-half, y+half, lineWidth, inner, c)
		s.FillRect(x+w-half, y+half, lineWidth, inner, c)
	}
}

// FillText draws one line of text anchored at (x, y).
func (s *Surface) FillText(text string, x, y float64, style paint.TextStyle) {
	if text == "" {
		return
	}
	face := s.fontFace()

	if style.MaxWidth > 0 {
		text = truncate(face, text, style.MaxWidth)
	}
	width := float64(font.MeasureString(face, text).Ceil())

	switch style.Align.Resolve(style.Direction) {
	case paint.AlignRight:
		x -= width
	case paint.AlignCenter:
		x -= width / 2
	}

	m := face.Metrics()
	ascent, descent := float64(m.Ascent.Ceil()), float64(m.Descent.Ceil())
	switch style.Baseline {
	case paint.BaselineTop, paint.BaselineHanging:
		y += ascent
	case paint.BaselineMiddle:
		y += (ascent - descent) / 2
	case paint.BaselineIdeographic, paint.BaselineBottom:
		y -= descent
	}

	c := style.Color
	c.A *= s.alpha
	d := &font.Drawer{
		Dst:  s.Pixels(),
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(text)
}

// DrawImage scales the source rectangle of src into the destination rectangle
// using nearest-neighbour sampling. Source coordinates are relative to the
// top-left corner of src.
func (s *Surface) DrawImage(src image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	if src == nil || sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return
	}

	sb := src.Bounds()
	sr := rectOf(sx, sy, sw, sh).Add(sb.Min).Intersect(sb)
	if sr.Empty() {
		return
	}

	// Trim the destination by the share of the source clipped away.
	x0, y0 := sx+float64(sb.Min.X), sy+float64(sb.Min.Y)
	kx, ky := dw/sw, dh/sh
	left := math.Max(0, float64(sr.Min.X)-x0) * kx
	top := math.Max(0, float64(sr.Min.Y)-y0) * ky
	right := math.Max(0, x0+sw-float64(sr.Max.X)) * kx
	bottom := math.Max(0, y0+sh-float64(sr.Max.Y)) * ky
	dr := rectOf(dx+left, dy+top, dw-left-right, dh-top-bottom)
	if dr.Empty() {
		return
	}

	var opts *xdraw.Options
	if mask := s.mask(); mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	xdraw.NearestNeighbor.Scale(s.Pixels(), dr, src, sr, xdraw.Over, opts)
}

// mask returns a uniform alpha mask for the global alpha, or nil when opaque.
func (s *Surface) mask() image.Image {
	if s.alpha >= 1 {
		return nil
	}
	return image.NewUniform(color.Alpha{A: core.ClampByte(s.alpha * 255)})
}

func (s *Surface) fontFace() font.Face {
	if s.face == nil {
		s.face = basicfont.Face7x13
	}
	return s.face
}

// rectOf converts a floating-point rectangle to the smallest covering pixel
// rectangle. Negative sizes extend to the left or upwards.
func rectOf(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
}

// truncate drops trailing runes until text fits in maxWidth pixels.
func truncate(face font.Face, text string, maxWidth float64) string {
	runes := []rune(text)
	for len(runes) > 0 && float64(font.MeasureString(face, string(runes)).Ceil()) > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes)
}
