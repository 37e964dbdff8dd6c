package effect

import (
	"image"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/khanaslam439/vidar/core"
	"github.com/khanaslam439/vidar/internal/planes"
	"github.com/khanaslam439/vidar/layer"
)

var planePool = planes.NewPool()

// frame is a float view of an RGBA image with one plane per channel.
// Values are in [0, 255]; straight frames hold unpremultiplied colour.
type frame struct {
	w, h       int
	r, g, b, a []float64
	straight   bool

	held []*planes.Plane
}

// pixels returns the target's backing image, or nil when it is empty.
func pixels(target *layer.Visual) *image.RGBA {
	if target == nil {
		return nil
	}
	img := target.Surface().Pixels()
	if img == nil || img.Rect.Empty() {
		return nil
	}
	return img
}

func readFrame(img *image.RGBA, straight bool) *frame {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := w * h
	f := &frame{w: w, h: h}
	f.r, f.g, f.b, f.a = f.plane(n), f.plane(n), f.plane(n), f.plane(n)

	i := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		row := img.Pix[img.PixOffset(img.Rect.Min.X, y):]
		for x := 0; x < w; x++ {
			p := row[4*x : 4*x+4 : 4*x+4]
			f.r[i], f.g[i], f.b[i], f.a[i] = float64(p[0]), float64(p[1]), float64(p[2]), float64(p[3])
			i++
		}
	}

	if straight {
		f.unpremultiply()
	}
	return f
}

// plane borrows a zeroed plane that is returned on write.
func (f *frame) plane(n int) []float64 {
	pl := planePool.Get(n)
	f.held = append(f.held, pl)
	return pl.Values()
}

func (f *frame) unpremultiply() {
	for i, a := range f.a {
		if a == 0 {
			continue
		}
		s := 255 / a
		f.r[i] *= s
		f.g[i] *= s
		f.b[i] *= s
	}
	f.straight = true
}

func (f *frame) premultiply() {
	scale := f.plane(len(f.a))
	for i, a := range f.a {
		scale[i] = core.Clamp(a, 0, 255) / 255
	}
	for _, plane := range [][]float64{f.r, f.g, f.b} {
		for i, v := range plane {
			plane[i] = core.Clamp(v, 0, 255)
		}
		vecmath.MulBlockInPlace(plane, scale)
	}
	f.straight = false
}

// write stores the frame back into img, which must have the frame's size,
// and releases the frame's planes. f must not be used afterwards.
func (f *frame) write(img *image.RGBA) {
	if f.straight {
		f.premultiply()
	}

	i := 0
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		row := img.Pix[img.PixOffset(img.Rect.Min.X, y):]
		for x := 0; x < f.w; x++ {
			a := core.Clamp(f.a[i], 0, 255)
			p := row[4*x : 4*x+4 : 4*x+4]
			p[0] = core.ClampByte(min(f.r[i], a))
			p[1] = core.ClampByte(min(f.g[i], a))
			p[2] = core.ClampByte(min(f.b[i], a))
			p[3] = core.ClampByte(a)
			i++
		}
	}

	planePool.Put(f.held...)
	f.held = nil
	f.r, f.g, f.b, f.a = nil, nil, nil, nil
}

// constant returns n copies of v in a plane owned by f.
func (f *frame) constant(n int, v float64) []float64 {
	out := f.plane(n)
	for i := range out {
		out[i] = v
	}
	return out
}
