package effect

import (
	"math"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/val"
)

// Pixelate replaces each Size x Size block with its average colour.
// Sizes below 2 leave the image unchanged.
type Pixelate struct {
	Base
	size val.Value[float64]
}

// NewPixelate creates a pixelate effect.
func NewPixelate(size val.Value[float64]) *Pixelate {
	return &Pixelate{Base: newBase(), size: size}
}

// Size returns the stored block size.
func (e *Pixelate) Size() val.Value[float64] { return e.size }

// SetSize replaces the block size.
func (e *Pixelate) SetSize(size val.Value[float64]) { e.size = size }

// Apply implements layer.Effect.
func (e *Pixelate) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}
	s := val.ResolveOr(e.size, t, func() float64 { return 1 })
	if s < 2 || math.IsNaN(s) {
		return nil
	}
	size := int(s)

	f := readFrame(img, false)
	for by := 0; by < f.h; by += size {
		for bx := 0; bx < f.w; bx += size {
			x1, y1 := min(bx+size, f.w), min(by+size, f.h)
			n := float64((x1 - bx) * (y1 - by))
			for _, plane := range [][]float64{f.r, f.g, f.b, f.a} {
				sum := 0.0
				for y := by; y < y1; y++ {
					for x := bx; x < x1; x++ {
						sum += plane[y*f.w+x]
					}
				}
				avg := sum / n
				for y := by; y < y1; y++ {
					for x := bx; x < x1; x++ {
						plane[y*f.w+x] = avg
					}
				}
			}
		}
	}
	f.write(img)
	return nil
}
