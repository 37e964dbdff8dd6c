package effect

import (
	"image"
	"testing"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// newTarget returns a visual layer whose surface holds a copy of src.
func newTarget(t *testing.T, src *image.RGBA) *layer.Visual {
	t.Helper()

	opts := layer.DefaultVisualOptions()
	opts.Width = val.Const(float64(src.Rect.Dx()))
	opts.Height = val.Const(float64(src.Rect.Dy()))

	v, err := layer.NewVisual(0, 1, opts)
	if err != nil {
		t.Fatalf("NewVisual: %v", err)
	}
	if err := v.Render(0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	copy(v.Surface().Pixels().Pix, src.Pix)
	return v
}

// apply runs fx on a copy of src and returns the result.
func apply(t *testing.T, fx layer.Effect, src *image.RGBA, at float64) *image.RGBA {
	t.Helper()

	v := newTarget(t, src)
	if err := fx.Apply(v, at); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return v.Surface().Pixels()
}

func paintGrey(v float64) paint.Color { return paint.RGB(v, v, v) }
