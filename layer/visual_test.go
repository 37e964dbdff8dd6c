package layer

import (
	"errors"
	"image/color"
	"testing"

	"github.com/khanaslam439/vidar/internal/testutil"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

func newVisual(t *testing.T, mutate func(*VisualOptions)) *Visual {
	t.Helper()
	opts := DefaultVisualOptions()
	if mutate != nil {
		mutate(&opts)
	}
	v, err := NewVisual(0, 10, opts)
	if err != nil {
		t.Fatalf("NewVisual: %v", err)
	}
	return v
}

func TestVisualRendersBackground(t *testing.T) {
	t.Parallel()

	v := newVisual(t, func(o *VisualOptions) {
		o.Width = val.Const(400.0)
		o.Height = val.Const(400.0)
		o.Background = val.Const(paint.RGB(0, 0, 255))
	})

	if err := v.Render(0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w, h := v.Surface().Size(); w != 400 || h != 400 {
		t.Fatalf("surface = %dx%d, want 400x400", w, h)
	}
	testutil.RequireUniform(t, v.Surface().Pixels(), color.RGBA{B: 255, A: 255}, 0)
}

func TestVisualOpacity(t *testing.T) {
	t.Parallel()

	v := newVisual(t, func(o *VisualOptions) {
		o.Width = val.Const(2.0)
		o.Height = val.Const(2.0)
		o.Opacity = val.Const(0.5)
		o.Background = val.Const(paint.RGB(255, 255, 255))
	})

	_ = v.Render(0)
	testutil.RequireUniform(t, v.Surface().Pixels(), color.RGBA{R: 128, G: 128, B: 128, A: 128}, 1)
}

func TestVisualBorder(t *testing.T) {
	t.Parallel()

	v := newVisual(t, func(o *VisualOptions) {
		o.Width = val.Const(10.0)
		o.Height = val.Const(10.0)
		o.Background = val.Const(paint.RGB(0, 0, 255))
		o.Border = Border{Color: val.Const(paint.RGB(255, 0, 0)), Thickness: val.Const(4.0)}
	})

	_ = v.Render(0)
	img := v.Surface().Pixels()
	testutil.RequirePixel(t, img, 0, 0, color.RGBA{R: 255, A: 255}, 0)
	testutil.RequirePixel(t, img, 1, 5, color.RGBA{R: 255, A: 255}, 0)
	testutil.RequirePixel(t, img, 5, 5, color.RGBA{B: 255, A: 255}, 0)
}

func TestVisualSizeFallsBackToMovie(t *testing.T) {
	t.Parallel()

	v, _ := NewVisual(2, 10, DefaultVisualOptions())
	if got := v.ResolveWidth(0); got != 0 {
		t.Fatalf("detached ResolveWidth = %v, want 0", got)
	}

	m := newFakeMovie(0, 300)
	m.width = val.Func(func(t float64) float64 { return 100 + t })
	_ = v.Attach(m)

	if got := v.ResolveWidth(1); got != 103 {
		t.Fatalf("ResolveWidth(1) = %v, want 103", got)
	}
	if got := v.ResolveHeight(1); got != 300 {
		t.Fatalf("ResolveHeight(1) = %v, want 300", got)
	}

	v.SetWidth(val.Const(50.0))
	if got := v.ResolveWidth(1); got != 50 {
		t.Fatalf("explicit ResolveWidth = %v, want 50", got)
	}
}

func TestVisualAnimatedPosition(t *testing.T) {
	t.Parallel()

	x := val.MustKeyframes(val.KF(0, 0), val.KF(2, 10))
	v := newVisual(t, func(o *VisualOptions) { o.X = x })

	if got := v.ResolveX(1); got != 5 {
		t.Fatalf("ResolveX(1) = %v, want 5", got)
	}
	if got := v.ResolveY(1); got != 0 {
		t.Fatalf("ResolveY(1) = %v, want 0", got)
	}
}

func TestVisualSettersPublish(t *testing.T) {
	t.Parallel()

	v := newVisual(t, nil)
	got := collect(t, v, EventChange)

	v.SetX(val.Const(1.0))
	v.SetY(val.Const(2.0))
	v.SetWidth(val.Const(3.0))
	v.SetHeight(val.Const(4.0))
	v.SetOpacity(val.Const(0.5))
	v.SetBackground(val.Const(paint.RGB(1, 2, 3)))
	v.SetBorder(Border{})

	want := []string{"x", "y", "width", "height", "opacity", "background", "border"}
	if len(*got) != len(want) {
		t.Fatalf("received %d events, want %d", len(*got), len(want))
	}
	for i, ev := range *got {
		if ev.Property != want[i] {
			t.Fatalf("event %d property = %q, want %q", i, ev.Property, want[i])
		}
		if ev.Target != Layer(v) {
			t.Fatalf("event %d target is not the visual", i)
		}
	}
}

func TestVisualRunsEffectsAfterDrawing(t *testing.T) {
	t.Parallel()

	v := newVisual(t, func(o *VisualOptions) {
		o.Width = val.Const(4.0)
		o.Height = val.Const(4.0)
	})

	var log []string
	a := newRecordingEffect("a", &log)
	b := newRecordingEffect("b", &log)
	b.enabled = false
	c := newRecordingEffect("c", &log)
	for _, fx := range []Effect{a, b, c} {
		if err := v.Effects().Append(fx); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if err := v.Render(1.5); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(log) != 2 || log[0] != "a@1.5" || log[1] != "c@1.5" {
		t.Fatalf("applied = %v, want [a@1.5 c@1.5]", log)
	}
}

func TestVisualSkipsEffectsOnEmptySurface(t *testing.T) {
	t.Parallel()

	v := newVisual(t, nil)
	var log []string
	_ = v.Effects().Append(newRecordingEffect("a", &log))

	if err := v.Render(0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(log) != 0 {
		t.Fatalf("effects ran on an empty surface: %v", log)
	}
}

func TestVisualEffectError(t *testing.T) {
	t.Parallel()

	v := newVisual(t, func(o *VisualOptions) {
		o.Width = val.Const(1.0)
		o.Height = val.Const(1.0)
	})
	boom := errors.New("boom")
	fx := newRecordingEffect("a", nil)
	fx.err = boom
	_ = v.Effects().Append(fx)

	if err := v.Render(0); !errors.Is(err, boom) {
		t.Fatalf("Render = %v, want wrapped boom", err)
	}
}

func TestVisualCustomSurface(t *testing.T) {
	t.Parallel()

	s := newRecordingSurface()
	v := newVisual(t, func(o *VisualOptions) {
		o.Surface = func() Surface { return s }
	})
	if v.Surface() != Surface(s) {
		t.Fatal("custom surface not used")
	}
}

func TestSurfaceDim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want int
	}{
		{-5, 0},
		{0, 0},
		{2.9, 2},
		{400, 400},
	}
	for _, tc := range tests {
		if got := surfaceDim(tc.in); got != tc.want {
			t.Fatalf("surfaceDim(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
