package layer

import (
	"errors"
	"image/color"
	"testing"

	"github.com/khanaslam439/vidar/internal/testutil"
	"github.com/khanaslam439/vidar/val"
)

var red = color.RGBA{R: 255, A: 255}

func TestNewImageRejectsNil(t *testing.T) {
	t.Parallel()

	if _, err := NewImage(0, 1, nil, DefaultImageOptions()); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("NewImage(nil) = %v, want ErrConfiguration", err)
	}
}

func TestImageNaturalSize(t *testing.T) {
	t.Parallel()

	img := newFakeImage(testutil.Solid(30, 20, red), true)
	l, err := NewImage(0, 1, img, DefaultImageOptions())
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if w, h := l.ResolveWidth(0), l.ResolveHeight(0); w != 30 || h != 20 {
		t.Fatalf("size = %vx%v, want 30x20", w, h)
	}
}

func TestImageSizeFromClip(t *testing.T) {
	t.Parallel()

	opts := DefaultImageOptions()
	opts.Clip.Width = val.Const(8.0)
	opts.Height = val.Const(5.0)

	l, _ := NewImage(0, 1, newFakeImage(testutil.Solid(30, 20, red), true), opts)
	if w, h := l.ResolveWidth(0), l.ResolveHeight(0); w != 8 || h != 5 {
		t.Fatalf("size = %vx%v, want 8x5", w, h)
	}
}

func TestImageSizedOnLoad(t *testing.T) {
	t.Parallel()

	img := newFakeImage(testutil.Solid(6, 4, red), false)
	l, _ := NewImage(0, 1, img, DefaultImageOptions())
	if l.Width().IsSet() {
		t.Fatal("width set before load")
	}

	got := collect(t, l, EventChange+".width")
	img.load()

	if w := l.ResolveWidth(0); w != 6 {
		t.Fatalf("width = %v after load, want 6", w)
	}
	if len(*got) != 1 {
		t.Fatalf("received %d width events, want 1", len(*got))
	}
}

func TestImageDetachCancelsPendingLoad(t *testing.T) {
	t.Parallel()

	img := newFakeImage(testutil.Solid(6, 4, red), false)
	l, _ := NewImage(0, 1, img, DefaultImageOptions())
	m := newFakeMovie(100, 100)
	_ = l.Attach(m)
	l.Detach()

	img.load()
	if l.Width().IsSet() {
		t.Fatal("detached image layer resized on load")
	}

	_ = l.Attach(m)
	if w := l.ResolveWidth(0); w != 6 {
		t.Fatalf("width = %v after reattach, want 6", w)
	}
}

func TestImageRenderScales(t *testing.T) {
	t.Parallel()

	opts := DefaultImageOptions()
	opts.Width = val.Const(4.0)
	opts.Height = val.Const(4.0)

	l, _ := NewImage(0, 1, newFakeImage(testutil.Solid(2, 2, red), true), opts)
	if err := l.Render(0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	testutil.RequireUniform(t, l.Surface().Pixels(), red, 0)
}

func TestImageRenderClip(t *testing.T) {
	t.Parallel()

	opts := DefaultImageOptions()
	opts.Width = val.Const(2.0)
	opts.Height = val.Const(2.0)
	opts.Clip = Clip{X: val.Const(3.0), Y: val.Const(3.0), Width: val.Const(1.0), Height: val.Const(1.0)}

	l, _ := NewImage(0, 1, newFakeImage(testutil.Gradient(4, 4), true), opts)
	_ = l.Render(0)
	testutil.RequireUniform(t, l.Surface().Pixels(), color.RGBA{R: 255, G: 255, A: 255}, 0)
}

func TestImageRenderBeforeLoad(t *testing.T) {
	t.Parallel()

	opts := DefaultImageOptions()
	opts.Width = val.Const(2.0)
	opts.Height = val.Const(2.0)

	l, _ := NewImage(0, 1, newFakeImage(testutil.Solid(2, 2, red), false), opts)
	if err := l.Render(0); err != nil {
		t.Fatalf("Render: %v", err)
	}
	testutil.RequireUniform(t, l.Surface().Pixels(), color.RGBA{}, 0)
}
