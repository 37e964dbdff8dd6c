package testutil

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequirePixel fails t if any channel of the pixel at (x, y) differs from
// want by more than tol.
func RequirePixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA, tol uint8) {
	t.Helper()
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		t.Fatalf("pixel (%d,%d) outside %v", x, y, img.Rect)
	}
	got := img.RGBAAt(x, y)
	if channelDiff(got, want) > int(tol) {
		t.Fatalf("pixel (%d,%d) = %v, want %v (tol %d)", x, y, got, want, tol)
	}
}

// RequireUniform fails t unless every pixel of img is within tol of want.
func RequireUniform(t *testing.T, img *image.RGBA, want color.RGBA, tol uint8) {
	t.Helper()
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if got := img.RGBAAt(x, y); channelDiff(got, want) > int(tol) {
				t.Fatalf("pixel (%d,%d) = %v, want %v (tol %d)", x, y, got, want, tol)
			}
		}
	}
}

// MaxChannelDiff returns the largest per-channel difference between two
// images. Returns an error if the bounds differ.
func MaxChannelDiff(a, b *image.RGBA) (int, error) {
	if a.Rect != b.Rect {
		return 0, fmt.Errorf("bounds mismatch: %v vs %v", a.Rect, b.Rect)
	}
	maxDiff := 0
	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

func channelDiff(a, b color.RGBA) int {
	d := 0
	for _, pair := range [4][2]uint8{{a.R, b.R}, {a.G, b.G}, {a.B, b.B}, {a.A, b.A}} {
		v := int(pair[0]) - int(pair[1])
		if v < 0 {
			v = -v
		}
		if v > d {
			d = v
		}
	}
	return d
}
