package testutil

import (
	"image"
	"image/color"
	"math/rand"
)

// Solid returns a w x h image filled with c.
func Solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r, g, b, a := c.RGBA()
	px := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, px)
		}
	}
	return img
}

// Gradient returns an opaque image whose red channel ramps 0..255 left to
// right and whose green channel ramps 0..255 top to bottom.
func Gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: ramp(x, w), G: ramp(y, h), A: 255})
		}
	}
	return img
}

// Noise returns an opaque image of random pixels with a fixed seed for
// reproducibility.
func Noise(seed int64, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = 255
	}
	return img
}

func ramp(i, n int) uint8 {
	if n <= 1 {
		return 0
	}
	return uint8(i * 255 / (n - 1))
}
