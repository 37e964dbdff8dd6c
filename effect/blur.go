package effect

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	approx "github.com/meko-christian/algo-approx"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/val"
)

// GaussianBlur blurs the surface with a separable Gaussian kernel. Each row
// and column is convolved in the frequency domain; edges are extended by
// repeating the border pixel.
type GaussianBlur struct {
	Base
	radius val.Value[float64]
	plans  map[int]*algofft.Plan[complex128]
}

// BlurOption configures a GaussianBlur.
type BlurOption func(*GaussianBlur) error

// WithBlurRadius sets the kernel half-width in pixels. Default 1.
func WithBlurRadius(radius val.Value[float64]) BlurOption {
	return func(g *GaussianBlur) error {
		if c, ok := radius.Constant(); ok && (c < 0 || math.IsNaN(c)) {
			return fmt.Errorf("%w: blur radius must be >= 0: %f", ErrInvalidParameter, c)
		}
		g.radius = radius
		return nil
	}
}

// NewGaussianBlur creates a blur effect.
func NewGaussianBlur(opts ...BlurOption) (*GaussianBlur, error) {
	g := &GaussianBlur{
		Base:   newBase(),
		radius: val.Const(1.0),
		plans:  make(map[int]*algofft.Plan[complex128]),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Radius returns the stored radius.
func (g *GaussianBlur) Radius() val.Value[float64] { return g.radius }

// SetRadius replaces the radius.
func (g *GaussianBlur) SetRadius(radius val.Value[float64]) { g.radius = radius }

// Apply implements layer.Effect.
func (g *GaussianBlur) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}
	r := val.Resolve(g.radius, t)
	if r < 1 || math.IsNaN(r) {
		return nil
	}
	kernel := GaussianKernel(int(math.Round(r)))

	// Premultiplied channels blur without dark fringes at transparent edges.
	f := readFrame(img, false)
	for _, horizontal := range []bool{true, false} {
		for _, plane := range [][]float64{f.r, f.g, f.b, f.a} {
			if err := g.pass(plane, f.w, f.h, kernel, horizontal); err != nil {
				return err
			}
		}
	}
	f.write(img)
	return nil
}

// pass convolves every row (or column) of plane with the symmetric kernel.
func (g *GaussianBlur) pass(plane []float64, w, h int, kernel []float64, horizontal bool) error {
	n, lines := w, h
	at := func(line, i int) int { return line*w + i }
	if !horizontal {
		n, lines = h, w
		at = func(line, i int) int { return i*w + line }
	}
	r := len(kernel) / 2

	// Edge-extended line of n+2r samples convolved with 2r+1 taps.
	size := nextPowerOf2(n + 4*r)
	plan, err := g.plan(size)
	if err != nil {
		return err
	}

	spectrum := make([]complex128, size)
	for i, v := range kernel {
		spectrum[i] = complex(v, 0)
	}
	if err := plan.Forward(spectrum, spectrum); err != nil {
		return fmt.Errorf("effect: kernel FFT failed: %w", err)
	}

	line := make([]complex128, size)
	for l := 0; l < lines; l++ {
		clear(line)
		for j := 0; j < n+2*r; j++ {
			i := min(max(j-r, 0), n-1)
			line[j] = complex(plane[at(l, i)], 0)
		}

		if err := plan.Forward(line, line); err != nil {
			return fmt.Errorf("effect: forward FFT failed: %w", err)
		}
		for k := range line {
			line[k] *= spectrum[k]
		}
		if err := plan.Inverse(line, line); err != nil {
			return fmt.Errorf("effect: inverse FFT failed: %w", err)
		}

		for i := 0; i < n; i++ {
			plane[at(l, i)] = real(line[i+2*r])
		}
	}
	return nil
}

func (g *GaussianBlur) plan(size int) (*algofft.Plan[complex128], error) {
	if g.plans == nil {
		g.plans = make(map[int]*algofft.Plan[complex128])
	}
	if p, ok := g.plans[size]; ok {
		return p, nil
	}
	p, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("effect: failed to create FFT plan: %w", err)
	}
	g.plans[size] = p
	return p, nil
}

// GaussianKernel returns 2*radius+1 normalised weights with sigma radius/2.
func GaussianKernel(radius int) []float64 {
	if radius < 1 {
		return []float64{1}
	}
	sigma := math.Max(float64(radius)/2, 0.5)
	denom := 2 * sigma * sigma

	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = approx.FastExp(-d * d / denom)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
