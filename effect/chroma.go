package effect

import (
	"fmt"
	"math"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// ChromaKey makes pixels close to a target colour transparent. A pixel is
// keyed when every colour channel is within Threshold of the target.
type ChromaKey struct {
	Base
	target      val.Value[paint.Color]
	threshold   val.Value[float64]
	interpolate bool
}

// ChromaKeyOption configures a ChromaKey.
type ChromaKeyOption func(*ChromaKey) error

// WithThreshold sets the per-channel distance on the 0-255 scale. Default 0.
func WithThreshold(threshold val.Value[float64]) ChromaKeyOption {
	return func(e *ChromaKey) error {
		if c, ok := threshold.Constant(); ok && (c < 0 || math.IsNaN(c)) {
			return fmt.Errorf("%w: chroma key threshold must be >= 0: %f", ErrInvalidParameter, c)
		}
		e.threshold = threshold
		return nil
	}
}

// WithInterpolation fades keyed pixels by their distance from the target
// instead of removing them entirely.
func WithInterpolation(enabled bool) ChromaKeyOption {
	return func(e *ChromaKey) error {
		e.interpolate = enabled
		return nil
	}
}

// NewChromaKey creates a chroma key for target.
func NewChromaKey(target val.Value[paint.Color], opts ...ChromaKeyOption) (*ChromaKey, error) {
	if !target.IsSet() {
		return nil, fmt.Errorf("%w: chroma key target colour is required", ErrInvalidParameter)
	}

	e := &ChromaKey{Base: newBase(), target: target, threshold: val.Const(0.0)}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Apply implements layer.Effect.
func (e *ChromaKey) Apply(target *layer.Visual, t float64) error {
	img := pixels(target)
	if img == nil {
		return nil
	}
	key := val.Resolve(e.target, t)
	threshold := math.Max(0, val.Resolve(e.threshold, t))

	f := readFrame(img, true)
	for i := range f.a {
		d := math.Max(math.Abs(f.r[i]-key.R), math.Max(math.Abs(f.g[i]-key.G), math.Abs(f.b[i]-key.B)))
		if d > threshold {
			continue
		}
		if e.interpolate && threshold > 0 {
			f.a[i] *= d / threshold
		} else {
			f.a[i] = 0
		}
	}
	f.write(img)
	return nil
}
