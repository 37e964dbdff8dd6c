package effect

import (
	"fmt"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// DefaultRegistry returns a registry with every built-in effect:
//
//	brightness   amount (0)
//	contrast     amount (1)
//	grayscale    amount (1)
//	channels     r, g, b, a (1)
//	chromakey    target (colour, required), threshold (0), interpolate (false)
//	pixelate     size (1)
//	gaussianblur radius (1)
func DefaultRegistry() *Registry {
	r := NewRegistry()
	registerBuiltinEffects(r)
	return r
}

func registerBuiltinEffects(r *Registry) {
	r.MustRegister("brightness", func(p Params) (layer.Effect, error) {
		return NewBrightness(p.GetNum("amount", 0)), nil
	})
	r.MustRegister("contrast", func(p Params) (layer.Effect, error) {
		return NewContrast(p.GetNum("amount", 1)), nil
	})
	r.MustRegister("grayscale", func(p Params) (layer.Effect, error) {
		return NewGrayscale(p.GetNum("amount", 1)), nil
	})
	r.MustRegister("channels", func(p Params) (layer.Effect, error) {
		return NewChannels(ChannelFactors{
			R: p.GetNum("r", 1),
			G: p.GetNum("g", 1),
			B: p.GetNum("b", 1),
			A: p.GetNum("a", 1),
		}), nil
	})
	r.MustRegister("chromakey", newChromaKeyFromParams)
	r.MustRegister("pixelate", func(p Params) (layer.Effect, error) {
		return NewPixelate(p.GetNum("size", 1)), nil
	})
	r.MustRegister("gaussianblur", func(p Params) (layer.Effect, error) {
		fx, err := NewGaussianBlur(WithBlurRadius(p.GetNum("radius", 1)))
		if err != nil {
			return nil, err
		}
		return fx, nil
	})
}

func newChromaKeyFromParams(p Params) (layer.Effect, error) {
	if _, ok := p.Str["target"]; !ok {
		return nil, fmt.Errorf("%w: target colour is required", ErrInvalidParameter)
	}
	target, err := p.GetColor("target", paint.Transparent)
	if err != nil {
		return nil, err
	}
	interpolate, err := p.GetBool("interpolate", false)
	if err != nil {
		return nil, err
	}
	fx, err := NewChromaKey(val.Const(target),
		WithThreshold(p.GetNum("threshold", 0)),
		WithInterpolation(interpolate),
	)
	if err != nil {
		return nil, err
	}
	return fx, nil
}
