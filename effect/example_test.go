package effect_test

import (
	"fmt"

	"github.com/khanaslam439/vidar/effect"
	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

func ExampleRegistry_New() {
	opts := layer.DefaultVisualOptions()
	opts.Width = val.Const(4.0)
	opts.Height = val.Const(4.0)
	opts.Background = val.Const(paint.RGB(200, 100, 0))
	v, _ := layer.NewVisual(0, 1, opts)

	fx, err := effect.DefaultRegistry().New(effect.Params{Type: "grayscale"})
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = v.Effects().Append(fx)
	_ = v.Render(0)

	fmt.Println(v.Surface().Pixels().RGBAAt(0, 0))
	// Output: {114 114 114 255}
}
