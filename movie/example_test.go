package movie_test

import (
	"fmt"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/movie"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

func ExampleMovie_RenderFrame() {
	m, _ := movie.New(movie.DefaultOptions())

	opts := layer.DefaultTextOptions()
	opts.Text = val.Const("hello")
	opts.Background = val.Const(paint.RGB(255, 0, 0))
	opts.Width = val.Const(100.0)
	opts.Height = val.Const(20.0)
	title, _ := layer.NewText(0, 2, opts)

	_ = m.AddLayer(title)
	_ = m.Seek(1)
	_ = m.RenderFrame()

	fmt.Println(m.Duration(), m.Frame().Rect.Dx(), m.Frame().RGBAAt(0, 19))
	// Output: 2 640 {255 0 0 255}
}
