package movie

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/khanaslam439/vidar/core"
)

// FrameFunc receives each rendered frame. The image is reused between calls.
type FrameFunc func(index int, t float64, frame *image.RGBA) error

// FrameCount returns how many frames RenderFrames produces for cfg.
func (m *Movie) FrameCount(cfg core.RenderConfig) int {
	start, end := m.renderRange(cfg)
	if end <= start || cfg.FrameRate <= 0 {
		return 0
	}
	return int(math.Ceil((end-start)*cfg.FrameRate - 1e-9))
}

func (m *Movie) renderRange(cfg core.RenderConfig) (start, end float64) {
	end = cfg.End
	if end <= 0 {
		end = m.Duration()
	}
	return cfg.Start, end
}

// RenderFrames seeks through [cfg.Start, cfg.End) at cfg.FrameRate, rendering
// each frame and passing it to fn. Every started layer is stopped on return.
func (m *Movie) RenderFrames(ctx context.Context, cfg core.RenderConfig, fn FrameFunc) error {
	if cfg.FrameRate <= 0 || math.IsNaN(cfg.FrameRate) {
		return fmt.Errorf("movie: frame rate must be > 0: %f", cfg.FrameRate)
	}
	defer m.stopAll()

	start, _ := m.renderRange(cfg)
	n := m.FrameCount(cfg)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		t := start + float64(i)/cfg.FrameRate
		if err := m.Seek(t); err != nil {
			return err
		}
		if err := m.RenderFrame(); err != nil {
			return fmt.Errorf("movie: frame %d at %.3fs: %w", i, t, err)
		}
		if fn != nil {
			if err := fn(i, t, m.Frame()); err != nil {
				return err
			}
		}
	}
	return nil
}
