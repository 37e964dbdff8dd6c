package core

// RenderConfig defines common frame rendering settings.
type RenderConfig struct {
	FrameRate float64
	// Start and End bound the rendered range in composition time.
	// End <= 0 means "until the composition ends".
	Start float64
	End   float64
}

// RenderOption mutates a RenderConfig.
type RenderOption func(*RenderConfig)

// DefaultRenderConfig returns sensible defaults for offline rendering.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		FrameRate: 30,
	}
}

// WithFrameRate sets the number of frames rendered per second.
func WithFrameRate(fps float64) RenderOption {
	return func(cfg *RenderConfig) {
		if fps > 0 && Finite(fps) {
			cfg.FrameRate = fps
		}
	}
}

// WithRange limits rendering to [start, end).
func WithRange(start, end float64) RenderOption {
	return func(cfg *RenderConfig) {
		if start >= 0 && Finite(start) {
			cfg.Start = start
		}
		if Finite(end) {
			cfg.End = end
		}
	}
}

// ApplyRenderOptions applies zero or more options to the default config.
func ApplyRenderOptions(opts ...RenderOption) RenderConfig {
	cfg := DefaultRenderConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
