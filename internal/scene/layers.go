package scene

import (
	"fmt"

	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/media"
	"github.com/khanaslam439/vidar/paint"
)

func visualOptions(o *options, dst *layer.VisualOptions) {
	o.boolean("enabled", &dst.Enabled)
	o.num("x", &dst.X)
	o.num("y", &dst.Y)
	o.num("width", &dst.Width)
	o.num("height", &dst.Height)
	o.num("opacity", &dst.Opacity)
	o.color("background", &dst.Background)
	o.color("borderColor", &dst.Border.Color)
	o.num("borderThickness", &dst.Border.Thickness)
}

func clipOptions(o *options, dst *layer.Clip) {
	o.num("clipX", &dst.X)
	o.num("clipY", &dst.Y)
	o.num("clipWidth", &dst.Width)
	o.num("clipHeight", &dst.Height)
}

func mediaOptions(o *options, spec LayerSpec, dst *layer.MediaOptions) {
	o.float("mediaStartTime", &dst.MediaStartTime)
	o.float("playbackRate", &dst.PlaybackRate)
	o.num("volume", &dst.Volume)
	o.flag("muted", &dst.Muted)
	if spec.Duration > 0 {
		d := spec.Duration
		dst.Duration = &d
	}
}

func (b builder) visual(spec LayerSpec, o *options) (layer.Layer, error) {
	opts := layer.DefaultVisualOptions()
	visualOptions(o, &opts)
	if err := o.finish(); err != nil {
		return nil, err
	}
	return layer.NewVisual(spec.Start, spec.Duration, opts)
}

func (b builder) text(spec LayerSpec, o *options) (layer.Layer, error) {
	opts := layer.DefaultTextOptions()
	visualOptions(o, &opts.VisualOptions)
	o.text("text", &opts.Text)
	o.text("font", &opts.Font)
	o.color("color", &opts.Color)
	o.num("textX", &opts.TextX)
	o.num("textY", &opts.TextY)
	o.num("maxWidth", &opts.MaxWidth)
	enum(o, "textAlign", &opts.TextAlign, paint.ParseTextAlign)
	enum(o, "textBaseline", &opts.TextBaseline, paint.ParseTextBaseline)
	enum(o, "textDirection", &opts.TextDirection, paint.ParseTextDirection)
	if err := o.finish(); err != nil {
		return nil, err
	}
	return layer.NewText(spec.Start, spec.Duration, opts)
}

func (b builder) image(spec LayerSpec, o *options) (layer.Layer, error) {
	opts := layer.DefaultImageOptions()
	visualOptions(o, &opts.VisualOptions)
	clipOptions(o, &opts.Clip)
	var src string
	o.str("src", &src)
	if err := o.finish(); err != nil {
		return nil, err
	}
	if src == "" {
		return nil, fmt.Errorf("%w: image src is required", ErrInvalidScene)
	}

	still, err := media.LoadStill(b.path(src))
	if err != nil {
		return nil, err
	}
	return layer.NewImage(spec.Start, spec.Duration, still, opts)
}

func (b builder) video(spec LayerSpec, o *options) (layer.Layer, error) {
	opts := layer.DefaultVideoOptions()
	visualOptions(o, &opts.VisualOptions)
	clipOptions(o, &opts.Clip)
	mediaOptions(o, spec, &opts.MediaOptions)
	var src string
	fps := b.fps
	o.str("src", &src)
	o.float("fps", &fps)
	if err := o.finish(); err != nil {
		return nil, err
	}
	if src == "" {
		return nil, fmt.Errorf("%w: video src is required", ErrInvalidScene)
	}

	seq, err := media.LoadSequence(b.path(src), fps)
	if err != nil {
		return nil, err
	}
	return layer.NewVideo(spec.Start, seq, opts)
}

// audio layers play silence of the given length; the clock and routing
// behave as for any other media.
func (b builder) audio(spec LayerSpec, o *options) (layer.Layer, error) {
	opts := layer.DefaultAudioOptions()
	o.boolean("enabled", &opts.Enabled)
	mediaOptions(o, spec, &opts.MediaOptions)
	var length *float64
	o.optionalFloat("length", &length)
	if err := o.finish(); err != nil {
		return nil, err
	}
	if length == nil {
		return nil, fmt.Errorf("%w: audio length is required", ErrInvalidScene)
	}

	clip, err := media.NewSilence(*length)
	if err != nil {
		return nil, err
	}
	return layer.NewAudio(spec.Start, clip, opts)
}
