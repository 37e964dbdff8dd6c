package layer

// VideoOptions configures a Video layer.
type VideoOptions struct {
	VisualOptions
	MediaOptions
	Clip Clip
}

// DefaultVideoOptions returns the video layer defaults.
func DefaultVideoOptions() VideoOptions {
	img := DefaultImageOptions()
	return VideoOptions{
		VisualOptions: img.VisualOptions,
		MediaOptions:  DefaultMediaOptions(),
		Clip:          img.Clip,
	}
}

// Video is a visual layer that shows the current frame of a media resource.
// Its duration comes from the media once metadata is available.
type Video struct {
	Visual
	Media

	clip Clip
}

// NewVideo creates a video layer starting at startTime. If the media already
// has metadata the duration is derived immediately and a negative result is
// returned as ErrConfiguration.
func NewVideo(startTime float64, resource MediaResource, opts VideoOptions) (*Video, error) {
	l := &Video{clip: opts.Clip}
	if err := l.Visual.init(TypeVideo, startTime, 0, opts.VisualOptions); err != nil {
		return nil, err
	}
	l.content = l.drawFrame
	l.bind(l)

	if err := l.Media.init(&l.Base, resource, opts.MediaOptions, l.applyNaturalSize); err != nil {
		return nil, err
	}
	return l, nil
}

// Clip returns the source rectangle.
func (l *Video) Clip() Clip { return l.clip }

// SetClip replaces the source rectangle.
func (l *Video) SetClip(c Clip) {
	l.clip = c
	l.changed("clip", c)
}

// SetStartTime moves the layer and keeps the media cursor in step.
func (l *Video) SetStartTime(t float64) { l.Media.setStartTime(t) }

// Attach attaches the layer, subscribes to seeks and wires its audio.
func (l *Video) Attach(m Movie) error {
	if err := l.Base.Attach(m); err != nil {
		return err
	}
	if err := l.Media.attach(m); err != nil {
		l.Detach()
		return err
	}
	return nil
}

// Detach releases every subscription and the audio connection.
func (l *Video) Detach() {
	l.Media.detach()
	l.Base.Detach()
}

// Start seeks the media to t and starts playback.
func (l *Video) Start(t float64) error { return l.Media.start(t) }

// Stop pauses playback.
func (l *Video) Stop() { l.Media.stop() }

// Render pushes playback properties and draws the current frame.
func (l *Video) Render(t float64) error {
	if err := l.Media.render(t); err != nil {
		return err
	}
	return l.Visual.Render(t)
}

func (l *Video) applyNaturalSize() {
	w, h := l.resource.NaturalSize()
	defaultSize(&l.Visual, l.clip, float64(w), float64(h))
}

func (l *Video) drawFrame(t float64) error {
	drawClipped(&l.Visual, l.clip, l.resource.Frame(), t)
	return nil
}
