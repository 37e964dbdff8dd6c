package layer

// AudioOptions configures an Audio layer.
type AudioOptions struct {
	Options
	MediaOptions
}

// DefaultAudioOptions returns the audio layer defaults.
func DefaultAudioOptions() AudioOptions {
	return AudioOptions{
		Options:      DefaultOptions(),
		MediaOptions: DefaultMediaOptions(),
	}
}

// Audio plays a media resource without drawing anything.
type Audio struct {
	Base
	Media
}

// NewAudio creates an audio layer starting at startTime.
func NewAudio(startTime float64, resource MediaResource, opts AudioOptions) (*Audio, error) {
	l := &Audio{}
	if err := l.Base.init(TypeAudio, startTime, 0, opts.Options); err != nil {
		return nil, err
	}
	l.bind(l)

	if err := l.Media.init(&l.Base, resource, opts.MediaOptions, nil); err != nil {
		return nil, err
	}
	return l, nil
}

// SetStartTime moves the layer and keeps the media cursor in step.
func (l *Audio) SetStartTime(t float64) { l.Media.setStartTime(t) }

// Attach attaches the layer, subscribes to seeks and wires its audio.
func (l *Audio) Attach(m Movie) error {
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
func (l *Audio) Detach() {
	l.Media.detach()
	l.Base.Detach()
}

// Start seeks the media to t and starts playback.
func (l *Audio) Start(t float64) error { return l.Media.start(t) }

// Stop pauses playback.
func (l *Audio) Stop() { l.Media.stop() }

// Render pushes the resolved playback properties onto the media.
func (l *Audio) Render(t float64) error { return l.Media.render(t) }
