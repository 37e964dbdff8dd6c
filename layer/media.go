package layer

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/val"
)

// Composition events consumed by media layers.
const (
	EventMovieSeek              = "movie.seek"
	EventAudioDestinationUpdate = "movie.audiodestinationupdate"
)

// MediaOptions configures the media capability shared by Video and Audio.
type MediaOptions struct {
	// MediaStartTime is the offset into the media where playback begins.
	MediaStartTime float64
	PlaybackRate   float64
	Volume         val.Value[float64]
	Muted          val.Value[bool]
	// Duration overrides the unstretched duration derived from the media.
	Duration *float64
}

// DefaultMediaOptions returns the media defaults: full volume, unmuted,
// normal speed, playing from the beginning of the media.
func DefaultMediaOptions() MediaOptions {
	return MediaOptions{
		PlaybackRate: 1,
		Volume:       val.Const(1.0),
		Muted:        val.Const(false),
	}
}

// Media keeps a media resource in step with the layer hosting it. It is
// embedded by Video and Audio and is not usable on its own.
type Media struct {
	host     *Base
	resource MediaResource

	mediaStartTime float64
	playbackRate   float64
	volume         val.Value[float64]
	muted          val.Value[bool]
	explicit       *float64

	unstretched float64
	natural     float64
	initialized bool
	err         error
	onReady     func()

	resourceCancels []func()
	movieCancels    []func()

	graph           AudioGraph
	source          AudioNode
	dest            AudioNode
	connectedToMain bool
}

func (m *Media) init(host *Base, resource MediaResource, opts MediaOptions, onReady func()) error {
	if resource == nil {
		return fmt.Errorf("%w: nil media resource", ErrConfiguration)
	}
	if opts.PlaybackRate <= 0 || math.IsNaN(opts.PlaybackRate) {
		return fmt.Errorf("%w: playback rate must be > 0: %f", ErrConfiguration, opts.PlaybackRate)
	}

	m.host = host
	m.resource = resource
	m.mediaStartTime = opts.MediaStartTime
	m.playbackRate = opts.PlaybackRate
	m.volume = opts.Volume
	m.muted = opts.Muted
	if opts.Duration != nil {
		d := *opts.Duration
		m.explicit = &d
	}
	m.onReady = onReady

	if resource.ReadyState() >= HaveMetadata {
		if err := m.ready(); err != nil {
			return err
		}
	}
	m.listen()

	return nil
}

// Resource returns the referenced media.
func (m *Media) Resource() MediaResource { return m.resource }

// Initialized reports whether the media metadata has been applied.
func (m *Media) Initialized() bool { return m.initialized }

// Err returns a configuration error detected after construction, if any.
func (m *Media) Err() error { return m.err }

// UnstretchedDuration is the media length before playback-rate scaling.
func (m *Media) UnstretchedDuration() float64 { return m.unstretched }

// MediaStartTime returns the media offset where playback begins.
func (m *Media) MediaStartTime() float64 { return m.mediaStartTime }

// SetMediaStartTime changes the media offset and resynchronises the cursor.
func (m *Media) SetMediaStartTime(t float64) {
	m.mediaStartTime = t
	m.host.changed("mediaStartTime", t)
	m.resync()
}

// PlaybackRate returns the playback speed factor.
func (m *Media) PlaybackRate() float64 { return m.playbackRate }

// SetPlaybackRate changes the playback speed and rescales the duration from
// the cached unstretched duration.
func (m *Media) SetPlaybackRate(r float64) error {
	if r <= 0 || math.IsNaN(r) {
		return fmt.Errorf("%w: playback rate must be > 0: %f", ErrConfiguration, r)
	}
	m.playbackRate = r
	m.host.changed("playbackRate", r)
	if m.initialized {
		m.host.setDuration(m.unstretched / r)
	}
	return nil
}

// Volume returns the stored volume.
func (m *Media) Volume() val.Value[float64] { return m.volume }

// SetVolume sets the volume, which may be animated.
func (m *Media) SetVolume(v val.Value[float64]) { setProp(m.host, &m.volume, "volume", v) }

// Muted returns the stored mute flag.
func (m *Media) Muted() val.Value[bool] { return m.muted }

// SetMuted sets the mute flag, which may be animated.
func (m *Media) SetMuted(v val.Value[bool]) { setProp(m.host, &m.muted, "muted", v) }

// AudioSource returns the audio graph node created for the media, or nil.
func (m *Media) AudioSource() AudioNode { return m.source }

// AudioDestination returns the node the media audio is connected to, or nil.
func (m *Media) AudioDestination() AudioNode { return m.dest }

// ConnectedToMain reports whether the media audio feeds the graph's main output.
func (m *Media) ConnectedToMain() bool { return m.connectedToMain }

// ready applies metadata: derives the duration and runs the host hook once.
func (m *Media) ready() error {
	if m.initialized {
		return nil
	}
	if err := m.deriveDuration(); err != nil {
		return err
	}
	m.initialized = true
	if m.onReady != nil {
		m.onReady()
	}
	m.seekIfActive()
	return nil
}

func (m *Media) deriveDuration() error {
	unstretched := m.resource.Duration() - m.mediaStartTime
	if m.explicit != nil {
		unstretched = *m.explicit
	}
	if unstretched < 0 || math.IsNaN(unstretched) {
		return fmt.Errorf("%w: media duration is negative: %f (media start %f)",
			ErrConfiguration, unstretched, m.mediaStartTime)
	}

	m.natural = m.resource.Duration()
	m.unstretched = unstretched
	m.host.setDuration(unstretched / m.playbackRate)

	return nil
}

// fail records an error from an asynchronous callback.
func (m *Media) fail(err error) {
	m.err = err
	slog.Warn("media layer misconfigured", slog.String("layer", m.host.ID()), slog.Any("err", err))
}

func (m *Media) listen() {
	if m.resourceCancels != nil {
		return
	}
	m.resourceCancels = []func(){
		m.resource.OnMetadata(func() {
			if err := m.ready(); err != nil {
				m.fail(err)
			}
		}),
		m.resource.OnDurationChange(func() {
			if !m.initialized {
				return
			}
			if err := m.deriveDuration(); err != nil {
				m.fail(err)
			}
		}),
	}
}

// catchUp applies metadata or a duration change that arrived while no
// resource callbacks were registered.
func (m *Media) catchUp() error {
	if m.resource.ReadyState() < HaveMetadata {
		return nil
	}
	if !m.initialized {
		return m.ready()
	}
	if m.resource.Duration() != m.natural {
		return m.deriveDuration()
	}
	return nil
}

func (m *Media) unlisten() {
	for _, cancel := range m.resourceCancels {
		if cancel != nil {
			cancel()
		}
	}
	m.resourceCancels = nil
}

// attach subscribes to composition seeks, wires audio and seeks the cursor.
func (m *Media) attach(mv Movie) error {
	m.listen()
	if err := m.catchUp(); err != nil {
		return err
	}

	m.movieCancels = append(m.movieCancels,
		event.Subscribe(mv, EventMovieSeek, func(event.Event) { m.seekIfActive() }),
		event.Subscribe(mv, EventAudioDestinationUpdate, func(ev event.Event) {
			dst, ok := ev.Value.(AudioNode)
			if !ok {
				return
			}
			if err := m.connect(dst); err != nil {
				slog.Warn("media layer audio reconnect failed",
					slog.String("layer", m.host.ID()), slog.Any("err", err))
			}
		}),
	)

	m.seekIfActive()

	graph := mv.AudioGraph()
	if graph == nil {
		return nil
	}
	src, err := graph.CreateSource(m.resource)
	if err != nil {
		return fmt.Errorf("layer: create audio source: %w", err)
	}
	m.graph = graph
	m.source = src

	return m.connect(graph.MainOutput())
}

// detach cancels every callback and releases the audio graph connection.
func (m *Media) detach() {
	for _, cancel := range m.movieCancels {
		cancel()
	}
	m.movieCancels = nil
	m.unlisten()

	if m.graph != nil && m.source != nil && m.dest != nil {
		if err := m.graph.Disconnect(m.source, m.dest); err != nil {
			slog.Warn("media layer audio disconnect failed",
				slog.String("layer", m.host.ID()), slog.Any("err", err))
		}
	}
	m.graph = nil
	m.source = nil
	m.dest = nil
	m.connectedToMain = false
}

func (m *Media) connect(dst AudioNode) error {
	if m.graph == nil || m.source == nil || dst == nil {
		return nil
	}
	if m.dest != nil {
		if err := m.graph.Disconnect(m.source, m.dest); err != nil {
			return err
		}
		m.dest = nil
	}
	if err := m.graph.Connect(m.source, dst); err != nil {
		return err
	}
	m.dest = dst
	m.connectedToMain = dst == m.graph.MainOutput()
	return nil
}

// seekIfActive moves the media cursor to match the composition clock while
// the host layer is active.
func (m *Media) seekIfActive() {
	if !m.initialized || !m.host.Active() {
		return
	}
	m.seekToMovie()
}

// resync moves the media cursor after a timing change, active or not.
func (m *Media) resync() {
	if !m.initialized || m.host.movie == nil {
		return
	}
	m.seekToMovie()
}

func (m *Media) seekToMovie() {
	progress := m.host.movie.CurrentTime() - m.host.startTime
	m.resource.SetCurrentTime(m.mediaStartTime + progress)
}

// setStartTime moves the host and keeps the cursor in step.
func (m *Media) setStartTime(t float64) {
	m.host.SetStartTime(t)
	m.resync()
}

func (m *Media) start(t float64) error {
	m.resource.SetCurrentTime(t + m.mediaStartTime)
	return m.resource.Play()
}

func (m *Media) stop() {
	m.resource.Pause()
}

// render pushes the resolved playback properties onto the resource.
func (m *Media) render(t float64) error {
	if m.err != nil {
		return m.err
	}
	m.resource.SetMuted(val.Resolve(m.muted, t))
	m.resource.SetVolume(val.ResolveOr(m.volume, t, func() float64 { return 1 }))
	m.resource.SetPlaybackRate(m.playbackRate)
	return nil
}
