// Package movie is a composition host for layers. A Movie owns the master
// clock, the output canvas and the audio graph, and drives each layer's
// start, render and stop hooks as the clock moves through its active window.
//
// A Movie is not safe for concurrent use.
package movie

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/khanaslam439/vidar/audio"
	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/raster"
	"github.com/khanaslam439/vidar/val"
)

// Composition events.
const (
	EventSeek                   = layer.EventMovieSeek
	EventAudioDestinationUpdate = layer.EventAudioDestinationUpdate
	EventPlay                   = "movie.play"
	EventPause                  = "movie.pause"
	EventEnded                  = "movie.ended"
	EventLayerAdd               = "movie.addlayer"
	EventLayerRemove            = "movie.removelayer"
)

var (
	// ErrInvalidTime is returned when seeking to a negative or non-finite time.
	ErrInvalidTime = errors.New("movie: invalid time")

	// ErrUnknownLayer is returned when removing a layer the movie does not own.
	ErrUnknownLayer = errors.New("movie: unknown layer")
)

// Observer receives timing information for every rendered frame.
type Observer interface {
	ObserveFrame(elapsed time.Duration, rendered int)
}

// Options configures a Movie.
type Options struct {
	Width, Height val.Value[float64]
	// Background fills the canvas before layers are composited. Unset leaves
	// the canvas transparent.
	Background val.Value[paint.Color]
	// AudioGraph defaults to a fresh audio.Graph.
	AudioGraph layer.AudioGraph
	Observer   Observer
}

// DefaultOptions returns a 640x360 movie on a black background.
func DefaultOptions() Options {
	return Options{
		Width:      val.Const(640.0),
		Height:     val.Const(360.0),
		Background: val.Const(paint.RGB(0, 0, 0)),
	}
}

// Movie implements layer.Movie.
type Movie struct {
	bus event.Bus

	width, height val.Value[float64]
	background    val.Value[paint.Color]
	graph         layer.AudioGraph
	observer      Observer

	canvas  *raster.Surface
	layers  []layer.Layer
	started map[layer.Layer]bool

	now     float64
	playing bool
}

// New creates an empty movie.
func New(opts Options) (*Movie, error) {
	for name, v := range map[string]val.Value[float64]{"width": opts.Width, "height": opts.Height} {
		if !v.IsSet() {
			return nil, fmt.Errorf("%w: movie %s is required", layer.ErrConfiguration, name)
		}
		if c, ok := v.Constant(); ok && (c < 0 || math.IsNaN(c)) {
			return nil, fmt.Errorf("%w: movie %s must be >= 0: %f", layer.ErrConfiguration, name, c)
		}
	}

	graph := opts.AudioGraph
	if graph == nil {
		graph = audio.NewGraph()
	}

	return &Movie{
		width:      opts.Width,
		height:     opts.Height,
		background: opts.Background,
		graph:      graph,
		observer:   opts.Observer,
		canvas:     raster.New(0, 0),
		started:    make(map[layer.Layer]bool),
	}, nil
}

// Events returns the movie's event bus.
func (m *Movie) Events() *event.Bus { return &m.bus }

// CurrentTime returns the master clock in seconds.
func (m *Movie) CurrentTime() float64 { return m.now }

// Width returns the stored width.
func (m *Movie) Width() val.Value[float64] { return m.width }

// Height returns the stored height.
func (m *Movie) Height() val.Value[float64] { return m.height }

// AudioGraph returns the graph media layers connect to.
func (m *Movie) AudioGraph() layer.AudioGraph { return m.graph }

// SetObserver replaces the frame observer; nil disables it.
func (m *Movie) SetObserver(o Observer) { m.observer = o }

// Layers returns the layers in compositing order, bottom first.
func (m *Movie) Layers() []layer.Layer {
	out := make([]layer.Layer, len(m.layers))
	copy(out, m.layers)
	return out
}

// AddLayer attaches l and places it on top of the existing layers.
func (m *Movie) AddLayer(l layer.Layer) error {
	if l == nil {
		return fmt.Errorf("%w: nil layer", layer.ErrConfiguration)
	}
	if err := l.Attach(m); err != nil {
		return err
	}
	m.layers = append(m.layers, l)
	event.Publish(m, EventLayerAdd, event.Event{Source: l, Value: l})
	return nil
}

// RemoveLayer stops l if it is playing, detaches it and removes it.
func (m *Movie) RemoveLayer(l layer.Layer) error {
	i := m.indexOf(l)
	if i < 0 {
		return ErrUnknownLayer
	}
	if m.started[l] {
		l.Stop()
		delete(m.started, l)
	}
	l.Detach()
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	event.Publish(m, EventLayerRemove, event.Event{Source: l, Value: l})
	return nil
}

func (m *Movie) indexOf(l layer.Layer) int {
	for i, x := range m.layers {
		if x == l {
			return i
		}
	}
	return -1
}

// Duration returns the end of the last layer.
func (m *Movie) Duration() float64 {
	end := 0.0
	for _, l := range m.layers {
		end = math.Max(end, l.StartTime()+l.Duration())
	}
	return end
}

// Seek moves the master clock and notifies media layers.
func (m *Movie) Seek(t float64) error {
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidTime, t)
	}
	m.now = t
	event.Publish(m, EventSeek, event.Event{Value: t})
	return nil
}

// SetAudioDestination reroutes every media layer's audio to node.
func (m *Movie) SetAudioDestination(node layer.AudioNode) {
	event.Publish(m, EventAudioDestinationUpdate, event.Event{Value: node})
}

// Playing reports whether Step advances the clock.
func (m *Movie) Playing() bool { return m.playing }

// Play starts advancing the clock on Step.
func (m *Movie) Play() {
	if m.playing {
		return
	}
	m.playing = true
	event.Publish(m, EventPlay, event.Event{Value: m.now})
}

// Pause stops the clock and every started layer.
func (m *Movie) Pause() {
	if !m.playing {
		return
	}
	m.playing = false
	m.stopAll()
	event.Publish(m, EventPause, event.Event{Value: m.now})
}

// Step advances a playing movie by dt seconds and renders the new frame.
// Reaching the end pauses the movie and publishes movie.ended.
func (m *Movie) Step(dt float64) error {
	if !m.playing || dt <= 0 {
		return nil
	}
	m.now += dt

	if end := m.Duration(); m.now >= end {
		// Windows are half-open, so the final frame is drawn just before end.
		m.now = math.Nextafter(end, 0)
		err := m.RenderFrame()
		m.now = end
		m.Pause()
		event.Publish(m, EventEnded, event.Event{Value: m.now})
		return err
	}
	return m.RenderFrame()
}

// Frame returns the canvas holding the last rendered frame.
func (m *Movie) Frame() *image.RGBA { return m.canvas.Pixels() }

// RenderFrame renders every layer at the current time onto the canvas.
// Layers entering their active window are started, layers leaving it are
// stopped, and active layers are rendered and composited in order.
func (m *Movie) RenderFrame() error {
	begin := time.Now()

	w := surfaceDim(val.Resolve(m.width, m.now))
	h := surfaceDim(val.Resolve(m.height, m.now))
	m.canvas.Resize(w, h)
	if bg, ok := m.background.At(m.now); ok {
		m.canvas.FillRect(0, 0, float64(w), float64(h), bg)
	}

	rendered := 0
	for i, l := range m.layers {
		active := l.Enabled() && l.Active()
		rel := m.now - l.StartTime()

		switch {
		case active && !m.started[l]:
			if err := l.Start(rel); err != nil {
				return fmt.Errorf("movie: start layer %d (%s): %w", i, l.Type(), err)
			}
			m.started[l] = true
		case !active && m.started[l]:
			l.Stop()
			delete(m.started, l)
		}
		if !active {
			continue
		}

		if err := l.Render(rel); err != nil {
			return fmt.Errorf("movie: render layer %d (%s): %w", i, l.Type(), err)
		}
		m.composite(l, rel)
		rendered++
	}

	if m.observer != nil {
		m.observer.ObserveFrame(time.Since(begin), rendered)
	}
	return nil
}

// visual is implemented by layers that draw onto their own surface.
type visual interface {
	Surface() layer.Surface
	ResolveX(t float64) float64
	ResolveY(t float64) float64
}

func (m *Movie) composite(l layer.Layer, rel float64) {
	v, ok := l.(visual)
	if !ok {
		return
	}
	w, h := v.Surface().Size()
	if w*h <= 0 {
		return
	}
	fw, fh := float64(w), float64(h)
	m.canvas.DrawImage(v.Surface().Pixels(), 0, 0, fw, fh, v.ResolveX(rel), v.ResolveY(rel), fw, fh)
}

func (m *Movie) stopAll() {
	for _, l := range m.layers {
		if m.started[l] {
			l.Stop()
			delete(m.started, l)
		}
	}
}

func surfaceDim(d float64) int {
	if d <= 0 || math.IsNaN(d) {
		return 0
	}
	if d > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(d)
}
