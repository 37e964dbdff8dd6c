package layer

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/val"
)

// Layer type discriminators.
const (
	TypeBase   = "layer"
	TypeVisual = "visual"
	TypeText   = "text"
	TypeImage  = "image"
	TypeVideo  = "video"
	TypeAudio  = "audio"
)

// Event type prefixes published by layers.
const (
	EventChange      = "layer.change"
	EventMovieChange = "movie.change.layer"
)

// Layer is implemented by every layer variant.
type Layer interface {
	event.Target

	ID() string
	Type() string
	StartTime() float64
	Duration() float64
	Enabled() bool
	Active() bool
	Movie() Movie

	Attach(m Movie) error
	Detach()

	// Start is called when the layer enters its active window.
	Start(t float64) error
	// Render is called every frame while the layer is active.
	Render(t float64) error
	// Stop is called when the layer leaves its active window.
	Stop()
}

// Options holds the settings shared by all layers.
type Options struct {
	Enabled bool
}

// DefaultOptions returns the base layer defaults.
func DefaultOptions() Options {
	return Options{Enabled: true}
}

// Base is a layer without content. Other variants embed it.
type Base struct {
	id        string
	kind      string
	startTime float64
	duration  float64
	enabled   bool

	movie Movie
	self  Layer
	bus   event.Bus
}

// NewBase creates a bare layer occupying [startTime, startTime+duration).
func NewBase(startTime, duration float64, opts Options) (*Base, error) {
	b := &Base{}
	if err := b.init(TypeBase, startTime, duration, opts); err != nil {
		return nil, err
	}
	b.bind(b)
	return b, nil
}

func (b *Base) init(kind string, startTime, duration float64, opts Options) error {
	if math.IsNaN(startTime) || math.IsInf(startTime, 0) {
		return fmt.Errorf("%w: start time must be finite: %f", ErrConfiguration, startTime)
	}
	if duration < 0 || math.IsNaN(duration) {
		return fmt.Errorf("%w: duration must be >= 0: %f", ErrConfiguration, duration)
	}

	b.id = uuid.NewString()
	b.kind = kind
	b.startTime = startTime
	b.duration = duration
	b.enabled = opts.Enabled
	b.bus.Subscribe(EventChange, b.propagate)

	return nil
}

// bind records the outermost layer value so events carry it as their target.
func (b *Base) bind(self Layer) {
	b.self = self
}

// propagate republishes layer.change.* on the composition as movie.change.layer.*.
func (b *Base) propagate(ev event.Event) {
	if b.movie == nil {
		return
	}
	suffix := strings.TrimPrefix(ev.Type, EventChange)
	ev.Source = ev.Target
	event.Publish(b.movie, EventMovieChange+suffix, ev)
}

// changed publishes a layer.change.<prop> event for one mutation.
func (b *Base) changed(prop string, value any) {
	var target event.Target = b
	if b.self != nil {
		target = b.self
	}
	event.Publish(target, EventChange+"."+prop, event.Event{Property: prop, Value: value})
}

// Events returns the layer's own event bus.
func (b *Base) Events() *event.Bus { return &b.bus }

// ID returns a unique identifier assigned at construction.
func (b *Base) ID() string { return b.id }

// Type returns the variant discriminator.
func (b *Base) Type() string { return b.kind }

// StartTime returns the composition time at which the layer begins.
func (b *Base) StartTime() float64 { return b.startTime }

// SetStartTime moves the layer on the timeline.
func (b *Base) SetStartTime(t float64) {
	b.startTime = t
	b.changed("startTime", t)
}

// Duration returns the layer length in composition time.
func (b *Base) Duration() float64 { return b.duration }

// SetDuration changes the layer length.
func (b *Base) SetDuration(d float64) error {
	if d < 0 || math.IsNaN(d) {
		return fmt.Errorf("%w: duration must be >= 0: %f", ErrConfiguration, d)
	}
	b.setDuration(d)
	return nil
}

func (b *Base) setDuration(d float64) {
	b.duration = d
	b.changed("duration", d)
}

// Enabled reports whether the composition should play the layer.
func (b *Base) Enabled() bool { return b.enabled }

// SetEnabled toggles playback of the layer.
func (b *Base) SetEnabled(enabled bool) {
	b.enabled = enabled
	b.changed("enabled", enabled)
}

// Movie returns the owning composition, or nil.
func (b *Base) Movie() Movie { return b.movie }

// Attached reports whether the layer belongs to a composition.
func (b *Base) Attached() bool { return b.movie != nil }

// Attach sets the owning composition.
func (b *Base) Attach(m Movie) error {
	if m == nil {
		return fmt.Errorf("%w: nil movie", ErrConfiguration)
	}
	if b.movie != nil {
		return ErrAlreadyAttached
	}
	b.movie = m
	return nil
}

// Detach clears the owning composition. Detaching a detached layer is a no-op.
func (b *Base) Detach() {
	b.movie = nil
}

// Active reports whether the composition clock is inside
// [StartTime, StartTime+Duration). Detached layers are never active.
func (b *Base) Active() bool {
	if b.movie == nil {
		return false
	}
	t := b.movie.CurrentTime()
	return b.startTime <= t && t < b.startTime+b.duration
}

// CurrentTime returns the composition time relative to StartTime.
// ok is false while detached.
func (b *Base) CurrentTime() (t float64, ok bool) {
	if b.movie == nil {
		return 0, false
	}
	return b.movie.CurrentTime() - b.startTime, true
}

// Start is a no-op extension point.
func (b *Base) Start(float64) error { return nil }

// Render is a no-op extension point.
func (b *Base) Render(float64) error { return nil }

// Stop is a no-op extension point.
func (b *Base) Stop() {}

// setProp stores v in field and publishes the change.
func setProp[T any](b *Base, field *val.Value[T], prop string, v val.Value[T]) {
	*field = v
	b.changed(prop, v)
}
