package media

import (
	"errors"
	"fmt"
	"math"

	"github.com/khanaslam439/vidar/core"
	"github.com/khanaslam439/vidar/layer"
)

var (
	// ErrInvalidDuration is returned for negative or non-finite durations.
	ErrInvalidDuration = errors.New("media: invalid duration")

	// ErrNotLoaded is returned by Play before metadata is available.
	ErrNotLoaded = errors.New("media: not loaded")

	// ErrNoFrames is returned when a sequence is built without frames.
	ErrNoFrames = errors.New("media: no frames")
)

// callbacks is an ordered set of cancellable listeners.
type callbacks struct {
	next int
	fns  []callback
}

type callback struct {
	id int
	fn func()
}

func (c *callbacks) add(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	c.next++
	id := c.next
	c.fns = append(c.fns, callback{id: id, fn: fn})
	return func() {
		for i, cb := range c.fns {
			if cb.id == id {
				c.fns = append(c.fns[:i], c.fns[i+1:]...)
				return
			}
		}
	}
}

func (c *callbacks) fire() {
	snapshot := make([]callback, len(c.fns))
	copy(snapshot, c.fns)
	for _, cb := range snapshot {
		cb.fn()
	}
}

func (c *callbacks) len() int { return len(c.fns) }

// clip is the playback state shared by every timed resource.
type clip struct {
	state    layer.ReadyState
	duration float64

	cursor  float64
	playing bool
	muted   bool
	volume  float64
	rate    float64

	onMetadata callbacks
	onDuration callbacks
}

func newClip() clip {
	return clip{volume: 1, rate: 1}
}

// ReadyState implements layer.MediaResource.
func (c *clip) ReadyState() layer.ReadyState { return c.state }

// Duration returns the natural duration in seconds.
func (c *clip) Duration() float64 { return c.duration }

// CurrentTime returns the playback cursor in media time.
func (c *clip) CurrentTime() float64 { return c.cursor }

// SetCurrentTime moves the playback cursor, clamped to [0, Duration].
func (c *clip) SetCurrentTime(t float64) {
	if math.IsNaN(t) {
		return
	}
	c.cursor = core.Clamp(t, 0, c.duration)
}

// Play starts advancing the cursor.
func (c *clip) Play() error {
	if c.state < layer.HaveMetadata {
		return ErrNotLoaded
	}
	c.playing = true
	return nil
}

// Pause stops advancing the cursor.
func (c *clip) Pause() { c.playing = false }

// Playing reports whether the cursor advances.
func (c *clip) Playing() bool { return c.playing }

// Muted reports the last mute flag pushed by a layer.
func (c *clip) Muted() bool { return c.muted }

// SetMuted implements layer.MediaResource.
func (c *clip) SetMuted(muted bool) { c.muted = muted }

// Volume returns the last volume pushed by a layer.
func (c *clip) Volume() float64 { return c.volume }

// SetVolume implements layer.MediaResource.
func (c *clip) SetVolume(volume float64) { c.volume = core.Clamp(volume, 0, 1) }

// PlaybackRate returns the last playback rate pushed by a layer.
func (c *clip) PlaybackRate() float64 { return c.rate }

// SetPlaybackRate implements layer.MediaResource.
func (c *clip) SetPlaybackRate(rate float64) {
	if rate > 0 {
		c.rate = rate
	}
}

// OnMetadata registers fn for the transition to HaveMetadata.
func (c *clip) OnMetadata(fn func()) func() { return c.onMetadata.add(fn) }

// OnDurationChange registers fn for every duration change.
func (c *clip) OnDurationChange(fn func()) func() { return c.onDuration.add(fn) }

// Advance moves a playing cursor forward by dt seconds of wall time scaled by
// the playback rate. Playback pauses at the end.
func (c *clip) Advance(dt float64) {
	if !c.playing || dt <= 0 {
		return
	}
	c.cursor += dt * c.rate
	if c.cursor >= c.duration {
		c.cursor = c.duration
		c.playing = false
	}
}

// setMetadata marks the metadata as available, firing the metadata
// callbacks on the first call and the duration callbacks on later changes.
func (c *clip) setMetadata(duration float64) error {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidDuration, duration)
	}

	if c.state >= layer.HaveMetadata {
		return c.setDuration(duration)
	}

	c.duration = duration
	c.state = layer.HaveEnoughData
	c.onMetadata.fire()
	return nil
}

func (c *clip) setDuration(duration float64) error {
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: %f", ErrInvalidDuration, duration)
	}
	if duration == c.duration {
		return nil
	}
	c.duration = duration
	c.cursor = math.Min(c.cursor, duration)
	c.onDuration.fire()
	return nil
}
