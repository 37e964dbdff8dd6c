// Package webdemo drives a scene from the browser playground. The wasm
// bridge in web/wasm forwards JavaScript calls to an Engine.
package webdemo

import (
	"fmt"
	"math"

	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/internal/scene"
	"github.com/khanaslam439/vidar/movie"
)

// maxStep bounds one Advance so a backgrounded tab does not jump to the end.
const maxStep = 0.25

// LayerInfo summarises one layer for the playground's layer list.
type LayerInfo struct {
	Type     string
	Start    float64
	Duration float64
	Enabled  bool
}

// Engine owns a loaded scene and renders it on demand.
type Engine struct {
	scene  *scene.Scene
	cancel func()
	dirty  bool
}

// NewEngine parses a YAML scene document.
func NewEngine(doc []byte) (*Engine, error) {
	s, err := scene.Parse(doc, ".", nil)
	if err != nil {
		return nil, err
	}
	e := &Engine{scene: s, dirty: true}
	e.cancel = event.Subscribe(s.Movie, layerChanges, func(event.Event) { e.dirty = true })
	return e, nil
}

const layerChanges = "movie.change.layer"

// Close releases the engine's subscriptions.
func (e *Engine) Close() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// Movie returns the loaded composition.
func (e *Engine) Movie() *movie.Movie { return e.scene.Movie }

// FrameRate returns the scene's frame rate.
func (e *Engine) FrameRate() float64 { return e.scene.FrameRate }

// Duration returns the composition length in seconds.
func (e *Engine) Duration() float64 { return e.scene.Movie.Duration() }

// CurrentTime returns the playhead in seconds.
func (e *Engine) CurrentTime() float64 { return e.scene.Movie.CurrentTime() }

// SetRunning starts or pauses playback. Starting at the end rewinds first.
func (e *Engine) SetRunning(running bool) {
	m := e.scene.Movie
	if !running {
		m.Pause()
		return
	}
	if m.CurrentTime() >= m.Duration() {
		_ = m.Seek(0)
		e.dirty = true
	}
	m.Play()
}

// Running reports whether playback is active.
func (e *Engine) Running() bool { return e.scene.Movie.Playing() }

// Seek moves the playhead.
func (e *Engine) Seek(t float64) error {
	if err := e.scene.Movie.Seek(math.Min(t, e.Duration())); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// Advance moves a running movie forward by dt seconds and renders. A paused
// movie is re-rendered only after a seek or layer change.
func (e *Engine) Advance(dt float64) error {
	m := e.scene.Movie
	if m.Playing() && dt > 0 {
		e.dirty = false
		return m.Step(math.Min(dt, maxStep))
	}
	if !e.dirty {
		return nil
	}
	e.dirty = false
	return m.RenderFrame()
}

// Frame returns the size and RGBA bytes of the last rendered frame. The
// slice aliases the canvas and is overwritten by the next render.
func (e *Engine) Frame() (width, height int, pix []byte) {
	img := e.scene.Movie.Frame()
	return img.Rect.Dx(), img.Rect.Dy(), img.Pix
}

// Layers describes the scene's layers bottom first.
func (e *Engine) Layers() []LayerInfo {
	layers := e.scene.Movie.Layers()
	out := make([]LayerInfo, len(layers))
	for i, l := range layers {
		out[i] = LayerInfo{
			Type:     l.Type(),
			Start:    l.StartTime(),
			Duration: l.Duration(),
			Enabled:  l.Enabled(),
		}
	}
	return out
}

// SetLayerEnabled toggles layer i.
func (e *Engine) SetLayerEnabled(i int, enabled bool) error {
	layers := e.scene.Movie.Layers()
	if i < 0 || i >= len(layers) {
		return fmt.Errorf("webdemo: layer index out of range: %d", i)
	}
	l, ok := layers[i].(interface{ SetEnabled(bool) })
	if !ok {
		return fmt.Errorf("webdemo: layer %d cannot be toggled", i)
	}
	l.SetEnabled(enabled)
	return nil
}
