package webdemo

import (
	"testing"
)

const demoScene = `
movie: {width: 4, height: 2, background: black, fps: 10}
layers:
  - type: visual
    duration: 1
    options: {width: 2, height: 2, background: white}
  - type: visual
    start: 0.5
    duration: 0.5
    options: {x: 2, width: 2, height: 2, background: red}
`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e, err := NewEngine([]byte(demoScene))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func pixel(e *Engine, x, y int) [4]byte {
	w, _, pix := e.Frame()
	i := (y*w + x) * 4
	return [4]byte{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

func TestNewEngineRejectsBadScene(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine([]byte("layers: [{type: nope}]")); err == nil {
		t.Fatal("expected error for unknown layer type")
	}
}

func TestAdvanceRendersWhenDirty(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if err := e.Advance(0); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	w, h, pix := e.Frame()
	if w != 4 || h != 2 || len(pix) != 32 {
		t.Fatalf("frame = %dx%d (%d bytes), want 4x2 (32 bytes)", w, h, len(pix))
	}
	if got := pixel(e, 0, 0); got != [4]byte{255, 255, 255, 255} {
		t.Fatalf("pixel(0,0) = %v, want white", got)
	}
	if got := pixel(e, 3, 0); got != [4]byte{0, 0, 0, 255} {
		t.Fatalf("pixel(3,0) = %v, want black before the red layer starts", got)
	}

	if err := e.Seek(0.75); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	_ = e.Advance(0)
	if got := pixel(e, 3, 0); got != [4]byte{255, 0, 0, 255} {
		t.Fatalf("pixel(3,0) = %v, want red after seek", got)
	}
}

func TestPlaybackRunsToEnd(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.SetRunning(true)
	if !e.Running() {
		t.Fatal("engine not running after SetRunning(true)")
	}

	for i := 0; i < 10 && e.Running(); i++ {
		if err := e.Advance(1); err != nil {
			t.Fatalf("Advance: %v", err)
		}
	}
	if e.Running() || e.CurrentTime() != e.Duration() {
		t.Fatalf("running=%v now=%v duration=%v", e.Running(), e.CurrentTime(), e.Duration())
	}

	e.SetRunning(true)
	if e.CurrentTime() != 0 {
		t.Fatalf("restart did not rewind: now=%v", e.CurrentTime())
	}
}

func TestAdvanceClampsStep(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	e.SetRunning(true)
	_ = e.Advance(10)
	if got := e.CurrentTime(); got != maxStep {
		t.Fatalf("now = %v, want %v", got, maxStep)
	}
}

func TestSetLayerEnabled(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	_ = e.Advance(0)

	if err := e.SetLayerEnabled(0, false); err != nil {
		t.Fatalf("SetLayerEnabled: %v", err)
	}
	if e.Layers()[0].Enabled {
		t.Fatal("layer still enabled")
	}
	_ = e.Advance(0)
	if got := pixel(e, 0, 0); got != [4]byte{0, 0, 0, 255} {
		t.Fatalf("pixel(0,0) = %v, want black with layer disabled", got)
	}

	if err := e.SetLayerEnabled(5, true); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestLayers(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	got := e.Layers()
	if len(got) != 2 || got[1].Type != "visual" || got[1].Start != 0.5 || got[1].Duration != 0.5 {
		t.Fatalf("Layers = %+v", got)
	}
	if e.FrameRate() != 10 {
		t.Fatalf("FrameRate = %v", e.FrameRate())
	}
}
