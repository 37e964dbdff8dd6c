package layer

import (
	"image"

	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// Movie is the composition that owns layers. It provides the master clock,
// the default dimensions and the audio graph.
type Movie interface {
	event.Target
	CurrentTime() float64
	Width() val.Value[float64]
	Height() val.Value[float64]
	AudioGraph() AudioGraph
}

// Surface is a 2D drawing target owned by exactly one visual layer.
type Surface interface {
	// Resize sets the surface dimensions and clears it.
	Resize(width, height int)
	Size() (width, height int)
	SetGlobalAlpha(alpha float64)
	FillRect(x, y, w, h float64, c paint.Color)
	// StrokeRect strokes the rectangle outline centred on its edges.
	StrokeRect(x, y, w, h, lineWidth float64, c paint.Color)
	FillText(text string, x, y float64, style paint.TextStyle)
	// DrawImage copies the source rectangle of src into the destination rectangle.
	DrawImage(src image.Image, sx, sy, sw, sh, dx, dy, dw, dh float64)
	// Pixels exposes the backing store for effects.
	Pixels() *image.RGBA
}

// AudioNode is a vertex in an AudioGraph.
type AudioNode interface {
	AudioNodeID() string
}

// AudioGraph routes media audio into the composition's output.
type AudioGraph interface {
	CreateSource(m MediaResource) (AudioNode, error)
	MainOutput() AudioNode
	Connect(src, dst AudioNode) error
	Disconnect(src, dst AudioNode) error
}

// ReadyState mirrors how much of a media resource is available.
type ReadyState int

const (
	HaveNothing ReadyState = iota
	HaveMetadata
	HaveCurrentData
	HaveFutureData
	HaveEnoughData
)

// MediaResource is a decodable audio or video asset. Its loading and clock
// are external; layers only reference it.
type MediaResource interface {
	ReadyState() ReadyState
	// Duration is the natural duration in seconds.
	Duration() float64
	// NaturalSize is the frame size; zero for audio-only media.
	NaturalSize() (width, height int)
	// Frame returns the frame at the playback cursor, or nil.
	Frame() image.Image

	CurrentTime() float64
	SetCurrentTime(t float64)
	Play() error
	Pause()

	SetMuted(muted bool)
	SetVolume(volume float64)
	SetPlaybackRate(rate float64)

	// OnMetadata registers fn for the HaveMetadata transition.
	OnMetadata(fn func()) (cancel func())
	// OnDurationChange registers fn for every duration change.
	OnDurationChange(fn func()) (cancel func())
}

// ImageResource is a still image that may finish loading after construction.
type ImageResource interface {
	Ready() bool
	Size() (width, height int)
	Image() image.Image
	// OnLoad registers a one-shot callback fired when the image becomes ready.
	OnLoad(fn func()) (cancel func())
}
