package media

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sort"
)

// Sequence is a video resource made of still frames shown at a fixed rate.
type Sequence struct {
	clip

	fps    float64
	frames []image.Image
}

// NewSequence returns a loaded sequence. Its natural duration is
// len(frames)/fps and its natural size is that of the first frame.
func NewSequence(fps float64, frames ...image.Image) (*Sequence, error) {
	s := NewPendingSequence()
	if err := s.Load(fps, frames...); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPendingSequence returns a sequence whose frames arrive later.
func NewPendingSequence() *Sequence {
	return &Sequence{clip: newClip()}
}

// LoadSequence decodes every file matching pattern, in lexical order.
func LoadSequence(pattern string, fps float64) (*Sequence, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("media: bad pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: nothing matches %q", ErrNoFrames, pattern)
	}
	sort.Strings(paths)

	frames := make([]image.Image, 0, len(paths))
	for _, p := range paths {
		img, err := decodeFile(p)
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	return NewSequence(fps, frames...)
}

// Load sets the frames and fires the metadata callbacks.
func (s *Sequence) Load(fps float64, frames ...image.Image) error {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return fmt.Errorf("media: frame rate must be > 0: %f", fps)
	}
	if len(frames) == 0 {
		return ErrNoFrames
	}
	for i, f := range frames {
		if f == nil {
			return fmt.Errorf("%w: frame %d is nil", ErrNoFrames, i)
		}
	}

	s.fps = fps
	s.frames = append([]image.Image(nil), frames...)
	return s.setMetadata(float64(len(frames)) / fps)
}

// SetDuration overrides the natural duration, e.g. when a stream turns out
// to be shorter than its header claimed.
func (s *Sequence) SetDuration(duration float64) error { return s.setDuration(duration) }

// FrameRate returns the frames per second.
func (s *Sequence) FrameRate() float64 { return s.fps }

// Len returns the number of frames.
func (s *Sequence) Len() int { return len(s.frames) }

// NaturalSize returns the size of the first frame.
func (s *Sequence) NaturalSize() (width, height int) {
	if len(s.frames) == 0 {
		return 0, 0
	}
	b := s.frames[0].Bounds()
	return b.Dx(), b.Dy()
}

// Frame returns the frame under the playback cursor, or nil before loading.
func (s *Sequence) Frame() image.Image {
	if len(s.frames) == 0 {
		return nil
	}
	i := int(math.Floor(s.cursor * s.fps))
	return s.frames[min(max(i, 0), len(s.frames)-1)]
}
