package media

import "image"

// Silence is an audio-only resource that produces no sound. It gives audio
// layers a duration and a clock without decoding anything.
type Silence struct {
	clip
}

// NewSilence returns a loaded clip of the given duration.
func NewSilence(duration float64) (*Silence, error) {
	s := NewPendingSilence()
	if err := s.SetMetadata(duration); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPendingSilence returns a clip whose metadata arrives later.
func NewPendingSilence() *Silence {
	return &Silence{clip: newClip()}
}

// SetMetadata loads the clip, or changes its duration once loaded.
func (s *Silence) SetMetadata(duration float64) error { return s.setMetadata(duration) }

// SetDuration changes the duration of a loaded clip.
func (s *Silence) SetDuration(duration float64) error { return s.setDuration(duration) }

// NaturalSize is zero for audio.
func (s *Silence) NaturalSize() (width, height int) { return 0, 0 }

// Frame is nil for audio.
func (s *Silence) Frame() image.Image { return nil }
