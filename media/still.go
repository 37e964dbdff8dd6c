package media

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"os"
)

// Still is an image resource that may be loaded after construction.
type Still struct {
	img    image.Image
	onLoad callbacks
}

// NewStill returns a loaded image.
func NewStill(img image.Image) (*Still, error) {
	s := NewPendingStill()
	if err := s.Load(img); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPendingStill returns an image that becomes ready on Load.
func NewPendingStill() *Still {
	return &Still{}
}

// LoadStill decodes a PNG or JPEG file.
func LoadStill(path string) (*Still, error) {
	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	return NewStill(img)
}

// Load sets the image and fires the pending load callbacks once.
func (s *Still) Load(img image.Image) error {
	if img == nil {
		return fmt.Errorf("media: nil image")
	}
	first := s.img == nil
	s.img = img
	if first {
		s.onLoad.fire()
		s.onLoad = callbacks{}
	}
	return nil
}

// Ready implements layer.ImageResource.
func (s *Still) Ready() bool { return s.img != nil }

// Size returns the image dimensions, or zero before loading.
func (s *Still) Size() (width, height int) {
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the loaded image, or nil.
func (s *Still) Image() image.Image { return s.img }

// OnLoad registers a one-shot callback fired when the image loads.
func (s *Still) OnLoad(fn func()) func() { return s.onLoad.add(fn) }

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("media: open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("media: decode %s: %w", path, err)
	}
	return img, nil
}
