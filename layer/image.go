package layer

import (
	"fmt"
	"image"

	"github.com/khanaslam439/vidar/val"
)

// Clip selects the source rectangle of an image or video frame. Unset
// dimensions default to the layer's resolved destination size.
type Clip struct {
	X, Y          val.Value[float64]
	Width, Height val.Value[float64]
}

// ImageOptions configures an Image layer.
type ImageOptions struct {
	VisualOptions
	Clip Clip
}

// DefaultImageOptions returns the image layer defaults.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		VisualOptions: DefaultVisualOptions(),
		Clip: Clip{
			X: val.Const(0.0),
			Y: val.Const(0.0),
		},
	}
}

// Image blits a still image onto its surface.
type Image struct {
	Visual

	image      ImageResource
	clip       Clip
	sized      bool
	cancelLoad func()
}

// NewImage creates an image layer. When img is not loaded yet, unset width
// and height are filled in from its natural size once it loads.
func NewImage(startTime, duration float64, img ImageResource, opts ImageOptions) (*Image, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image resource", ErrConfiguration)
	}

	l := &Image{image: img, clip: opts.Clip}
	if err := l.Visual.init(TypeImage, startTime, duration, opts.VisualOptions); err != nil {
		return nil, err
	}
	l.content = l.drawImage
	l.bind(l)
	l.listen()

	return l, nil
}

// Resource returns the backing image.
func (l *Image) Resource() ImageResource { return l.image }

// Clip returns the source rectangle.
func (l *Image) Clip() Clip { return l.clip }

// SetClip replaces the source rectangle.
func (l *Image) SetClip(c Clip) {
	l.clip = c
	l.changed("clip", c)
}

// Attach attaches the layer and resumes waiting for the image if needed.
func (l *Image) Attach(m Movie) error {
	if err := l.Base.Attach(m); err != nil {
		return err
	}
	l.listen()
	return nil
}

// Detach detaches the layer; a pending load no longer affects it.
func (l *Image) Detach() {
	if l.cancelLoad != nil {
		l.cancelLoad()
		l.cancelLoad = nil
	}
	l.Base.Detach()
}

func (l *Image) listen() {
	if l.sized || l.cancelLoad != nil {
		return
	}
	if l.image.Ready() {
		l.applyNaturalSize()
		return
	}
	l.cancelLoad = l.image.OnLoad(func() {
		l.cancelLoad = nil
		l.applyNaturalSize()
	})
}

func (l *Image) applyNaturalSize() {
	if l.sized {
		return
	}
	l.sized = true

	w, h := l.image.Size()
	defaultSize(&l.Visual, l.clip, float64(w), float64(h))
}

// defaultSize fills unset width/height from the clip size, else the natural size.
func defaultSize(v *Visual, clip Clip, naturalW, naturalH float64) {
	if !v.width.IsSet() {
		v.SetWidth(val.Or(clip.Width, val.Const(naturalW)))
	}
	if !v.height.IsSet() {
		v.SetHeight(val.Or(clip.Height, val.Const(naturalH)))
	}
}

// drawClipped draws the clip rectangle of src over the layer's resolved size.
func drawClipped(v *Visual, clip Clip, src image.Image, t float64) {
	if src == nil {
		return
	}

	w, h := v.ResolveWidth(t), v.ResolveHeight(t)
	cx, cy := val.Resolve(clip.X, t), val.Resolve(clip.Y, t)
	cw := val.ResolveOr(clip.Width, t, func() float64 { return w })
	ch := val.ResolveOr(clip.Height, t, func() float64 { return h })

	v.surface.DrawImage(src, cx, cy, cw, ch, 0, 0, w, h)
}

func (l *Image) drawImage(t float64) error {
	if !l.image.Ready() {
		return nil
	}
	drawClipped(&l.Visual, l.clip, l.image.Image(), t)
	return nil
}
