package layer

import (
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// TextOptions configures a Text layer.
type TextOptions struct {
	VisualOptions

	Text          val.Value[string]
	Font          val.Value[string]
	Color         val.Value[paint.Color]
	TextX, TextY  val.Value[float64]
	MaxWidth      val.Value[float64]
	TextAlign     val.Value[paint.TextAlign]
	TextBaseline  val.Value[paint.TextBaseline]
	TextDirection val.Value[paint.TextDirection]
}

// DefaultTextOptions returns the text layer defaults. Text layers have no
// background and draw white 10px text anchored at the top-left corner.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		VisualOptions: DefaultVisualOptions(),
		Text:          val.Const(""),
		Font:          val.Const("10px sans-serif"),
		Color:         val.Const(paint.RGB(255, 255, 255)),
		TextX:         val.Const(0.0),
		TextY:         val.Const(0.0),
		TextAlign:     val.Const(paint.AlignStart),
		TextBaseline:  val.Const(paint.BaselineTop),
		TextDirection: val.Const(paint.DirectionLTR),
	}
}

// Text draws a single line of text.
type Text struct {
	Visual

	text          val.Value[string]
	font          val.Value[string]
	color         val.Value[paint.Color]
	textX, textY  val.Value[float64]
	maxWidth      val.Value[float64]
	textAlign     val.Value[paint.TextAlign]
	textBaseline  val.Value[paint.TextBaseline]
	textDirection val.Value[paint.TextDirection]
}

// NewText creates a text layer.
func NewText(startTime, duration float64, opts TextOptions) (*Text, error) {
	l := &Text{}
	if err := l.Visual.init(TypeText, startTime, duration, opts.VisualOptions); err != nil {
		return nil, err
	}

	l.text = opts.Text
	l.font = opts.Font
	l.color = opts.Color
	l.textX, l.textY = opts.TextX, opts.TextY
	l.maxWidth = opts.MaxWidth
	l.textAlign = opts.TextAlign
	l.textBaseline = opts.TextBaseline
	l.textDirection = opts.TextDirection

	l.content = l.drawText
	l.bind(l)
	return l, nil
}

// Text returns the stored text.
func (l *Text) Text() val.Value[string] { return l.text }

// SetText replaces the text.
func (l *Text) SetText(s val.Value[string]) { setProp(&l.Base, &l.text, "text", s) }

// SetFont sets the CSS font shorthand.
func (l *Text) SetFont(f val.Value[string]) { setProp(&l.Base, &l.font, "font", f) }

// SetColor sets the glyph colour.
func (l *Text) SetColor(c val.Value[paint.Color]) { setProp(&l.Base, &l.color, "color", c) }

// SetTextX sets the anchor x coordinate on the layer surface.
func (l *Text) SetTextX(x val.Value[float64]) { setProp(&l.Base, &l.textX, "textX", x) }

// SetTextY sets the anchor y coordinate on the layer surface.
func (l *Text) SetTextY(y val.Value[float64]) { setProp(&l.Base, &l.textY, "textY", y) }

// SetMaxWidth constrains the drawn width. Unset draws unconstrained.
func (l *Text) SetMaxWidth(w val.Value[float64]) { setProp(&l.Base, &l.maxWidth, "maxWidth", w) }

// SetTextAlign sets the horizontal anchor.
func (l *Text) SetTextAlign(a val.Value[paint.TextAlign]) {
	setProp(&l.Base, &l.textAlign, "textAlign", a)
}

// SetTextBaseline sets the vertical anchor.
func (l *Text) SetTextBaseline(b val.Value[paint.TextBaseline]) {
	setProp(&l.Base, &l.textBaseline, "textBaseline", b)
}

// SetTextDirection sets the writing direction.
func (l *Text) SetTextDirection(d val.Value[paint.TextDirection]) {
	setProp(&l.Base, &l.textDirection, "textDirection", d)
}

// ResolveStyle resolves every text property at relative time t.
func (l *Text) ResolveStyle(t float64) (text string, x, y float64, style paint.TextStyle) {
	style = paint.TextStyle{
		Font:      val.Resolve(l.font, t),
		Color:     val.Resolve(l.color, t),
		Align:     val.Resolve(l.textAlign, t),
		Baseline:  val.Resolve(l.textBaseline, t),
		Direction: val.Resolve(l.textDirection, t),
	}
	if mw, ok := l.maxWidth.At(t); ok {
		style.MaxWidth = mw
	}
	return val.Resolve(l.text, t), val.Resolve(l.textX, t), val.Resolve(l.textY, t), style
}

func (l *Text) drawText(t float64) error {
	text, x, y, style := l.ResolveStyle(t)
	if text == "" {
		return nil
	}
	l.surface.FillText(text, x, y, style)
	return nil
}
