package layer

import (
	"testing"

	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

func TestTextDefaults(t *testing.T) {
	t.Parallel()

	l, err := NewText(0, 1, DefaultTextOptions())
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	if l.Type() != TypeText {
		t.Fatalf("Type = %q", l.Type())
	}

	text, x, y, style := l.ResolveStyle(0)
	if text != "" || x != 0 || y != 0 {
		t.Fatalf("text/x/y = %q/%v/%v", text, x, y)
	}
	want := paint.TextStyle{
		Font:      "10px sans-serif",
		Color:     paint.RGB(255, 255, 255),
		Align:     paint.AlignStart,
		Baseline:  paint.BaselineTop,
		Direction: paint.DirectionLTR,
	}
	if style != want {
		t.Fatalf("style = %+v, want %+v", style, want)
	}
}

func TestTextDrawsWithResolvedStyle(t *testing.T) {
	t.Parallel()

	s := newRecordingSurface()
	opts := DefaultTextOptions()
	opts.Width = val.Const(80.0)
	opts.Height = val.Const(20.0)
	opts.Surface = func() Surface { return s }
	opts.Text = val.Const("Hello")
	opts.TextX = val.MustKeyframes(val.KF(0, 0), val.KF(1, 10))
	opts.MaxWidth = val.Const(40.0)
	opts.TextAlign = val.Const(paint.AlignCenter)

	l, err := NewText(0, 1, opts)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	if err := l.Render(0.5); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(s.texts) != 1 {
		t.Fatalf("FillText called %d times, want 1", len(s.texts))
	}
	got := s.texts[0]
	if got.text != "Hello" || got.x != 5 || got.y != 0 {
		t.Fatalf("FillText(%q, %v, %v)", got.text, got.x, got.y)
	}
	if got.style.MaxWidth != 40 || got.style.Align != paint.AlignCenter {
		t.Fatalf("style = %+v", got.style)
	}

	var ink bool
	for i := 3; i < len(s.Pixels().Pix); i += 4 {
		if s.Pixels().Pix[i] != 0 {
			ink = true
			break
		}
	}
	if !ink {
		t.Fatal("no text drawn on the surface")
	}
}

func TestTextEmptyDrawsNothing(t *testing.T) {
	t.Parallel()

	s := newRecordingSurface()
	opts := DefaultTextOptions()
	opts.Width = val.Const(10.0)
	opts.Height = val.Const(10.0)
	opts.Surface = func() Surface { return s }

	l, _ := NewText(0, 1, opts)
	_ = l.Render(0)
	if len(s.texts) != 0 {
		t.Fatal("empty text reached the surface")
	}
}

func TestTextSettersPublish(t *testing.T) {
	t.Parallel()

	l, _ := NewText(0, 1, DefaultTextOptions())
	got := collect(t, l, EventChange)

	l.SetText(val.Const("x"))
	l.SetFont(val.Const("12px serif"))
	l.SetColor(val.Const(paint.RGB(0, 0, 0)))
	l.SetTextX(val.Const(1.0))
	l.SetTextY(val.Const(1.0))
	l.SetMaxWidth(val.Const(5.0))
	l.SetTextAlign(val.Const(paint.AlignEnd))
	l.SetTextBaseline(val.Const(paint.BaselineMiddle))
	l.SetTextDirection(val.Const(paint.DirectionRTL))

	if len(*got) != 9 {
		t.Fatalf("received %d events, want 9", len(*got))
	}
	if (*got)[0].Target != Layer(l) {
		t.Fatal("event target is not the text layer")
	}
	if text, _, _, _ := l.ResolveStyle(0); text != "x" {
		t.Fatalf("text = %q after SetText", text)
	}
}
