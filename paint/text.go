package paint

import "fmt"

// TextAlign is the horizontal anchor of drawn text.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignEnd
	AlignLeft
	AlignRight
	AlignCenter
)

// TextBaseline is the vertical anchor of drawn text.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineHanging
	BaselineMiddle
	BaselineIdeographic
	BaselineBottom
)

// TextDirection decides which side AlignStart and AlignEnd refer to.
type TextDirection int

const (
	DirectionLTR TextDirection = iota
	DirectionRTL
)

// TextStyle configures how a surface draws text. MaxWidth <= 0 leaves the
// text unconstrained.
type TextStyle struct {
	Font      string
	Color     Color
	Align     TextAlign
	Baseline  TextBaseline
	Direction TextDirection
	MaxWidth  float64
}

var (
	alignNames     = []string{"start", "end", "left", "right", "center"}
	baselineNames  = []string{"alphabetic", "top", "hanging", "middle", "ideographic", "bottom"}
	directionNames = []string{"ltr", "rtl"}
)

func (a TextAlign) String() string     { return enumName(alignNames, int(a)) }
func (b TextBaseline) String() string  { return enumName(baselineNames, int(b)) }
func (d TextDirection) String() string { return enumName(directionNames, int(d)) }

// ParseTextAlign resolves a CSS text-align keyword.
func ParseTextAlign(s string) (TextAlign, error) {
	i, err := enumIndex(alignNames, s, "text align")
	return TextAlign(i), err
}

// ParseTextBaseline resolves a canvas textBaseline keyword.
func ParseTextBaseline(s string) (TextBaseline, error) {
	i, err := enumIndex(baselineNames, s, "text baseline")
	return TextBaseline(i), err
}

// ParseTextDirection resolves "ltr" or "rtl".
func ParseTextDirection(s string) (TextDirection, error) {
	i, err := enumIndex(directionNames, s, "text direction")
	return TextDirection(i), err
}

// Resolve maps start/end onto left/right for direction d.
func (a TextAlign) Resolve(d TextDirection) TextAlign {
	switch a {
	case AlignStart:
		if d == DirectionRTL {
			return AlignRight
		}
		return AlignLeft
	case AlignEnd:
		if d == DirectionRTL {
			return AlignLeft
		}
		return AlignRight
	default:
		return a
	}
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("%d", i)
	}
	return names[i]
}

func enumIndex(names []string, s, what string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("paint: unknown %s %q", what, s)
}
