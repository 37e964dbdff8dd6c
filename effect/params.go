package effect

import (
	"fmt"
	"math"
	"strconv"

	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// Params holds the parsed parameters for one effect instance.
type Params struct {
	Type     string
	Disabled bool
	Num      map[string]val.Value[float64]
	Str      map[string]string
}

// GetNum extracts a numeric parameter, returning a constant def if it is
// missing, unset or a non-finite constant.
func (p Params) GetNum(key string, def float64) val.Value[float64] {
	v, ok := p.Num[key]
	if !ok || !v.IsSet() {
		return val.Const(def)
	}
	if c, ok := v.Constant(); ok && (math.IsNaN(c) || math.IsInf(c, 0)) {
		return val.Const(def)
	}
	return v
}

// GetStr extracts a string parameter, returning def if missing.
func (p Params) GetStr(key, def string) string {
	if s, ok := p.Str[key]; ok {
		return s
	}
	return def
}

// GetBool parses a boolean string parameter, returning def if missing.
func (p Params) GetBool(key string, def bool) (bool, error) {
	s, ok := p.Str[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %q is not a boolean", ErrInvalidParameter, key, s)
	}
	return b, nil
}

// GetColor parses a CSS colour string parameter, returning def if missing.
func (p Params) GetColor(key string, def paint.Color) (paint.Color, error) {
	s, ok := p.Str[key]
	if !ok {
		return def, nil
	}
	c, err := paint.ParseColor(s)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %w", ErrInvalidParameter, key, err)
	}
	return c, nil
}
