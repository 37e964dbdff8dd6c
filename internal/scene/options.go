package scene

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/khanaslam439/vidar/interp"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// options reads typed values out of a layer's option map and remembers
// which keys were consumed. The first decode error sticks.
type options struct {
	nodes map[string]yaml.Node
	used  map[string]bool
	err   error
}

func newOptions(nodes map[string]yaml.Node) *options {
	return &options{nodes: nodes, used: make(map[string]bool)}
}

func (o *options) lookup(key string) (*yaml.Node, bool) {
	o.used[key] = true
	if o.err != nil {
		return nil, false
	}
	n, ok := o.nodes[key]
	if !ok {
		return nil, false
	}
	return &n, true
}

func (o *options) fail(key string, err error) {
	if o.err == nil {
		o.err = fmt.Errorf("%w: option %s: %w", ErrInvalidScene, key, err)
	}
}

func (o *options) num(key string, dst *val.Value[float64]) {
	n, ok := o.lookup(key)
	if !ok {
		return
	}
	v, err := number(n)
	if err != nil {
		o.fail(key, err)
		return
	}
	*dst = v
}

func (o *options) float(key string, dst *float64) {
	n, ok := o.lookup(key)
	if !ok {
		return
	}
	if err := n.Decode(dst); err != nil {
		o.fail(key, err)
	}
}

func (o *options) optionalFloat(key string, dst **float64) {
	if _, ok := o.nodes[key]; !ok {
		o.used[key] = true
		return
	}
	var f float64
	o.float(key, &f)
	*dst = &f
}

func (o *options) str(key string, dst *string) {
	n, ok := o.lookup(key)
	if !ok {
		return
	}
	if err := n.Decode(dst); err != nil {
		o.fail(key, err)
	}
}

func (o *options) text(key string, dst *val.Value[string]) {
	if _, ok := o.nodes[key]; !ok {
		o.used[key] = true
		return
	}
	var s string
	o.str(key, &s)
	*dst = val.Const(s)
}

func (o *options) boolean(key string, dst *bool) {
	n, ok := o.lookup(key)
	if !ok {
		return
	}
	if err := n.Decode(dst); err != nil {
		o.fail(key, err)
	}
}

func (o *options) flag(key string, dst *val.Value[bool]) {
	if _, ok := o.nodes[key]; !ok {
		o.used[key] = true
		return
	}
	var b bool
	o.boolean(key, &b)
	*dst = val.Const(b)
}

func (o *options) color(key string, dst *val.Value[paint.Color]) {
	var s string
	o.str(key, &s)
	if s == "" {
		return
	}
	c, err := paint.ParseColor(s)
	if err != nil {
		o.fail(key, err)
		return
	}
	*dst = val.Const(c)
}

// enum parses a named constant with parse.
func enum[T any](o *options, key string, dst *val.Value[T], parse func(string) (T, error)) {
	var s string
	o.str(key, &s)
	if s == "" {
		return
	}
	v, err := parse(s)
	if err != nil {
		o.fail(key, err)
		return
	}
	*dst = val.Const(v)
}

// finish reports the first decode error or any key nothing consumed.
func (o *options) finish() error {
	if o.err != nil {
		return o.err
	}
	var unknown []string
	for key := range o.nodes {
		if !o.used[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: unknown options %s", ErrInvalidScene, strings.Join(unknown, ", "))
	}
	return nil
}

// number decodes a constant or a keyframe list [[t, v], [t, v, mode], ...].
func number(n *yaml.Node) (val.Value[float64], error) {
	if n.Kind != yaml.SequenceNode {
		var f float64
		if err := n.Decode(&f); err != nil {
			return val.Value[float64]{}, err
		}
		return val.Const(f), nil
	}

	frames := make([]val.Keyframe[float64], 0, len(n.Content))
	for i, item := range n.Content {
		if item.Kind != yaml.SequenceNode || len(item.Content) < 2 || len(item.Content) > 3 {
			return val.Value[float64]{}, fmt.Errorf("keyframe %d: want [time, value] or [time, value, mode]", i)
		}

		var kf val.Keyframe[float64]
		if err := item.Content[0].Decode(&kf.Time); err != nil {
			return val.Value[float64]{}, fmt.Errorf("keyframe %d time: %w", i, err)
		}
		if err := item.Content[1].Decode(&kf.Value); err != nil {
			return val.Value[float64]{}, fmt.Errorf("keyframe %d value: %w", i, err)
		}
		if len(item.Content) == 3 {
			mode, err := interp.ParseMode(item.Content[2].Value)
			if err != nil {
				return val.Value[float64]{}, fmt.Errorf("keyframe %d: %w", i, err)
			}
			kf.Mode = mode
		}
		frames = append(frames, kf)
	}
	return val.Keyframes(frames...)
}
