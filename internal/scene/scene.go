// Package scene loads YAML scene descriptions into a ready-to-render movie.
//
// A scene file looks like:
//
//	movie:
//	  width: 640
//	  height: 360
//	  background: black
//	  fps: 30
//	layers:
//	  - type: text
//	    start: 0
//	    duration: 2
//	    options:
//	      text: hello
//	      x: [[0, 0], [2, 100, cosine]]
//	    effects:
//	      - type: gaussianblur
//	        params: {radius: 2}
//
// Numeric options accept either a number or a keyframe list of
// [time, value] or [time, value, mode] entries. Unknown keys are rejected.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/khanaslam439/vidar/effect"
	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/movie"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/val"
)

// ErrInvalidScene marks malformed scene files.
var ErrInvalidScene = errors.New("scene: invalid scene")

// Defaults applied to omitted movie settings.
const (
	DefaultWidth     = 640
	DefaultHeight    = 360
	DefaultFrameRate = 30
)

// File is the on-disk scene layout.
type File struct {
	Movie  MovieSpec   `yaml:"movie"`
	Layers []LayerSpec `yaml:"layers"`
}

// MovieSpec holds composition-wide settings.
type MovieSpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Background string  `yaml:"background"`
	FPS        float64 `yaml:"fps"`
}

// LayerSpec describes one layer.
type LayerSpec struct {
	Type     string               `yaml:"type"`
	Start    float64              `yaml:"start"`
	Duration float64              `yaml:"duration"`
	Options  map[string]yaml.Node `yaml:"options"`
	Effects  []EffectSpec         `yaml:"effects"`
}

// EffectSpec describes one effect appended to a visual layer.
type EffectSpec struct {
	Type     string               `yaml:"type"`
	Disabled bool                 `yaml:"disabled"`
	Params   map[string]yaml.Node `yaml:"params"`
}

// Scene is a loaded scene.
type Scene struct {
	Movie     *movie.Movie
	FrameRate float64
}

// Load reads and builds the scene at path. Relative media paths resolve
// against the scene file's directory. A nil reg uses effect.DefaultRegistry.
func Load(path string, reg *effect.Registry) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	return Parse(data, filepath.Dir(path), reg)
}

// Decode parses the scene layout without building anything.
func Decode(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScene)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return &f, nil
}

// Parse builds a scene from YAML data. dir anchors relative media paths.
func Parse(data []byte, dir string, reg *effect.Registry) (*Scene, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Build(f, dir, reg)
}

// Build turns a decoded File into a movie with every layer attached.
func Build(f *File, dir string, reg *effect.Registry) (*Scene, error) {
	if reg == nil {
		reg = effect.DefaultRegistry()
	}

	m, fps, err := buildMovie(f.Movie)
	if err != nil {
		return nil, err
	}

	b := builder{dir: dir, fps: fps, reg: reg}
	for i, spec := range f.Layers {
		l, err := b.layer(spec)
		if err != nil {
			return nil, fmt.Errorf("scene: layer %d (%s): %w", i, spec.Type, err)
		}
		if err := m.AddLayer(l); err != nil {
			return nil, fmt.Errorf("scene: layer %d (%s): %w", i, spec.Type, err)
		}
	}
	return &Scene{Movie: m, FrameRate: fps}, nil
}

func buildMovie(spec MovieSpec) (*movie.Movie, float64, error) {
	opts := movie.DefaultOptions()
	opts.Width = val.Const(orDefault(spec.Width, DefaultWidth))
	opts.Height = val.Const(orDefault(spec.Height, DefaultHeight))

	if spec.Background != "" {
		c, err := paint.ParseColor(spec.Background)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: movie background: %w", ErrInvalidScene, err)
		}
		opts.Background = val.Const(c)
	}

	fps := orDefault(spec.FPS, DefaultFrameRate)
	if fps < 0 {
		return nil, 0, fmt.Errorf("%w: movie fps must be > 0: %f", ErrInvalidScene, fps)
	}

	m, err := movie.New(opts)
	if err != nil {
		return nil, 0, err
	}
	return m, fps, nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

type builder struct {
	dir string
	fps float64
	reg *effect.Registry
}

func (b builder) layer(spec LayerSpec) (layer.Layer, error) {
	opts := newOptions(spec.Options)

	var (
		l   layer.Layer
		err error
	)
	switch spec.Type {
	case layer.TypeVisual:
		l, err = b.visual(spec, opts)
	case layer.TypeText:
		l, err = b.text(spec, opts)
	case layer.TypeImage:
		l, err = b.image(spec, opts)
	case layer.TypeVideo:
		l, err = b.video(spec, opts)
	case layer.TypeAudio:
		l, err = b.audio(spec, opts)
	default:
		return nil, fmt.Errorf("%w: unknown layer type %q", ErrInvalidScene, spec.Type)
	}
	if err != nil {
		return nil, err
	}

	return l, b.effects(l, spec.Effects)
}

func (b builder) effects(l layer.Layer, specs []EffectSpec) error {
	if len(specs) == 0 {
		return nil
	}
	host, ok := l.(interface{ Effects() *layer.Effects })
	if !ok {
		return fmt.Errorf("%w: %s layers do not take effects", ErrInvalidScene, l.Type())
	}

	for i, spec := range specs {
		p, err := params(spec)
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		fx, err := b.reg.New(p)
		if err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
		if err := host.Effects().Append(fx); err != nil {
			return fmt.Errorf("effect %d: %w", i, err)
		}
	}
	return nil
}

// params splits effect parameters into numbers (including keyframe lists)
// and strings. Booleans are kept as strings for Params.GetBool.
func params(spec EffectSpec) (effect.Params, error) {
	p := effect.Params{
		Type:     spec.Type,
		Disabled: spec.Disabled,
		Num:      make(map[string]val.Value[float64]),
		Str:      make(map[string]string),
	}
	for key, node := range spec.Params {
		if node.Kind == yaml.ScalarNode && node.Tag != "!!int" && node.Tag != "!!float" {
			p.Str[key] = node.Value
			continue
		}
		v, err := number(&node)
		if err != nil {
			return p, fmt.Errorf("%w: param %s: %w", ErrInvalidScene, key, err)
		}
		p.Num[key] = v
	}
	return p, nil
}

func (b builder) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(b.dir, p)
}
