package layer

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/paint"
	"github.com/khanaslam439/vidar/raster"
	"github.com/khanaslam439/vidar/val"
)

// fakeMovie is a composition with a settable clock.
type fakeMovie struct {
	bus    event.Bus
	now    float64
	width  val.Value[float64]
	height val.Value[float64]
	graph  AudioGraph
}

func newFakeMovie(w, h float64) *fakeMovie {
	return &fakeMovie{width: val.Const(w), height: val.Const(h)}
}

func (m *fakeMovie) Events() *event.Bus         { return &m.bus }
func (m *fakeMovie) CurrentTime() float64       { return m.now }
func (m *fakeMovie) Width() val.Value[float64]  { return m.width }
func (m *fakeMovie) Height() val.Value[float64] { return m.height }
func (m *fakeMovie) AudioGraph() AudioGraph     { return m.graph }
func (m *fakeMovie) seek(t float64) {
	m.now = t
	event.Publish(m, EventMovieSeek, event.Event{Value: t})
}
func (m *fakeMovie) setDestination(n AudioNode) {
	event.Publish(m, EventAudioDestinationUpdate, event.Event{Value: n})
}

type fakeNode string

func (n fakeNode) AudioNodeID() string { return string(n) }

// fakeGraph records connections as "src->dst" edges.
type fakeGraph struct {
	main      fakeNode
	edges     map[string]bool
	sources   int
	createErr error
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{main: "main", edges: map[string]bool{}}
}

func (g *fakeGraph) CreateSource(MediaResource) (AudioNode, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.sources++
	return fakeNode(fmt.Sprintf("src%d", g.sources)), nil
}

func (g *fakeGraph) MainOutput() AudioNode { return g.main }

func (g *fakeGraph) Connect(src, dst AudioNode) error {
	g.edges[edge(src, dst)] = true
	return nil
}

func (g *fakeGraph) Disconnect(src, dst AudioNode) error {
	if !g.edges[edge(src, dst)] {
		return errors.New("not connected")
	}
	delete(g.edges, edge(src, dst))
	return nil
}

func edge(src, dst AudioNode) string { return src.AudioNodeID() + "->" + dst.AudioNodeID() }

// fakeMedia is a media resource whose metadata arrives on demand.
type fakeMedia struct {
	state    ReadyState
	duration float64
	w, h     int
	frame    image.Image

	cursor  float64
	playing bool
	muted   bool
	volume  float64
	rate    float64

	nextID  int
	metaFns map[int]func()
	durFns  map[int]func()
	seekLog []float64
	playErr error
}

func newFakeMedia(duration float64, w, h int, loaded bool) *fakeMedia {
	m := &fakeMedia{duration: duration, w: w, h: h, metaFns: map[int]func(){}, durFns: map[int]func(){}}
	if loaded {
		m.state = HaveEnoughData
	}
	return m
}

func (m *fakeMedia) ReadyState() ReadyState            { return m.state }
func (m *fakeMedia) Duration() float64                 { return m.duration }
func (m *fakeMedia) NaturalSize() (int, int)           { return m.w, m.h }
func (m *fakeMedia) Frame() image.Image                { return m.frame }
func (m *fakeMedia) CurrentTime() float64              { return m.cursor }
func (m *fakeMedia) SetCurrentTime(t float64)          { m.cursor = t; m.seekLog = append(m.seekLog, t) }
func (m *fakeMedia) Pause()                            { m.playing = false }
func (m *fakeMedia) SetMuted(muted bool)               { m.muted = muted }
func (m *fakeMedia) SetVolume(volume float64)          { m.volume = volume }
func (m *fakeMedia) SetPlaybackRate(rate float64)      { m.rate = rate }
func (m *fakeMedia) OnMetadata(fn func()) func()       { return m.register(m.metaFns, fn) }
func (m *fakeMedia) OnDurationChange(fn func()) func() { return m.register(m.durFns, fn) }

func (m *fakeMedia) Play() error {
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *fakeMedia) register(fns map[int]func(), fn func()) func() {
	m.nextID++
	id := m.nextID
	fns[id] = fn
	return func() { delete(fns, id) }
}

func (m *fakeMedia) listeners() int { return len(m.metaFns) + len(m.durFns) }

func (m *fakeMedia) loadMetadata() {
	m.state = HaveMetadata
	for _, fn := range m.metaFns {
		fn()
	}
}

func (m *fakeMedia) changeDuration(d float64) {
	m.duration = d
	for _, fn := range m.durFns {
		fn()
	}
}

// fakeImage is an image resource that loads on demand.
type fakeImage struct {
	ready bool
	img   image.Image
	fns   map[int]func()
	next  int
}

func newFakeImage(img image.Image, ready bool) *fakeImage {
	return &fakeImage{img: img, ready: ready, fns: map[int]func(){}}
}

func (f *fakeImage) Ready() bool { return f.ready }

func (f *fakeImage) Size() (int, int) {
	b := f.img.Bounds()
	return b.Dx(), b.Dy()
}

func (f *fakeImage) Image() image.Image { return f.img }

func (f *fakeImage) OnLoad(fn func()) func() {
	f.next++
	id := f.next
	f.fns[id] = fn
	return func() { delete(f.fns, id) }
}

func (f *fakeImage) load() {
	f.ready = true
	fns := f.fns
	f.fns = map[int]func(){}
	for _, fn := range fns {
		fn()
	}
}

// recordingSurface draws through to a raster surface and records text calls.
type recordingSurface struct {
	*raster.Surface
	texts []recordedText
}

type recordedText struct {
	text  string
	x, y  float64
	style paint.TextStyle
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{Surface: raster.New(0, 0)}
}

func (s *recordingSurface) FillText(text string, x, y float64, style paint.TextStyle) {
	s.texts = append(s.texts, recordedText{text: text, x: x, y: y, style: style})
	s.Surface.FillText(text, x, y, style)
}

// recordingEffect records the times it is applied at.
type recordingEffect struct {
	name    string
	enabled bool
	target  *Visual
	err     error
	log     *[]string
}

func newRecordingEffect(name string, log *[]string) *recordingEffect {
	return &recordingEffect{name: name, enabled: true, log: log}
}

func (e *recordingEffect) Enabled() bool { return e.enabled }

func (e *recordingEffect) Attach(target *Visual) error {
	if e.target != nil && e.target != target {
		return ErrEffectAttached
	}
	e.target = target
	return nil
}

func (e *recordingEffect) Detach() { e.target = nil }

func (e *recordingEffect) Apply(target *Visual, t float64) error {
	if e.log != nil {
		*e.log = append(*e.log, fmt.Sprintf("%s@%g", e.name, t))
	}
	return e.err
}

// collect subscribes to prefix on target and returns the received events.
func collect(t *testing.T, target event.Target, prefix string) *[]event.Event {
	t.Helper()
	var got []event.Event
	cancel := event.Subscribe(target, prefix, func(ev event.Event) { got = append(got, ev) })
	t.Cleanup(cancel)
	return &got
}

func ptr[T any](v T) *T { return &v }
