package audio

import (
	"github.com/khanaslam439/vidar/event"
	"github.com/khanaslam439/vidar/layer"
	"github.com/khanaslam439/vidar/val"
)

type stubMovie struct {
	bus   event.Bus
	graph *Graph
}

func (m *stubMovie) Events() *event.Bus         { return &m.bus }
func (m *stubMovie) CurrentTime() float64       { return 0 }
func (m *stubMovie) Width() val.Value[float64]  { return val.Const(0.0) }
func (m *stubMovie) Height() val.Value[float64] { return val.Const(0.0) }
func (m *stubMovie) AudioGraph() layer.AudioGraph {
	return m.graph
}
