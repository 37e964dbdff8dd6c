// Package audio is an in-memory audio routing graph. It tracks which media
// sources feed which destinations so a composition can redirect its audio,
// for example from the main output to a recorder.
//
// A Graph is not safe for concurrent use.
package audio

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/khanaslam439/vidar/layer"
)

var (
	// ErrUnknownNode is returned for nodes that do not belong to the graph.
	ErrUnknownNode = errors.New("audio: unknown node")

	// ErrNotConnected is returned when disconnecting an absent edge.
	ErrNotConnected = errors.New("audio: nodes not connected")

	// ErrInvalidConnection is returned for self-loops and edges into sources.
	ErrInvalidConnection = errors.New("audio: invalid connection")
)

// Kind distinguishes graph nodes.
type Kind int

const (
	KindMain Kind = iota
	KindSource
	KindDestination
)

func (k Kind) String() string {
	switch k {
	case KindMain:
		return "main"
	case KindSource:
		return "source"
	case KindDestination:
		return "destination"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one vertex of a Graph.
type Node struct {
	id       string
	name     string
	kind     Kind
	resource layer.MediaResource
}

// AudioNodeID implements layer.AudioNode.
func (n *Node) AudioNodeID() string { return n.id }

// Name returns the human-readable label.
func (n *Node) Name() string { return n.name }

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Resource returns the media feeding a source node, or nil.
func (n *Node) Resource() layer.MediaResource { return n.resource }

func (n *Node) String() string { return n.kind.String() + ":" + n.name }

// Graph implements layer.AudioGraph.
type Graph struct {
	main    *Node
	nodes   map[string]*Node
	sources map[layer.MediaResource]*Node
	edges   map[string]map[string]bool
}

// NewGraph returns a graph containing only its main output.
func NewGraph() *Graph {
	g := &Graph{
		nodes:   make(map[string]*Node),
		sources: make(map[layer.MediaResource]*Node),
		edges:   make(map[string]map[string]bool),
	}
	g.main = g.add("main", KindMain, nil)
	return g
}

func (g *Graph) add(name string, kind Kind, resource layer.MediaResource) *Node {
	n := &Node{id: uuid.NewString(), name: name, kind: kind, resource: resource}
	g.nodes[n.id] = n
	return n
}

// MainOutput returns the node representing the composition's speakers.
func (g *Graph) MainOutput() layer.AudioNode { return g.main }

// NewNode adds a destination node, such as a recorder or an effect bus.
func (g *Graph) NewNode(name string) *Node {
	return g.add(name, KindDestination, nil)
}

// CreateSource returns the source node for m. A resource has at most one
// source node; asking again returns the same node.
func (g *Graph) CreateSource(m layer.MediaResource) (layer.AudioNode, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil media resource", ErrUnknownNode)
	}
	if n, ok := g.sources[m]; ok {
		return n, nil
	}
	n := g.add(fmt.Sprintf("source%d", len(g.sources)+1), KindSource, m)
	g.sources[m] = n
	return n, nil
}

// Connect routes src into dst.
func (g *Graph) Connect(src, dst layer.AudioNode) error {
	s, d, err := g.pair(src, dst)
	if err != nil {
		return err
	}
	if s == d {
		return fmt.Errorf("%w: %v to itself", ErrInvalidConnection, s)
	}
	if d.kind == KindSource {
		return fmt.Errorf("%w: %v cannot receive audio", ErrInvalidConnection, d)
	}

	if g.edges[s.id] == nil {
		g.edges[s.id] = make(map[string]bool)
	}
	g.edges[s.id][d.id] = true
	return nil
}

// Disconnect removes the route from src to dst.
func (g *Graph) Disconnect(src, dst layer.AudioNode) error {
	s, d, err := g.pair(src, dst)
	if err != nil {
		return err
	}
	if !g.edges[s.id][d.id] {
		return fmt.Errorf("%w: %v -> %v", ErrNotConnected, s, d)
	}
	delete(g.edges[s.id], d.id)
	if len(g.edges[s.id]) == 0 {
		delete(g.edges, s.id)
	}
	return nil
}

// Connected reports whether src feeds dst directly.
func (g *Graph) Connected(src, dst layer.AudioNode) bool {
	if src == nil || dst == nil {
		return false
	}
	return g.edges[src.AudioNodeID()][dst.AudioNodeID()]
}

// Sources returns the nodes feeding dst directly, ordered by name.
func (g *Graph) Sources(dst layer.AudioNode) []*Node {
	if dst == nil {
		return nil
	}
	var out []*Node
	for srcID, dsts := range g.edges {
		if dsts[dst.AudioNodeID()] {
			out = append(out, g.nodes[srcID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Destinations returns the nodes src feeds directly, ordered by name.
func (g *Graph) Destinations(src layer.AudioNode) []*Node {
	if src == nil {
		return nil
	}
	var out []*Node
	for dstID := range g.edges[src.AudioNodeID()] {
		out = append(out, g.nodes[dstID])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (g *Graph) pair(src, dst layer.AudioNode) (*Node, *Node, error) {
	s, err := g.lookup(src)
	if err != nil {
		return nil, nil, err
	}
	d, err := g.lookup(dst)
	if err != nil {
		return nil, nil, err
	}
	return s, d, nil
}

func (g *Graph) lookup(n layer.AudioNode) (*Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil node", ErrUnknownNode)
	}
	node, ok := g.nodes[n.AudioNodeID()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, n.AudioNodeID())
	}
	return node, nil
}
