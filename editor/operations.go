package editor

import (
	"gonum.org/v1/gonum/spatial/r2"

	"taskflow/graph"
	"taskflow/layout"
	"taskflow/viewport"
)

// NodeView is a node as a renderer needs it: display attributes plus the
// current simulation-space center.
type NodeView struct {
	ID       string
	Label    string
	Color    string
	X, Y     float64
	Selected bool // Pending connect source
	Dragging bool // Currently held by a drag
}

// Snapshot is a read-only copy of everything a renderer draws.
type Snapshot struct {
	Nodes    []NodeView
	Edges    []layout.EdgeSegment
	Viewport viewport.State
	State    State
	Alpha    float64
	Running  bool
}

// Node returns the view of the node with the given ID.
func (s Snapshot) Node(id string) (NodeView, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeView{}, false
}

// Snapshot returns the current layout joined with display attributes.
func (e *Editor) Snapshot() Snapshot {
	snap := Snapshot{
		Nodes:    make([]NodeView, 0, len(e.last.Nodes)),
		Edges:    append([]layout.EdgeSegment(nil), e.last.Edges...),
		Viewport: e.view.State(),
		State:    e.State(),
		Alpha:    e.sim.Alpha(),
		Running:  e.sim.Running(),
	}
	for _, p := range e.last.Nodes {
		n, ok := e.graph.Node(p.ID)
		if !ok {
			continue
		}
		snap.Nodes = append(snap.Nodes, NodeView{
			ID:       n.ID,
			Label:    n.Label,
			Color:    n.Color,
			X:        p.X,
			Y:        p.Y,
			Selected: n.ID == e.connectSource,
			Dragging: e.held != nil && e.held.id == n.ID,
		})
	}
	return snap
}

// Graph returns a copy of the current graph.
func (e *Editor) Graph() *graph.Graph {
	return e.graph.Clone()
}

// NodeCount returns the number of nodes.
func (e *Editor) NodeCount() int {
	return e.graph.Len()
}

// EdgeCount returns the number of edges.
func (e *Editor) EdgeCount() int {
	return len(e.graph.Edges())
}

// Position returns a node's current simulation-space position.
func (e *Editor) Position(id string) (r2.Vec, bool) {
	return e.sim.Position(id)
}

// Pinned reports whether a node is currently held in place.
func (e *Editor) Pinned(id string) bool {
	return e.sim.Pinned(id)
}

// Running reports whether the simulation is scheduled to tick.
func (e *Editor) Running() bool {
	return e.sim.Running()
}

// Alpha returns the simulation temperature.
func (e *Editor) Alpha() float64 {
	return e.sim.Alpha()
}

// Viewport returns the current pan/zoom state.
func (e *Editor) Viewport() viewport.State {
	return e.view.State()
}

// Project maps a simulation-space point to screen space.
func (e *Editor) Project(x, y float64) (float64, float64) {
	p := e.view.Apply(r2.Vec{X: x, Y: y})
	return p.X, p.Y
}

// NodeSize returns the configured node box size in simulation units.
func (e *Editor) NodeSize() (w, h float64) {
	return e.opts.NodeWidth, e.opts.NodeHeight
}
