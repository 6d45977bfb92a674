// Package layout positions graph nodes in 2D space with a force-directed simulation.
package layout

import (
	"fmt"

	"taskflow/graph"
)

// LayoutEngine positions nodes in 2D space.
type LayoutEngine interface {
	// Layout takes nodes and their edges and returns settled positions.
	// The input nodes are not modified.
	Layout(nodes []graph.Node, edges []graph.Edge) (Positions, error)

	// Name returns the name of this layout algorithm.
	Name() string
}

// NodePosition is a node's simulation-space center.
type NodePosition struct {
	ID   string
	X, Y float64
}

// EdgeSegment carries an edge with its endpoints' current positions so a
// renderer can draw it without looking anything up.
type EdgeSegment struct {
	Source, Target string
	X1, Y1, X2, Y2 float64
}

// Positions is the per-tick output of a simulation.
type Positions struct {
	Nodes []NodePosition
	Edges []EdgeSegment
}

// Node returns the position of the node with the given ID.
func (p Positions) Node(id string) (NodePosition, bool) {
	for _, n := range p.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodePosition{}, false
}

// ForceLayout is a LayoutEngine that runs a simulation to rest.
type ForceLayout struct {
	opts     Options
	maxTicks int
}

// NewForceLayout creates a ForceLayout with the given options.
func NewForceLayout(opts Options) *ForceLayout {
	return &ForceLayout{opts: opts, maxTicks: 1000}
}

// Name implements LayoutEngine.
func (f *ForceLayout) Name() string {
	return "force"
}

// Layout implements LayoutEngine.
func (f *ForceLayout) Layout(nodes []graph.Node, edges []graph.Edge) (Positions, error) {
	ids := make([]string, len(nodes))
	known := make(map[string]bool, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
		known[n.ID] = true
	}

	for _, e := range edges {
		if !known[e.Source] {
			return Positions{}, fmt.Errorf("invalid edge: node %q not found", e.Source)
		}
		if !known[e.Target] {
			return Positions{}, fmt.Errorf("invalid edge: node %q not found", e.Target)
		}
	}

	pos, _ := Settle(ids, edges, f.opts, f.maxTicks)
	return pos, nil
}

// Settle runs a fresh simulation synchronously until it cools below AlphaMin
// or maxTicks is reached. It returns the final positions and the tick count.
func Settle(ids []string, edges []graph.Edge, opts Options, maxTicks int) (Positions, int) {
	sim := NewSimulation(ids, edges, opts)
	ticks := 0
	for ticks < maxTicks && !sim.Idle() {
		sim.Tick()
		ticks++
	}
	return sim.Positions(), ticks
}
