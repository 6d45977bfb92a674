package graph

import "slices"

// Graph is an insertion-ordered set of nodes whose edges are stored on both
// endpoints. All edge mutation goes through AddEdge and RemoveNode so that
// Inputs and Outputs always mirror each other.
type Graph struct {
	nodes []Node
	index map[string]int // Node ID -> position in nodes
	ids   IDGenerator
}

// New creates an empty graph that names nodes with the Sequential strategy.
func New() *Graph {
	return NewWithIDs(Sequential{})
}

// NewWithIDs creates an empty graph using the given ID strategy.
func NewWithIDs(ids IDGenerator) *Graph {
	if ids == nil {
		ids = Sequential{}
	}
	return &Graph{
		index: make(map[string]int),
		ids:   ids,
	}
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i].clone(), true
}

// Nodes returns copies of all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.clone()
	}
	return out
}

// IDs returns node IDs in insertion order.
func (g *Graph) IDs() []string {
	out := make([]string, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.ID
	}
	return out
}

// Edges flattens every node's outputs into a fresh edge list. It is rebuilt
// on each call; graphs edited by hand stay small.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, n := range g.nodes {
		for _, out := range n.Outputs {
			edges = append(edges, Edge{Source: n.ID, Target: out})
		}
	}
	return edges
}

// AddNode appends a node with a fresh ID and returns that ID. An empty label
// defaults to the ID.
func (g *Graph) AddNode(label, color string) string {
	var id string
	for attempt := 0; ; attempt++ {
		id = g.ids.Next(len(g.nodes), attempt)
		if id != "" && !g.Has(id) {
			break
		}
	}
	if label == "" {
		label = id
	}
	g.insert(Node{ID: id, Label: label, Color: color})
	return id
}

// AddNodeWithID appends a node with a caller-chosen ID. It returns false and
// leaves the graph alone if the ID is empty or already taken.
func (g *Graph) AddNodeWithID(id, label, color string) bool {
	if id == "" || g.Has(id) {
		return false
	}
	g.insert(Node{ID: id, Label: label, Color: color})
	return true
}

func (g *Graph) insert(n Node) {
	n.Inputs = []string{}
	n.Outputs = []string{}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

// RemoveNode deletes a node and strips it from every other node's inputs and
// outputs. Unknown IDs are ignored. It reports whether anything was removed.
func (g *Graph) RemoveNode(id string) bool {
	i, ok := g.index[id]
	if !ok {
		return false
	}

	g.nodes = slices.Delete(g.nodes, i, i+1)
	for j := range g.nodes {
		g.nodes[j].Inputs = without(g.nodes[j].Inputs, id)
		g.nodes[j].Outputs = without(g.nodes[j].Outputs, id)
	}

	g.reindex()
	return true
}

func (g *Graph) reindex() {
	clear(g.index)
	for i, n := range g.nodes {
		g.index[n.ID] = i
	}
}

// AddEdge connects source to target. Self edges, unknown IDs and duplicates
// are silently ignored; the result reports whether the graph changed.
func (g *Graph) AddEdge(source, target string) bool {
	return g.Connect(source, target) == Added
}

// Connect is AddEdge with the outcome spelled out.
func (g *Graph) Connect(source, target string) Outcome {
	if source == target {
		return RejectedSelfLoop
	}
	si, ok := g.index[source]
	if !ok {
		return RejectedUnknown
	}
	ti, ok := g.index[target]
	if !ok {
		return RejectedUnknown
	}
	if g.nodes[si].HasOutput(target) {
		return RejectedDuplicate
	}

	g.nodes[si].Outputs = append(g.nodes[si].Outputs, target)
	g.nodes[ti].Inputs = append(g.nodes[ti].Inputs, source)
	return Added
}

// Clone creates a deep copy of the graph sharing the ID strategy.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	c := &Graph{
		nodes: g.Nodes(),
		index: make(map[string]int, len(g.index)),
		ids:   g.ids,
	}
	for k, v := range g.index {
		c.index[k] = v
	}
	return c
}

// Outcome describes the result of a Connect call.
type Outcome int

const (
	Added             Outcome = iota // Edge stored on both endpoints
	RejectedSelfLoop                 // Source and target are the same node
	RejectedUnknown                  // One of the endpoints does not exist
	RejectedDuplicate                // The ordered pair is already connected
)

// String returns the outcome name, used as a metric label.
func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case RejectedSelfLoop:
		return "self_loop"
	case RejectedUnknown:
		return "unknown_node"
	case RejectedDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}
