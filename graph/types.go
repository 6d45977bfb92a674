// Package graph holds the task dependency graph edited by the taskflow engine.
package graph

// Node represents a task in the graph.
type Node struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Color   string   `json:"color,omitempty"` // Display only, never interpreted by layout
	Inputs  []string `json:"inputs"`          // IDs pointing to this node
	Outputs []string `json:"outputs"`         // IDs this node points to
}

// Edge is a directed dependency between two node IDs.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// clone returns a deep copy of the node.
func (n Node) clone() Node {
	c := n
	c.Inputs = append([]string(nil), n.Inputs...)
	c.Outputs = append([]string(nil), n.Outputs...)
	return c
}

// HasOutput reports whether the node points to id.
func (n Node) HasOutput(id string) bool {
	return contains(n.Outputs, id)
}

// HasInput reports whether id points to the node.
func (n Node) HasInput(id string) bool {
	return contains(n.Inputs, id)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
