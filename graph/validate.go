package graph

import (
	"errors"
	"fmt"
)

var (
	ErrAsymmetricEdge = errors.New("edge recorded on one endpoint only")
	ErrSelfLoop       = errors.New("node points to itself")
	ErrDuplicateEdge  = errors.New("edge recorded more than once")
	ErrDanglingEdge   = errors.New("edge references a missing node")
	ErrDuplicateID    = errors.New("node ID used more than once")
)

// Validate checks the bookkeeping invariants. A non-nil result means a bug in
// the mutation path, not a bad request.
func (g *Graph) Validate() error {
	if len(g.index) != len(g.nodes) {
		return fmt.Errorf("%w: index has %d entries for %d nodes", ErrDuplicateID, len(g.index), len(g.nodes))
	}

	for i, n := range g.nodes {
		if g.index[n.ID] != i {
			return fmt.Errorf("%w: %q", ErrDuplicateID, n.ID)
		}

		seen := make(map[string]bool, len(n.Outputs))
		for _, out := range n.Outputs {
			if out == n.ID {
				return fmt.Errorf("%w: %q", ErrSelfLoop, n.ID)
			}
			if seen[out] {
				return fmt.Errorf("%w: %q -> %q", ErrDuplicateEdge, n.ID, out)
			}
			seen[out] = true

			j, ok := g.index[out]
			if !ok {
				return fmt.Errorf("%w: %q -> %q", ErrDanglingEdge, n.ID, out)
			}
			if !g.nodes[j].HasInput(n.ID) {
				return fmt.Errorf("%w: %q -> %q missing from inputs", ErrAsymmetricEdge, n.ID, out)
			}
		}

		seen = make(map[string]bool, len(n.Inputs))
		for _, in := range n.Inputs {
			if in == n.ID {
				return fmt.Errorf("%w: %q", ErrSelfLoop, n.ID)
			}
			if seen[in] {
				return fmt.Errorf("%w: %q -> %q", ErrDuplicateEdge, in, n.ID)
			}
			seen[in] = true

			j, ok := g.index[in]
			if !ok {
				return fmt.Errorf("%w: %q -> %q", ErrDanglingEdge, in, n.ID)
			}
			if !g.nodes[j].HasOutput(n.ID) {
				return fmt.Errorf("%w: %q -> %q missing from outputs", ErrAsymmetricEdge, in, n.ID)
			}
		}
	}
	return nil
}

// MustValidate panics if Validate fails.
func (g *Graph) MustValidate() {
	if err := g.Validate(); err != nil {
		panic(err)
	}
}
