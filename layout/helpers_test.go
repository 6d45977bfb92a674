package layout

import (
	"fmt"
	"math"
	"testing"

	"taskflow/graph"
)

// TestValidator collects layout checks shared by the simulation tests.
type TestValidator struct {
	t *testing.T
}

// NewTestValidator creates a validator for the given test.
func NewTestValidator(t *testing.T) *TestValidator {
	return &TestValidator{t: t}
}

// ValidateSeparation ensures no two nodes are closer than minDist.
func (v *TestValidator) ValidateSeparation(p Positions, minDist float64) {
	v.t.Helper()
	for i := 0; i < len(p.Nodes); i++ {
		for j := i + 1; j < len(p.Nodes); j++ {
			a, b := p.Nodes[i], p.Nodes[j]
			if d := math.Hypot(a.X-b.X, a.Y-b.Y); d < minDist {
				v.t.Errorf("Nodes %s and %s too close: %.1f < %.1f", a.ID, b.ID, d, minDist)
			}
		}
	}
}

// ValidateCentered ensures the centroid sits on (cx, cy).
func (v *TestValidator) ValidateCentered(p Positions, cx, cy, eps float64) {
	v.t.Helper()
	var sx, sy float64
	for _, n := range p.Nodes {
		sx += n.X
		sy += n.Y
	}
	n := float64(len(p.Nodes))
	if math.Abs(sx/n-cx) > eps || math.Abs(sy/n-cy) > eps {
		v.t.Errorf("Centroid (%.2f, %.2f) not at (%.2f, %.2f)", sx/n, sy/n, cx, cy)
	}
}

// ValidateFinite ensures no coordinate blew up.
func (v *TestValidator) ValidateFinite(p Positions) {
	v.t.Helper()
	for _, n := range p.Nodes {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsInf(n.X, 0) || math.IsInf(n.Y, 0) {
			v.t.Errorf("Node %s has non-finite position (%v, %v)", n.ID, n.X, n.Y)
		}
	}
}

// GenerateLinearChain creates n0 -> n1 -> ... -> n(length-1).
func GenerateLinearChain(length int) ([]string, []graph.Edge) {
	ids := make([]string, length)
	var edges []graph.Edge
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
		if i > 0 {
			edges = append(edges, graph.Edge{Source: ids[i-1], Target: ids[i]})
		}
	}
	return ids, edges
}

// GenerateStarGraph creates a hub pointing at spokeCount spokes.
func GenerateStarGraph(spokeCount int) ([]string, []graph.Edge) {
	ids := []string{"hub"}
	var edges []graph.Edge
	for i := 0; i < spokeCount; i++ {
		id := fmt.Sprintf("spoke%d", i)
		ids = append(ids, id)
		edges = append(edges, graph.Edge{Source: "hub", Target: id})
	}
	return ids, edges
}

// GenerateCycle creates a directed ring.
func GenerateCycle(length int) ([]string, []graph.Edge) {
	ids, edges := GenerateLinearChain(length)
	if length > 1 {
		edges = append(edges, graph.Edge{Source: ids[length-1], Target: ids[0]})
	}
	return ids, edges
}
