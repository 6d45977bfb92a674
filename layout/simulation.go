package layout

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"taskflow/frame"
	"taskflow/graph"
)

// body is the kinematic state of one node. fx/fy are NaN while the axis is free.
type body struct {
	id     string
	pos    r2.Vec
	vel    r2.Vec
	fx, fy float64
}

func (b *body) pinnedX() bool { return !math.IsNaN(b.fx) }
func (b *body) pinnedY() bool { return !math.IsNaN(b.fy) }

// Simulation integrates link, charge and centering forces over a fixed set of
// nodes and edges. It owns the only mutable copy of node positions; callers
// read them through Positions. A Simulation is not safe for concurrent use.
type Simulation struct {
	opts   Options
	bodies []*body
	index  map[string]int // Node ID -> position in bodies
	links  []link
	edges  []graph.Edge

	alpha       float64
	alphaTarget float64
	rng         *rand.Rand

	sched   frame.Scheduler
	cancel  func()
	stopped bool
	onTick  func(Positions)
	ticks   int
}

// NewSimulation builds a simulation for the given nodes and edges. Edges that
// reference unknown IDs or loop on one node are ignored.
func NewSimulation(ids []string, edges []graph.Edge, opts Options) *Simulation {
	s := &Simulation{
		opts:  opts,
		index: make(map[string]int, len(ids)),
		alpha: 1,
		rng:   rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
	}

	// Phyllotaxis seeding spreads nodes evenly without overlap.
	initialAngle := math.Pi * (3 - math.Sqrt(5))
	for i, id := range ids {
		if _, dup := s.index[id]; dup {
			continue
		}
		r := opts.InitialRadius * math.Sqrt(0.5+float64(i))
		a := float64(i) * initialAngle
		s.index[id] = len(s.bodies)
		s.bodies = append(s.bodies, &body{
			id:  id,
			pos: r2.Vec{X: r * math.Cos(a), Y: r * math.Sin(a)},
			fx:  math.NaN(),
			fy:  math.NaN(),
		})
	}

	for _, e := range edges {
		si, ok := s.index[e.Source]
		if !ok {
			continue
		}
		ti, ok := s.index[e.Target]
		if !ok || si == ti {
			continue
		}
		s.edges = append(s.edges, e)
		s.links = append(s.links, link{source: si, target: ti})
	}
	initLinks(s.links, len(s.bodies))

	return s
}

// Inherit copies position and velocity from prev for every node both
// simulations share. Pins are not carried over.
func (s *Simulation) Inherit(prev *Simulation) {
	if prev == nil {
		return
	}
	for _, b := range s.bodies {
		if i, ok := prev.index[b.id]; ok {
			old := prev.bodies[i]
			b.pos = old.pos
			b.vel = old.vel
		}
	}
}

// Tick advances the simulation by one step.
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.opts.AlphaDecay

	s.applyLinks()
	s.applyCharge()
	s.applyCenter()

	keep := 1 - s.opts.VelocityDecay
	for _, b := range s.bodies {
		if b.pinnedX() {
			b.pos.X = b.fx
			b.vel.X = 0
		} else {
			b.vel.X *= keep
			b.pos.X += b.vel.X
		}
		if b.pinnedY() {
			b.pos.Y = b.fy
			b.vel.Y = 0
		} else {
			b.vel.Y *= keep
			b.pos.Y += b.vel.Y
		}
	}
	s.ticks++
}

// Ticks returns how many steps have run.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// SetAlpha sets the current temperature.
func (s *Simulation) SetAlpha(a float64) {
	s.alpha = a
}

// AlphaTarget returns the temperature alpha decays toward.
func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// SetAlphaTarget retargets the temperature. Call Restart to resume ticking
// if the simulation had already cooled.
func (s *Simulation) SetAlphaTarget(t float64) {
	s.alphaTarget = t
}

// Idle reports whether the simulation has cooled below AlphaMin.
func (s *Simulation) Idle() bool {
	return s.alpha < s.opts.AlphaMin
}

// OnTick sets the callback invoked after every scheduled tick.
func (s *Simulation) OnTick(fn func(Positions)) {
	s.onTick = fn
}

// Start attaches the simulation to a scheduler and begins ticking.
func (s *Simulation) Start(sched frame.Scheduler) {
	if s.stopped {
		return
	}
	s.sched = sched
	s.Restart()
}

// Restart resumes scheduled ticking after the simulation went idle. It does
// nothing before Start or after Stop.
func (s *Simulation) Restart() {
	if s.stopped || s.sched == nil || s.cancel != nil {
		return
	}
	s.cancel = s.sched.Every(s.step)
}

// Running reports whether a tick is currently scheduled.
func (s *Simulation) Running() bool {
	return s.cancel != nil
}

// Stop cancels scheduled ticking for good. Restart and Start are no-ops
// afterwards; Tick can still be called directly.
func (s *Simulation) Stop() {
	s.halt()
	s.stopped = true
	s.sched = nil
}

func (s *Simulation) halt() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Simulation) step() {
	s.Tick()
	if s.onTick != nil {
		s.onTick(s.Positions())
	}
	if s.Idle() {
		s.halt()
	}
}

// Pin fixes a node at (x, y). The node still pushes and pulls its neighbors.
func (s *Simulation) Pin(id string, x, y float64) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.bodies[i].fx = x
	s.bodies[i].fy = y
	return true
}

// Unpin releases a pinned node back to free integration.
func (s *Simulation) Unpin(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.bodies[i].fx = math.NaN()
	s.bodies[i].fy = math.NaN()
	return true
}

// Pinned reports whether a node is fixed on either axis.
func (s *Simulation) Pinned(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	return s.bodies[i].pinnedX() || s.bodies[i].pinnedY()
}

// Position returns a node's current position.
func (s *Simulation) Position(id string) (r2.Vec, bool) {
	i, ok := s.index[id]
	if !ok {
		return r2.Vec{}, false
	}
	return s.bodies[i].pos, true
}

// Velocity returns a node's current velocity.
func (s *Simulation) Velocity(id string) (r2.Vec, bool) {
	i, ok := s.index[id]
	if !ok {
		return r2.Vec{}, false
	}
	return s.bodies[i].vel, true
}

// Positions snapshots node and edge positions in input order.
func (s *Simulation) Positions() Positions {
	p := Positions{
		Nodes: make([]NodePosition, len(s.bodies)),
		Edges: make([]EdgeSegment, len(s.links)),
	}
	for i, b := range s.bodies {
		p.Nodes[i] = NodePosition{ID: b.id, X: b.pos.X, Y: b.pos.Y}
	}
	for i, l := range s.links {
		src, dst := s.bodies[l.source].pos, s.bodies[l.target].pos
		p.Edges[i] = EdgeSegment{
			Source: s.edges[i].Source,
			Target: s.edges[i].Target,
			X1:     src.X,
			Y1:     src.Y,
			X2:     dst.X,
			Y2:     dst.Y,
		}
	}
	return p
}

// jiggle returns a tiny random offset used to separate coincident nodes.
func (s *Simulation) jiggle() float64 {
	return (s.rng.Float64() - 0.5) * 1e-6
}
