// Package editor is the engine the UI shell talks to. It owns the graph, the
// running simulation and the viewport, and turns pointer gestures into graph
// edits. All methods must be called from the goroutine that drives the
// scheduler.
package editor

import (
	"gonum.org/v1/gonum/spatial/r2"

	"taskflow/frame"
	"taskflow/geometry"
	"taskflow/graph"
	"taskflow/layout"
	"taskflow/logging"
	"taskflow/metrics"
	"taskflow/viewport"
)

// Options configures an Editor.
type Options struct {
	Layout     layout.Options
	Viewport   viewport.Options
	NodeWidth  float64 // Hit-test size of a node in simulation units
	NodeHeight float64
	Debug      bool // Panic on graph invariant violations after every edit
	Logger     logging.Logger
}

// DefaultOptions returns options for an 800x600 board with 100x50 tasks.
func DefaultOptions() Options {
	return Options{
		Layout:     layout.DefaultOptions(),
		Viewport:   viewport.DefaultOptions(),
		NodeWidth:  100,
		NodeHeight: 50,
	}
}

// pin is the position a dragged node is held at, in simulation space.
type pin struct {
	id   string
	x, y float64
}

// Editor couples the graph model, the force simulation and the viewport.
type Editor struct {
	opts  Options
	log   logging.Logger
	graph *graph.Graph
	sched frame.Scheduler
	sim   *layout.Simulation
	view  *viewport.Transform
	last  layout.Positions // Positions from the most recent tick or rebuild

	// Interaction state (minimal!)
	connectSource string // Node selected for click-to-connect ("" for none)
	dragSource    string // Node picked up for drag-to-connect ("" for none)
	held          *pin   // Active drag pin, re-applied across rebuilds

	subscribers map[int]func(Snapshot)
	nextSub     int
	closed      bool
}

// New creates an editor over g and starts its simulation on sched. The editor
// takes ownership of g.
func New(g *graph.Graph, sched frame.Scheduler, opts Options) *Editor {
	if g == nil {
		g = graph.New()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	e := &Editor{
		opts:        opts,
		log:         log.With(logging.F("component", "editor")),
		graph:       g,
		sched:       sched,
		view:        viewport.New(opts.Viewport),
		subscribers: make(map[int]func(Snapshot)),
	}
	e.rebuild("init")
	return e
}

// rebuild tears the simulation down and starts a fresh one on the current
// graph. The old tick registration is cancelled before the new one exists,
// so the simulation never sees a half-edited graph.
func (e *Editor) rebuild(cause string) {
	if e.closed {
		return
	}
	if e.opts.Debug {
		e.graph.MustValidate()
	}

	prev := e.sim
	if prev != nil {
		prev.Stop()
	}

	sim := layout.NewSimulation(e.graph.IDs(), e.graph.Edges(), e.opts.Layout)
	if e.opts.Layout.CarryOver {
		sim.Inherit(prev)
	}
	if e.held != nil && sim.Pin(e.held.id, e.held.x, e.held.y) {
		sim.SetAlphaTarget(e.opts.Layout.DragAlphaTarget)
	}
	sim.OnTick(e.handleTick)

	e.sim = sim
	e.last = sim.Positions()

	metrics.SimulationRebuilds.WithLabelValues(cause).Inc()
	metrics.GraphNodes.Set(float64(e.graph.Len()))
	metrics.GraphEdges.Set(float64(len(e.last.Edges)))

	sim.Start(e.sched)
}

func (e *Editor) handleTick(p layout.Positions) {
	e.last = p
	metrics.SimulationTicks.Inc()
	metrics.SimulationAlpha.Set(e.sim.Alpha())

	if len(e.subscribers) == 0 {
		return
	}
	snap := e.Snapshot()
	for i := 0; i < e.nextSub; i++ {
		if fn, ok := e.subscribers[i]; ok {
			fn(snap)
		}
	}
}

func (e *Editor) rejected(op, reason string, fields ...logging.Field) {
	metrics.EditsRejected.WithLabelValues(op, reason).Inc()
	e.log.Info(op+" ignored", append(fields, logging.F("reason", reason))...)
}

// OnFrame registers fn to receive a snapshot after every simulation tick.
// The returned func unregisters it.
func (e *Editor) OnFrame(fn func(Snapshot)) func() {
	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn
	return func() { delete(e.subscribers, id) }
}

// Close stops the simulation. No tick fires afterwards; later edits only
// change the graph.
func (e *Editor) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.sim.Stop()
	e.log.Info("closed")
}

// AddNode appends a task and returns its ID.
func (e *Editor) AddNode(label, color string) string {
	id := e.graph.AddNode(label, color)
	e.log.Info("node added", logging.F("id", id))
	e.rebuild("structure")
	return id
}

// RemoveNode deletes a task and every edge touching it. Unknown IDs are ignored.
func (e *Editor) RemoveNode(id string) {
	if !e.graph.RemoveNode(id) {
		e.rejected("remove", graph.RejectedUnknown.String(), logging.F("id", id))
		return
	}
	if e.connectSource == id {
		e.connectSource = ""
	}
	if e.dragSource == id {
		e.dragSource = ""
	}
	if e.held != nil && e.held.id == id {
		e.held = nil
	}
	e.log.Info("node removed", logging.F("id", id))
	e.rebuild("structure")
}

// RemoveSelected deletes the node selected for connecting and clears the
// selection. It does nothing when nothing is selected.
func (e *Editor) RemoveSelected() {
	if e.connectSource == "" {
		return
	}
	e.RemoveNode(e.connectSource)
}

// AddEdge connects source to target. Invalid requests are ignored.
func (e *Editor) AddEdge(source, target string) {
	if e.connect("connect", source, target) {
		e.rebuild("structure")
	}
}

// connect is the one place edges are created, whichever gesture asked.
func (e *Editor) connect(op, source, target string) bool {
	outcome := e.graph.Connect(source, target)
	if outcome != graph.Added {
		e.rejected(op, outcome.String(), logging.F("source", source), logging.F("target", target))
		return false
	}
	e.log.Info("edge added", logging.F("source", source), logging.F("target", target), logging.F("via", op))
	return true
}

// Select handles a click on a node. The first click picks a connect source;
// a click on a different node connects source to it and clears the
// selection. Clicking the source again keeps it selected.
func (e *Editor) Select(id string) {
	if !e.graph.Has(id) {
		e.rejected("select", graph.RejectedUnknown.String(), logging.F("id", id))
		return
	}

	switch e.connectSource {
	case "":
		e.connectSource = id
		e.rebuild("selection")
	case id:
		// Re-selecting the pending source leaves it pending.
	default:
		source := e.connectSource
		e.connectSource = ""
		if e.connect("select", source, id) {
			e.rebuild("structure")
		} else {
			e.rebuild("selection")
		}
	}
}

// DragStart picks a node up: it becomes the drag-to-connect source, is
// pinned where it stands, and the simulation is reheated so the rest of the
// graph reacts while it moves.
func (e *Editor) DragStart(id string) {
	p, ok := e.sim.Position(id)
	if !ok {
		e.rejected("drag", graph.RejectedUnknown.String(), logging.F("id", id))
		return
	}
	e.dragSource = id
	e.held = &pin{id: id, x: p.X, y: p.Y}
	e.sim.Pin(id, p.X, p.Y)
	e.sim.SetAlphaTarget(e.opts.Layout.DragAlphaTarget)
	e.sim.Restart()
}

// DragMove moves the held node under the pointer at screen (sx, sy).
func (e *Editor) DragMove(id string, sx, sy float64) {
	if e.held == nil || e.held.id != id {
		return
	}
	p := e.view.Invert(r2.Vec{X: sx, Y: sy})
	e.held.x, e.held.y = p.X, p.Y
	e.sim.Pin(id, p.X, p.Y)
	e.sim.Restart()
}

// DragEnd releases a held node back to the simulation and lets it cool.
func (e *Editor) DragEnd(id string) {
	if e.held != nil && e.held.id == id {
		e.held = nil
	}
	e.sim.Unpin(id)
	if e.held == nil {
		e.sim.SetAlphaTarget(0)
	}
	if e.dragSource == id {
		e.dragSource = ""
	}
}

// Drop handles a pointer release over a node. If a different node was
// being dragged, the dragged node is connected to it. The drag source is
// cleared either way.
func (e *Editor) Drop(id string) {
	source := e.dragSource
	e.dragSource = ""
	if source == "" || source == id {
		return
	}
	if e.connect("drop", source, id) {
		e.rebuild("structure")
	}
}

// ZoomIn scales the view up one step about its center.
func (e *Editor) ZoomIn() { e.view.ZoomIn() }

// ZoomOut scales the view down one step about its center.
func (e *Editor) ZoomOut() { e.view.ZoomOut() }

// ZoomAt scales the view by k keeping screen point (sx, sy) fixed.
func (e *Editor) ZoomAt(k, sx, sy float64) { e.view.ZoomAt(k, sx, sy) }

// Pan translates the view by (dx, dy) screen units.
func (e *Editor) Pan(dx, dy float64) { e.view.Pan(dx, dy) }

// NodeAt returns the topmost node whose box contains screen point (sx, sy).
func (e *Editor) NodeAt(sx, sy float64) (string, bool) {
	return e.nodeAt(sx, sy, "")
}

// DropTarget is NodeAt ignoring the node being dragged, which sits under
// the pointer for the whole gesture.
func (e *Editor) DropTarget(sx, sy float64) (string, bool) {
	skip := ""
	if e.held != nil {
		skip = e.held.id
	}
	return e.nodeAt(sx, sy, skip)
}

func (e *Editor) nodeAt(sx, sy float64, skip string) (string, bool) {
	p := e.view.Invert(r2.Vec{X: sx, Y: sy})
	for i := len(e.last.Nodes) - 1; i >= 0; i-- {
		n := e.last.Nodes[i]
		if n.ID == skip {
			continue
		}
		box := geometry.Rect{
			Center: r2.Vec{X: n.X, Y: n.Y},
			Width:  e.opts.NodeWidth,
			Height: e.opts.NodeHeight,
		}
		if box.Contains(p) {
			return n.ID, true
		}
	}
	return "", false
}
