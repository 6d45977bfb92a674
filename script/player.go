package script

import (
	"taskflow/logging"
)

// Target is the set of engine commands a script can issue. *editor.Editor
// satisfies it.
type Target interface {
	AddNode(label, color string) string
	RemoveNode(id string)
	RemoveSelected()
	AddEdge(source, target string)
	Select(id string)
	DragStart(id string)
	DragMove(id string, sx, sy float64)
	DragEnd(id string)
	Drop(id string)
	ZoomIn()
	ZoomOut()
	ZoomAt(k, sx, sy float64)
	Pan(dx, dy float64)
}

// Framer advances the animation clock. *frame.Loop satisfies it.
type Framer interface {
	Frame()
}

// Player applies a script to a target one step at a time.
type Player struct {
	script  *Script
	target  Target
	frames  Framer
	log     logging.Logger
	aliases map[string]string
	next    int
}

// NewPlayer creates a player. frames may be nil, in which case frames steps
// are skipped.
func NewPlayer(s *Script, target Target, frames Framer, log logging.Logger) *Player {
	if log == nil {
		log = logging.Nop()
	}
	return &Player{
		script:  s,
		target:  target,
		frames:  frames,
		log:     log.With(logging.F("component", "script"), logging.F("script", s.Name)),
		aliases: make(map[string]string),
	}
}

// Done reports whether every step has been applied.
func (p *Player) Done() bool {
	return p.next >= len(p.script.Steps)
}

// Next applies the next step and reports whether one was applied.
func (p *Player) Next() bool {
	if p.Done() {
		return false
	}
	p.apply(p.script.Steps[p.next])
	p.next++
	return true
}

// Play applies every remaining step.
func (p *Player) Play() {
	for p.Next() {
	}
	p.log.Info("script finished", logging.F("steps", len(p.script.Steps)))
}

// Resolve maps an alias bound by an add step to the node ID it produced.
// Unbound names are returned unchanged.
func (p *Player) Resolve(name string) string {
	if id, ok := p.aliases[name]; ok {
		return id
	}
	return name
}

func (p *Player) apply(st Step) {
	id := p.Resolve(st.ID)
	switch st.Op {
	case OpAdd:
		got := p.target.AddNode(st.Label, st.Color)
		if st.As != "" {
			p.aliases[st.As] = got
		}
	case OpRemove:
		p.target.RemoveNode(id)
	case OpRemoveSelected:
		p.target.RemoveSelected()
	case OpConnect:
		p.target.AddEdge(id, p.Resolve(st.Target))
	case OpSelect:
		p.target.Select(id)
	case OpDragStart:
		p.target.DragStart(id)
	case OpDragMove:
		p.target.DragMove(id, st.X, st.Y)
	case OpDragEnd:
		p.target.DragEnd(id)
	case OpDrop:
		p.target.Drop(id)
	case OpZoomIn:
		p.target.ZoomIn()
	case OpZoomOut:
		p.target.ZoomOut()
	case OpZoomAt:
		p.target.ZoomAt(st.Factor, st.X, st.Y)
	case OpPan:
		p.target.Pan(st.X, st.Y)
	case OpFrames:
		if p.frames == nil {
			return
		}
		for i := 0; i < st.Frames; i++ {
			p.frames.Frame()
		}
	}
}
