// Package terminal runs the editor inside a tcell screen. It draws editor
// snapshots, translates mouse and key events into editor commands, and
// drives the frame loop from a ticker.
package terminal

import (
	"context"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"taskflow/editor"
	"taskflow/frame"
	"taskflow/logging"
)

// Options configures a Host.
type Options struct {
	FPS        int
	CellWidth  float64 // Screen units per terminal column
	CellHeight float64 // Screen units per terminal row
	PanStep    float64 // Screen units moved per arrow key
	ZoomStep   float64 // Wheel zoom factor
	Logger     logging.Logger
	NewColor   func() string // Color for tasks added from the keyboard
}

// DefaultOptions returns 30 fps with 8x16 cells.
func DefaultOptions() Options {
	return Options{
		FPS:        30,
		CellWidth:  8,
		CellHeight: 16,
		PanStep:    40,
		ZoomStep:   1.2,
		NewColor:   func() string { return colorful.FastHappyColor().Hex() },
	}
}

// press tracks a left-button gesture from press to release.
type press struct {
	node   string // Node under the pointer at press time, "" for empty space
	cx, cy int    // Last cell the pointer was seen in
	moved  bool
}

// Host owns the screen for the lifetime of Run. The screen must already be
// initialised; the caller finalises it.
type Host struct {
	screen tcell.Screen
	editor *editor.Editor
	loop   *frame.Loop
	opts   Options
	log    logging.Logger

	press  *press
	styles map[string]tcell.Style // Node style by color string
}

// New creates a host drawing ed on screen. loop must be the scheduler ed
// was created with.
func New(screen tcell.Screen, ed *editor.Editor, loop *frame.Loop, opts Options) *Host {
	defaults := DefaultOptions()
	if opts.FPS <= 0 {
		opts.FPS = defaults.FPS
	}
	if opts.CellWidth <= 0 || opts.CellHeight <= 0 {
		opts.CellWidth, opts.CellHeight = defaults.CellWidth, defaults.CellHeight
	}
	if opts.ZoomStep <= 1 {
		opts.ZoomStep = defaults.ZoomStep
	}
	if opts.NewColor == nil {
		opts.NewColor = defaults.NewColor
	}
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Host{
		screen: screen,
		editor: ed,
		loop:   loop,
		opts:   opts,
		log:    log.With(logging.F("component", "terminal")),
		styles: make(map[string]tcell.Style),
	}
}

// Run processes events and frames until the user quits or ctx is done.
// Every edit and every frame happens on the calling goroutine; a helper
// goroutine only forwards screen events.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	h.log.Info("terminal host started", logging.F("fps", h.opts.FPS))
	for {
		h.Draw()

		select {
		case <-ctx.Done():
			h.log.Info("terminal host cancelled")
			return nil
		case ev := <-events:
			if h.HandleEvent(ev) {
				h.log.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			h.loop.Frame()
		}
	}
}

// HandleEvent applies one screen event and reports whether it asks to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
	return false
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	step := h.opts.PanStep
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		h.editor.RemoveSelected()
	case tcell.KeyUp:
		h.editor.Pan(0, step)
	case tcell.KeyDown:
		h.editor.Pan(0, -step)
	case tcell.KeyLeft:
		h.editor.Pan(step, 0)
	case tcell.KeyRight:
		h.editor.Pan(-step, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'a':
			h.editor.AddNode("", h.opts.NewColor())
		case 'd':
			h.editor.RemoveSelected()
		case '+', '=':
			h.editor.ZoomIn()
		case '-', '_':
			h.editor.ZoomOut()
		}
	}
	return false
}

// A click is a press and release in the same cell: it selects. A press on a
// node followed by motion drags it, and releasing over another node
// connects the two. A press on empty space pans.
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	sx, sy := h.toScreen(cx, cy)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		h.editor.ZoomAt(h.opts.ZoomStep, sx, sy)
	case buttons&tcell.WheelDown != 0:
		h.editor.ZoomAt(1/h.opts.ZoomStep, sx, sy)
	case buttons&tcell.Button1 != 0:
		if h.press == nil {
			h.pressAt(cx, cy, sx, sy)
		} else {
			h.dragTo(cx, cy, sx, sy)
		}
	default:
		if h.press != nil {
			h.release(sx, sy)
		}
	}
}

func (h *Host) pressAt(cx, cy int, sx, sy float64) {
	h.press = &press{cx: cx, cy: cy}
	if id, ok := h.editor.NodeAt(sx, sy); ok {
		h.press.node = id
		h.editor.DragStart(id)
	}
}

func (h *Host) dragTo(cx, cy int, sx, sy float64) {
	p := h.press
	if cx == p.cx && cy == p.cy {
		return
	}
	if p.node != "" {
		h.editor.DragMove(p.node, sx, sy)
	} else {
		h.editor.Pan(float64(cx-p.cx)*h.opts.CellWidth, float64(cy-p.cy)*h.opts.CellHeight)
	}
	p.cx, p.cy = cx, cy
	p.moved = true
}

func (h *Host) release(sx, sy float64) {
	p := h.press
	h.press = nil
	if p.node == "" {
		return
	}

	target := p.node
	if p.moved {
		if id, ok := h.editor.DropTarget(sx, sy); ok {
			target = id
		}
	}
	h.editor.Drop(target)
	h.editor.DragEnd(p.node)
	if !p.moved {
		h.editor.Select(p.node)
	}
}

// toScreen maps the center of a terminal cell to screen units.
func (h *Host) toScreen(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * h.opts.CellWidth, (float64(cy) + 0.5) * h.opts.CellHeight
}

// toCell maps screen units to the terminal cell containing them.
func (h *Host) toCell(sx, sy float64) (int, int) {
	return int(math.Floor(sx / h.opts.CellWidth)), int(math.Floor(sy / h.opts.CellHeight))
}
