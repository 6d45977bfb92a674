package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"taskflow/editor"
	"taskflow/layout"
)

var (
	edgeStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Reverse(true)
	fallback    = tcell.StyleDefault.Background(tcell.ColorGray).Foreground(tcell.ColorBlack)
)

// Draw renders the current snapshot and shows it.
func (h *Host) Draw() {
	snap := h.editor.Snapshot()

	h.screen.Clear()
	for _, e := range snap.Edges {
		h.drawEdge(e)
	}
	for _, n := range snap.Nodes {
		h.drawNode(n, snap.Viewport.Scale)
	}
	h.drawStatus(snap)
	h.screen.Show()
}

func (h *Host) drawEdge(e layout.EdgeSegment) {
	x1, y1 := h.editor.Project(e.X1, e.Y1)
	x2, y2 := h.editor.Project(e.X2, e.Y2)
	c1x, c1y := h.toCell(x1, y1)
	c2x, c2y := h.toCell(x2, y2)

	// Bresenham
	dx, dy := abs(c2x-c1x), -abs(c2y-c1y)
	sx, sy := sign(c2x-c1x), sign(c2y-c1y)
	err := dx + dy
	x, y := c1x, c1y
	for {
		h.screen.SetContent(x, y, '·', nil, edgeStyle)
		if x == c2x && y == c2y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}

	mx, my := (c1x+c2x)/2, (c1y+c2y)/2
	h.screen.SetContent(mx, my, arrow(x2-x1, y2-y1), nil, edgeStyle)
}

// arrow picks the glyph closest to the edge direction.
func arrow(dx, dy float64) rune {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return '→'
		}
		return '←'
	}
	if dy >= 0 {
		return '↓'
	}
	return '↑'
}

func (h *Host) drawNode(n editor.NodeView, scale float64) {
	nw, nh := h.editor.NodeSize()
	w := max(3, int(math.Round(nw*scale/h.opts.CellWidth)))
	ht := max(1, int(math.Round(nh*scale/h.opts.CellHeight)))

	sx, sy := h.editor.Project(n.X, n.Y)
	cx, cy := h.toCell(sx, sy)
	left, top := cx-w/2, cy-ht/2

	style := h.nodeStyle(n.Color)
	if n.Selected {
		style = style.Bold(true)
	}
	if n.Dragging {
		style = style.Underline(true)
	}

	for y := top; y < top+ht; y++ {
		for x := left; x < left+w; x++ {
			h.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if n.Selected {
		h.screen.SetContent(left, cy, '[', nil, style)
		h.screen.SetContent(left+w-1, cy, ']', nil, style)
	}

	label := runewidth.Truncate(n.Label, w-2, "…")
	x := left + (w-runewidth.StringWidth(label))/2
	for _, r := range label {
		h.screen.SetContent(x, cy, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

// nodeStyle fills with the node color and picks a readable foreground.
// Unparseable colors fall back to gray.
func (h *Host) nodeStyle(color string) tcell.Style {
	if s, ok := h.styles[color]; ok {
		return s
	}
	s := fallback
	if c, err := colorful.Hex(color); err == nil {
		r, g, b := c.RGB255()
		fg := tcell.ColorWhite
		if l, _, _ := c.Lab(); l > 0.6 {
			fg = tcell.ColorBlack
		}
		s = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b))).Foreground(fg)
	}
	h.styles[color] = s
	return s
}

func (h *Host) drawStatus(snap editor.Snapshot) {
	w, ht := h.screen.Size()
	if ht == 0 {
		return
	}
	line := fmt.Sprintf(" %-7s nodes:%d edges:%d zoom:%.2f alpha:%.3f | a:add d:delete +/-:zoom arrows:pan q:quit",
		snap.State, len(snap.Nodes), len(snap.Edges), snap.Viewport.Scale, snap.Alpha)
	line = runewidth.Truncate(line, w, "…")

	x := 0
	for _, r := range line {
		h.screen.SetContent(x, ht-1, r, nil, statusStyle)
		x += runewidth.RuneWidth(r)
	}
	for ; x < w; x++ {
		h.screen.SetContent(x, ht-1, ' ', nil, statusStyle)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
