package terminal

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"taskflow/editor"
	"taskflow/frame"
	"taskflow/graph"
)

type fixture struct {
	host   *Host
	editor *editor.Editor
	loop   *frame.Loop
	screen tcell.SimulationScreen
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	loop := frame.NewLoop()
	ed := editor.New(graph.NewChain(4), loop, editor.DefaultOptions())
	t.Cleanup(ed.Close)
	loop.RunUntilIdle(1000)

	opts := DefaultOptions()
	opts.NewColor = func() string { return "#123456" }
	return &fixture{
		host:   New(screen, ed, loop, opts),
		editor: ed,
		loop:   loop,
		screen: screen,
	}
}

// cell returns the terminal cell under a node's center.
func (f *fixture) cell(id string) (int, int) {
	p, ok := f.editor.Position(id)
	if !ok {
		panic("unknown node " + id)
	}
	sx, sy := f.editor.Project(p.X, p.Y)
	return f.host.toCell(sx, sy)
}

func (f *fixture) mouse(x, y int, buttons tcell.ButtonMask) {
	f.host.HandleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func (f *fixture) click(id string) {
	x, y := f.cell(id)
	f.mouse(x, y, tcell.Button1)
	f.mouse(x, y, tcell.ButtonNone)
}

func (f *fixture) key(k tcell.Key, r rune) bool {
	return f.host.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestClickToConnect(t *testing.T) {
	f := newFixture(t)

	f.click("Task 1")
	if f.editor.State() != editor.StateConnectPending || f.editor.ConnectSource() != "Task 1" {
		t.Fatalf("Expected CONNECT(Task 1), got %v(%q)", f.editor.State(), f.editor.ConnectSource())
	}
	if f.editor.Pinned("Task 1") {
		t.Error("Click left the node pinned")
	}

	f.loop.RunUntilIdle(1000)
	f.click("Task 3")

	n, _ := f.editor.Graph().Node("Task 1")
	if !n.HasOutput("Task 3") {
		t.Errorf("Expected edge Task 1 -> Task 3, got %v", n.Outputs)
	}
	if f.editor.State() != editor.StateIdle {
		t.Errorf("Expected IDLE, got %v", f.editor.State())
	}
}

func TestMouseMatchesDirectCalls(t *testing.T) {
	f := newFixture(t)
	f.click("Task 2")
	f.loop.RunUntilIdle(1000)
	f.click("Task 4")

	loop := frame.NewLoop()
	direct := editor.New(graph.NewChain(4), loop, editor.DefaultOptions())
	defer direct.Close()
	direct.Select("Task 2")
	direct.Select("Task 4")

	got, want := f.editor.Graph().Edges(), direct.Graph().Edges()
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Edge %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestDragToConnect(t *testing.T) {
	f := newFixture(t)
	sx, sy := f.cell("Task 4")
	tx, ty := f.cell("Task 2")

	f.mouse(sx, sy, tcell.Button1)
	if f.editor.State() != editor.StateDragPending {
		t.Fatalf("Expected DRAG, got %v", f.editor.State())
	}
	f.mouse(tx, ty, tcell.Button1)
	if !f.editor.Pinned("Task 4") {
		t.Fatal("Dragged node not pinned")
	}
	f.mouse(tx, ty, tcell.ButtonNone)

	n, _ := f.editor.Graph().Node("Task 4")
	if !n.HasOutput("Task 2") {
		t.Errorf("Expected edge Task 4 -> Task 2, got %v", n.Outputs)
	}
	if f.editor.Pinned("Task 4") {
		t.Error("Node still pinned after release")
	}
	if f.editor.State() != editor.StateIdle {
		t.Errorf("Expected IDLE, got %v", f.editor.State())
	}
}

func TestDragToEmptySpaceOnlyMoves(t *testing.T) {
	f := newFixture(t)
	x, y := f.cell("Task 1")

	f.mouse(x, y, tcell.Button1)
	f.mouse(1, 1, tcell.Button1)
	f.mouse(1, 1, tcell.ButtonNone)

	if f.editor.EdgeCount() != 3 {
		t.Errorf("Expected 3 edges, got %d", f.editor.EdgeCount())
	}
	if f.editor.State() != editor.StateIdle {
		t.Errorf("Drag onto empty space selected something: %v", f.editor.State())
	}
}

func TestPanWithMouse(t *testing.T) {
	f := newFixture(t)

	f.mouse(0, 0, tcell.Button1)
	f.mouse(5, 2, tcell.Button1)
	f.mouse(5, 2, tcell.ButtonNone)

	v := f.editor.Viewport()
	if v.TX != 40 || v.TY != 32 {
		t.Errorf("Expected pan (40, 32), got (%v, %v)", v.TX, v.TY)
	}
}

func TestWheelZoom(t *testing.T) {
	f := newFixture(t)
	sx, sy := f.host.toScreen(50, 20)

	f.mouse(50, 20, tcell.WheelUp)
	if s := f.editor.Viewport().Scale; s != 1.2 {
		t.Errorf("Expected scale 1.2, got %v", s)
	}

	// The view started at identity, so the point under the pointer was
	// (sx, sy) in simulation space too. It must not have moved.
	gx, gy := f.editor.Project(sx, sy)
	if math.Abs(gx-sx) > 1e-9 || math.Abs(gy-sy) > 1e-9 {
		t.Errorf("Anchor moved to (%v, %v), want (%v, %v)", gx, gy, sx, sy)
	}

	f.mouse(50, 20, tcell.WheelDown)
	if s := f.editor.Viewport().Scale; math.Abs(s-1) > 1e-9 {
		t.Errorf("Expected scale back at 1, got %v", s)
	}
}

func TestKeys(t *testing.T) {
	f := newFixture(t)

	f.key(tcell.KeyRune, 'a')
	if f.editor.NodeCount() != 5 {
		t.Fatalf("Expected 5 nodes, got %d", f.editor.NodeCount())
	}
	n, _ := f.editor.Graph().Node("Task 5")
	if n.Color != "#123456" || n.Label != "Task 5" {
		t.Errorf("Unexpected added node %+v", n)
	}

	f.loop.RunUntilIdle(1000)
	f.click("Task 5")
	f.key(tcell.KeyRune, 'd')
	if f.editor.NodeCount() != 4 {
		t.Errorf("Expected 4 nodes after delete, got %d", f.editor.NodeCount())
	}

	f.key(tcell.KeyRune, '+')
	if s := f.editor.Viewport().Scale; s != 1.2 {
		t.Errorf("Expected scale 1.2, got %v", s)
	}
	before := f.editor.Viewport()
	f.key(tcell.KeyRight, 0)
	f.key(tcell.KeyUp, 0)
	after := f.editor.Viewport()
	if after.TX != before.TX-40 || after.TY != before.TY+40 {
		t.Errorf("Arrows panned from %+v to %+v", before, after)
	}

	for _, quit := range []struct {
		k tcell.Key
		r rune
	}{{tcell.KeyRune, 'q'}, {tcell.KeyEscape, 0}, {tcell.KeyCtrlC, 0}} {
		if !f.key(quit.k, quit.r) {
			t.Errorf("Key %v/%q did not quit", quit.k, quit.r)
		}
	}
	if f.key(tcell.KeyRune, 'x') {
		t.Error("Unbound key quit")
	}
}

func screenText(s tcell.SimulationScreen) []string {
	cells, w, h := s.GetContents()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			runes := cells[y*w+x].Runes
			if len(runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(runes[0])
		}
		rows[y] = b.String()
	}
	return rows
}

func TestDraw(t *testing.T) {
	f := newFixture(t)
	f.host.Draw()

	rows := screenText(f.screen)
	status := rows[len(rows)-1]
	if !strings.Contains(status, "IDLE") || !strings.Contains(status, "nodes:4 edges:3") {
		t.Errorf("Unexpected status line %q", status)
	}

	_, y := f.cell("Task 4")
	if !strings.Contains(rows[y], "Task Four") {
		t.Errorf("Label missing from row %d: %q", y, rows[y])
	}
}

func TestNodeStyleFallsBack(t *testing.T) {
	f := newFixture(t)
	if got := f.host.nodeStyle("not a color"); got != fallback {
		t.Errorf("Expected fallback style, got %v", got)
	}
	light := f.host.nodeStyle("#ffffff")
	fg, _, _ := light.Decompose()
	if fg != tcell.ColorBlack {
		t.Errorf("Expected black text on white, got %v", fg)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	f := newFixture(t)
	f.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- f.host.Run(context.Background()) }()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.host.Run(ctx); err != nil {
		t.Errorf("Run returned %v", err)
	}
}
