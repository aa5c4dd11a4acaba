package render

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/taskfall/dayview"
	"github.com/lixenwraith/taskfall/engine"
	"github.com/lixenwraith/taskfall/event"
	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/state"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
)

const (
	testCols = 120
	testRows = 31
)

type harness struct {
	screen   tcell.SimulationScreen
	view     *dayview.View
	session  *state.Session
	renderer *Renderer
	now      time.Time
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(testCols, testRows)
	t.Cleanup(screen.Fini)

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	clock := engine.NewMockTimeProvider(now)
	sched := engine.NewScheduler(clock)
	q := event.NewQueue()
	reg := status.NewRegistry()
	session := state.NewSession(q, clock, reg)

	rect := Layout(testCols, testRows, parameter.GutterCells, parameter.CellAspect)
	view := dayview.New(rect, sched, session, dayview.DefaultConfig(),
		dayview.WithEvents(q),
		dayview.WithRand(rand.New(rand.NewSource(3))),
		dayview.WithStatus(reg),
	)
	view.Mount()

	opts = append([]Option{WithStatus(reg)}, opts...)
	r := New(screen, view, session, parameter.CellAspect, opts...)
	return &harness{screen: screen, view: view, session: session, renderer: r, now: now}
}

func (h *harness) row(y int) string {
	var b strings.Builder
	for x := 0; x < testCols; x++ {
		ch, _, _, _ := h.screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func (h *harness) contains(s string) bool {
	for y := 0; y < testRows; y++ {
		if strings.Contains(h.row(y), s) {
			return true
		}
	}
	return false
}

func (h *harness) background(x, y int) tcell.Color {
	_, _, style, _ := h.screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

// painted counts cells that differ from blank scene or gutter cells
func (h *harness) painted() int {
	scene, gutter := toTcell(h.renderer.bg), toTcell(h.renderer.gutter)
	n := 0
	for y := 0; y < testRows-parameter.StatusRows; y++ {
		for x := 0; x < testCols; x++ {
			ch, _, _, _ := h.screen.GetContent(x, y)
			if bg := h.background(x, y); ch != ' ' || (bg != scene && bg != gutter) {
				n++
			}
		}
	}
	return n
}

func TestDrawBackgroundAndStrip(t *testing.T) {
	h := newHarness(t)
	h.renderer.Draw(h.now)

	if h.background(0, 0) == h.background(testCols/2, 0) {
		t.Error("Expected gutter and scene backgrounds to differ")
	}
	if !h.contains(string(stripRune)) {
		t.Error("Expected timeline strip to be drawn")
	}
	if !h.contains("09:00") {
		t.Error("Expected strip clock label")
	}

	statusLine := h.row(testRows - 1)
	if !strings.Contains(statusLine, "09:00:00") {
		t.Errorf("Expected time on status line, got %q", statusLine)
	}
	if !strings.Contains(statusLine, "q:quit") {
		t.Errorf("Expected help on status line, got %q", statusLine)
	}
}

func TestDrawBody(t *testing.T) {
	h := newHarness(t)
	h.renderer.Draw(h.now)
	before := h.painted()

	h.view.Load([]task.Task{{ID: task.Int64Ptr(1), Title: "Write", Duration: task.IntPtr(240)}})
	if _, ok := h.view.AddNext(); !ok {
		t.Fatal("Expected task to spawn")
	}
	h.renderer.Draw(h.now)

	if after := h.painted(); after <= before {
		t.Errorf("Expected spawned body to paint cells, got %d then %d", before, after)
	}
}

func TestDrawDetailPanel(t *testing.T) {
	h := newHarness(t)
	h.session.SetActiveTask(task.Task{Title: "Review", Duration: task.IntPtr(45), Importance: task.ImportanceHigh})
	h.session.ShowDetail(true)
	h.renderer.Draw(h.now)

	for _, want := range []string{"Review", "Duration: 45 min", "[esc] close"} {
		if !h.contains(want) {
			t.Errorf("Expected detail panel to show %q", want)
		}
	}

	h.session.ShowDetail(false)
	h.renderer.Draw(h.now)
	if h.contains("[esc] close") {
		t.Error("Expected hidden panel to disappear")
	}
}

func TestDrawConfirmCard(t *testing.T) {
	h := newHarness(t)
	h.session.MarkForDeletion("5", task.Task{ID: task.Int64Ptr(5), Duration: task.IntPtr(20)})
	h.renderer.Draw(h.now)

	for _, want := range []string{"Remove Task?", untitledTitle, "Duration: 20 minutes", "[y] Remove Task"} {
		if !h.contains(want) {
			t.Errorf("Expected confirm card to show %q", want)
		}
	}
}

func TestStatusFlags(t *testing.T) {
	paused, muted := true, false
	h := newHarness(t,
		WithPaused(func() bool { return paused }),
		WithMuted(func() bool { return muted }),
	)
	h.renderer.Draw(h.now)
	line := h.row(testRows - 1)
	if !strings.Contains(line, "[PAUSED]") || strings.Contains(line, "[MUTED]") {
		t.Errorf("Expected paused only, got %q", line)
	}

	paused, muted = false, true
	h.renderer.Draw(h.now)
	line = h.row(testRows - 1)
	if strings.Contains(line, "[PAUSED]") || !strings.Contains(line, "[MUTED]") {
		t.Errorf("Expected muted only, got %q", line)
	}
}

func TestDrawUnmountedView(t *testing.T) {
	h := newHarness(t)
	h.view.Unmount()
	h.renderer.Draw(h.now)
	if h.contains("09:00:00") {
		t.Error("Expected nothing drawn for an unmounted scene")
	}
}

func TestLayout(t *testing.T) {
	r := Layout(120, 31, 10, 2)
	if r.X != 10 || r.Y != 0 || r.W != 100 || r.H != 60 {
		t.Errorf("Expected 10,0 100x60, got %v,%v %vx%v", r.X, r.Y, r.W, r.H)
	}

	narrow := Layout(30, 11, 10, 2)
	if narrow.X != 0 || narrow.W != 30 {
		t.Errorf("Expected gutters dropped on a narrow terminal, got x=%v w=%v", narrow.X, narrow.W)
	}
}

func TestGridRoundTrip(t *testing.T) {
	g := Grid{Aspect: 2}
	for _, c := range [][2]int{{0, 0}, {5, 3}, {119, 29}} {
		col, row := g.Cell(g.CellCenter(c[0], c[1]))
		if col != c[0] || row != c[1] {
			t.Errorf("Expected cell %v, got %d,%d", c, col, row)
		}
	}
	p := g.CellCenter(4, 2)
	if p.X != 4.5 || p.Y != 5 {
		t.Errorf("Expected center 4.5,5, got %v,%v", p.X, p.Y)
	}
}
