package gesture

import (
	"testing"
	"time"

	"github.com/lixenwraith/taskfall/engine"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/scene"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

// panelRecorder implements ActiveTask and DetailPanel
type panelRecorder struct {
	opens  int
	active task.Task
	shown  bool
}

func (p *panelRecorder) SetActiveTask(t task.Task) { p.active = t }

func (p *panelRecorder) ShowDetail(show bool) {
	p.shown = show
	if show {
		p.opens++
	}
}

type fixture struct {
	world *physics.World
	body  *physics.Body
	scene *scene.Scene
	clock *engine.MockTimeProvider
	sched *engine.Scheduler
	panel *panelRecorder
	reg   *status.Registry
	rec   *Recognizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w := physics.NewWorld()
	b := w.CreateBody(physics.Box(10, 10), vmath.V(50, 50), physics.BodyOptions{Label: "3"})
	w.Add(b)
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	f := &fixture{
		world: w,
		body:  b,
		scene: scene.New(vmath.R(0, 0, 100, 100)),
		clock: clock,
		sched: engine.NewScheduler(clock),
		panel: &panelRecorder{},
		reg:   status.NewRegistry(),
	}
	f.rec = New(b, task.Task{ID: task.Int64Ptr(3), Title: "hold me"}, Deps{
		Hits:   w,
		Scene:  f.scene,
		Sched:  f.sched,
		Active: f.panel,
		Detail: f.panel,
		Status: f.reg,
	})
	return f
}

// hold advances time in 10ms frames
func (f *fixture) hold(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += 10 * time.Millisecond {
		f.clock.Advance(10 * time.Millisecond)
		f.sched.Advance(f.clock.Now())
	}
}

func (f *fixture) send(kind scene.PointerKind, x, y float64) {
	f.scene.Dispatch(scene.PointerEvent{Kind: kind, Pos: vmath.V(x, y)})
}

func TestShortPressDoesNotOpen(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 50, 50)
	f.hold(790 * time.Millisecond)
	f.send(scene.PointerUp, 50, 50)
	f.hold(time.Second)

	if f.panel.opens != 0 {
		t.Errorf("Expected no open for a short press, got %d", f.panel.opens)
	}
	if f.rec.State() != StateIdle {
		t.Errorf("Expected idle, got %v", f.rec.State())
	}
	if f.sched.Pending() != 0 {
		t.Errorf("Expected timeout cleared, got %d pending", f.sched.Pending())
	}
}

func TestLongPressOpensOnce(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 50, 50)
	f.hold(800 * time.Millisecond)
	if f.panel.opens != 1 {
		t.Fatalf("Expected one open at 800ms, got %d", f.panel.opens)
	}
	f.hold(2 * time.Second)
	if f.panel.opens != 1 {
		t.Errorf("Expected exactly one open while held, got %d", f.panel.opens)
	}
	if f.rec.State() != StateLongPressFired {
		t.Errorf("Expected fired state, got %v", f.rec.State())
	}
	if *f.panel.active.ID != 3 || !f.panel.shown {
		t.Error("Expected active task set and detail shown")
	}
	if f.reg.Counter(status.GestureLongPress).Load() != 1 {
		t.Error("Expected long press counted")
	}

	f.send(scene.PointerUp, 50, 50)
	if f.rec.State() != StateIdle {
		t.Errorf("Expected idle after release, got %v", f.rec.State())
	}
}

func TestMoveOffBodyCancels(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 50, 50)
	f.hold(300 * time.Millisecond)
	f.send(scene.PointerMove, 52, 52)
	if f.rec.State() != StatePressed {
		t.Fatalf("Expected move inside the body to keep the press, got %v", f.rec.State())
	}
	f.send(scene.PointerMove, 80, 80)
	f.hold(time.Second)

	if f.panel.opens != 0 {
		t.Errorf("Expected no open after moving off, got %d", f.panel.opens)
	}
	if f.reg.Counter(status.GestureCancel).Load() != 1 {
		t.Error("Expected cancel counted")
	}
}

func TestBodyMovingAwayCancelsOnMove(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 50, 50)
	// The body falls out from under a still pointer
	f.world.SetPosition(f.body, vmath.V(50, 70))
	f.send(scene.PointerMove, 50, 50)
	f.hold(time.Second)
	if f.panel.opens != 0 {
		t.Errorf("Expected no open once the body left the pointer, got %d", f.panel.opens)
	}
}

func TestLeaveCancels(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 50, 50)
	f.send(scene.PointerLeave, 0, 0)
	f.hold(time.Second)
	if f.panel.opens != 0 {
		t.Errorf("Expected no open after leave, got %d", f.panel.opens)
	}
}

func TestPressOutsideShapeIgnored(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 70, 70)
	f.hold(time.Second)
	if f.rec.State() != StateIdle || f.panel.opens != 0 {
		t.Error("Expected press outside the body to be ignored")
	}
}

func TestTouchRequiresSingleContact(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.scene.Dispatch(scene.PointerEvent{Kind: scene.PointerDown, Pos: vmath.V(50, 50), Touch: true, Touches: 2})
	if f.rec.State() != StateIdle {
		t.Fatal("Expected multi-touch press to be ignored")
	}
	f.scene.Dispatch(scene.PointerEvent{Kind: scene.PointerDown, Pos: vmath.V(50, 50), Touch: true, Touches: 1})
	f.hold(800 * time.Millisecond)
	if f.panel.opens != 1 {
		t.Errorf("Expected single touch long press to open, got %d", f.panel.opens)
	}
}

func TestDisposeReleasesListenerAndTimer(t *testing.T) {
	f := newFixture(t)
	dispose := f.rec.Attach()
	if f.scene.Listeners() != 1 {
		t.Fatalf("Expected one listener, got %d", f.scene.Listeners())
	}

	f.send(scene.PointerDown, 50, 50)
	dispose()
	dispose()

	if f.scene.Listeners() != 0 {
		t.Errorf("Expected listener removed, got %d", f.scene.Listeners())
	}
	if f.sched.Pending() != 0 {
		t.Errorf("Expected timeout cancelled, got %d pending", f.sched.Pending())
	}
	f.hold(time.Second)
	if f.panel.opens != 0 {
		t.Errorf("Expected no open after dispose, got %d", f.panel.opens)
	}
}

func TestStaleTimeoutAfterRemovalIsNoop(t *testing.T) {
	f := newFixture(t)
	defer f.rec.Attach()()

	f.send(scene.PointerDown, 50, 50)
	f.world.Remove(f.body)
	f.hold(time.Second)
	if f.panel.opens != 0 {
		t.Errorf("Expected no open for a removed body, got %d", f.panel.opens)
	}
}

func TestIndependentRecognizers(t *testing.T) {
	f := newFixture(t)
	other := f.world.CreateBody(physics.Circle(5), vmath.V(20, 20), physics.BodyOptions{Label: "4"})
	f.world.Add(other)
	otherPanel := &panelRecorder{}
	otherRec := New(other, task.Task{ID: task.Int64Ptr(4)}, Deps{
		Hits: f.world, Scene: f.scene, Sched: f.sched, Active: otherPanel, Detail: otherPanel,
	})

	disposeA := f.rec.Attach()
	disposeB := otherRec.Attach()

	f.send(scene.PointerDown, 20, 20)
	disposeA()
	f.hold(800 * time.Millisecond)

	if otherPanel.opens != 1 || f.panel.opens != 0 {
		t.Errorf("Expected only the pressed body to open, got %d and %d", otherPanel.opens, f.panel.opens)
	}
	disposeB()
}
