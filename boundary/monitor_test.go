package boundary

import (
	"testing"
	"time"

	"github.com/lixenwraith/taskfall/engine"
	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/scene"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

// intentRecorder counts deletion signals
type intentRecorder struct {
	marks, clears int
	last          task.Task
	lastLabel     string
}

func (r *intentRecorder) MarkForDeletion(label string, t task.Task) {
	r.marks++
	r.last = t
	r.lastLabel = label
}

func (r *intentRecorder) ClearDeletion(label string, t task.Task) {
	r.clears++
	r.last = t
	r.lastLabel = label
}

type fixture struct {
	world  *physics.World
	body   *physics.Body
	scene  *scene.Scene
	intent *intentRecorder
	clock  *engine.MockTimeProvider
	sched  *engine.Scheduler
	task   task.Task
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w := physics.NewWorld()
	b := w.CreateBody(physics.Circle(2), vmath.V(50, 50), physics.BodyOptions{Label: "7", Style: physics.Style{Opacity: 1}})
	w.Add(b)
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	return &fixture{
		world:  w,
		body:   b,
		scene:  scene.New(vmath.R(0, 0, 100, 100)),
		intent: &intentRecorder{},
		clock:  clock,
		sched:  engine.NewScheduler(clock),
		task:   task.Task{ID: task.Int64Ptr(7), Title: "drag me"},
	}
}

func (f *fixture) tick() {
	f.clock.Advance(parameter.BoundarySampleInterval)
	f.sched.Advance(f.clock.Now())
}

func TestSample(t *testing.T) {
	view := vmath.R(0, 0, 100, 80)
	tests := []struct {
		pos  vmath.Vec2
		want State
	}{
		{vmath.V(50, 40), StateInBounds},
		{vmath.V(-50, 40), StateInBounds},
		{vmath.V(-50.1, 40), StateOutOfBounds},
		{vmath.V(150, 40), StateInBounds},
		{vmath.V(150.1, 40), StateOutOfBounds},
		{vmath.V(50, -51), StateOutOfBounds},
		{vmath.V(50, 131), StateOutOfBounds},
	}
	for _, tt := range tests {
		if got := Sample(tt.pos, view, 50); got != tt.want {
			t.Errorf("Sample(%v): expected %v, got %v", tt.pos, tt.want, got)
		}
	}
}

func TestEdgeTriggeredTransitions(t *testing.T) {
	f := newFixture(t)
	reg := status.NewRegistry()
	m := NewMonitor(f.body, f.scene, f.intent, f.task, WithStatus(reg))
	dispose := m.Attach(f.sched)
	defer dispose()

	path := []vmath.Vec2{
		{X: 50, Y: 50}, {X: 120, Y: 50}, {X: 140, Y: 50},
		{X: 160, Y: 50}, {X: 180, Y: 50}, {X: 200, Y: 50}, // Outside for several samples
		{X: 140, Y: 50}, {X: 90, Y: 50}, {X: 60, Y: 50}, // Back inside
	}
	for _, p := range path {
		f.world.SetPosition(f.body, p)
		f.tick()
	}

	if f.intent.marks != 1 || f.intent.clears != 1 {
		t.Errorf("Expected exactly 1 mark and 1 clear, got %d and %d", f.intent.marks, f.intent.clears)
	}
	if !f.intent.last.Same(f.task) {
		t.Error("Expected signals to carry the monitored task")
	}
	if f.intent.lastLabel != "7" {
		t.Errorf("Expected signals to carry body label 7, got %q", f.intent.lastLabel)
	}
	if reg.Counter(status.BoundaryMark).Load() != 1 || reg.Counter(status.BoundaryClear).Load() != 1 {
		t.Error("Expected transition counters to match signals")
	}
	if m.State() != StateInBounds {
		t.Errorf("Expected final state in bounds, got %v", m.State())
	}
}

func TestOpacityFeedback(t *testing.T) {
	f := newFixture(t)
	m := NewMonitor(f.body, f.scene, f.intent, f.task, WithMargin(10))

	f.world.SetPosition(f.body, vmath.V(-20, 50))
	if state, changed := m.Check(); state != StateOutOfBounds || !changed {
		t.Fatalf("Expected transition to out of bounds, got %v %v", state, changed)
	}
	if f.body.FeedbackOpacity() != parameter.OutOfBoundsOpacity {
		t.Errorf("Expected feedback opacity %v, got %v", parameter.OutOfBoundsOpacity, f.body.FeedbackOpacity())
	}

	if _, changed := m.Check(); changed {
		t.Error("Expected no transition while staying out of bounds")
	}

	f.world.SetPosition(f.body, vmath.V(5, 50))
	m.Check()
	if f.body.FeedbackOpacity() != parameter.InBoundsOpacity {
		t.Errorf("Expected feedback opacity restored, got %v", f.body.FeedbackOpacity())
	}
}

func TestDisposeStopsSampling(t *testing.T) {
	f := newFixture(t)
	m := NewMonitor(f.body, f.scene, f.intent, f.task)
	dispose := m.Attach(f.sched)
	if f.sched.Pending() != 1 {
		t.Fatalf("Expected one interval registered, got %d", f.sched.Pending())
	}

	dispose()
	dispose()
	if f.sched.Pending() != 0 {
		t.Errorf("Expected interval cleared, got %d pending", f.sched.Pending())
	}

	f.world.SetPosition(f.body, vmath.V(500, 500))
	f.tick()
	if f.intent.marks != 0 {
		t.Errorf("Expected no signals after dispose, got %d", f.intent.marks)
	}
}

func TestUnmountedSceneAndRemovedBodyAreNoops(t *testing.T) {
	f := newFixture(t)
	m := NewMonitor(f.body, f.scene, f.intent, f.task)
	f.world.SetPosition(f.body, vmath.V(500, 500))

	f.scene.Unmount()
	if _, changed := m.Check(); changed {
		t.Error("Expected no sample on an unmounted scene")
	}

	f2 := newFixture(t)
	m2 := NewMonitor(f2.body, f2.scene, f2.intent, f2.task)
	f2.world.Remove(f2.body)
	f2.world.SetPosition(f2.body, vmath.V(500, 500))
	if _, changed := m2.Check(); changed {
		t.Error("Expected no sample for a body no longer in the world")
	}

	nilBody := NewMonitor(nil, f.scene, f.intent, f.task)
	if _, changed := nilBody.Check(); changed {
		t.Error("Expected nil body to be a no-op")
	}
	var nilMonitor *Monitor
	nilMonitor.Check()
	nilMonitor.Attach(f.sched)()
	nilMonitor.Dispose()

	if f.intent.marks+f2.intent.marks != 0 {
		t.Error("Expected no deletion signals")
	}
}

func TestIndependentMonitors(t *testing.T) {
	f := newFixture(t)
	other := f.world.CreateBody(physics.Circle(2), vmath.V(20, 20), physics.BodyOptions{Label: "8"})
	f.world.Add(other)
	otherIntent := &intentRecorder{}

	d1 := NewMonitor(f.body, f.scene, f.intent, f.task).Attach(f.sched)
	d2 := NewMonitor(other, f.scene, otherIntent, task.Task{ID: task.Int64Ptr(8)}).Attach(f.sched)

	d1()
	f.world.SetPosition(other, vmath.V(-100, 20))
	f.tick()
	if otherIntent.marks != 1 {
		t.Errorf("Expected the remaining monitor to keep working, got %d marks", otherIntent.marks)
	}
	d2()
	if f.sched.Pending() != 0 {
		t.Errorf("Expected all intervals cleared, got %d", f.sched.Pending())
	}
}
