package state

import (
	"testing"
	"time"

	"github.com/lixenwraith/taskfall/engine"
	"github.com/lixenwraith/taskfall/event"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
)

func newSession() (*Session, *event.Queue, *status.Registry) {
	q := event.NewQueue()
	reg := status.NewRegistry()
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	return NewSession(q, clock, reg), q, reg
}

func types(events []event.Event) []event.Type {
	out := make([]event.Type, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func TestDetailFlow(t *testing.T) {
	s, q, reg := newSession()
	tk := task.Task{ID: task.Int64Ptr(1), Title: "read"}

	s.SetActiveTask(tk)
	s.ShowDetail(true)
	s.ShowDetail(true)

	if active, ok := s.Active(); !ok || !active.Same(tk) {
		t.Error("Expected active task set")
	}
	if !s.DetailVisible() || !reg.Flag(status.DetailVisible).Load() {
		t.Error("Expected detail visible")
	}
	s.ShowDetail(false)

	got := types(q.Consume())
	if len(got) != 2 || got[0] != event.EventOpenDetail || got[1] != event.EventCloseDetail {
		t.Errorf("Expected [open close], got %v", got)
	}
}

func TestClearOnlyMatchingMark(t *testing.T) {
	s, q, _ := newSession()
	a := task.Task{ID: task.Int64Ptr(1), Title: "a"}
	b := task.Task{ID: task.Int64Ptr(2), Title: "b"}

	s.MarkForDeletion("1", a)
	s.MarkForDeletion("2", b)
	s.ClearDeletion("1", a)
	if marked, ok := s.Marked(); !ok || !marked.Same(b) {
		t.Fatal("Expected clearing a stale task to keep the newer mark")
	}
	s.ClearDeletion("2", b)
	if _, ok := s.Marked(); ok {
		t.Error("Expected mark cleared")
	}

	got := types(q.Consume())
	want := []event.Type{event.EventMarkDelete, event.EventMarkDelete, event.EventClearDelete}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func TestMarksKeyedByLabel(t *testing.T) {
	s, _, _ := newSession()
	twin := task.Task{Title: "water plants"}

	s.MarkForDeletion("task-b", twin)
	s.ClearDeletion("task-a", twin)
	if label, ok := s.MarkedLabel(); !ok || label != "task-b" {
		t.Fatalf("Expected mark on task-b to survive a clear from its twin, got %q %v", label, ok)
	}

	m, ok := s.ConfirmDeletion()
	if !ok || m.Label != "task-b" {
		t.Errorf("Expected task-b confirmed, got %q", m.Label)
	}
	if _, ok := s.MarkedLabel(); ok {
		t.Error("Expected mark consumed")
	}
}

func TestConfirmDeletion(t *testing.T) {
	s, q, _ := newSession()
	tk := task.Task{ID: task.Int64Ptr(5), Title: "drop"}

	if _, ok := s.ConfirmDeletion(); ok {
		t.Error("Expected nothing to confirm")
	}

	s.SetActiveTask(tk)
	s.ShowDetail(true)
	s.MarkForDeletion("5", tk)
	q.Consume()

	removed, ok := s.ConfirmDeletion()
	if !ok || !removed.Task.Same(tk) || removed.Label != "5" {
		t.Fatalf("Expected the marked task to be confirmed, got %+v", removed)
	}
	if s.DetailVisible() {
		t.Error("Expected detail hidden for the removed task")
	}
	got := types(q.Consume())
	if len(got) != 2 || got[0] != event.EventCloseDetail || got[1] != event.EventTaskRemoved {
		t.Errorf("Expected [close removed], got %v", got)
	}
}

func TestCancelDeletion(t *testing.T) {
	s, q, _ := newSession()
	tk := task.Task{ID: task.Int64Ptr(6)}
	s.MarkForDeletion("6", tk)
	if _, ok := s.CancelDeletion(); !ok {
		t.Fatal("Expected cancel to report the marked task")
	}
	if _, ok := s.Marked(); ok {
		t.Error("Expected mark cleared after cancel")
	}
	if got := types(q.Consume()); len(got) != 2 || got[1] != event.EventClearDelete {
		t.Errorf("Expected clear event, got %v", got)
	}
}

func TestNilQueue(t *testing.T) {
	s := NewSession(nil, nil, nil)
	s.MarkForDeletion("task-x", task.Task{Title: "x"})
	s.ShowDetail(true)
	if _, ok := s.ConfirmDeletion(); !ok {
		t.Error("Expected session to work without a queue")
	}
}
