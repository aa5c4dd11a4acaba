// Package state holds the references shared between task bodies and the UI:
// the active task, detail panel visibility and the task marked for deletion
package state

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/taskfall/event"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
)

// Clock is the time source for event timestamps
type Clock interface {
	Now() time.Time
}

// Session is the UI state written by gesture recognizers and boundary monitors
// Owned by the loop goroutine
type Session struct {
	active  *task.Task
	detail  bool
	marked  *Mark
	queue   *event.Queue
	clock   Clock
	visible *atomic.Bool
}

// NewSession creates a session publishing to q; q and reg may be nil
func NewSession(q *event.Queue, clock Clock, reg *status.Registry) *Session {
	return &Session{
		queue:   q,
		clock:   clock,
		visible: reg.Flag(status.DetailVisible),
	}
}

func (s *Session) publish(typ event.Type, t task.Task) {
	if s.queue == nil {
		return
	}
	ev := event.Event{Type: typ, Task: t}
	if s.clock != nil {
		ev.At = s.clock.Now()
	}
	s.queue.Push(ev)
}

// SetActiveTask selects the task shown in the detail panel
func (s *Session) SetActiveTask(t task.Task) {
	s.active = &t
}

// ShowDetail shows or hides the detail panel
func (s *Session) ShowDetail(show bool) {
	if s.detail == show {
		return
	}
	s.detail = show
	s.visible.Store(show)

	var t task.Task
	if s.active != nil {
		t = *s.active
	}
	if show {
		s.publish(event.EventOpenDetail, t)
	} else {
		s.publish(event.EventCloseDetail, t)
	}
}

// Active returns the selected task
func (s *Session) Active() (task.Task, bool) {
	if s.active == nil {
		return task.Task{}, false
	}
	return *s.active, true
}

// DetailVisible reports whether the detail panel is shown
func (s *Session) DetailVisible() bool {
	return s.detail
}

// Mark is a deletion candidate: the label of the body that left the view and its task
type Mark struct {
	Label string
	Task  task.Task
}

// MarkForDeletion records the body labelled label as the deletion candidate,
// replacing any previous mark
func (s *Session) MarkForDeletion(label string, t task.Task) {
	s.marked = &Mark{Label: label, Task: t}
	log.Printf("state: marked %s %q for deletion", label, t.Title)
	s.publish(event.EventMarkDelete, t)
}

// ClearDeletion clears the mark if label is the marked body
func (s *Session) ClearDeletion(label string, t task.Task) {
	if s.marked == nil || s.marked.Label != label {
		return
	}
	s.marked = nil
	s.publish(event.EventClearDelete, t)
}

// Marked returns the task awaiting deletion confirmation
func (s *Session) Marked() (task.Task, bool) {
	if s.marked == nil {
		return task.Task{}, false
	}
	return s.marked.Task, true
}

// MarkedLabel returns the label of the body awaiting deletion confirmation
func (s *Session) MarkedLabel() (string, bool) {
	if s.marked == nil {
		return "", false
	}
	return s.marked.Label, true
}

// CancelDeletion dismisses the confirmation, keeping the task
func (s *Session) CancelDeletion() (Mark, bool) {
	if s.marked == nil {
		return Mark{}, false
	}
	m := *s.marked
	s.ClearDeletion(m.Label, m.Task)
	return m, true
}

// ConfirmDeletion consumes the mark and announces the removal
func (s *Session) ConfirmDeletion() (Mark, bool) {
	if s.marked == nil {
		return Mark{}, false
	}
	m := *s.marked
	s.marked = nil
	if s.active != nil && s.active.Same(m.Task) {
		s.active = nil
		s.ShowDetail(false)
	}
	log.Printf("state: confirmed deletion of %s %q", m.Label, m.Task.Title)
	s.publish(event.EventTaskRemoved, m.Task)
	return m, true
}
