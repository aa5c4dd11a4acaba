// Package boundary watches a body against the scene edges and raises deletion intent
// when it is dragged or thrown past the margin
package boundary

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

// State is the boundary state of one body
type State uint8

const (
	StateInBounds State = iota
	StateOutOfBounds
)

func (s State) String() string {
	if s == StateOutOfBounds {
		return "out"
	}
	return "in"
}

// Viewport reports the scene-local view; ok is false when the scene is gone
type Viewport interface {
	View() (view vmath.Rect, ok bool)
}

// Scheduler registers interval callbacks
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// DeletionIntent receives edge-triggered deletion signals
// label is the body label, the only key linking a body to its task
type DeletionIntent interface {
	MarkForDeletion(label string, t task.Task)
	ClearDeletion(label string, t task.Task)
}

// Sample classifies a scene-local position against view expanded by margin
func Sample(pos vmath.Vec2, view vmath.Rect, margin float64) State {
	if pos.X < view.X-margin || pos.X > view.X+view.W+margin ||
		pos.Y < view.Y-margin || pos.Y > view.Y+view.H+margin {
		return StateOutOfBounds
	}
	return StateInBounds
}

// Monitor is the per-body boundary state machine
type Monitor struct {
	body     *physics.Body
	viewport Viewport
	intent   DeletionIntent
	task     task.Task

	margin   float64
	interval time.Duration
	state    State

	cancel   func()
	disposed bool

	statMark  *atomic.Int64
	statClear *atomic.Int64
}

// Option configures a Monitor
type Option func(*Monitor)

// WithMargin sets the out-of-bounds margin in world units
func WithMargin(m float64) Option {
	return func(mon *Monitor) {
		if m >= 0 {
			mon.margin = m
		}
	}
}

// WithInterval sets the sampling period
func WithInterval(d time.Duration) Option {
	return func(mon *Monitor) {
		if d > 0 {
			mon.interval = d
		}
	}
}

// WithStatus counts transitions in reg
func WithStatus(reg *status.Registry) Option {
	return func(mon *Monitor) {
		mon.statMark = reg.Counter(status.BoundaryMark)
		mon.statClear = reg.Counter(status.BoundaryClear)
	}
}

// NewMonitor creates a monitor for body b representing t
func NewMonitor(b *physics.Body, vp Viewport, intent DeletionIntent, t task.Task, opts ...Option) *Monitor {
	m := &Monitor{
		body:     b,
		viewport: vp,
		intent:   intent,
		task:     t,
		margin:   parameter.BoundaryMarginPx,
		interval: parameter.BoundarySampleInterval,
		state:    StateInBounds,

		statMark:  new(atomic.Int64),
		statClear: new(atomic.Int64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the last sampled state
func (m *Monitor) State() State {
	return m.state
}

// Check samples once and applies side effects on a state change
// Returns the current state and whether a transition happened
func (m *Monitor) Check() (State, bool) {
	if m == nil {
		return StateInBounds, false
	}
	if m.disposed || m.body == nil || !m.body.InWorld() || m.viewport == nil {
		return m.state, false
	}
	view, ok := m.viewport.View()
	if !ok {
		return m.state, false
	}

	next := Sample(m.body.Position(), view, m.margin)
	if next == m.state {
		return m.state, false
	}
	m.state = next

	switch next {
	case StateOutOfBounds:
		m.body.SetFeedbackOpacity(parameter.OutOfBoundsOpacity)
		if m.intent != nil {
			m.intent.MarkForDeletion(m.body.Label(), m.task)
		}
		m.statMark.Add(1)
	case StateInBounds:
		m.body.SetFeedbackOpacity(parameter.InBoundsOpacity)
		if m.intent != nil {
			m.intent.ClearDeletion(m.body.Label(), m.task)
		}
		m.statClear.Add(1)
	}
	log.Printf("boundary: %s -> %s at (%.1f, %.1f)", m.body.Label(), next, m.body.Position().X, m.body.Position().Y)
	return next, true
}

// Attach starts periodic sampling and returns the disposer
// The disposer clears the interval once; later calls are no-ops
func (m *Monitor) Attach(sched Scheduler) (dispose func()) {
	if m == nil || sched == nil || m.disposed {
		return func() {}
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = sched.Every(m.interval, func() { m.Check() })
	return m.Dispose
}

// Dispose stops sampling; idempotent
func (m *Monitor) Dispose() {
	if m == nil || m.disposed {
		return
	}
	m.disposed = true
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}
