// Package gesture recognizes long presses on a single task body
package gesture

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/scene"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/vmath"
)

// State is the recognizer state
type State uint8

const (
	StateIdle State = iota
	StatePressed
	StateLongPressFired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateLongPressFired:
		return "fired"
	}
	return "unknown"
}

// HitTester answers exact point-in-shape queries
type HitTester interface {
	QueryPoint(candidates []*physics.Body, p vmath.Vec2) []*physics.Body
}

// Listeners is the shared scene the recognizer listens on
type Listeners interface {
	AddListener(fn scene.Listener) (dispose func())
}

// Scheduler arms the long press timeout
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
	Now() time.Time
}

// ActiveTask receives the task selected by a long press
type ActiveTask interface {
	SetActiveTask(t task.Task)
}

// DetailPanel shows or hides task details
type DetailPanel interface {
	ShowDetail(show bool)
}

// Recognizer is the per-body press state machine
// Idle -> Pressed on a press inside the body; Pressed -> LongPressFired after the threshold
// Release, moving off the body or leaving the scene cancels back to Idle
type Recognizer struct {
	body   *physics.Body
	task   task.Task
	hits   HitTester
	scene  Listeners
	sched  Scheduler
	active ActiveTask
	detail DetailPanel

	threshold time.Duration
	state     State
	pressedAt time.Time
	cancel    func()

	removeListener func()
	disposed       bool

	statFired  *atomic.Int64
	statCancel *atomic.Int64
}

// Deps groups the shared collaborators of a recognizer
type Deps struct {
	Hits   HitTester
	Scene  Listeners
	Sched  Scheduler
	Active ActiveTask
	Detail DetailPanel
	Status *status.Registry
}

// Option configures a Recognizer
type Option func(*Recognizer)

// WithThreshold sets the long press duration
func WithThreshold(d time.Duration) Option {
	return func(r *Recognizer) {
		if d > 0 {
			r.threshold = d
		}
	}
}

// New creates a recognizer for body b representing t
func New(b *physics.Body, t task.Task, deps Deps, opts ...Option) *Recognizer {
	r := &Recognizer{
		body:       b,
		task:       t,
		hits:       deps.Hits,
		scene:      deps.Scene,
		sched:      deps.Sched,
		active:     deps.Active,
		detail:     deps.Detail,
		threshold:  parameter.LongPressDuration,
		state:      StateIdle,
		statFired:  deps.Status.Counter(status.GestureLongPress),
		statCancel: deps.Status.Counter(status.GestureCancel),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current state
func (r *Recognizer) State() State {
	return r.state
}

// Attach registers the recognizer's listener on the shared scene and returns its disposer
func (r *Recognizer) Attach() (dispose func()) {
	if r == nil || r.scene == nil || r.disposed {
		return func() {}
	}
	if r.removeListener == nil {
		r.removeListener = r.scene.AddListener(r.Handle)
	}
	return r.Dispose
}

// Dispose removes the listener and cancels a pending timeout; idempotent
func (r *Recognizer) Dispose() {
	if r == nil || r.disposed {
		return
	}
	r.disposed = true
	r.clearTimer()
	r.state = StateIdle
	if r.removeListener != nil {
		r.removeListener()
		r.removeListener = nil
	}
}

// Handle advances the state machine with one pointer event
func (r *Recognizer) Handle(ev scene.PointerEvent) {
	if r == nil || r.disposed {
		return
	}
	switch ev.Kind {
	case scene.PointerDown:
		r.onDown(ev)
	case scene.PointerMove:
		r.onMove(ev)
	case scene.PointerUp:
		r.onUp()
	case scene.PointerLeave:
		r.reset("leave")
	}
}

func (r *Recognizer) onDown(ev scene.PointerEvent) {
	if r.state != StateIdle {
		return
	}
	if ev.Touch && ev.Touches != 1 {
		return
	}
	if !r.hit(ev.Pos) || r.sched == nil {
		return
	}
	r.state = StatePressed
	r.pressedAt = r.sched.Now()
	r.cancel = r.sched.After(r.threshold, r.fire)
}

func (r *Recognizer) onMove(ev scene.PointerEvent) {
	if r.state != StatePressed {
		return
	}
	// Body keeps falling while held, so the hit region is queried again on each move
	if (ev.Touch && ev.Touches > 1) || !r.hit(ev.Pos) {
		r.reset("moved off")
	}
}

func (r *Recognizer) onUp() {
	switch r.state {
	case StatePressed:
		held := time.Duration(0)
		if r.sched != nil {
			held = r.sched.Now().Sub(r.pressedAt)
		}
		log.Printf("gesture: %s released after %v", r.body.Label(), held)
		r.reset("released")
	case StateLongPressFired:
		r.state = StateIdle
	}
}

// reset cancels a pending press
func (r *Recognizer) reset(reason string) {
	if r.state == StatePressed {
		r.statCancel.Add(1)
		log.Printf("gesture: %s press cancelled (%s)", r.body.Label(), reason)
	}
	r.clearTimer()
	r.state = StateIdle
}

func (r *Recognizer) clearTimer() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// fire runs when the timeout elapses; stale timeouts are ignored
func (r *Recognizer) fire() {
	r.cancel = nil
	if r.disposed || r.state != StatePressed || r.body == nil || !r.body.InWorld() {
		return
	}
	r.state = StateLongPressFired
	r.statFired.Add(1)

	pos := r.body.Position()
	log.Printf("gesture: long press on %s at (%.1f, %.1f)", r.body.Label(), pos.X, pos.Y)

	if r.active != nil {
		r.active.SetActiveTask(r.task)
	}
	if r.detail != nil {
		r.detail.ShowDetail(true)
	}
}

func (r *Recognizer) hit(p vmath.Vec2) bool {
	if r.body == nil || r.hits == nil || !r.body.InWorld() {
		return false
	}
	return len(r.hits.QueryPoint([]*physics.Body{r.body}, p)) > 0
}
