package dayview

import (
	"github.com/lixenwraith/taskfall/body"
	"github.com/lixenwraith/taskfall/boundary"
	"github.com/lixenwraith/taskfall/gesture"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/visual"
)

// TaskObject is one task living in the scene: its body, boundary monitor and long press recognizer
// Unmount releases all three exactly once
type TaskObject struct {
	task    task.Task
	opts    visual.Options
	handle  *body.Handle
	monitor *boundary.Monitor
	gesture *gesture.Recognizer

	disposers []func()
	unmounted bool
}

// Task returns the represented task
func (o *TaskObject) Task() task.Task { return o.task }

// Options returns the visual options the body was built from
func (o *TaskObject) Options() visual.Options { return o.opts }

// Body returns the live body, nil after unmount
func (o *TaskObject) Body() *physics.Body { return o.handle.Body() }

// Label returns the body label
func (o *TaskObject) Label() string { return o.handle.Label() }

// Boundary returns the last sampled boundary state
func (o *TaskObject) Boundary() boundary.State { return o.monitor.State() }

// Gesture returns the recognizer state
func (o *TaskObject) Gesture() gesture.State { return o.gesture.State() }

// Mounted reports whether the object still owns a body
func (o *TaskObject) Mounted() bool { return o != nil && !o.unmounted }

// Unmount disposes the listener, the interval and the body; idempotent
func (o *TaskObject) Unmount() {
	if o == nil || o.unmounted {
		return
	}
	o.unmounted = true
	for i := len(o.disposers) - 1; i >= 0; i-- {
		o.disposers[i]()
	}
	o.disposers = nil
	o.handle.Remove()
}
