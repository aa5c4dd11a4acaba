// Package dayview composes the task visualization: it owns the world and scene, keeps the
// stack of pending tasks, mounts one TaskObject per popped task and runs the delete confirmation
package dayview

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/taskfall/body"
	"github.com/lixenwraith/taskfall/boundary"
	"github.com/lixenwraith/taskfall/event"
	"github.com/lixenwraith/taskfall/gesture"
	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/scene"
	"github.com/lixenwraith/taskfall/state"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/task"
	"github.com/lixenwraith/taskfall/timeline"
	"github.com/lixenwraith/taskfall/visual"
	"github.com/lixenwraith/taskfall/vmath"
)

// ErrNothingMarked is returned by Confirm when no task awaits deletion
var ErrNothingMarked = errors.New("no task marked for deletion")

// Archiver is implemented by task sources that can retire a removed task
type Archiver interface {
	Archive(ctx context.Context, id int64) error
}

// Scheduler is the host scheduler shared by every component of the view
type Scheduler interface {
	Now() time.Time
	Every(d time.Duration, fn func()) (cancel func())
	After(d time.Duration, fn func()) (cancel func())
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// Config tunes the view
type Config struct {
	Timeline       timeline.Config
	Gravity        float64
	Margin         float64
	SampleInterval time.Duration
	LongPress      time.Duration
	// Gutter is the width of the floor extension beyond each side wall
	Gutter float64
}

// DefaultConfig returns the terminal defaults
func DefaultConfig() Config {
	return Config{
		Timeline:       timeline.DefaultConfig(),
		Gravity:        parameter.Gravity,
		Margin:         parameter.ViewBoundaryMargin,
		SampleInterval: parameter.BoundarySampleInterval,
		LongPress:      parameter.LongPressDuration,
		Gutter:         parameter.GutterCells,
	}
}

// View is the day view: world, scene, time strip, walls, drag constraint and live task objects
// Owned by the loop goroutine
type View struct {
	cfg     Config
	world   *physics.World
	scene   *scene.Scene
	sched   Scheduler
	session *state.Session
	queue   *event.Queue

	mapper   *visual.Mapper
	factory  *body.Factory
	timeline *timeline.Boundary
	drag     *Drag
	archiver Archiver
	reg      *status.Registry

	walls   []*physics.Body
	stack   []task.Task
	objects []*TaskObject
	mounted bool

	statLive    *status.Gauge
	statPending *status.Gauge
	statSpawned *atomic.Int64
	statRemoved *atomic.Int64
}

// Option configures a View
type Option func(*View)

// WithArchiver retires confirmed deletions in a
func WithArchiver(a Archiver) Option {
	return func(v *View) { v.archiver = a }
}

// WithEvents publishes spawn events onto q
func WithEvents(q *event.Queue) Option {
	return func(v *View) { v.queue = q }
}

// WithMapper replaces the attribute mapper
func WithMapper(m *visual.Mapper) Option {
	return func(v *View) {
		if m != nil {
			v.mapper = m
		}
	}
}

// WithRand seeds spawn positions and pushes
func WithRand(rng *rand.Rand) Option {
	return func(v *View) { v.factory = body.NewFactory(v.world, rng) }
}

// WithStatus reports view metrics to reg
func WithStatus(reg *status.Registry) Option {
	return func(v *View) { v.reg = reg }
}

// New creates the world and the scene covering rect; nothing is added until Mount
func New(rect vmath.Rect, sched Scheduler, session *state.Session, cfg Config, opts ...Option) *View {
	v := &View{
		cfg:     cfg,
		world:   physics.NewWorld(physics.WithGravity(cfg.Gravity)),
		scene:   scene.New(rect),
		sched:   sched,
		session: session,
		mapper:  visual.NewMapper(),
	}
	v.factory = body.NewFactory(v.world, nil)
	for _, opt := range opts {
		opt(v)
	}

	v.statLive = v.reg.Gauge(status.BodiesLive)
	v.statPending = v.reg.Gauge(status.StackPending)
	v.statSpawned = v.reg.Counter(status.BodiesSpawned)
	v.statRemoved = v.reg.Counter(status.BodiesRemoved)

	v.timeline = timeline.New(v.world, sched, sched, cfg.Timeline, timeline.WithStatus(v.reg))
	v.drag = NewDrag(v.world, sched, nil)
	return v
}

// World returns the simulation the view owns
func (v *View) World() *physics.World { return v.world }

// Scene returns the scene handle
func (v *View) Scene() *scene.Scene { return v.scene }

// Timeline returns the time strip
func (v *View) Timeline() *timeline.Boundary { return v.timeline }

// Drag returns the pointer constraint
func (v *View) Drag() *Drag { return v.drag }

// Walls returns the static container bodies
func (v *View) Walls() []*physics.Body { return v.walls }

// Load replaces the pending stack; the most urgent task is popped first
func (v *View) Load(tasks []task.Task) {
	v.stack = make([]task.Task, len(tasks))
	copy(v.stack, tasks)
	task.SortStack(v.stack)
	v.statPending.Set(float64(len(v.stack)))
	log.Printf("dayview: loaded %d tasks", len(v.stack))
}

// Pending returns the number of tasks left on the stack
func (v *View) Pending() int { return len(v.stack) }

// Peek returns the task AddNext would pop
func (v *View) Peek() (task.Task, bool) {
	if len(v.stack) == 0 {
		return task.Task{}, false
	}
	return v.stack[len(v.stack)-1], true
}

// Mount builds the container, the time strip and the drag constraint
func (v *View) Mount() {
	view, ok := v.scene.View()
	if !ok || v.mounted {
		return
	}
	v.mounted = true
	v.buildWalls(view)
	v.timeline.Mount(view)
	v.drag.Attach(v.scene)
	log.Printf("dayview: mounted %.0fx%.0f", view.W, view.H)
}

// Mounted reports whether the view is live
func (v *View) Mounted() bool { return v.mounted }

// buildWalls surrounds view with static walls; the floor extends across both gutters
func (v *View) buildWalls(view vmath.Rect) {
	for _, w := range v.walls {
		v.world.Remove(w)
	}
	v.walls = v.walls[:0]

	t := parameter.WallThickness
	floorW := view.W + 2*v.cfg.Gutter + 2*t
	specs := []struct {
		label string
		pos   vmath.Vec2
		w, h  float64
	}{
		{"wall-top", vmath.V(view.X+view.W/2, view.Y-t/2), view.W, t},
		{"wall-bottom", vmath.V(view.X+view.W/2, view.Y+view.H+t/2), floorW, t},
		{"wall-left", vmath.V(view.X-t/2, view.Y+view.H/2), t, view.H + 2*t},
		{"wall-right", vmath.V(view.X+view.W+t/2, view.Y+view.H/2), t, view.H + 2*t},
	}
	for _, s := range specs {
		w := v.world.CreateBody(physics.Box(s.w, s.h), s.pos, physics.BodyOptions{
			Label:    s.label,
			Static:   true,
			Friction: parameter.BaseFriction,
		})
		v.world.Add(w)
		v.walls = append(v.walls, w)
	}
}

// AddNext pops the most urgent pending task into the scene
// Returns false when the stack is empty or the view is not mounted
func (v *View) AddNext() (*TaskObject, bool) {
	if !v.mounted {
		return nil, false
	}
	if len(v.stack) == 0 {
		log.Printf("dayview: no more tasks")
		return nil, false
	}
	t := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	v.statPending.Set(float64(len(v.stack)))

	o := v.spawn(t)
	if o == nil {
		return nil, false
	}
	return o, true
}

// spawn maps t, creates its body and attaches its monitor and recognizer
func (v *View) spawn(t task.Task) *TaskObject {
	view, ok := v.scene.View()
	if !ok {
		return nil
	}
	opts := v.mapper.Map(t, view.W, view.H, v.sched.Now())
	h := v.factory.Spawn(opts, t, v.spawnRegion(view, opts))
	if h == nil {
		return nil
	}
	b := h.Body()

	mon := boundary.NewMonitor(b, v.scene, v.session, t,
		boundary.WithMargin(v.cfg.Margin),
		boundary.WithInterval(v.cfg.SampleInterval),
		boundary.WithStatus(v.reg),
	)
	rec := gesture.New(b, t, gesture.Deps{
		Hits:   v.world,
		Scene:  v.scene,
		Sched:  v.sched,
		Active: v.session,
		Detail: v.session,
		Status: v.reg,
	}, gesture.WithThreshold(v.cfg.LongPress))

	o := &TaskObject{task: t, opts: opts, handle: h, monitor: mon, gesture: rec}
	o.disposers = append(o.disposers, mon.Attach(v.sched), rec.Attach())
	v.objects = append(v.objects, o)

	v.statSpawned.Add(1)
	v.statLive.Set(float64(len(v.objects)))
	if v.queue != nil {
		v.queue.Push(event.Event{Type: event.EventTaskSpawned, Task: t, At: v.sched.Now()})
	}
	return o
}

// spawnRegion is the part of view below the time strip where a body of opts fits,
// or the whole view when that part is too small
func (v *View) spawnRegion(view vmath.Rect, opts visual.Options) vmath.Rect {
	full := vmath.R(view.X+opts.Width/2, view.Y+opts.Height/2, view.W-opts.Width, view.H-opts.Height)
	y, ok := v.timeline.Y()
	if !ok {
		return full
	}
	top := y + parameter.TimelineStripHeight/2 + opts.Height/2
	bottom := view.Y + view.H - opts.Height/2
	if bottom-top < parameter.MinSpawnHeight {
		return full
	}
	return vmath.R(full.X, top, full.W, bottom-top)
}

// Objects returns the live task objects in spawn order
func (v *View) Objects() []*TaskObject {
	out := make([]*TaskObject, len(v.objects))
	copy(out, v.objects)
	return out
}

// Find returns the live object whose body carries label
func (v *View) Find(label string) *TaskObject {
	if label == "" {
		return nil
	}
	for _, o := range v.objects {
		if o.Label() == label {
			return o
		}
	}
	return nil
}

// remove unmounts o and drops it from the live list
func (v *View) remove(o *TaskObject) {
	o.Unmount()
	for i, x := range v.objects {
		if x == o {
			v.objects = append(v.objects[:i], v.objects[i+1:]...)
			break
		}
	}
	v.statRemoved.Add(1)
	v.statLive.Set(float64(len(v.objects)))
}

// Confirm deletes the marked task: its object is unmounted and the source archives it
func (v *View) Confirm(ctx context.Context) (task.Task, error) {
	m, ok := v.session.ConfirmDeletion()
	if !ok {
		return task.Task{}, ErrNothingMarked
	}
	t := m.Task
	if o := v.Find(m.Label); o != nil {
		v.remove(o)
	}
	if v.archiver == nil || t.ID == nil {
		return t, nil
	}
	if err := v.archiver.Archive(ctx, *t.ID); err != nil {
		return t, fmt.Errorf("archive task %d: %w", *t.ID, err)
	}
	return t, nil
}

// Cancel keeps the marked task and drops its body back into the scene
func (v *View) Cancel() (task.Task, bool) {
	m, ok := v.session.CancelDeletion()
	t := m.Task
	if !ok {
		return t, false
	}
	o := v.Find(m.Label)
	if o == nil || o.Body() == nil {
		return t, true
	}
	view, ok := v.scene.View()
	if !ok {
		return t, true
	}
	b := o.Body()
	if v.drag.Held() == b {
		v.drag.drop(vmath.Vec2{})
	}
	region := v.spawnRegion(view, o.opts)
	v.world.SetPosition(b, vmath.V(region.X+region.W/2, region.Y+region.H/2))
	b.SetVelocity(vmath.Vec2{})
	log.Printf("dayview: kept %q", t.Title)
	return t, true
}

// HideDetail closes the detail panel
func (v *View) HideDetail() {
	v.session.ShowDetail(false)
}

// Resize moves the scene to rect and rebuilds the container and time strip
func (v *View) Resize(rect vmath.Rect) {
	v.scene.Resize(rect)
	if !v.mounted {
		return
	}
	view, ok := v.scene.View()
	if !ok {
		return
	}
	v.buildWalls(view)
	v.timeline.Mount(view)
}

// Unmount tears down every task object, the strip, the walls and the scene
func (v *View) Unmount() {
	if !v.mounted {
		return
	}
	v.mounted = false
	for _, o := range v.objects {
		o.Unmount()
	}
	v.objects = nil
	v.statLive.Set(0)
	v.drag.Dispose()
	v.timeline.Unmount()
	for _, w := range v.walls {
		v.world.Remove(w)
	}
	v.walls = nil
	v.scene.Unmount()
	log.Printf("dayview: unmounted")
}
