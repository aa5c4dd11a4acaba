// Package engine drives the simulation: host scheduler, time sources and the single loop goroutine
package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/status"
)

// Stepper advances a simulation by a fixed timestep
type Stepper interface {
	Step(dt time.Duration)
}

// Loop owns the world, the scheduler and rendering; everything they touch runs on its goroutine
// Per frame: posted input -> due timers -> physics steps -> frame callbacks -> render
type Loop struct {
	sched *Scheduler
	wall  TimeProvider
	clock *PausableClock
	world Stepper

	render func(now time.Time)
	input  chan func()

	frameInterval time.Duration
	step          time.Duration
	maxCatchUp    int

	lastSim     time.Time
	accumulator time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	statFrames *atomic.Int64
	statSteps  *atomic.Int64
}

// LoopOption configures a Loop
type LoopOption func(*Loop)

// WithFrameInterval sets the target frame period
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.frameInterval = d
		}
	}
}

// WithPhysicsStep sets the fixed physics timestep
func WithPhysicsStep(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.step = d
		}
	}
}

// WithRenderer sets the callback drawing each frame
func WithRenderer(fn func(now time.Time)) LoopOption {
	return func(l *Loop) {
		l.render = fn
	}
}

// WithStatus reports frame and step counters to reg
func WithStatus(reg *status.Registry) LoopOption {
	return func(l *Loop) {
		l.statFrames = reg.Counter(status.EngineFrames)
		l.statSteps = reg.Counter(status.EngineSteps)
	}
}

// NewLoop creates a loop; wall drives timers and frames, clock drives physics
func NewLoop(sched *Scheduler, wall TimeProvider, clock *PausableClock, world Stepper, opts ...LoopOption) *Loop {
	if wall == nil {
		wall = NewMonotonicTimeProvider()
	}
	if clock == nil {
		clock = NewPausableClock(wall)
	}
	l := &Loop{
		sched:         sched,
		wall:          wall,
		clock:         clock,
		world:         world,
		input:         make(chan func(), parameter.InputQueueSize),
		frameInterval: parameter.FrameUpdateInterval,
		step:          parameter.PhysicsStepInterval,
		maxCatchUp:    parameter.PhysicsMaxCatchUp,
		stopChan:      make(chan struct{}),
		statFrames:    new(atomic.Int64),
		statSteps:     new(atomic.Int64),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSim = clock.Now()
	return l
}

// Scheduler returns the loop's scheduler
func (l *Loop) Scheduler() *Scheduler { return l.sched }

// Clock returns the pausable physics clock
func (l *Loop) Clock() *PausableClock { return l.clock }

// Post hands fn to the loop goroutine; safe from any goroutine
// Returns false when the input queue is full and fn was dropped
func (l *Loop) Post(fn func()) bool {
	select {
	case l.input <- fn:
		return true
	default:
		return false
	}
}

// Tick runs one frame at wall time now
func (l *Loop) Tick(now time.Time) {
	l.drainInput()

	if l.sched != nil {
		l.sched.Advance(now)
	}
	l.stepPhysics()
	if l.sched != nil {
		l.sched.RunFrame(now)
	}
	if l.render != nil {
		l.render(now)
	}
	l.statFrames.Add(1)
}

// stepPhysics consumes elapsed simulation time in fixed steps, dropping backlog beyond maxCatchUp
func (l *Loop) stepPhysics() {
	simNow := l.clock.Now()
	elapsed := simNow.Sub(l.lastSim)
	l.lastSim = simNow
	if elapsed <= 0 || l.world == nil {
		return
	}

	l.accumulator += elapsed
	n := 0
	for l.accumulator >= l.step && n < l.maxCatchUp {
		l.world.Step(l.step)
		l.accumulator -= l.step
		n++
	}
	if l.accumulator >= l.step {
		l.accumulator = 0
	}
	l.statSteps.Add(int64(n))
}

func (l *Loop) drainInput() {
	for {
		select {
		case fn := <-l.input:
			if fn != nil {
				fn()
			}
		default:
			return
		}
	}
}

// Run drives frames until ctx is done or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	nextDeadline := l.wall.Now().Add(l.frameInterval)
	timer := time.NewTimer(l.frameInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case fn := <-l.input:
			// Input is handled immediately so presses are hit-tested against the current frame
			if fn != nil {
				fn()
			}
			continue
		case <-timer.C:
		}

		now := l.wall.Now()
		l.Tick(now)

		nextDeadline = nextDeadline.Add(l.frameInterval)
		maxBehind := l.frameInterval * 2
		if now.Sub(nextDeadline) > maxBehind {
			nextDeadline = now.Add(l.frameInterval)
		}
		sleep := nextDeadline.Sub(l.wall.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// Stop ends Run; idempotent
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}
