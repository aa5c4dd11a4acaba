package timeline

import (
	"log"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/status"
	"github.com/lixenwraith/taskfall/vmath"
)

// Scheduler provides frame callbacks for the strip and an interval for the clock label
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
	Every(d time.Duration, fn func()) (cancel func())
}

// Clock is the wall-clock source
type Clock interface {
	Now() time.Time
}

// Config holds the day window in minutes since midnight and the sweep margins
type Config struct {
	DayStart int
	DayEnd   int
	Top      float64
	Bottom   float64
}

// DefaultConfig returns the 08:00-20:00 window with default margins
func DefaultConfig() Config {
	start, _ := ParseClock(parameter.DefaultDayStart)
	end, _ := ParseClock(parameter.DefaultDayEnd)
	return Config{
		DayStart: start,
		DayEnd:   end,
		Top:      parameter.TimelineTopMargin,
		Bottom:   parameter.TimelineBottomMargin,
	}
}

// Boundary owns the time strip body for the lifetime of one mount
type Boundary struct {
	sim   physics.Simulation
	sched Scheduler
	clock Clock
	cfg   Config

	body        *physics.Body
	view        vmath.Rect
	cancelFrame func()
	cancelLabel func()
	label       string
	mounted     bool

	statProgress *status.Gauge
	statClock    *status.Label
}

// Option configures a Boundary
type Option func(*Boundary)

// WithStatus publishes progress and the clock label to reg
func WithStatus(reg *status.Registry) Option {
	return func(b *Boundary) {
		b.statProgress = reg.Gauge(status.TimelineProgress)
		b.statClock = reg.Label(status.TimelineClock)
	}
}

// New creates an unmounted boundary
func New(sim physics.Simulation, sched Scheduler, clock Clock, cfg Config, opts ...Option) *Boundary {
	b := &Boundary{
		sim:          sim,
		sched:        sched,
		clock:        clock,
		cfg:          cfg,
		statProgress: new(status.Gauge),
		statClock:    new(status.Label),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Mount creates the strip across view and starts the per-frame update chain
// Mounting again replaces the previous body
func (b *Boundary) Mount(view vmath.Rect) {
	if b == nil || b.sim == nil || b.sched == nil || b.clock == nil {
		return
	}
	if b.mounted {
		b.Unmount()
	}

	b.view = view
	width := view.W - 2*parameter.TimelineStripInset
	if width < 1 {
		width = 1
	}
	fill, err := colorful.Hex(parameter.TimelineColor)
	if err != nil {
		fill = colorful.Color{R: 1, G: 1, B: 0.8}
	}

	now := b.clock.Now()
	b.body = b.sim.CreateBody(
		physics.Box(width, parameter.TimelineStripHeight),
		vmath.V(view.X+view.W/2, b.y(now)),
		physics.BodyOptions{
			Label:    parameter.TimelineLabel,
			Static:   true,
			Friction: parameter.BaseFriction,
			Style:    physics.Style{Fill: fill, Stroke: fill, Opacity: 1},
		},
	)
	b.sim.Add(b.body)
	b.mounted = true

	b.refreshLabel()
	b.cancelLabel = b.sched.Every(parameter.ClockLabelInterval, b.refreshLabel)
	b.cancelFrame = b.sched.RequestFrame(b.frame)
	log.Printf("timeline: mounted %s-%s at y=%.1f", FormatClock(b.cfg.DayStart), FormatClock(b.cfg.DayEnd), b.body.Position().Y)
}

// frame repositions the strip and requests the next frame
func (b *Boundary) frame(now time.Time) {
	if !b.mounted || b.body == nil {
		return
	}
	b.sim.SetPosition(b.body, vmath.V(b.view.X+b.view.W/2, b.y(now)))
	b.cancelFrame = b.sched.RequestFrame(b.frame)
}

func (b *Boundary) y(now time.Time) float64 {
	current := MinutesOf(now)
	b.statProgress.Set(Progress(b.cfg.DayStart, b.cfg.DayEnd, current))
	return b.view.Y + YPosition(b.cfg.DayStart, b.cfg.DayEnd, current, b.view.H, b.cfg.Top, b.cfg.Bottom)
}

func (b *Boundary) refreshLabel() {
	b.label = b.clock.Now().Format("15:04")
	b.statClock.Set(b.label)
}

// Unmount stops the update chain and removes the strip; idempotent
func (b *Boundary) Unmount() {
	if b == nil || !b.mounted {
		return
	}
	b.mounted = false
	if b.cancelFrame != nil {
		b.cancelFrame()
		b.cancelFrame = nil
	}
	if b.cancelLabel != nil {
		b.cancelLabel()
		b.cancelLabel = nil
	}
	if b.body != nil {
		b.sim.Remove(b.body)
		b.body = nil
	}
	log.Printf("timeline: unmounted")
}

// Mounted reports whether the strip is live
func (b *Boundary) Mounted() bool {
	return b != nil && b.mounted
}

// Body returns the strip body, nil when unmounted
func (b *Boundary) Body() *physics.Body {
	if b == nil {
		return nil
	}
	return b.body
}

// Y returns the strip's current vertical position, ok is false when unmounted
func (b *Boundary) Y() (float64, bool) {
	if b == nil || b.body == nil {
		return 0, false
	}
	return b.body.Position().Y, true
}

// Label returns the "HH:MM" clock text, refreshed every second while mounted
func (b *Boundary) Label() string {
	if b == nil {
		return ""
	}
	return b.label
}
