package dayview

import (
	"time"

	"github.com/lixenwraith/taskfall/physics"
	"github.com/lixenwraith/taskfall/scene"
	"github.com/lixenwraith/taskfall/vmath"
)

// Grabber is the world capability the drag constraint needs
type Grabber interface {
	QueryAll(p vmath.Vec2) []*physics.Body
	SetPosition(b *physics.Body, p vmath.Vec2)
	Grab(b *physics.Body)
	Release(b *physics.Body, vel vmath.Vec2)
}

// Drag is the pointer constraint: pressing a body grabs it, moves carry it, release throws it
type Drag struct {
	world  Grabber
	clock  interface{ Now() time.Time }
	accept func(b *physics.Body) bool

	body   *physics.Body
	offset vmath.Vec2
	lastAt time.Time
	vel    vmath.Vec2

	dispose func()
}

// NewDrag creates a drag constraint; accept filters grabbable bodies
func NewDrag(world Grabber, clock interface{ Now() time.Time }, accept func(b *physics.Body) bool) *Drag {
	if accept == nil {
		accept = func(b *physics.Body) bool { return !b.IsStatic() }
	}
	return &Drag{world: world, clock: clock, accept: accept}
}

// Attach registers the constraint on sc
func (d *Drag) Attach(sc *scene.Scene) {
	if d.dispose != nil {
		return
	}
	d.dispose = sc.AddListener(d.Handle)
}

// Dispose releases any held body and removes the listener
func (d *Drag) Dispose() {
	d.drop(vmath.Vec2{})
	if d.dispose != nil {
		d.dispose()
		d.dispose = nil
	}
}

// Held returns the grabbed body, nil when idle
func (d *Drag) Held() *physics.Body {
	if d.body != nil && !d.body.InWorld() {
		d.body = nil
	}
	return d.body
}

// Handle processes one pointer event
func (d *Drag) Handle(ev scene.PointerEvent) {
	switch ev.Kind {
	case scene.PointerDown:
		if ev.Touch && ev.Touches != 1 {
			return
		}
		d.grab(ev.Pos)
	case scene.PointerMove:
		if ev.Touch && ev.Touches > 1 {
			d.drop(vmath.Vec2{})
			return
		}
		d.move(ev.Pos)
	case scene.PointerUp:
		d.drop(d.vel)
	case scene.PointerLeave:
		d.drop(vmath.Vec2{})
	}
}

func (d *Drag) grab(p vmath.Vec2) {
	if d.Held() != nil {
		return
	}
	for _, b := range d.world.QueryAll(p) {
		if !d.accept(b) {
			continue
		}
		d.world.Grab(b)
		d.body = b
		d.offset = p.Sub(b.Position())
		d.lastAt = d.now()
		d.vel = vmath.Vec2{}
		return
	}
}

func (d *Drag) move(p vmath.Vec2) {
	b := d.Held()
	if b == nil {
		return
	}
	target := p.Sub(d.offset)
	now := d.now()
	if dt := now.Sub(d.lastAt).Seconds(); dt > 0 {
		d.vel = target.Sub(b.Position()).Scale(1 / dt)
	}
	d.lastAt = now
	d.world.SetPosition(b, target)
}

func (d *Drag) drop(vel vmath.Vec2) {
	b := d.Held()
	d.body = nil
	d.vel = vmath.Vec2{}
	if b == nil {
		return
	}
	d.world.Release(b, vel)
}

func (d *Drag) now() time.Time {
	if d.clock == nil {
		return time.Now()
	}
	return d.clock.Now()
}
