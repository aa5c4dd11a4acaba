// Package physics isolates the 2D rigid-body capability the visualization depends on
// behind Simulation, and provides World as the built-in backend
package physics

import (
	"math"
	"time"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/vmath"
)

// Simulation is the capability set consumed by the visualization components
type Simulation interface {
	// CreateBody builds a body at pos without adding it to the world
	CreateBody(shape Shape, pos vmath.Vec2, opts BodyOptions) *Body
	// ApplyForce accumulates an impulse applied on the next step
	ApplyForce(b *Body, force vmath.Vec2)
	// QueryPoint returns the bodies among candidates whose geometry contains p
	QueryPoint(candidates []*Body, p vmath.Vec2) []*Body
	// Add inserts a body into the world, no-op if already present
	Add(b *Body)
	// Remove deletes a body from the world, no-op if absent
	Remove(b *Body)
	// SetPosition teleports a body; static bodies gain a kinematic velocity for the next step
	SetPosition(b *Body, p vmath.Vec2)
}

// World is a single-threaded impulse-based rigid body world
// Bodies collide as circles or convex polygons
type World struct {
	gravity vmath.Vec2
	bodies  []*Body
	nextID  uint64
	steps   uint64
}

// WorldOption configures a World
type WorldOption func(*World)

// WithGravity sets the downward gravity in world units/s²
func WithGravity(g float64) WorldOption {
	return func(w *World) {
		w.gravity = vmath.V(0, g)
	}
}

// NewWorld creates an empty world
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		gravity: vmath.V(0, parameter.Gravity),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ Simulation = (*World)(nil)

// CreateBody builds a body; mass derives from density and shape area
func (w *World) CreateBody(shape Shape, pos vmath.Vec2, opts BodyOptions) *Body {
	w.nextID++
	b := &Body{
		id:          w.nextID,
		label:       opts.Label,
		shape:       shape,
		pos:         pos,
		static:      opts.Static,
		restitution: opts.Restitution,
		friction:    opts.Friction,
		airFriction: vmath.Clamp(opts.AirFriction, 0, 1),
		density:     opts.Density,
		style:       opts.Style,
		feedback:    1,
	}
	if !b.static {
		density := opts.Density
		if density <= 0 {
			density = 1
		}
		b.mass = density * shape.Area()
		if b.mass > 0 {
			b.invMass = 1 / b.mass
		}
	}
	return b
}

// ApplyForce accumulates an impulse; ignored for static or nil bodies
func (w *World) ApplyForce(b *Body, force vmath.Vec2) {
	if b == nil || b.static {
		return
	}
	b.force = b.force.Add(force)
}

// QueryPoint returns candidates containing p, preserving candidate order
func (w *World) QueryPoint(candidates []*Body, p vmath.Vec2) []*Body {
	var hits []*Body
	for _, b := range candidates {
		if b != nil && b.Contains(p) {
			hits = append(hits, b)
		}
	}
	return hits
}

// QueryAll returns world bodies containing p, most recently added first
func (w *World) QueryAll(p vmath.Vec2) []*Body {
	var hits []*Body
	for i := len(w.bodies) - 1; i >= 0; i-- {
		if w.bodies[i].Contains(p) {
			hits = append(hits, w.bodies[i])
		}
	}
	return hits
}

// Add inserts a body into the world
func (w *World) Add(b *Body) {
	if b == nil || b.world == w {
		return
	}
	if b.world != nil {
		b.world.Remove(b)
	}
	b.world = w
	w.bodies = append(w.bodies, b)
}

// Remove deletes a body from the world
func (w *World) Remove(b *Body) {
	if b == nil || b.world != w {
		return
	}
	for i, o := range w.bodies {
		if o == b {
			copy(w.bodies[i:], w.bodies[i+1:])
			w.bodies[len(w.bodies)-1] = nil
			w.bodies = w.bodies[:len(w.bodies)-1]
			break
		}
	}
	b.world = nil
	b.grabbed = false
}

// SetPosition teleports a body
func (w *World) SetPosition(b *Body, p vmath.Vec2) {
	if b == nil {
		return
	}
	if b.static {
		// Earlier moves with no step in between were teleports; only the last one carries velocity
		b.kinematicDelta = p.Sub(b.pos)
	}
	b.pos = p
}

// Grab takes a dynamic body out of the simulation's dynamics until Release
func (w *World) Grab(b *Body) {
	if b == nil || b.static || b.world != w {
		return
	}
	b.grabbed = true
	b.vel = vmath.Vec2{}
	b.force = vmath.Vec2{}
}

// Release returns a grabbed body to the dynamics with the given velocity
func (w *World) Release(b *Body, vel vmath.Vec2) {
	if b == nil || !b.grabbed {
		return
	}
	b.grabbed = false
	b.vel = vel.ClampLen(parameter.DragMaxReleaseSpeed)
}

// Bodies returns a snapshot of the bodies in insertion order
func (w *World) Bodies() []*Body {
	out := make([]*Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Len returns the number of bodies in the world
func (w *World) Len() int { return len(w.bodies) }

// Has reports whether b is in this world
func (w *World) Has(b *Body) bool { return b != nil && b.world == w }

// Steps returns the number of completed steps
func (w *World) Steps() uint64 { return w.steps }

// Clear removes every body
func (w *World) Clear() {
	for _, b := range w.bodies {
		b.world = nil
		b.grabbed = false
	}
	w.bodies = w.bodies[:0]
}

// Step advances the world: v = v + g*dt + F/m; air drag; p = p + v*dt; then contacts
func (w *World) Step(dt time.Duration) {
	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	for _, b := range w.bodies {
		if b.static {
			b.kinematicVel = b.kinematicDelta.Scale(1 / sec)
			b.kinematicDelta = vmath.Vec2{}
			continue
		}
		if b.grabbed {
			b.force = vmath.Vec2{}
			continue
		}
		b.vel = b.vel.Add(w.gravity.Scale(sec)).Add(b.force.Scale(b.invMass))
		b.force = vmath.Vec2{}
		b.vel = b.vel.Scale(math.Pow(1-b.airFriction, sec*parameter.AirFrictionReferenceHz))
		b.pos = b.pos.Add(b.vel.Scale(sec))
	}

	for iter := 0; iter < parameter.SolverIterations; iter++ {
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				resolve(w.bodies[i], w.bodies[j])
			}
		}
	}

	w.steps++
}
