package physics

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/taskfall/vmath"
)

// Style carries render attributes attached to a body
type Style struct {
	Fill    colorful.Color
	Stroke  colorful.Color
	Opacity float64
}

// BodyOptions are the material and render parameters of a new body
type BodyOptions struct {
	Label       string
	Static      bool
	Restitution float64
	Friction    float64
	AirFriction float64
	Density     float64
	Style       Style
}

// Body is a rigid body owned by the component that created it
// All access happens on the simulation loop goroutine
type Body struct {
	id    uint64
	label string
	shape Shape

	pos   vmath.Vec2
	vel   vmath.Vec2
	force vmath.Vec2 // Accumulated until the next step, applied as an impulse

	static bool
	// kinematicDelta is the last SetPosition displacement of a static body before the next step
	kinematicDelta vmath.Vec2
	kinematicVel   vmath.Vec2

	mass    float64
	invMass float64

	restitution float64
	friction    float64
	airFriction float64
	density     float64

	style    Style
	feedback float64 // Opacity multiplier driven by interaction feedback

	grabbed bool
	world   *World
}

func (b *Body) ID() uint64               { return b.id }
func (b *Body) Label() string            { return b.label }
func (b *Body) Shape() Shape             { return b.shape }
func (b *Body) Position() vmath.Vec2     { return b.pos }
func (b *Body) Velocity() vmath.Vec2     { return b.vel }
func (b *Body) IsStatic() bool           { return b.static }
func (b *Body) Mass() float64            { return b.mass }
func (b *Body) Restitution() float64     { return b.restitution }
func (b *Body) Friction() float64        { return b.friction }
func (b *Body) AirFriction() float64     { return b.airFriction }
func (b *Body) Density() float64         { return b.density }
func (b *Body) Style() Style             { return b.style }
func (b *Body) Grabbed() bool            { return b.grabbed }
func (b *Body) InWorld() bool            { return b.world != nil }
func (b *Body) FeedbackOpacity() float64 { return b.feedback }

// SetFeedbackOpacity sets the interaction feedback multiplier (1 = untouched)
func (b *Body) SetFeedbackOpacity(v float64) {
	if b == nil {
		return
	}
	b.feedback = vmath.Clamp(v, 0, 1)
}

// Opacity returns the effective render opacity
func (b *Body) Opacity() float64 {
	return b.style.Opacity * b.feedback
}

// SetVelocity overrides the body velocity
func (b *Body) SetVelocity(v vmath.Vec2) {
	if b == nil || b.static {
		return
	}
	b.vel = v
}

// Contains reports whether world point p lies inside the body's current geometry
func (b *Body) Contains(p vmath.Vec2) bool {
	if b == nil {
		return false
	}
	return b.shape.Contains(p.Sub(b.pos))
}

// Bounds returns the world-space bounding box
func (b *Body) Bounds() vmath.Rect {
	h := b.shape.HalfExtents()
	return vmath.RectAround(b.pos, 2*h.X, 2*h.Y)
}

// WorldVertices returns polygon vertices in world space, nil for circles
func (b *Body) WorldVertices() []vmath.Vec2 {
	if b.shape.Kind != ShapePolygon {
		return nil
	}
	out := make([]vmath.Vec2, len(b.shape.Vertices))
	for i, v := range b.shape.Vertices {
		out[i] = v.Add(b.pos)
	}
	return out
}
