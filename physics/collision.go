package physics

import (
	"math"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/vmath"
)

// positionalCorrection is the fraction of penetration removed per solver pass
const positionalCorrection = 0.8

// contact finds overlap between a and b; n points from a to b
// Polygons use a separating axis test against their exact convex outline
func contact(a, b *Body) (n vmath.Vec2, depth float64, ok bool) {
	aCircle := a.shape.Kind == ShapeCircle
	bCircle := b.shape.Kind == ShapeCircle
	if aCircle && bCircle {
		return circleCircle(a.pos, a.shape.Radius, b.pos, b.shape.Radius)
	}
	if !overlaps(a.Bounds(), b.Bounds()) {
		return vmath.Vec2{}, 0, false
	}
	switch {
	case aCircle:
		n, depth, ok = circlePolygon(a.pos, a.shape.Radius, b.WorldVertices(), b.pos)
		return n.Scale(-1), depth, ok
	case bCircle:
		return circlePolygon(b.pos, b.shape.Radius, a.WorldVertices(), a.pos)
	default:
		return polygonPolygon(a.WorldVertices(), b.WorldVertices(), a.pos, b.pos)
	}
}

func overlaps(a, b vmath.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func circleCircle(pa vmath.Vec2, ra float64, pb vmath.Vec2, rb float64) (vmath.Vec2, float64, bool) {
	d := pb.Sub(pa)
	dist := d.Len()
	depth := ra + rb - dist
	if depth <= 0 {
		return vmath.Vec2{}, 0, false
	}
	if dist == 0 {
		return vmath.V(0, 1), depth, true
	}
	return d.Scale(1 / dist), depth, true
}

// edgeNormal returns the unit normal of the edge starting at verts[i]
func edgeNormal(verts []vmath.Vec2, i int) (vmath.Vec2, bool) {
	e := verts[(i+1)%len(verts)].Sub(verts[i])
	if e.IsZero() {
		return vmath.Vec2{}, false
	}
	return e.Perpendicular().Normalize(), true
}

func project(verts []vmath.Vec2, axis vmath.Vec2) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range verts {
		d := v.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// polygonPolygon returns the minimum translation axis between two convex polygons,
// oriented from the polygon centered at ca towards the one centered at cb
func polygonPolygon(va, vb []vmath.Vec2, ca, cb vmath.Vec2) (vmath.Vec2, float64, bool) {
	if len(va) < 3 || len(vb) < 3 {
		return vmath.Vec2{}, 0, false
	}
	best := math.Inf(1)
	var n vmath.Vec2
	for _, verts := range [2][]vmath.Vec2{va, vb} {
		for i := range verts {
			axis, ok := edgeNormal(verts, i)
			if !ok {
				continue
			}
			loA, hiA := project(va, axis)
			loB, hiB := project(vb, axis)
			o := math.Min(hiA, hiB) - math.Max(loA, loB)
			if o <= 0 {
				return vmath.Vec2{}, 0, false
			}
			if o < best {
				best, n = o, axis
			}
		}
	}
	if math.IsInf(best, 1) {
		return vmath.Vec2{}, 0, false
	}
	if cb.Sub(ca).Dot(n) < 0 {
		n = n.Scale(-1)
	}
	return n, best, true
}

// circlePolygon returns the normal pointing from the polygon towards the circle
func circlePolygon(c vmath.Vec2, r float64, verts []vmath.Vec2, center vmath.Vec2) (vmath.Vec2, float64, bool) {
	if len(verts) < 3 {
		return vmath.Vec2{}, 0, false
	}
	axes := make([]vmath.Vec2, 0, len(verts)+1)
	for i := range verts {
		if axis, ok := edgeNormal(verts, i); ok {
			axes = append(axes, axis)
		}
	}
	// Axis through the vertex nearest the circle covers corner contacts
	nearest := verts[0]
	for _, v := range verts[1:] {
		if v.Sub(c).LenSq() < nearest.Sub(c).LenSq() {
			nearest = v
		}
	}
	if d := c.Sub(nearest); !d.IsZero() {
		axes = append(axes, d.Normalize())
	}

	best := math.Inf(1)
	var n vmath.Vec2
	for _, axis := range axes {
		lo, hi := project(verts, axis)
		cc := c.Dot(axis)
		o := math.Min(hi, cc+r) - math.Max(lo, cc-r)
		if o <= 0 {
			return vmath.Vec2{}, 0, false
		}
		if o < best {
			best, n = o, axis
		}
	}
	if math.IsInf(best, 1) {
		return vmath.Vec2{}, 0, false
	}
	if c.Sub(center).Dot(n) < 0 {
		n = n.Scale(-1)
	}
	return n, best, true
}

// velocityOf returns the contact velocity, kinematic for static bodies
func velocityOf(b *Body) vmath.Vec2 {
	if b.static {
		return b.kinematicVel
	}
	return b.vel
}

func inverseMass(b *Body) float64 {
	if b.static || b.grabbed {
		return 0
	}
	return b.invMass
}

// resolve separates overlapping bodies and applies restitution and Coulomb friction
// Static bodies have infinite mass, so a moving static body pushes dynamic ones (squeeze)
func resolve(a, b *Body) {
	if a.grabbed || b.grabbed {
		return
	}
	invA, invB := inverseMass(a), inverseMass(b)
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	n, depth, ok := contact(a, b)
	if !ok {
		return
	}

	corr := n.Scale(depth / invSum * positionalCorrection)
	a.pos = a.pos.Sub(corr.Scale(invA))
	b.pos = b.pos.Add(corr.Scale(invB))

	rv := velocityOf(b).Sub(velocityOf(a))
	vn := rv.Dot(n)
	if vn >= 0 {
		return
	}

	e := math.Max(a.restitution, b.restitution)
	if -vn < parameter.RestingSpeed {
		e = 0
	}
	j := -(1 + e) * vn / invSum
	impulse := n.Scale(j)
	if !a.static {
		a.vel = a.vel.Sub(impulse.Scale(invA))
	}
	if !b.static {
		b.vel = b.vel.Add(impulse.Scale(invB))
	}

	// Friction along the tangent, clamped by the normal impulse
	rv = velocityOf(b).Sub(velocityOf(a))
	tangent := rv.Sub(n.Scale(rv.Dot(n)))
	if tangent.IsZero() {
		return
	}
	tangent = tangent.Normalize()
	mu := math.Sqrt(a.friction * b.friction)
	jt := -rv.Dot(tangent) / invSum
	jt = vmath.Clamp(jt, -j*mu, j*mu)
	fi := tangent.Scale(jt)
	if !a.static {
		a.vel = a.vel.Sub(fi.Scale(invA))
	}
	if !b.static {
		b.vel = b.vel.Add(fi.Scale(invB))
	}
}
