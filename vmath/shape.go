package vmath

import "math"

// Rect is an axis-aligned rectangle with origin at its top-left corner
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Vec2    { return Vec2{r.X, r.Y} }
func (r Rect) Max() Vec2    { return Vec2{r.X + r.W, r.Y + r.H} }
func (r Rect) Center() Vec2 { return Vec2{r.X + r.W/2, r.Y + r.H/2} }
func (r Rect) Empty() bool  { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside or on the rectangle
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Inset shrinks the rectangle by d on every side; negative d grows it
func (r Rect) Inset(d float64) Rect {
	return Rect{r.X + d, r.Y + d, r.W - 2*d, r.H - 2*d}
}

// Local converts p from the rectangle's parent space into rectangle-local coordinates
func (r Rect) Local(p Vec2) Vec2 {
	return Vec2{p.X - r.X, p.Y - r.Y}
}

// ClosestPoint returns the point of the rectangle nearest to p
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{Clamp(p.X, r.X, r.X+r.W), Clamp(p.Y, r.Y, r.Y+r.H)}
}

// RectAround builds a rectangle of size w×h centered on c
func RectAround(c Vec2, w, h float64) Rect {
	return Rect{c.X - w/2, c.Y - h/2, w, h}
}

// InCircle reports whether p lies inside or on the circle
func InCircle(p, center Vec2, radius float64) bool {
	return p.Sub(center).LenSq() <= radius*radius
}

// InConvexPolygon reports whether p lies inside a convex polygon using the cross-product sign test
// Vertices may be in either winding order
func InConvexPolygon(p Vec2, verts []Vec2) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := verts[i]
		b := verts[(i+1)%n]
		c := b.Sub(a).Cross(p.Sub(a))
		if c > 0 {
			positive = true
		} else if c < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// RegularPolygon returns the vertices of a regular polygon with the given circumradius
// centered on the origin; the first vertex points up
func RegularPolygon(sides int, radius float64) []Vec2 {
	if sides < 3 {
		return nil
	}
	verts := make([]Vec2, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range verts {
		a := -math.Pi/2 + step*float64(i)
		verts[i] = Vec2{radius * math.Cos(a), radius * math.Sin(a)}
	}
	return verts
}

// BoxPolygon returns the corners of a w×h box centered on the origin
func BoxPolygon(w, h float64) []Vec2 {
	hw, hh := w/2, h/2
	return []Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
}

// PolygonArea returns the absolute area of a simple polygon
func PolygonArea(verts []Vec2) float64 {
	var sum float64
	for i := range verts {
		sum += verts[i].Cross(verts[(i+1)%len(verts)])
	}
	return math.Abs(sum) / 2
}

// BoundingRadius returns the largest vertex distance from the origin
func BoundingRadius(verts []Vec2) float64 {
	var r float64
	for _, v := range verts {
		if l := v.Len(); l > r {
			r = l
		}
	}
	return r
}
