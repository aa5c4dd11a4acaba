package physics

import (
	"math"

	"github.com/lixenwraith/taskfall/vmath"
)

// ShapeKind selects the collision and hit-test geometry
type ShapeKind uint8

const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
)

// Shape is body geometry in body-local coordinates, centered on the body position
// Bodies do not rotate, so polygon vertices are fixed for the body's lifetime
type Shape struct {
	Kind     ShapeKind
	Radius   float64      // ShapeCircle
	Vertices []vmath.Vec2 // ShapePolygon, convex
}

// Circle creates a circle shape
func Circle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// Polygon creates a convex polygon shape from local vertices
func Polygon(verts []vmath.Vec2) Shape {
	return Shape{Kind: ShapePolygon, Vertices: verts}
}

// RegularPolygon creates a regular polygon shape with the given circumradius
func RegularPolygon(sides int, radius float64) Shape {
	return Polygon(vmath.RegularPolygon(sides, radius))
}

// Box creates a w×h rectangle shape
func Box(w, h float64) Shape {
	return Polygon(vmath.BoxPolygon(w, h))
}

// Area returns the shape area in world units²
func (s Shape) Area() float64 {
	if s.Kind == ShapeCircle {
		return math.Pi * s.Radius * s.Radius
	}
	return vmath.PolygonArea(s.Vertices)
}

// Contains reports whether a body-local point lies inside the shape
func (s Shape) Contains(local vmath.Vec2) bool {
	if s.Kind == ShapeCircle {
		return vmath.InCircle(local, vmath.Vec2{}, s.Radius)
	}
	return vmath.InConvexPolygon(local, s.Vertices)
}

// HalfExtents returns half the width and height of the local bounding box
func (s Shape) HalfExtents() vmath.Vec2 {
	if s.Kind == ShapeCircle {
		return vmath.V(s.Radius, s.Radius)
	}
	var h vmath.Vec2
	for _, v := range s.Vertices {
		h.X = math.Max(h.X, math.Abs(v.X))
		h.Y = math.Max(h.Y, math.Abs(v.Y))
	}
	return h
}
