// Package visual maps task attributes to the physical and render parameters of a body
package visual

import (
	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/physics"
)

// ShapeKind is the body outline chosen for a task
type ShapeKind uint8

const (
	ShapeBall ShapeKind = iota
	ShapePentagon
	ShapeRectangle
	ShapeTriangle
)

// Shapes lists the shape variants in policy order
var Shapes = [4]ShapeKind{ShapeBall, ShapePentagon, ShapeRectangle, ShapeTriangle}

func (s ShapeKind) String() string {
	switch s {
	case ShapeBall:
		return "ball"
	case ShapePentagon:
		return "pentagon"
	case ShapeRectangle:
		return "rectangle"
	case ShapeTriangle:
		return "triangle"
	}
	return "unknown"
}

// Options are the derived body parameters for one task
// Size is the radius for round and regular shapes; Width/Height are the bounding extents
type Options struct {
	Shape  ShapeKind
	Size   float64
	Width  float64
	Height float64

	Restitution float64
	Friction    float64
	AirFriction float64
	Density     float64

	Style physics.Style
}

// PhysicsShape builds the collision geometry for the options
func (o Options) PhysicsShape() physics.Shape {
	switch o.Shape {
	case ShapePentagon:
		return physics.RegularPolygon(5, o.Size)
	case ShapeTriangle:
		return physics.RegularPolygon(3, o.Size)
	case ShapeRectangle:
		return physics.Box(o.Width, o.Height)
	default:
		return physics.Circle(o.Size)
	}
}

// BodyOptions converts the mapped parameters to physics body options
func (o Options) BodyOptions(label string) physics.BodyOptions {
	return physics.BodyOptions{
		Label:       label,
		Restitution: o.Restitution,
		Friction:    o.Friction,
		AirFriction: o.AirFriction,
		Density:     o.Density,
		Style:       o.Style,
	}
}

// dimensions returns the bounding width and height of a shape of the given size
func dimensions(shape ShapeKind, size float64) (w, h float64) {
	if shape == ShapeRectangle {
		return size * parameter.RectangleWidthFactor, size * parameter.RectangleHeightFactor
	}
	return 2 * size, 2 * size
}
