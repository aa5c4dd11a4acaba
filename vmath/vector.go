// Package vmath provides float64 2D vector and geometry helpers for the simulation
package vmath

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2       { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2       { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(f float64) Vec2  { return Vec2{a.X * f, a.Y * f} }
func (a Vec2) Dot(b Vec2) float64    { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Cross(b Vec2) float64  { return a.X*b.Y - a.Y*b.X }
func (a Vec2) LenSq() float64        { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Len() float64          { return math.Sqrt(a.LenSq()) }
func (a Vec2) IsZero() bool          { return a.X == 0 && a.Y == 0 }
func (a Vec2) Perpendicular() Vec2   { return Vec2{-a.Y, a.X} }
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Normalize returns the unit vector, zero-safe
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// ClampLen limits the vector to maxLen while preserving direction
func (a Vec2) ClampLen(maxLen float64) Vec2 {
	l := a.Len()
	if l <= maxLen || l == 0 {
		return a
	}
	return a.Scale(maxLen / l)
}

// Reflect returns velocity reflected off a surface with unit normal n
// v' = v - 2 * dot(v, n) * n
func (a Vec2) Reflect(n Vec2) Vec2 {
	return a.Sub(n.Scale(2 * a.Dot(n)))
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp maps v in [a, b] to [0, 1], unclamped; zero-width ranges map to 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}
