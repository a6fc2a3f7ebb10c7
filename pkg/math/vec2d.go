package math

import "math"

// Vec2d is a 2D vector with float64 components. Map-space coordinates use
// float64 to avoid precision loss at high zoom levels.
type Vec2d struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2d) Add(other Vec2d) Vec2d {
	return Vec2d{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2d) Sub(other Vec2d) Vec2d {
	return Vec2d{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2d) Scale(s float64) Vec2d {
	return Vec2d{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2d) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}
