package fortress

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is a 2D vector used for positions, velocities, impulses and directions
// throughout the API. The coordinate system has its origin at the top-left,
// with Y increasing downward (gravity pulls toward +Y).
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Normalize returns v scaled to unit length. The second result is false when
// v is too short (or not finite) to carry a direction; the first result is then
// the zero vector.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l < directionEpsilon || !v.IsFinite() {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Rotate returns v rotated by angle radians around the origin.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// directionEpsilon is the shortest vector still treated as a direction.
const directionEpsilon = 1e-6

// sanitize replaces a non-finite vector with fallback.
func sanitize(v, fallback Vec2) Vec2 {
	if v.IsFinite() {
		return v
	}
	return fallback
}

func toCP(v Vec2) cp.Vector   { return cp.Vector{X: v.X, Y: v.Y} }
func fromCP(v cp.Vector) Vec2 { return Vec2{X: v.X, Y: v.Y} }

// Rect is an axis-aligned rectangle. Used for menu buttons and playfield
// bounds.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
