package geom

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether the vector is unusable as a direction:
// zero-length or containing NaN/Inf components.
func (v Vec2) IsZero() bool {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return true
	}
	return v.X == 0 && v.Y == 0
}

// Normalized returns the unit vector in the same direction.
// Degenerate input (zero, NaN, Inf) normalizes to the zero vector,
// which callers treat as "no movement".
func (v Vec2) Normalized() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	l := v.Length()
	return Vec2{X: v.X / l, Y: v.Y / l}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Perp returns the vector rotated 90 degrees counterclockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2
	return math.Sqrt(dx*dx + dy*dy)
}
