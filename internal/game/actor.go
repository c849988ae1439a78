package game

import "github.com/yeonwoo/harvesters-server/internal/geom"

// Actor is the shared circular-body state for players, bots and enemies.
// Actors are owned by the World and mutated only by their own update step.
type Actor struct {
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Radius float64   `json:"radius"`
	Facing geom.Vec2 `json:"facing"`
	Speed  float64   `json:"-"`
}

func (a *Actor) Pos() geom.Vec2 {
	return geom.Vec2{X: a.X, Y: a.Y}
}

// VectorTo returns the unnormalized vector from this actor to a point.
func (a *Actor) VectorTo(x, y float64) geom.Vec2 {
	return geom.Vec2{X: x - a.X, Y: y - a.Y}
}

// DistanceTo returns the center distance from this actor to a point.
func (a *Actor) DistanceTo(x, y float64) float64 {
	return geom.Distance(a.X, a.Y, x, y)
}

// Touches reports whether two circles overlap (summed-radius contact test).
func (a *Actor) Touches(x, y, r float64) bool {
	return a.DistanceTo(x, y) <= a.Radius+r
}
