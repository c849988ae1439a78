package game

import (
	"math"

	"github.com/yeonwoo/harvesters-server/internal/geom"
)

// moveActor advances an actor along dir by speed, testing each axis
// separately against the obstacle field. Moving the axes independently lets
// an actor slide along a wall when only one axis is blocked; when both are
// blocked it tries a perpendicular step in either sign to escape corner
// wedges. The final position is clamped to world bounds minus radius.
// Returns the distance actually covered this tick.
func (w *World) moveActor(a *Actor, dir geom.Vec2, speed float64) float64 {
	d := dir.Normalized()
	if d.IsZero() || speed <= 0 {
		return 0
	}
	a.Facing = d

	startX, startY := a.X, a.Y

	nx := a.X + d.X*speed
	if !w.field.Blocked(nx, a.Y, a.Radius) {
		a.X = nx
	}
	ny := a.Y + d.Y*speed
	if !w.field.Blocked(a.X, ny, a.Radius) {
		a.Y = ny
	}

	if a.X == startX && a.Y == startY {
		perp := d.Perp()
		for _, sign := range []float64{1, -1} {
			px := a.X + perp.X*speed*sign
			py := a.Y + perp.Y*speed*sign
			if !w.field.Blocked(px, py, a.Radius) {
				a.X, a.Y = px, py
				break
			}
		}
	}

	a.X, a.Y = w.field.Clamp(a.X, a.Y, a.Radius)
	return math.Hypot(a.X-startX, a.Y-startY)
}

// randomOpenPosition picks a random in-bounds position for an actor of the
// given radius that does not overlap any obstacle. Falls back to the field
// center after a bounded number of attempts (the safe disc is kept clear at
// generation time).
func (w *World) randomOpenPosition(radius float64) (float64, float64) {
	const attempts = 50
	for i := 0; i < attempts; i++ {
		x := radius + w.rng.Float64()*(w.field.Width-2*radius)
		y := radius + w.rng.Float64()*(w.field.Height-2*radius)
		if !w.field.Blocked(x, y, radius) {
			return x, y
		}
	}
	return w.field.Width / 2, w.field.Height / 2
}

// randomOpenPositionIn is randomOpenPosition restricted to a rectangle,
// used for opposite-quadrant enemy relocation.
func (w *World) randomOpenPositionIn(minX, maxX, minY, maxY, radius float64) (float64, float64) {
	const attempts = 50
	for i := 0; i < attempts; i++ {
		x := minX + radius + w.rng.Float64()*(maxX-minX-2*radius)
		y := minY + radius + w.rng.Float64()*(maxY-minY-2*radius)
		if !w.field.Blocked(x, y, radius) {
			return x, y
		}
	}
	return w.randomOpenPosition(radius)
}
