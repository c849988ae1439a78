package game

import "github.com/yeonwoo/harvesters-server/internal/geom"

// Enemy is an autonomous chaser that pursues the nearest living player.
type Enemy struct {
	Actor
	ID        int64
	Health    float64
	MaxHealth float64

	AttackCooldown int
	StuckTicks     int
}

// spawnEnemy creates an enemy with the given health at a random open spot.
func (w *World) spawnEnemy(health float64) *Enemy {
	x, y := w.randomOpenPosition(w.tuning.EnemyRadius)
	e := &Enemy{
		Actor: Actor{
			X:      x,
			Y:      y,
			Radius: w.tuning.EnemyRadius,
			Speed:  w.tuning.EnemySpeed,
		},
		ID:        w.nextEntityID(),
		Health:    health,
		MaxHealth: health,
	}
	w.enemies = append(w.enemies, e)
	return e
}

// nearestLivingPlayer returns the closest non-dead player to (x, y), or nil.
func (w *World) nearestLivingPlayer(x, y float64) *Player {
	var best *Player
	bestDist := 0.0
	for _, p := range w.players {
		if p.Dead {
			continue
		}
		d := geom.Distance(x, y, p.X, p.Y)
		if best == nil || d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// updateEnemies steers every enemy toward its quarry with mild obstacle
// repulsion, tracks stuck ticks, and applies cooldown-gated contact damage.
func (w *World) updateEnemies() {
	t := &w.tuning
	for _, e := range w.enemies {
		if e.AttackCooldown > 0 {
			e.AttackCooldown--
		}

		quarry := w.nearestLivingPlayer(e.X, e.Y)
		if quarry == nil {
			continue
		}

		pursuit := e.VectorTo(quarry.X, quarry.Y)
		dist := pursuit.Length()

		// Nudge away from the nearest obstacle only while far from the
		// quarry; close in, the pure pursuit vector wins so enemies still
		// reach the player beside a wall.
		if dist > t.EnemyRepelRange {
			if obs, obsDist, ok := w.field.NearestObstacle(e.X, e.Y); ok && obsDist < t.EnemyRepelRadius && obsDist > 0 {
				cx, cy := obs.Center()
				away := geom.Vec2{X: e.X - cx, Y: e.Y - cy}.Normalized()
				pursuit = pursuit.Normalized().Add(away.Scale(t.EnemyRepelWeight))
			}
		}

		if pursuit.IsZero() {
			// Exactly overlapping the player: pick any direction.
			pursuit = w.randomUnitVector()
		}

		moved := w.moveActor(&e.Actor, pursuit, e.Speed)
		if moved < e.Speed*0.1 {
			e.StuckTicks++
		} else {
			e.StuckTicks = 0
		}

		if e.StuckTicks >= t.EnemyStuckTicks {
			w.relocateOppositeQuadrant(e, quarry)
			e.StuckTicks = 0
			continue
		}

		// A player already at zero health this tick is in game-over
		// transition; skip further contact damage.
		if quarry.Dead {
			continue
		}
		if e.AttackCooldown == 0 && e.Touches(quarry.X, quarry.Y, quarry.Radius) {
			quarry.Health -= t.EnemyContactDamage
			if quarry.Health <= 0 {
				quarry.Health = 0
				quarry.Dead = true
			}
			e.AttackCooldown = t.EnemyAttackTicks
		}
	}
}

// relocateOppositeQuadrant teleports a stuck enemy into the map quadrant
// diagonally opposite the player.
func (w *World) relocateOppositeQuadrant(e *Enemy, p *Player) {
	halfW := w.field.Width / 2
	halfH := w.field.Height / 2

	minX, maxX := 0.0, halfW
	if p.X < halfW {
		minX, maxX = halfW, w.field.Width
	}
	minY, maxY := 0.0, halfH
	if p.Y < halfH {
		minY, maxY = halfH, w.field.Height
	}

	e.X, e.Y = w.randomOpenPositionIn(minX, maxX, minY, maxY, e.Radius)
}

func (w *World) randomUnitVector() geom.Vec2 {
	for {
		v := geom.Vec2{X: w.rng.Float64()*2 - 1, Y: w.rng.Float64()*2 - 1}
		if !v.IsZero() {
			return v.Normalized()
		}
	}
}
