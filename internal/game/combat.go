package game

import "github.com/yeonwoo/harvesters-server/internal/geom"

// Projectile is a live bullet. Damage is fixed at creation from the firer's
// multiplier, so upgrades bought later never retroactively change in-flight
// shots.
type Projectile struct {
	ID       int64
	X        float64
	Y        float64
	Radius   float64
	Velocity geom.Vec2
	Life     int
	Damage   float64
}

// fireRequests turns queued fire intents into projectiles. Firing needs
// positive ammo and a non-degenerate facing vector; a denied request
// consumes nothing.
func (w *World) fireRequests() {
	for _, p := range w.players {
		if !p.fireRequested {
			continue
		}
		p.fireRequested = false
		if p.Dead || p.Ammo <= 0 {
			continue
		}
		facing := p.Facing.Normalized()
		if facing.IsZero() {
			continue
		}

		p.Ammo--
		t := &w.tuning
		w.projectiles = append(w.projectiles, &Projectile{
			ID:       w.nextEntityID(),
			X:        p.X,
			Y:        p.Y,
			Radius:   t.BulletRadius,
			Velocity: facing.Scale(t.BulletSpeed * p.BulletSpeedMult),
			Life:     int(float64(t.BulletLife) * p.BulletRangeMult),
			Damage:   t.BulletBaseDamage * p.BulletDamageMult,
		})
	}
}

// updateProjectiles advances each projectile, tests it against every live
// enemy, and removes it on hit, life expiry, boundary exit or obstacle hit.
// Enemies whose health is floored at zero are removed afterwards.
func (w *World) updateProjectiles() {
	kept := w.projectiles[:0]
	for _, pr := range w.projectiles {
		pr.X += pr.Velocity.X
		pr.Y += pr.Velocity.Y
		pr.Life--

		if hit := w.hitEnemy(pr); hit != nil {
			hit.Health -= pr.Damage
			if hit.Health < 0 {
				hit.Health = 0
			}
			continue
		}

		if pr.Life <= 0 {
			continue
		}
		if pr.X < 0 || pr.X > w.field.Width || pr.Y < 0 || pr.Y > w.field.Height {
			continue
		}
		if w.field.Blocked(pr.X, pr.Y, pr.Radius) {
			continue
		}
		kept = append(kept, pr)
	}
	w.projectiles = kept

	w.sweepDeadEnemies()
}

// hitEnemy returns the first live enemy overlapping the projectile, or nil.
func (w *World) hitEnemy(pr *Projectile) *Enemy {
	for _, e := range w.enemies {
		if e.Health <= 0 {
			continue
		}
		if geom.Distance(pr.X, pr.Y, e.X, e.Y) <= pr.Radius+e.Radius {
			return e
		}
	}
	return nil
}

func (w *World) sweepDeadEnemies() {
	kept := w.enemies[:0]
	for _, e := range w.enemies {
		if e.Health <= 0 {
			continue
		}
		kept = append(kept, e)
	}
	w.enemies = kept
}
