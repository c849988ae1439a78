package game

import (
	"github.com/google/uuid"
	"github.com/yeonwoo/harvesters-server/internal/geom"
)

// UpgradeStat identifies one purchasable upgrade track.
type UpgradeStat int

const (
	UpgradeBulletSpeed UpgradeStat = iota
	UpgradeBulletRange
	UpgradeBulletDamage
	UpgradeMoveSpeed
)

// ParseUpgradeStat maps a wire name to an UpgradeStat.
func ParseUpgradeStat(s string) (UpgradeStat, bool) {
	switch s {
	case "bullet_speed":
		return UpgradeBulletSpeed, true
	case "bullet_range":
		return UpgradeBulletRange, true
	case "bullet_damage":
		return UpgradeBulletDamage, true
	case "move_speed":
		return UpgradeMoveSpeed, true
	default:
		return 0, false
	}
}

// Player is a human-controlled actor.
type Player struct {
	Actor
	ID    string
	Name  string
	Color int // hue, 0-359

	Score     int
	Level     int
	Health    float64
	MaxHealth float64
	Ammo      int
	Dead      bool

	// Upgrade multipliers, all start at 1.
	BulletSpeedMult  float64
	BulletRangeMult  float64
	BulletDamageMult float64
	MoveSpeedMult    float64

	PointsEarned int
	PointsSpent  int

	SpeedBoostTicks int

	// Intent set by the input layer, consumed by Step.
	intent        geom.Vec2
	fireRequested bool

	nextLevelScore int
}

// NewPlayer creates a player at a world-chosen open position.
func (w *World) NewPlayer(name string) *Player {
	x, y := w.randomOpenPosition(w.tuning.PlayerRadius)
	p := &Player{
		Actor: Actor{
			X:      x,
			Y:      y,
			Radius: w.tuning.PlayerRadius,
			Facing: geom.Vec2{X: 1, Y: 0},
			Speed:  w.tuning.PlayerSpeed,
		},
		ID:               uuid.New().String(),
		Name:             name,
		Color:            w.rng.Intn(360),
		Level:            1,
		Health:           w.tuning.PlayerMaxHealth,
		MaxHealth:        w.tuning.PlayerMaxHealth,
		Ammo:             w.tuning.StartAmmo,
		BulletSpeedMult:  1,
		BulletRangeMult:  1,
		BulletDamageMult: 1,
		MoveSpeedMult:    1,
		nextLevelScore:   w.tuning.LevelFirstThreshold,
	}
	w.players[p.ID] = p
	return p
}

// UnspentPoints returns upgrade points earned but not yet spent.
func (p *Player) UnspentPoints() int {
	return p.PointsEarned - p.PointsSpent
}

// effectiveSpeed is the player's movement speed including upgrades and
// the timed speed boost.
func (p *Player) effectiveSpeed(t *Tuning) float64 {
	s := p.Speed * p.MoveSpeedMult
	if p.SpeedBoostTicks > 0 {
		s *= t.SpeedBoostMult
	}
	return s
}

// movePlayers applies each player's direction intent and decays timed buffs.
func (w *World) movePlayers() {
	for _, p := range w.players {
		if p.Dead {
			continue
		}
		if p.SpeedBoostTicks > 0 {
			p.SpeedBoostTicks--
		}
		w.moveActor(&p.Actor, p.intent, p.effectiveSpeed(&w.tuning))
	}
}
