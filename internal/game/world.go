package game

import (
	"math/rand"

	"github.com/yeonwoo/harvesters-server/internal/geom"
)

// World owns every live entity collection and the obstacle field. It has a
// single logical writer: callers serialize access externally (the arena holds
// a mutex around Step and all intent setters), so nothing here locks.
type World struct {
	tuning Tuning
	field  *geom.Field
	rng    *rand.Rand
	tick   uint64

	players     map[string]*Player
	items       []*Item
	bots        []*Bot
	enemies     []*Enemy
	projectiles []*Projectile

	nextID int64

	// Spawn scheduler state. spawnInterval is a mutable copy of the tuned
	// interval; round escalation tightens it.
	spawnInterval   int
	nextItemSpawn   uint64
	speedBoostGate  uint64
	healthBoostGate uint64

	round     int
	roundTick int
}

// NewWorld builds a world with a freshly generated obstacle field.
// All randomness flows through rng so sessions are reproducible by seed.
func NewWorld(t Tuning, rng *rand.Rand) *World {
	field := geom.Generate(geom.FieldConfig{
		Width:      t.WorldWidth,
		Height:     t.WorldHeight,
		Rects:      t.ObstacleRects,
		Circles:    t.ObstacleCircles,
		Ellipses:   t.ObstacleEllipses,
		MinSize:    t.ObstacleMinSize,
		MaxSize:    t.ObstacleMaxSize,
		Margin:     t.ObstacleMargin,
		SafeX:      t.WorldWidth / 2,
		SafeY:      t.WorldHeight / 2,
		SafeRadius: t.SpawnSafeRadius,
	}, rng)

	w := &World{
		tuning:        t,
		field:         field,
		rng:           rng,
		players:       make(map[string]*Player),
		spawnInterval: t.ItemSpawnInterval,
		round:         1,
	}

	for i := 0; i < t.StartEnemies; i++ {
		w.spawnEnemy(t.EnemyBaseHealth)
	}
	return w
}

// NewWorldWithField is NewWorld with a caller-supplied field, for tests that
// need exact obstacle placement.
func NewWorldWithField(t Tuning, field *geom.Field, rng *rand.Rand) *World {
	return &World{
		tuning:        t,
		field:         field,
		rng:           rng,
		players:       make(map[string]*Player),
		spawnInterval: t.ItemSpawnInterval,
		round:         1,
	}
}

func (w *World) nextEntityID() int64 {
	w.nextID++
	return w.nextID
}

// Tuning returns the world's balance parameters.
func (w *World) Tuning() Tuning {
	return w.tuning
}

// Field returns the immutable obstacle field.
func (w *World) Field() *geom.Field {
	return w.field
}

// Tick returns the current tick count.
func (w *World) Tick() uint64 {
	return w.tick
}

// Round returns the current round number.
func (w *World) Round() int {
	return w.round
}

// Player returns a player by ID, or nil.
func (w *World) Player(id string) *Player {
	return w.players[id]
}

// PlayerCount returns the number of live players.
func (w *World) PlayerCount() int {
	return len(w.players)
}

// RemovePlayer deletes a player and the bots they own.
func (w *World) RemovePlayer(id string) {
	delete(w.players, id)
	kept := w.bots[:0]
	for _, b := range w.bots {
		if b.OwnerID == id {
			w.releaseClaim(b)
			continue
		}
		kept = append(kept, b)
	}
	w.bots = kept
}

// SetDirection records a player's movement intent. Unnormalized and
// degenerate vectors are accepted; normalization happens at integration
// time and degenerate input means "stand still".
func (w *World) SetDirection(playerID string, dir geom.Vec2) {
	if p := w.players[playerID]; p != nil {
		p.intent = dir
	}
}

// RequestFire queues a fire action for the next step.
func (w *World) RequestFire(playerID string) {
	if p := w.players[playerID]; p != nil {
		p.fireRequested = true
	}
}

// BuyUpgrade spends one unspent point on the given stat. Returns false when
// the player is unknown or has no points.
func (w *World) BuyUpgrade(playerID string, stat UpgradeStat) bool {
	p := w.players[playerID]
	if p == nil || p.UnspentPoints() <= 0 {
		return false
	}
	p.PointsSpent++
	step := w.tuning.UpgradeStep
	switch stat {
	case UpgradeBulletSpeed:
		p.BulletSpeedMult += step
	case UpgradeBulletRange:
		p.BulletRangeMult += step
	case UpgradeBulletDamage:
		p.BulletDamageMult += step
	case UpgradeMoveSpeed:
		p.MoveSpeedMult += step
	default:
		p.PointsSpent--
		return false
	}
	return true
}

// StepResult reports what a tick produced beyond state mutation.
type StepResult struct {
	Eliminated []string // players whose health reached zero this tick
}

// Step advances the simulation one tick. The sequence is fixed: player
// movement, combat, item consumption, bot AI, enemy AI, progression, then
// the spawn scheduler. No step interleaves with another tick's step.
func (w *World) Step() StepResult {
	w.tick++

	w.movePlayers()
	w.fireRequests()
	w.updateProjectiles()
	w.collectItems()
	w.updateBots()
	w.updateEnemies()
	w.advanceRound()
	w.spawnItems()
	w.despawnStaleItems()

	var res StepResult
	for id, p := range w.players {
		if p.Dead {
			res.Eliminated = append(res.Eliminated, id)
		}
	}
	return res
}
