package game

// Tuning is the single parameterized configuration consumed by every
// simulation component. All distances are in world units, all durations
// in ticks.
type Tuning struct {
	// World
	WorldWidth  float64
	WorldHeight float64
	CellSize    float64 // presentation-only scale factor, echoed to clients
	TickRate    int

	// Obstacles
	ObstacleRects    int
	ObstacleCircles  int
	ObstacleEllipses int
	ObstacleMinSize  float64
	ObstacleMaxSize  float64
	ObstacleMargin   float64
	SpawnSafeRadius  float64

	// Player
	PlayerRadius    float64
	PlayerSpeed     float64
	PlayerMaxHealth float64
	StartAmmo       int
	SpeedBoostMult  float64

	// Items
	ItemSpawnInterval  int     // ticks between spawn attempts (round-tightened)
	ItemMaxAge         int     // despawn anything older
	MaxResourceItems   int
	MaxAmmoItems       int
	ResourceBias       float64 // chance the coin flip lands on resource
	SingletonChance    float64 // chance a spawn cycle tries a power-up instead
	SingletonCooldown  int     // ticks before a consumed power-up may respawn
	ItemPlacementTries int
	ItemRadius         float64

	// Collector bots
	BotRadius       float64
	BotSpeed        float64
	BotStallEpsilon float64 // fraction of speed below which a tick counts as stalled
	BotStallTicks   int     // stalled ticks before random relocation
	BotIdleTicks    int     // ticks without a collection before relocating to owner
	BotCost         int     // upgrade points

	// Chasing enemies
	StartEnemies       int
	EnemyRadius        float64
	EnemySpeed         float64
	EnemyBaseHealth    float64
	EnemyContactDamage float64
	EnemyAttackTicks   int     // contact damage cooldown
	EnemyStuckTicks    int     // stuck ticks before opposite-quadrant relocation
	EnemyRepelRange    float64 // obstacle repulsion applies beyond this player distance
	EnemyRepelRadius   float64 // obstacles closer than this push the enemy
	EnemyRepelWeight   float64

	// Combat
	BulletRadius     float64
	BulletSpeed      float64
	BulletLife       int // base life in ticks, scaled by the range multiplier
	BulletBaseDamage float64

	// Progression
	LevelFirstThreshold int     // score for level 2
	LevelThresholdStep  int     // added per subsequent threshold
	UpgradeStep         float64 // multiplier increase per spent point
	RoundDuration       int     // ticks per round
	RoundHealthBonus    float64 // enemy max-health increase per round
	SpawnTighten        float64 // item spawn interval multiplier per round
}

// DefaultTuning returns the standard game balance.
func DefaultTuning() Tuning {
	return Tuning{
		WorldWidth:  1600,
		WorldHeight: 1200,
		CellSize:    16,
		TickRate:    30,

		ObstacleRects:    6,
		ObstacleCircles:  4,
		ObstacleEllipses: 2,
		ObstacleMinSize:  40,
		ObstacleMaxSize:  120,
		ObstacleMargin:   60,
		SpawnSafeRadius:  150,

		PlayerRadius:    14,
		PlayerSpeed:     4,
		PlayerMaxHealth: 100,
		StartAmmo:       20,
		SpeedBoostMult:  1.6,

		ItemSpawnInterval:  45,
		ItemMaxAge:         900,
		MaxResourceItems:   12,
		MaxAmmoItems:       6,
		ResourceBias:       0.7,
		SingletonChance:    0.12,
		SingletonCooldown:  600,
		ItemPlacementTries: 20,
		ItemRadius:         8,

		BotRadius:       10,
		BotSpeed:        3,
		BotStallEpsilon: 0.05,
		BotStallTicks:   300,
		BotIdleTicks:    750,
		BotCost:         3,

		StartEnemies:       1,
		EnemyRadius:        13,
		EnemySpeed:         2.6,
		EnemyBaseHealth:    100,
		EnemyContactDamage: 10,
		EnemyAttackTicks:   45,
		EnemyStuckTicks:    240,
		EnemyRepelRange:    200,
		EnemyRepelRadius:   120,
		EnemyRepelWeight:   0.4,

		BulletRadius:     4,
		BulletSpeed:      9,
		BulletLife:       40,
		BulletBaseDamage: 20,

		LevelFirstThreshold: 20,
		LevelThresholdStep:  22,
		UpgradeStep:         0.25,
		RoundDuration:       1800,
		RoundHealthBonus:    20,
		SpawnTighten:        0.9,
	}
}
