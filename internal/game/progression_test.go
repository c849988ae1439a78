package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One collection event can cross several thresholds; each grants exactly one
// level and one upgrade point. Thresholds: 20, 42, 64, 86, 108, 130, ...
func TestAddScore_LevelLoop(t *testing.T) {
	tests := []struct {
		name       string
		amount     int
		wantLevel  int
		wantPoints int
	}{
		{"below first threshold", 19, 1, 0},
		{"exactly first threshold", 20, 2, 1},
		{"two thresholds", 42, 3, 2},
		{"six thresholds at once", 130, 7, 6},
		{"past six thresholds", 140, 7, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := openWorld(testTuning(), 800, 600)
			p := w.NewPlayer("scorer")

			w.addScore(p, tt.amount)

			assert.Equal(t, tt.wantLevel, p.Level)
			assert.Equal(t, tt.wantPoints, p.PointsEarned)
			assert.Equal(t, tt.amount, p.Score)
		})
	}
}

func TestAddScore_AccumulatesAcrossEvents(t *testing.T) {
	w := openWorld(testTuning(), 800, 600)
	p := w.NewPlayer("scorer")

	w.addScore(p, 15) // 15: no threshold
	assert.Equal(t, 1, p.Level)
	w.addScore(p, 10) // 25: crosses 20
	assert.Equal(t, 2, p.Level)
	w.addScore(p, 20) // 45: crosses 42
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 2, p.PointsEarned)
}

// Round 1 -> 2 with one enemy at health 100: the round after has two enemies,
// the original raised to maxHealth 120, the new one seeded at
// player.maxHealth + 20.
func TestAdvanceRound_EscalationLiterals(t *testing.T) {
	tun := testTuning()
	tun.RoundDuration = 10
	tun.RoundHealthBonus = 20
	tun.EnemyBaseHealth = 100
	w := openWorld(tun, 800, 600)

	p := w.NewPlayer("survivor")
	p.MaxHealth = 100

	original := addEnemy(w, 700, 500, 100)
	intervalBefore := w.spawnInterval

	w.roundTick = 9
	w.advanceRound()

	assert.Equal(t, 2, w.round)
	require.Len(t, w.enemies, 2)
	assert.InDelta(t, 120.0, original.MaxHealth, 0.001)
	assert.InDelta(t, 120.0, original.Health, 0.001)

	spawned := w.enemies[1]
	assert.InDelta(t, 120.0, spawned.MaxHealth, 0.001, "seeded at player.maxHealth + bonus")

	assert.Less(t, w.spawnInterval, intervalBefore, "item spawn interval tightens")
	assert.Zero(t, w.roundTick, "round timer resets")
}

func TestAdvanceRound_NotBeforeTimerFills(t *testing.T) {
	tun := testTuning()
	tun.RoundDuration = 100
	w := openWorld(tun, 800, 600)

	for i := 0; i < 99; i++ {
		w.advanceRound()
	}
	assert.Equal(t, 1, w.round)
	w.advanceRound()
	assert.Equal(t, 2, w.round)
}

func TestBuyUpgrade(t *testing.T) {
	w := openWorld(testTuning(), 800, 600)
	p := w.NewPlayer("buyer")

	assert.False(t, w.BuyUpgrade(p.ID, UpgradeBulletDamage), "no points")

	p.PointsEarned = 2
	assert.True(t, w.BuyUpgrade(p.ID, UpgradeBulletDamage))
	assert.InDelta(t, 1+w.tuning.UpgradeStep, p.BulletDamageMult, 0.001)
	assert.Equal(t, 1, p.UnspentPoints())

	assert.True(t, w.BuyUpgrade(p.ID, UpgradeMoveSpeed))
	assert.False(t, w.BuyUpgrade(p.ID, UpgradeBulletSpeed), "points exhausted")
}
