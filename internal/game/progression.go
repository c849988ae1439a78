package game

// addScore credits score to a player and grants one level and one upgrade
// point per threshold crossed. A single reward can cross several thresholds,
// hence the loop. Thresholds form an arithmetic sequence: 20, 42, 64, ...
func (w *World) addScore(p *Player, amount int) {
	p.Score += amount
	for p.Score >= p.nextLevelScore {
		p.Level++
		p.PointsEarned++
		p.nextLevelScore += w.tuning.LevelThresholdStep
	}
}

// advanceRound runs the round timer. On completion: round number increments,
// every existing enemy's max and current health rise by the fixed bonus, one
// extra enemy spawns scaled to the strongest player, and the item spawn
// interval tightens.
func (w *World) advanceRound() {
	w.roundTick++
	if w.roundTick < w.tuning.RoundDuration {
		return
	}
	w.roundTick = 0
	w.round++

	bonus := w.tuning.RoundHealthBonus
	for _, e := range w.enemies {
		e.MaxHealth += bonus
		e.Health += bonus
	}

	seed := w.tuning.EnemyBaseHealth
	if top := w.strongestPlayerMaxHealth(); top > 0 {
		seed = top + bonus
	}
	w.spawnEnemy(seed)

	w.spawnInterval = int(float64(w.spawnInterval) * w.tuning.SpawnTighten)
	if w.spawnInterval < 1 {
		w.spawnInterval = 1
	}
}

// RoundTicksRemaining returns ticks left before the next round escalation.
func (w *World) RoundTicksRemaining() int {
	return w.tuning.RoundDuration - w.roundTick
}

func (w *World) strongestPlayerMaxHealth() float64 {
	best := 0.0
	for _, p := range w.players {
		if p.MaxHealth > best {
			best = p.MaxHealth
		}
	}
	return best
}
