package game

// Snapshot is the read-only per-tick view of the world. The networked
// variant serializes it to every client after each step; a local front end
// can consume it directly.
type Snapshot struct {
	Tick           uint64           `json:"tick"`
	Round          int              `json:"round"`
	RoundRemaining int              `json:"round_remaining"`
	Players        []PlayerView     `json:"players"`
	Items          []ItemView       `json:"items"`
	Bots           []BotView        `json:"bots"`
	Enemies        []EnemyView      `json:"enemies"`
	Projectiles    []ProjectileView `json:"projectiles"`
}

type PlayerView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Color     int     `json:"color"`
	Score     int     `json:"score"`
	Level     int     `json:"level"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	Ammo      int     `json:"ammo"`
	Points    int     `json:"points"` // unspent upgrade points
	Boosted   bool    `json:"boosted"`
}

type ItemView struct {
	ID     int64    `json:"id"`
	Type   ItemType `json:"type"`
	Tier   int      `json:"tier"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Radius float64  `json:"radius"`
}

type BotView struct {
	ID     int64   `json:"id"`
	Owner  string  `json:"owner"`
	Role   string  `json:"role"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

type EnemyView struct {
	ID        int64   `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"radius"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
}

type ProjectileView struct {
	ID     int64   `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Snapshot builds the current view. Callers must hold the same external
// lock that serializes Step.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:           w.tick,
		Round:          w.round,
		RoundRemaining: w.RoundTicksRemaining(),
		Players:        make([]PlayerView, 0, len(w.players)),
		Items:          make([]ItemView, 0, len(w.items)),
		Bots:           make([]BotView, 0, len(w.bots)),
		Enemies:        make([]EnemyView, 0, len(w.enemies)),
		Projectiles:    make([]ProjectileView, 0, len(w.projectiles)),
	}

	for _, p := range w.players {
		s.Players = append(s.Players, PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			X:         p.X,
			Y:         p.Y,
			Radius:    p.Radius,
			Color:     p.Color,
			Score:     p.Score,
			Level:     p.Level,
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Ammo:      p.Ammo,
			Points:    p.UnspentPoints(),
			Boosted:   p.SpeedBoostTicks > 0,
		})
	}
	for _, it := range w.items {
		s.Items = append(s.Items, ItemView{
			ID:     it.ID,
			Type:   it.Type,
			Tier:   it.Tier,
			X:      it.X,
			Y:      it.Y,
			Radius: it.Radius,
		})
	}
	for _, b := range w.bots {
		s.Bots = append(s.Bots, BotView{
			ID:     b.ID,
			Owner:  b.OwnerID,
			Role:   b.Role.String(),
			X:      b.X,
			Y:      b.Y,
			Radius: b.Radius,
		})
	}
	for _, e := range w.enemies {
		s.Enemies = append(s.Enemies, EnemyView{
			ID:        e.ID,
			X:         e.X,
			Y:         e.Y,
			Radius:    e.Radius,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		})
	}
	for _, pr := range w.projectiles {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			ID:     pr.ID,
			X:      pr.X,
			Y:      pr.Y,
			Radius: pr.Radius,
		})
	}
	return s
}
