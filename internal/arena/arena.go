package arena

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/yeonwoo/harvesters-server/internal/game"
	"github.com/yeonwoo/harvesters-server/internal/geom"
	"github.com/yeonwoo/harvesters-server/internal/store"
	"github.com/yeonwoo/harvesters-server/internal/ws"
)

const resultSaveTimeout = 5 * time.Second

// Arena owns one live session: the world, its connected clients, and the
// fixed-cadence tick loop. The arena mutex is the single-writer discipline
// for the world; every intent setter and the tick itself take it, so no
// simulation step ever interleaves with another.
type Arena struct {
	world   *game.World
	clients map[string]*ws.Client // player ID -> connection
	joined  map[string]time.Time
	results store.ResultStore // may be nil

	tickInterval time.Duration
	stopCh       chan struct{}
	running      bool

	mu sync.Mutex
}

// New creates an arena with a freshly generated world. A zero seed picks a
// time-based one; any other value makes the session reproducible.
func New(tuning game.Tuning, seed int64, results store.ResultStore) *Arena {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Arena{
		world:        game.NewWorld(tuning, rng),
		clients:      make(map[string]*ws.Client),
		joined:       make(map[string]time.Time),
		results:      results,
		tickInterval: time.Second / time.Duration(tuning.TickRate),
	}
}

// WorldConfig is the static session description sent to a joining player.
type WorldConfig struct {
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	CellSize  float64         `json:"cell_size"`
	TickRate  int             `json:"tick_rate"`
	Obstacles []geom.Obstacle `json:"obstacles"`
}

// Join adds a player for the given connection and returns the assigned
// player ID plus the world configuration. The tick loop starts with the
// first player.
func (a *Arena) Join(client *ws.Client, name string) (string, WorldConfig) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.world.NewPlayer(name)
	a.clients[p.ID] = client
	a.joined[p.ID] = time.Now()

	if !a.running {
		a.running = true
		a.stopCh = make(chan struct{})
		go a.loop(a.stopCh)
	}

	slog.Info("player joined", "player", p.ID, "name", name)
	return p.ID, a.worldConfig()
}

// Caller must hold a.mu.
func (a *Arena) worldConfig() WorldConfig {
	t := a.world.Tuning()
	return WorldConfig{
		Width:     t.WorldWidth,
		Height:    t.WorldHeight,
		CellSize:  t.CellSize,
		TickRate:  t.TickRate,
		Obstacles: a.world.Field().Obstacles,
	}
}

// Leave removes a player synchronously, before the next broadcast can
// include them. The loop stops when the last player is gone.
func (a *Arena) Leave(playerID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removePlayerLocked(playerID)
}

// Caller must hold a.mu.
func (a *Arena) removePlayerLocked(playerID string) {
	if _, ok := a.clients[playerID]; !ok {
		return
	}
	a.world.RemovePlayer(playerID)
	delete(a.clients, playerID)
	delete(a.joined, playerID)
	slog.Info("player left", "player", playerID)

	if len(a.clients) == 0 && a.running {
		a.running = false
		close(a.stopCh)
	}
}

// SetDirection records a player's movement intent.
func (a *Arena) SetDirection(playerID string, dir geom.Vec2) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.SetDirection(playerID, dir)
}

// Fire queues a fire action for the player's next tick.
func (a *Arena) Fire(playerID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.world.RequestFire(playerID)
}

// BuyUpgrade spends an upgrade point. Returns false if denied.
func (a *Arena) BuyUpgrade(playerID string, stat game.UpgradeStat) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.world.BuyUpgrade(playerID, stat)
}

// BuyBot purchases a collector bot. Returns false if denied.
func (a *Arena) BuyBot(playerID string, role game.BotRole) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.world.BuyBot(playerID, role) != nil
}

// PlayerCount returns the number of connected players.
func (a *Arena) PlayerCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.clients)
}

// deadMessage is the final payload for an eliminated player.
type deadMessage struct {
	Score int `json:"score"`
	Level int `json:"level"`
	Round int `json:"round"`
}

// loop drives the world at the fixed tick cadence. Each tick runs the full
// update sequence atomically, then broadcasts the snapshot fire-and-forget.
// The stop channel is captured at start: a restarted session gets a fresh
// channel and a fresh loop, and a stale loop can never latch onto it.
func (a *Arena) loop(stop <-chan struct{}) {
	ticker := time.NewTicker(a.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			a.tick()
		}
	}
}

func (a *Arena) tick() {
	a.mu.Lock()

	res := a.world.Step()
	snap := a.world.Snapshot()

	type casualty struct {
		client *ws.Client
		result *store.MatchResult
	}
	var casualties []casualty
	for _, id := range res.Eliminated {
		p := a.world.Player(id)
		client := a.clients[id]
		if p == nil || client == nil {
			continue
		}
		casualties = append(casualties, casualty{
			client: client,
			result: &store.MatchResult{
				ID:       p.ID,
				Name:     p.Name,
				Score:    p.Score,
				Level:    p.Level,
				Round:    a.world.Round(),
				Duration: time.Since(a.joined[id]),
				EndedAt:  time.Now(),
			},
		})
		a.removePlayerLocked(id)
	}

	recipients := make([]*ws.Client, 0, len(a.clients))
	for _, c := range a.clients {
		recipients = append(recipients, c)
	}
	a.mu.Unlock()

	if msg, err := ws.NewMessage(ws.TypeState, snap); err == nil {
		for _, c := range recipients {
			c.SendMessage(msg)
		}
	}

	for _, c := range casualties {
		if msg, err := ws.NewMessage(ws.TypeDead, deadMessage{
			Score: c.result.Score,
			Level: c.result.Level,
			Round: c.result.Round,
		}); err == nil {
			c.client.SendMessage(msg)
		}
		a.saveResult(c.result)
		c.client.Close()
		slog.Info("player eliminated", "player", c.result.ID, "score", c.result.Score)
	}
}

// saveResult writes a finished run without blocking the tick loop.
func (a *Arena) saveResult(res *store.MatchResult) {
	if a.results == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), resultSaveTimeout)
		defer cancel()
		if err := a.results.SaveResult(ctx, res); err != nil {
			slog.Error("failed to save match result", "player", res.ID, "error", err)
		}
	}()
}
