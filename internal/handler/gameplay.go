package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/yeonwoo/harvesters-server/internal/arena"
	"github.com/yeonwoo/harvesters-server/internal/game"
	"github.com/yeonwoo/harvesters-server/internal/geom"
	"github.com/yeonwoo/harvesters-server/internal/ws"
)

// GameplayHandler handles in-game messages.
type GameplayHandler struct {
	arena  *arena.Arena
	router *Router
}

// NewGameplayHandler creates a new gameplay handler.
func NewGameplayHandler(a *arena.Arena, router *Router) *GameplayHandler {
	return &GameplayHandler{arena: a, router: router}
}

type joinRequest struct {
	Name string `json:"name"`
}

type welcomeResponse struct {
	PlayerID string            `json:"player_id"`
	World    arena.WorldConfig `json:"world"`
}

// HandleJoin creates a player for the connection and replies with the world
// configuration. A second join from the same connection overwrites the
// first: the old player is removed and a fresh one is assigned.
func (h *GameplayHandler) HandleJoin(client *ws.Client, msg ws.Message) {
	var req joinRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Name == "" {
		client.SendMessage(ws.NewErrorMessage("name is required"))
		return
	}

	if old := h.router.GetPlayerID(client.ID); old != "" {
		h.arena.Leave(old)
		h.router.UnregisterPlayer(client.ID)
	}

	playerID, world := h.arena.Join(client, req.Name)
	h.router.RegisterPlayer(client.ID, playerID)

	resp, _ := ws.NewMessage(ws.TypeWelcome, welcomeResponse{
		PlayerID: playerID,
		World:    world,
	})
	client.SendMessage(resp)
}

type inputRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandleInput records the player's intended direction. Vectors arrive
// unnormalized and are normalized inside the simulation; positions are never
// accepted from clients.
func (h *GameplayHandler) HandleInput(client *ws.Client, msg ws.Message) {
	var req inputRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid input data"))
		return
	}

	playerID := h.router.GetPlayerID(client.ID)
	h.arena.SetDirection(playerID, geom.Vec2{X: req.X, Y: req.Y})
}

// HandleFire queues a fire action.
func (h *GameplayHandler) HandleFire(client *ws.Client, _ ws.Message) {
	h.arena.Fire(h.router.GetPlayerID(client.ID))
}

type upgradeRequest struct {
	Stat string `json:"stat"`
}

// HandleUpgrade spends one upgrade point on a stat.
func (h *GameplayHandler) HandleUpgrade(client *ws.Client, msg ws.Message) {
	var req upgradeRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid upgrade data"))
		return
	}

	stat, ok := game.ParseUpgradeStat(req.Stat)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("unknown upgrade stat: " + req.Stat))
		return
	}

	if !h.arena.BuyUpgrade(h.router.GetPlayerID(client.ID), stat) {
		client.SendMessage(ws.NewErrorMessage("no upgrade points"))
	}
}

type buyBotRequest struct {
	Role string `json:"role"`
}

// HandleBuyBot purchases a collector bot.
func (h *GameplayHandler) HandleBuyBot(client *ws.Client, msg ws.Message) {
	var req buyBotRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		client.SendMessage(ws.NewErrorMessage("invalid buy_bot data"))
		return
	}

	role, ok := game.ParseBotRole(req.Role)
	if !ok {
		client.SendMessage(ws.NewErrorMessage("unknown bot role: " + req.Role))
		return
	}

	if !h.arena.BuyBot(h.router.GetPlayerID(client.ID), role) {
		client.SendMessage(ws.NewErrorMessage("not enough points for a bot"))
	}
}

// HandleDisconnect removes the player synchronously so the next broadcast
// no longer includes them. No grace period, no reconnection state.
func (h *GameplayHandler) HandleDisconnect(client *ws.Client) {
	playerID := h.router.GetPlayerID(client.ID)
	if playerID == "" {
		return
	}
	h.arena.Leave(playerID)
	h.router.UnregisterPlayer(client.ID)
	slog.Info("player disconnected", "player", playerID)
}
