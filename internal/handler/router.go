package handler

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/yeonwoo/harvesters-server/internal/arena"
	"github.com/yeonwoo/harvesters-server/internal/ws"
)

// Router dispatches incoming messages to the appropriate handler.
type Router struct {
	gameplay *GameplayHandler

	// playerMap tracks client ID -> player ID mapping.
	playerMap map[string]string
	mu        sync.RWMutex
}

// NewRouter creates a new message router.
func NewRouter(a *arena.Arena) *Router {
	r := &Router{
		playerMap: make(map[string]string),
	}
	r.gameplay = NewGameplayHandler(a, r)
	return r
}

// RegisterPlayer maps a client ID to a player ID.
func (r *Router) RegisterPlayer(clientID, playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.playerMap[clientID] = playerID
}

// UnregisterPlayer removes a client's player mapping.
func (r *Router) UnregisterPlayer(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.playerMap, clientID)
}

// GetPlayerID returns the player ID for a client, or empty string if not found.
func (r *Router) GetPlayerID(clientID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerMap[clientID]
}

// HandleMessage parses and routes an incoming client message.
func (r *Router) HandleMessage(cm *ws.ClientMessage) {
	var msg ws.Message
	if err := json.Unmarshal(cm.Data, &msg); err != nil {
		slog.Warn("invalid message format", "client", cm.Client.ID, "error", err)
		cm.Client.SendMessage(ws.NewErrorMessage("invalid message format"))
		return
	}

	// Joining is always allowed; everything else needs a live player.
	if msg.Type == ws.TypeJoin {
		r.gameplay.HandleJoin(cm.Client, msg)
		return
	}

	if r.GetPlayerID(cm.Client.ID) == "" {
		cm.Client.SendMessage(ws.NewErrorMessage("join first"))
		return
	}

	switch msg.Type {
	case ws.TypeInput:
		r.gameplay.HandleInput(cm.Client, msg)
	case ws.TypeFire:
		r.gameplay.HandleFire(cm.Client, msg)
	case ws.TypeUpgrade:
		r.gameplay.HandleUpgrade(cm.Client, msg)
	case ws.TypeBuyBot:
		r.gameplay.HandleBuyBot(cm.Client, msg)

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", cm.Client.ID)
		cm.Client.SendMessage(ws.NewErrorMessage("unknown message type: " + msg.Type))
	}
}

// HandleDisconnect handles client disconnection.
func (r *Router) HandleDisconnect(client *ws.Client) {
	r.gameplay.HandleDisconnect(client)
}
