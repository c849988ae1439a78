package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/yeonwoo/harvesters-server/internal/arena"
	"github.com/yeonwoo/harvesters-server/internal/config"
	"github.com/yeonwoo/harvesters-server/internal/game"
	"github.com/yeonwoo/harvesters-server/internal/handler"
	"github.com/yeonwoo/harvesters-server/internal/store"
	"github.com/yeonwoo/harvesters-server/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	var results store.ResultStore
	if cfg.DatabaseURL != "" {
		s, err := store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect result store", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		results = s
	} else {
		slog.Info("no DATABASE_URL set, match results will not be persisted")
	}

	tuning := game.DefaultTuning()
	if cfg.TickRate > 0 {
		tuning.TickRate = cfg.TickRate
	}

	a := arena.New(tuning, cfg.Seed, results)
	router := handler.NewRouter(a)

	hub := ws.NewHub()
	hub.OnMessage = router.HandleMessage
	hub.OnDisconnect = router.HandleDisconnect

	go hub.Run()

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(hub, w, r)
	})
	http.HandleFunc("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		handleLeaderboard(results, w, r)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("server starting", "addr", addr, "tick_rate", tuning.TickRate)
	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func handleWebSocket(hub *ws.Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(fmt.Sprintf("client-%d", hub.ClientCount()+1), hub, conn)
	hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}

func handleLeaderboard(results store.ResultStore, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if results == nil {
		w.Write([]byte(`[]`))
		return
	}

	top, err := results.TopResults(r.Context(), 10)
	if err != nil {
		slog.Error("failed to read leaderboard", "error", err)
		http.Error(w, `{"error":"leaderboard unavailable"}`, http.StatusInternalServerError)
		return
	}
	if top == nil {
		top = []store.MatchResult{}
	}
	writeJSON(w, top)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encoding failed"}`, http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

func setupLogger(cfg *config.Config) {
	var h slog.Handler
	opts := &slog.HandlerOptions{}

	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(os.Stdout, opts)
	default:
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(h))
}
