package store

import (
	"context"
	"time"
)

// MatchResult is the end-of-run record for one player. Live game state is
// never persisted; only the final outcome is written.
type MatchResult struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Score    int           `json:"score"`
	Level    int           `json:"level"`
	Round    int           `json:"round"`
	Duration time.Duration `json:"duration"`
	EndedAt  time.Time     `json:"ended_at"`
}

// ResultStore defines the interface for persistent match-result storage.
type ResultStore interface {
	// SaveResult inserts one finished run.
	SaveResult(ctx context.Context, res *MatchResult) error
	// TopResults returns the highest-scoring runs, best first.
	TopResults(ctx context.Context, limit int) ([]MatchResult, error)
	// Close releases database resources.
	Close() error
}
