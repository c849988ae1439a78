package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    score INTEGER NOT NULL,
    level INTEGER NOT NULL,
    round INTEGER NOT NULL,
    duration_seconds DOUBLE PRECISION NOT NULL,
    ended_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_match_results_score ON match_results(score DESC);
`

// PostgresStore implements ResultStore using PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and initializes the schema.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// SaveResult inserts one finished run.
func (s *PostgresStore) SaveResult(ctx context.Context, res *MatchResult) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO match_results (id, name, score, level, round, duration_seconds, ended_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		res.ID, res.Name, res.Score, res.Level, res.Round, res.Duration.Seconds(), res.EndedAt)
	return err
}

// TopResults returns the highest-scoring runs, best first.
func (s *PostgresStore) TopResults(ctx context.Context, limit int) ([]MatchResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, score, level, round, duration_seconds, ended_at
		 FROM match_results ORDER BY score DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []MatchResult
	for rows.Next() {
		var res MatchResult
		var seconds float64
		if err := rows.Scan(&res.ID, &res.Name, &res.Score, &res.Level, &res.Round, &seconds, &res.EndedAt); err != nil {
			return nil, err
		}
		res.Duration = secondsToDuration(seconds)
		results = append(results, res)
	}
	return results, rows.Err()
}

// Close releases database resources.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
