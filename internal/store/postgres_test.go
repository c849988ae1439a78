package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url)
	require.NoError(t, err)

	// Clean up results table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM match_results")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func newResult(name string, score int) *MatchResult {
	return &MatchResult{
		ID:       uuid.New().String(),
		Name:     name,
		Score:    score,
		Level:    3,
		Round:    2,
		Duration: 95 * time.Second,
		EndedAt:  time.Now(),
	}
}

func TestPostgresStore_SaveAndTop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveResult(ctx, newResult("first", 340)))
	require.NoError(t, s.SaveResult(ctx, newResult("second", 510)))
	require.NoError(t, s.SaveResult(ctx, newResult("third", 120)))

	top, err := s.TopResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "second", top[0].Name)
	assert.Equal(t, 510, top[0].Score)
	assert.Equal(t, "first", top[1].Name)
}

func TestPostgresStore_TopOnEmptyTable(t *testing.T) {
	s := setupTestStore(t)

	top, err := s.TopResults(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestPostgresStore_DurationRoundTrips(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	res := newResult("runner", 200)
	res.Duration = 150 * time.Second
	require.NoError(t, s.SaveResult(ctx, res))

	top, err := s.TopResults(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 150*time.Second, top[0].Duration)
}
