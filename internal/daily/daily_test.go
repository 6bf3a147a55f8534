package daily_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fifteen/apps/go-server/assets"
	"github.com/robalobadob/fifteen/apps/go-server/internal/daily"
	"github.com/robalobadob/fifteen/apps/go-server/internal/db"
	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	ts := time.Date(2024, 3, 2, 5, 0, 0, 0, loc)
	assert.Equal(t, "2024-03-01", daily.DateKey(ts))
}

func TestSeed(t *testing.T) {
	assert.Equal(t, daily.Seed("2024-03-01", "s"), daily.Seed("2024-03-01", "s"))
	assert.NotEqual(t, daily.Seed("2024-03-01", "s"), daily.Seed("2024-03-02", "s"))
	assert.NotEqual(t, daily.Seed("2024-03-01", "s"), daily.Seed("2024-03-01", "t"))
}

func TestInitializer_SameLayoutForSameDay(t *testing.T) {
	a := daily.Initializer("2024-03-01", "salt").InitialPermutation()
	b := daily.Initializer("2024-03-01", "salt").InitialPermutation()
	assert.Equal(t, a, b)
	assert.NoError(t, game.Validate(a))
}

func newStore(t *testing.T) *daily.Store {
	t.Helper()
	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(sqlDB, assets.Migrations()))
	return daily.NewStore(sqlDB)
}

func TestStore_ResultsAndLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	date := "2024-03-01"

	played, err := s.AlreadyPlayed(ctx, "alice", date)
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "alice", Date: date, Moves: 40, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "bob", Date: date, Moves: 30, ElapsedMs: 20000}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "carol", Date: date, Moves: 30, ElapsedMs: 10000}))
	// duplicate ignored
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "alice", Date: date, Moves: 1, ElapsedMs: 1}))
	require.NoError(t, s.InsertResult(ctx, daily.Result{UserID: "dave", Date: "2024-03-02", Moves: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "alice", date)
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, date, 0)
	require.NoError(t, err)
	assert.Equal(t, []daily.LBRow{
		{UserID: "carol", Moves: 30, ElapsedMs: 10000},
		{UserID: "bob", Moves: 30, ElapsedMs: 20000},
		{UserID: "alice", Moves: 40, ElapsedMs: 9000},
	}, top)

	top, err = s.Leaderboard(ctx, date, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)

	top, err = s.Leaderboard(ctx, "1999-01-01", 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}
