package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
	"github.com/robalobadob/fifteen/apps/go-server/internal/store"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	g := game.New(game.RandomInitializer{})
	g.Initialize()
	require.NoError(t, st.Save(ctx, g))

	var seen string
	require.NoError(t, st.Get(ctx, g.ID, func(got *game.Game) error {
		seen = got.ID
		return nil
	}))
	assert.Equal(t, g.ID, seen)

	err := st.Get(ctx, "missing", func(*game.Game) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)
	err = st.Update(ctx, "missing", func(*game.Game) error { return nil })
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_UpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	g := game.New(game.FromInts([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}))
	g.Initialize()
	require.NoError(t, st.Save(ctx, g))

	err := st.Update(ctx, g.ID, func(g *game.Game) error { return g.ProcessMove(board.Down) })
	assert.ErrorIs(t, err, game.ErrIllegalMove)
}

func TestMemoryStore_ConcurrentMoves(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	g := game.New(game.NewSeededInitializer(1))
	g.Initialize()
	require.NoError(t, st.Save(ctx, g))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := []board.Direction{board.Up, board.Down, board.Left, board.Right}[i%4]
			for j := 0; j < 50; j++ {
				_ = st.Update(ctx, g.ID, func(g *game.Game) error { return g.ProcessMove(d) })
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, st.Get(ctx, g.ID, func(g *game.Game) error {
		gaps := 0
		for _, v := range g.Layout() {
			if v.IsNone() {
				gaps++
			}
		}
		assert.Equal(t, 1, gaps)
		return nil
	}))
}

func TestMemoryStore_UpdateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st := store.NewMemoryStore()
	err := st.Update(ctx, "x", func(*game.Game) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
