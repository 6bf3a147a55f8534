package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
	"github.com/robalobadob/fifteen/apps/go-server/internal/game"
)

var directions = []board.Direction{board.Up, board.Down, board.Left, board.Right}

func newGame(t *testing.T, layout ...int) *game.Game {
	t.Helper()
	g := game.New(game.FromInts(layout))
	g.Initialize()
	return g
}

func ints(g *game.Game) []int {
	out := make([]int, 0, game.Size*game.Size)
	for _, v := range g.Layout() {
		n, _ := v.Get()
		out = append(out, n)
	}
	return out
}

// assertPermutation checks tiles 1..15 each appear once with a single gap.
func assertPermutation(t *testing.T, g *game.Game) {
	t.Helper()
	counts := make(map[int]int)
	for _, n := range ints(g) {
		counts[n]++
	}
	require.Len(t, counts, 16)
	for n := 0; n <= 15; n++ {
		assert.Equal(t, 1, counts[n], "value %d", n)
	}
}

func TestHasWon_Exact(t *testing.T) {
	g := newGame(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0)
	assert.True(t, g.HasWon())
	assert.False(t, g.CanMove())
	assert.Equal(t, game.Won, g.State())

	// gap first with tiles in order is not a win
	g = newGame(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
	assert.False(t, g.HasWon())

	// a single transposition is not a win
	g = newGame(t, 2, 1, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0)
	assert.False(t, g.HasWon())
	assert.True(t, g.CanMove())
	assert.Equal(t, game.InProgress, g.State())
}

func TestHasWon_Uninitialized(t *testing.T) {
	g := game.New(game.RandomInitializer{})
	assert.False(t, g.HasWon())
}

func TestProcessMove_WinningMove(t *testing.T) {
	g := newGame(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15)
	require.False(t, g.HasWon())

	require.NoError(t, g.ProcessMove(board.Left))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 0}, ints(g))
	assert.True(t, g.HasWon())
	assert.Equal(t, 1, g.Moves())

	assert.ErrorIs(t, g.ProcessMove(board.Right), game.ErrGameFinished)
}

// "right" pulls the tile left of the gap, so it moves the 14, not the 15.
func TestProcessMove_RightPullsFromLeft(t *testing.T) {
	g := newGame(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15)
	require.NoError(t, g.ProcessMove(board.Right))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 0, 14, 15}, ints(g))
	assert.False(t, g.HasWon())
}

func TestProcessMove_Directions(t *testing.T) {
	// gap in the middle at (2,2)
	start := []int{1, 2, 3, 4, 5, 0, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	cases := []struct {
		dir  board.Direction
		from board.Cell // tile that ends up in the gap's old cell
	}{
		{board.Up, board.Cell{Row: 3, Col: 2}},
		{board.Down, board.Cell{Row: 1, Col: 2}},
		{board.Left, board.Cell{Row: 2, Col: 3}},
		{board.Right, board.Cell{Row: 2, Col: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.dir.String(), func(t *testing.T) {
			g := newGame(t, start...)
			want, err := g.ValueAt(tc.from.Row, tc.from.Col)
			require.NoError(t, err)

			require.NoError(t, g.ProcessMove(tc.dir))

			got, err := g.ValueAt(2, 2)
			require.NoError(t, err)
			assert.Equal(t, want, got)
			moved, _ := g.ValueAt(tc.from.Row, tc.from.Col)
			assert.True(t, moved.IsNone())
			assertPermutation(t, g)
		})
	}
}

func TestProcessMove_IllegalLeavesBoardUnchanged(t *testing.T) {
	g := newGame(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
	before := ints(g)

	// nothing above row 1 can be pulled down, nothing left of column 1 pulled right
	for _, d := range []board.Direction{board.Down, board.Right} {
		err := g.ProcessMove(d)
		assert.ErrorIs(t, err, game.ErrIllegalMove, d.String())
		assert.Equal(t, before, ints(g))
	}
	assert.Equal(t, 0, g.Moves())
}

// The gap at (1,1) with "up": the tile below the gap slides up, which is legal.
// The reversed-neighbour lookup must target (2,1), never (0,1).
func TestProcessMove_UpFromTopLeftPullsFromBelow(t *testing.T) {
	g := newGame(t, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15)
	require.NoError(t, g.ProcessMove(board.Up))
	v, _ := g.ValueAt(1, 1)
	n, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, 4, n)
}

func TestProcessMove_Reversible(t *testing.T) {
	g := game.New(game.NewSeededInitializer(42))
	g.Initialize()
	for _, d := range directions {
		before := ints(g)
		if err := g.ProcessMove(d); err != nil {
			require.ErrorIs(t, err, game.ErrIllegalMove)
			continue
		}
		require.NoError(t, g.ProcessMove(d.Reversed()))
		assert.Equal(t, before, ints(g), d.String())
	}
}

func TestProcessMove_PreservesPermutation(t *testing.T) {
	g := game.New(game.NewSeededInitializer(7))
	g.Initialize()
	for i := 0; i < 500 && g.CanMove(); i++ {
		err := g.ProcessMove(directions[(i*7+i/3)%4])
		if err != nil {
			require.ErrorIs(t, err, game.ErrIllegalMove)
		}
		assertPermutation(t, g)
	}
}

func TestProcessMove_NoGap(t *testing.T) {
	g := newGame(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 15)
	assert.ErrorIs(t, g.ProcessMove(board.Up), game.ErrNoEmptyCell)
}

func TestValueAt(t *testing.T) {
	g := newGame(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 0, 15)

	v, err := g.ValueAt(1, 4)
	require.NoError(t, err)
	n, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, 4, n)

	v, err = g.ValueAt(4, 3)
	require.NoError(t, err)
	assert.True(t, v.IsNone())

	_, err = g.ValueAt(5, 1)
	assert.ErrorIs(t, err, board.ErrOutOfRange)
	_, err = g.ValueAt(0, 0)
	assert.ErrorIs(t, err, board.ErrOutOfRange)
}

func TestNew_UniqueIDs(t *testing.T) {
	a := game.New(game.RandomInitializer{})
	b := game.New(game.RandomInitializer{})
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestInitialize_ShortPermutationLeavesRestEmpty(t *testing.T) {
	g := newGame(t, 1, 2, 3)
	got := ints(g)
	assert.Equal(t, []int{1, 2, 3}, got[:3])
	for _, n := range got[3:] {
		assert.Zero(t, n)
	}
	assert.False(t, g.HasWon())
}
