// apps/go-server/internal/game/engine.go
//
// Core game engine for a single Game of Fifteen session.
// Responsibilities:
//   - Create games bound to an Initializer that supplies the starting layout.
//   - Apply moves: the tile next to the gap slides into it.
//   - Detect the won state (1..15 in row-major order, gap last).
//
// Notes:
//   - A move names the direction the tile travels. Moving "up" pulls the tile
//     below the gap upwards, so the engine looks at the gap's neighbour in the
//     reversed direction.
//   - Initialize trusts its layout; use Validate at trust boundaries.

package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
)

// New constructs a game that takes its starting layout from src.
// The board is empty until Initialize is called.
func New(src Initializer) *Game {
	b, err := board.NewGameBoard[int](Size)
	if err != nil {
		panic(err) // Size is a positive constant
	}
	return &Game{
		ID:    uuid.NewString(),
		src:   src,
		board: b,
	}
}

// Initialize fills the board row by row from the initializer's permutation.
// Cells beyond the end of a short permutation are left empty.
func (g *Game) Initialize() {
	perm := g.src.InitialPermutation()
	for i, c := range g.board.AllCells() {
		v := board.None[int]()
		if i < len(perm) {
			v = perm[i]
		}
		g.board.Set(c, v)
	}
	g.moves = 0
	g.StartedAt = time.Now().UTC()
}

// State reports the coarse state of the game.
func (g *Game) State() State {
	if g.HasWon() {
		return Won
	}
	return InProgress
}

// CanMove reports whether further moves are accepted.
func (g *Game) CanMove() bool { return !g.HasWon() }

// HasWon is true iff the cells read 1, 2, ..., 15 in row-major order with the
// gap in the bottom-right corner. No other arrangement counts.
func (g *Game) HasWon() bool {
	for i, v := range g.board.Values() {
		n, ok := v.Get()
		if i == Size*Size-1 {
			return !ok
		}
		if !ok || n != i+1 {
			return false
		}
	}
	return false
}

// ProcessMove slides the tile adjacent to the gap in direction d.
// On error the board is unchanged.
func (g *Game) ProcessMove(d board.Direction) error {
	if g.HasWon() {
		return ErrGameFinished
	}
	gap, ok := g.board.Find(func(v board.Optional[int]) bool { return v.IsNone() })
	if !ok {
		return fmt.Errorf("game %s: %w", g.ID, ErrNoEmptyCell)
	}
	from, ok := g.board.Neighbour(gap, d.Reversed())
	if !ok {
		return fmt.Errorf("%w: cannot move %s with the gap at %v", ErrIllegalMove, d, gap)
	}
	g.board.Set(gap, g.board.Get(from))
	g.board.Set(from, board.None[int]())
	g.moves++
	return nil
}

// ValueAt returns the tile at (row, col); None marks the gap.
func (g *Game) ValueAt(row, col int) (board.Optional[int], error) {
	c, err := g.board.Cell(row, col)
	if err != nil {
		return board.None[int](), err
	}
	return g.board.Get(c), nil
}

// Layout returns all tiles in row-major order.
func (g *Game) Layout() []board.Optional[int] { return g.board.Values() }

// Moves returns the number of legal moves applied since Initialize.
func (g *Game) Moves() int { return g.moves }
