// apps/go-server/internal/game/types.go
//
// Core type definitions for the Game of Fifteen engine.
// Defines:
//   - State: coarse game state (in progress / won).
//   - Game: a single 4×4 sliding-puzzle session.
//   - Sentinel errors returned by the engine.

package game

import (
	"errors"
	"time"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
)

// Size is the side length of the puzzle board.
const Size = 4

// State is the coarse state of a game.
// Possible values:
//   - "in_progress": tiles can still be moved.
//   - "won":         tiles read 1..15 followed by the gap; terminal.
type State string

const (
	InProgress State = "in_progress"
	Won        State = "won"
)

var (
	// ErrIllegalMove means the gap has no tile on the side the move pulls from.
	// The board is left unchanged.
	ErrIllegalMove = errors.New("game: illegal move")
	// ErrGameFinished is returned for moves after the puzzle has been solved.
	ErrGameFinished = errors.New("game: game finished")
	// ErrNoEmptyCell means the board lost its gap. This can only follow a bad
	// initial layout or a write that bypassed ProcessMove; callers should treat
	// the game as corrupt.
	ErrNoEmptyCell = errors.New("game: no empty cell")
	// ErrInvalidLayout is returned by Validate for layouts that are not a
	// permutation of 1..15 plus one gap.
	ErrInvalidLayout = errors.New("game: invalid layout")
	// ErrUnsolvable is returned by Validate for layouts with the wrong parity.
	ErrUnsolvable = errors.New("game: layout is not solvable")
)

// Game holds the state of a single Game of Fifteen session.
// A Game is not safe for concurrent use.
type Game struct {
	ID        string    // Unique game identifier (uuid).
	StartedAt time.Time // Set by Initialize.

	src   Initializer
	board *board.GameBoard[int]
	moves int // legal moves applied since Initialize
}
