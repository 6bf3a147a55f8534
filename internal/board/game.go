// apps/go-server/internal/board/game.go
//
// GameBoard: a SquareBoard plus one mutable Optional[T] per cell.
//
// Notes:
//   - Every cell is seeded with None at construction; Set only ever
//     overwrites existing keys, so the key set always equals AllCells().
//   - Set does not validate values. Uniqueness and similar rules belong to
//     whoever owns the board (see package fifteen).
//   - Not safe for concurrent use.

package board

import "fmt"

// GameBoard stores a value of type T (or nothing) for each cell.
type GameBoard[T any] struct {
	*SquareBoard
	data map[Cell]Optional[T]
}

// NewGameBoard creates a width×width board with every cell set to None.
func NewGameBoard[T any](width int) (*GameBoard[T], error) {
	sb, err := NewSquareBoard(width)
	if err != nil {
		return nil, err
	}
	data := make(map[Cell]Optional[T], len(sb.cells))
	for _, c := range sb.cells {
		data[c] = None[T]()
	}
	return &GameBoard[T]{SquareBoard: sb, data: data}, nil
}

// Get returns the value at c. It panics if c is not a cell of this board.
func (g *GameBoard[T]) Get(c Cell) Optional[T] {
	v, ok := g.data[c]
	if !ok {
		panic(fmt.Sprintf("board: get %v: not a cell of a width-%d board", c, g.width))
	}
	return v
}

// Set overwrites the value at c. It panics if c is not a cell of this board.
func (g *GameBoard[T]) Set(c Cell, v Optional[T]) {
	if _, ok := g.data[c]; !ok {
		panic(fmt.Sprintf("board: set %v: not a cell of a width-%d board", c, g.width))
	}
	g.data[c] = v
}

// Filter returns every cell whose value satisfies pred. Order is unspecified.
func (g *GameBoard[T]) Filter(pred func(Optional[T]) bool) []Cell {
	var out []Cell
	for c, v := range g.data {
		if pred(v) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns some cell whose value satisfies pred.
//
// When several cells match, which one is returned is arbitrary and may differ
// between calls; callers that care must make pred match a single cell.
func (g *GameBoard[T]) Find(pred func(Optional[T]) bool) (Cell, bool) {
	for c, v := range g.data {
		if pred(v) {
			return c, true
		}
	}
	return Cell{}, false
}

// Any reports whether at least one cell satisfies pred.
func (g *GameBoard[T]) Any(pred func(Optional[T]) bool) bool {
	for _, c := range g.cells {
		if pred(g.data[c]) {
			return true
		}
	}
	return false
}

// All reports whether every cell satisfies pred.
func (g *GameBoard[T]) All(pred func(Optional[T]) bool) bool {
	for _, c := range g.cells {
		if !pred(g.data[c]) {
			return false
		}
	}
	return true
}

// Values returns the cell values in row-major order.
func (g *GameBoard[T]) Values() []Optional[T] {
	out := make([]Optional[T], len(g.cells))
	for i, c := range g.cells {
		out[i] = g.data[c]
	}
	return out
}
