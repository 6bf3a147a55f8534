// apps/go-server/internal/board/square.go
//
// SquareBoard: the fixed set of coordinates for a width×width board.
// Responsibilities:
//   - Materialise every Cell once, in row-major order.
//   - Range-checked lookups (error and probe variants).
//   - Row/column slices and neighbour queries built on the probe lookup.
//
// All bounds checks go through inRange, so edge semantics live in one place.

package board

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWidth indicates a board width below 1.
	ErrInvalidWidth = errors.New("board: width must be at least 1")
	// ErrOutOfRange indicates a (row, col) pair outside [1, width]².
	ErrOutOfRange = errors.New("board: cell out of range")
)

// SquareBoard is immutable after construction.
type SquareBoard struct {
	width int
	cells []Cell // row-major, len == width*width
}

// NewSquareBoard builds the coordinate set for a board of the given width.
func NewSquareBoard(width int) (*SquareBoard, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}
	cells := make([]Cell, 0, width*width)
	for i := 1; i <= width; i++ {
		for j := 1; j <= width; j++ {
			cells = append(cells, Cell{Row: i, Col: j})
		}
	}
	return &SquareBoard{width: width, cells: cells}, nil
}

// Width returns the side length of the board.
func (b *SquareBoard) Width() int { return b.width }

func (b *SquareBoard) inRange(row, col int) bool {
	return row >= 1 && col >= 1 && row <= b.width && col <= b.width
}

// Cell returns the cell at (row, col) or an error wrapping ErrOutOfRange.
func (b *SquareBoard) Cell(row, col int) (Cell, error) {
	c, ok := b.CellOrNil(row, col)
	if !ok {
		return Cell{}, fmt.Errorf("%w: (%d, %d) for width %d", ErrOutOfRange, row, col, b.width)
	}
	return c, nil
}

// CellOrNil probes (row, col); ok is false when it lies off the board.
func (b *SquareBoard) CellOrNil(row, col int) (Cell, bool) {
	if !b.inRange(row, col) {
		return Cell{}, false
	}
	return b.cells[(row-1)*b.width+col-1], true
}

// Contains reports whether c belongs to this board.
func (b *SquareBoard) Contains(c Cell) bool { return b.inRange(c.Row, c.Col) }

// AllCells returns every cell in row-major order. The slice is a copy.
func (b *SquareBoard) AllCells() []Cell {
	out := make([]Cell, len(b.cells))
	copy(out, b.cells)
	return out
}

// Row returns the cells of row at the given columns, in the order given.
// Columns outside the board are dropped.
func (b *SquareBoard) Row(row int, cols []int) []Cell {
	out := make([]Cell, 0, len(cols))
	for _, j := range cols {
		if c, ok := b.CellOrNil(row, j); ok {
			out = append(out, c)
		}
	}
	return out
}

// Column is the vertical counterpart of Row.
func (b *SquareBoard) Column(rows []int, col int) []Cell {
	out := make([]Cell, 0, len(rows))
	for _, i := range rows {
		if c, ok := b.CellOrNil(i, col); ok {
			out = append(out, c)
		}
	}
	return out
}

// Neighbour returns the cell one step from c in direction d.
// ok is false at the edge of the board.
func (b *SquareBoard) Neighbour(c Cell, d Direction) (Cell, bool) {
	dr, dc := d.offset()
	return b.CellOrNil(c.Row+dr, c.Col+dc)
}

// Span returns the inclusive sequence from..to, counting down when from > to.
func Span(from, to int) []int {
	step := 1
	if from > to {
		step = -1
	}
	out := make([]int, 0, abs(to-from)+1)
	for i := from; ; i += step {
		out = append(out, i)
		if i == to {
			break
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
