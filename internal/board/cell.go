// apps/go-server/internal/board/cell.go
//
// Coordinates and directions on a square board.
//
// Notes:
//   - Rows and columns are 1-based: (1,1) is the top-left cell.
//   - Cell is a plain comparable value, so it works as a map key.

package board

import (
	"errors"
	"fmt"
	"strings"
)

// Cell identifies one square of a board by (row, column).
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d, %d)", c.Row, c.Col) }

// Direction is one of the four orthogonal moves on a board.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ErrUnknownDirection is returned by ParseDirection for unrecognised names.
var ErrUnknownDirection = errors.New("board: unknown direction")

// Reversed returns the opposite direction (up↔down, left↔right).
func (d Direction) Reversed() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// ParseDirection maps "up", "down", "left" and "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// offset is the (row, col) delta for a single step in d.
func (d Direction) offset() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default:
		return 0, 1
	}
}
