// apps/go-server/internal/game/initializer.go
//
// Starting layouts for the puzzle.
// Provides:
//   - Initializer: the collaborator that supplies a layout to Game.Initialize.
//   - RandomInitializer / SeededInitializer: shuffled, always solvable layouts.
//   - FixedInitializer: a caller-provided layout (tests, custom games).
//   - Validate / Solvable: checks for untrusted layouts.
//
// Parity: with the gap in the bottom-right corner a layout is solvable iff its
// tile permutation is even. The shufflers fix odd permutations by swapping the
// first two tiles.

package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/robalobadob/fifteen/apps/go-server/internal/board"
)

// Initializer supplies the 16 cells of a starting layout in row-major order:
// each of 1..15 exactly once and a single None for the gap.
type Initializer interface {
	InitialPermutation() []board.Optional[int]
}

// FixedInitializer returns the same layout every time.
type FixedInitializer []board.Optional[int]

func (f FixedInitializer) InitialPermutation() []board.Optional[int] {
	out := make([]board.Optional[int], len(f))
	copy(out, f)
	return out
}

// FromInts converts a row-major int layout (0 = gap) into a FixedInitializer.
func FromInts(layout []int) FixedInitializer {
	out := make(FixedInitializer, len(layout))
	for i, n := range layout {
		if n != 0 {
			out[i] = board.Some(n)
		}
	}
	return out
}

// RandomInitializer shuffles with the global math/rand/v2 source.
type RandomInitializer struct{}

func (RandomInitializer) InitialPermutation() []board.Optional[int] {
	return shuffled(rand.Perm)
}

// SeededInitializer produces a deterministic layout for a seed.
type SeededInitializer struct {
	seed uint64
}

// NewSeededInitializer returns an initializer whose layout depends only on seed.
func NewSeededInitializer(seed uint64) SeededInitializer {
	return SeededInitializer{seed: seed}
}

func (s SeededInitializer) InitialPermutation() []board.Optional[int] {
	r := rand.New(rand.NewPCG(s.seed, s.seed^0x9e3779b97f4a7c15))
	return shuffled(r.Perm)
}

// shuffled builds an even permutation of 1..15 followed by the gap.
func shuffled(perm func(int) []int) []board.Optional[int] {
	tiles := perm(Size*Size - 1)
	for i := range tiles {
		tiles[i]++
	}
	if inversions(tiles)%2 != 0 {
		tiles[0], tiles[1] = tiles[1], tiles[0]
	}
	out := make([]board.Optional[int], 0, Size*Size)
	for _, n := range tiles {
		out = append(out, board.Some(n))
	}
	return append(out, board.None[int]())
}

func inversions(tiles []int) int {
	n := 0
	for i := 0; i < len(tiles); i++ {
		for j := i + 1; j < len(tiles); j++ {
			if tiles[i] > tiles[j] {
				n++
			}
		}
	}
	return n
}

// Validate checks that layout holds 1..15 exactly once plus one gap, and that
// it can be solved.
func Validate(layout []board.Optional[int]) error {
	if len(layout) != Size*Size {
		return fmt.Errorf("%w: want %d cells, got %d", ErrInvalidLayout, Size*Size, len(layout))
	}
	seen := make(map[int]bool, Size*Size-1)
	gaps := 0
	for _, v := range layout {
		n, ok := v.Get()
		if !ok {
			gaps++
			continue
		}
		if n < 1 || n > Size*Size-1 {
			return fmt.Errorf("%w: tile %d out of range", ErrInvalidLayout, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: tile %d repeated", ErrInvalidLayout, n)
		}
		seen[n] = true
	}
	if gaps != 1 {
		return fmt.Errorf("%w: want exactly one gap, got %d", ErrInvalidLayout, gaps)
	}
	if !Solvable(layout) {
		return ErrUnsolvable
	}
	return nil
}

// Solvable reports whether a well-formed layout can reach the won state.
// For an even board width that holds iff the tile inversions plus the gap's
// row counted from the bottom (1-based) is odd.
func Solvable(layout []board.Optional[int]) bool {
	tiles := make([]int, 0, len(layout))
	gapRowFromBottom := 0
	for i, v := range layout {
		if n, ok := v.Get(); ok {
			tiles = append(tiles, n)
			continue
		}
		gapRowFromBottom = Size - i/Size
	}
	return (inversions(tiles)+gapRowFromBottom)%2 == 1
}
