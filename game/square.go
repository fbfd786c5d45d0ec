// Package game implements the chess game state machine: the position lives
// in dragontoothmg, and this package layers square selection, turn state and
// engine-move application on top of it.
package game

import "fmt"

// Square identifies a board square by zero-based file (a=0) and rank
// (rank 1 = 0).
type Square struct {
	File int
	Rank int
}

// NewSquare builds a square, rejecting out-of-range coordinates outright
// rather than clamping them.
func NewSquare(file, rank int) (Square, error) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Square{}, fmt.Errorf("square out of range: file %d rank %d", file, rank)
	}
	return Square{File: file, Rank: rank}, nil
}

// SquareFromIndex converts a 0-63 board index (a1=0, h8=63) to a Square.
func SquareFromIndex(idx uint8) Square {
	return Square{File: int(idx % 8), Rank: int(idx / 8)}
}

// Index returns the 0-63 board index used by dragontoothmg.
func (s Square) Index() uint8 {
	return uint8(s.Rank*8 + s.File)
}

// String returns the algebraic name, e.g. e4.
func (s Square) String() string {
	return string([]byte{'a' + byte(s.File), '1' + byte(s.Rank)})
}
