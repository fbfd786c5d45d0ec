package ui

import "github.com/debasish-raychawdhuri/chess-terminal/game"

// SquareInput is the two-key square entry state machine: a file letter a-h
// followed by a rank digit 1-8. Keeping the states explicit avoids a nested
// blocking read in the event loop. A second key that is not a valid rank
// digit resets to the idle state, dropping the pending file letter.
type SquareInput struct {
	pendingFile  int
	awaitingRank bool
}

// Feed consumes one key rune and returns a completed square when the rune
// finishes a file+rank pair.
func (si *SquareInput) Feed(r rune) (game.Square, bool) {
	if !si.awaitingRank {
		if r >= 'a' && r <= 'h' {
			si.pendingFile = int(r - 'a')
			si.awaitingRank = true
		}
		return game.Square{}, false
	}
	si.awaitingRank = false
	if r < '1' || r > '8' {
		return game.Square{}, false
	}
	sq, err := game.NewSquare(si.pendingFile, int(r-'1'))
	if err != nil {
		return game.Square{}, false
	}
	return sq, true
}

// Pending returns the file letter waiting for its rank digit, if any.
func (si *SquareInput) Pending() (rune, bool) {
	if !si.awaitingRank {
		return 0, false
	}
	return rune('a' + si.pendingFile), true
}

// Reset drops any pending file letter.
func (si *SquareInput) Reset() {
	si.awaitingRank = false
}
