package game

import (
	"github.com/dylhunn/dragontoothmg"

	"github.com/debasish-raychawdhuri/chess-terminal/engine/uci"
)

// Color of a side.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Result is a terminal game outcome.
type Result int

const (
	WhiteWins Result = iota
	BlackWins
	Stalemate
	DrawFiftyMoves
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "White wins by checkmate"
	case BlackWins:
		return "Black wins by checkmate"
	case Stalemate:
		return "Draw by stalemate"
	case DrawFiftyMoves:
		return "Draw by fifty-move rule"
	}
	return "Unknown result"
}

// Game tracks one game against the engine. It holds the position, the
// currently selected square with its cached legal destinations, the status
// message shown to the player, and the engine thinking flag. Game is not
// goroutine-safe; everything runs on the UI event loop.
type Game struct {
	board       dragontoothmg.Board
	selected    Square
	hasSelected bool
	possible    []dragontoothmg.Move // legal moves from the selected square
	lastFrom    Square
	lastTo      Square
	lastText    string
	hasLast     bool
	message     string
	thinking    bool
}

// NewGame starts a game from the initial position.
func NewGame() *Game {
	return &Game{
		board:   dragontoothmg.ParseFen(dragontoothmg.Startpos),
		message: "Welcome to chess-terminal!",
	}
}

// Position returns a copy of the current board.
func (g *Game) Position() dragontoothmg.Board {
	return g.board
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string {
	return g.board.ToFen()
}

// SideToMove returns the color to move.
func (g *Game) SideToMove() Color {
	if g.board.Wtomove {
		return White
	}
	return Black
}

// MoveNumber returns the full-move counter (starts at 1).
func (g *Game) MoveNumber() int {
	return int(g.board.Fullmoveno)
}

// SelectedSquare returns the selected square, if any.
func (g *Game) SelectedSquare() (Square, bool) {
	return g.selected, g.hasSelected
}

// PossibleMoves returns the cached legal moves from the selected square.
func (g *Game) PossibleMoves() []dragontoothmg.Move {
	return g.possible
}

// HasDestination reports whether sq is a legal destination of the current
// selection.
func (g *Game) HasDestination(sq Square) bool {
	for _, m := range g.possible {
		if uint8(m.To()) == sq.Index() {
			return true
		}
	}
	return false
}

// Message returns the status message.
func (g *Game) Message() string {
	return g.message
}

// SetMessage replaces the status message.
func (g *Game) SetMessage(msg string) {
	g.message = msg
}

// IsThinking reports whether an engine reply is outstanding.
func (g *Game) IsThinking() bool {
	return g.thinking
}

// SetThinking sets the thinking flag. Turning it on overwrites the status
// message; turning it off leaves the message alone so that a move
// announcement is not clobbered.
func (g *Game) SetThinking(thinking bool) {
	g.thinking = thinking
	if thinking {
		g.message = "Engine is thinking..."
	}
}

// LastMove returns the squares of the most recently applied move.
func (g *Game) LastMove() (from, to Square, ok bool) {
	return g.lastFrom, g.lastTo, g.hasLast
}

// LastMoveText returns the most recently applied move in coordinate
// notation.
func (g *Game) LastMoveText() (string, bool) {
	return g.lastText, g.hasLast
}

// PieceAt returns the piece and color on sq.
func (g *Game) PieceAt(sq Square) (dragontoothmg.Piece, Color, bool) {
	if p, ok := pieceOn(sq.Index(), &g.board.White); ok {
		return p, White, true
	}
	if p, ok := pieceOn(sq.Index(), &g.board.Black); ok {
		return p, Black, true
	}
	return dragontoothmg.Nothing, White, false
}

// SelectSquare handles a square chosen by the player and reports whether a
// move was made. With nothing selected it selects sq when it holds a piece
// of the side to move. With a selection active it applies the cached move
// to sq if one exists, reselects when sq holds another friendly piece, and
// deselects otherwise.
func (g *Game) SelectSquare(sq Square) bool {
	if !g.hasSelected {
		g.trySelect(sq)
		return false
	}
	for _, m := range g.possible {
		if uint8(m.To()) == sq.Index() {
			g.board.Apply(m)
			g.message = "Move: " + uci.EncodeMove(m)
			g.recordLastMove(m)
			g.clearSelection()
			return true
		}
	}
	if !g.trySelect(sq) {
		g.clearSelection()
	}
	return false
}

// Deselect clears the selection and its destination cache.
func (g *Game) Deselect() {
	g.clearSelection()
}

// ApplyEngineMove decodes an engine reply against the current legal moves
// and applies it. A reply that resolves to no legal move is discarded and
// the game state is left untouched.
func (g *Game) ApplyEngineMove(notation string) bool {
	m, ok := uci.DecodeMove(notation, g.board.GenerateLegalMoves())
	if !ok {
		return false
	}
	g.board.Apply(m)
	g.thinking = false
	g.message = "Engine moved: " + notation
	g.recordLastMove(m)
	g.clearSelection()
	return true
}

// Result returns the terminal outcome, or false while the game continues.
func (g *Game) Result() (Result, bool) {
	if len(g.board.GenerateLegalMoves()) == 0 {
		if g.board.OurKingInCheck() {
			if g.SideToMove() == White {
				return BlackWins, true
			}
			return WhiteWins, true
		}
		return Stalemate, true
	}
	if g.board.Halfmoveclock >= 100 {
		return DrawFiftyMoves, true
	}
	return 0, false
}

// trySelect selects sq when it holds a piece of the side to move and
// recomputes the destination cache. It reports whether a selection was made.
func (g *Game) trySelect(sq Square) bool {
	_, color, occupied := g.PieceAt(sq)
	if !occupied || color != g.SideToMove() {
		return false
	}
	g.selected = sq
	g.hasSelected = true
	g.refreshPossible()
	return true
}

// refreshPossible rebuilds the destination cache for the selected square.
func (g *Game) refreshPossible() {
	g.possible = g.possible[:0]
	for _, m := range g.board.GenerateLegalMoves() {
		if uint8(m.From()) == g.selected.Index() {
			g.possible = append(g.possible, m)
		}
	}
}

func (g *Game) recordLastMove(m dragontoothmg.Move) {
	g.lastFrom = SquareFromIndex(uint8(m.From()))
	g.lastTo = SquareFromIndex(uint8(m.To()))
	g.lastText = uci.EncodeMove(m)
	g.hasLast = true
}

func (g *Game) clearSelection() {
	g.hasSelected = false
	g.possible = nil
}

func pieceOn(idx uint8, bb *dragontoothmg.Bitboards) (dragontoothmg.Piece, bool) {
	bit := uint64(1) << idx
	switch {
	case bb.Pawns&bit != 0:
		return dragontoothmg.Pawn, true
	case bb.Knights&bit != 0:
		return dragontoothmg.Knight, true
	case bb.Bishops&bit != 0:
		return dragontoothmg.Bishop, true
	case bb.Rooks&bit != 0:
		return dragontoothmg.Rook, true
	case bb.Queens&bit != 0:
		return dragontoothmg.Queen, true
	case bb.Kings&bit != 0:
		return dragontoothmg.King, true
	}
	return dragontoothmg.Nothing, false
}
