package game

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"

	"github.com/debasish-raychawdhuri/chess-terminal/engine/uci"
)

func sq(t *testing.T, name string) Square {
	t.Helper()
	s, err := NewSquare(int(name[0]-'a'), int(name[1]-'1'))
	if err != nil {
		t.Fatalf("bad square %q: %v", name, err)
	}
	return s
}

func destinations(g *Game) map[string]bool {
	dests := make(map[string]bool)
	for _, m := range g.PossibleMoves() {
		dests[uci.EncodeMove(m)] = true
	}
	return dests
}

func TestSelectOwnPawn(t *testing.T) {
	g := NewGame()
	if made := g.SelectSquare(sq(t, "e2")); made {
		t.Fatal("selecting a piece should not make a move")
	}
	sel, ok := g.SelectedSquare()
	if !ok || sel.String() != "e2" {
		t.Fatalf("e2 should be selected, got %v (ok=%v)", sel, ok)
	}
	dests := destinations(g)
	if !dests["e2e3"] || !dests["e2e4"] {
		t.Fatalf("pawn pushes missing from cache: %v", dests)
	}
	if !g.HasDestination(sq(t, "e4")) {
		t.Fatal("e4 should be a cached destination")
	}
}

func TestSelectEmptySquareIsNoop(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e5"))
	if _, ok := g.SelectedSquare(); ok {
		t.Fatal("an empty square should not select")
	}
}

func TestSelectOpponentPieceIsNoop(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e7"))
	if _, ok := g.SelectedSquare(); ok {
		t.Fatal("an opponent piece should not select")
	}
}

func TestMoveByDestination(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e2"))
	if made := g.SelectSquare(sq(t, "e4")); !made {
		t.Fatal("e2-e4 should apply")
	}
	if _, ok := g.SelectedSquare(); ok {
		t.Fatal("selection should clear after a move")
	}
	if len(g.PossibleMoves()) != 0 {
		t.Fatal("destination cache should clear after a move")
	}
	if g.SideToMove() != Black {
		t.Fatal("turn should pass to black")
	}
	if g.Message() != "Move: e2e4" {
		t.Fatalf("unexpected message %q", g.Message())
	}
}

func TestReselectFriendlyPiece(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e2"))
	g.SelectSquare(sq(t, "g1"))
	sel, ok := g.SelectedSquare()
	if !ok || sel.String() != "g1" {
		t.Fatalf("knight reselection failed, got %v (ok=%v)", sel, ok)
	}
	dests := destinations(g)
	if !dests["g1f3"] || !dests["g1h3"] {
		t.Fatalf("knight destinations missing: %v", dests)
	}
}

func TestDeselectOnInvalidTarget(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e2"))
	g.SelectSquare(sq(t, "e7")) // opponent pawn, not a destination
	if _, ok := g.SelectedSquare(); ok {
		t.Fatal("invalid target should deselect")
	}
	if len(g.PossibleMoves()) != 0 {
		t.Fatal("cache should clear on deselect")
	}
}

func TestSelectionCacheMatchesPosition(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "b1"))
	board := g.Position()
	want := make(map[string]bool)
	for _, m := range board.GenerateLegalMoves() {
		if SquareFromIndex(uint8(m.From())).String() == "b1" {
			want[uci.EncodeMove(m)] = true
		}
	}
	got := destinations(g)
	if len(got) != len(want) {
		t.Fatalf("cache %v does not match legal moves %v", got, want)
	}
	for text := range want {
		if !got[text] {
			t.Fatalf("cache missing %s", text)
		}
	}
}

func TestApplyEngineMove(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e2"))
	g.SelectSquare(sq(t, "e4"))
	g.SetThinking(true)
	if g.Message() != "Engine is thinking..." {
		t.Fatalf("unexpected message %q", g.Message())
	}

	if !g.ApplyEngineMove("e7e5") {
		t.Fatal("e7e5 should apply after 1.e4")
	}
	if g.IsThinking() {
		t.Fatal("thinking flag should clear on applied move")
	}
	if g.Message() != "Engine moved: e7e5" {
		t.Fatalf("unexpected message %q", g.Message())
	}
	p, color, ok := g.PieceAt(sq(t, "e5"))
	if !ok || p != dragontoothmg.Pawn || color != Black {
		t.Fatal("black pawn should stand on e5")
	}
	if g.SideToMove() != White {
		t.Fatal("turn should return to white")
	}
}

func TestDiscardIllegalEngineMove(t *testing.T) {
	g := NewGame()
	g.SelectSquare(sq(t, "e2"))
	g.SelectSquare(sq(t, "e4"))
	g.SetThinking(true)

	fen := g.FEN()
	msg := g.Message()
	if g.ApplyEngineMove("a1h8") {
		t.Fatal("a1h8 is not legal and must be discarded")
	}
	if g.FEN() != fen {
		t.Fatal("position must be unchanged by a discarded reply")
	}
	if g.Message() != msg {
		t.Fatal("message must be unchanged by a discarded reply")
	}
	if !g.IsThinking() {
		t.Fatal("thinking flag must stay set; the game still awaits a reply")
	}
}

func TestEnginePromotion(t *testing.T) {
	g := NewGame()
	g.board = dragontoothmg.ParseFen("7k/P7/8/8/8/8/8/7K w - - 0 1")
	if !g.ApplyEngineMove("a7a8q") {
		t.Fatal("a7a8q should apply")
	}
	p, color, ok := g.PieceAt(sq(t, "a8"))
	if !ok || p != dragontoothmg.Queen || color != White {
		t.Fatal("a white queen should stand on a8")
	}
}

func TestSetThinkingMessageRules(t *testing.T) {
	g := NewGame()
	g.SetThinking(true)
	g.SetMessage("Engine moved: e7e5")
	g.SetThinking(false)
	if g.Message() != "Engine moved: e7e5" {
		t.Fatal("clearing the flag must not overwrite the message")
	}
}

func TestResultOngoing(t *testing.T) {
	g := NewGame()
	if _, over := g.Result(); over {
		t.Fatal("the starting position is not terminal")
	}
}

func TestResultCheckmate(t *testing.T) {
	g := NewGame()
	// Fool's mate: white is checkmated.
	g.board = dragontoothmg.ParseFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	r, over := g.Result()
	if !over || r != BlackWins {
		t.Fatalf("expected black checkmate, got %v (over=%v)", r, over)
	}
}

func TestResultStalemate(t *testing.T) {
	g := NewGame()
	g.board = dragontoothmg.ParseFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	r, over := g.Result()
	if !over || r != Stalemate {
		t.Fatalf("expected stalemate, got %v (over=%v)", r, over)
	}
}

func TestResultFiftyMoveDraw(t *testing.T) {
	g := NewGame()
	g.board = dragontoothmg.ParseFen("7k/8/8/8/8/8/8/R6K w - - 100 80")
	r, over := g.Result()
	if !over || r != DrawFiftyMoves {
		t.Fatalf("expected fifty-move draw, got %v (over=%v)", r, over)
	}
}
