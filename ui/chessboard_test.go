package ui

import (
	"errors"
	"testing"

	"github.com/rivo/tview"

	"github.com/debasish-raychawdhuri/chess-terminal/config"
	"github.com/debasish-raychawdhuri/chess-terminal/game"
)

// fakeEngine drives the board's engine orchestration without a subprocess.
type fakeEngine struct {
	startErr error
	stopped  bool
	requests []string
	moves    chan string
	done     chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		moves: make(chan string, 1),
		done:  make(chan struct{}),
	}
}

func (f *fakeEngine) Start() error {
	return f.startErr
}

func (f *fakeEngine) RequestMove(fen string) error {
	f.requests = append(f.requests, fen)
	return nil
}

func (f *fakeEngine) PollMove() (string, bool) {
	select {
	case m := <-f.moves:
		return m, true
	default:
		return "", false
	}
}

func (f *fakeEngine) Done() <-chan struct{} {
	return f.done
}

func (f *fakeEngine) Stop() {
	f.stopped = true
}

func newTestBoard() *ChessBoardUI {
	cfg := config.DefaultConfig
	return NewChessBoard(tview.NewApplication(), &cfg, tview.NewTextView())
}

func mustSquare(t *testing.T, file, rank int) game.Square {
	t.Helper()
	sq, err := game.NewSquare(file, rank)
	if err != nil {
		t.Fatal(err)
	}
	return sq
}

func TestConnectEngineStopsEngineOnStartFailure(t *testing.T) {
	board := newTestBoard()
	eng := newFakeEngine()
	eng.startErr = errors.New("engine refused the handshake")

	if err := board.ConnectEngine(eng, game.White); err == nil {
		t.Fatal("expected ConnectEngine to fail")
	}
	if !eng.stopped {
		t.Error("engine was not stopped after the failed start")
	}
}

func TestSinglePendingEngineRequest(t *testing.T) {
	board := newTestBoard()
	eng := newFakeEngine()
	if err := board.ConnectEngine(eng, game.White); err != nil {
		t.Fatal(err)
	}
	defer board.Close()

	board.ChooseSquare(mustSquare(t, 4, 1)) // e2
	board.ChooseSquare(mustSquare(t, 4, 3)) // e4
	if len(eng.requests) != 1 {
		t.Fatalf("requests after player move = %d, want 1", len(eng.requests))
	}
	if !board.Game().IsThinking() {
		t.Fatal("expected the game to be waiting on the engine")
	}

	// Input while the engine is thinking must not select or issue requests.
	board.ChooseSquare(mustSquare(t, 3, 1)) // d2
	board.ChooseSquare(mustSquare(t, 3, 3)) // d4
	if len(eng.requests) != 1 {
		t.Errorf("requests while thinking = %d, want 1", len(eng.requests))
	}
	if _, ok := board.Game().SelectedSquare(); ok {
		t.Error("input while thinking changed the selection")
	}

	// Once the reply lands the turn returns to the player, and the next
	// completed move produces exactly one more request.
	eng.moves <- "e7e5"
	board.step()
	if board.Game().IsThinking() {
		t.Fatal("engine reply did not clear the thinking flag")
	}
	board.ChooseSquare(mustSquare(t, 3, 1))
	board.ChooseSquare(mustSquare(t, 3, 3))
	if len(eng.requests) != 2 {
		t.Errorf("requests after second player move = %d, want 2", len(eng.requests))
	}
}
