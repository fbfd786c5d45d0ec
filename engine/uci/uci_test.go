package uci

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/debasish-raychawdhuri/chess-terminal/engine"
)

func TestReadBestMoves(t *testing.T) {
	output := strings.Join([]string{
		"id name Stockfish 16",
		"id author the Stockfish developers",
		"uciok",
		"readyok",
		"info depth 20 seldepth 28 score cp 32 pv e2e4 e7e5",
		"bestmove e2e4 ponder e7e5",
		"info depth 1",
		"bestmove",
		"bestmove a7a8q",
		"",
		"not a protocol line at all",
	}, "\n")

	moves := make(chan string, moveBacklog)
	readBestMoves(strings.NewReader(output), moves)
	close(moves)

	var got []string
	for mv := range moves {
		got = append(got, mv)
	}
	want := []string{"e2e4", "a7a8q"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestListenerDeliversAndCloses(t *testing.T) {
	e := New(engine.DefaultConfig())
	go e.listen(strings.NewReader("info string hi\nbestmove d2d4\n"))

	select {
	case <-e.Done():
	case <-time.After(time.Second):
		t.Fatal("listener did not finish after stream close")
	}

	mv, ok := e.PollMove()
	if !ok || mv != "d2d4" {
		t.Fatalf("expected d2d4, got %q (ok=%v)", mv, ok)
	}
	if _, ok := e.PollMove(); ok {
		t.Fatal("second poll should find nothing")
	}
}

func TestPollMoveNeverBlocks(t *testing.T) {
	e := New(engine.DefaultConfig())
	done := make(chan struct{})
	go func() {
		e.PollMove()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PollMove blocked with no reply queued")
	}
}

func TestStartLaunchError(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Path = "/nonexistent/engine-binary"
	e := New(cfg)
	err := e.Start()
	if err == nil {
		t.Fatal("expected launch failure")
	}
	var le *LaunchError
	if !errors.As(err, &le) {
		t.Fatalf("expected LaunchError, got %T: %v", err, err)
	}
	if le.Path != cfg.Path {
		t.Fatalf("error should carry the path, got %q", le.Path)
	}
}

func TestRequestMoveBeforeStart(t *testing.T) {
	e := New(engine.DefaultConfig())
	if err := e.RequestMove("fen"); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestStopDiscardsPendingReplies(t *testing.T) {
	e := New(engine.DefaultConfig())
	e.moves <- "e2e4" // reply arrived just before shutdown
	e.Stop()
	if _, ok := e.PollMove(); ok {
		t.Fatal("no notifications should be delivered after Stop")
	}
}

func TestStopIdempotent(t *testing.T) {
	e := New(engine.DefaultConfig())
	e.Stop()
	e.Stop()
	if err := e.Start(); !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("Start after Stop should fail, got %v", err)
	}
	if err := e.RequestMove("fen"); !errors.Is(err, ErrEngineStopped) {
		t.Fatalf("RequestMove after Stop should fail, got %v", err)
	}
}

func TestProtocolErrorUnwrap(t *testing.T) {
	inner := errors.New("broken pipe")
	err := &ProtocolError{Op: "write", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("ProtocolError should unwrap to the pipe error")
	}
}
