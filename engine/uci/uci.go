package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/debasish-raychawdhuri/chess-terminal/engine"
)

var debugLog *log.Logger

func init() {
	f, _ := os.Create("/tmp/chess-terminal-debug.log")
	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)
}

var (
	// ErrNotStarted is returned when a request is made before Start.
	ErrNotStarted = errors.New("uci: engine not started")
	// ErrAlreadyStarted is returned by a second Start call.
	ErrAlreadyStarted = errors.New("uci: engine already started")
	// ErrEngineStopped is returned when a request is made after Stop.
	ErrEngineStopped = errors.New("uci: engine stopped")
)

// LaunchError indicates the engine binary could not be spawned.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("uci: launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ProtocolError indicates a pipe write or flush failed. The session is
// desynchronized after one of these; restart the engine rather than retry.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("uci: %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// moveBacklog is the reply channel capacity. The caller never has more than
// one request outstanding, so anything past a few slots is unreachable; the
// slack just guarantees the listener can never block on a send.
const moveBacklog = 16

// Engine runs a UCI engine subprocess. It owns the process handle and its
// stdin pipe; the stdout pipe is handed to a background listener at Start
// and never touched again. Apart from the listener's channel sends, Engine
// is single-goroutine: call its methods from the UI event loop only.
type Engine struct {
	cfg       engine.Config
	cmd       *exec.Cmd
	stdinPipe io.WriteCloser
	stdin     *bufio.Writer
	moves     chan string
	done      chan struct{}
	started   bool
	stopped   bool
}

// New creates an engine handle. Nothing is spawned until Start.
func New(cfg engine.Config) *Engine {
	return &Engine{
		cfg:   cfg,
		moves: make(chan string, moveBacklog),
		done:  make(chan struct{}),
	}
}

// Start spawns the engine process, sends the UCI handshake and
// configuration, and launches the output listener.
func (e *Engine) Start() error {
	if e.stopped {
		return ErrEngineStopped
	}
	if e.started {
		return ErrAlreadyStarted
	}

	cmd := exec.Command(e.cfg.Path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &LaunchError{Path: e.cfg.Path, Err: err}
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &LaunchError{Path: e.cfg.Path, Err: err}
	}
	// Discard stderr to prevent blocking
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return &LaunchError{Path: e.cfg.Path, Err: err}
	}

	e.cmd = cmd
	e.stdinPipe = stdin
	e.stdin = bufio.NewWriter(stdin)
	e.started = true

	go e.listen(stdout)

	for _, line := range []string{
		"uci",
		"isready",
		fmt.Sprintf("setoption name Skill Level value %d", e.cfg.SkillLevel),
		fmt.Sprintf("setoption name Threads value %d", e.cfg.Threads),
		fmt.Sprintf("setoption name Hash value %d", e.cfg.HashMB),
		"setoption name UCI_AnalyseMode value false",
		"setoption name UCI_LimitStrength value false",
	} {
		if err := e.send(line); err != nil {
			return err
		}
	}
	return e.flush()
}

// RequestMove pushes a position to the engine and starts a timed search.
// The reply arrives later through PollMove.
func (e *Engine) RequestMove(fen string) error {
	if !e.started {
		return ErrNotStarted
	}
	if e.stopped {
		return ErrEngineStopped
	}
	if err := e.send("position fen " + fen); err != nil {
		return err
	}
	if err := e.send(fmt.Sprintf("go movetime %d", e.cfg.MoveTimeMs)); err != nil {
		return err
	}
	return e.flush()
}

// PollMove returns the next queued engine reply, if any. It never blocks,
// and after Stop it delivers nothing.
func (e *Engine) PollMove() (string, bool) {
	if e.stopped {
		return "", false
	}
	select {
	case mv := <-e.moves:
		return mv, true
	default:
		return "", false
	}
}

// Done is closed when the engine's stdout closes, whether from Stop or from
// the process dying on its own.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Stop shuts the engine down: best-effort quit command, then a kill. It
// never fails and is safe to call repeatedly; any reply still in flight is
// discarded.
func (e *Engine) Stop() {
	if e.stopped {
		return
	}
	e.stopped = true
	if !e.started {
		return
	}
	debugLog.Printf("stop: quitting engine")
	e.stdin.WriteString("quit\n")
	e.stdin.Flush()
	e.stdinPipe.Close()
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.cmd.Wait()
}

func (e *Engine) send(line string) error {
	debugLog.Printf("send: %s", line)
	if _, err := e.stdin.WriteString(line + "\n"); err != nil {
		return &ProtocolError{Op: "write", Err: err}
	}
	return nil
}

func (e *Engine) flush() error {
	if err := e.stdin.Flush(); err != nil {
		return &ProtocolError{Op: "flush", Err: err}
	}
	return nil
}

// listen runs on its own goroutine for the rest of the process lifetime.
func (e *Engine) listen(r io.Reader) {
	readBestMoves(r, e.moves)
	close(e.done)
}

// readBestMoves scans newline-delimited engine output until the stream
// closes, forwarding the move token of every bestmove line. Everything
// else the engine prints (id, option, info, readyok) is discarded.
func readBestMoves(r io.Reader, moves chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "bestmove") {
			continue
		}
		debugLog.Printf("recv: %s", line)
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		select {
		case moves <- parts[1]:
		default:
			// Consumer backlog; unreachable with one request in
			// flight. Dropping keeps the reader alive regardless.
		}
	}
}
