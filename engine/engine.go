// Package engine defines the interface for external move-finding engines.
package engine

// MoveFinder defines the interface for driving an asynchronous chess engine.
// A finder owns its engine process: after Start succeeds it accepts position
// requests and delivers replies through a non-blocking poll, never calling
// back into the game.
type MoveFinder interface {
	// Start launches the engine and performs the protocol handshake.
	Start() error

	// RequestMove submits a position (FEN) and asks the engine to pick a
	// move. It returns as soon as the request is written; the reply is
	// retrieved later via PollMove.
	RequestMove(fen string) error

	// PollMove returns the next engine reply in coordinate notation
	// (e2e4, a7a8q) if one has arrived. It never blocks.
	PollMove() (string, bool)

	// Done is closed when the engine's output stream ends, which is the
	// only signal that the process has died or been stopped.
	Done() <-chan struct{}

	// Stop shuts the engine down and releases the process. Safe to call
	// more than once.
	Stop()
}

// Config holds configuration for starting an engine.
type Config struct {
	Path       string // Path to the UCI engine binary
	SkillLevel int    // Engine skill level (0-20)
	Threads    int    // Search threads
	HashMB     int    // Transposition table size in MB
	MoveTimeMs int    // Think time per move in milliseconds
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() Config {
	return Config{
		Path:       "/usr/games/stockfish",
		SkillLevel: 10,
		Threads:    4,
		HashMB:     128,
		MoveTimeMs: 2000,
	}
}
