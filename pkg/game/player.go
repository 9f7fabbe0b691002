package game

import "time"

// Info is the engine telemetry captured for one ply: the depth and score of
// its last reported "info" line before bestmove, and the wall-clock time it
// spent searching.
type Info struct {
	Depth int
	Score int // centipawns, from the side-to-move's point of view
	Time  time.Duration
}

// BestMove is what a Player returns for one search.
type BestMove struct {
	LAN   string // the engine's chosen move, in long algebraic notation
	PV    string // space-separated PV starting with LAN, may be empty
	Info  Info
	Spent time.Duration // wall-clock time the engine actually used
}

// Player is the core's view of one UCI-speaking engine. pkg/uci.Engine is
// the production implementation; tests drive the same interface with a
// scripted fake, so the driver in driver.go never needs a real subprocess to
// be exercised.
type Player interface {
	// Name is the engine's display name, used for PGN tags and logging.
	Name() string

	// SupportsChess960 reports whether the engine has advertised
	// UCI_Chess960 support, required before Chess960 games may be played.
	SupportsChess960() bool

	// SetChess960 sends "setoption name UCI_Chess960 value ..." ahead of
	// NewGame, only ever called with enabled=true for a Chess960 match.
	SetChess960(enabled bool) error

	// NewGame tells the engine to reset for a new game and blocks until it
	// has synchronized (ucinewgame + isready/readyok).
	NewGame() error

	// SetPosition sends a "position fen ... [moves ...]" command and
	// blocks until the engine has synchronized.
	SetPosition(cmd string) error

	// Go sends a "go ..." command and blocks for a bestmove, enforcing
	// timeLeft as the engine's deadline for this search. ok is false if no
	// bestmove was obtained within that deadline; whether the move is legal
	// is checked by the driver, not here.
	Go(cmd string, timeLeft time.Duration) (best BestMove, ok bool)
}
