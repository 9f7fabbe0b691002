// Package game implements the UCI conversation driver, the termination
// state machine, the sample collector, and the data model (Game, Sample,
// State) they share. It does not spawn engines or schedule games; callers
// supply two Players (pkg/uci.Engine in production) and a starting FEN.
package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ucigauntlet/arbiter/pkg/position"
)

// Color mirrors position.Color so callers of this package don't need to
// import pkg/position for the common case.
type Color = position.Color

const (
	White = position.White
	Black = position.Black
)

// Sample is one training-data position, collected during play and scored
// against the eventual game result.
type Sample struct {
	Pos    position.Position
	Score  int16        // centipawns, from Pos.Turn's point of view
	Result SampleResult // filled in after termination
}

// SampleResult is a Sample's outcome from its own side-to-move's POV.
type SampleResult uint8

const (
	SampleLoss SampleResult = iota
	SampleDraw
	SampleWin
	SampleUnset
)

// Game is a single match record: the full position history, per-ply engine
// telemetry, collected samples, and the terminal state once play has
// stopped.
type Game struct {
	ID    uuid.UUID
	Round int
	Num   int

	Names [2]string // display name of [White, Black]

	Pos     []position.Position // Pos[0] is the starting position
	Info    []Info               // len(Info) == len(Pos)-1 once terminated
	Samples []Sample

	State State
}

// Ply is the number of plies played so far (len(Pos)-1).
func (g *Game) Ply() int {
	return len(g.Pos) - 1
}

// Current returns the position at the current ply.
func (g *Game) Current() position.Position {
	return g.Pos[g.Ply()]
}

// newGame builds an empty Game from a starting FEN.
func newGame(round, num int, startFEN string, chess960 bool) *Game {
	return &Game{
		ID:    uuid.New(),
		Round: round,
		Num:   num,
		Pos:   []position.Position{position.FromFEN(startFEN, chess960)},
	}
}

func (g *Game) String() string {
	return fmt.Sprintf("round %d game %d: %s vs %s", g.Round, g.Num, g.Names[White], g.Names[Black])
}
