package game

import (
	"fmt"
	"strings"
	"time"
)

// buildPosition emits "position fen <FEN> [moves <lan1> <lan2> ...]".
// Only the moves played since the last rule50 reset are
// listed: no earlier position can repeat into the current search window,
// so truncating the history this way loses no information the engine
// needs.
func buildPosition(g *Game) string {
	ply := g.Ply()
	ply0 := ply - g.Pos[ply].Rule50
	if ply0 < 0 {
		ply0 = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "position fen %s", g.Pos[ply0].FEN())

	if ply0 < ply {
		b.WriteString(" moves")
		for i := ply0 + 1; i <= ply; i++ {
			b.WriteByte(' ')
			b.WriteString(g.Pos[i-1].MoveToLAN(g.Pos[i].LastMove))
		}
	}

	return b.String()
}

// buildGo emits "go [nodes N] [depth D] [movetime T] [wtime W winc Wi btime
// B binc Bi] [movestogo M]" for the engine at index ei.
func buildGo(g *Game, eo [2]EngineOptions, ei int, timeLeft [2]time.Duration) string {
	var b strings.Builder
	b.WriteString("go")

	opt := eo[ei]

	if opt.Nodes > 0 {
		fmt.Fprintf(&b, " nodes %d", opt.Nodes)
	}
	if opt.Depth > 0 {
		fmt.Fprintf(&b, " depth %d", opt.Depth)
	}
	if opt.MoveTime > 0 {
		fmt.Fprintf(&b, " movetime %d", opt.MoveTime.Milliseconds())
	}

	if opt.Time > 0 || opt.Increment > 0 {
		color := int(g.Current().Turn)

		white := ei ^ color
		black := ei ^ color ^ 1

		fmt.Fprintf(&b, " wtime %d winc %d btime %d binc %d",
			timeLeft[white].Milliseconds(), eo[white].Increment.Milliseconds(),
			timeLeft[black].Milliseconds(), eo[black].Increment.Milliseconds(),
		)
	}

	if opt.MovesToGo > 0 {
		remaining := opt.MovesToGo - ((g.Ply() / 2) % opt.MovesToGo)
		fmt.Fprintf(&b, " movestogo %d", remaining)
	}

	return b.String()
}
