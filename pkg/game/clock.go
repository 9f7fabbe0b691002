package game

import "time"

// updateClockBeforeGo applies the clock policy to the side about to move,
// before the "go" command is sent.
func updateClockBeforeGo(g *Game, eo EngineOptions, ei int, timeLeft *[2]time.Duration) {
	switch {
	case eo.MoveTime > 0:
		// movetime overrides movestogo, time, and increment entirely.
		timeLeft[ei] = eo.MoveTime

	case eo.Time > 0 || eo.Increment > 0:
		timeLeft[ei] += eo.Increment

		if eo.MovesToGo > 0 && g.Ply() > 1 && (g.Ply()/2)%eo.MovesToGo == 0 {
			timeLeft[ei] += eo.Time
		}

	default:
		// Depth/nodes-only: make the clock effectively infinite so it can
		// never trigger a time loss.
		timeLeft[ei] = time.Duration(1<<62 - 1)
	}
}
