package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ucigauntlet/arbiter/pkg/position"
)

// ErrChess960Unsupported is returned when a Chess960 starting position is
// requested but an engine hasn't advertised UCI_Chess960 support. This is
// a configuration error: fatal to the match, and the caller (the
// scheduler) decides whether that means aborting the process or just
// failing this one game.
type ErrChess960Unsupported struct {
	Engine string
}

func (e ErrChess960Unsupported) Error() string {
	return fmt.Sprintf("engine %q does not support Chess960", e.Engine)
}

// Play drives one full game between players[0] and players[1] from
// startFEN. reverse toggles which player moves first, independent of
// which side (white/black) that is on the board.
// rng is the calling worker's own PRNG, used only for sample collection.
//
// On success Play returns with g.State != None and len(g.Info) == g.Ply();
// the Result is relative to players[0].
func Play(round, num int, startFEN string, chess960 bool, players [2]Player, eo [2]EngineOptions, opt Options, reverse bool, rng *rand.Rand) (*Game, Result, error) {
	g := newGame(round, num, startFEN, chess960)

	startTurn := int(g.Current().Turn)
	rev := 0
	if reverse {
		rev = 1
	}

	for color := 0; color < 2; color++ {
		g.Names[color] = players[color^startTurn^rev].Name()
	}

	if chess960 {
		for _, p := range players {
			if !p.SupportsChess960() {
				return nil, Draw, ErrChess960Unsupported{Engine: p.Name()}
			}
		}
		for _, p := range players {
			if err := p.SetChess960(true); err != nil {
				return nil, Draw, fmt.Errorf("configuring %s for chess960: %w", p.Name(), err)
			}
		}
	}

	for _, p := range players {
		if err := p.NewGame(); err != nil {
			return nil, Draw, fmt.Errorf("initializing %s: %w", p.Name(), err)
		}
	}

	ei := rev
	timeLeft := [2]time.Duration{eo[0].Time, eo[1].Time}
	drawPlyCount := 0
	var resignCount [2]int

	var played position.Move
	havePlayed := false

	for {
		if havePlayed {
			prev := g.Current()
			g.Pos = append(g.Pos, prev.Apply(played))
		}

		state, legal := evaluate(g)
		if state != None {
			g.State = state
			break
		}

		if err := players[ei].SetPosition(buildPosition(g)); err != nil {
			g.State = TimeLoss
			break
		}

		updateClockBeforeGo(g, eo[ei], ei, &timeLeft)

		cmd := buildGo(g, eo, ei, timeLeft)
		best, ok := players[ei].Go(cmd, timeLeft[ei])

		timeLeft[ei] -= best.Spent

		g.Info = append(g.Info, best.Info)

		resolved := resolvePV(players[ei].Name(), g, best.PV)

		if !ok {
			g.State = TimeLoss
			break
		}

		mov, legalOK := g.Current().LANToMove(best.LAN)
		if !legalOK || !position.Contains(legal, mov) {
			g.State = IllegalMove
			break
		}
		played, havePlayed = mov, true

		if eo[ei].Clocked() && timeLeft[ei] < 0 {
			g.State = TimeLoss
			break
		}

		if opt.Draw.Enabled() && abs(best.Info.Score) <= opt.Draw.Score {
			drawPlyCount++
			if drawPlyCount >= 2*opt.Draw.PlyCount && g.Ply()/2+1 >= opt.Draw.MoveNum {
				g.State = DrawAdjudicated
				break
			}
		} else {
			drawPlyCount = 0
		}

		if opt.Resign.Enabled() && best.Info.Score <= -opt.Resign.Score {
			resignCount[ei]++
			if resignCount[ei] >= opt.Resign.Count && g.Ply()/2+1 >= opt.Resign.MoveNum {
				g.State = Resign
				break
			}
		} else {
			resignCount[ei] = 0
		}

		maybeRecordSample(g, opt.Sample, best.Info, resolved, rng)

		ei = 1 - ei
	}

	// A game that ends on an engine's own turn (time loss, illegal move,
	// adjudication) has one more search than applied moves; drop that
	// search's Info so len(g.Info) == g.Ply().
	if len(g.Info) > g.Ply() {
		g.Info = g.Info[:g.Ply()]
	}

	finalizeSampleResults(g)

	if g.State.decisiveByTurn() {
		if ei == 0 {
			return g, Loss, nil
		}
		return g, Win, nil
	}
	return g, Draw, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
