package game

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ucigauntlet/arbiter/pkg/position"
)

// resolvePV walks pv (space-separated LAN moves, first token the engine's
// own bestmove) from g's current position, stopping at the first quiet
// move, and returns the deepest position along the way that is not in
// check. An invalid PV is logged and never aborts the game; it just
// truncates resolution early.
//
// Two rotating buffers are used instead of growing a slice of positions,
// since only the current and previous working position are ever needed.
func resolvePV(playerName string, g *Game, pv string) position.Position {
	resolved := g.Current()

	var working [2]position.Position
	working[0] = resolved
	idx := 0

	tokens := strings.Fields(pv)
	for i, tok := range tokens {
		cur := working[idx]

		mov, _ := cur.LANToMove(tok)

		if !cur.IsTactical(mov) {
			break
		}

		legal := cur.LegalMoves()
		if !position.Contains(legal, mov) {
			logrus.Warnf("illegal move in PV %q from %s (remaining: %s)",
				tok, playerName, strings.Join(tokens[i:], " "))
			break
		}

		next := cur.Apply(mov)
		idx = 1 - idx
		working[idx] = next

		if !next.InCheck() {
			resolved = next
		}
	}

	return resolved
}
