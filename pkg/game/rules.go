package game

import "github.com/ucigauntlet/arbiter/pkg/position"

// evaluate decides whether g's current ply is terminal. It returns the
// current legal move list alongside the state so the driver can validate
// the engine's bestmove against the same generation.
func evaluate(g *Game) (State, []position.Move) {
	pos := g.Current()
	moves := pos.LegalMoves()

	switch {
	case len(moves) == 0:
		if pos.InCheck() {
			return Checkmate, moves
		}
		return Stalemate, moves

	case pos.Rule50 >= 100:
		return FiftyMoves, moves

	case pos.InsufficientMaterial():
		return InsufficientMaterial, moves
	}

	if isThreefold(g) {
		return Threefold, moves
	}

	return None, moves
}

// isThreefold scans backward from the current ply for a threefold
// repetition. The current position counts as the first occurrence, and
// only positions with the same side to move (every other ply) within the
// rule50 window can possibly repeat it, since a pawn move or capture since
// then would have made repetition impossible.
func isThreefold(g *Game) bool {
	ply := g.Ply()
	cur := g.Pos[ply]

	occurrences := 1
	for i := 4; i <= cur.Rule50 && i <= ply; i += 2 {
		if g.Pos[ply-i].Key == cur.Key {
			occurrences++
			if occurrences >= 3 {
				return true
			}
		}
	}

	return false
}
