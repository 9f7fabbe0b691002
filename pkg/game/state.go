package game

// State is the game's terminal state. The ordering matters:
// states below separator are decisive-or-draw decided by whose turn it was
// (CHECKMATE, ILLEGAL_MOVE, TIME_LOSS are decisive by turn; STALEMATE,
// THREEFOLD, FIFTY_MOVES, INSUFFICIENT_MATERIAL are draws); states at or
// above separator are adjudication outcomes (DRAW_ADJUDICATION is a draw,
// RESIGN is decisive by turn).
type State uint8

const (
	None State = iota
	Checkmate
	Stalemate
	Threefold
	FiftyMoves
	InsufficientMaterial
	IllegalMove
	TimeLoss

	separator // not a real state; marks the decisive/adjudication boundary

	DrawAdjudicated
	Resign
)

// decisiveByTurn reports whether, in this state, the side to move at
// termination is the loser.
func (s State) decisiveByTurn() bool {
	switch s {
	case Checkmate, IllegalMove, TimeLoss, Resign:
		return true
	default:
		return false
	}
}

// IsDraw reports whether this terminal state is a draw.
func (s State) IsDraw() bool {
	return s != None && !s.decisiveByTurn()
}

func (s State) String() string {
	switch s {
	case None:
		return "unterminated"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Threefold:
		return "3-fold repetition"
	case FiftyMoves:
		return "50 moves rule"
	case InsufficientMaterial:
		return "insufficient material"
	case IllegalMove:
		return "rules infraction"
	case DrawAdjudicated:
		return "adjudication"
	case Resign:
		return "adjudication"
	case TimeLoss:
		return "time forfeit"
	default:
		return "unknown"
	}
}

// Result is a match outcome relative to some reference side, e.g. "the
// engine that held the move when the game ended" or "white".
type Result int8

const (
	Loss Result = -1
	Draw Result = 0
	Win  Result = 1
)

// String renders a Result as a PGN Result tag, i.e. from white's point of
// view (Win = white won).
func (r Result) String() string {
	switch r {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "*"
	}
}

// resultFromWhitePOV computes the game's outcome seen from white's side,
// given the terminal state and who was to move when it fired.
func resultFromWhitePOV(state State, turnToMove Color) Result {
	if !state.decisiveByTurn() {
		return Draw
	}
	if turnToMove == White {
		return Loss // the side to move lost
	}
	return Win
}
