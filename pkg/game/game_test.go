package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

const standardStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type scriptedMove struct {
	lan   string
	score int
	depth int
	spent time.Duration
	ok    bool
}

func legal(lan string) scriptedMove { return scriptedMove{lan: lan, ok: true} }

// fakePlayer is a scripted game.Player: it returns its moves list in order
// and records every "position ..." command it was sent, so tests never
// need a real UCI subprocess.
type fakePlayer struct {
	name     string
	chess960 bool
	moves    []scriptedMove
	i        int
	setPos   []string
}

func (f *fakePlayer) Name() string                { return f.name }
func (f *fakePlayer) SupportsChess960() bool      { return f.chess960 }
func (f *fakePlayer) SetChess960(bool) error      { return nil }
func (f *fakePlayer) NewGame() error              { return nil }
func (f *fakePlayer) SetPosition(cmd string) error { f.setPos = append(f.setPos, cmd); return nil }

func (f *fakePlayer) Go(cmd string, timeLeft time.Duration) (BestMove, bool) {
	if f.i >= len(f.moves) {
		return BestMove{}, false
	}
	m := f.moves[f.i]
	f.i++
	return BestMove{
		LAN:   m.lan,
		Info:  Info{Score: m.score, Depth: m.depth, Time: m.spent},
		Spent: m.spent,
	}, m.ok
}

func rngForTest() *rand.Rand { return rand.New(rand.NewSource(1)) }

// Scenario 1: fool's mate. White f2f3, Black e7e5, White g2g4, Black d8h4#.
func TestPlayFoolsMate(t *testing.T) {
	white := &fakePlayer{name: "A", moves: []scriptedMove{legal("f2f3"), legal("g2g4")}}
	black := &fakePlayer{name: "B", moves: []scriptedMove{legal("e7e5"), legal("d8h4")}}

	g, result, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, [2]EngineOptions{}, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != Checkmate {
		t.Fatalf("state = %v, want Checkmate", g.State)
	}
	if result != Loss {
		t.Fatalf("result = %v, want Loss (white, players[0], is mated)", result)
	}
	if g.Ply() != 4 {
		t.Fatalf("ply = %d, want 4", g.Ply())
	}
	if len(g.Info) != g.Ply() {
		t.Fatalf("len(info) = %d, want %d", len(g.Info), g.Ply())
	}
}

// Same position, but players[0] is Black and play is reversed: per the
// driver's semantics the result flips to Win for players[0].
func TestPlayFoolsMateReversed(t *testing.T) {
	black := &fakePlayer{name: "B", moves: []scriptedMove{legal("e7e5"), legal("d8h4")}}
	white := &fakePlayer{name: "A", moves: []scriptedMove{legal("f2f3"), legal("g2g4")}}

	g, result, err := Play(0, 0, standardStartFEN, false, [2]Player{black, white}, [2]EngineOptions{}, Options{}, true, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != Checkmate {
		t.Fatalf("state = %v, want Checkmate", g.State)
	}
	if result != Win {
		t.Fatalf("result = %v, want Win (players[0]=black delivered mate)", result)
	}
}

// Scenario 2: fifty-move rule. A king shuffle with rule50 already at 99
// reaches 100 after one more non-pawn, non-capture move.
func TestPlayFiftyMoveRule(t *testing.T) {
	fen := "4k3/8/8/8/8/8/P7/4K3 w - - 99 60"
	white := &fakePlayer{name: "A", moves: []scriptedMove{legal("e1d1")}}
	black := &fakePlayer{name: "B"}

	g, result, err := Play(0, 0, fen, false, [2]Player{white, black}, [2]EngineOptions{}, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != FiftyMoves {
		t.Fatalf("state = %v, want FiftyMoves", g.State)
	}
	if result != Draw {
		t.Fatalf("result = %v, want Draw", result)
	}
	if g.Current().Rule50 != 100 {
		t.Fatalf("rule50 = %d, want 100", g.Current().Rule50)
	}
}

// Scenario 3: threefold repetition via a king shuffle that returns to the
// starting position twice.
func TestPlayThreefoldRepetition(t *testing.T) {
	fen := "4k3/8/8/8/8/8/P7/4K3 w - - 0 1"
	white := &fakePlayer{name: "A", moves: []scriptedMove{
		legal("e1d1"), legal("d1e1"), legal("e1d1"), legal("d1e1"),
	}}
	black := &fakePlayer{name: "B", moves: []scriptedMove{
		legal("e8d8"), legal("d8e8"), legal("e8d8"), legal("d8e8"),
	}}

	g, result, err := Play(0, 0, fen, false, [2]Player{white, black}, [2]EngineOptions{}, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != Threefold {
		t.Fatalf("state = %v, want Threefold", g.State)
	}
	if result != Draw {
		t.Fatalf("result = %v, want Draw", result)
	}
	if g.Ply() != 8 {
		t.Fatalf("ply = %d, want 8 (third occurrence lands on ply 8)", g.Ply())
	}
}

// Scenario 4: time loss. A 100ms budget, the engine reports it spent 200ms.
func TestPlayTimeLoss(t *testing.T) {
	white := &fakePlayer{name: "A", moves: []scriptedMove{{lan: "e2e4", ok: true, spent: 200 * time.Millisecond}}}
	black := &fakePlayer{name: "B"}

	eo := [2]EngineOptions{{Time: 100 * time.Millisecond}, {Time: 100 * time.Millisecond}}
	g, result, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, eo, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != TimeLoss {
		t.Fatalf("state = %v, want TimeLoss", g.State)
	}
	if result != Loss {
		t.Fatalf("result = %v, want Loss (players[0] overran its clock)", result)
	}
}

// Regression: increment must be credited exactly once per ply. White starts
// with a 100ms budget and a 50ms increment, and spends 120ms on each of two
// moves. The correct per-ply balance is 100+50-120=30, then 30+50-120=-40,
// so the second move should run white out of time. If increment were ever
// applied twice, the balance would instead read 80 then 60 and the game
// would play on past the point it should have ended.
func TestPlayCreditsIncrementOnce(t *testing.T) {
	white := &fakePlayer{name: "A", moves: []scriptedMove{
		{lan: "g1f3", ok: true, spent: 120 * time.Millisecond},
		{lan: "f3g1", ok: true, spent: 120 * time.Millisecond},
	}}
	black := &fakePlayer{name: "B", moves: []scriptedMove{legal("g8f6")}}

	eo := [2]EngineOptions{{Time: 100 * time.Millisecond, Increment: 50 * time.Millisecond}, {}}
	g, result, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, eo, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != TimeLoss {
		t.Fatalf("state = %v, want TimeLoss", g.State)
	}
	if result != Loss {
		t.Fatalf("result = %v, want Loss (players[0] overran its clock on its second move)", result)
	}
	if g.Ply() != 2 {
		t.Fatalf("ply = %d, want 2 (white's first move and black's reply; white's losing move is never applied to the board)", g.Ply())
	}
}

// Scenario 5: illegal move. a1a8 from the starting position is blocked by
// White's own a2 pawn and is not a legal rook move.
func TestPlayIllegalMove(t *testing.T) {
	white := &fakePlayer{name: "A", moves: []scriptedMove{legal("a1a8")}}
	black := &fakePlayer{name: "B"}

	g, result, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, [2]EngineOptions{}, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if g.State != IllegalMove {
		t.Fatalf("state = %v, want IllegalMove", g.State)
	}
	if result != Loss {
		t.Fatalf("result = %v, want Loss (players[0] played the illegal move)", result)
	}
}

// Scenario 6: sample round-trip. freq=1, decay=0, resolve=false over the
// fool's mate game collects one sample per ply, each pointing at the
// position it was taken from, scored from that position's own side to
// move.
func TestPlaySampleRoundTrip(t *testing.T) {
	white := &fakePlayer{name: "A", moves: []scriptedMove{
		{lan: "f2f3", ok: true, score: 10},
		{lan: "g2g4", ok: true, score: -9999},
	}}
	black := &fakePlayer{name: "B", moves: []scriptedMove{
		{lan: "e7e5", ok: true, score: -5},
		{lan: "d8h4", ok: true, score: 32000},
	}}

	opt := Options{Sample: SampleOptions{Freq: 1, Decay: 0, Resolve: false}}
	g, _, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, [2]EngineOptions{}, opt, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if len(g.Samples) != g.Ply() {
		t.Fatalf("len(samples) = %d, want %d", len(g.Samples), g.Ply())
	}

	for i, s := range g.Samples {
		want := g.Pos[i]
		if s.Pos.Key != want.Key {
			t.Fatalf("sample %d: pos key = %x, want %x (pos[%d])", i, s.Pos.Key, want.Key, i)
		}
		if s.Result == SampleUnset {
			t.Fatalf("sample %d: result left unset after finalization", i)
		}
	}

	// The first sample is taken from white's own starting position, and
	// white is eventually mated: SampleLoss. The last sample is taken from
	// black's position right before delivering Qh4#: from black's own POV
	// that's SampleWin.
	if first := g.Samples[0]; first.Result != SampleLoss {
		t.Fatalf("first sample result = %v, want SampleLoss", first.Result)
	}
	if last := g.Samples[len(g.Samples)-1]; last.Result != SampleWin {
		t.Fatalf("last sample result = %v, want SampleWin", last.Result)
	}
}

// Property 1: ply/info length consistency for any terminated game.
func TestPlyAndInfoLengthsAgree(t *testing.T) {
	white := &fakePlayer{name: "A", moves: []scriptedMove{legal("f2f3"), legal("g2g4")}}
	black := &fakePlayer{name: "B", moves: []scriptedMove{legal("e7e5"), legal("d8h4")}}

	g, _, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, [2]EngineOptions{}, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if len(g.Pos) != g.Ply()+1 {
		t.Fatalf("len(pos) = %d, want ply+1 = %d", len(g.Pos), g.Ply()+1)
	}
	if len(g.Info) != g.Ply() {
		t.Fatalf("len(info) = %d, want ply = %d", len(g.Info), g.Ply())
	}
}

// buildPosition truncates history to the last rule50 reset: verify the
// command it emits always includes the "moves" keyword once any moves have
// been played since the last reset.
func TestBuildPositionIncludesMovesAfterFirstPly(t *testing.T) {
	// Knight moves, unlike pawn moves, don't reset rule50, so the position
	// sent for black's first move can't be collapsed to a bare FEN: it must
	// replay white's opening move.
	white := &fakePlayer{name: "A", moves: []scriptedMove{legal("g1f3")}}
	black := &fakePlayer{name: "B", moves: []scriptedMove{legal("g8f6")}}

	_, _, err := Play(0, 0, standardStartFEN, false, [2]Player{white, black}, [2]EngineOptions{}, Options{}, false, rngForTest())
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	if len(black.setPos) == 0 {
		t.Fatalf("black was never asked for a position")
	}
	if !strings.Contains(black.setPos[0], "moves") {
		t.Fatalf("position command %q missing moves after ply 1", black.setPos[0])
	}
}
