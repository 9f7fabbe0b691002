package pgn

import (
	"strings"
	"testing"

	"github.com/ucigauntlet/arbiter/pkg/game"
	"github.com/ucigauntlet/arbiter/pkg/position"
)

const standardStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// foolsMate builds the fool's mate game record directly against
// pkg/position, without going through game.Play, so this package's
// rendering can be tested in isolation.
func foolsMate(t *testing.T) *game.Game {
	t.Helper()

	pos := position.FromFEN(standardStartFEN, false)
	history := []position.Position{pos}

	for _, lan := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		mov, ok := pos.LANToMove(lan)
		if !ok {
			t.Fatalf("move %q is illegal from the current position", lan)
		}
		pos = pos.Apply(mov)
		history = append(history, pos)
	}

	return &game.Game{
		Names: [2]string{"A", "B"},
		Pos:   history,
		Info:  []game.Info{{Score: 10, Depth: 5}, {Score: -5, Depth: 5}, {Score: -9999, Depth: 5}, {Score: 32000, Depth: 1}},
		State: game.Checkmate,
	}
}

func TestRenderFoolsMate(t *testing.T) {
	g := foolsMate(t)
	out := Render(g, MovesOnly)

	if !strings.Contains(out, `[Result "0-1"]`) {
		t.Fatalf("missing Result tag in:\n%s", out)
	}
	if !strings.Contains(out, `[Termination "checkmate"]`) {
		t.Fatalf("missing Termination tag in:\n%s", out)
	}
	if !strings.Contains(out, "Qh4#") {
		t.Fatalf("movetext missing mating move with # suffix:\n%s", out)
	}
	if !strings.HasSuffix(out, "0-1\n\n") {
		t.Fatalf("record not terminated by the result tag and blank line:\n%q", out)
	}
}

func TestRenderScoreDepthAnnotatesEachPly(t *testing.T) {
	g := foolsMate(t)
	out := Render(g, ScoreDepth)

	if !strings.Contains(out, "{10/5}") {
		t.Fatalf("missing first-ply score/depth comment in:\n%s", out)
	}
}

func TestRenderScoreDepthTimeIncludesMilliseconds(t *testing.T) {
	g := foolsMate(t)
	g.Info[0].Time = 250_000_000 // 250ms, in time.Duration's underlying ns
	out := Render(g, ScoreDepthTime)

	if !strings.Contains(out, "250ms") {
		t.Fatalf("missing time annotation in:\n%s", out)
	}
}

func TestRenderBelowMovesOnlyEmitsNoMovetext(t *testing.T) {
	g := foolsMate(t)
	out := Render(g, Verbosity(0))

	if strings.Contains(out, "Qh4") {
		t.Fatalf("expected no movetext at verbosity 0, got:\n%s", out)
	}
	if !strings.Contains(out, `[Result "0-1"]`) {
		t.Fatalf("tags should still be present at verbosity 0:\n%s", out)
	}
}

func TestRenderIncludesFENAndPlyCount(t *testing.T) {
	g := foolsMate(t)
	out := Render(g, MovesOnly)

	if !strings.Contains(out, `[FEN "`+standardStartFEN+`"]`) {
		t.Fatalf("missing starting FEN tag in:\n%s", out)
	}
	if !strings.Contains(out, `[PlyCount "4"]`) {
		t.Fatalf("missing PlyCount tag in:\n%s", out)
	}
}

func TestWriterSerializesOneRecordPerWrite(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf, MovesOnly)

	g := foolsMate(t)
	if err := w.Write(g); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write(g); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if got := strings.Count(buf.String(), `[Result "0-1"]`); got != 2 {
		t.Fatalf("got %d records, want 2", got)
	}
}
