// Package pgn renders a finished game.Game as PGN text.
package pgn

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ucigauntlet/arbiter/pkg/game"
)

// Verbosity controls how much movetext commentary is emitted.
type Verbosity int

const (
	// Moves only: no tags beyond the mandatory ones, no comments.
	MovesOnly Verbosity = 1
	// Moves plus a "{score/depth}" comment per ply.
	ScoreDepth Verbosity = 2
	// Moves plus a "{score/depth time}" comment per ply.
	ScoreDepthTime Verbosity = 3
)

func pliesPerLine(v Verbosity) int {
	switch v {
	case ScoreDepth:
		return 6
	case ScoreDepthTime:
		return 5
	default:
		return 16
	}
}

// Render produces one PGN game record, terminated by two newlines.
func Render(g *game.Game, verbosity Verbosity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[Round \"%d.%d\"]\n", g.Round+1, g.Num+1)
	fmt.Fprintf(&b, "[White \"%s\"]\n", g.Names[game.White])
	fmt.Fprintf(&b, "[Black \"%s\"]\n", g.Names[game.Black])

	result := resultString(g)
	fmt.Fprintf(&b, "[Result \"%s\"]\n", result)
	fmt.Fprintf(&b, "[Termination \"%s\"]\n", g.State)

	fmt.Fprintf(&b, "[FEN \"%s\"]\n", g.Pos[0].FEN())

	if g.Pos[0].Chess960 {
		b.WriteString("[Variant \"Chess960\"]\n")
	}

	fmt.Fprintf(&b, "[PlyCount \"%d\"]\n", g.Ply())

	if verbosity < MovesOnly {
		b.WriteString(result)
		b.WriteString("\n\n")
		return b.String()
	}

	b.WriteByte('\n')
	perLine := pliesPerLine(verbosity)

	for ply := 1; ply <= g.Ply(); ply++ {
		before := g.Pos[ply-1]
		after := g.Pos[ply]

		if before.Turn == game.White || ply == 1 {
			if before.Turn == game.White {
				fmt.Fprintf(&b, "%d. ", before.FullMove)
			} else {
				fmt.Fprintf(&b, "%d... ", before.FullMove)
			}
		}

		b.WriteString(before.MoveToSAN(after.LastMove))

		if after.InCheck() {
			if ply == g.Ply() && g.State == game.Checkmate {
				b.WriteByte('#')
			} else {
				b.WriteByte('+')
			}
		}

		info := g.Info[ply-1]
		switch verbosity {
		case ScoreDepth:
			fmt.Fprintf(&b, " {%s}", scoreDepth(info))
		case ScoreDepthTime:
			fmt.Fprintf(&b, " {%s %dms}", scoreDepth(info), info.Time.Milliseconds())
		}

		if ply%perLine == 0 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}

	b.WriteString(result)
	b.WriteString("\n\n")
	return b.String()
}

func scoreDepth(info game.Info) string {
	switch {
	case isMating(info.Score):
		return fmt.Sprintf("M%d/%d", 1<<15-1-info.Score, info.Depth)
	case isMated(info.Score):
		return fmt.Sprintf("-M%d/%d", info.Score-(-(1<<15)), info.Depth)
	default:
		return fmt.Sprintf("%d/%d", info.Score, info.Depth)
	}
}

func isMating(score int) bool { return score > 1<<15-1-1024 }
func isMated(score int) bool  { return score < -(1<<15) + 1024 }

// resultString is the PGN Result tag, derived from g.State.
func resultString(g *game.Game) string {
	switch g.State {
	case game.None:
		return "*"
	case game.Checkmate, game.IllegalMove, game.Resign, game.TimeLoss:
		if g.Current().Turn == game.White {
			return game.Loss.String()
		}
		return game.Win.String()
	default:
		return game.Draw.String()
	}
}

// Writer serializes whole games to an underlying stream, taking an
// exclusive lock around each game so that concurrent workers' output never
// interleaves mid-record.
type Writer struct {
	mu        sync.Mutex
	w         io.Writer
	verbosity Verbosity
}

// NewWriter wraps w for PGN output at the given verbosity.
func NewWriter(w io.Writer, verbosity Verbosity) *Writer {
	return &Writer{w: w, verbosity: verbosity}
}

// Write appends one game's PGN record atomically.
func (pw *Writer) Write(g *game.Game) error {
	record := Render(g, pw.verbosity)

	pw.mu.Lock()
	defer pw.mu.Unlock()

	_, err := io.WriteString(pw.w, record)
	return err
}
