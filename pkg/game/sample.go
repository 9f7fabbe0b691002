package game

import (
	"math"
	"math/rand"

	"github.com/ucigauntlet/arbiter/pkg/position"
)

// mating/mated thresholds mirror the original implementation's definition
// of a "mate score": anything within 1024 of the int16 extremes.
func isMating(score int) bool { return score > 1<<15-1-1024 }
func isMated(score int) bool  { return score < -(1 << 15) + 1024 }
func isMate(score int) bool   { return isMating(score) || isMated(score) }

// maybeRecordSample applies the training-sample collection policy to the
// current ply. rng is the worker's own PRNG (never a shared global one, so
// sampling is reproducible per worker given the same seed).
func maybeRecordSample(g *Game, opt SampleOptions, info Info, resolved position.Position, rng *rand.Rand) {
	if opt.Freq <= 0 {
		return
	}

	if opt.Resolve && isMate(info.Score) {
		return
	}

	cur := g.Current()
	p := opt.Freq * math.Exp(-opt.Decay*float64(cur.Rule50))
	if rng.Float64() > p {
		return
	}

	pos := cur
	if opt.Resolve {
		pos = resolved
	}

	if opt.Resolve && pos.InCheck() {
		return // PV resolution couldn't avoid check; discard the sample
	}

	score := info.Score
	if pos.Turn != cur.Turn {
		score = -score
	}

	g.Samples = append(g.Samples, Sample{
		Pos:    pos,
		Score:  int16(score),
		Result: SampleUnset,
	})
}

// finalizeSampleResults fills in each sample's Result now that the game's
// terminal state (and hence its white-POV outcome) is known.
func finalizeSampleResults(g *Game) {
	wpov := resultFromWhitePOV(g.State, g.Current().Turn)

	for i := range g.Samples {
		g.Samples[i].Result = sampleResultFor(g.Samples[i].Pos.Turn, wpov)
	}
}

func sampleResultFor(sampleTurn Color, wpov Result) SampleResult {
	// result = (pos.turn == WHITE) ? wpov : (2 - wpov), expressed over the
	// SampleResult/Result encodings (Loss=-1..Win=1 vs Loss=0..Win=2).
	if sampleTurn == White {
		return resultToSample(wpov)
	}
	return resultToSample(-wpov)
}

func resultToSample(r Result) SampleResult {
	switch r {
	case Loss:
		return SampleLoss
	case Win:
		return SampleWin
	default:
		return SampleDraw
	}
}
