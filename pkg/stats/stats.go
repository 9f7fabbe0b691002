// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// The Bayesian-Elo and SPRT estimators in this package follow the
// sequential-testing model fishtest popularized for chess engine testing;
// this implementation's shape is grounded on raklaptudirm/arbiter's stats
// package.

// Package stats computes Elo estimates and SPRT log-likelihood ratios from
// a tournament's win/draw/loss tallies, using both the per-game trinomial
// model (Tally) and the paired-game pentanomial model (PairTally).
package stats

import "math"

// Tally is one engine's trinomial win/draw/loss record, accumulated from a
// series of finished games.
type Tally struct {
	Wins, Draws, Losses int
}

func (t Tally) games() float64 {
	return float64(t.Wins + t.Draws + t.Losses)
}

// probabilities returns t's win/draw/loss rates after Krivine's +0.5
// smoothing, so an all-wins or all-losses tally still yields finite
// log-odds downstream.
func (t Tally) probabilities() (win, draw, loss float64) {
	n := t.games() + 1.5
	return (float64(t.Wins) + 0.5) / n, (float64(t.Draws) + 0.5) / n, (float64(t.Losses) + 0.5) / n
}

// PairTally buckets finished game-pairs into the five pentanomial outcomes
// by the pair's combined score: both games lost, one lost one drawn, a
// draw-draw or a win-loss split (indistinguishable in score), one won one
// drawn, and both games won.
type PairTally struct {
	LossLoss, DrawLoss, DrawDraw, WinDraw, WinWin int
}

func (t PairTally) pairs() float64 {
	return float64(t.LossLoss + t.DrawLoss + t.DrawDraw + t.WinDraw + t.WinWin)
}

func (t PairTally) probabilities() (lossLoss, drawLoss, drawDraw, winDraw, winWin float64) {
	n := t.pairs() + 2.5
	return (float64(t.LossLoss) + 0.5) / n,
		(float64(t.DrawLoss) + 0.5) / n,
		(float64(t.DrawDraw) + 0.5) / n,
		(float64(t.WinDraw) + 0.5) / n,
		(float64(t.WinWin) + 0.5) / n
}

// pentaSpread returns the pentanomial distribution's squared deviation
// from the point "about" — the common term underneath both PentaSPRT's
// likelihood ratio and PentaElo's standard error.
func pentaSpread(lossLoss, drawLoss, drawDraw, winDraw, winWin, about float64) float64 {
	return winWin*math.Pow(1-about, 2) +
		winDraw*math.Pow(0.75-about, 2) +
		drawDraw*math.Pow(0.5-about, 2) +
		drawLoss*math.Pow(0.25-about, 2) +
		lossLoss*math.Pow(-about, 2)
}

// confidenceBand turns a mean and standard error into a clamped elo point
// estimate with p < 0.05 bounds either side.
func confidenceBand(mean, stderr float64) (lo, mid, hi float64) {
	hi = mean + phiInv(0.975)*stderr
	lo = mean + phiInv(0.025)*stderr
	return clampElo(lo), clampElo(mean), clampElo(hi)
}

// StoppingBounds returns the log-likelihood-ratio bounds an SPRT test
// should stop at, given the desired type I (alpha) and type II (beta)
// error rates.
func StoppingBounds(alpha, beta float64) (lower float64, upper float64) {
	lower = math.Log(beta / (1 - alpha))
	upper = math.Log((1 - beta) / alpha)
	return
}

func clampElo(x float64) float64 {
	switch {
	case x <= 0, x >= 1:
		return 0
	default:
		return -400 * math.Log10(1/x-1)
	}
}

// eloToWDL converts a bayesian elo (plus draw-likelihood offset) to its
// implied win/draw/loss probabilities.
func eloToWDL(elo, drawElo float64) (win, draw, loss float64) {
	win = 1 / (1 + math.Pow(10, (-elo+drawElo)/400))
	loss = 1 / (1 + math.Pow(10, (+elo+drawElo)/400))
	draw = 1 - win - loss
	return win, draw, loss
}

// wdlToElo is eloToWDL's inverse: it recovers the bayesian elo and
// draw-likelihood offset implied by a measured win/draw/loss split.
func wdlToElo(win, draw, loss float64) (elo float64, drawElo float64) {
	elo = 200 * math.Log10((win/loss)*((1-loss)/(1-win)))
	drawElo = 200 * math.Log10(((1-loss)/loss)*((1-win)/win))
	return elo, drawElo
}

func phiInv(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(2*p-1)
}

func nEloToScore(nelo, spread float64) float64 {
	return nelo*math.Sqrt2*spread/(800/math.Ln10) + 0.5
}
