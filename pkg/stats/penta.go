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

package stats

import "math"

// PentaSPRT scores a pentanomial pair tally against the two elo hypotheses
// elo0 and elo1, returning the log-likelihood ratio comparing how well
// each fits the measured distribution. An SPRT test accepts whichever
// hypothesis the llr favors once it crosses that test's stopping bounds.
func PentaSPRT(t PairTally, elo0, elo1 float64) float64 {
	lossLoss, drawLoss, drawDraw, winDraw, winWin := t.probabilities()
	n := t.pairs() + 2.5

	mean := winWin + 0.75*winDraw + 0.5*drawDraw + 0.25*drawLoss
	spread := math.Sqrt(pentaSpread(lossLoss, drawLoss, drawDraw, winDraw, winWin, mean))

	scoreH0 := nEloToScore(elo0, spread)
	scoreH1 := nEloToScore(elo1, spread)

	varH0 := pentaSpread(lossLoss, drawLoss, drawDraw, winDraw, winWin, scoreH0)
	varH1 := pentaSpread(lossLoss, drawLoss, drawDraw, winDraw, winWin, scoreH1)

	if varH0 == 0 || varH1 == 0 {
		return 0
	}

	// A closed-form approximation to the pentanomial MLE likelihood ratio;
	// see http://hardy.uhasselt.be/Fishtest/support_MLE_multinomial.pdf.
	return 0.5 * n * math.Log(varH0/varH1)
}

// PentaElo returns the best-fit elo for a pentanomial pair tally, with
// p < 0.05 error bounds.
func PentaElo(t PairTally) (muMin float64, mu float64, muMax float64) {
	lossLoss, drawLoss, drawDraw, winDraw, winWin := t.probabilities()

	mean := winWin + 0.75*winDraw + 0.5*drawDraw + 0.25*drawLoss
	variance := pentaSpread(lossLoss, drawLoss, drawDraw, winDraw, winWin, mean)
	stderr := math.Sqrt(variance / (t.pairs() + 2.5))

	return confidenceBand(mean, stderr)
}
