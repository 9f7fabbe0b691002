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

// SPRT scores a trinomial tally against the null and alternative elo
// hypotheses elo0 and elo1, returning the log-likelihood ratio an SPRT
// test compares against StoppingBounds.
func SPRT(t Tally, elo0, elo1 float64) float64 {
	win, draw, loss := t.probabilities()
	_, drawElo := wdlToElo(win, draw, loss)

	winH0, drawH0, lossH0 := eloToWDL(elo0, drawElo)
	winH1, drawH1, lossH1 := eloToWDL(elo1, drawElo)

	n := t.games() + 1.5
	return n*win*math.Log(winH1/winH0) +
		n*draw*math.Log(drawH1/drawH0) +
		n*loss*math.Log(lossH1/lossH0)
}

// Elo returns the likely elo of the tracked engine along with its p < 0.05
// upper and lower bounds.
func Elo(t Tally) (muMin float64, mu float64, muMax float64) {
	win, draw, loss := t.probabilities()

	mean := win + draw/2
	variance := win*math.Pow(1-mean, 2) + draw*math.Pow(0.5-mean, 2) + loss*math.Pow(-mean, 2)
	stderr := math.Sqrt(variance / (t.games() + 1.5))

	return confidenceBand(mean, stderr)
}
