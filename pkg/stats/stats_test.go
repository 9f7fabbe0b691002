package stats

import (
	"math"
	"testing"
)

func TestStoppingBoundsOrdering(t *testing.T) {
	lower, upper := StoppingBounds(0.05, 0.05)
	if lower >= upper {
		t.Fatalf("StoppingBounds(0.05, 0.05) = (%.4f, %.4f), want lower < upper", lower, upper)
	}
	if lower >= 0 {
		t.Fatalf("lower bound %.4f should be negative", lower)
	}
	if upper <= 0 {
		t.Fatalf("upper bound %.4f should be positive", upper)
	}
}

func TestEloEvenMatchIsNearZero(t *testing.T) {
	_, elo, _ := Elo(Tally{Wins: 50, Losses: 50})
	if math.Abs(elo) > 1 {
		t.Fatalf("Elo(50-0-50) = %.2f, want close to 0", elo)
	}
}

func TestEloDominantPlayerIsPositive(t *testing.T) {
	_, elo, _ := Elo(Tally{Wins: 80, Losses: 20})
	if elo <= 0 {
		t.Fatalf("Elo(80-0-20) = %.2f, want > 0", elo)
	}
}

func TestSPRTFavorsElo1WhenMatchIsDominant(t *testing.T) {
	llr := SPRT(Tally{Wins: 80, Losses: 20}, 0, 10)
	if llr <= 0 {
		t.Fatalf("SPRT llr = %.2f for a dominant match, want positive (favoring elo1)", llr)
	}
}

func TestSPRTFavorsElo0WhenMatchIsEven(t *testing.T) {
	llr := SPRT(Tally{Wins: 50, Losses: 50}, 0, 10)
	if llr >= 0 {
		t.Fatalf("SPRT llr = %.2f for an even match, want negative (favoring elo0)", llr)
	}
}

func TestPentaEloEvenMatchIsNearZero(t *testing.T) {
	_, elo, _ := PentaElo(PairTally{LossLoss: 10, DrawLoss: 20, DrawDraw: 40, WinDraw: 20, WinWin: 10})
	if math.Abs(elo) > 5 {
		t.Fatalf("PentaElo for a symmetric pentanomial distribution = %.2f, want close to 0", elo)
	}
}

func TestPentaSPRTFavorsElo1WhenMatchIsDominant(t *testing.T) {
	llr := PentaSPRT(PairTally{DrawLoss: 5, DrawDraw: 10, WinDraw: 35, WinWin: 50}, 0, 10)
	if llr <= 0 {
		t.Fatalf("PentaSPRT llr = %.2f for a dominant match, want positive", llr)
	}
}
