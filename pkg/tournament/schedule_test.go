package tournament

import "testing"

func pairKey(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func TestRoundRobinCoversEveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 7, 8} {
		rr := &RoundRobin{}
		rr.Initialize(n)

		total := rr.TotalEncounters()
		want := n * (n - 1) / 2
		if total != want {
			t.Fatalf("n=%d: TotalEncounters() = %d, want %d", n, total, want)
		}

		seen := map[[2]int]bool{}
		for i := 0; i < total; i++ {
			p1, p2 := rr.NextEncounter()
			if p1 == p2 {
				t.Fatalf("n=%d: encounter %d paired player %d against itself", n, i, p1)
			}
			if p1 < 0 || p1 >= n || p2 < 0 || p2 >= n {
				t.Fatalf("n=%d: encounter %d out of range: (%d, %d)", n, i, p1, p2)
			}
			a, b := pairKey(p1, p2)
			key := [2]int{a, b}
			if seen[key] {
				t.Fatalf("n=%d: pair (%d, %d) scheduled twice", n, a, b)
			}
			seen[key] = true
		}

		if len(seen) != want {
			t.Fatalf("n=%d: saw %d distinct pairs, want %d", n, len(seen), want)
		}
	}
}

func TestGauntletPairsEngineZeroAgainstEveryOther(t *testing.T) {
	g := &Gauntlet{}
	g.Initialize(5)

	if got := g.TotalEncounters(); got != 4 {
		t.Fatalf("TotalEncounters() = %d, want 4", got)
	}

	for i := 1; i <= 4; i++ {
		p1, p2 := g.NextEncounter()
		if p1 != 0 {
			t.Fatalf("encounter %d: player1 = %d, want 0", i, p1)
		}
		if p2 != i {
			t.Fatalf("encounter %d: player2 = %d, want %d", i, p2, i)
		}
	}
}
