// Package tournament schedules and runs a batch of games across a worker
// pool, wiring together the openings cursor, the game driver, and the
// PGN/sample serializers.
package tournament

// Scheduler decides which two engine indices meet in each encounter of a
// round. It is initialized once per round with the player count and then
// walked to exhaustion by TotalEncounters calls to NextEncounter.
type Scheduler interface {
	Initialize(n int)
	NextEncounter() (int, int)
	TotalEncounters() int
}

// matchup is one unordered pairing of two engine indices.
type matchup struct {
	first, second int
}

// RoundRobin hands out every unordered pair of engine indices exactly once.
// The full fixture list is built up front in Initialize and then walked one
// entry at a time, so the pairing order is whatever order the nested loop
// below produces: (0,1), (0,2), ..., (0,n-1), (1,2), and so on.
type RoundRobin struct {
	fixtures []matchup
	served   int
}

func (rr *RoundRobin) Initialize(n int) {
	rr.fixtures = rr.fixtures[:0]
	for home := 0; home < n; home++ {
		for away := home + 1; away < n; away++ {
			rr.fixtures = append(rr.fixtures, matchup{home, away})
		}
	}
	rr.served = 0
}

// NextEncounter returns the fixture list's next entry, wrapping back to the
// start once every pair has been served. Callers are expected to stop after
// TotalEncounters calls per round; the wraparound just keeps a caller that
// asks for one more from indexing off the end of the slice.
func (rr *RoundRobin) NextEncounter() (int, int) {
	m := rr.fixtures[rr.served]
	rr.served++
	if rr.served == len(rr.fixtures) {
		rr.served = 0
	}
	return m.first, m.second
}

func (rr *RoundRobin) TotalEncounters() int {
	return len(rr.fixtures)
}

// Gauntlet always pits the engine under test (index 0) against the field,
// one opponent per call, in ascending index order.
type Gauntlet struct {
	fieldSize int
	opponent  int
}

func (g *Gauntlet) Initialize(n int) {
	g.fieldSize = n - 1
	g.opponent = 1
}

func (g *Gauntlet) NextEncounter() (int, int) {
	next := g.opponent
	g.opponent++
	return 0, next
}

func (g *Gauntlet) TotalEncounters() int {
	return g.fieldSize
}
