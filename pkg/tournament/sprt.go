package tournament

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ucigauntlet/arbiter/pkg/game"
	"github.com/ucigauntlet/arbiter/pkg/openings"
	"github.com/ucigauntlet/arbiter/pkg/pgn"
	"github.com/ucigauntlet/arbiter/pkg/sampleio"
	"github.com/ucigauntlet/arbiter/pkg/sink"
	"github.com/ucigauntlet/arbiter/pkg/stats"
	"github.com/ucigauntlet/arbiter/pkg/uci"
)

// SPRTConfig configures a sequential probability ratio test between
// exactly two engines.
type SPRTConfig struct {
	Engines       [2]uci.Config
	Chess960      bool
	Concurrency   int
	EngineOptions [2]game.EngineOptions
	Options       game.Options

	Openings struct {
		File   string
		Random bool
	}

	Elo0, Elo1  float64
	Alpha, Beta float64
	// Legacy selects the trinomial (per-game) SPRT formula instead of the
	// default pentanomial (per-pair) one.
	Legacy bool

	PGNOut       string
	PGNVerbosity pgn.Verbosity
	SampleOut    string
	SampleFormat sampleio.Format

	// RunName and RedisAddr attach a shared progress store, so several
	// hosts running the same test report to one running tally and one
	// openings cursor instead of each keeping its own.
	RunName   string
	RedisAddr string
}

type sprtState struct {
	Wins, Losses, Draws                           int
	WinWin, WinDraw, DrawDraw, DrawLoss, LossLoss int
}

func (st sprtState) tally() stats.Tally {
	return stats.Tally{Wins: st.Wins, Draws: st.Draws, Losses: st.Losses}
}

func (st sprtState) pairTally() stats.PairTally {
	return stats.PairTally{
		LossLoss: st.LossLoss, DrawLoss: st.DrawLoss, DrawDraw: st.DrawDraw,
		WinDraw: st.WinDraw, WinWin: st.WinWin,
	}
}

// SPRT runs an open-ended paired-game match between two engines, stopping
// as soon as the log-likelihood ratio crosses either SPRT stopping bound.
type SPRT struct {
	Config SPRTConfig

	openings *openings.Book
	engines  [2]*uci.Engine

	pgnWriter    *pgn.Writer
	sampleWriter *sampleio.Writer
	progress     *sink.Progress

	mu    sync.Mutex
	state sprtState
	a, b  float64
}

// NewSPRT launches both engines and opens the openings book and output
// streams for an SPRT run.
func NewSPRT(config SPRTConfig) (*SPRT, error) {
	s := &SPRT{Config: config}
	s.a, s.b = stats.StoppingBounds(config.Alpha, config.Beta)

	for i := range config.Engines {
		e, err := uci.Start(config.Engines[i])
		if err != nil {
			for j := 0; j < i; j++ {
				s.engines[j].Kill()
			}
			return nil, fmt.Errorf("sprt: starting engine %d: %w", i, err)
		}
		s.engines[i] = e
	}

	book, err := openings.Open(config.Openings.File, config.Openings.Random, 0)
	if err != nil {
		return nil, err
	}
	s.openings = book

	if config.PGNOut != "" {
		f, err := os.Create(config.PGNOut)
		if err != nil {
			return nil, fmt.Errorf("sprt: opening pgn output: %w", err)
		}
		s.pgnWriter = pgn.NewWriter(f, config.PGNVerbosity)
	}
	if config.SampleOut != "" {
		f, err := os.Create(config.SampleOut)
		if err != nil {
			return nil, fmt.Errorf("sprt: opening sample output: %w", err)
		}
		s.sampleWriter = sampleio.NewWriter(f, config.SampleFormat)
	}

	if config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		s.progress = sink.NewProgress(rdb, config.RunName)

		cursor, err := s.progress.Cursor(context.Background())
		if err != nil {
			return nil, fmt.Errorf("sprt: reading openings cursor: %w", err)
		}
		s.openings.SetPos(int(cursor))
	}

	return s, nil
}

// Run drives the SPRT loop to a stopping decision, returning "H0" or "H1".
func (s *SPRT) Run() (string, error) {
	pairs := make(chan string)
	stop := make(chan struct{})
	var once sync.Once

	for id := 0; id < max(1, s.Config.Concurrency); id++ {
		go s.worker(id, pairs, stop)
	}

	var verdict string
	n := 0
	for range pairs {
		n++
		if n%5 == 0 {
			s.report()
		}
		if v := s.decide(); v != "" {
			verdict = v
			once.Do(func() { close(stop) })
			break
		}
	}
	s.report()
	return verdict, nil
}

func (s *SPRT) worker(id int, pairs chan<- string, stop <-chan struct{}) {
	rng := rand.New(rand.NewSource(int64(id)))

	for {
		select {
		case <-stop:
			return
		default:
		}

		fen, err := s.openings.Next()
		if err != nil {
			logrus.Errorf("sprt worker %d: %v", id, err)
			return
		}
		if s.progress != nil {
			if err := s.progress.AdvanceCursor(context.Background(), int64(s.openings.Pos())); err != nil {
				logrus.Errorf("sprt worker %d: advancing openings cursor: %v", id, err)
			}
		}

		var results [2]game.Result

		for i := 0; i < 2; i++ {
			players := [2]game.Player{s.engines[0], s.engines[1]}
			g, outcome, err := game.Play(0, id, fen, s.Config.Chess960,
				players, s.Config.EngineOptions, s.Config.Options, i == 1, rng)
			if err != nil {
				logrus.Errorf("sprt worker %d: %v", id, err)
				continue
			}
			results[i] = -outcome // Play reports engines[0]'s POV; track engines[1]

			if s.pgnWriter != nil {
				s.pgnWriter.Write(g)
			}
			if s.sampleWriter != nil {
				s.sampleWriter.WriteGame(g)
			}
		}

		s.record(results[0], results[1])

		if s.progress != nil {
			w, l, d := tally(results[0], results[1])
			if err := s.progress.RecordResult(context.Background(), 1, w, l, d); err != nil {
				logrus.Errorf("sprt worker %d: recording progress: %v", id, err)
			}
		}

		select {
		case pairs <- fen:
		case <-stop:
			return
		}
	}
}

// tally reports engines[1]'s win/loss/draw count over one pair, from its
// own point of view.
func tally(r0, r1 game.Result) (w, l, d int) {
	for _, r := range [2]game.Result{r0, r1} {
		switch r {
		case game.Win:
			w++
		case game.Loss:
			l++
		case game.Draw:
			d++
		}
	}
	return
}

func (s *SPRT) record(r0, r1 game.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range [2]game.Result{r0, r1} {
		switch r {
		case game.Win:
			s.state.Wins++
		case game.Loss:
			s.state.Losses++
		case game.Draw:
			s.state.Draws++
		}
	}

	switch {
	case r0 == game.Win && r1 == game.Win:
		s.state.WinWin++
	case r0 == game.Loss && r1 == game.Loss:
		s.state.LossLoss++
	case (r0 == game.Win && r1 == game.Draw) || (r0 == game.Draw && r1 == game.Win):
		s.state.WinDraw++
	case (r0 == game.Loss && r1 == game.Draw) || (r0 == game.Draw && r1 == game.Loss):
		s.state.DrawLoss++
	default:
		s.state.DrawDraw++
	}
}

func (s *SPRT) llr() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Config.Legacy {
		return stats.SPRT(s.state.tally(), s.Config.Elo0, s.Config.Elo1)
	}
	return stats.PentaSPRT(s.state.pairTally(), s.Config.Elo0, s.Config.Elo1)
}

func (s *SPRT) decide() string {
	llr := s.llr()
	switch {
	case llr <= s.a:
		return "H0"
	case llr >= s.b:
		return "H1"
	default:
		return ""
	}
}

func (s *SPRT) report() {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()

	var lower, elo, upper float64
	if s.Config.Legacy {
		lower, elo, upper = stats.Elo(st.tally())
	} else {
		lower, elo, upper = stats.PentaElo(st.pairTally())
	}
	errBound := math.Abs(math.Max(upper-elo, elo-lower))
	n := st.Wins + st.Losses + st.Draws

	fmt.Println("╔═════════════════════════════════════════════════╗")
	fmt.Printf("║ ELO   | %.2f +- %.2f (95%%)\n", elo, errBound)
	fmt.Printf("║ LLR   | %.2f (%.2f, %.2f) [%.2f, %.2f]\n", s.llr(), s.a, s.b, s.Config.Elo0, s.Config.Elo1)
	fmt.Printf("║ GAMES | N: %d W: %d L: %d D: %d\n", n, st.Wins, st.Losses, st.Draws)
	if !s.Config.Legacy {
		fmt.Printf("║ PENTA | [%d, %d, %d, %d, %d]\n", st.LossLoss, st.DrawLoss, st.DrawDraw, st.WinDraw, st.WinWin)
	}
	fmt.Println("╚═════════════════════════════════════════════════╝")
}

// Close terminates both engines.
func (s *SPRT) Close() {
	for _, e := range s.engines {
		e.Kill()
	}
}
