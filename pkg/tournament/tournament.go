package tournament

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"

	"github.com/google/uuid"
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

// Config is the full set of parameters for one tournament run.
type Config struct {
	Engines []uci.Config `yaml:"engines"`

	Chess960    bool `yaml:"chess960"`
	Concurrency int  `yaml:"concurrency"`

	Event string `yaml:"event"`
	Site  string `yaml:"site"`

	Scheduler string `yaml:"scheduler"` // "round-robin" or "gauntlet"

	Rounds    int `yaml:"rounds"`
	GamePairs int `yaml:"game-pairs"`

	EngineOptions []game.EngineOptions `yaml:"engine-options"` // one per Engines entry, same index
	Options       game.Options          `yaml:"options"`

	Openings struct {
		File   string `yaml:"file"`
		Random bool   `yaml:"random"`
	} `yaml:"openings"`

	PGNOut        string          `yaml:"pgn-out"`
	PGNVerbosity  pgn.Verbosity   `yaml:"pgn-verbosity"`
	SampleOut     string          `yaml:"sample-out"`
	SampleFormat  sampleio.Format `yaml:"sample-format"`

	// RunName namespaces the Redis progress counters below; required if
	// RedisAddr is set.
	RunName string `yaml:"run-name"`

	// PostgresDSN, if non-empty, attaches a results sink that persists one
	// row per finished game, surviving process restarts.
	PostgresDSN string `yaml:"postgres-dsn"`

	// RedisAddr, if non-empty, attaches a shared progress store so several
	// hosts running the same RunName report to, and could resume from, one
	// running tally instead of each keeping its own local counters.
	RedisAddr string `yaml:"redis-addr"`
}

// Result is one finished game's outcome, from player1's point of view.
type Result struct {
	Round, Num       int
	Player1, Player2 int
	Game             *game.Game
	Outcome          game.Result
}

func (r Result) String() string {
	return fmt.Sprintf("round %d game %d: %s (%v)", r.Round, r.Num, r.Game.State, r.Outcome)
}

type score struct {
	Wins, Losses, Draws int
}

// Tournament schedules and runs Config.Rounds x Scheduler.TotalEncounters()
// x Config.GamePairs x 2 games across a worker pool, reporting standings
// and writing PGN/sample output as games complete.
type Tournament struct {
	ID     uuid.UUID
	Config Config

	Scheduler Scheduler
	openings  *openings.Book
	engines   []*uci.Engine

	pgnWriter    *pgn.Writer
	sampleWriter *sampleio.Writer

	pg       *sink.Postgres
	progress *sink.Progress

	jobs    chan job
	results chan Result
	done    chan struct{}

	scores []score
}

type job struct {
	round, num       int
	player1, player2 int
	startFEN         string
	reverse          bool
}

// New prepares a tournament: opens the openings book, launches every
// configured engine once, and opens the PGN/sample output streams.
func New(config Config) (*Tournament, error) {
	tour := &Tournament{ID: uuid.New(), Config: config}

	switch config.Scheduler {
	case "gauntlet":
		tour.Scheduler = &Gauntlet{}
	case "round-robin", "":
		tour.Scheduler = &RoundRobin{}
	default:
		return nil, fmt.Errorf("tournament: unknown scheduler %q", config.Scheduler)
	}

	for i := range config.Engines {
		e, err := uci.Start(config.Engines[i])
		if err != nil {
			for _, started := range tour.engines {
				started.Kill()
			}
			return nil, fmt.Errorf("tournament: starting engine %d: %w", i, err)
		}
		tour.engines = append(tour.engines, e)
	}

	book, err := openings.Open(config.Openings.File, config.Openings.Random, 0)
	if err != nil {
		return nil, err
	}
	tour.openings = book

	if config.PGNOut != "" {
		f, err := os.Create(config.PGNOut)
		if err != nil {
			return nil, fmt.Errorf("tournament: opening pgn output: %w", err)
		}
		tour.pgnWriter = pgn.NewWriter(f, config.PGNVerbosity)
	}
	if config.SampleOut != "" {
		f, err := os.Create(config.SampleOut)
		if err != nil {
			return nil, fmt.Errorf("tournament: opening sample output: %w", err)
		}
		tour.sampleWriter = sampleio.NewWriter(f, config.SampleFormat)
	}

	if config.PostgresDSN != "" {
		pg, err := sink.OpenPostgres(config.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := pg.CreateSchema(context.Background()); err != nil {
			return nil, err
		}
		tour.pg = pg
	}

	if config.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		tour.progress = sink.NewProgress(rdb, config.RunName)

		cursor, err := tour.progress.Cursor(context.Background())
		if err != nil {
			return nil, fmt.Errorf("tournament: reading openings cursor: %w", err)
		}
		tour.openings.SetPos(int(cursor))
	}

	tour.scores = make([]score, len(config.Engines))
	tour.jobs = make(chan job)
	tour.results = make(chan Result)
	tour.done = make(chan struct{})

	return tour, nil
}

// Run executes the whole tournament and blocks until every scheduled game
// has been played and reported.
func (tour *Tournament) Run() error {
	total := tour.Config.Rounds * tour.Scheduler.TotalEncounters() * tour.Config.GamePairs * 2

	go tour.collect(total)
	for id := 0; id < tour.Config.Concurrency; id++ {
		go tour.worker(id)
	}

	for round := 0; round < tour.Config.Rounds; round++ {
		tour.Scheduler.Initialize(len(tour.Config.Engines))

		for encounter := 0; encounter < tour.Scheduler.TotalEncounters(); encounter++ {
			p1, p2 := tour.Scheduler.NextEncounter()

			for pair := 0; pair < tour.Config.GamePairs; pair++ {
				fen, err := tour.openings.Next()
				if err != nil {
					close(tour.jobs)
					return fmt.Errorf("tournament: %w", err)
				}
				if tour.progress != nil {
					if err := tour.progress.AdvanceCursor(context.Background(), int64(tour.openings.Pos())); err != nil {
						logrus.Errorf("advancing openings cursor: %v", err)
					}
				}

				for g := 0; g < 2; g++ {
					tour.jobs <- job{
						round: round, num: encounter*tour.Config.GamePairs + pair,
						player1: p1, player2: p2,
						startFEN: fen, reverse: g == 1,
					}
				}
			}
		}
	}

	close(tour.jobs)
	<-tour.done

	for _, e := range tour.engines {
		e.Kill()
	}
	if tour.pg != nil {
		tour.pg.Close()
	}
	return nil
}

func (tour *Tournament) worker(id int) {
	rng := rand.New(rand.NewSource(int64(id)))

	for j := range tour.jobs {
		players := [2]game.Player{tour.engines[j.player1], tour.engines[j.player2]}
		eo := [2]game.EngineOptions{tour.Config.EngineOptions[j.player1], tour.Config.EngineOptions[j.player2]}

		g, outcome, err := game.Play(
			j.round, j.num, j.startFEN, tour.Config.Chess960,
			players, eo, tour.Config.Options,
			j.reverse, rng,
		)
		if err != nil {
			logrus.WithField("worker", id).Errorf("game %d.%d: %v", j.round+1, j.num+1, err)
			continue
		}

		if tour.pgnWriter != nil {
			if err := tour.pgnWriter.Write(g); err != nil {
				logrus.Errorf("writing pgn: %v", err)
			}
		}
		if tour.sampleWriter != nil {
			if err := tour.sampleWriter.WriteGame(g); err != nil {
				logrus.Errorf("writing samples: %v", err)
			}
		}
		if tour.pg != nil {
			if err := tour.pg.SaveGame(context.Background(), g); err != nil {
				logrus.Errorf("saving game to postgres: %v", err)
			}
		}

		tour.results <- Result{
			Round: j.round, Num: j.num,
			Player1: j.player1, Player2: j.player2,
			Game: g, Outcome: outcome,
		}
	}
}

func (tour *Tournament) collect(total int) {
	seen := 0
	for r := range tour.results {
		seen++

		var w1, l1, d1 int
		switch r.Outcome {
		case game.Win:
			tour.scores[r.Player1].Wins++
			tour.scores[r.Player2].Losses++
			w1 = 1
		case game.Loss:
			tour.scores[r.Player2].Wins++
			tour.scores[r.Player1].Losses++
			l1 = 1
		case game.Draw:
			tour.scores[r.Player1].Draws++
			tour.scores[r.Player2].Draws++
			d1 = 1
		}

		if tour.progress != nil {
			ctx := context.Background()
			if err := tour.progress.RecordResult(ctx, r.Player1, w1, l1, d1); err != nil {
				logrus.Errorf("recording progress: %v", err)
			}
			if err := tour.progress.RecordResult(ctx, r.Player2, l1, w1, d1); err != nil {
				logrus.Errorf("recording progress: %v", err)
			}
		}

		fmt.Fprintln(os.Stderr, r)

		if seen%5 == 0 || seen == total {
			tour.printStandings()
		}

		if seen == total {
			close(tour.results)
			tour.done <- struct{}{}
			return
		}
	}
}

func (tour *Tournament) printStandings() {
	fmt.Println("╔══════════════════════════════════════════════════════════╗")
	fmt.Println("║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Println("╠══════════════════════════════════════════════════════════╣")
	for i, engine := range tour.Config.Engines {
		s := tour.scores[i]
		lower, elo, upper := stats.Elo(stats.Tally{Wins: s.Wins, Draws: s.Draws, Losses: s.Losses})
		fmt.Printf(
			"║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n",
			i+1, engine.Name,
			elo, math.Abs(math.Max(upper-elo, elo-lower)),
			s.Wins, s.Losses, s.Draws,
			s.Wins+s.Losses+s.Draws)
	}
	fmt.Println("╚══════════════════════════════════════════════════════════╝")
}
