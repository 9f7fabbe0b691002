package cli

import (
	"fmt"
	"time"

	"github.com/ucigauntlet/arbiter/pkg/config"
	"github.com/ucigauntlet/arbiter/pkg/game"
	"github.com/ucigauntlet/arbiter/pkg/pgn"
	"github.com/ucigauntlet/arbiter/pkg/sampleio"
	"github.com/ucigauntlet/arbiter/pkg/tournament"
	"github.com/ucigauntlet/arbiter/pkg/uci"
)

// engineFile is one engine entry in a tournament/sprt YAML config.
type engineFile struct {
	Name    string            `yaml:"name"`
	Cmd     string            `yaml:"cmd"`
	Dir     string            `yaml:"dir"`
	Args    []string          `yaml:"args"`
	Options map[string]string `yaml:"options"`

	Nodes      int64  `yaml:"nodes"`
	Depth      int    `yaml:"depth"`
	MoveTime   string `yaml:"movetime"`
	Time       string `yaml:"time"`
	Increment  string `yaml:"increment"`
	MovesToGo  int    `yaml:"movestogo"`
}

func (e engineFile) toUCIConfig() uci.Config {
	return uci.Config{Name: e.Name, Cmd: e.Cmd, Dir: e.Dir, Args: e.Args, Options: e.Options}
}

func (e engineFile) toEngineOptions() (game.EngineOptions, error) {
	var eo game.EngineOptions
	eo.Nodes = e.Nodes
	eo.Depth = e.Depth
	eo.MovesToGo = e.MovesToGo

	var err error
	if eo.MoveTime, err = parseDuration(e.MoveTime); err != nil {
		return eo, fmt.Errorf("engine %q: movetime: %w", e.Name, err)
	}
	if eo.Time, err = parseDuration(e.Time); err != nil {
		return eo, fmt.Errorf("engine %q: time: %w", e.Name, err)
	}
	if eo.Increment, err = parseDuration(e.Increment); err != nil {
		return eo, fmt.Errorf("engine %q: increment: %w", e.Name, err)
	}
	return eo, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// adjudicationFile mirrors game.DrawAdjudication / game.ResignAdjudication.
type adjudicationFile struct {
	PlyCount int `yaml:"ply-count"`
	Count    int `yaml:"count"`
	Score    int `yaml:"score"`
	MoveNum  int `yaml:"move-number"`
}

type sampleFile struct {
	Freq    float64 `yaml:"freq"`
	Decay   float64 `yaml:"decay"`
	Resolve bool    `yaml:"resolve"`
}

type openingsFile struct {
	File   string `yaml:"file"`
	Random bool   `yaml:"random"`
}

type outputFile struct {
	PGNFile      string `yaml:"pgn-file"`
	PGNVerbosity int    `yaml:"pgn-verbosity"`
	SampleFile   string `yaml:"sample-file"`
	SampleFormat string `yaml:"sample-format"` // "csv" or "binary"
}

func (o outputFile) sampleioFormat() sampleio.Format {
	if o.SampleFormat == "binary" {
		return sampleio.Binary
	}
	return sampleio.CSV
}

// tournamentFile is the on-disk schema for `arbiter tournament <file>`.
type tournamentFile struct {
	Engines []engineFile `yaml:"engines"`

	Chess960    bool   `yaml:"chess960"`
	Concurrency int    `yaml:"concurrency"`
	Scheduler   string `yaml:"scheduler"`
	Rounds      int    `yaml:"rounds"`
	GamePairs   int    `yaml:"game-pairs"`

	Draw   adjudicationFile `yaml:"draw"`
	Resign adjudicationFile `yaml:"resign"`
	Sample sampleFile       `yaml:"sample"`

	Openings openingsFile `yaml:"openings"`
	Output   outputFile   `yaml:"output"`

	RunName     string `yaml:"run-name"`
	PostgresDSN string `yaml:"postgres-dsn"`
	RedisAddr   string `yaml:"redis-addr"`
}

func loadTournamentConfig(path string) (tournament.Config, error) {
	var f tournamentFile
	if err := config.LoadFile(path, &f); err != nil {
		return tournament.Config{}, err
	}

	var tc tournament.Config
	tc.Chess960 = f.Chess960
	tc.Concurrency = max1(f.Concurrency)
	tc.Scheduler = f.Scheduler
	tc.Rounds = max1(f.Rounds)
	tc.GamePairs = max1(f.GamePairs)

	tc.Options = game.Options{
		Draw: game.DrawAdjudication{
			PlyCount: f.Draw.PlyCount,
			Score:    f.Draw.Score,
			MoveNum:  f.Draw.MoveNum,
		},
		Resign: game.ResignAdjudication{
			Count:   f.Resign.Count,
			Score:   f.Resign.Score,
			MoveNum: f.Resign.MoveNum,
		},
		Sample: game.SampleOptions(f.Sample),
	}

	tc.Openings.File = f.Openings.File
	tc.Openings.Random = f.Openings.Random

	tc.PGNOut = f.Output.PGNFile
	tc.PGNVerbosity = pgn.Verbosity(f.Output.PGNVerbosity)
	tc.SampleOut = f.Output.SampleFile
	tc.SampleFormat = f.Output.sampleioFormat()

	tc.RunName = f.RunName
	tc.PostgresDSN = f.PostgresDSN
	tc.RedisAddr = f.RedisAddr

	for _, e := range f.Engines {
		tc.Engines = append(tc.Engines, e.toUCIConfig())
		eo, err := e.toEngineOptions()
		if err != nil {
			return tournament.Config{}, err
		}
		tc.EngineOptions = append(tc.EngineOptions, eo)
	}

	return tc, nil
}

func max1(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
