package cli

import (
	"github.com/ucigauntlet/arbiter/pkg/config"
	"github.com/ucigauntlet/arbiter/pkg/game"
	"github.com/ucigauntlet/arbiter/pkg/pgn"
	"github.com/ucigauntlet/arbiter/pkg/tournament"
)

// sprtFile is the on-disk schema for `arbiter sprt <file>`. It mirrors
// tournamentFile but is pinned to exactly two engines, matching
// tournament.SPRTConfig.
type sprtFile struct {
	Engines [2]engineFile `yaml:"engines"`

	Chess960    bool `yaml:"chess960"`
	Concurrency int  `yaml:"concurrency"`

	Draw   adjudicationFile `yaml:"draw"`
	Resign adjudicationFile `yaml:"resign"`
	Sample sampleFile       `yaml:"sample"`

	Openings openingsFile `yaml:"openings"`
	Output   outputFile   `yaml:"output"`

	Elo0  float64 `yaml:"elo0"`
	Elo1  float64 `yaml:"elo1"`
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`

	Legacy bool `yaml:"legacy"`

	RunName   string `yaml:"run-name"`
	RedisAddr string `yaml:"redis-addr"`
}

func loadSPRTConfig(path string) (tournament.SPRTConfig, error) {
	var f sprtFile
	if err := config.LoadFile(path, &f); err != nil {
		return tournament.SPRTConfig{}, err
	}

	var sc tournament.SPRTConfig
	sc.Chess960 = f.Chess960
	sc.Concurrency = max1(f.Concurrency)

	sc.Options = game.Options{
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

	sc.Openings.File = f.Openings.File
	sc.Openings.Random = f.Openings.Random

	sc.PGNOut = f.Output.PGNFile
	sc.PGNVerbosity = pgn.Verbosity(f.Output.PGNVerbosity)
	sc.SampleOut = f.Output.SampleFile
	sc.SampleFormat = f.Output.sampleioFormat()

	sc.Elo0, sc.Elo1 = f.Elo0, f.Elo1
	sc.Alpha, sc.Beta = orDefault(f.Alpha, 0.05), orDefault(f.Beta, 0.05)
	sc.Legacy = f.Legacy

	sc.RunName = f.RunName
	sc.RedisAddr = f.RedisAddr

	for i, e := range f.Engines {
		sc.Engines[i] = e.toUCIConfig()
		eo, err := e.toEngineOptions()
		if err != nil {
			return tournament.SPRTConfig{}, err
		}
		sc.EngineOptions[i] = eo
	}

	return sc, nil
}

func orDefault(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
