package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"time"

	"github.com/ucigauntlet/arbiter/pkg/config"
	"github.com/ucigauntlet/arbiter/pkg/tournament"
)

// Tournament builds the "arbiter tournament <config-file>" command.
func Tournament() *cobra.Command {
	var resumeName string

	cmd := &cobra.Command{
		Use:   "tournament config-file",
		Short: "Run a gauntlet or round-robin between UCI engines",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`tournament runs a batch of games between the engines listed
			in config-file, scheduled as either a round-robin (every engine
			plays every other engine) or a gauntlet (engine 0 plays every
			other engine). Each finished game is reported to stderr, and
			running Elo standings are printed to stdout as games finish.

			PGN and training-sample output, draw/resign adjudication, and
			per-engine time controls are all read from config-file.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := loadTournamentConfig(args[0])
			if err != nil {
				return err
			}

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " starting engines..."
			sp.Start()
			tour, err := tournament.New(tc)
			sp.Stop()
			if err != nil {
				return err
			}

			if resumeName != "" {
				if err := config.SaveResume("tournament", resumeName, tc); err != nil {
					logrus.Warnf("could not save resume state: %v", err)
				}
			}

			color.Green("arbiter: running %d engine(s), %s scheduler", len(tc.Engines), nonEmpty(tc.Scheduler, "round-robin"))
			return tour.Run()
		},
	}

	cmd.Flags().StringVar(&resumeName, "save-as", "", "save this config under the given resume name before starting")
	return cmd
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
