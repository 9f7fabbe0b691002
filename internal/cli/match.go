package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ucigauntlet/arbiter/pkg/tournament"
)

// Match builds the "arbiter match <config-file>" command: a single game
// pair between exactly two engines, with no scheduler or round count.
func Match() *cobra.Command {
	return &cobra.Command{
		Use:   "match config-file",
		Short: "Play one game pair between two engines",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`match reads the same config-file shape as tournament but requires
			exactly two "engines" entries, and plays a single game pair
			(each engine moving first once) regardless of any rounds or
			game-pairs settings in the file.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			tc, err := loadTournamentConfig(args[0])
			if err != nil {
				return err
			}
			if len(tc.Engines) != 2 {
				return fmt.Errorf("match: config-file must list exactly 2 engines, got %d", len(tc.Engines))
			}

			tc.Scheduler = "round-robin"
			tc.Rounds = 1
			tc.GamePairs = 1

			tour, err := tournament.New(tc)
			if err != nil {
				return err
			}
			return tour.Run()
		},
	}
}
