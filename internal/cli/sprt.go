package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ucigauntlet/arbiter/pkg/config"
	"github.com/ucigauntlet/arbiter/pkg/tournament"
)

// SPRT builds the "arbiter sprt <config-file>" command.
func SPRT() *cobra.Command {
	var resumeName string

	cmd := &cobra.Command{
		Use:   "sprt config-file",
		Short: "Run a sequential probability ratio test between two engines",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`sprt plays an open-ended series of game pairs between the two
			engines listed in config-file, tracking the pentanomial log-
			likelihood ratio (the trinomial one when legacy is set) after
			every pair and stopping as soon as it crosses the elo0/elo1
			bound set by alpha and beta.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := loadSPRTConfig(args[0])
			if err != nil {
				return err
			}

			if resumeName != "" {
				if err := config.SaveResume("sprt", resumeName, sc); err != nil {
					logrus.Warnf("could not save resume state: %v", err)
				}
			}

			s, err := tournament.NewSPRT(sc)
			if err != nil {
				return err
			}
			defer s.Close()

			verdict, err := s.Run()
			if err != nil {
				return err
			}

			switch verdict {
			case "H1":
				color.Green("sprt: accepted H1 (%s is stronger)", sc.Engines[1].Name)
			case "H0":
				color.Red("sprt: accepted H0 (%s is not stronger)", sc.Engines[1].Name)
			default:
				color.Yellow("sprt: stopped without a decision")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resumeName, "save-as", "", "save this config under the given resume name before starting")
	return cmd
}
