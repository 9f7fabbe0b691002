package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ucigauntlet/arbiter/pkg/config"
	"github.com/ucigauntlet/arbiter/pkg/tournament"
)

// Resume builds the "arbiter resume" command group, restarting a
// tournament or sprt run that was previously saved with --save-as.
func Resume() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a previously saved tournament or sprt run",
	}

	cmd.AddCommand(resumeTournament())
	cmd.AddCommand(resumeSPRT())
	return cmd
}

func resumeTournament() *cobra.Command {
	return &cobra.Command{
		Use:   "tournament run-name",
		Short: "Resume a tournament saved under run-name",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			var tc tournament.Config
			if err := config.LoadResume("tournament", args[0], &tc); err != nil {
				return err
			}

			color.Yellow("arbiter: resuming tournament %q from the beginning of its schedule", args[0])
			tour, err := tournament.New(tc)
			if err != nil {
				return err
			}
			return tour.Run()
		},
	}
}

func resumeSPRT() *cobra.Command {
	return &cobra.Command{
		Use:   "sprt run-name",
		Short: "Resume an SPRT run saved under run-name",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			var sc tournament.SPRTConfig
			if err := config.LoadResume("sprt", args[0], &sc); err != nil {
				return err
			}

			color.Yellow("arbiter: resuming sprt %q from an empty tally", args[0])
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
				color.Green("sprt: accepted H1")
			case "H0":
				color.Red("sprt: accepted H0")
			default:
				color.Yellow("sprt: stopped without a decision")
			}
			return nil
		},
	}
}
