package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/ucigauntlet/arbiter/pkg/config"
)

// enginesFile reads only the "engines" list out of a tournament or sprt
// config file, ignoring every other field.
type enginesFile struct {
	Engines []engineFile `yaml:"engines"`
}

// Engines builds the "arbiter engines <config-file>" command. It lists the
// engines a tournament/sprt/match config would launch, without starting
// any of them.
func Engines() *cobra.Command {
	return &cobra.Command{
		Use:   "engines config-file",
		Short: "List the engines a tournament/sprt/match config would launch",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`engines prints the name, command, and options of every engine
			entry in config-file, without starting a single process. Useful
			for sanity-checking a config before committing a machine to a
			long tournament or sprt run.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var f enginesFile
			if err := config.LoadFile(args[0], &f); err != nil {
				return err
			}

			for i, e := range f.Engines {
				fmt.Printf("%d. %s\n   cmd: %s %v\n", i+1, e.Name, e.Cmd, e.Args)
				for name, value := range e.Options {
					fmt.Printf("   option %s = %s\n", name, value)
				}
			}
			return nil
		},
	}
}
