// Package cli wires cobra subcommands to pkg/tournament and pkg/config.
package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Root builds the "arbiter" command tree.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "arbiter",
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}
		},
	}

	root.PersistentFlags().BoolP("help", "h", false, "Show help information")
	root.PersistentFlags().BoolP("trace", "t", false, "Show trace-level engine traffic")

	versionStr := "v0.0.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	root.AddCommand(Match())
	root.AddCommand(Tournament())
	root.AddCommand(SPRT())
	root.AddCommand(Resume())
	root.AddCommand(Engines())

	return root
}
