package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datacleaner v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", GitCommit)
		},
	}
}
