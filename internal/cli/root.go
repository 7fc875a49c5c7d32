// Package cli provides the datacleaner command-line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// now is the clock handed to the cleaning pipeline.
var now = time.Now

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datacleaner",
		Short: "datacleaner - catalog cleaning pipeline",
		Long: `datacleaner cleans movie and show catalog exports (CSV or XLSX).

It normalizes null tokens and text, standardizes genres, countries and
languages, validates numeric ranges, parses dates, derives profit,
removes duplicate rows and fills gaps with the chosen strategies.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text|json)")

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewCleanCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
