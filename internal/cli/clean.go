package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/ingest"
	"github.com/JonMunkholm/datacleaner/internal/logging"
)

// NewCleanCommand creates the clean command.
func NewCleanCommand() *cobra.Command {
	var (
		output  string
		profile string
	)

	cmd := &cobra.Command{
		Use:   "clean INPUT",
		Short: "Clean a catalog file and write the result as CSV",
		Long: `Clean a CSV or XLSX catalog export.

The cleaned table is written to --output (cleaned_data.csv by default,
"-" for stdout). A data quality report and the resulting column types
are printed afterwards.

Examples:
  datacleaner clean movies.csv
  datacleaner clean movies.xlsx -o clean.csv --numeric mean
  datacleaner clean movies.csv --fill country=Unknown --fill release_year=2010
  datacleaner clean movies.csv --profile catalog.yaml --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := LoadProfile(profile, cmd.Flags())
			if err != nil {
				return err
			}
			cfg, err := p.CleaningConfig()
			if err != nil {
				return err
			}

			raw, err := readInput(args[0])
			if err != nil {
				return err
			}

			res := core.CleanWithLogger(commandLogger(cmd), raw, cfg, now())

			reportOut := cmd.OutOrStdout()
			if output == "-" {
				if err := ingest.WriteCSV(cmd.OutOrStdout(), res.Cleaned); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				reportOut = cmd.ErrOrStderr()
			} else if err := writeOutput(output, res.Cleaned); err != nil {
				return err
			}

			return renderCleanSummary(reportOut, cleanSummary{
				Input:  args[0],
				Output: output,
				Rows:   res.Cleaned.Len(),
				Report: res.Report,
				Dtypes: res.Dtypes,
			}, p.Format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ingest.ExportFileName, `Output CSV path ("-" for stdout)`)
	cmd.Flags().StringVar(&profile, "profile", "", "Cleaning profile (YAML)")
	cmd.Flags().StringArray("fill", nil, "Manual fill as column=value (repeatable)")
	cmd.Flags().String("numeric", string(core.NumericMedian), "Numeric fill strategy (median|mean|none)")
	cmd.Flags().String("categorical", string(core.CategoricalMode), "Categorical fill strategy (mode|none)")
	cmd.Flags().String("format", FormatTable, "Report format (table|json)")

	_ = cmd.RegisterFlagCompletionFunc("numeric", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"median", "mean", "none"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("categorical", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"mode", "none"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{FormatTable, FormatJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// readInput opens path and parses it by extension.
func readInput(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	t, err := ingest.Read(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// writeOutput writes t to path, creating or truncating it.
func writeOutput(path string, t *core.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	if err := ingest.WriteCSV(f, t); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// commandLogger builds a logger writing to the command's stderr from the
// persistent log flags.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return logging.New(cmd.ErrOrStderr(), level, format)
}
