package cli

import (
	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect INPUT",
		Short: "Show column types, missing values and duplicates of a raw file",
		Long: `Inspect a CSV or XLSX catalog export without cleaning it.

Prints the type inferred for each column, the number of missing cells per
column and the number of duplicate rows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := LoadProfile("", cmd.Flags())
			if err != nil {
				return err
			}

			raw, err := readInput(args[0])
			if err != nil {
				return err
			}

			commandLogger(cmd).Debug("inspected input", "input", args[0], "rows", raw.Len(), "columns", len(raw.Columns))

			return renderInspectSummary(cmd.OutOrStdout(), newInspectSummary(args[0], raw), p.Format)
		},
	}

	cmd.Flags().String("format", FormatTable, "Output format (table|json)")

	return cmd
}
