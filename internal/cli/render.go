package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// cleanSummary is the json form of a clean run.
type cleanSummary struct {
	Input  string             `json:"input"`
	Output string             `json:"output"`
	Rows   int                `json:"rows"`
	Report core.QualityReport `json:"report"`
	Dtypes []core.DtypeEntry  `json:"dtypes"`
}

// columnProfile is one row of the inspect output.
type columnProfile struct {
	Column  string `json:"column"`
	Type    string `json:"type"`
	Missing int    `json:"missing"`
}

// inspectSummary is the json form of an inspect run.
type inspectSummary struct {
	Input      string          `json:"input"`
	Rows       int             `json:"rows"`
	Columns    []columnProfile `json:"columns"`
	Missing    int             `json:"missing"`
	Duplicates int             `json:"duplicates"`
}

func newInspectSummary(input string, t *core.Table) inspectSummary {
	cols := make([]columnProfile, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = columnProfile{Column: c.Name, Type: c.Type.String(), Missing: c.Missing()}
	}
	return inspectSummary{
		Input:      input,
		Rows:       t.Len(),
		Columns:    cols,
		Missing:    core.CountMissing(t),
		Duplicates: core.CountDuplicates(t),
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCleanSummary(w io.Writer, s cleanSummary, format string) error {
	if format == FormatJSON {
		return renderJSON(w, s)
	}

	fmt.Fprintf(w, "Cleaned %s -> %s (%d rows)\n\n", s.Input, s.Output, s.Rows)

	fmt.Fprintln(w, "Data Quality Report")
	renderReport(w, s.Report)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Column Types")
	renderDtypes(w, s.Dtypes)
	return nil
}

func renderInspectSummary(w io.Writer, s inspectSummary, format string) error {
	if format == FormatJSON {
		return renderJSON(w, s)
	}

	fmt.Fprintf(w, "%s: %d rows, %d columns\n\n", s.Input, s.Rows, len(s.Columns))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type", "Missing"})
	for _, c := range s.Columns {
		t.AppendRow(table.Row{c.Column, c.Type, c.Missing})
	}
	t.AppendFooter(table.Row{"", "Total", s.Missing})
	t.Render()

	fmt.Fprintf(w, "\nDuplicate rows: %d\n", s.Duplicates)
	return nil
}

func renderReport(w io.Writer, r core.QualityReport) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Before", "After"})
	for _, row := range r.Rows {
		t.AppendRow(table.Row{row.Metric, row.Before, row.After})
	}
	t.Render()
}

func renderDtypes(w io.Writer, dtypes []core.DtypeEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Type"})
	for _, d := range dtypes {
		t.AppendRow(table.Row{d.Column, d.Type})
	}
	t.Render()
}
