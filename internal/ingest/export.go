package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// ExportFileName is the download name of a cleaned table.
const ExportFileName = "cleaned_data.csv"

// WriteCSV writes t as UTF-8 CSV with a header row and no index column.
// Absent cells are written as empty fields.
func WriteCSV(w io.Writer, t *core.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i := 0; i < t.Len(); i++ {
		for j, c := range t.Columns {
			record[j] = core.FormatCell(c.Values[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
