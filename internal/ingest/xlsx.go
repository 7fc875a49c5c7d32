package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first sheet of a workbook. Leading empty rows are
// skipped; the first non-empty row is the header.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("invalid spreadsheet: %w", ErrEmptyFile)
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var records [][]string
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("invalid spreadsheet: sheet %s: %w", sheet, err)
		}
		if len(records) == 0 && len(row) == 0 {
			continue
		}
		records = append(records, row)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("invalid spreadsheet: sheet %s: %w", sheet, err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}
