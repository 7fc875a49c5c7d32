package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewSanitizingReader strips a leading UTF-8 BOM (common in files saved by
// Excel on Windows) and replaces invalid UTF-8 sequences with U+FFFD while
// streaming.
func NewSanitizingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// readCSV reads all records of a comma-separated file.
func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(NewSanitizingReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		if len(records) == 0 && isBlankRecord(rec) {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

// isBlankRecord reports whether a record holds a single empty field, which is
// how encoding/csv returns a whitespace-only line.
func isBlankRecord(rec []string) bool {
	return len(rec) == 1 && rec[0] == ""
}
