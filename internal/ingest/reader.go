// Package ingest decodes uploaded CSV and XLSX files into core tables and
// encodes cleaned tables back to CSV.
//
// Decoding keeps the source's column names and infers a basic type per
// column: integer when every present value is an integer, float when every
// present value is a number, text otherwise. Cells matching the reader's
// NA spellings become absent.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

var (
	// ErrUnsupportedFormat is returned for file extensions other than .csv and .xlsx.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("empty file: no header row")
)

// Format identifies an input file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat maps a file name to its format by extension.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// Read decodes r according to the extension of name.
func Read(name string, r io.Reader) (*core.Table, error) {
	format, err := DetectFormat(name)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case FormatCSV:
		records, err = readCSV(r)
	case FormatXLSX:
		records, err = readXLSX(r)
	}
	if err != nil {
		return nil, err
	}
	return BuildTable(records)
}

// naValues are the field spellings read as missing. Matching is exact.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNA reports whether a raw field is read as missing.
func IsNA(field string) bool {
	_, ok := naValues[field]
	return ok
}

// BuildTable turns a header row plus data rows into a typed table. Short rows
// are padded with missing cells and long rows are truncated to the header.
func BuildTable(records [][]string) (*core.Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := uniqueHeader(records[0])
	rows := records[1:]

	t := &core.Table{Columns: make([]*core.Column, len(header))}
	for j, name := range header {
		raw := make([]string, len(rows))
		present := make([]bool, len(rows))
		for i, row := range rows {
			if j < len(row) && !IsNA(row[j]) {
				raw[i] = row[j]
				present[i] = true
			}
		}
		t.Columns[j] = inferColumn(name, raw, present)
	}
	return t, nil
}

// uniqueHeader names blank headers "Unnamed: i" and suffixes repeats with
// ".1", ".2" so every column can be addressed by name.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for seen[name] > 0 {
			name = base + "." + strconv.Itoa(seen[base])
			seen[base]++
		}
		seen[name]++
		out[i] = name
	}
	return out
}

// inferColumn picks the narrowest type that fits every present value.
func inferColumn(name string, raw []string, present []bool) *core.Column {
	values := make([]any, len(raw))

	count := 0
	allInt, allFloat := true, true
	for i, s := range raw {
		if !present[i] {
			continue
		}
		count++
		if allInt {
			if _, ok := core.ParseInt(s); !ok {
				allInt = false
			}
		}
		if allFloat {
			if _, ok := parseFloat(s); !ok {
				allFloat = false
			}
		}
	}

	switch {
	case count == 0 && len(raw) > 0:
		return core.NewColumn(name, core.TypeFloat, values)
	case count == 0:
		return core.NewColumn(name, core.TypeText, values)
	case allInt:
		for i, s := range raw {
			if present[i] {
				values[i], _ = core.ParseInt(s)
			}
		}
		return core.NewColumn(name, core.TypeInteger, values)
	case allFloat:
		for i, s := range raw {
			if present[i] {
				values[i], _ = parseFloat(s)
			}
		}
		return core.NewColumn(name, core.TypeFloat, values)
	default:
		for i, s := range raw {
			if present[i] {
				values[i] = s
			}
		}
		return core.NewColumn(name, core.TypeText, values)
	}
}

// parseFloat accepts plain decimal and scientific notation. Currency symbols
// and separators are left for the cleaning stages, so such columns stay text.
func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
