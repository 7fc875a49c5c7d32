package core

// Report metric names.
const (
	MetricMissing    = "Missing Values"
	MetricDuplicates = "Duplicate Rows"
)

// ReportRow is one before/after metric.
type ReportRow struct {
	Metric string `json:"metric"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// QualityReport compares the raw table with the cleaned one.
type QualityReport struct {
	Rows []ReportRow `json:"rows"`
}

// Get returns the row for a metric.
func (r QualityReport) Get(metric string) (ReportRow, bool) {
	for _, row := range r.Rows {
		if row.Metric == metric {
			return row, true
		}
	}
	return ReportRow{}, false
}

// GenerateReport counts absent cells and duplicate rows in both tables.
func GenerateReport(before, after *Table) QualityReport {
	return QualityReport{Rows: []ReportRow{
		{Metric: MetricMissing, Before: CountMissing(before), After: CountMissing(after)},
		{Metric: MetricDuplicates, Before: CountDuplicates(before), After: CountDuplicates(after)},
	}}
}

// CountMissing returns the number of absent cells in the table.
func CountMissing(t *Table) int {
	n := 0
	for _, c := range t.Columns {
		n += c.Missing()
	}
	return n
}

// ColumnsWithMissing returns the names of columns holding at least one absent
// cell, in table order. These are the columns a caller may manually fill.
func ColumnsWithMissing(t *Table) []string {
	var names []string
	for _, c := range t.Columns {
		if c.Missing() > 0 {
			names = append(names, c.Name)
		}
	}
	return names
}

// DtypeEntry pairs a column name with its type label.
type DtypeEntry struct {
	Column string `json:"column"`
	Type   string `json:"type"`
}

// Dtypes summarizes the resolved type of every column, in table order.
func Dtypes(t *Table) []DtypeEntry {
	out := make([]DtypeEntry, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = DtypeEntry{Column: c.Name, Type: c.Type.String()}
	}
	return out
}
