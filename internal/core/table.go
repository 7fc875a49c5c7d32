package core

// table.go defines the in-memory table every cleaning stage consumes and produces.
//
// A Table is an ordered list of named columns of equal length. Each cell is
// either nil (the absent marker) or a value whose Go type matches the column:
//
//	TypeText    -> string
//	TypeInteger -> int64
//	TypeFloat   -> float64
//	TypeDate    -> time.Time
//
// Rows are addressed positionally; there is no separate index column.

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ColumnType is the logical type of a column.
type ColumnType int

const (
	TypeText ColumnType = iota
	TypeInteger
	TypeFloat
	TypeDate
)

// String returns the type label used by the dtype summary and exports.
func (t ColumnType) String() string {
	switch t {
	case TypeText:
		return "text"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeDate:
		return "date"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether the column holds integers or floats.
func (t ColumnType) IsNumeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name   string
	Type   ColumnType
	Values []any
}

// NewColumn creates a column. Values are used as given, not copied.
func NewColumn(name string, typ ColumnType, values []any) *Column {
	return &Column{Name: name, Type: typ, Values: values}
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.Values)
}

// Clone returns a deep copy of the column. Cell values are immutable scalars,
// so copying the slice is enough to prevent aliasing.
func (c *Column) Clone() *Column {
	values := make([]any, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Type: c.Type, Values: values}
}

// Missing returns the number of absent cells.
func (c *Column) Missing() int {
	n := 0
	for _, v := range c.Values {
		if v == nil {
			n++
		}
	}
	return n
}

// Floats returns the non-absent numeric cells as float64, in row order.
// Cells that are not numeric are skipped.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := toFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	Columns []*Column
}

// NewTable creates a table from the given columns.
func NewTable(cols ...*Column) *Table {
	return &Table{Columns: cols}
}

// Len returns the row count. A table without columns has zero rows.
func (t *Table) Len() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the exact name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ColumnFold returns the first column whose name matches case-insensitively, or nil.
func (t *Table) ColumnFold(name string) *Column {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c
		}
	}
	return nil
}

// Has reports whether a column with the exact name exists.
func (t *Table) Has(name string) bool {
	return t.Column(name) != nil
}

// Set replaces the column with the same name, or appends it.
func (t *Table) Set(col *Column) {
	for i, c := range t.Columns {
		if c.Name == col.Name {
			t.Columns[i] = col
			return
		}
	}
	t.Columns = append(t.Columns, col)
}

// Row returns the cells of row i across all columns.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	cols := make([]*Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = c.Clone()
	}
	return &Table{Columns: cols}
}

// Validate checks that all columns share the same length and names are unique.
func (t *Table) Validate() error {
	seen := make(map[string]bool, len(t.Columns))
	n := t.Len()
	for _, c := range t.Columns {
		if seen[c.Name] {
			return fmt.Errorf("duplicate column %q", c.Name)
		}
		seen[c.Name] = true
		if c.Len() != n {
			return fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), n)
		}
	}
	return nil
}

// Equal reports whether two tables have the same columns, types and cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if len(t.Columns) != len(o.Columns) || t.Len() != o.Len() {
		return false
	}
	for i, c := range t.Columns {
		oc := o.Columns[i]
		if c.Name != oc.Name || c.Type != oc.Type || c.Len() != oc.Len() {
			return false
		}
		for r := range c.Values {
			if !cellEqual(c.Values[r], oc.Values[r]) {
				return false
			}
		}
	}
	return true
}

// cellEqual compares two cells; absent equals absent.
func cellEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	default:
		return a == b
	}
}

// toFloat converts a numeric cell to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// FormatCell renders a cell as text the way exports and text coercion expect.
// Absent cells render as the empty string.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			// Whole floats keep a fractional part so they read back as floats.
			s += ".0"
		}
		return s
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
