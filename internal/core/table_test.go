package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textCol builds a text column from literal cells.
func textCol(name string, values ...any) *Column {
	return NewColumn(name, TypeText, values)
}

func floatCol(name string, values ...any) *Column {
	return NewColumn(name, TypeFloat, values)
}

func intCol(name string, values ...any) *Column {
	return NewColumn(name, TypeInteger, values)
}

func TestTable_CloneDoesNotAlias(t *testing.T) {
	orig := NewTable(textCol("title", "a", "b"), floatCol("budget_cr", 1.0, nil))
	clone := orig.Clone()

	clone.Column("title").Values[0] = "changed"
	clone.Set(floatCol("extra", 1.0, 2.0))

	assert.Equal(t, "a", orig.Column("title").Values[0])
	assert.False(t, orig.Has("extra"))
	assert.True(t, clone.Has("extra"))
}

func TestTable_Lookup(t *testing.T) {
	tbl := NewTable(textCol("Certificate", "U"), textCol("platform", "Netflix"))

	assert.Nil(t, tbl.Column("certificate"))
	require.NotNil(t, tbl.ColumnFold("certificate"))
	assert.Equal(t, "Certificate", tbl.ColumnFold("certificate").Name)
	assert.Equal(t, []string{"Certificate", "platform"}, tbl.Names())
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []any{"U", "Netflix"}, tbl.Row(0))
}

func TestTable_Set(t *testing.T) {
	tbl := NewTable(floatCol("profit_cr", 1.0))
	tbl.Set(floatCol("profit_cr", 2.0))

	require.Len(t, tbl.Columns, 1)
	assert.Equal(t, 2.0, tbl.Column("profit_cr").Values[0])
}

func TestTable_Validate(t *testing.T) {
	ok := NewTable(textCol("a", "x", "y"), floatCol("b", 1.0, nil))
	assert.NoError(t, ok.Validate())

	ragged := NewTable(textCol("a", "x", "y"), floatCol("b", 1.0))
	assert.Error(t, ragged.Validate())

	dup := NewTable(textCol("a", "x"), textCol("a", "y"))
	assert.Error(t, dup.Validate())
}

func TestTable_Equal(t *testing.T) {
	d := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	a := NewTable(textCol("t", "x", nil), NewColumn("d", TypeDate, []any{d, nil}))
	b := NewTable(textCol("t", "x", nil), NewColumn("d", TypeDate, []any{d.In(time.FixedZone("X", 3600)), nil}))

	assert.True(t, a.Equal(b), "same instant in another zone is equal")

	c := NewTable(textCol("t", "x", "y"), NewColumn("d", TypeDate, []any{d, nil}))
	assert.False(t, a.Equal(c))

	typed := NewTable(NewColumn("t", TypeInteger, []any{int64(1), nil}), NewColumn("d", TypeDate, []any{d, nil}))
	assert.False(t, a.Equal(typed))
}

func TestColumn_MissingAndFloats(t *testing.T) {
	c := NewColumn("n", TypeFloat, []any{1.5, nil, int64(2), nil})
	assert.Equal(t, 2, c.Missing())
	assert.Equal(t, []float64{1.5, 2}, c.Floats())
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{int64(2024), "2024"},
		{7.5, "7.5"},
		{100.0, "100.0"},
		{-20.0, "-20.0"},
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "2024-01-15"},
		{time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), "2024-01-15T10:30:00Z"},
	}

	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColumnType_String(t *testing.T) {
	assert.Equal(t, "text", TypeText.String())
	assert.Equal(t, "integer", TypeInteger.String())
	assert.Equal(t, "float", TypeFloat.String())
	assert.Equal(t, "date", TypeDate.String())
	assert.True(t, TypeInteger.IsNumeric())
	assert.False(t, TypeDate.IsNumeric())
}
