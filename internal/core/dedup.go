package core

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/zeebo/xxh3"
)

// Deduplicator drops rows equal to an earlier row across all columns.
// Absent cells compare equal to each other. Survivors keep their relative
// order and are renumbered from zero.
type Deduplicator struct{}

func (Deduplicator) Name() string { return "deduplicator" }

// Apply returns a copy of t without duplicate rows.
func (Deduplicator) Apply(t *Table) *Table {
	dup := duplicateMask(t)

	out := &Table{Columns: make([]*Column, len(t.Columns))}
	for j, c := range t.Columns {
		values := make([]any, 0, len(c.Values))
		for i, v := range c.Values {
			if !dup[i] {
				values = append(values, v)
			}
		}
		out.Columns[j] = NewColumn(c.Name, c.Type, values)
	}
	return out
}

// CountDuplicates returns how many rows repeat an earlier row.
func CountDuplicates(t *Table) int {
	n := 0
	for _, d := range duplicateMask(t) {
		if d {
			n++
		}
	}
	return n
}

// duplicateMask flags every row that repeats an earlier one. Rows are bucketed
// by hash and confirmed by cell comparison, so hash collisions cannot drop
// distinct rows.
func duplicateMask(t *Table) []bool {
	n := t.Len()
	mask := make([]bool, n)
	buckets := make(map[uint64][]int, n)
	var buf []byte

	for i := 0; i < n; i++ {
		buf = encodeRow(buf[:0], t, i)
		h := xxh3.Hash(buf)

		for _, prev := range buckets[h] {
			if rowsEqual(t, prev, i) {
				mask[i] = true
				break
			}
		}
		if !mask[i] {
			buckets[h] = append(buckets[h], i)
		}
	}
	return mask
}

func rowsEqual(t *Table, a, b int) bool {
	for _, c := range t.Columns {
		if !cellEqual(c.Values[a], c.Values[b]) {
			return false
		}
	}
	return true
}

// Cell tags for row encoding.
const (
	tagAbsent byte = iota
	tagText
	tagInt
	tagFloat
	tagDate
	tagOther
)

// encodeRow appends a type-tagged encoding of row i to buf.
func encodeRow(buf []byte, t *Table, i int) []byte {
	for _, c := range t.Columns {
		switch v := c.Values[i].(type) {
		case nil:
			buf = append(buf, tagAbsent)
		case string:
			buf = append(buf, tagText)
			buf = binary.AppendUvarint(buf, uint64(len(v)))
			buf = append(buf, v...)
		case int64:
			buf = append(buf, tagInt)
			buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
		case float64:
			if v == 0 {
				v = 0 // -0 and +0 are equal cells
			}
			buf = append(buf, tagFloat)
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		case time.Time:
			buf = append(buf, tagDate)
			buf = binary.LittleEndian.AppendUint64(buf, uint64(v.UnixNano()))
		default:
			buf = append(buf, tagOther)
		}
	}
	return buf
}
