package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// TypeFinalizer rounds the display columns: integer columns to whole numbers
// stored as int64, the rating to one decimal place. Absent cells stay absent
// and columns that are no longer numeric are left alone. Applying it twice
// gives the same table as applying it once.
type TypeFinalizer struct {
	Roundings []Rounding
}

// NewTypeFinalizer returns a TypeFinalizer using Roundings.
func NewTypeFinalizer() TypeFinalizer {
	return TypeFinalizer{Roundings: Roundings}
}

func (TypeFinalizer) Name() string { return "type_finalizer" }

// Apply returns a copy of t with rounded columns.
func (f TypeFinalizer) Apply(t *Table) *Table {
	out := t.Clone()
	for _, r := range f.Roundings {
		c := out.Column(r.Column)
		if c == nil || !c.Type.IsNumeric() {
			continue
		}
		if r.Integer {
			roundInteger(c)
		} else {
			roundPlaces(c, r.Places)
		}
	}
	return out
}

// roundInteger rounds half to even and stores int64 cells. NaN and values
// outside the int64 range become absent.
func roundInteger(c *Column) {
	for i, v := range c.Values {
		x, ok := v.(float64)
		if !ok {
			continue
		}
		r := math.RoundToEven(x)
		if math.IsNaN(r) || r >= 1<<63 || r < -(1<<63) {
			c.Values[i] = nil
			continue
		}
		c.Values[i] = int64(r)
	}
	c.Type = TypeInteger
}

// roundPlaces rounds half to even at the given decimal places and stores
// float64 cells.
func roundPlaces(c *Column, places int32) {
	for i, v := range c.Values {
		x, ok := toFloat(v)
		if !ok {
			continue
		}
		rounded, _ := decimal.NewFromFloat(x).RoundBank(places).Float64()
		c.Values[i] = rounded
	}
	c.Type = TypeFloat
}
