package core

import "time"

// DateParser converts the order date columns to dates. Cells that no layout
// accepts become absent; there is no range check.
type DateParser struct {
	Columns []string
	Now     time.Time
}

func (DateParser) Name() string { return "date_parser" }

// Apply returns a copy of t with parsed date columns.
func (d DateParser) Apply(t *Table) *Table {
	out := t.Clone()
	for _, name := range d.Columns {
		c := out.Column(name)
		if c == nil {
			continue
		}
		for i, v := range c.Values {
			switch x := v.(type) {
			case nil, time.Time:
			case string:
				if parsed, ok := ParseDate(x, d.Now); ok {
					c.Values[i] = parsed
				} else {
					c.Values[i] = nil
				}
			default:
				c.Values[i] = nil
			}
		}
		c.Type = TypeDate
	}
	return out
}

// DerivedFieldComputer writes Target = Minuend - Subtrahend for every row when
// both input columns exist. A missing operand yields an absent result.
type DerivedFieldComputer struct {
	Field DerivedField
}

func (DerivedFieldComputer) Name() string { return "derived_field" }

// Apply returns a copy of t with the derived column replaced or appended.
func (d DerivedFieldComputer) Apply(t *Table) *Table {
	out := t.Clone()
	minuend := out.Column(d.Field.Minuend)
	subtrahend := out.Column(d.Field.Subtrahend)
	if minuend == nil || subtrahend == nil {
		return out
	}

	values := make([]any, out.Len())
	for i := range values {
		a, okA := toFloat(minuend.Values[i])
		b, okB := toFloat(subtrahend.Values[i])
		if okA && okB {
			values[i] = a - b
		}
	}
	out.Set(NewColumn(d.Field.Target, TypeFloat, values))
	return out
}
