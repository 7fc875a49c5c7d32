package core

// NumericValidator coerces the designated numeric columns to floats, nulls
// out-of-range values and median-fills the columns whose rule asks for it.
// Columns missing from the table are skipped.
type NumericValidator struct {
	Rules []NumericRule
}

func (NumericValidator) Name() string { return "numeric_validator" }

// Apply returns a copy of t with validated numeric columns.
func (n NumericValidator) Apply(t *Table) *Table {
	out := t.Clone()
	for _, rule := range n.Rules {
		c := out.Column(rule.Column)
		if c == nil {
			continue
		}
		coerceFloat(c)

		for i, v := range c.Values {
			if f, ok := v.(float64); ok && !rule.Admits(f) {
				c.Values[i] = nil
			}
		}

		if rule.FillMedian {
			if m, ok := median(c.Floats()); ok {
				fillAbsent(c, m)
			}
		}
	}
	return out
}

// coerceFloat converts every cell of c to float64, turning unparseable cells
// into the absent marker.
func coerceFloat(c *Column) {
	for i, v := range c.Values {
		switch x := v.(type) {
		case nil:
		case float64:
		case int64:
			c.Values[i] = float64(x)
		case string:
			if f, ok := ParseNumber(x); ok {
				c.Values[i] = f
			} else {
				c.Values[i] = nil
			}
		default:
			c.Values[i] = nil
		}
	}
	c.Type = TypeFloat
}

// fillAbsent sets every absent cell of c to v.
func fillAbsent(c *Column, v any) {
	for i := range c.Values {
		if c.Values[i] == nil {
			c.Values[i] = v
		}
	}
}
