package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// NumericStrategy selects how StrategyImputer fills numeric columns.
type NumericStrategy string

const (
	NumericMedian NumericStrategy = "median"
	NumericMean   NumericStrategy = "mean"
	NumericNone   NumericStrategy = "none"
)

// CategoricalStrategy selects how StrategyImputer fills text columns.
type CategoricalStrategy string

const (
	CategoricalMode CategoricalStrategy = "mode"
	CategoricalNone CategoricalStrategy = "none"
)

// ParseNumericStrategy accepts median, mean, none or "do not fill" in any case.
// An empty string selects the default, median.
func ParseNumericStrategy(s string) (NumericStrategy, error) {
	switch normalizeChoice(s) {
	case "", "median":
		return NumericMedian, nil
	case "mean":
		return NumericMean, nil
	case "none", "do not fill":
		return NumericNone, nil
	default:
		return "", fmt.Errorf("invalid numeric strategy %q: want median, mean or none", s)
	}
}

// ParseCategoricalStrategy accepts mode, none or "do not fill" in any case.
// An empty string selects the default, mode.
func ParseCategoricalStrategy(s string) (CategoricalStrategy, error) {
	switch normalizeChoice(s) {
	case "", "mode":
		return CategoricalMode, nil
	case "none", "do not fill":
		return CategoricalNone, nil
	default:
		return "", fmt.Errorf("invalid categorical strategy %q: want mode or none", s)
	}
}

func normalizeChoice(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return collapseSpace(s)
}

// CleaningConfig carries the caller's imputation choices for one run.
type CleaningConfig struct {
	// ManualFill maps a column name to the literal used for its absent cells.
	ManualFill map[string]string

	NumericStrategy     NumericStrategy
	CategoricalStrategy CategoricalStrategy
}

// DefaultConfig fills numeric gaps with the median and text gaps with the mode.
func DefaultConfig() CleaningConfig {
	return CleaningConfig{
		ManualFill:          map[string]string{},
		NumericStrategy:     NumericMedian,
		CategoricalStrategy: CategoricalMode,
	}
}

// ManualImputer fills absent cells with caller-supplied literals. A literal
// that parses as a finite number fills numeric columns with that number; any
// other literal is used as text, turning a numeric column into a text column.
// Blank literals, literals that parse as NaN or infinity, and unknown columns
// are ignored.
type ManualImputer struct {
	Fill map[string]string
	Now  time.Time
}

func (ManualImputer) Name() string { return "manual_imputer" }

// Apply returns a copy of t with the manual fills applied.
func (m ManualImputer) Apply(t *Table) *Table {
	out := t.Clone()

	// Sorted so runs apply fills in a fixed order.
	names := make([]string, 0, len(m.Fill))
	for name := range m.Fill {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		literal := m.Fill[name]
		if strings.TrimSpace(literal) == "" {
			continue
		}
		c := out.Column(name)
		if c == nil || c.Missing() == 0 {
			continue
		}
		fillLiteral(c, literal, m.Now)
	}
	return out
}

// fillLiteral fills c's absent cells from a manual literal.
func fillLiteral(c *Column, literal string, now time.Time) {
	number, isNumber, finite := parseLiteral(literal)
	if isNumber && !finite {
		return
	}

	switch {
	case c.Type.IsNumeric() && isNumber:
		fillNumber(c, number)
	case c.Type == TypeDate:
		if d, ok := ParseDate(literal, now); ok {
			fillAbsent(c, d)
			return
		}
		toText(c)
		fillAbsent(c, literal)
	case c.Type == TypeText:
		fillAbsent(c, literal)
	default:
		toText(c)
		fillAbsent(c, literal)
	}
}

// parseLiteral reports whether a fill literal is a number and whether that
// number is finite.
func parseLiteral(literal string) (f float64, isNumber, finite bool) {
	f, err := cast.ToFloat64E(strings.TrimSpace(literal))
	if err != nil {
		return 0, false, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true, false
	}
	return f, true, true
}

// fillNumber fills a numeric column, keeping integer columns integral when
// the value allows it and promoting them to float otherwise.
func fillNumber(c *Column, v float64) {
	if c.Type == TypeInteger && v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		fillAbsent(c, int64(v))
		return
	}
	promoteFloat(c)
	fillAbsent(c, v)
}

// promoteFloat converts an integer column to float in place.
func promoteFloat(c *Column) {
	if c.Type != TypeInteger {
		return
	}
	for i, v := range c.Values {
		if n, ok := v.(int64); ok {
			c.Values[i] = float64(n)
		}
	}
	c.Type = TypeFloat
}

// toText converts every present cell of c to its text form.
func toText(c *Column) {
	for i, v := range c.Values {
		if v != nil {
			c.Values[i] = FormatCell(v)
		}
	}
	c.Type = TypeText
}

// StrategyImputer fills the gaps left after manual fills: numeric columns by
// median or mean, text columns by mode. Columns without any present value
// stay absent. Date columns are not touched.
type StrategyImputer struct {
	Numeric     NumericStrategy
	Categorical CategoricalStrategy
}

func (StrategyImputer) Name() string { return "strategy_imputer" }

// Apply returns a copy of t with strategy fills applied.
func (s StrategyImputer) Apply(t *Table) *Table {
	out := t.Clone()
	for _, c := range out.Columns {
		if c.Missing() == 0 {
			continue
		}
		switch {
		case c.Type.IsNumeric():
			if v, ok := s.numericFill(c); ok {
				fillNumber(c, v)
			}
		case c.Type == TypeText && s.Categorical == CategoricalMode:
			if v, ok := mode(c.Values); ok {
				fillAbsent(c, v)
			}
		}
	}
	return out
}

func (s StrategyImputer) numericFill(c *Column) (float64, bool) {
	switch s.Numeric {
	case NumericMedian:
		return median(c.Floats())
	case NumericMean:
		return mean(c.Floats())
	default:
		return 0, false
	}
}
