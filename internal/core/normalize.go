package core

import "strings"

// NullNormalizer replaces exact null-like tokens with the absent marker in
// every column that holds text cells.
type NullNormalizer struct {
	Tokens map[string]struct{}
}

// NewNullNormalizer returns a NullNormalizer using NullTokens.
func NewNullNormalizer() NullNormalizer {
	return NullNormalizer{Tokens: NullTokens}
}

func (NullNormalizer) Name() string { return "null_normalizer" }

// Apply returns a copy of t with token cells set to absent.
func (n NullNormalizer) Apply(t *Table) *Table {
	out := t.Clone()
	for _, c := range out.Columns {
		for i, v := range c.Values {
			s, ok := v.(string)
			if !ok {
				continue
			}
			if _, isNull := n.Tokens[s]; isNull {
				c.Values[i] = nil
			}
		}
	}
	return out
}

// TextNormalizer trims text cells and collapses internal whitespace runs to a
// single space. A cell that ends up as the literal "nan" becomes absent.
type TextNormalizer struct{}

func (TextNormalizer) Name() string { return "text_normalizer" }

// Apply returns a copy of t with normalized text columns.
func (TextNormalizer) Apply(t *Table) *Table {
	out := t.Clone()
	for _, c := range out.Columns {
		if c.Type != TypeText {
			continue
		}
		for i, v := range c.Values {
			if v == nil {
				continue
			}
			s := collapseSpace(FormatCell(v))
			if s == "nan" {
				c.Values[i] = nil
				continue
			}
			c.Values[i] = s
		}
	}
	return out
}

// collapseSpace trims s and joins its whitespace-separated fields with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
