package core

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Standardizer title-cases text columns, applies the value corrections and
// restricts the certificate column to its allow-list.
type Standardizer struct {
	Exempt      string
	Corrections []Correction
	Codes       map[string]struct{}
}

// NewStandardizer returns a Standardizer using the catalog rules.
func NewStandardizer() Standardizer {
	return Standardizer{
		Exempt:      CertificateColumn,
		Corrections: Corrections,
		Codes:       CertificateCodes,
	}
}

func (Standardizer) Name() string { return "standardizer" }

// Apply returns a standardized copy of t.
func (s Standardizer) Apply(t *Table) *Table {
	out := t.Clone()

	// cases.Caser is stateful and must not be shared between goroutines.
	title := cases.Title(language.Und)

	for _, c := range out.Columns {
		if c.Type != TypeText || strings.EqualFold(c.Name, s.Exempt) {
			continue
		}
		for i, v := range c.Values {
			if v == nil {
				continue
			}
			text := strings.TrimSpace(FormatCell(v))
			if text == "" {
				c.Values[i] = nil
				continue
			}
			c.Values[i] = title.String(text)
		}
	}

	for _, corr := range s.Corrections {
		c := out.Column(corr.Column)
		if c == nil {
			continue
		}
		for i, v := range c.Values {
			text, ok := v.(string)
			if !ok {
				continue
			}
			if fixed, found := corr.Replace[text]; found {
				c.Values[i] = fixed
			}
		}
	}

	if c := out.Column(s.Exempt); c != nil {
		s.restrictCodes(c)
	}

	return out
}

// restrictCodes uppercases the column and drops anything outside the allow-list.
// Absent cells stay absent.
func (s Standardizer) restrictCodes(c *Column) {
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		code := strings.TrimSpace(strings.ToUpper(FormatCell(v)))
		if _, ok := s.Codes[code]; ok {
			c.Values[i] = code
		} else {
			c.Values[i] = nil
		}
	}
	c.Type = TypeText
}
