package core

// rules.go holds the catalog-specific cleaning rules as data.
//
// Stages read these tables instead of hardcoding column names in control flow,
// so adding a column to a rule means adding an entry here.

import "time"

// NullTokens are the exact cell values treated as missing. Matching is done
// before any trimming, so " null " is not a token.
var NullTokens = map[string]struct{}{
	"":          {},
	" ":         {},
	"  ":        {},
	"nan":       {},
	"NaN":       {},
	"NAN":       {},
	"null":      {},
	"NULL":      {},
	"None":      {},
	"none":      {},
	"undefined": {},
	"Undefined": {},
	"-":         {},
}

// CertificateColumn is exempt from title casing (matched case-insensitively)
// and, under its exact name, restricted to CertificateCodes.
const CertificateColumn = "certificate"

// CertificateCodes is the allow-list for the certificate column.
var CertificateCodes = map[string]struct{}{
	"U":  {},
	"UA": {},
	"A":  {},
}

// Correction replaces exact values in a single column.
type Correction struct {
	Column  string
	Replace map[string]string
}

// Corrections are applied after title casing. Values that do not match an
// entry exactly pass through unchanged.
var Corrections = []Correction{
	{
		Column: "platform",
		Replace: map[string]string{
			"Amazom Prime": "Amazon Prime",
			"Zee 5":        "Zee5",
		},
	},
	{
		Column: "country",
		Replace: map[string]string{
			"Indai":  "India",
			"India ": "India",
		},
	},
}

// Bound is one side of a numeric range.
type Bound struct {
	Value     float64
	Inclusive bool
}

// admits reports whether v lies on the valid side of the bound.
func (b *Bound) admits(v float64, lower bool) bool {
	if b == nil {
		return true
	}
	switch {
	case lower && b.Inclusive:
		return v >= b.Value
	case lower:
		return v > b.Value
	case b.Inclusive:
		return v <= b.Value
	default:
		return v < b.Value
	}
}

// NumericRule describes how one designated numeric column is validated.
// Values outside [Lower, Upper] become absent; with FillMedian set the
// remaining gaps are filled with the column median.
type NumericRule struct {
	Column     string
	Lower      *Bound
	Upper      *Bound
	FillMedian bool
}

// Admits reports whether v passes both bounds.
func (r NumericRule) Admits(v float64) bool {
	return r.Lower.admits(v, true) && r.Upper.admits(v, false)
}

// Designated numeric columns.
const (
	ColReleaseYear = "release_year"
	ColDuration    = "duration_min"
	ColRating      = "imdb_rating"
	ColBudget      = "budget_cr"
	ColBoxOffice   = "box_office_cr"
	ColProfit      = "profit_cr"
)

// MinReleaseYear is the earliest accepted release year.
const MinReleaseYear = 1800

// NumericRules returns the numeric rule table for a run started at now.
// The upper release-year bound moves with the calendar, so the table is
// built per run from a single captured time.
func NumericRules(now time.Time) []NumericRule {
	return []NumericRule{
		{
			Column: ColReleaseYear,
			Lower:  &Bound{Value: MinReleaseYear, Inclusive: true},
			Upper:  &Bound{Value: float64(now.Year() + 1), Inclusive: true},
		},
		{Column: ColDuration, Lower: &Bound{Value: 0}, FillMedian: true},
		{
			Column: ColRating,
			Lower:  &Bound{Value: 0, Inclusive: true},
			Upper:  &Bound{Value: 10, Inclusive: true},
		},
		{Column: ColBudget, Lower: &Bound{Value: 0, Inclusive: true}, FillMedian: true},
		{Column: ColBoxOffice, Lower: &Bound{Value: 0, Inclusive: true}, FillMedian: true},
		{Column: ColProfit},
	}
}

// DateColumns are the accepted spellings of the order date column.
var DateColumns = []string{"order_date", "Order Date"}

// DerivedField computes Target = Minuend - Subtrahend when both inputs exist.
type DerivedField struct {
	Target     string
	Minuend    string
	Subtrahend string
}

// ProfitField derives profit from box office and budget.
var ProfitField = DerivedField{
	Target:     ColProfit,
	Minuend:    ColBoxOffice,
	Subtrahend: ColBudget,
}

// Rounding describes how TypeFinalizer stores a column.
type Rounding struct {
	Column  string
	Places  int32
	Integer bool
}

// Roundings lists the columns TypeFinalizer rounds.
var Roundings = []Rounding{
	{Column: ColReleaseYear, Integer: true},
	{Column: ColDuration, Integer: true},
	{Column: ColRating, Places: 1},
}
