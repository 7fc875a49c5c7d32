package core

import (
	"slices"

	"gonum.org/v1/gonum/stat"
)

// median returns the median of xs, averaging the two middle values for an
// even count. ok is false for an empty slice.
func median(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sorted := slices.Clone(xs)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// mean returns the arithmetic mean of xs. ok is false for an empty slice.
func mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	return stat.Mean(xs, nil), true
}

// mode returns the most frequent non-absent value of a column rendered as
// text. Ties go to the smallest value in sort order.
func mode(values []any) (string, bool) {
	counts := make(map[string]int)
	for _, v := range values {
		if v == nil {
			continue
		}
		counts[FormatCell(v)]++
	}
	if len(counts) == 0 {
		return "", false
	}

	best, bestCount := "", 0
	for v, n := range counts {
		if n > bestCount || (n == bestCount && v < best) {
			best, bestCount = v, n
		}
	}
	return best, true
}
