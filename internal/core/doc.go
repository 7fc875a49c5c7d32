// Package core provides the cleaning logic for content-catalog tables.
//
// This package holds all domain rules independent of any UI or transport
// layer. The web server, the CLI and tests all call it the same way.
//
// # Architecture
//
// The package is organized around a few concepts:
//
//   - Table: ordered, typed columns with nil as the absent marker.
//   - Stage: a pure Table -> Table step. Stages never modify their input.
//   - Rules: column names, tokens and ranges kept as data in rules.go.
//   - Clean: one full run, from raw table to cleaned table plus report.
//
// # Cleaning Run
//
// [Clean] executes, in order:
//
//  1. [NullNormalizer]: exact null-like tokens become absent
//  2. [TextNormalizer]: trim and collapse whitespace in text columns
//  3. [Standardizer]: title case, value corrections, certificate allow-list
//  4. [NumericValidator]: coerce, range-check and median-fill numeric columns
//  5. [DateParser]: parse the order date columns
//  6. [DerivedFieldComputer]: profit = box office - budget
//  7. [Deduplicator]: drop repeated rows, keep the first
//  8. [TypeFinalizer]: round years, durations and ratings
//  9. [ManualImputer] and [StrategyImputer]: caller-chosen fills
//  10. [TypeFinalizer] again, then [GenerateReport] and [Dtypes]
//
// The current time is captured once per run, so two runs over the same
// input with the same clock produce identical tables.
//
// # Error Handling
//
// Malformed cells never fail a run; they become absent. Errors only come from
// outside the core (file decoding, limits) and are mapped to user messages
// with [MapError].
package core
