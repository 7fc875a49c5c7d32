package core

import (
	"log/slog"
	"time"
)

// Stage is one step of the cleaning pipeline. Apply must not modify its
// input; it returns a new table.
type Stage interface {
	Name() string
	Apply(t *Table) *Table
}

// Chain runs stages in order, feeding each the previous result.
type Chain []Stage

// Apply runs every stage of the chain.
func (c Chain) Apply(t *Table) *Table {
	for _, s := range c {
		t = s.Apply(t)
	}
	return t
}

// Pipeline is the fixed cleaning sequence for one run.
type Pipeline struct {
	stages Chain
	logger *slog.Logger
}

// NewPipeline builds the cleaning sequence. now is captured once and used
// for every time-dependent rule of the run.
func NewPipeline(now time.Time) *Pipeline {
	return &Pipeline{
		stages: Chain{
			NewNullNormalizer(),
			TextNormalizer{},
			NewStandardizer(),
			NumericValidator{Rules: NumericRules(now)},
			DateParser{Columns: DateColumns, Now: now},
			DerivedFieldComputer{Field: ProfitField},
			Deduplicator{},
			NewTypeFinalizer(),
		},
		logger: slog.Default(),
	}
}

// WithLogger sets the logger used for stage timings.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	p.logger = l
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run cleans raw and returns the result. raw is not modified.
func (p *Pipeline) Run(raw *Table) *Table {
	t := raw.Clone()
	for _, s := range p.stages {
		start := time.Now()
		t = s.Apply(t)
		p.logger.Debug("stage complete",
			"stage", s.Name(),
			"rows", t.Len(),
			"missing", CountMissing(t),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return t
}

// Result is the output of a full cleaning run.
type Result struct {
	Cleaned *Table
	Report  QualityReport
	Dtypes  []DtypeEntry
}

// Clean runs the pipeline, applies the caller's imputation choices, rounds
// the display columns again and reports quality against raw. It never fails:
// malformed cells end up absent.
//
// The report is computed after imputation, so its After counts reflect the
// table the caller actually receives.
func Clean(raw *Table, cfg CleaningConfig, now time.Time) Result {
	return CleanWithLogger(slog.Default(), raw, cfg, now)
}

// CleanWithLogger is Clean with an explicit logger, typically request-scoped.
func CleanWithLogger(logger *slog.Logger, raw *Table, cfg CleaningConfig, now time.Time) Result {
	start := time.Now()

	cleaned := NewPipeline(now).WithLogger(logger).Run(raw)
	cleaned = Chain{
		ManualImputer{Fill: cfg.ManualFill, Now: now},
		StrategyImputer{Numeric: cfg.NumericStrategy, Categorical: cfg.CategoricalStrategy},
		NewTypeFinalizer(),
	}.Apply(cleaned)

	res := Result{
		Cleaned: cleaned,
		Report:  GenerateReport(raw, cleaned),
		Dtypes:  Dtypes(cleaned),
	}

	logger.Info("cleaning run complete",
		"rows_in", raw.Len(),
		"rows_out", cleaned.Len(),
		"columns", len(cleaned.Columns),
		"numeric_strategy", string(cfg.NumericStrategy),
		"categorical_strategy", string(cfg.CategoricalStrategy),
		"manual_fills", len(cfg.ManualFill),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}
