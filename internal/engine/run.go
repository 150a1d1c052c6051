package engine

import (
	"log/slog"

	"github.com/jstammers/companies-house-abm/internal/config"
)

// Options are the run parameters. Config nil means defaults.
type Options struct {
	Firms      int
	Households int
	Banks      int
	Periods    int
	Seed       uint64
	Config     *config.Config
}

// DefaultOptions is the baseline run: 100 firms, 500 households, 10 banks,
// 50 periods, seed 42.
func DefaultOptions() Options {
	return Options{
		Firms:      100,
		Households: 500,
		Banks:      10,
		Periods:    50,
		Seed:       42,
	}
}

// Run advances the economy the given number of periods and returns the
// full record series.
func (e *Economy) Run(periods int) []PeriodRecord {
	for i := 0; i < periods; i++ {
		e.Step()
	}

	var last PeriodRecord
	if len(e.Records) > 0 {
		last = e.Records[len(e.Records)-1]
	}
	slog.Info("run complete",
		"periods", periods,
		"firms", len(e.Firms),
		"households", len(e.Households),
		"banks", len(e.Banks),
		"final_gdp", last.GDP,
		"final_unemployment", last.UnemploymentRate,
		"bankruptcies", last.FirmBankruptcies,
	)
	return e.Records
}

// RunSimulation builds an economy from the options and runs it to
// completion.
func RunSimulation(opts Options) []PeriodRecord {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	e := New(cfg, opts.Firms, opts.Households, opts.Banks, opts.Seed)
	return e.Run(opts.Periods)
}
