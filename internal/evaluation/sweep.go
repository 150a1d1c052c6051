package evaluation

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/jstammers/companies-house-abm/internal/config"
	"github.com/jstammers/companies-house-abm/internal/engine"
)

// SweepParam is one axis of a parameter grid: a config parameter name and
// the values to explore. The name "seed" is special-cased to vary the run
// seed instead of a config field.
type SweepParam struct {
	Name   string
	Values []float64
}

// SweepOptions configures a grid search. Zero counts and periods fall back
// to 100 firms, 500 households, 10 banks and 80 periods; a nil Base means
// config defaults and nil Targets means DefaultTargets.
type SweepOptions struct {
	Params     []SweepParam
	Firms      int
	Households int
	Banks      int
	Periods    int
	Seed       uint64
	WarmUp     int
	Targets    []Target
	Base       *config.Config
}

// SweepResult is the evaluation of one parameter combination.
type SweepResult struct {
	Params map[string]float64 `json:"params"`
	Report *Report            `json:"report"`
}

// Score is the combination's weighted RMS deviation (lower is better).
func (r SweepResult) Score() float64 {
	return r.Report.OverallScore()
}

// SweepSummary collects one result per combination tested.
type SweepSummary struct {
	Results []SweepResult `json:"results"`

	names []string
}

// Best returns the combination with the lowest score, or nil when the
// sweep produced no results.
func (s *SweepSummary) Best() *SweepResult {
	if len(s.Results) == 0 {
		return nil
	}
	best := &s.Results[0]
	for i := 1; i < len(s.Results); i++ {
		if s.Results[i].Score() < best.Score() {
			best = &s.Results[i]
		}
	}
	return best
}

// Worst returns the combination with the highest score, or nil when the
// sweep produced no results.
func (s *SweepSummary) Worst() *SweepResult {
	if len(s.Results) == 0 {
		return nil
	}
	worst := &s.Results[0]
	for i := 1; i < len(s.Results); i++ {
		if s.Results[i].Score() > worst.Score() {
			worst = &s.Results[i]
		}
	}
	return worst
}

// Ranked returns the results sorted by score, best first.
func (s *SweepSummary) Ranked() []SweepResult {
	ranked := make([]SweepResult, len(s.Results))
	copy(ranked, s.Results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() < ranked[j].Score()
	})
	return ranked
}

// Table renders all results as a text table sorted by score.
func (s *SweepSummary) Table() string {
	if len(s.Results) == 0 {
		return "No results."
	}
	ranked := s.Ranked()

	header := fmt.Sprintf("%4s  %8s", "Rank", "Score")
	for _, name := range s.names {
		header += fmt.Sprintf("  %-12s", name)
	}
	lines := []string{header, strings.Repeat("-", len(header))}
	for i, r := range ranked {
		line := fmt.Sprintf("%4d  %8.4f", i+1, r.Score())
		for _, name := range s.names {
			line += fmt.Sprintf("  %-12s", formatValue(r.Params[name]))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Sweep runs a full grid search: every combination of parameter values is
// applied on top of the base config, simulated, and evaluated against the
// targets. Combinations whose parameters fail to apply are skipped with a
// warning. An empty grid evaluates the base configuration once.
func Sweep(opts SweepOptions) *SweepSummary {
	if opts.Firms == 0 {
		opts.Firms = 100
	}
	if opts.Households == 0 {
		opts.Households = 500
	}
	if opts.Banks == 0 {
		opts.Banks = 10
	}
	if opts.Periods == 0 {
		opts.Periods = 80
	}
	base := opts.Base
	if base == nil {
		base = config.Default()
	}

	summary := &SweepSummary{}
	nTotal := 1
	for _, p := range opts.Params {
		summary.names = append(summary.names, p.Name)
		nTotal *= len(p.Values)
	}
	if nTotal == 0 {
		return summary
	}

	idx := make([]int, len(opts.Params))
	combo := 0
	for {
		combo++
		params := make(map[string]float64, len(opts.Params))
		seed := opts.Seed
		cfg := base.Clone()
		applied := true
		for i, p := range opts.Params {
			v := p.Values[idx[i]]
			params[p.Name] = v
			if p.Name == "seed" {
				seed = uint64(v)
				continue
			}
			if err := cfg.Set(p.Name, v); err != nil {
				slog.Warn("sweep combination skipped", "combo", combo, "error", err)
				applied = false
				break
			}
		}

		if applied {
			records := engine.RunSimulation(engine.Options{
				Firms:      opts.Firms,
				Households: opts.Households,
				Banks:      opts.Banks,
				Periods:    opts.Periods,
				Seed:       seed,
				Config:     cfg,
			})
			report := Evaluate(records, opts.Targets, opts.WarmUp)
			summary.Results = append(summary.Results, SweepResult{Params: params, Report: report})
			slog.Info("sweep combination evaluated",
				"combo", combo,
				"total", nTotal,
				"score", report.OverallScore(),
				"passed", report.NPassed(),
			)
		}

		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(opts.Params[pos].Values) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}

	return summary
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
