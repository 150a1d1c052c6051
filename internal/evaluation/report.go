// Package evaluation scores simulation output against empirical
// calibration targets. Record series are reduced to summary statistics,
// each statistic is compared to its target, and the per-target relative
// deviations fold into a single weighted root-mean-square score (lower is
// better). Parameter sweeps rank whole configurations by that score.
package evaluation

import (
	"fmt"
	"math"
	"strings"

	"github.com/jstammers/companies-house-abm/internal/engine"
)

// Result is the outcome for a single target.
type Result struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Simulated   float64 `json:"simulated"`
	Target      float64 `json:"target"`
	Deviation   float64 `json:"deviation"`
	Tolerance   float64 `json:"tolerance"`
	Passed      bool    `json:"passed"`
	Weight      float64 `json:"weight"`
}

// Report holds per-target results for one evaluated run.
type Report struct {
	Results []Result `json:"results"`
}

// Evaluate compares a record series against calibration targets. A nil
// targets slice means DefaultTargets. The first warmUp periods are
// excluded from the statistics.
func Evaluate(records []engine.PeriodRecord, targets []Target, warmUp int) *Report {
	if targets == nil {
		targets = DefaultTargets()
	}

	stats := ComputeStats(records, warmUp)
	report := &Report{Results: make([]Result, 0, len(targets))}

	for _, t := range targets {
		simulated, ok := stats[t.Name]
		if !ok {
			simulated = math.NaN()
		}

		deviation := math.NaN()
		passed := false
		if !math.IsNaN(simulated) && t.Value != 0 {
			deviation = (simulated - t.Value) / math.Abs(t.Value)
			passed = math.Abs(simulated-t.Value) <= t.Tolerance
		}

		report.Results = append(report.Results, Result{
			Name:        t.Name,
			Description: t.Description,
			Simulated:   simulated,
			Target:      t.Value,
			Deviation:   deviation,
			Tolerance:   t.Tolerance,
			Passed:      passed,
			Weight:      t.Weight,
		})
	}

	return report
}

// OverallScore is the weighted root-mean-square relative deviation across
// all targets. NaN deviations contribute nothing to the sum but their
// weights still count, so unmeasurable statistics drag the score toward
// zero rather than poisoning it. Returns +Inf when there is nothing to
// score.
func (r *Report) OverallScore() float64 {
	if len(r.Results) == 0 {
		return math.Inf(1)
	}
	totalWeight := 0.0
	for _, res := range r.Results {
		totalWeight += res.Weight
	}
	if totalWeight == 0 {
		return math.Inf(1)
	}
	wss := 0.0
	for _, res := range r.Results {
		if !math.IsNaN(res.Deviation) {
			wss += res.Weight * res.Deviation * res.Deviation
		}
	}
	return math.Sqrt(wss / totalWeight)
}

// NPassed counts targets within tolerance.
func (r *Report) NPassed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// NTotal is the number of evaluated targets.
func (r *Report) NTotal() int {
	return len(r.Results)
}

// Summary renders the report as a human-readable text block.
func (r *Report) Summary() string {
	lines := []string{
		fmt.Sprintf("Evaluation Report: %d/%d targets within tolerance", r.NPassed(), r.NTotal()),
		fmt.Sprintf("Overall score (WRMS deviation): %.4f", r.OverallScore()),
		"",
	}

	maxName := 10
	for _, res := range r.Results {
		if len(res.Name) > maxName {
			maxName = len(res.Name)
		}
	}

	for _, res := range r.Results {
		status := "FAIL"
		if res.Passed {
			status = "PASS"
		}
		devStr := "  N/A "
		if !math.IsNaN(res.Deviation) {
			devStr = fmt.Sprintf("%+.1f%%", res.Deviation*100)
		}
		lines = append(lines, fmt.Sprintf("  [%s]  %-*s  sim=%8.4f  tgt=%8.4f  dev=%s",
			status, maxName, res.Name, res.Simulated, res.Target, devStr))
	}

	return strings.Join(lines, "\n")
}
