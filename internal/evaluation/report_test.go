package evaluation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstammers/companies-house-abm/internal/engine"
)

func flatSeries(n int, unemployment float64) []engine.PeriodRecord {
	records := make([]engine.PeriodRecord, n)
	for i := range records {
		records[i] = engine.PeriodRecord{
			Period:           i + 1,
			GDP:              100,
			Inflation:        0.005,
			UnemploymentRate: unemployment,
			AverageWage:      1,
			GovernmentDebt:   85,
			TotalEmployment:  55,
		}
	}
	return records
}

func TestEvaluateDefaultTargets(t *testing.T) {
	report := Evaluate(flatSeries(10, 0.045), nil, 0)

	require.Len(t, report.Results, 7)
	names := make([]string, len(report.Results))
	for i, r := range report.Results {
		names[i] = r.Name
	}
	assert.Equal(t, []string{
		"gdp_growth_mean", "gdp_growth_std", "unemployment_mean",
		"inflation_mean", "inflation_std", "government_debt_gdp", "wage_share",
	}, names)
}

func TestEvaluateFlatSeriesHitsLevelTargets(t *testing.T) {
	// Constant GDP means zero growth; the level statistics sit exactly on
	// the UK targets.
	report := Evaluate(flatSeries(10, 0.045), nil, 0)

	byName := map[string]Result{}
	for _, r := range report.Results {
		byName[r.Name] = r
	}

	assert.True(t, byName["unemployment_mean"].Passed)
	assert.InDelta(t, 0.045, byName["unemployment_mean"].Simulated, 1e-9)
	assert.InDelta(t, 0.0, byName["unemployment_mean"].Deviation, 1e-9)

	assert.True(t, byName["inflation_mean"].Passed)
	assert.True(t, byName["government_debt_gdp"].Passed)
	assert.True(t, byName["wage_share"].Passed)

	// Zero growth sits 0.5pp below the growth target, outside the 0.3pp
	// tolerance.
	growth := byName["gdp_growth_mean"]
	assert.InDelta(t, 0.0, growth.Simulated, 1e-9)
	assert.InDelta(t, -1.0, growth.Deviation, 1e-9)
	assert.False(t, growth.Passed)
}

func TestEvaluateDeviationAndTolerance(t *testing.T) {
	targets := []Target{
		{Name: "unemployment_mean", Value: 0.05, Tolerance: 0.01, Weight: 2},
	}
	report := Evaluate(flatSeries(5, 0.045), targets, 0)

	require.Len(t, report.Results, 1)
	r := report.Results[0]
	assert.InDelta(t, 0.045, r.Simulated, 1e-9)
	assert.InDelta(t, -0.1, r.Deviation, 1e-9)
	assert.True(t, r.Passed)

	// Out of tolerance.
	report = Evaluate(flatSeries(5, 0.08), targets, 0)
	r = report.Results[0]
	assert.InDelta(t, 0.6, r.Deviation, 1e-9)
	assert.False(t, r.Passed)
}

func TestEvaluateUnknownStatFails(t *testing.T) {
	targets := []Target{
		{Name: "velocity_of_money", Value: 1.5, Tolerance: 0.5, Weight: 1},
	}
	report := Evaluate(flatSeries(5, 0.05), targets, 0)

	require.Len(t, report.Results, 1)
	r := report.Results[0]
	assert.True(t, math.IsNaN(r.Simulated))
	assert.True(t, math.IsNaN(r.Deviation))
	assert.False(t, r.Passed)
}

func TestEvaluateZeroValuedTarget(t *testing.T) {
	// A zero target makes the relative deviation undefined, so the target
	// can never pass.
	targets := []Target{
		{Name: "unemployment_mean", Value: 0, Tolerance: 0.01, Weight: 1},
	}
	report := Evaluate(flatSeries(5, 0.0), targets, 0)

	r := report.Results[0]
	assert.True(t, math.IsNaN(r.Deviation))
	assert.False(t, r.Passed)
}

func TestOverallScoreWeighting(t *testing.T) {
	report := &Report{Results: []Result{
		{Deviation: 0.1, Weight: 2},
		{Deviation: -0.2, Weight: 1},
		{Deviation: math.NaN(), Weight: 1},
	}}

	// wss = 2*0.01 + 1*0.04 = 0.06 over total weight 4.
	assert.InDelta(t, math.Sqrt(0.015), report.OverallScore(), 1e-9)
}

func TestOverallScoreEdgeCases(t *testing.T) {
	empty := &Report{}
	assert.True(t, math.IsInf(empty.OverallScore(), 1))

	zeroWeight := &Report{Results: []Result{{Deviation: 0.5, Weight: 0}}}
	assert.True(t, math.IsInf(zeroWeight.OverallScore(), 1))

	allNaN := &Report{Results: []Result{
		{Deviation: math.NaN(), Weight: 1},
		{Deviation: math.NaN(), Weight: 2},
	}}
	assert.Equal(t, 0.0, allNaN.OverallScore())
}

func TestReportCounts(t *testing.T) {
	report := &Report{Results: []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false},
		{Name: "c", Passed: true},
	}}
	assert.Equal(t, 2, report.NPassed())
	assert.Equal(t, 3, report.NTotal())
}

func TestSummaryFormat(t *testing.T) {
	report := &Report{Results: []Result{
		{Name: "unemployment_mean", Simulated: 0.045, Target: 0.045, Deviation: 0, Passed: true, Weight: 2},
		{Name: "wage_share", Simulated: 0.70, Target: 0.55, Deviation: 0.2727, Passed: false, Weight: 1},
		{Name: "gdp_growth_mean", Simulated: math.NaN(), Target: 0.005, Deviation: math.NaN(), Passed: false, Weight: 2},
	}}

	summary := report.Summary()
	assert.Contains(t, summary, "1/3 targets within tolerance")
	assert.Contains(t, summary, "Overall score (WRMS deviation):")
	assert.Contains(t, summary, "[PASS]  unemployment_mean")
	assert.Contains(t, summary, "[FAIL]  wage_share")
	assert.Contains(t, summary, "dev=+27.3%")
	assert.Contains(t, summary, "dev=  N/A")
}
