package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstammers/companies-house-abm/internal/agents"
	"github.com/jstammers/companies-house-abm/internal/config"
)

func TestLaborMarketSeparations(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 1.0 // every employed household separates
	cfg.JobSearchIntensity = 0
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{{Employees: 2, WageRate: 100, WageBill: 200}}
	e.Households = []agents.Household{{}, {}, {}}
	e.Households[0].BecomeEmployed(0, 100)
	e.Households[1].BecomeEmployed(0, 100)

	e.clearLaborMarket()

	out := e.LaborLast
	assert.Equal(t, 2, out.TotalSeparations)
	assert.Zero(t, out.TotalEmployed)
	assert.Equal(t, 3, out.TotalUnemployed)
	assert.Equal(t, 1.0, out.UnemploymentRate)
	assert.Zero(t, e.Firms[0].Employees, "each separation fires one worker")
	assert.False(t, e.Households[0].Employed)
	assert.Zero(t, out.AverageWage, "nobody left on payroll")
}

func TestLaborMarketNoSeparationsAtZeroRate(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 0
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{{Employees: 1, WageRate: 100, WageBill: 100}}
	e.Households = []agents.Household{{}}
	e.Households[0].BecomeEmployed(0, 100)

	e.clearLaborMarket()
	assert.Zero(t, e.LaborLast.TotalSeparations)
	assert.Equal(t, 1, e.LaborLast.TotalEmployed)
	assert.InDelta(t, 100, e.LaborLast.AverageWage, 1e-9)
}

func TestLaborMarketMatching(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 1.0 // every unemployed household searches
	cfg.MatchingEfficiency = 1.0 // every attempt succeeds
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{{Vacancies: 2, WageRate: 150}}
	e.Households = []agents.Household{{}, {}, {}}

	e.clearLaborMarket()

	out := e.LaborLast
	assert.Equal(t, 2, out.TotalMatches, "hires stop at the vacancy count")
	assert.Equal(t, 2, out.TotalEmployed)
	assert.Equal(t, 1, out.TotalUnemployed)
	assert.InDelta(t, 1.0/3.0, out.UnemploymentRate, 1e-9)
	assert.Zero(t, e.Firms[0].Vacancies)
	assert.Equal(t, 2, e.Firms[0].Employees)

	// No wage anchor existed, so hires take the posted offer.
	assert.Equal(t, 150.0, e.Households[0].Wage)
	assert.Equal(t, 0, e.Households[0].Employer)
}

func TestLaborMarketWageAnchoring(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 1.0
	cfg.MatchingEfficiency = 1.0
	cfg.WageStickiness = 0.8
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{
		{Employees: 1, WageRate: 100, WageBill: 100},
		{Vacancies: 1, WageRate: 200},
	}
	e.Households = []agents.Household{{}, {}}
	e.Households[0].BecomeEmployed(0, 100)

	e.clearLaborMarket()

	// Negotiated wage: 0.8×100 (prevailing) + 0.2×200 (offer).
	require.True(t, e.Households[1].Employed)
	assert.InDelta(t, 120, e.Households[1].Wage, 1e-9)
	assert.Equal(t, 1, e.Households[1].Employer)
	assert.InDelta(t, 120, e.Firms[1].WageRate, 1e-9, "the hire resets the firm's wage rate")
}

func TestLaborMarketZeroEfficiencyMatchesNobody(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 1.0
	cfg.MatchingEfficiency = 0
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{{Vacancies: 5, WageRate: 100}}
	e.Households = []agents.Household{{}, {}, {}}

	e.clearLaborMarket()
	assert.Zero(t, e.LaborLast.TotalMatches)
	assert.Equal(t, 5, e.Firms[0].Vacancies)
}

func TestLaborMarketBankruptFirmsDoNotHire(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 1.0
	cfg.MatchingEfficiency = 1.0
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{{Vacancies: 3, WageRate: 100, Bankrupt: true}}
	e.Households = []agents.Household{{}, {}}

	e.clearLaborMarket()
	assert.Zero(t, e.LaborLast.TotalMatches)
	assert.Zero(t, e.LaborLast.TotalEmployed)
}

func TestLaborMarketBenefits(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 0 // nobody searches, unemployment persists
	cfg.UnemploymentBenefitRatio = 0.4
	e := newTestEconomy(cfg)

	e.Firms = []agents.Firm{{Employees: 1, WageRate: 1000, WageBill: 1000}}
	e.Households = []agents.Household{{}, {}, {}}
	e.Households[0].BecomeEmployed(0, 1000)

	e.clearLaborMarket()

	// Two unemployed split 0.4×1000×2 evenly.
	assert.InDelta(t, 400, e.Households[1].TransferIncome, 1e-9)
	assert.InDelta(t, 400, e.Households[2].TransferIncome, 1e-9)
	assert.Zero(t, e.Households[0].TransferIncome, "employed households get no benefit")
	assert.InDelta(t, 800, e.Government.TransferSpending, 1e-9)
}

func TestLaborMarketNoBenefitsWithoutWageAnchor(t *testing.T) {
	cfg := config.Default()
	cfg.SeparationRate = 0
	cfg.JobSearchIntensity = 0
	e := newTestEconomy(cfg)

	// Entirely unemployed economy: no average wage to index against.
	e.Households = []agents.Household{{}, {}}

	e.clearLaborMarket()
	assert.Zero(t, e.Government.TransferSpending)
	assert.Zero(t, e.Households[0].TransferIncome)
}

func TestLaborMarketConservation(t *testing.T) {
	cfg := config.Default()
	e := New(cfg, 20, 100, 2, 7)

	for i := 0; i < 20; i++ {
		e.clearLaborMarket()
		out := e.LaborLast
		require.Equal(t, 100, out.TotalEmployed+out.TotalUnemployed,
			"every household is employed or unemployed, period %d", i)
		require.GreaterOrEqual(t, out.UnemploymentRate, 0.0)
		require.LessOrEqual(t, out.UnemploymentRate, 1.0)
	}
}
