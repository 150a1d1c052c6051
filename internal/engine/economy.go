// Package engine owns the simulation state and the period loop. The Economy
// holds every agent in dense slices; the step phases and the three market
// clearings mutate them in place, addressed by index. One seeded entropy
// stream drives all stochastic decisions, so a run is fully determined by
// its population sizes, period count, seed and config.
package engine

import (
	"math"

	"github.com/jstammers/companies-house-abm/internal/agents"
	"github.com/jstammers/companies-house-abm/internal/config"
	"github.com/jstammers/companies-house-abm/internal/entropy"
)

// Initial balance-sheet distributions. Means are in level space, sigmas in
// log space; wages and incomes are quarterly.
const (
	initialWageMean      = 35000.0 / 4.0
	initialWageSigma     = 0.3
	initialTurnoverMean  = 100000.0
	initialTurnoverSigma = 1.0
	initialCapitalMean   = 50000.0
	initialCapitalSigma  = 1.0
	initialCashMean      = 10000.0
	initialCashSigma     = 0.8
	initialBankCapital   = 1e9
	initialBankSigma     = 0.5
	bankReserveRatio     = 0.1
	maxInitialEmployees  = 50
)

// Economy is the complete simulation state for one run.
type Economy struct {
	Firms      []agents.Firm
	Households []agents.Household
	Banks      []agents.Bank

	CentralBank agents.CentralBank
	Government  agents.Government

	// Last market outcomes, overwritten every period.
	GoodsAveragePrice float64
	GoodsLast         GoodsOutcome
	LaborLast         LaborOutcome
	CreditLast        CreditOutcome

	// One record per completed period.
	Records []PeriodRecord
	Period  int

	cfg *config.Config
	rng *entropy.Stream
}

// New builds an economy with sampled populations and the initial employment
// assignment. The sampling order is fixed: all firms, then all households,
// then all banks, each drawing from the one seeded stream.
func New(cfg *config.Config, nFirms, nHouseholds, nBanks int, seed uint64) *Economy {
	e := &Economy{
		CentralBank:       agents.NewCentralBank(cfg.InflationTarget),
		GoodsAveragePrice: 1.0,
		cfg:               cfg,
		rng:               entropy.New(seed),
	}
	e.createFirms(nFirms)
	e.createHouseholds(nHouseholds)
	e.createBanks(nBanks)
	e.assignInitialJobs()
	return e
}

// Config returns the behavioral parameters this economy runs with.
func (e *Economy) Config() *config.Config {
	return e.cfg
}

func (e *Economy) createFirms(n int) {
	e.Firms = make([]agents.Firm, 0, n)
	for i := 0; i < n; i++ {
		sector := e.cfg.Sectors[i%len(e.cfg.Sectors)]
		employees := e.rng.IntBetween(1, maxInitialEmployees)
		wageRate := e.rng.LogNormal(math.Log(initialWageMean), initialWageSigma)
		turnover := e.rng.LogNormal(math.Log(initialTurnoverMean), initialTurnoverSigma)
		capital := e.rng.LogNormal(math.Log(initialCapitalMean), initialCapitalSigma)
		cash := e.rng.LogNormal(math.Log(initialCashMean), initialCashSigma)
		e.Firms = append(e.Firms, agents.NewFirm(sector, employees, wageRate, turnover, capital, cash, e.cfg.PriceMarkup))
	}
}

func (e *Economy) createHouseholds(n int) {
	e.Households = make([]agents.Household, 0, n)
	sigma := e.cfg.IncomeStd / e.cfg.IncomeMean
	for i := 0; i < n; i++ {
		income := e.rng.LogNormal(math.Log(e.cfg.IncomeMean), sigma) / 4 // quarterly
		wealth := math.Max((e.rng.Pareto(1, e.cfg.WealthShape)-1)*income, 0)
		mpc := math.Min(math.Max(e.rng.Normal(e.cfg.MPCMean, e.cfg.MPCStd), 0.1), 0.99)
		e.Households = append(e.Households, agents.NewHousehold(income, wealth, mpc))
	}
}

func (e *Economy) createBanks(n int) {
	e.Banks = make([]agents.Bank, 0, n)
	for i := 0; i < n; i++ {
		capital := e.rng.LogNormal(math.Log(initialBankCapital), initialBankSigma)
		e.Banks = append(e.Banks, agents.NewBank(capital, bankReserveRatio*capital))
	}
}

// assignInitialJobs fills firms with workers in index order until the
// household pool runs out. Firms keep their sampled headcount even when
// fewer households are available to cover it.
func (e *Economy) assignInitialJobs() {
	hh := 0
	for fi := range e.Firms {
		for w := 0; w < e.Firms[fi].Employees; w++ {
			if hh >= len(e.Households) {
				return
			}
			e.Households[hh].BecomeEmployed(fi, e.Firms[fi].WageRate)
			hh++
		}
	}
}
