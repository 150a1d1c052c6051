package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstammers/companies-house-abm/internal/agents"
	"github.com/jstammers/companies-house-abm/internal/config"
	"github.com/jstammers/companies-house-abm/internal/entropy"
)

// newTestEconomy builds an empty economy for hand-wired market tests.
func newTestEconomy(cfg *config.Config) *Economy {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Economy{
		CentralBank:       agents.NewCentralBank(cfg.InflationTarget),
		GoodsAveragePrice: 1.0,
		cfg:               cfg,
		rng:               entropy.New(1),
	}
}

func TestNewPopulations(t *testing.T) {
	cfg := config.Default()
	e := New(cfg, 20, 100, 3, 42)

	require.Len(t, e.Firms, 20)
	require.Len(t, e.Households, 100)
	require.Len(t, e.Banks, 3)

	for i, f := range e.Firms {
		assert.Equal(t, cfg.Sectors[i%len(cfg.Sectors)], f.Sector, "sectors cycle in order")
		assert.GreaterOrEqual(t, f.Employees, 1)
		assert.Less(t, f.Employees, 50)
		assert.Greater(t, f.WageRate, 0.0)
		assert.Greater(t, f.Turnover, 0.0)
		assert.Equal(t, 1.0, f.Price)
		assert.InDelta(t, f.Capital+f.Cash, f.Equity, 1e-9)
		assert.Zero(t, f.Debt)
	}

	for _, h := range e.Households {
		assert.Greater(t, h.Income, 0.0)
		assert.GreaterOrEqual(t, h.Wealth, 0.0)
		assert.GreaterOrEqual(t, h.MPC, 0.1)
		assert.LessOrEqual(t, h.MPC, 0.99)
	}

	for _, b := range e.Banks {
		assert.Greater(t, b.Capital, 0.0)
		assert.InDelta(t, 0.1*b.Capital, b.Reserves, 1e-6)
		assert.Equal(t, 0.05, b.InterestRate)
	}
}

func TestInitialEmploymentFillsFirmsInOrder(t *testing.T) {
	cfg := config.Default()
	e := New(cfg, 5, 1000, 1, 42)

	// With plenty of households every firm's headcount is covered, in
	// sequence, at the firm's own wage rate.
	hh := 0
	for fi := range e.Firms {
		for w := 0; w < e.Firms[fi].Employees; w++ {
			h := e.Households[hh]
			assert.True(t, h.Employed)
			assert.Equal(t, fi, h.Employer)
			assert.Equal(t, e.Firms[fi].WageRate, h.Wage)
			hh++
		}
	}
	// The rest start unemployed.
	for ; hh < len(e.Households); hh++ {
		assert.False(t, e.Households[hh].Employed)
	}
}

func TestInitialEmploymentStopsAtPoolExhaustion(t *testing.T) {
	cfg := config.Default()
	e := New(cfg, 50, 10, 1, 42)

	employed := 0
	for _, h := range e.Households {
		if h.Employed {
			employed++
		}
	}
	assert.Equal(t, 10, employed, "every household finds a job when firms outnumber them")
}

func TestNewIsDeterministic(t *testing.T) {
	cfg := config.Default()
	a := New(cfg, 30, 200, 5, 99)
	b := New(cfg, 30, 200, 5, 99)

	require.Equal(t, a.Firms, b.Firms)
	require.Equal(t, a.Households, b.Households)
	require.Equal(t, a.Banks, b.Banks)

	c := New(cfg, 30, 200, 5, 100)
	assert.NotEqual(t, a.Firms, c.Firms, "different seeds sample different firms")
}
