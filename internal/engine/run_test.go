package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstammers/companies-house-abm/internal/config"
)

func TestRunDeterminism(t *testing.T) {
	opts := DefaultOptions()
	opts.Periods = 20

	a := RunSimulation(opts)
	b := RunSimulation(opts)
	require.Equal(t, a, b, "identical parameters must replay the identical series")

	opts.Seed = 43
	c := RunSimulation(opts)
	assert.NotEqual(t, a, c, "a different seed must change the series")
}

func TestRunRecordShape(t *testing.T) {
	e := New(config.Default(), 50, 250, 5, 42)
	records := e.Run(30)

	require.Len(t, records, 30)
	for i, r := range records {
		assert.Equal(t, i+1, r.Period, "periods are 1-indexed and sequential")
		assert.GreaterOrEqual(t, r.UnemploymentRate, 0.0)
		assert.LessOrEqual(t, r.UnemploymentRate, 1.0)
		assert.GreaterOrEqual(t, r.PolicyRate, e.Config().RateLowerBound)
		assert.GreaterOrEqual(t, r.TotalLending, 0.0)
		assert.GreaterOrEqual(t, r.AverageWage, 0.0)
		assert.GreaterOrEqual(t, r.TotalEmployment, 0)
		assert.LessOrEqual(t, r.TotalEmployment, 250)
	}
}

func TestRunStateStaysNonNegative(t *testing.T) {
	e := New(config.Default(), 40, 200, 4, 11)

	for p := 0; p < 25; p++ {
		e.Step()
		for i := range e.Firms {
			f := &e.Firms[i]
			require.GreaterOrEqual(t, f.Inventory, 0.0, "firm %d inventory, period %d", i, p)
			require.GreaterOrEqual(t, f.Employees, 0)
			require.GreaterOrEqual(t, f.Vacancies, 0)
			require.GreaterOrEqual(t, f.Debt, 0.0)
		}
		for i := range e.Banks {
			require.GreaterOrEqual(t, e.Banks[i].Loans, 0.0, "bank %d loans, period %d", i, p)
			require.GreaterOrEqual(t, e.Banks[i].NonPerformingLoans, 0.0)
		}
		require.GreaterOrEqual(t, e.Government.Expenditure, 0.0)
		require.GreaterOrEqual(t, e.Government.TransferSpending, 0.0)
	}
}

func TestRunLendingMatchesDebt(t *testing.T) {
	e := New(config.Default(), 40, 200, 4, 13)

	for p := 0; p < 25; p++ {
		e.Step()

		bankLoans := 0.0
		for i := range e.Banks {
			bankLoans += e.Banks[i].Loans
		}
		firmDebt := 0.0
		for i := range e.Firms {
			firmDebt += e.Firms[i].Debt
		}
		// Every loan books the same amount on both sides and nothing
		// amortizes, so the stocks track exactly up to summation order.
		require.InDelta(t, firmDebt, bankLoans, 1e-6*math.Max(1, firmDebt), "period %d", p)
	}
}

func TestRunBankruptcyIsPermanent(t *testing.T) {
	e := New(config.Default(), 40, 200, 4, 17)

	bankrupt := make(map[int]bool)
	prevCount := 0
	for p := 0; p < 40; p++ {
		e.Step()

		for i := range e.Firms {
			if bankrupt[i] {
				require.True(t, e.Firms[i].Bankrupt, "firm %d recovered at period %d", i, p)
			}
			if e.Firms[i].Bankrupt {
				bankrupt[i] = true
			}
		}

		rec := e.Records[len(e.Records)-1]
		require.GreaterOrEqual(t, rec.FirmBankruptcies, prevCount, "bankruptcy count declined")
		prevCount = rec.FirmBankruptcies
	}
}

func TestRunZeroBanks(t *testing.T) {
	opts := DefaultOptions()
	opts.Banks = 0
	opts.Periods = 15

	records := RunSimulation(opts)
	require.Len(t, records, 15)
	for _, r := range records {
		assert.Zero(t, r.TotalLending, "no banks means no credit")
	}
}

func TestRunEmploymentConservation(t *testing.T) {
	e := New(config.Default(), 30, 150, 3, 19)

	for p := 0; p < 20; p++ {
		e.Step()
		require.Equal(t, 150, e.LaborLast.TotalEmployed+e.LaborLast.TotalUnemployed, "period %d", p)
	}
}

func TestStepAdvancesPeriod(t *testing.T) {
	e := New(config.Default(), 10, 50, 2, 23)
	require.Zero(t, e.Period)

	e.Step()
	assert.Equal(t, 1, e.Period)
	require.Len(t, e.Records, 1)
	assert.Equal(t, e.Government.GDPEstimate, e.Records[0].GDP)
	assert.Equal(t, e.CentralBank.PolicyRate, e.Records[0].PolicyRate)

	e.Step()
	assert.Equal(t, 2, e.Period)
	assert.Len(t, e.Records, 2)
}

func TestRunSimulationDefaultConfig(t *testing.T) {
	opts := Options{Firms: 5, Households: 20, Banks: 1, Periods: 3, Seed: 1}
	records := RunSimulation(opts)
	require.Len(t, records, 3)
}
