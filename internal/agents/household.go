package agents

import "math"

// wealthSpendRate is the share of wealth a household is willing to consume
// per period before smoothing.
const wealthSpendRate = 0.04

// Household is a consuming, job-seeking agent. Employer is a firm index,
// -1 when unemployed.
type Household struct {
	Income         float64 `json:"income"`
	Wealth         float64 `json:"wealth"`
	Consumption    float64 `json:"consumption"`
	Savings        float64 `json:"savings"`
	MPC            float64 `json:"mpc"`
	Employed       bool    `json:"employed"`
	Employer       int     `json:"employer"`
	Wage           float64 `json:"wage"`
	TransferIncome float64 `json:"transfer_income"`
}

func NewHousehold(income, wealth, mpc float64) Household {
	return Household{
		Income:   income,
		Wealth:   wealth,
		MPC:      mpc,
		Employer: -1,
	}
}

// Step runs one period: income, then consumption, then saving. Transfer
// income is consumed once and reset.
func (h *Household) Step(consumptionSmoothing float64) {
	h.receiveIncome()
	h.consume(consumptionSmoothing)
	h.save()
	h.TransferIncome = 0
}

func (h *Household) receiveIncome() {
	wage := 0.0
	if h.Employed {
		wage = h.Wage
	}
	h.Income = wage + h.TransferIncome
}

// consume spends a fixed propensity out of income plus a smoothed share of
// wealth, bounded by total available resources.
func (h *Household) consume(smoothing float64) {
	desired := h.MPC*h.Income + (1-smoothing)*wealthSpendRate*h.Wealth
	h.Consumption = math.Min(math.Max(desired, 0), h.Income+h.Wealth)
}

func (h *Household) save() {
	h.Savings = h.Income - h.Consumption
	h.Wealth += h.Savings
}

// BecomeEmployed is called by the labor market when a match forms.
func (h *Household) BecomeEmployed(employer int, wage float64) {
	h.Employed = true
	h.Employer = employer
	h.Wage = wage
}

// BecomeUnemployed is called by the labor market on separation.
func (h *Household) BecomeUnemployed() {
	h.Employed = false
	h.Employer = -1
	h.Wage = 0
}

// IsSearching reports whether the household enters the applicant pool given
// a uniform draw. Employed households never search.
func (h *Household) IsSearching(draw, searchIntensity float64) bool {
	if h.Employed {
		return false
	}
	return draw < searchIntensity
}
