// Package agents holds the per-entity data and behavior rules of the model:
// firms, households, banks, the central bank and the government. All state
// lives in plain structs owned by the engine's economy; market code addresses
// entities by slice index.
package agents

import "math"

// eps floors divisors in the behavioral formulas.
const eps = 1e-9

// Firm is a producing company.
type Firm struct {
	Sector    string  `json:"sector"`
	Employees int     `json:"employees"`
	WageBill  float64 `json:"wage_bill"`
	Turnover  float64 `json:"turnover"`
	Capital   float64 `json:"capital"`
	Cash      float64 `json:"cash"`
	Debt      float64 `json:"debt"`
	Equity    float64 `json:"equity"`

	// Derived state, mutated by the step phases and the markets.
	Price             float64 `json:"price"`
	Output            float64 `json:"output"`
	Inventory         float64 `json:"inventory"`
	Profit            float64 `json:"profit"`
	Markup            float64 `json:"markup"`
	Vacancies         int     `json:"vacancies"`
	WageRate          float64 `json:"wage_rate"`
	DesiredProduction float64 `json:"desired_production"`
	Bankrupt          bool    `json:"bankrupt"`
}

// NewFirm builds a firm from its sampled balance sheet. Price starts at 1,
// so initial output and expected sales both equal turnover.
func NewFirm(sector string, employees int, wageRate, turnover, capital, cash, markup float64) Firm {
	return Firm{
		Sector:            sector,
		Employees:         employees,
		WageBill:          float64(employees) * wageRate,
		Turnover:          turnover,
		Capital:           capital,
		Cash:              cash,
		Equity:            capital + cash,
		Price:             1.0,
		Output:            turnover,
		Markup:            markup,
		WageRate:          wageRate,
		DesiredProduction: turnover,
	}
}

// Step runs one period of firm-local behavior. Bankrupt firms are inert.
func (f *Firm) Step(inventoryTargetRatio, capacityUtilizationTarget float64) {
	if f.Bankrupt {
		return
	}
	f.PlanProduction(inventoryTargetRatio)
	f.SetPrice()
	f.DetermineLaborDemand()
	f.Produce(capacityUtilizationTarget)
	f.UpdateFinancials(capacityUtilizationTarget)
}

// PlanProduction targets expected unit sales plus an inventory buffer, net
// of stock already held.
func (f *Firm) PlanProduction(inventoryTargetRatio float64) {
	expectedSales := f.Turnover / math.Max(f.Price, eps)
	desired := expectedSales + inventoryTargetRatio*expectedSales - f.Inventory
	f.DesiredProduction = math.Max(desired, 0)
}

// SetPrice marks up unit labor cost. A firm with no output keeps its price.
func (f *Firm) SetPrice() {
	if f.Output > 0 {
		unitCost := f.WageBill / math.Max(f.Output, eps)
		f.Price = unitCost * (1 + f.Markup)
	}
}

// DetermineLaborDemand posts vacancies for the gap between desired and
// current employees at the firm's realized productivity.
func (f *Firm) DetermineLaborDemand() {
	productivity := 1.0
	if f.Employees > 0 {
		productivity = f.Output / float64(f.Employees)
	}
	desired := int(f.DesiredProduction / math.Max(productivity, eps))
	f.Vacancies = max(desired-f.Employees, 0)
}

// Produce is bounded by desired production, labor capacity and the
// capital capacity at the target utilization rate.
func (f *Firm) Produce(capacityUtilizationTarget float64) {
	productivity := 1.0
	if f.Employees > 0 {
		productivity = f.Output / math.Max(float64(f.Employees), 1)
	}
	laborOutput := float64(f.Employees) * productivity
	capacity := f.Capital * capacityUtilizationTarget
	f.Output = math.Min(f.DesiredProduction, math.Min(laborOutput, capacity))
	f.Inventory += f.Output
}

// UpdateFinancials sells from inventory against last period's revenue as a
// demand proxy, books profit into cash and equity, and flags bankruptcy
// when equity falls far enough below zero relative to capital.
func (f *Firm) UpdateFinancials(capacityUtilizationTarget float64) {
	salesQuantity := math.Min(f.Inventory, f.Turnover/math.Max(f.Price, eps))
	revenue := salesQuantity * f.Price
	f.Inventory = math.Max(f.Inventory-salesQuantity, 0)
	f.Turnover = revenue
	f.WageBill = float64(f.Employees) * f.WageRate
	f.Profit = revenue - f.WageBill
	f.Cash += f.Profit
	f.Equity += f.Profit

	if f.Equity < 0 && f.Capital > 0 {
		if f.Equity/f.Capital < -capacityUtilizationTarget {
			f.Bankrupt = true
		}
	}
}

// AdaptMarkup moves the markup with excess demand. It rises freely and
// falls to a floor of 0.01.
func (f *Firm) AdaptMarkup(excessDemand, speed float64) {
	if excessDemand > 0 {
		f.Markup += speed * excessDemand
	} else {
		f.Markup = math.Max(f.Markup+speed*excessDemand, 0.01)
	}
}

// Hire adds workers at the negotiated wage, which becomes the wage rate for
// the whole workforce.
func (f *Firm) Hire(count int, wage float64) {
	f.Employees += count
	f.WageRate = wage
	f.WageBill = float64(f.Employees) * f.WageRate
	f.Vacancies = max(f.Vacancies-count, 0)
}

// Fire removes workers, never below zero.
func (f *Firm) Fire(count int) {
	f.Employees = max(f.Employees-count, 0)
	f.WageBill = float64(f.Employees) * f.WageRate
}
