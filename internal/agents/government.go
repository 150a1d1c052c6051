package agents

import "math"

// Government collects taxes, spends against estimated GDP and accumulates
// debt. Flow fields reset every period; deficit and debt carry over.
type Government struct {
	TaxRevenue       float64 `json:"tax_revenue"`
	Expenditure      float64 `json:"expenditure"`
	TransferSpending float64 `json:"transfer_spending"`
	Deficit          float64 `json:"deficit"`
	Debt             float64 `json:"debt"`
	GDPEstimate      float64 `json:"gdp_estimate"`
}

// BeginPeriod resets the flow aggregates.
func (g *Government) BeginPeriod() {
	g.TaxRevenue = 0
	g.Expenditure = 0
	g.TransferSpending = 0
}

// CollectCorporateTax books tax on positive profits and returns the amount.
func (g *Government) CollectCorporateTax(profit, rate float64) float64 {
	tax := math.Max(profit*rate, 0)
	g.TaxRevenue += tax
	return tax
}

// CollectIncomeTax books tax on household income and returns the amount.
func (g *Government) CollectIncomeTax(income, rate float64) float64 {
	tax := math.Max(income*rate, 0)
	g.TaxRevenue += tax
	return tax
}

// CalculateSpending sets expenditure as a share of the current GDP
// estimate, never negative.
func (g *Government) CalculateSpending(spendingGDPRatio float64) float64 {
	g.Expenditure = spendingGDPRatio * math.Max(g.GDPEstimate, 0)
	return g.Expenditure
}

// PayUnemploymentBenefit books the total transfer at the replacement ratio
// of the average wage and returns it for division among recipients.
func (g *Government) PayUnemploymentBenefit(averageWage float64, unemployed int, replacement float64) float64 {
	total := replacement * averageWage * float64(unemployed)
	g.TransferSpending += total
	return total
}

// ApplyFiscalRule adjusts expenditure toward the deficit target: spending
// falls when last period's deficit ratio exceeded the target and rises when
// it fell short. Does nothing when the GDP estimate is non-positive.
func (g *Government) ApplyFiscalRule(deficitTarget, speed float64) {
	if g.GDPEstimate <= 0 {
		return
	}
	deficitRatio := math.Abs(g.Deficit) / math.Max(g.GDPEstimate, eps)
	adjustment := speed * (deficitRatio - deficitTarget) * g.GDPEstimate
	g.Expenditure = math.Max(g.Expenditure-adjustment, 0)
}

// EndPeriod closes the books: a negative deficit (spending above revenue)
// adds to debt.
func (g *Government) EndPeriod() {
	g.Deficit = g.TaxRevenue - (g.Expenditure + g.TransferSpending)
	g.Debt -= g.Deficit
}
