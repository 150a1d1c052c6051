package engine

import "math"

// CreditOutcome aggregates one period of credit market clearing.
type CreditOutcome struct {
	TotalLending      float64 `json:"total_lending"`
	TotalApplications int     `json:"total_applications"`
	TotalApprovals    int     `json:"total_approvals"`
	TotalRejections   int     `json:"total_rejections"`
	AverageRate       float64 `json:"average_rate"`
	TotalDefaults     int     `json:"total_defaults"`
}

// clearCreditMarket books defaults from bankrupt debtors, then matches
// cash-short firms to banks round-robin. An approved loan moves cash and
// debt on the firm and loans and deposits on the bank. With rationing
// disabled every application is funded regardless of the evaluation.
func (e *Economy) clearCreditMarket() {
	if len(e.Banks) == 0 {
		e.CreditLast = CreditOutcome{}
		return
	}
	cfg := e.cfg
	var out CreditOutcome

	// Bankrupt debtors write down every lender with an open book,
	// proportional to the smaller of firm debt and bank loans.
	for i := range e.Firms {
		f := &e.Firms[i]
		if !f.Bankrupt || f.Debt <= 0 {
			continue
		}
		for b := range e.Banks {
			if e.Banks[b].Loans > 0 {
				share := math.Min(f.Debt, e.Banks[b].Loans)
				e.Banks[b].RecordDefault(share * cfg.DefaultRateBase)
				out.TotalDefaults++
			}
		}
	}

	// Applications: firms with negative cash borrow the shortfall.
	rateSum := 0.0
	rateCount := 0
	nextBank := 0
	for i := range e.Firms {
		f := &e.Firms[i]
		if f.Bankrupt || f.Cash >= 0 {
			continue
		}
		amount := -f.Cash
		out.TotalApplications++

		bank := &e.Banks[nextBank%len(e.Banks)]
		nextBank++

		approved := bank.EvaluateLoan(amount, f.Equity, f.Turnover,
			cfg.CapitalRequirement, cfg.CapitalBuffer, cfg.RiskWeight, cfg.LendingThreshold)
		if approved || !cfg.CreditRationing {
			rate := bank.ExtendLoan(amount)
			f.Cash += amount
			f.Debt += amount
			out.TotalApprovals++
			out.TotalLending += amount
			rateSum += rate
			rateCount++
		} else {
			out.TotalRejections++
		}
	}
	if rateCount > 0 {
		out.AverageRate = rateSum / float64(rateCount)
	}
	e.CreditLast = out
}
