package engine

import "log/slog"

// PeriodRecord is the aggregate snapshot appended after each completed
// period. Periods are 1-indexed; bankruptcy and employment counts are
// levels, not per-period changes.
type PeriodRecord struct {
	Period            int     `json:"period" db:"period"`
	GDP               float64 `json:"gdp" db:"gdp"`
	Inflation         float64 `json:"inflation" db:"inflation"`
	UnemploymentRate  float64 `json:"unemployment_rate" db:"unemployment_rate"`
	AverageWage       float64 `json:"average_wage" db:"average_wage"`
	PolicyRate        float64 `json:"policy_rate" db:"policy_rate"`
	GovernmentDeficit float64 `json:"government_deficit" db:"government_deficit"`
	GovernmentDebt    float64 `json:"government_debt" db:"government_debt"`
	TotalLending      float64 `json:"total_lending" db:"total_lending"`
	FirmBankruptcies  int     `json:"firm_bankruptcies" db:"firm_bankruptcies"`
	TotalEmployment   int     `json:"total_employment" db:"total_employment"`
}

func (e *Economy) recordPeriod() {
	e.Period++

	bankruptcies := 0
	for i := range e.Firms {
		if e.Firms[i].Bankrupt {
			bankruptcies++
		}
	}

	rec := PeriodRecord{
		Period:            e.Period,
		GDP:               e.Government.GDPEstimate,
		Inflation:         e.GoodsLast.Inflation,
		UnemploymentRate:  e.LaborLast.UnemploymentRate,
		AverageWage:       e.LaborLast.AverageWage,
		PolicyRate:        e.CentralBank.PolicyRate,
		GovernmentDeficit: e.Government.Deficit,
		GovernmentDebt:    e.Government.Debt,
		TotalLending:      e.CreditLast.TotalLending,
		FirmBankruptcies:  bankruptcies,
		TotalEmployment:   e.LaborLast.TotalEmployed,
	}

	e.Records = append(e.Records, rec)

	slog.Debug("period complete",
		"period", rec.Period,
		"gdp", rec.GDP,
		"inflation", rec.Inflation,
		"unemployment", rec.UnemploymentRate,
		"policy_rate", rec.PolicyRate,
		"lending", rec.TotalLending,
		"bankruptcies", rec.FirmBankruptcies,
	)
}
