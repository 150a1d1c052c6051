package engine

// Step advances the economy by one period. The phase order is fixed and is
// part of the reproducibility contract:
//
//	government begin → central bank rate → bank rate update → credit market
//	→ firm steps → labor market → household steps → GDP estimate
//	→ government spending → goods market → taxes → fiscal rule
//	→ government end → central bank observes → bank steps → record
func (e *Economy) Step() {
	cfg := e.cfg

	e.Government.BeginPeriod()
	e.CentralBank.Step(cfg.InflationCoefficient, cfg.OutputGapCoefficient, cfg.InterestRateSmoothing, cfg.RateLowerBound)
	for i := range e.Banks {
		e.Banks[i].SetLendingRate(e.CentralBank.PolicyRate, cfg.BaseInterestMarkup, cfg.RiskPremiumSensitivity)
	}
	e.clearCreditMarket()

	for i := range e.Firms {
		e.Firms[i].Step(cfg.InventoryTargetRatio, cfg.CapacityUtilizationTarget)
	}
	e.clearLaborMarket()
	for i := range e.Households {
		e.Households[i].Step(cfg.ConsumptionSmoothing)
	}

	// GDP is estimated from firm-reported turnover before the goods market
	// replaces turnover with allocated sales. Production planning next
	// period sees the market value; this period's record sees the estimate.
	gdp := 0.0
	for i := range e.Firms {
		if !e.Firms[i].Bankrupt {
			gdp += e.Firms[i].Turnover
		}
	}
	e.Government.GDPEstimate = gdp
	e.Government.CalculateSpending(cfg.SpendingGDPRatio)

	e.clearGoodsMarket()
	e.collectTaxes()

	e.Government.ApplyFiscalRule(cfg.DeficitTarget, cfg.DeficitAdjustmentSpeed)
	e.Government.EndPeriod()

	// The output gap is not measured in this model; the rule runs on the
	// inflation term alone.
	e.CentralBank.UpdateObservations(e.GoodsLast.Inflation, 0)

	for i := range e.Banks {
		e.Banks[i].Step(e.CentralBank.PolicyRate, cfg.BaseInterestMarkup, cfg.RiskPremiumSensitivity)
	}

	e.recordPeriod()
}

// collectTaxes books corporate tax from profitable solvent firms and income
// tax from earning households. Firms pay from cash, households from wealth.
func (e *Economy) collectTaxes() {
	for i := range e.Firms {
		f := &e.Firms[i]
		if f.Profit > 0 && !f.Bankrupt {
			f.Cash -= e.Government.CollectCorporateTax(f.Profit, e.cfg.TaxRateCorporate)
		}
	}
	for i := range e.Households {
		h := &e.Households[i]
		if h.Income > 0 {
			h.Wealth -= e.Government.CollectIncomeTax(h.Income, e.cfg.TaxRateIncome)
		}
	}
}
