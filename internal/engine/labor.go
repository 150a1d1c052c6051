package engine

// LaborOutcome aggregates one period of labor market clearing.
type LaborOutcome struct {
	TotalEmployed    int     `json:"total_employed"`
	TotalUnemployed  int     `json:"total_unemployed"`
	UnemploymentRate float64 `json:"unemployment_rate"`
	AverageWage      float64 `json:"average_wage"`
	TotalMatches     int     `json:"total_matches"`
	TotalSeparations int     `json:"total_separations"`
}

// clearLaborMarket runs separations, matching and benefit transfers.
//
// The draw discipline is fixed: one uniform draw per employed household for
// separation (index order), then one draw per household for search entry
// (every index, employed included), then one draw per matching attempt.
// Reordering any of these changes the whole run.
func (e *Economy) clearLaborMarket() {
	cfg := e.cfg

	separations := 0
	for i := range e.Households {
		h := &e.Households[i]
		if !h.Employed {
			continue
		}
		if e.rng.Float() < cfg.SeparationRate {
			if h.Employer >= 0 {
				e.Firms[h.Employer].Fire(1)
			}
			h.BecomeUnemployed()
			separations++
		}
	}

	// The pre-matching average anchors negotiated wages below.
	currentAverageWage := e.averageWage()

	var hiring []int
	for i := range e.Firms {
		if e.Firms[i].Vacancies > 0 && !e.Firms[i].Bankrupt {
			hiring = append(hiring, i)
		}
	}
	var seekers []int
	for i := range e.Households {
		draw := e.rng.Float()
		if e.Households[i].IsSearching(draw, cfg.JobSearchIntensity) {
			seekers = append(seekers, i)
		}
	}

	// Each attempt consumes one seeker whether or not it succeeds, so a
	// failed draw moves on to the next applicant.
	matches := 0
	next := 0
	for _, fi := range hiring {
		for e.Firms[fi].Vacancies > 0 && next < len(seekers) {
			if e.rng.Float() > cfg.MatchingEfficiency {
				next++
				continue
			}
			hh := seekers[next]
			offered := e.Firms[fi].WageRate
			wage := offered
			if currentAverageWage > 0 {
				wage = cfg.WageStickiness*currentAverageWage + (1-cfg.WageStickiness)*offered
			}
			e.Firms[fi].Hire(1, wage)
			e.Households[hh].BecomeEmployed(fi, wage)
			matches++
			next++
		}
	}

	employed := 0
	for i := range e.Households {
		if e.Households[i].Employed {
			employed++
		}
	}
	unemployed := len(e.Households) - employed
	rate := 0.0
	if len(e.Households) > 0 {
		rate = float64(unemployed) / float64(len(e.Households))
	}

	averageWage := e.averageWage()

	// Benefits are funded at the replacement ratio of the post-matching
	// average wage and split evenly across the unemployed.
	if unemployed > 0 && averageWage > 0 {
		total := e.Government.PayUnemploymentBenefit(averageWage, unemployed, cfg.UnemploymentBenefitRatio)
		perHousehold := total / float64(unemployed)
		for i := range e.Households {
			if !e.Households[i].Employed {
				e.Households[i].TransferIncome = perHousehold
			}
		}
	}

	e.LaborLast = LaborOutcome{
		TotalEmployed:    employed,
		TotalUnemployed:  unemployed,
		UnemploymentRate: rate,
		AverageWage:      averageWage,
		TotalMatches:     matches,
		TotalSeparations: separations,
	}
}

// averageWage is the mean wage over employed households with a positive
// wage, zero when there are none.
func (e *Economy) averageWage() float64 {
	sum := 0.0
	count := 0
	for i := range e.Households {
		h := &e.Households[i]
		if h.Employed && h.Wage > 0 {
			sum += h.Wage
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
