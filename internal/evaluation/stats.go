package evaluation

import (
	"math"

	"github.com/jstammers/companies-house-abm/internal/engine"
)

// ComputeStats aggregates a record series into the summary statistics the
// calibration targets are expressed in. The first warmUp periods are
// discarded as initial transients. Statistics that cannot be computed from
// the series (no positive-GDP periods, for example) come back as NaN.
//
// Keys: gdp_growth_mean, gdp_growth_std, unemployment_mean, inflation_mean,
// inflation_std, government_debt_gdp, wage_share.
func ComputeStats(records []engine.PeriodRecord, warmUp int) map[string]float64 {
	if warmUp < 0 {
		warmUp = 0
	}
	if warmUp > len(records) {
		warmUp = len(records)
	}
	records = records[warmUp:]
	n := len(records)
	if n == 0 {
		return nil
	}

	// Growth rates are only defined across periods with positive base GDP.
	var growths []float64
	for i := 1; i < n; i++ {
		prev := records[i-1].GDP
		if prev > 0 {
			growths = append(growths, (records[i].GDP-prev)/prev)
		}
	}
	growthMean := math.NaN()
	if len(growths) > 0 {
		growthMean = mean(growths)
	}
	growthStd := 0.0
	if len(growths) > 1 {
		growthStd = std(growths, growthMean)
	}

	inflations := make([]float64, n)
	for i, r := range records {
		inflations[i] = r.Inflation
	}
	inflationMean := mean(inflations)
	inflationStd := 0.0
	if n > 1 {
		inflationStd = std(inflations, inflationMean)
	}

	unemploymentSum := 0.0
	for _, r := range records {
		unemploymentSum += r.UnemploymentRate
	}

	var debtRatios []float64
	for _, r := range records {
		if r.GDP > 0 {
			debtRatios = append(debtRatios, r.GovernmentDebt/r.GDP)
		}
	}
	debtGDP := math.NaN()
	if len(debtRatios) > 0 {
		debtGDP = mean(debtRatios)
	}

	var wageShares []float64
	for _, r := range records {
		if r.GDP > 0 && r.TotalEmployment > 0 {
			wageShares = append(wageShares, r.AverageWage*float64(r.TotalEmployment)/r.GDP)
		}
	}
	wageShare := math.NaN()
	if len(wageShares) > 0 {
		wageShare = mean(wageShares)
	}

	return map[string]float64{
		"gdp_growth_mean":     growthMean,
		"gdp_growth_std":      growthStd,
		"unemployment_mean":   unemploymentSum / float64(n),
		"inflation_mean":      inflationMean,
		"inflation_std":       inflationStd,
		"government_debt_gdp": debtGDP,
		"wage_share":          wageShare,
	}
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// std is the population standard deviation around a precomputed mean.
func std(xs []float64, m float64) float64 {
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}
