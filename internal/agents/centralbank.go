package agents

import "math"

// CentralBank sets the policy rate with a smoothed Taylor rule. Observations
// arrive at the end of a period and feed the next period's rate.
type CentralBank struct {
	PolicyRate       float64 `json:"policy_rate"`
	InflationTarget  float64 `json:"inflation_target"`
	CurrentInflation float64 `json:"current_inflation"`
	OutputGap        float64 `json:"output_gap"`
	PreviousRate     float64 `json:"previous_rate"`
}

// NewCentralBank starts with the policy rate at the inflation target and
// inflation observed on target, so the rule is at rest until data arrives.
func NewCentralBank(inflationTarget float64) CentralBank {
	return CentralBank{
		PolicyRate:       inflationTarget,
		InflationTarget:  inflationTarget,
		CurrentInflation: inflationTarget,
		PreviousRate:     inflationTarget,
	}
}

// Step applies the Taylor rule: the target rate responds to the inflation
// gap and the output gap, smoothing pulls toward the previous rate, and the
// result is floored at the lower bound.
func (cb *CentralBank) Step(inflationCoef, outputGapCoef, smoothing, lowerBound float64) {
	targetRate := cb.InflationTarget +
		inflationCoef*(cb.CurrentInflation-cb.InflationTarget) +
		outputGapCoef*cb.OutputGap

	smoothed := smoothing*cb.PreviousRate + (1-smoothing)*targetRate
	cb.PreviousRate = cb.PolicyRate
	cb.PolicyRate = math.Max(smoothed, lowerBound)
}

// UpdateObservations stores the period's inflation and output gap for the
// next rate decision.
func (cb *CentralBank) UpdateObservations(inflation, outputGap float64) {
	cb.CurrentInflation = inflation
	cb.OutputGap = outputGap
}
