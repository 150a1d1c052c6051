package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentralBankAtRest(t *testing.T) {
	cb := NewCentralBank(0.02)
	cb.Step(1.5, 0.5, 0.8, 0.001)

	// On-target inflation and zero gap keep the rate at target.
	assert.InDelta(t, 0.02, cb.PolicyRate, 1e-9)
	assert.InDelta(t, 0.02, cb.PreviousRate, 1e-9)
}

func TestTaylorRuleRespondsToInflation(t *testing.T) {
	cb := NewCentralBank(0.02)
	cb.UpdateObservations(0.04, 0)
	cb.Step(1.5, 0.5, 0.8, 0.001)

	// Target rate 0.05, smoothed 0.8×0.02 + 0.2×0.05.
	assert.InDelta(t, 0.026, cb.PolicyRate, 1e-9)
}

func TestTaylorRuleRespondsToOutputGap(t *testing.T) {
	cb := NewCentralBank(0.02)
	cb.UpdateObservations(0.02, 0.10)
	cb.Step(1.5, 0.5, 0.8, 0.001)

	// Target rate 0.02 + 0.5×0.10 = 0.07, smoothed 0.8×0.02 + 0.2×0.07.
	assert.InDelta(t, 0.03, cb.PolicyRate, 1e-9)
}

func TestPolicyRateLowerBound(t *testing.T) {
	cb := NewCentralBank(0.02)
	cb.UpdateObservations(-0.5, 0)
	cb.Step(1.5, 0.5, 0.8, 0.001)

	assert.Equal(t, 0.001, cb.PolicyRate, "deflation pins the rate to the floor")
}

func TestPreviousRateLagsPolicyRate(t *testing.T) {
	cb := NewCentralBank(0.02)
	cb.UpdateObservations(0.06, 0)
	cb.Step(1.5, 0.5, 0.8, 0.001)
	first := cb.PolicyRate

	cb.Step(1.5, 0.5, 0.8, 0.001)
	assert.Equal(t, first, cb.PreviousRate)
}
