package agents

import "math"

const (
	// depositSpread is subtracted from the lending rate to get the rate
	// paid on deposits, floored at zero.
	depositSpread = 0.02
	// provisionRate is the share of non-performing loans provisioned
	// against capital each period.
	provisionRate = 0.5
	// collateralRatio is the minimum borrower equity per unit of loan.
	collateralRatio = 0.5
	// initialLendingRate seeds bank rates before the first policy pass.
	initialLendingRate = 0.05
)

// Bank is a commercial bank. Extending a loan credits the borrower's
// deposits, so lending grows both sides of the balance sheet.
type Bank struct {
	Capital            float64 `json:"capital"`
	Reserves           float64 `json:"reserves"`
	Loans              float64 `json:"loans"`
	Deposits           float64 `json:"deposits"`
	NonPerformingLoans float64 `json:"non_performing_loans"`
	InterestRate       float64 `json:"interest_rate"`
	Profit             float64 `json:"profit"`

	// Per-period income flows.
	InterestIncome  float64 `json:"interest_income"`
	InterestExpense float64 `json:"interest_expense"`
}

func NewBank(capital, reserves float64) Bank {
	return Bank{
		Capital:      capital,
		Reserves:     reserves,
		InterestRate: initialLendingRate,
	}
}

// CapitalRatio is capital over risk-weighted loans, 1.0 for an empty book.
func (b *Bank) CapitalRatio(riskWeight float64) float64 {
	weighted := b.Loans * riskWeight
	if weighted <= 0 {
		return 1.0
	}
	return b.Capital / weighted
}

func (b *Bank) MeetsCapitalRequirement(requirement, buffer, riskWeight float64) bool {
	return b.CapitalRatio(riskWeight) >= requirement+buffer
}

// SetLendingRate prices loans off the policy rate plus a fixed markup and
// a risk premium on the bank's own non-performing share.
func (b *Bank) SetLendingRate(policyRate, baseMarkup, riskSensitivity float64) {
	nplRatio := 0.0
	if b.Loans > 0 {
		nplRatio = b.NonPerformingLoans / b.Loans
	}
	b.InterestRate = policyRate + baseMarkup + riskSensitivity*nplRatio
}

func (b *Bank) CalculateIncome() {
	b.InterestIncome = b.InterestRate * b.Loans
	depositRate := math.Max(b.InterestRate-depositSpread, 0)
	b.InterestExpense = depositRate * b.Deposits
}

func (b *Bank) UpdateCapital() {
	provisions := provisionRate * b.NonPerformingLoans
	b.Profit = b.InterestIncome - b.InterestExpense - provisions
	b.Capital += b.Profit
}

// Step runs the bank's full period: reprice, accrue, provision.
func (b *Bank) Step(policyRate, baseMarkup, riskSensitivity float64) {
	b.SetLendingRate(policyRate, baseMarkup, riskSensitivity)
	b.CalculateIncome()
	b.UpdateCapital()
}

// EvaluateLoan applies the underwriting rules: the bank must clear its
// capital requirement plus buffer, the borrower must post equity of at
// least half the amount, show positive revenue, and cover debt service
// above the lending threshold.
func (b *Bank) EvaluateLoan(amount, borrowerEquity, borrowerRevenue, capitalRequirement, capitalBuffer, riskWeight, lendingThreshold float64) bool {
	if !b.MeetsCapitalRequirement(capitalRequirement, capitalBuffer, riskWeight) {
		return false
	}
	if borrowerEquity < amount*collateralRatio {
		return false
	}
	if borrowerRevenue <= 0 {
		return false
	}
	coverage := borrowerRevenue / math.Max(amount*b.InterestRate, eps)
	return coverage >= lendingThreshold
}

// ExtendLoan books the loan and the matching deposit, returning the rate
// charged.
func (b *Bank) ExtendLoan(amount float64) float64 {
	b.Loans += amount
	b.Deposits += amount
	return b.InterestRate
}

func (b *Bank) RecordDefault(amount float64) {
	b.NonPerformingLoans += amount
}

func (b *Bank) RecordRepayment(amount float64) {
	b.Loans = math.Max(b.Loans-amount, 0)
}
