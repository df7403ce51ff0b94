package calculator

import (
	"math"

	"github.com/stwalsh4118/estate/api/internal/models"
)

// MaxTermYears bounds the loan term so a schedule stays a reasonable size.
const MaxTermYears = 100

// AmortizationInput describes a fixed-rate loan.
type AmortizationInput struct {
	LoanAmount            float64 `json:"loanAmount"`
	AnnualInterestRatePct float64 `json:"annualInterestRatePct"`
	TermYears             float64 `json:"termYears"`
}

// AmortizationResult holds the level monthly payment and the totals it implies.
type AmortizationResult struct {
	MonthlyRate    float64 `json:"monthlyRate"`
	Months         int     `json:"months"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Validate reports the first violated precondition of in.
func (in AmortizationInput) Validate() error {
	var c check
	c.positive("loanAmount", in.LoanAmount)
	c.nonNegative("annualInterestRatePct", in.AnnualInterestRatePct)
	c.positive("termYears", in.TermYears)
	if err := c.result(); err != nil {
		return err
	}
	if in.TermYears > MaxTermYears {
		return models.NewValidationError("termYears", "must be <= %d", MaxTermYears)
	}

	months := in.TermYears * 12
	if months < 1 || math.Abs(months-math.Round(months)) > 1e-9 {
		return models.NewValidationError("termYears", "must cover a whole number of months")
	}
	return nil
}

func (in AmortizationInput) months() int {
	return int(math.Round(in.TermYears * 12))
}

// ComputeAmortization returns the annuity payment for the loan. A zero interest rate falls back to
// straight-line repayment instead of dividing zero by zero.
func ComputeAmortization(in AmortizationInput) (AmortizationResult, error) {
	if err := in.Validate(); err != nil {
		return AmortizationResult{}, err
	}

	rate := in.AnnualInterestRatePct / 100 / 12
	n := in.months()

	payment := levelPayment(in.LoanAmount, rate, n)
	total := payment * float64(n)
	if err := representable(payment, total); err != nil {
		return AmortizationResult{}, err
	}

	return AmortizationResult{
		MonthlyRate:    rate,
		Months:         n,
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  total - in.LoanAmount,
	}, nil
}

func levelPayment(principal, rate float64, n int) float64 {
	if rate == 0 {
		return principal / float64(n)
	}
	// (1+r)^n - 1 via expm1/log1p keeps precision when r is tiny.
	gm1 := math.Expm1(float64(n) * math.Log1p(rate))
	return principal * rate * (gm1 + 1) / gm1
}
