package calculator

import (
	"github.com/shopspring/decimal"
)

// centPlaces is the rounding precision of every scheduled amount.
const centPlaces = 2

// Installment is one month of an amortization schedule. Amounts are rounded to cents.
type Installment struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

// Schedule is the month-by-month breakdown of a loan together with its summary.
type Schedule struct {
	Summary       AmortizationResult `json:"summary"`
	Installments  []Installment      `json:"installments"`
	TotalPaid     decimal.Decimal    `json:"totalPaid"`
	TotalInterest decimal.Decimal    `json:"totalInterest"`
}

// AmortizationSchedule splits every payment into interest and principal in cent-exact arithmetic.
// Each month's interest is charged on the outstanding balance and rounded half-up to cents; the final
// installment pays off whatever balance remains, so principal always sums to the loan amount.
func AmortizationSchedule(in AmortizationInput) (Schedule, error) {
	summary, err := ComputeAmortization(in)
	if err != nil {
		return Schedule{}, err
	}

	rate := decimal.NewFromFloat(summary.MonthlyRate)
	payment := decimal.NewFromFloat(summary.MonthlyPayment).Round(centPlaces)
	balance := decimal.NewFromFloat(in.LoanAmount).Round(centPlaces)

	installments := make([]Installment, 0, summary.Months)
	totalPaid := decimal.Zero
	totalInterest := decimal.Zero

	for month := 1; month <= summary.Months; month++ {
		interest := balance.Mul(rate).Round(centPlaces)
		principal := payment.Sub(interest)

		if month == summary.Months || principal.GreaterThan(balance) {
			principal = balance
		}
		paid := principal.Add(interest)
		balance = balance.Sub(principal)

		installments = append(installments, Installment{
			Month:     month,
			Payment:   paid,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
		totalPaid = totalPaid.Add(paid)
		totalInterest = totalInterest.Add(interest)

		if balance.IsZero() {
			break
		}
	}

	return Schedule{
		Summary:       summary,
		Installments:  installments,
		TotalPaid:     totalPaid,
		TotalInterest: totalInterest,
	}, nil
}
