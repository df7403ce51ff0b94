package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/estate/api/internal/models"
)

func TestComputeAmortization_TwentyFiveYears(t *testing.T) {
	got, err := ComputeAmortization(AmortizationInput{
		LoanAmount:            1200000,
		AnnualInterestRatePct: 3.5,
		TermYears:             25,
	})
	require.NoError(t, err)

	assert.Equal(t, 300, got.Months)
	assert.InDelta(t, 6007.4828, got.MonthlyPayment, 1e-3)
	assert.InDelta(t, 1802244.85, got.TotalPayment, 0.01)
	assert.InDelta(t, 602244.85, got.TotalInterest, 0.01)
}

func TestComputeAmortization_ZeroRateIsStraightLine(t *testing.T) {
	got, err := ComputeAmortization(AmortizationInput{
		LoanAmount: 1200000,
		TermYears:  25,
	})
	require.NoError(t, err)

	assert.Equal(t, 4000.0, got.MonthlyPayment)
	assert.Equal(t, 1200000.0, got.TotalPayment)
	assert.Equal(t, 0.0, got.TotalInterest)
	assert.Equal(t, 0.0, got.MonthlyRate)
}

func TestComputeAmortization_Identities(t *testing.T) {
	inputs := []AmortizationInput{
		{LoanAmount: 1200000, AnnualInterestRatePct: 3.5, TermYears: 25},
		{LoanAmount: 350000, AnnualInterestRatePct: 6.25, TermYears: 30},
		{LoanAmount: 90000, AnnualInterestRatePct: 0.1, TermYears: 1},
		{LoanAmount: 500000, AnnualInterestRatePct: 4, TermYears: 12.5},
		{LoanAmount: 75000, TermYears: 10},
	}

	for _, in := range inputs {
		got, err := ComputeAmortization(in)
		require.NoError(t, err)

		n := float64(got.Months)
		assert.InDelta(t, got.TotalPayment, got.MonthlyPayment*n, 1e-6)
		assert.InDelta(t, got.TotalInterest, got.TotalPayment-in.LoanAmount, 1e-6)
		assert.GreaterOrEqual(t, got.TotalInterest, -1e-6)
	}
}

func TestComputeAmortization_Validation(t *testing.T) {
	tests := []struct {
		name      string
		in        AmortizationInput
		wantField string
	}{
		{name: "zero loan", in: AmortizationInput{LoanAmount: 0, AnnualInterestRatePct: 3, TermYears: 10}, wantField: "loanAmount"},
		{name: "negative loan", in: AmortizationInput{LoanAmount: -5, AnnualInterestRatePct: 3, TermYears: 10}, wantField: "loanAmount"},
		{name: "zero term", in: AmortizationInput{LoanAmount: 1000, AnnualInterestRatePct: 3, TermYears: 0}, wantField: "termYears"},
		{name: "negative term", in: AmortizationInput{LoanAmount: 1000, AnnualInterestRatePct: 3, TermYears: -2}, wantField: "termYears"},
		{name: "negative rate", in: AmortizationInput{LoanAmount: 1000, AnnualInterestRatePct: -1, TermYears: 2}, wantField: "annualInterestRatePct"},
		{name: "term too long", in: AmortizationInput{LoanAmount: 1000, AnnualInterestRatePct: 3, TermYears: 101}, wantField: "termYears"},
		{name: "partial month", in: AmortizationInput{LoanAmount: 1000, AnnualInterestRatePct: 3, TermYears: 1.01}, wantField: "termYears"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeAmortization(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrInvalidInput)

			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestComputeAmortization_OverflowIsRejected(t *testing.T) {
	_, err := ComputeAmortization(AmortizationInput{
		LoanAmount:            1e6,
		AnnualInterestRatePct: 1e300,
		TermYears:             100,
	})

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "result", verr.Field)
}

func TestComputeAmortization_TinyRateApproachesStraightLine(t *testing.T) {
	for _, pct := range []float64{1e-6, 1e-9, 1e-12, 1e-14, 1e-300} {
		got, err := ComputeAmortization(AmortizationInput{
			LoanAmount:            1200000,
			AnnualInterestRatePct: pct,
			TermYears:             25,
		})
		require.NoError(t, err, "rate %g", pct)

		assert.InDelta(t, 4000, got.MonthlyPayment, 1e-2, "rate %g", pct)
		assert.GreaterOrEqual(t, got.TotalInterest, -1e-6, "rate %g", pct)
	}
}
