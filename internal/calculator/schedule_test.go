package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/estate/api/internal/models"
)

func TestAmortizationSchedule_PaysOffExactly(t *testing.T) {
	schedule, err := AmortizationSchedule(AmortizationInput{
		LoanAmount:            1200000,
		AnnualInterestRatePct: 3.5,
		TermYears:             25,
	})
	require.NoError(t, err)
	require.Len(t, schedule.Installments, 300)

	first := schedule.Installments[0]
	assert.Equal(t, 1, first.Month)
	assert.True(t, first.Payment.Equal(decimal.RequireFromString("6007.48")), "first payment %s", first.Payment)
	assert.True(t, first.Interest.Equal(decimal.RequireFromString("3500")), "first interest %s", first.Interest)

	principal := decimal.Zero
	for _, inst := range schedule.Installments {
		principal = principal.Add(inst.Principal)
		assert.True(t, inst.Principal.Add(inst.Interest).Equal(inst.Payment), "month %d", inst.Month)
	}
	assert.True(t, principal.Equal(decimal.NewFromInt(1200000)), "principal sums to %s", principal)

	last := schedule.Installments[len(schedule.Installments)-1]
	assert.True(t, last.Balance.IsZero())
	assert.True(t, schedule.TotalPaid.Sub(schedule.TotalInterest).Equal(decimal.NewFromInt(1200000)))

	// Cent rounding keeps the schedule within a few units of the closed-form total.
	interest, _ := schedule.TotalInterest.Float64()
	assert.InDelta(t, schedule.Summary.TotalInterest, interest, 5)
}

func TestAmortizationSchedule_ZeroRate(t *testing.T) {
	schedule, err := AmortizationSchedule(AmortizationInput{LoanAmount: 1200000, TermYears: 25})
	require.NoError(t, err)
	require.Len(t, schedule.Installments, 300)

	for _, inst := range schedule.Installments {
		assert.True(t, inst.Interest.IsZero())
		assert.True(t, inst.Payment.Equal(decimal.NewFromInt(4000)), "month %d pays %s", inst.Month, inst.Payment)
	}
	assert.True(t, schedule.TotalInterest.IsZero())
}

func TestAmortizationSchedule_BalanceNeverIncreases(t *testing.T) {
	schedule, err := AmortizationSchedule(AmortizationInput{LoanAmount: 250000, AnnualInterestRatePct: 7.2, TermYears: 15})
	require.NoError(t, err)

	prev := decimal.NewFromInt(250000)
	for _, inst := range schedule.Installments {
		assert.True(t, inst.Balance.LessThan(prev), "month %d", inst.Month)
		assert.False(t, inst.Balance.IsNegative(), "month %d", inst.Month)
		prev = inst.Balance
	}
}

func TestAmortizationSchedule_RejectsInvalidInput(t *testing.T) {
	_, err := AmortizationSchedule(AmortizationInput{LoanAmount: 1000, TermYears: 0})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
