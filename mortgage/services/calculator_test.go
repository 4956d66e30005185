package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMortgage_StandardLoan(t *testing.T) {
	// 250k price, 50k down, 6% over 30 years: the textbook P&I is 1199.10
	breakdown, err := CalculateMortgage(MortgageInput{
		Price:       decimal.NewFromInt(250000),
		DownPayment: decimal.NewFromInt(50000),
		AnnualRate:  decimal.NewFromInt(6),
		TermYears:   30,
	})
	require.NoError(t, err)

	assert.True(t, breakdown.Principal.Equal(decimal.NewFromInt(200000)))

	payment, _ := breakdown.MonthlyPayment.Float64()
	assert.InDelta(t, 1199.10, payment, 0.02)

	assert.True(t, breakdown.MonthlyTax.IsZero())
	assert.True(t, breakdown.MonthlyInsurance.IsZero())
	assert.True(t, breakdown.TotalMonthly.Equal(breakdown.MonthlyPayment))
}

func TestCalculateMortgage_ZeroRate(t *testing.T) {
	breakdown, err := CalculateMortgage(MortgageInput{
		Price:     decimal.NewFromInt(120000),
		TermYears: 10,
	})
	require.NoError(t, err)

	// 120000 over 120 months, no interest
	assert.True(t, breakdown.MonthlyPayment.Equal(decimal.NewFromInt(1000)),
		"got %s", breakdown.MonthlyPayment)
}

func TestCalculateMortgage_EscrowComponents(t *testing.T) {
	breakdown, err := CalculateMortgage(MortgageInput{
		Price:           decimal.NewFromInt(300000),
		DownPayment:     decimal.NewFromInt(60000),
		AnnualRate:      decimal.NewFromFloat(6.5),
		TermYears:       30,
		AnnualTax:       decimal.NewFromInt(4800),
		AnnualInsurance: decimal.NewFromInt(1500),
		MonthlyHOA:      decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.True(t, breakdown.MonthlyTax.Equal(decimal.NewFromInt(400)))
	assert.True(t, breakdown.MonthlyInsurance.Equal(decimal.NewFromInt(125)))
	assert.True(t, breakdown.MonthlyHOA.Equal(decimal.NewFromInt(150)))

	expectedTotal := breakdown.MonthlyPayment.
		Add(decimal.NewFromInt(400)).
		Add(decimal.NewFromInt(125)).
		Add(decimal.NewFromInt(150))
	assert.True(t, breakdown.TotalMonthly.Equal(expectedTotal))
}

func TestCalculateMortgage_InvalidInputs(t *testing.T) {
	base := MortgageInput{
		Price:       decimal.NewFromInt(250000),
		DownPayment: decimal.NewFromInt(50000),
		AnnualRate:  decimal.NewFromInt(6),
		TermYears:   30,
	}

	noPrincipal := base
	noPrincipal.DownPayment = decimal.NewFromInt(250000)
	_, err := CalculateMortgage(noPrincipal)
	assert.ErrorIs(t, err, ErrNoPrincipal)

	badTerm := base
	badTerm.TermYears = 0
	_, err = CalculateMortgage(badTerm)
	assert.ErrorIs(t, err, ErrBadTerm)

	badTerm.TermYears = 51
	_, err = CalculateMortgage(badTerm)
	assert.ErrorIs(t, err, ErrBadTerm)

	badRate := base
	badRate.AnnualRate = decimal.NewFromInt(-1)
	_, err = CalculateMortgage(badRate)
	assert.ErrorIs(t, err, ErrBadRate)

	badRate.AnnualRate = decimal.NewFromInt(31)
	_, err = CalculateMortgage(badRate)
	assert.ErrorIs(t, err, ErrBadRate)
}
