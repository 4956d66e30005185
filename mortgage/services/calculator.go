package services

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNoPrincipal = errors.New("loan principal must be greater than zero")
	ErrBadTerm     = errors.New("loan term must be between 1 and 50 years")
	ErrBadRate     = errors.New("interest rate must be between 0 and 30 percent")
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// MortgageInput is the buyer's scenario. Rate is the annual percentage rate as
// a percent figure (6.5 means 6.5%); tax and insurance are annual amounts, HOA
// is already monthly.
type MortgageInput struct {
	Price            decimal.Decimal `json:"price"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	AnnualRate       decimal.Decimal `json:"annual_rate"`
	TermYears        int             `json:"term_years"`
	AnnualTax        decimal.Decimal `json:"annual_tax"`
	AnnualInsurance  decimal.Decimal `json:"annual_insurance"`
	MonthlyHOA       decimal.Decimal `json:"monthly_hoa"`
}

// MortgageBreakdown is the monthly cost estimate, each component rounded to
// cents independently.
type MortgageBreakdown struct {
	Principal        decimal.Decimal `json:"principal"`
	MonthlyPayment   decimal.Decimal `json:"monthly_payment"`
	MonthlyTax       decimal.Decimal `json:"monthly_tax"`
	MonthlyInsurance decimal.Decimal `json:"monthly_insurance"`
	MonthlyHOA       decimal.Decimal `json:"monthly_hoa"`
	TotalMonthly     decimal.Decimal `json:"total_monthly"`
}

// CalculateMortgage computes the standard amortized monthly payment plus the
// escrow components. A zero rate degenerates to principal over term.
func CalculateMortgage(input MortgageInput) (*MortgageBreakdown, error) {
	principal := input.Price.Sub(input.DownPayment)
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNoPrincipal
	}
	if input.TermYears < 1 || input.TermYears > 50 {
		return nil, ErrBadTerm
	}
	if input.AnnualRate.IsNegative() || input.AnnualRate.GreaterThan(decimal.NewFromInt(30)) {
		return nil, ErrBadRate
	}

	months := int64(input.TermYears) * 12
	monthsDec := decimal.NewFromInt(months)

	var payment decimal.Decimal
	if input.AnnualRate.IsZero() {
		payment = principal.Div(monthsDec)
	} else {
		monthlyRate := input.AnnualRate.Div(hundred).Div(twelve)
		// payment = P * r * (1+r)^n / ((1+r)^n - 1)
		factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(monthsDec)
		payment = principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1)))
	}

	breakdown := &MortgageBreakdown{
		Principal:        principal,
		MonthlyPayment:   payment.Round(2),
		MonthlyTax:       input.AnnualTax.Div(twelve).Round(2),
		MonthlyInsurance: input.AnnualInsurance.Div(twelve).Round(2),
		MonthlyHOA:       input.MonthlyHOA.Round(2),
	}
	breakdown.TotalMonthly = breakdown.MonthlyPayment.
		Add(breakdown.MonthlyTax).
		Add(breakdown.MonthlyInsurance).
		Add(breakdown.MonthlyHOA)

	return breakdown, nil
}
