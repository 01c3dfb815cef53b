package calculation

import (
	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeBracketTax walks a progressive schedule and taxes the slice of
// taxableBase falling inside each [Min, Max) range. The last bracket is
// open-ended. The result is floored at zero and never negative.
//
// The walk agrees with the closed form rate*base - cumulativeDeduction of
// the bracket containing the top of the base; the schedule carries the
// progressive deductions so either form can be used for audit output.
func ComputeBracketTax(taxableBase decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	if taxableBase.LessThanOrEqual(decimal.Zero) || len(brackets) == 0 {
		return decimal.Zero
	}

	tax := decimal.Zero
	for _, bracket := range brackets {
		if taxableBase.LessThanOrEqual(bracket.Min) {
			break
		}
		top := taxableBase
		if !bracket.Open() && top.GreaterThan(bracket.Max) {
			top = bracket.Max
		}
		portion := top.Sub(bracket.Min)
		if portion.GreaterThan(decimal.Zero) {
			tax = tax.Add(portion.Mul(bracket.Rate))
		}
	}

	if tax.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return tax
}

// MarginalBracket returns the bracket containing the top of taxableBase.
// The schedule is scanned by range, not by position.
func MarginalBracket(taxableBase decimal.Decimal, brackets []domain.TaxBracket) domain.TaxBracket {
	for _, bracket := range brackets {
		if bracket.Open() {
			return bracket
		}
		if taxableBase.GreaterThan(bracket.Min) && taxableBase.LessThanOrEqual(bracket.Max) {
			return bracket
		}
	}
	if len(brackets) > 0 {
		return brackets[0]
	}
	return domain.TaxBracket{}
}

// AppliedBracketRates lists the marginal rates touched by taxableBase, in
// schedule order, for the applied-rates audit field.
func AppliedBracketRates(taxableBase decimal.Decimal, brackets []domain.TaxBracket) []decimal.Decimal {
	rates := []decimal.Decimal{}
	for _, bracket := range brackets {
		if taxableBase.LessThanOrEqual(bracket.Min) {
			break
		}
		rates = append(rates, bracket.Rate)
	}
	return rates
}
