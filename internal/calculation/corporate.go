package calculation

import (
	"fmt"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateCorporateTax assembles the full corporate liability: expense
// netting, capped loss carry-forward, bracket tax, named credits and the
// 10% local income surtax. Blocking validation errors return an
// InvalidInputError; warnings ride on the result.
func (e *Engine) CalculateCorporateTax(input *domain.CorporateTaxInput) (*domain.CorporateTaxResult, error) {
	v := e.ValidateCorporateTax(input)
	if !v.IsValid {
		return nil, &domain.InvalidInputError{Fields: v.Errors}
	}

	rates := e.Rates.Corporate
	breakdown := []domain.CalculationStep{}

	income := input.Revenue.Sub(input.Expenses)
	breakdown = append(breakdown, domain.CalculationStep{
		Label:  "net income",
		Amount: income,
		Note:   "revenue minus expenses",
	})
	if income.LessThan(decimal.Zero) {
		income = decimal.Zero
	}

	smallBusiness := e.classifySmallBusiness(input)
	e.Logger.Debugf("corporate classification: small_business=%v industry=%s", smallBusiness, input.Industry)

	// Loss carry-forward reduces the base, capped at a share of income
	// (100% for small businesses, 80% otherwise).
	loss := input.CarryForwardLoss
	if loss.LessThan(decimal.Zero) {
		loss = decimal.Zero
	}
	capRate := rates.LossCapRateGeneral
	if smallBusiness {
		capRate = rates.LossCapRateSmall
	}
	lossCap := income.Mul(capRate)
	lossUsed := decimal.Min(loss, lossCap)
	taxable := income.Sub(lossUsed)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}
	if lossUsed.GreaterThan(decimal.Zero) {
		breakdown = append(breakdown, domain.CalculationStep{
			Label:  "loss carry-forward",
			Amount: lossUsed.Neg(),
			Note:   fmt.Sprintf("capped at %s%% of income", capRate.Mul(decimal.NewFromInt(100)).StringFixed(0)),
		})
	}
	breakdown = append(breakdown, domain.CalculationStep{Label: "taxable amount", Amount: taxable})

	bracketTax := ComputeBracketTax(taxable, rates.Brackets)
	breakdown = append(breakdown, domain.CalculationStep{
		Label:  "bracket tax",
		Amount: bracketTax,
		Note:   fmt.Sprintf("marginal rate %s%%", MarginalBracket(taxable, rates.Brackets).Rate.Mul(decimal.NewFromInt(100)).StringFixed(0)),
	})

	credits := e.corporateCredits(input, smallBusiness, bracketTax)
	totalCredits := decimal.Zero
	for _, c := range credits {
		totalCredits = totalCredits.Add(c.Amount)
	}
	// Credits reduce the bracket tax, never the base, and can never push
	// the liability below zero.
	if totalCredits.GreaterThan(bracketTax) {
		scale := decimal.Zero
		if totalCredits.GreaterThan(decimal.Zero) {
			scale = bracketTax.Div(totalCredits)
		}
		for i := range credits {
			credits[i].Amount = credits[i].Amount.Mul(scale)
		}
		totalCredits = bracketTax
	}
	if totalCredits.GreaterThan(decimal.Zero) {
		breakdown = append(breakdown, domain.CalculationStep{
			Label:  "tax credits",
			Amount: totalCredits.Neg(),
			Note:   "sum of credits, capped at the pre-credit tax",
		})
	}

	nationalTax := bracketTax.Sub(totalCredits).Floor()
	localTax := nationalTax.Mul(rates.LocalSurtaxRate).Floor()
	totalTax := nationalTax.Add(localTax)
	breakdown = append(breakdown,
		domain.CalculationStep{Label: "national tax", Amount: nationalTax},
		domain.CalculationStep{Label: "local income tax", Amount: localTax, Note: "10% surtax on the national tax"},
		domain.CalculationStep{Label: "total tax", Amount: totalTax},
	)

	effectiveRate := decimal.Zero
	if taxable.GreaterThan(decimal.Zero) {
		effectiveRate = totalTax.Div(taxable)
	}

	return &domain.CorporateTaxResult{
		TaxableAmount:   taxable,
		CalculatedTax:   bracketTax.Floor(),
		Credits:         credits,
		TotalCredits:    totalCredits.Floor(),
		NationalTax:     nationalTax,
		LocalIncomeTax:  localTax,
		TotalTax:        totalTax,
		EffectiveRate:   effectiveRate,
		IsSmallBusiness: smallBusiness,
		AppliedRates:    AppliedBracketRates(taxable, rates.Brackets),
		Breakdown:       breakdown,
		Warnings:        v.Warnings,
	}, nil
}

// classifySmallBusiness applies the small-business test: sales AND assets
// AND employees must all be inside their thresholds. A single failing
// criterion disqualifies.
func (e *Engine) classifySmallBusiness(input *domain.CorporateTaxInput) bool {
	rule, ok := e.Rates.Corporate.Industries[input.Industry]
	if !ok {
		return false
	}
	if input.Revenue.GreaterThan(rule.SalesThreshold) {
		return false
	}
	if input.TotalAssets.GreaterThan(e.Rates.Corporate.AssetCeiling) {
		return false
	}
	if input.Employees > rule.EmployeeThreshold {
		return false
	}
	return true
}

// corporateCredits computes the named credits, each min(base*rate, cap).
// The foreign tax credit is additionally capped at the prior year's tax.
func (e *Engine) corporateCredits(input *domain.CorporateTaxInput, smallBusiness bool, bracketTax decimal.Decimal) []domain.AppliedCredit {
	c := e.Rates.Corporate.Credits
	credits := []domain.AppliedCredit{}

	add := func(name string, base, rate, cap decimal.Decimal, rationale string) {
		if base.LessThanOrEqual(decimal.Zero) || rate.LessThanOrEqual(decimal.Zero) {
			return
		}
		amount := decimal.Min(base.Mul(rate), cap)
		if amount.LessThanOrEqual(decimal.Zero) {
			return
		}
		credits = append(credits, domain.AppliedCredit{Name: name, Amount: amount, Cap: cap, Rationale: rationale})
	}

	rndRate, equipRate, perHead := c.RnDRateGeneral, c.EquipmentRateGeneral, c.EmploymentPerHeadGeneral
	if smallBusiness {
		rndRate, equipRate, perHead = c.RnDRateSmall, c.EquipmentRateSmall, c.EmploymentPerHeadSmall
	}

	add("rnd", input.RnDSpending, rndRate, c.RnDCap, "research and development spending credit")
	add("equipment", input.EquipmentInvestment, equipRate, c.EquipmentCap, "equipment investment credit")

	if input.EmployeeIncrease > 0 {
		base := decimal.NewFromInt(int64(input.EmployeeIncrease))
		add("employment", base, perHead, c.EmploymentCap, "employment increase credit per added head")
	}

	if input.IsStartup && smallBusiness {
		amount := bracketTax.Mul(e.Rates.Corporate.StartupReductionRate)
		if amount.GreaterThan(decimal.Zero) {
			credits = append(credits, domain.AppliedCredit{
				Name:      "startup",
				Amount:    amount,
				Cap:       bracketTax,
				Rationale: "startup small-business tax reduction",
			})
		}
	}

	if input.ForeignTaxPaid.GreaterThan(decimal.Zero) {
		amount := decimal.Min(input.ForeignTaxPaid, input.PriorYearTax)
		if amount.GreaterThan(decimal.Zero) {
			credits = append(credits, domain.AppliedCredit{
				Name:      "foreign",
				Amount:    amount,
				Cap:       input.PriorYearTax,
				Rationale: "foreign tax credit capped at the prior year's tax",
			})
		}
	}

	return credits
}
