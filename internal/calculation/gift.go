package calculation

import (
	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateGiftTax applies the 10-year cumulative rule: the current gift
// is aggregated with the caller-supplied prior gifts, deductions apply
// once to the aggregate, the progressive schedule runs on the aggregate,
// and tax already paid on the earlier gifts is netted out. The payable
// amount is floored at zero; a deduction surplus is never a refund.
func (e *Engine) CalculateGiftTax(input *domain.GiftTaxInput) (*domain.GiftTaxResult, error) {
	v := e.ValidateGiftTax(input)
	if !v.IsValid {
		return nil, &domain.InvalidInputError{Fields: v.Errors}
	}

	rates := e.Rates.Gift
	breakdown := []domain.CalculationStep{}

	previousTotal := decimal.Zero
	previousTaxPaid := decimal.Zero
	for _, g := range input.PreviousGifts {
		previousTotal = previousTotal.Add(g.Amount)
		previousTaxPaid = previousTaxPaid.Add(g.TaxPaid)
	}
	totalGifts := input.Amount.Add(previousTotal)
	breakdown = append(breakdown,
		domain.CalculationStep{Label: "current gift", Amount: input.Amount},
		domain.CalculationStep{Label: "prior gifts in window", Amount: previousTotal},
		domain.CalculationStep{Label: "aggregate gifts", Amount: totalGifts},
	)

	deductions := e.giftDeductions(input)
	totalDeductions := decimal.Zero
	for _, d := range deductions {
		totalDeductions = totalDeductions.Add(d.Amount)
		breakdown = append(breakdown, domain.CalculationStep{
			Label:  "deduction: " + d.Name,
			Amount: d.Amount.Neg(),
			Note:   d.Rationale,
		})
	}

	taxable := totalGifts.Sub(totalDeductions)
	if taxable.LessThan(decimal.Zero) {
		taxable = decimal.Zero
	}
	breakdown = append(breakdown, domain.CalculationStep{Label: "taxable gift", Amount: taxable})

	cumulativeTax := ComputeBracketTax(taxable, rates.Brackets).Floor()
	breakdown = append(breakdown, domain.CalculationStep{
		Label:  "cumulative tax",
		Amount: cumulativeTax,
		Note:   "progressive schedule applied to the aggregate",
	})

	currentTaxDue := cumulativeTax.Sub(previousTaxPaid)
	if currentTaxDue.LessThan(decimal.Zero) {
		currentTaxDue = decimal.Zero
	}
	if previousTaxPaid.GreaterThan(decimal.Zero) {
		breakdown = append(breakdown, domain.CalculationStep{
			Label:  "prior tax paid",
			Amount: previousTaxPaid.Neg(),
			Note:   "tax already paid on gifts in the window",
		})
	}

	reportingCredit := decimal.Zero
	if input.FiledOnTime && currentTaxDue.GreaterThan(decimal.Zero) {
		reportingCredit = currentTaxDue.Mul(rates.ReportingCreditRate).Floor()
		breakdown = append(breakdown, domain.CalculationStep{
			Label:  "reporting credit",
			Amount: reportingCredit.Neg(),
			Note:   "credit for filing within the statutory period",
		})
	}

	totalTax := currentTaxDue.Sub(reportingCredit)
	if totalTax.LessThan(decimal.Zero) {
		totalTax = decimal.Zero
	}
	breakdown = append(breakdown, domain.CalculationStep{Label: "total tax", Amount: totalTax})

	return &domain.GiftTaxResult{
		TaxableAmount:   taxable,
		Deductions:      deductions,
		TotalDeductions: totalDeductions,
		CalculatedTax:   cumulativeTax,
		ReportingCredit: reportingCredit,
		TotalTax:        totalTax,
		Cumulative: domain.CumulativeTaxationResult{
			CurrentGift:     input.Amount,
			PreviousGifts:   previousTotal,
			TotalGifts:      totalGifts,
			PreviousTaxPaid: previousTaxPaid,
			CumulativeTax:   cumulativeTax,
			CurrentTaxDue:   currentTaxDue,
		},
		AppliedRates: AppliedBracketRates(taxable, rates.Brackets),
		Breakdown:    breakdown,
		Warnings:     v.Warnings,
	}, nil
}

// giftDeductions resolves the relationship deduction by (relation, minor)
// and stacks the special deductions, each clamped to its own cap. All
// deductions apply once to the aggregate, never per gift.
func (e *Engine) giftDeductions(input *domain.GiftTaxInput) []domain.DeductionResult {
	rates := e.Rates.Gift
	deductions := []domain.DeductionResult{}

	var base decimal.Decimal
	var rationale string
	switch input.Relation {
	case domain.RelationSpouse:
		base, rationale = rates.SpouseDeduction, "spouse deduction"
	case domain.RelationLinealAscendant:
		if input.RecipientAge < rates.AdultAge {
			base, rationale = rates.LinealMinorDeduction, "lineal descendant deduction (minor recipient)"
		} else {
			base, rationale = rates.LinealAdultDeduction, "lineal descendant deduction (adult recipient)"
		}
	case domain.RelationLinealDescendant:
		base, rationale = rates.LinealAdultDeduction, "lineal ascendant deduction"
	case domain.RelationOtherRelative:
		base, rationale = rates.OtherRelativeDeduction, "other relative deduction"
	default:
		base, rationale = decimal.Zero, "no relationship deduction"
	}
	if base.GreaterThan(decimal.Zero) {
		deductions = append(deductions, domain.DeductionResult{
			Name: "relationship", Amount: base, Cap: base, Rationale: rationale,
		})
	}

	addSpecial := func(name string, requested, cap decimal.Decimal, rationale string) {
		if requested.LessThanOrEqual(decimal.Zero) || cap.LessThanOrEqual(decimal.Zero) {
			return
		}
		deductions = append(deductions, domain.DeductionResult{
			Name:      name,
			Amount:    decimal.Min(requested, cap),
			Cap:       cap,
			Rationale: rationale,
		})
	}

	addSpecial("marriage", input.MarriageDeduction, rates.MarriageDeductionCap, "marriage gift deduction")
	addSpecial("education", input.EducationDeduction, rates.EducationDeductionCap, "education expense deduction")
	addSpecial("startup", input.StartupDeduction, rates.StartupDeductionCap, "startup funding special deduction")

	return deductions
}
