package calculation

import (
	"fmt"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ClassifyVATRegime selects the regime from turnover and category:
// exempt below the exemption threshold, simplified below the category
// group's threshold, general otherwise.
func (e *Engine) ClassifyVATRegime(annualSales decimal.Decimal, category domain.BusinessCategory) domain.VATRegime {
	rates := e.Rates.VAT
	if annualSales.LessThanOrEqual(rates.ExemptionThreshold) {
		return domain.RegimeExempt
	}
	threshold := rates.ServicesThreshold
	if c, ok := rates.Categories[category]; ok && c.Group == domain.VATGroupGoods {
		threshold = rates.GoodsThreshold
	}
	if annualSales.LessThanOrEqual(threshold) {
		return domain.RegimeSimplified
	}
	return domain.RegimeGeneral
}

// CalculateVAT dispatches to the regime-specific model.
//
// General: payable = output - input; a negative position is refundable.
// Simplified: floor(sales * category rate) with the input credit capped at
// the calculated tax, never a refund, even when actual input VAT exceeds
// it. Exempt: zero tax and zero credit regardless of input VAT.
func (e *Engine) CalculateVAT(input *domain.VATInput) (*domain.VATResult, error) {
	v := e.ValidateVAT(input)
	if !v.IsValid {
		return nil, &domain.InvalidInputError{Fields: v.Errors}
	}

	rates := e.Rates.VAT
	regime := e.ClassifyVATRegime(input.AnnualSales, input.Category)
	e.Logger.Debugf("vat classification: regime=%s sales=%s category=%s", regime, input.AnnualSales, input.Category)

	breakdown := []domain.CalculationStep{
		{Label: "annual sales", Amount: input.AnnualSales},
		{Label: "regime", Amount: decimal.Zero, Note: string(regime)},
	}

	result := &domain.VATResult{
		Regime:     regime,
		Payable:    decimal.Zero,
		Refundable: decimal.Zero,
		Warnings:   v.Warnings,
	}

	switch regime {
	case domain.RegimeExempt:
		result.AppliedRate = decimal.Zero
		breakdown = append(breakdown, domain.CalculationStep{
			Label: "exempt", Amount: decimal.Zero,
			Note: "turnover below the exemption threshold; no tax, no credit",
		})

	case domain.RegimeSimplified:
		category := rates.Categories[input.Category]
		calculated := input.AnnualSales.Mul(category.SimplifiedRate).Floor()
		credit := decimal.Min(input.InputVAT, calculated)
		result.CalculatedTax = calculated
		result.InputCredit = credit
		result.Payable = calculated.Sub(credit)
		result.AppliedRate = category.SimplifiedRate
		breakdown = append(breakdown,
			domain.CalculationStep{
				Label:  "calculated tax",
				Amount: calculated,
				Note:   fmt.Sprintf("sales times category rate %s", category.SimplifiedRate.String()),
			},
			domain.CalculationStep{
				Label:  "input credit",
				Amount: credit.Neg(),
				Note:   "capped at the calculated tax; simplified regime never refunds",
			},
			domain.CalculationStep{Label: "payable", Amount: result.Payable},
		)

	case domain.RegimeGeneral:
		output := input.AnnualSales.Mul(rates.StandardRate).Floor()
		net := output.Sub(input.InputVAT)
		result.OutputVAT = output
		result.CalculatedTax = output
		result.InputCredit = input.InputVAT
		result.AppliedRate = rates.StandardRate
		if net.GreaterThanOrEqual(decimal.Zero) {
			result.Payable = net
		} else {
			result.Refundable = net.Neg()
		}
		breakdown = append(breakdown,
			domain.CalculationStep{Label: "output VAT", Amount: output, Note: "sales times the standard 10% rate"},
			domain.CalculationStep{Label: "input VAT credit", Amount: input.InputVAT.Neg()},
		)
		if result.Refundable.GreaterThan(decimal.Zero) {
			breakdown = append(breakdown, domain.CalculationStep{Label: "refundable", Amount: result.Refundable})
		} else {
			breakdown = append(breakdown, domain.CalculationStep{Label: "payable", Amount: result.Payable})
		}
	}

	result.Breakdown = breakdown
	return result, nil
}
