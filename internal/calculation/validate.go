package calculation

import (
	"time"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Sanity ceilings for structurally valid but implausible business input.
// Values above the error ceiling block computation; values above the
// warning line only annotate the result.
var (
	maxMonetaryAmount = decimal.New(1, 15) // 1,000 trillion won
	maxEmployees      = 100_000
)

// ValidateCorporateTax normalizes and checks a corporate tax input.
// Negative monetary fields are blocking errors except CarryForwardLoss,
// which is a signed adjustment and is clamped at zero by the calculator.
func (e *Engine) ValidateCorporateTax(input *domain.CorporateTaxInput) *domain.ValidationResult {
	v := domain.NewValidationResult()
	if input == nil {
		v.AddError("input", "input is required")
		return v
	}

	checkAmount(v, "revenue", input.Revenue)
	checkAmount(v, "expenses", input.Expenses)
	checkAmount(v, "total_assets", input.TotalAssets)
	checkAmount(v, "prior_year_tax", input.PriorYearTax)
	checkAmount(v, "foreign_tax_paid", input.ForeignTaxPaid)
	checkAmount(v, "rnd_spending", input.RnDSpending)
	checkAmount(v, "equipment_investment", input.EquipmentInvestment)

	if input.Employees < 0 {
		v.AddError("employees", "employee count cannot be negative")
	} else if input.Employees > maxEmployees {
		v.AddError("employees", "employee count exceeds the sanity ceiling")
	}
	if input.EmployeeIncrease < 0 {
		v.AddWarning("employee_increase", "negative employee increase is ignored; the credit applies to headcount growth only")
	}
	if _, ok := e.Rates.Corporate.Industries[input.Industry]; !ok {
		v.AddError("industry", "unknown industry category")
	}
	if !input.EstablishedDate.IsZero() && input.EstablishedDate.After(time.Now()) {
		v.AddError("established_date", "establishment date cannot be in the future")
	}
	if input.Expenses.GreaterThan(input.Revenue.Mul(decimal.NewFromInt(2))) && input.Revenue.GreaterThan(decimal.Zero) {
		v.AddWarning("expenses", "operating cost exceeds twice the revenue")
	}
	if input.CarryForwardLoss.LessThan(decimal.Zero) {
		v.AddWarning("carry_forward_loss", "negative carry-forward loss treated as zero")
	}
	return v
}

// ValidateGiftTax checks a gift tax input. The prior-gift list must be
// structurally sound; window filtering is the caller's responsibility.
func (e *Engine) ValidateGiftTax(input *domain.GiftTaxInput) *domain.ValidationResult {
	v := domain.NewValidationResult()
	if input == nil {
		v.AddError("input", "input is required")
		return v
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		v.AddError("amount", "gift amount must be positive")
	} else if input.Amount.GreaterThan(maxMonetaryAmount) {
		v.AddError("amount", "gift amount exceeds the sanity ceiling")
	}
	switch input.Relation {
	case domain.RelationSpouse, domain.RelationLinealAscendant, domain.RelationLinealDescendant,
		domain.RelationOtherRelative, domain.RelationNonRelative:
	default:
		v.AddError("relation", "unknown donor relation")
	}
	if input.RecipientAge < 0 || input.RecipientAge > 120 {
		v.AddError("recipient_age", "recipient age must be between 0 and 120")
	}
	for _, g := range input.PreviousGifts {
		if g.Amount.LessThan(decimal.Zero) {
			v.AddError("previous_gifts", "prior gift amounts cannot be negative")
			break
		}
		if g.TaxPaid.LessThan(decimal.Zero) {
			v.AddError("previous_gifts", "prior gift tax paid cannot be negative")
			break
		}
		if !input.GiftDate.IsZero() && !g.Date.IsZero() {
			windowStart := input.GiftDate.AddDate(-e.Rates.Gift.AggregationYears, 0, 0)
			if g.Date.Before(windowStart) {
				v.AddWarning("previous_gifts", "a prior gift falls outside the aggregation window; it still counts because the caller supplies the window")
			}
			if g.Date.After(input.GiftDate) {
				v.AddError("previous_gifts", "prior gift dated after the current gift")
				break
			}
		}
	}
	checkAmount(v, "marriage_deduction", input.MarriageDeduction)
	checkAmount(v, "education_deduction", input.EducationDeduction)
	checkAmount(v, "startup_deduction", input.StartupDeduction)
	return v
}

// ValidateVAT checks a VAT input.
func (e *Engine) ValidateVAT(input *domain.VATInput) *domain.ValidationResult {
	v := domain.NewValidationResult()
	if input == nil {
		v.AddError("input", "input is required")
		return v
	}

	checkAmount(v, "annual_sales", input.AnnualSales)
	checkAmount(v, "input_vat", input.InputVAT)
	if _, ok := e.Rates.VAT.Categories[input.Category]; !ok {
		v.AddError("category", "unknown business category")
	}
	if input.InputVAT.GreaterThan(input.AnnualSales) {
		v.AddWarning("input_vat", "input VAT exceeds annual sales")
	}
	return v
}

// ValidateInvestment checks an investment analysis input.
func (e *Engine) ValidateInvestment(input *domain.InvestmentInput) *domain.ValidationResult {
	v := domain.NewValidationResult()
	if input == nil {
		v.AddError("input", "input is required")
		return v
	}

	if input.InitialInvestment.LessThanOrEqual(decimal.Zero) {
		v.AddError("initial_investment", "initial investment must be positive")
	}
	if input.PolicyFundAmount.LessThan(decimal.Zero) {
		v.AddError("policy_fund_amount", "policy fund amount cannot be negative")
	}
	if input.PolicyFundAmount.GreaterThan(input.InitialInvestment) {
		v.AddWarning("policy_fund_amount", "policy fund exceeds the investment; the year-0 outlay clamps to zero")
	}
	if input.AnalysisYears <= 0 || input.AnalysisYears > 50 {
		v.AddError("analysis_years", "analysis years must be between 1 and 50")
	}
	if input.DiscountRate.LessThanOrEqual(decimal.NewFromInt(-100)) {
		v.AddError("discount_rate", "discount rate must exceed -100%")
	}
	if input.InterestRate.LessThan(decimal.Zero) {
		v.AddError("interest_rate", "interest rate cannot be negative")
	}
	if input.LoanYears < 0 {
		v.AddError("loan_years", "loan years cannot be negative")
	}
	if input.GraceYears < 0 || (input.LoanYears > 0 && input.GraceYears >= input.LoanYears) {
		v.AddError("grace_years", "grace years must be shorter than the loan period")
	}
	if input.PolicyFundAmount.GreaterThan(decimal.Zero) && input.LoanYears == 0 {
		v.AddError("loan_years", "loan years are required when a policy fund is drawn")
	}
	if len(input.AnnualRevenue) > 0 {
		if input.AnalysisYears > 0 && len(input.AnnualRevenue) != input.AnalysisYears {
			v.AddError("annual_revenue", "annual revenue length must equal analysis years")
		}
		for _, r := range input.AnnualRevenue {
			if r.LessThan(decimal.Zero) {
				v.AddError("annual_revenue", "revenue entries cannot be negative")
				break
			}
		}
	} else {
		if input.FirstYearRevenue.LessThanOrEqual(decimal.Zero) {
			v.AddError("first_year_revenue", "first year revenue is required when no revenue array is given")
		}
		if input.RevenueGrowthRate.LessThanOrEqual(decimal.NewFromInt(-100)) {
			v.AddError("revenue_growth_rate", "revenue growth rate must exceed -100%")
		}
	}
	if input.OperatingProfitRate.LessThan(decimal.NewFromInt(-100)) || input.OperatingProfitRate.GreaterThan(decimal.NewFromInt(100)) {
		v.AddError("operating_profit_rate", "operating profit rate must be between -100% and 100%")
	} else if input.OperatingProfitRate.LessThan(decimal.Zero) {
		v.AddWarning("operating_profit_rate", "negative operating profit rate; the projection will not recover the outlay")
	}
	if input.TaxRate.LessThan(decimal.Zero) || input.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		v.AddError("tax_rate", "tax rate must be between 0% and 100%")
	}
	if input.DepreciationYears < 0 || input.DepreciationYears > 50 {
		v.AddError("depreciation_years", "depreciation years must be between 0 and 50")
	}
	return v
}

func checkAmount(v *domain.ValidationResult, field string, amount decimal.Decimal) {
	if amount.LessThan(decimal.Zero) {
		v.AddError(field, "cannot be negative")
	} else if amount.GreaterThan(maxMonetaryAmount) {
		v.AddError(field, "exceeds the sanity ceiling")
	}
}
