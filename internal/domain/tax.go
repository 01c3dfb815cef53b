package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Industry classifies a company for the small-business thresholds.
type Industry string

const (
	IndustryManufacturing   Industry = "manufacturing"
	IndustryConstruction    Industry = "construction"
	IndustryWholesaleRetail Industry = "wholesale_retail"
	IndustryServices        Industry = "services"
)

// CorporateTaxInput is the canonical corporate tax input record. It is
// produced once by the validator; calculators never branch on alternate
// spellings or fall back on missing fields.
type CorporateTaxInput struct {
	Revenue          decimal.Decimal `yaml:"revenue" json:"revenue"`
	Expenses         decimal.Decimal `yaml:"expenses" json:"expenses"`
	CarryForwardLoss decimal.Decimal `yaml:"carry_forward_loss" json:"carry_forward_loss"`
	TotalAssets      decimal.Decimal `yaml:"total_assets" json:"total_assets"`
	Employees        int             `yaml:"employees" json:"employees"`
	Industry         Industry        `yaml:"industry" json:"industry"`
	EstablishedDate  time.Time       `yaml:"established_date" json:"established_date"`
	IsStartup        bool            `yaml:"is_startup" json:"is_startup"`

	PriorYearTax        decimal.Decimal `yaml:"prior_year_tax" json:"prior_year_tax"`
	ForeignTaxPaid      decimal.Decimal `yaml:"foreign_tax_paid" json:"foreign_tax_paid"`
	RnDSpending         decimal.Decimal `yaml:"rnd_spending" json:"rnd_spending"`
	EquipmentInvestment decimal.Decimal `yaml:"equipment_investment" json:"equipment_investment"`
	EmployeeIncrease    int             `yaml:"employee_increase" json:"employee_increase"`
}

// CalculationStep is one named line of the audit trail. The report layer
// renders breakdown steps in order; the engine never reorders them.
type CalculationStep struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// AppliedCredit is a tax credit that was actually applied, after its cap.
type AppliedCredit struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Cap       decimal.Decimal `json:"cap"`
	Rationale string          `json:"rationale,omitempty"`
}

// DeductionResult is a deduction that reduced a taxable base.
// Amount never exceeds Cap.
type DeductionResult struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Cap       decimal.Decimal `json:"cap"`
	Rationale string          `json:"rationale,omitempty"`
}

// CorporateTaxResult is the full corporate liability. TotalTax is never
// negative; credits are capped at the pre-credit bracket tax.
type CorporateTaxResult struct {
	TaxableAmount   decimal.Decimal   `json:"taxable_amount"`
	CalculatedTax   decimal.Decimal   `json:"calculated_tax"` // bracket tax before credits
	Credits         []AppliedCredit   `json:"credits"`
	TotalCredits    decimal.Decimal   `json:"total_credits"`
	NationalTax     decimal.Decimal   `json:"national_tax"`
	LocalIncomeTax  decimal.Decimal   `json:"local_income_tax"`
	TotalTax        decimal.Decimal   `json:"total_tax"`
	EffectiveRate   decimal.Decimal   `json:"effective_rate"`
	IsSmallBusiness bool              `json:"is_small_business"`
	AppliedRates    []decimal.Decimal `json:"applied_rates"`
	Breakdown       []CalculationStep `json:"breakdown"`
	Warnings        map[string]string `json:"warnings,omitempty"`
}
