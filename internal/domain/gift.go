package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GiftRelation is the donor's relationship to the recipient. The relation
// selects the base deduction that applies once per 10-year window.
type GiftRelation string

const (
	RelationSpouse           GiftRelation = "spouse"
	RelationLinealAscendant  GiftRelation = "lineal_ascendant"  // parent or grandparent giving downward
	RelationLinealDescendant GiftRelation = "lineal_descendant" // child giving upward
	RelationOtherRelative    GiftRelation = "other_relative"
	RelationNonRelative      GiftRelation = "non_relative"
)

// GiftRecord is a prior gift inside the aggregation window. The caller
// supplies these already filtered to the 10-year window; the engine does
// not look up history itself.
type GiftRecord struct {
	Date    time.Time       `yaml:"date" json:"date"`
	Amount  decimal.Decimal `yaml:"amount" json:"amount"`
	TaxPaid decimal.Decimal `yaml:"tax_paid" json:"tax_paid"`
}

// GiftTaxInput is the canonical gift tax input record.
type GiftTaxInput struct {
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	Relation      GiftRelation    `yaml:"relation" json:"relation"`
	RecipientAge  int             `yaml:"recipient_age" json:"recipient_age"`
	GiftDate      time.Time       `yaml:"gift_date" json:"gift_date"`
	PreviousGifts []GiftRecord    `yaml:"previous_gifts" json:"previous_gifts"`

	MarriageDeduction  decimal.Decimal `yaml:"marriage_deduction" json:"marriage_deduction"`
	EducationDeduction decimal.Decimal `yaml:"education_deduction" json:"education_deduction"`
	StartupDeduction   decimal.Decimal `yaml:"startup_deduction" json:"startup_deduction"`
	FiledOnTime        bool            `yaml:"filed_on_time" json:"filed_on_time"`
}

// CumulativeTaxationResult captures the 10-year aggregation arithmetic.
// Invariant: CurrentTaxDue = max(0, CumulativeTax - PreviousTaxPaid).
type CumulativeTaxationResult struct {
	CurrentGift     decimal.Decimal `json:"current_gift"`
	PreviousGifts   decimal.Decimal `json:"previous_gifts"`
	TotalGifts      decimal.Decimal `json:"total_gifts"`
	PreviousTaxPaid decimal.Decimal `json:"previous_tax_paid"`
	CumulativeTax   decimal.Decimal `json:"cumulative_tax"`
	CurrentTaxDue   decimal.Decimal `json:"current_tax_due"`
}

// GiftTaxResult is the full gift tax liability. TotalTax is never negative;
// a deduction surplus clamps the taxable base to zero, it is not a refund.
type GiftTaxResult struct {
	TaxableAmount   decimal.Decimal          `json:"taxable_amount"`
	Deductions      []DeductionResult        `json:"deductions"`
	TotalDeductions decimal.Decimal          `json:"total_deductions"`
	CalculatedTax   decimal.Decimal          `json:"calculated_tax"` // tax on the aggregate base
	ReportingCredit decimal.Decimal          `json:"reporting_credit"`
	TotalTax        decimal.Decimal          `json:"total_tax"`
	Cumulative      CumulativeTaxationResult `json:"cumulative"`
	AppliedRates    []decimal.Decimal        `json:"applied_rates"`
	Breakdown       []CalculationStep        `json:"breakdown"`
	Warnings        map[string]string        `json:"warnings,omitempty"`
}
