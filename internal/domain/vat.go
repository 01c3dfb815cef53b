package domain

import (
	"github.com/shopspring/decimal"
)

// BusinessCategory classifies turnover for VAT regime selection and the
// simplified-regime value-added rate.
type BusinessCategory string

const (
	CategoryRetail        BusinessCategory = "retail"
	CategoryManufacturing BusinessCategory = "manufacturing"
	CategoryFoodService   BusinessCategory = "food_service"
	CategoryServices      BusinessCategory = "services"
	CategoryConstruction  BusinessCategory = "construction"
	CategoryTransport     BusinessCategory = "transport"
)

// VATRegime is the taxation regime a business falls under.
type VATRegime string

const (
	RegimeGeneral    VATRegime = "general"
	RegimeSimplified VATRegime = "simplified"
	RegimeExempt     VATRegime = "exempt"
)

// VATInput is the canonical VAT input record. InputVAT is the creditable
// input tax actually borne during the period.
type VATInput struct {
	AnnualSales decimal.Decimal  `yaml:"annual_sales" json:"annual_sales"`
	InputVAT    decimal.Decimal  `yaml:"input_vat" json:"input_vat"`
	Category    BusinessCategory `yaml:"category" json:"category"`
}

// VATResult is the VAT position for the period. At most one of Payable and
// Refundable is positive; under the simplified regime Refundable is always
// zero (the input credit is capped at the calculated tax, never refunded).
type VATResult struct {
	Regime        VATRegime         `json:"regime"`
	OutputVAT     decimal.Decimal   `json:"output_vat"`
	CalculatedTax decimal.Decimal   `json:"calculated_tax"`
	InputCredit   decimal.Decimal   `json:"input_credit"`
	Payable       decimal.Decimal   `json:"payable"`
	Refundable    decimal.Decimal   `json:"refundable"`
	AppliedRate   decimal.Decimal   `json:"applied_rate"`
	Breakdown     []CalculationStep `json:"breakdown"`
	Warnings      map[string]string `json:"warnings,omitempty"`
}
