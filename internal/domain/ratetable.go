package domain

import (
	"github.com/shopspring/decimal"
)

// RateTable contains all statutory rates, brackets and thresholds for a
// single tax year. It is loaded from rates_<year>.yaml and merged over the
// built-in defaults; once constructed it must be treated as immutable so
// in-flight calculations always see a consistent snapshot.
type RateTable struct {
	Metadata  RateTableMetadata `yaml:"metadata" json:"metadata"`
	Corporate CorporateRates    `yaml:"corporate" json:"corporate"`
	Gift      GiftRates         `yaml:"gift" json:"gift"`
	VAT       VATRates          `yaml:"vat" json:"vat"`
}

// RateTableMetadata identifies the tax year the table applies to.
type RateTableMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// TaxBracket is one [Min, Max) range of a progressive schedule. Max of zero
// means the bracket is open-ended. CumulativeDeduction is the progressive
// deduction for the closed-form rate*base - deduction computation; the
// bracket walk and the closed form must agree.
type TaxBracket struct {
	Min                 decimal.Decimal `yaml:"min" json:"min"`
	Max                 decimal.Decimal `yaml:"max" json:"max"`
	Rate                decimal.Decimal `yaml:"rate" json:"rate"`
	CumulativeDeduction decimal.Decimal `yaml:"cumulative_deduction" json:"cumulative_deduction"`
}

// Open reports whether the bracket has no upper bound.
func (b TaxBracket) Open() bool {
	return b.Max.IsZero()
}

// CorporateRates contains the corporate income tax schedule plus the
// classification thresholds and credit rates that hang off it.
type CorporateRates struct {
	Brackets             []TaxBracket              `yaml:"brackets" json:"brackets"`
	LocalSurtaxRate      decimal.Decimal           `yaml:"local_surtax_rate" json:"local_surtax_rate"`
	AssetCeiling         decimal.Decimal           `yaml:"asset_ceiling" json:"asset_ceiling"`
	Industries           map[Industry]IndustryRule `yaml:"industries" json:"industries"`
	LossCapRateSmall     decimal.Decimal           `yaml:"loss_cap_rate_small" json:"loss_cap_rate_small"`
	LossCapRateGeneral   decimal.Decimal           `yaml:"loss_cap_rate_general" json:"loss_cap_rate_general"`
	Credits              CorporateCreditRates      `yaml:"credits" json:"credits"`
	StartupReductionRate decimal.Decimal           `yaml:"startup_reduction_rate" json:"startup_reduction_rate"`
}

// IndustryRule holds the small-business classification thresholds for one
// industry. All three criteria (sales, assets, employees) must hold.
type IndustryRule struct {
	SalesThreshold    decimal.Decimal `yaml:"sales_threshold" json:"sales_threshold"`
	EmployeeThreshold int             `yaml:"employee_threshold" json:"employee_threshold"`
}

// CorporateCreditRates contains the named tax credit rates and caps.
// Credits reduce the bracket tax, never the taxable base.
type CorporateCreditRates struct {
	RnDRateSmall             decimal.Decimal `yaml:"rnd_rate_small" json:"rnd_rate_small"`
	RnDRateGeneral           decimal.Decimal `yaml:"rnd_rate_general" json:"rnd_rate_general"`
	RnDCap                   decimal.Decimal `yaml:"rnd_cap" json:"rnd_cap"`
	EquipmentRateSmall       decimal.Decimal `yaml:"equipment_rate_small" json:"equipment_rate_small"`
	EquipmentRateGeneral     decimal.Decimal `yaml:"equipment_rate_general" json:"equipment_rate_general"`
	EquipmentCap             decimal.Decimal `yaml:"equipment_cap" json:"equipment_cap"`
	EmploymentPerHeadSmall   decimal.Decimal `yaml:"employment_per_head_small" json:"employment_per_head_small"`
	EmploymentPerHeadGeneral decimal.Decimal `yaml:"employment_per_head_general" json:"employment_per_head_general"`
	EmploymentCap            decimal.Decimal `yaml:"employment_cap" json:"employment_cap"`
}

// GiftRates contains the gift tax schedule and the deduction amounts that
// apply once per 10-year aggregation window.
type GiftRates struct {
	Brackets               []TaxBracket    `yaml:"brackets" json:"brackets"`
	SpouseDeduction        decimal.Decimal `yaml:"spouse_deduction" json:"spouse_deduction"`
	LinealAdultDeduction   decimal.Decimal `yaml:"lineal_adult_deduction" json:"lineal_adult_deduction"`
	LinealMinorDeduction   decimal.Decimal `yaml:"lineal_minor_deduction" json:"lineal_minor_deduction"`
	OtherRelativeDeduction decimal.Decimal `yaml:"other_relative_deduction" json:"other_relative_deduction"`
	MarriageDeductionCap   decimal.Decimal `yaml:"marriage_deduction_cap" json:"marriage_deduction_cap"`
	EducationDeductionCap  decimal.Decimal `yaml:"education_deduction_cap" json:"education_deduction_cap"`
	StartupDeductionCap    decimal.Decimal `yaml:"startup_deduction_cap" json:"startup_deduction_cap"`
	ReportingCreditRate    decimal.Decimal `yaml:"reporting_credit_rate" json:"reporting_credit_rate"`
	AdultAge               int             `yaml:"adult_age" json:"adult_age"`
	AggregationYears       int             `yaml:"aggregation_years" json:"aggregation_years"`
}

// VATRates contains regime thresholds and the simplified category rates.
type VATRates struct {
	StandardRate       decimal.Decimal                  `yaml:"standard_rate" json:"standard_rate"`
	ExemptionThreshold decimal.Decimal                  `yaml:"exemption_threshold" json:"exemption_threshold"`
	GoodsThreshold     decimal.Decimal                  `yaml:"goods_threshold" json:"goods_threshold"`
	ServicesThreshold  decimal.Decimal                  `yaml:"services_threshold" json:"services_threshold"`
	Categories         map[BusinessCategory]VATCategory `yaml:"categories" json:"categories"`
}

// VATCategory maps a business category to its threshold group and its
// simplified-regime rate (value-added ratio times the standard rate).
type VATCategory struct {
	Group          VATThresholdGroup `yaml:"group" json:"group"`
	SimplifiedRate decimal.Decimal   `yaml:"simplified_rate" json:"simplified_rate"`
}

// VATThresholdGroup selects which simplified-regime turnover threshold
// applies to a category.
type VATThresholdGroup string

const (
	VATGroupGoods    VATThresholdGroup = "goods"
	VATGroupServices VATThresholdGroup = "services"
)

// DefaultRateTable2024 returns the built-in 2024 table. A YAML rate table
// loaded through internal/config overrides it wholesale.
func DefaultRateTable2024() *RateTable {
	return &RateTable{
		Metadata: RateTableMetadata{
			TaxYear:     2024,
			LastUpdated: "2024-01-01",
			Description: "Korean corporate/gift/VAT rates for tax year 2024",
		},
		Corporate: CorporateRates{
			Brackets: []TaxBracket{
				{Min: decimal.Zero, Max: decimal.NewFromInt(200_000_000), Rate: decimal.NewFromFloat(0.09)},
				{Min: decimal.NewFromInt(200_000_000), Max: decimal.NewFromInt(20_000_000_000), Rate: decimal.NewFromFloat(0.19), CumulativeDeduction: decimal.NewFromInt(20_000_000)},
				{Min: decimal.NewFromInt(20_000_000_000), Max: decimal.NewFromInt(300_000_000_000), Rate: decimal.NewFromFloat(0.21), CumulativeDeduction: decimal.NewFromInt(420_000_000)},
				{Min: decimal.NewFromInt(300_000_000_000), Rate: decimal.NewFromFloat(0.24), CumulativeDeduction: decimal.NewFromInt(9_420_000_000)},
			},
			LocalSurtaxRate: decimal.NewFromFloat(0.10),
			AssetCeiling:    decimal.NewFromInt(500_000_000_000),
			Industries: map[Industry]IndustryRule{
				IndustryManufacturing:   {SalesThreshold: decimal.NewFromInt(150_000_000_000), EmployeeThreshold: 300},
				IndustryConstruction:    {SalesThreshold: decimal.NewFromInt(100_000_000_000), EmployeeThreshold: 200},
				IndustryWholesaleRetail: {SalesThreshold: decimal.NewFromInt(100_000_000_000), EmployeeThreshold: 200},
				IndustryServices:        {SalesThreshold: decimal.NewFromInt(60_000_000_000), EmployeeThreshold: 100},
			},
			LossCapRateSmall:   decimal.NewFromFloat(1.0),
			LossCapRateGeneral: decimal.NewFromFloat(0.8),
			Credits: CorporateCreditRates{
				RnDRateSmall:             decimal.NewFromFloat(0.25),
				RnDRateGeneral:           decimal.NewFromFloat(0.08),
				RnDCap:                   decimal.NewFromInt(1_000_000_000),
				EquipmentRateSmall:       decimal.NewFromFloat(0.10),
				EquipmentRateGeneral:     decimal.NewFromFloat(0.01),
				EquipmentCap:             decimal.NewFromInt(500_000_000),
				EmploymentPerHeadSmall:   decimal.NewFromInt(7_000_000),
				EmploymentPerHeadGeneral: decimal.NewFromInt(4_000_000),
				EmploymentCap:            decimal.NewFromInt(200_000_000),
			},
			StartupReductionRate: decimal.NewFromFloat(0.50),
		},
		Gift: GiftRates{
			Brackets: []TaxBracket{
				{Min: decimal.Zero, Max: decimal.NewFromInt(100_000_000), Rate: decimal.NewFromFloat(0.10)},
				{Min: decimal.NewFromInt(100_000_000), Max: decimal.NewFromInt(500_000_000), Rate: decimal.NewFromFloat(0.20), CumulativeDeduction: decimal.NewFromInt(10_000_000)},
				{Min: decimal.NewFromInt(500_000_000), Max: decimal.NewFromInt(1_000_000_000), Rate: decimal.NewFromFloat(0.30), CumulativeDeduction: decimal.NewFromInt(60_000_000)},
				{Min: decimal.NewFromInt(1_000_000_000), Max: decimal.NewFromInt(3_000_000_000), Rate: decimal.NewFromFloat(0.40), CumulativeDeduction: decimal.NewFromInt(160_000_000)},
				{Min: decimal.NewFromInt(3_000_000_000), Rate: decimal.NewFromFloat(0.50), CumulativeDeduction: decimal.NewFromInt(460_000_000)},
			},
			SpouseDeduction:        decimal.NewFromInt(600_000_000),
			LinealAdultDeduction:   decimal.NewFromInt(50_000_000),
			LinealMinorDeduction:   decimal.NewFromInt(20_000_000),
			OtherRelativeDeduction: decimal.NewFromInt(10_000_000),
			MarriageDeductionCap:   decimal.NewFromInt(100_000_000),
			EducationDeductionCap:  decimal.NewFromInt(30_000_000),
			StartupDeductionCap:    decimal.NewFromInt(500_000_000),
			ReportingCreditRate:    decimal.NewFromFloat(0.03),
			AdultAge:               19,
			AggregationYears:       10,
		},
		VAT: VATRates{
			StandardRate:       decimal.NewFromFloat(0.10),
			ExemptionThreshold: decimal.NewFromInt(30_000_000),
			GoodsThreshold:     decimal.NewFromInt(80_000_000),
			ServicesThreshold:  decimal.NewFromInt(40_000_000),
			Categories: map[BusinessCategory]VATCategory{
				CategoryRetail:        {Group: VATGroupGoods, SimplifiedRate: decimal.NewFromFloat(0.015)},
				CategoryManufacturing: {Group: VATGroupGoods, SimplifiedRate: decimal.NewFromFloat(0.02)},
				CategoryFoodService:   {Group: VATGroupServices, SimplifiedRate: decimal.NewFromFloat(0.015)},
				CategoryServices:      {Group: VATGroupServices, SimplifiedRate: decimal.NewFromFloat(0.03)},
				CategoryConstruction:  {Group: VATGroupServices, SimplifiedRate: decimal.NewFromFloat(0.03)},
				CategoryTransport:     {Group: VATGroupServices, SimplifiedRate: decimal.NewFromFloat(0.03)},
			},
		},
	}
}
