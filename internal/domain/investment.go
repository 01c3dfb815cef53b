package domain

import (
	"github.com/shopspring/decimal"
)

// InvestmentInput drives the cash-flow projection. Rates are percentages
// (8 means 8%). Either AnnualRevenue covers AnalysisYears, or it is empty
// and revenue compounds from FirstYearRevenue at RevenueGrowthRate; an
// explicit array equal to the geometric sequence produces identical output.
type InvestmentInput struct {
	InitialInvestment   decimal.Decimal   `yaml:"initial_investment" json:"initial_investment"`
	PolicyFundAmount    decimal.Decimal   `yaml:"policy_fund_amount" json:"policy_fund_amount"`
	InterestRate        decimal.Decimal   `yaml:"interest_rate" json:"interest_rate"`
	LoanYears           int               `yaml:"loan_years" json:"loan_years"`
	GraceYears          int               `yaml:"grace_years" json:"grace_years"`
	DiscountRate        decimal.Decimal   `yaml:"discount_rate" json:"discount_rate"`
	AnalysisYears       int               `yaml:"analysis_years" json:"analysis_years"`
	AnnualRevenue       []decimal.Decimal `yaml:"annual_revenue" json:"annual_revenue"`
	FirstYearRevenue    decimal.Decimal   `yaml:"first_year_revenue" json:"first_year_revenue"`
	RevenueGrowthRate   decimal.Decimal   `yaml:"revenue_growth_rate" json:"revenue_growth_rate"`
	OperatingProfitRate decimal.Decimal   `yaml:"operating_profit_rate" json:"operating_profit_rate"`
	TaxRate             decimal.Decimal   `yaml:"tax_rate" json:"tax_rate"`
	DepreciationYears   int               `yaml:"depreciation_years" json:"depreciation_years"`
}

// YearCashFlow is one row of the projection. Year 0 carries the initial
// outlay in NetCashFlow and nothing else.
type YearCashFlow struct {
	Year            int             `json:"year"`
	Revenue         decimal.Decimal `json:"revenue"`
	OperatingProfit decimal.Decimal `json:"operating_profit"`
	Depreciation    decimal.Decimal `json:"depreciation"`
	Tax             decimal.Decimal `json:"tax"`
	DebtService     decimal.Decimal `json:"debt_service"`
	NetCashFlow     decimal.Decimal `json:"net_cash_flow"`
	Cumulative      decimal.Decimal `json:"cumulative"`
}

// PaybackNotReached is the sentinel for a horizon whose cumulative cash
// flow never turns non-negative.
const PaybackNotReached = -1

// InvestmentResult bundles the appraisal metrics.
//
// IRR is clamped to [-0.99, 9.99] and set to zero when the cash-flow vector
// has no sign change. PaybackYears and DiscountedPaybackYears are whole
// years, PaybackNotReached when never recovered. BreakEvenYear is the first
// year whose cumulative operating surplus (net flows excluding the year-0
// outlay) turns positive, PaybackNotReached when it never does. DSCR entries
// are zero in years with no debt service and those years are excluded from
// MinDSCR.
type InvestmentResult struct {
	NPV                    decimal.Decimal   `json:"npv"`
	IRR                    decimal.Decimal   `json:"irr"`
	ROI                    decimal.Decimal   `json:"roi"`
	PaybackYears           int               `json:"payback_years"`
	DiscountedPaybackYears int               `json:"discounted_payback_years"`
	BreakEvenYear          int               `json:"break_even_year"`
	DSCR                   []decimal.Decimal `json:"dscr"`
	MinDSCR                decimal.Decimal   `json:"min_dscr"`
	ProfitabilityIndex     decimal.Decimal   `json:"profitability_index"`
	CashFlows              []YearCashFlow    `json:"cash_flows"`
	Warnings               map[string]string `json:"warnings,omitempty"`
}

// ScenarioSet holds three full appraisals derived from the same projection
// logic with a revenue multiplier applied. Neutral with a 0% adjustment is
// bit-identical to the base appraisal.
type ScenarioSet struct {
	Pessimistic *InvestmentResult `json:"pessimistic"`
	Neutral     *InvestmentResult `json:"neutral"`
	Optimistic  *InvestmentResult `json:"optimistic"`
}

// ScenarioAdjustments overrides the default revenue adjustments, in
// percentage points (-20 means revenue times 0.8).
type ScenarioAdjustments struct {
	PessimisticPct decimal.Decimal `yaml:"pessimistic_pct" json:"pessimistic_pct"`
	NeutralPct     decimal.Decimal `yaml:"neutral_pct" json:"neutral_pct"`
	OptimisticPct  decimal.Decimal `yaml:"optimistic_pct" json:"optimistic_pct"`
}

// SensitivityParameter names a swept input of the investment pipeline.
type SensitivityParameter string

const (
	ParamDiscountRate      SensitivityParameter = "discount_rate"
	ParamInterestRate      SensitivityParameter = "interest_rate"
	ParamOperatingProfit   SensitivityParameter = "operating_profit_rate"
	ParamRevenueGrowthRate SensitivityParameter = "revenue_growth_rate"
)

// SensitivityPoint is one sweep evaluation.
type SensitivityPoint struct {
	Value decimal.Decimal `json:"value"`
	NPV   decimal.Decimal `json:"npv"`
	IRR   decimal.Decimal `json:"irr"`
}

// SensitivityAnalysis is the sweep result for a single parameter.
// Magnitude is (max-min)/|max| over the swept NPVs; RiskLevel flags
// high-variance parameters for the report layer.
type SensitivityAnalysis struct {
	Parameter SensitivityParameter `json:"parameter"`
	BaseValue decimal.Decimal      `json:"base_value"`
	Points    []SensitivityPoint   `json:"points"`
	Magnitude decimal.Decimal      `json:"magnitude"`
	RiskLevel string               `json:"risk_level"`
}
