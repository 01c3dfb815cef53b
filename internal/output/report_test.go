package output

import (
	"encoding/json"
	"testing"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatKRW(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "₩0"},
		{"999", "₩999"},
		{"1000", "₩1,000"},
		{"12345678", "₩12,345,678"},
		{"19800000", "₩19,800,000"},
		{"-500000000", "-₩500,000,000"},
		{"1234567.89", "₩1,234,568"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		require.NoError(t, err)
		assert.Equal(t, tc.want, FormatKRW(amount), "input %s", tc.amount)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "9.25%", FormatPercent(decimal.NewFromFloat(0.0925)))
	assert.Equal(t, "10.00%", FormatPercent(decimal.NewFromFloat(0.1)))
	assert.Equal(t, "-20.77%", FormatPercent(decimal.NewFromFloat(-0.2077)))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "8.00%", FormatRate(decimal.NewFromInt(8)))
	assert.Equal(t, "-39.16%", FormatRate(decimal.NewFromFloat(-39.16)))
}

func TestGetFormatterByName(t *testing.T) {
	require.NotNil(t, GetFormatterByName("console"))
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	require.NotNil(t, GetFormatterByName("json"))
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestJSONFormatter_RoundTripsResult(t *testing.T) {
	result := &domain.VATResult{
		Regime:        domain.RegimeGeneral,
		CalculatedTax: decimal.NewFromInt(30_000_000),
		Payable:       decimal.NewFromInt(18_000_000),
	}

	data, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "general", decoded["regime"])
	assert.Equal(t, "18000000", decoded["payable"])
}

func TestConsoleFormatter_CorporateReport(t *testing.T) {
	result := &domain.CorporateTaxResult{
		TaxableAmount:  decimal.NewFromInt(200_000_000),
		CalculatedTax:  decimal.NewFromInt(18_000_000),
		NationalTax:    decimal.NewFromInt(18_000_000),
		LocalIncomeTax: decimal.NewFromInt(1_800_000),
		TotalTax:       decimal.NewFromInt(19_800_000),
		EffectiveRate:  decimal.NewFromFloat(0.099),
		Breakdown: []domain.CalculationStep{
			{Label: "taxable income", Amount: decimal.NewFromInt(200_000_000)},
		},
		Warnings: map[string]string{"expenses": "operating cost exceeds twice the revenue"},
	}

	data, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "CORPORATE TAX")
	assert.Contains(t, report, "₩19,800,000")
	assert.Contains(t, report, "9.90%")
	assert.Contains(t, report, "BREAKDOWN")
	assert.Contains(t, report, "taxable income")
	assert.Contains(t, report, "warning [expenses]")
}

func TestConsoleFormatter_InvestmentPaybackSentinel(t *testing.T) {
	result := &domain.InvestmentResult{
		NPV:          decimal.NewFromInt(-239_712_696),
		IRR:          decimal.NewFromFloat(-0.2077),
		PaybackYears: domain.PaybackNotReached,
		CashFlows: []domain.YearCashFlow{
			{Year: 0, NetCashFlow: decimal.NewFromInt(-500_000_000)},
			{Year: 1, Revenue: decimal.NewFromInt(600_000_000), NetCashFlow: decimal.NewFromInt(93_600_000)},
		},
	}

	data, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "not reached within the horizon")
	assert.Contains(t, report, "-₩500,000,000")
	assert.Contains(t, report, "CASH FLOWS")
	assert.NotContains(t, report, "Minimum DSCR", "no debt means the DSCR row is omitted")
}

func TestConsoleFormatter_ScenarioTable(t *testing.T) {
	appraisal := func(npv int64, payback int) *domain.InvestmentResult {
		return &domain.InvestmentResult{
			NPV:          decimal.NewFromInt(npv),
			PaybackYears: payback,
		}
	}
	set := &domain.ScenarioSet{
		Pessimistic: appraisal(-100_000_000, domain.PaybackNotReached),
		Neutral:     appraisal(50_000_000, 4),
		Optimistic:  appraisal(200_000_000, 3),
	}

	data, err := ConsoleFormatter{}.Format(set)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "pessimistic")
	assert.Contains(t, report, "optimistic")
	assert.Contains(t, report, "never")
	assert.Contains(t, report, "4y")
}

func TestConsoleFormatter_ScenarioWarningsSurvive(t *testing.T) {
	appraisal := func() *domain.InvestmentResult {
		return &domain.InvestmentResult{NPV: decimal.NewFromInt(50_000_000)}
	}
	set := &domain.ScenarioSet{
		Pessimistic: appraisal(),
		Neutral:     appraisal(),
		Optimistic:  appraisal(),
	}
	set.Neutral.Warnings = map[string]string{
		"policy_fund_amount": "policy fund exceeds the investment; the year-0 outlay clamps to zero",
	}

	data, err := ConsoleFormatter{}.Format(set)
	require.NoError(t, err)

	assert.Contains(t, string(data), "warning [policy_fund_amount]",
		"advisory warnings must not vanish in scenario mode")
}

func TestConsoleFormatter_ValidationReport(t *testing.T) {
	v := domain.NewValidationResult()
	v.AddError("revenue", "cannot be negative")
	v.AddWarning("input_vat", "input VAT exceeds annual sales")

	data, err := ConsoleFormatter{}.Format(v)
	require.NoError(t, err)
	report := string(data)

	assert.Contains(t, report, "VALIDATION")
	assert.Contains(t, report, "error [revenue]")
	assert.Contains(t, report, "warning [input_vat]")
}

func TestConsoleFormatter_UnsupportedType(t *testing.T) {
	_, err := ConsoleFormatter{}.Format(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported result type")
}
