package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile_ShippedTableMatchesDefaults(t *testing.T) {
	parser := NewRateTableParser()

	table, err := parser.LoadFromFile("../../data/rates_2024.yaml")
	require.NoError(t, err, "the shipped table must load and validate")

	defaults := domain.DefaultRateTable2024()
	assert.Equal(t, defaults.Metadata.TaxYear, table.Metadata.TaxYear)

	require.Len(t, table.Corporate.Brackets, len(defaults.Corporate.Brackets))
	for i, b := range table.Corporate.Brackets {
		assert.True(t, b.Rate.Equal(defaults.Corporate.Brackets[i].Rate),
			"corporate bracket %d rate", i)
		assert.True(t, b.CumulativeDeduction.Equal(defaults.Corporate.Brackets[i].CumulativeDeduction),
			"corporate bracket %d cumulative deduction", i)
	}
	assert.True(t, table.Gift.SpouseDeduction.Equal(defaults.Gift.SpouseDeduction))
	assert.True(t, table.VAT.StandardRate.Equal(defaults.VAT.StandardRate))
	assert.Equal(t, defaults.Gift.AdultAge, table.Gift.AdultAge)
	assert.Len(t, table.VAT.Categories, len(defaults.VAT.Categories))
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	parser := NewRateTableParser()
	_, err := parser.LoadFromFile("no-such-file.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_MalformedYAML(t *testing.T) {
	parser := NewRateTableParser()
	path := writeTempYAML(t, "corporate: [not, a, mapping")

	_, err := parser.LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateRateTable_Defaults(t *testing.T) {
	parser := NewRateTableParser()
	assert.NoError(t, parser.ValidateRateTable(domain.DefaultRateTable2024()))
}

func TestValidateRateTable_Rejections(t *testing.T) {
	parser := NewRateTableParser()

	cases := []struct {
		name    string
		mutate  func(*domain.RateTable)
		message string
	}{
		{
			"tax year out of range",
			func(tb *domain.RateTable) { tb.Metadata.TaxYear = 1999 },
			"tax year",
		},
		{
			"no corporate brackets",
			func(tb *domain.RateTable) { tb.Corporate.Brackets = nil },
			"corporate brackets are required",
		},
		{
			"first bracket not at zero",
			func(tb *domain.RateTable) { tb.Gift.Brackets[0].Min = decimal.NewFromInt(1) },
			"must start at zero",
		},
		{
			"rate above one",
			func(tb *domain.RateTable) { tb.Corporate.Brackets[1].Rate = decimal.NewFromInt(2) },
			"rate must be between 0 and 1",
		},
		{
			"gap between brackets",
			func(tb *domain.RateTable) { tb.Gift.Brackets[1].Min = decimal.NewFromInt(150_000_000) },
			"not contiguous",
		},
		{
			"closed last bracket",
			func(tb *domain.RateTable) {
				tb.Corporate.Brackets[len(tb.Corporate.Brackets)-1].Max = decimal.NewFromInt(999_000_000_000)
			},
			"last bracket must be open-ended",
		},
		{
			"open middle bracket",
			func(tb *domain.RateTable) { tb.Gift.Brackets[1].Max = decimal.Zero },
			"must have an upper bound",
		},
		{
			"no industries",
			func(tb *domain.RateTable) { tb.Corporate.Industries = nil },
			"industry thresholds are required",
		},
		{
			"negative spouse deduction",
			func(tb *domain.RateTable) { tb.Gift.SpouseDeduction = decimal.NewFromInt(-1) },
			"spouse_deduction cannot be negative",
		},
		{
			"zero adult age",
			func(tb *domain.RateTable) { tb.Gift.AdultAge = 0 },
			"adult age must be positive",
		},
		{
			"goods threshold below exemption",
			func(tb *domain.RateTable) { tb.VAT.GoodsThreshold = decimal.NewFromInt(10_000_000) },
			"goods threshold must exceed",
		},
		{
			"unknown threshold group",
			func(tb *domain.RateTable) {
				tb.VAT.Categories[domain.CategoryRetail] = domain.VATCategory{
					Group:          domain.VATThresholdGroup("luxury"),
					SimplifiedRate: decimal.NewFromFloat(0.015),
				}
			},
			"unknown threshold group",
		},
		{
			"simplified rate above standard",
			func(tb *domain.RateTable) {
				tb.VAT.Categories[domain.CategoryRetail] = domain.VATCategory{
					Group:          domain.VATGroupGoods,
					SimplifiedRate: decimal.NewFromFloat(0.5),
				}
			},
			"simplified rate must be between",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := domain.DefaultRateTable2024()
			tc.mutate(table)
			err := parser.ValidateRateTable(table)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoadInputFile(t *testing.T) {
	path := writeTempYAML(t, `
amount: 80000000
relation: lineal_ascendant
recipient_age: 35
filed_on_time: true
previous_gifts:
  - amount: 30000000
    tax_paid: 0
`)

	var input domain.GiftTaxInput
	require.NoError(t, LoadInputFile(path, &input))

	assert.True(t, input.Amount.Equal(decimal.NewFromInt(80_000_000)))
	assert.Equal(t, domain.RelationLinealAscendant, input.Relation)
	assert.Equal(t, 35, input.RecipientAge)
	assert.True(t, input.FiledOnTime)
	require.Len(t, input.PreviousGifts, 1)
	assert.True(t, input.PreviousGifts[0].Amount.Equal(decimal.NewFromInt(30_000_000)))
}

func TestLoadInputFile_Malformed(t *testing.T) {
	path := writeTempYAML(t, "amount: [")
	var input domain.GiftTaxInput
	err := LoadInputFile(path, &input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
