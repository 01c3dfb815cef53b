package config

import (
	"fmt"
	"os"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// RateTableParser handles loading and validating versioned rate tables.
type RateTableParser struct{}

// NewRateTableParser creates a new rate table parser.
func NewRateTableParser() *RateTableParser {
	return &RateTableParser{}
}

// LoadFromFile loads a rate table from a YAML file and validates it.
func (rp *RateTableParser) LoadFromFile(filename string) (*domain.RateTable, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var table domain.RateTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := rp.ValidateRateTable(&table); err != nil {
		return nil, fmt.Errorf("rate table validation failed: %w", err)
	}

	return &table, nil
}

// ValidateRateTable checks the structural invariants the calculators rely
// on. A table failing here is a configuration fault, not business data.
func (rp *RateTableParser) ValidateRateTable(table *domain.RateTable) error {
	if table.Metadata.TaxYear < 2000 || table.Metadata.TaxYear > 2100 {
		return fmt.Errorf("tax year %d out of range", table.Metadata.TaxYear)
	}
	if err := rp.validateBrackets("corporate", table.Corporate.Brackets); err != nil {
		return err
	}
	if err := rp.validateBrackets("gift", table.Gift.Brackets); err != nil {
		return err
	}
	if err := rp.validateCorporate(&table.Corporate); err != nil {
		return err
	}
	if err := rp.validateGift(&table.Gift); err != nil {
		return err
	}
	if err := rp.validateVAT(&table.VAT); err != nil {
		return err
	}
	return nil
}

// validateBrackets enforces strictly ascending, contiguous ranges with
// rates in [0,1] and an open-ended last bracket.
func (rp *RateTableParser) validateBrackets(name string, brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("%s brackets are required", name)
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("%s brackets must start at zero", name)
	}
	for i, b := range brackets {
		if b.Rate.LessThan(decimal.Zero) || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s bracket %d rate must be between 0 and 1", name, i)
		}
		if b.CumulativeDeduction.LessThan(decimal.Zero) {
			return fmt.Errorf("%s bracket %d cumulative deduction cannot be negative", name, i)
		}
		last := i == len(brackets)-1
		if last {
			if !b.Open() {
				return fmt.Errorf("%s last bracket must be open-ended", name)
			}
			continue
		}
		if b.Open() {
			return fmt.Errorf("%s bracket %d must have an upper bound", name, i)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("%s bracket %d max must exceed min", name, i)
		}
		if !brackets[i+1].Min.Equal(b.Max) {
			return fmt.Errorf("%s bracket %d is not contiguous with bracket %d", name, i, i+1)
		}
	}
	return nil
}

func (rp *RateTableParser) validateCorporate(c *domain.CorporateRates) error {
	if c.LocalSurtaxRate.LessThan(decimal.Zero) || c.LocalSurtaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("corporate local surtax rate must be between 0 and 1")
	}
	if c.AssetCeiling.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("corporate asset ceiling must be positive")
	}
	if len(c.Industries) == 0 {
		return fmt.Errorf("corporate industry thresholds are required")
	}
	for industry, rule := range c.Industries {
		if rule.SalesThreshold.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("industry %s sales threshold must be positive", industry)
		}
		if rule.EmployeeThreshold <= 0 {
			return fmt.Errorf("industry %s employee threshold must be positive", industry)
		}
	}
	return nil
}

func (rp *RateTableParser) validateGift(g *domain.GiftRates) error {
	if g.AdultAge <= 0 {
		return fmt.Errorf("gift adult age must be positive")
	}
	if g.AggregationYears <= 0 {
		return fmt.Errorf("gift aggregation years must be positive")
	}
	for name, amount := range map[string]decimal.Decimal{
		"spouse_deduction":         g.SpouseDeduction,
		"lineal_adult_deduction":   g.LinealAdultDeduction,
		"lineal_minor_deduction":   g.LinealMinorDeduction,
		"other_relative_deduction": g.OtherRelativeDeduction,
	} {
		if amount.LessThan(decimal.Zero) {
			return fmt.Errorf("gift %s cannot be negative", name)
		}
	}
	return nil
}

func (rp *RateTableParser) validateVAT(v *domain.VATRates) error {
	if v.StandardRate.LessThanOrEqual(decimal.Zero) || v.StandardRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("vat standard rate must be between 0 and 1")
	}
	if v.ExemptionThreshold.LessThan(decimal.Zero) {
		return fmt.Errorf("vat exemption threshold cannot be negative")
	}
	if v.GoodsThreshold.LessThanOrEqual(v.ExemptionThreshold) {
		return fmt.Errorf("vat goods threshold must exceed the exemption threshold")
	}
	if v.ServicesThreshold.LessThanOrEqual(v.ExemptionThreshold) {
		return fmt.Errorf("vat services threshold must exceed the exemption threshold")
	}
	if len(v.Categories) == 0 {
		return fmt.Errorf("vat categories are required")
	}
	for category, c := range v.Categories {
		if c.Group != domain.VATGroupGoods && c.Group != domain.VATGroupServices {
			return fmt.Errorf("vat category %s has unknown threshold group %q", category, c.Group)
		}
		if c.SimplifiedRate.LessThan(decimal.Zero) || c.SimplifiedRate.GreaterThan(v.StandardRate) {
			return fmt.Errorf("vat category %s simplified rate must be between 0 and the standard rate", category)
		}
	}
	return nil
}

// LoadInputFile decodes a YAML input file into the given input struct.
// Used by the CLI commands; the engine itself only sees decoded records.
func LoadInputFile(filename string, out interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}
