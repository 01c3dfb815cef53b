package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kobiz/taxcalc/internal/domain"
)

// Formatter renders a result object into report bytes.
type Formatter interface {
	Name() string
	Format(result any) ([]byte, error)
}

// GetFormatterByName returns the formatter for a --format value, nil for
// unknown names.
func GetFormatterByName(name string) Formatter {
	switch name {
	case "console":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	default:
		return nil
	}
}

// JSONFormatter marshals any result object as indented JSON.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) Format(result any) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Width(28)
	noteStyle   = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// ConsoleFormatter renders a human-readable report with the breakdown
// audit trail, line by line in calculation order.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result any) ([]byte, error) {
	var b strings.Builder
	switch r := result.(type) {
	case *domain.CorporateTaxResult:
		renderCorporate(&b, r)
	case *domain.GiftTaxResult:
		renderGift(&b, r)
	case *domain.VATResult:
		renderVAT(&b, r)
	case *domain.InvestmentResult:
		renderInvestment(&b, r)
	case *domain.ScenarioSet:
		renderScenarios(&b, r)
	case *domain.SensitivityAnalysis:
		renderSensitivity(&b, r)
	case *domain.ValidationResult:
		renderValidation(&b, r)
	default:
		return nil, fmt.Errorf("unsupported result type %T", result)
	}
	return []byte(b.String()), nil
}

func header(b *strings.Builder, title string) {
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(title)))
	b.WriteString("\n")
}

func line(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteString("\n")
}

func renderBreakdown(b *strings.Builder, steps []domain.CalculationStep) {
	if len(steps) == 0 {
		return
	}
	b.WriteString("\nBREAKDOWN\n")
	for _, step := range steps {
		row := fmt.Sprintf("  %-26s %16s", step.Label, FormatKRW(step.Amount))
		if step.Note != "" {
			row += "  " + noteStyle.Render(step.Note)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
}

func renderWarnings(b *strings.Builder, warnings map[string]string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n")
	for field, msg := range warnings {
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning [%s]: %s", field, msg)))
		b.WriteString("\n")
	}
}

func renderCorporate(b *strings.Builder, r *domain.CorporateTaxResult) {
	header(b, "CORPORATE TAX")
	line(b, "Taxable amount:", FormatKRW(r.TaxableAmount))
	line(b, "Bracket tax:", FormatKRW(r.CalculatedTax))
	for _, c := range r.Credits {
		line(b, "Credit ("+c.Name+"):", "-"+FormatKRW(c.Amount))
	}
	line(b, "National tax:", FormatKRW(r.NationalTax))
	line(b, "Local income tax:", FormatKRW(r.LocalIncomeTax))
	line(b, "Total tax:", FormatKRW(r.TotalTax))
	line(b, "Effective rate:", FormatPercent(r.EffectiveRate))
	line(b, "Small business:", fmt.Sprintf("%v", r.IsSmallBusiness))
	renderBreakdown(b, r.Breakdown)
	renderWarnings(b, r.Warnings)
}

func renderGift(b *strings.Builder, r *domain.GiftTaxResult) {
	header(b, "GIFT TAX")
	line(b, "Aggregate gifts:", FormatKRW(r.Cumulative.TotalGifts))
	line(b, "Total deductions:", FormatKRW(r.TotalDeductions))
	line(b, "Taxable gift:", FormatKRW(r.TaxableAmount))
	line(b, "Cumulative tax:", FormatKRW(r.Cumulative.CumulativeTax))
	line(b, "Prior tax paid:", FormatKRW(r.Cumulative.PreviousTaxPaid))
	line(b, "Current tax due:", FormatKRW(r.Cumulative.CurrentTaxDue))
	line(b, "Total tax:", FormatKRW(r.TotalTax))
	renderBreakdown(b, r.Breakdown)
	renderWarnings(b, r.Warnings)
}

func renderVAT(b *strings.Builder, r *domain.VATResult) {
	header(b, "VALUE ADDED TAX")
	line(b, "Regime:", string(r.Regime))
	line(b, "Calculated tax:", FormatKRW(r.CalculatedTax))
	line(b, "Input credit:", FormatKRW(r.InputCredit))
	line(b, "Payable:", FormatKRW(r.Payable))
	line(b, "Refundable:", FormatKRW(r.Refundable))
	renderBreakdown(b, r.Breakdown)
	renderWarnings(b, r.Warnings)
}

func renderInvestment(b *strings.Builder, r *domain.InvestmentResult) {
	header(b, "INVESTMENT ANALYSIS")
	line(b, "NPV:", FormatKRW(r.NPV))
	line(b, "IRR:", FormatPercent(r.IRR))
	line(b, "ROI:", FormatRate(r.ROI))
	if r.PaybackYears == domain.PaybackNotReached {
		line(b, "Payback:", "not reached within the horizon")
	} else {
		line(b, "Payback:", fmt.Sprintf("%d years", r.PaybackYears))
	}
	if r.BreakEvenYear == domain.PaybackNotReached {
		line(b, "Operating break-even:", "not reached within the horizon")
	} else {
		line(b, "Operating break-even:", fmt.Sprintf("year %d", r.BreakEvenYear))
	}
	line(b, "Profitability index:", r.ProfitabilityIndex.StringFixed(3))
	if !r.MinDSCR.IsZero() {
		line(b, "Minimum DSCR:", r.MinDSCR.StringFixed(2))
	}

	b.WriteString("\nCASH FLOWS\n")
	b.WriteString(fmt.Sprintf("  %-4s %16s %16s %16s %16s\n", "Year", "Revenue", "Tax", "Debt Service", "Net"))
	for _, f := range r.CashFlows {
		b.WriteString(fmt.Sprintf("  %-4d %16s %16s %16s %16s\n",
			f.Year, FormatKRW(f.Revenue), FormatKRW(f.Tax), FormatKRW(f.DebtService), FormatKRW(f.NetCashFlow)))
	}
	renderWarnings(b, r.Warnings)
}

func renderScenarios(b *strings.Builder, s *domain.ScenarioSet) {
	header(b, "SCENARIO ANALYSIS")
	b.WriteString(fmt.Sprintf("  %-12s %18s %10s %10s\n", "Scenario", "NPV", "IRR", "Payback"))
	for _, row := range []struct {
		name   string
		result *domain.InvestmentResult
	}{
		{"pessimistic", s.Pessimistic},
		{"neutral", s.Neutral},
		{"optimistic", s.Optimistic},
	} {
		payback := "never"
		if row.result.PaybackYears != domain.PaybackNotReached {
			payback = fmt.Sprintf("%dy", row.result.PaybackYears)
		}
		b.WriteString(fmt.Sprintf("  %-12s %18s %10s %10s\n",
			row.name, FormatKRW(row.result.NPV), FormatPercent(row.result.IRR), payback))
	}
	// All three runs validate the same base input, so the neutral run's
	// warnings speak for the set.
	renderWarnings(b, s.Neutral.Warnings)
}

func renderSensitivity(b *strings.Builder, s *domain.SensitivityAnalysis) {
	header(b, "SENSITIVITY ANALYSIS")
	line(b, "Parameter:", string(s.Parameter))
	line(b, "Base value:", s.BaseValue.String())
	line(b, "Magnitude:", s.Magnitude.StringFixed(3))
	line(b, "Risk level:", s.RiskLevel)
	b.WriteString(fmt.Sprintf("\n  %-12s %18s %10s\n", "Value", "NPV", "IRR"))
	for _, p := range s.Points {
		b.WriteString(fmt.Sprintf("  %-12s %18s %10s\n", p.Value.String(), FormatKRW(p.NPV), FormatPercent(p.IRR)))
	}
}

func renderValidation(b *strings.Builder, v *domain.ValidationResult) {
	header(b, "VALIDATION")
	line(b, "Valid:", fmt.Sprintf("%v", v.IsValid))
	for field, msg := range v.Errors {
		b.WriteString(fmt.Sprintf("  error [%s]: %s\n", field, msg))
	}
	for field, msg := range v.Warnings {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  warning [%s]: %s", field, msg)))
		b.WriteString("\n")
	}
}
