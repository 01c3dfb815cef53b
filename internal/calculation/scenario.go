package calculation

import (
	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultScenarioAdjustments are the revenue adjustments used when the
// caller does not override them: -20%, 0%, +20%.
func DefaultScenarioAdjustments() domain.ScenarioAdjustments {
	return domain.ScenarioAdjustments{
		PessimisticPct: decimal.NewFromInt(-20),
		NeutralPct:     decimal.Zero,
		OptimisticPct:  decimal.NewFromInt(20),
	}
}

// AnalyzeScenarios reruns the full projection pipeline under the three
// named revenue adjustments. The neutral scenario with a 0% adjustment is
// the unmodified base case, so it reproduces AnalyzeInvestment exactly and
// serves as the regression anchor.
func (e *Engine) AnalyzeScenarios(input *domain.InvestmentInput) (*domain.ScenarioSet, error) {
	return e.AnalyzeScenariosWith(input, DefaultScenarioAdjustments())
}

// AnalyzeScenariosWith runs the scenario trio with explicit adjustments.
func (e *Engine) AnalyzeScenariosWith(input *domain.InvestmentInput, adj domain.ScenarioAdjustments) (*domain.ScenarioSet, error) {
	pessimistic, err := e.AnalyzeInvestment(adjustRevenue(input, adj.PessimisticPct))
	if err != nil {
		return nil, err
	}
	neutral, err := e.AnalyzeInvestment(adjustRevenue(input, adj.NeutralPct))
	if err != nil {
		return nil, err
	}
	optimistic, err := e.AnalyzeInvestment(adjustRevenue(input, adj.OptimisticPct))
	if err != nil {
		return nil, err
	}

	return &domain.ScenarioSet{
		Pessimistic: pessimistic,
		Neutral:     neutral,
		Optimistic:  optimistic,
	}, nil
}

// adjustRevenue returns a copy of the input with the revenue trajectory
// scaled by (1 + pct/100). A zero adjustment returns the input unchanged
// so the neutral run shares the exact base-case arithmetic.
func adjustRevenue(input *domain.InvestmentInput, pct decimal.Decimal) *domain.InvestmentInput {
	if pct.IsZero() {
		return input
	}

	adjusted := *input
	multiplier := decimalOne.Add(pct.Div(decimalHundred))
	if len(input.AnnualRevenue) > 0 {
		adjusted.AnnualRevenue = make([]decimal.Decimal, len(input.AnnualRevenue))
		for i, r := range input.AnnualRevenue {
			adjusted.AnnualRevenue[i] = r.Mul(multiplier)
		}
	} else {
		adjusted.FirstYearRevenue = input.FirstYearRevenue.Mul(multiplier)
	}
	return &adjusted
}
