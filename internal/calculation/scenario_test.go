package calculation

import (
	"testing"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeScenarios_NeutralMatchesBaseCase(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	base, err := engine.AnalyzeInvestment(input)
	require.NoError(t, err)
	set, err := engine.AnalyzeScenarios(input)
	require.NoError(t, err)

	assert.True(t, set.Neutral.NPV.Equal(base.NPV),
		"neutral scenario must reproduce the base case exactly: %s vs %s", set.Neutral.NPV, base.NPV)
	assert.True(t, set.Neutral.IRR.Equal(base.IRR))
	assert.Equal(t, base.PaybackYears, set.Neutral.PaybackYears)
}

func TestAnalyzeScenarios_Ordering(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	set, err := engine.AnalyzeScenarios(input)
	require.NoError(t, err)

	assert.True(t, set.Pessimistic.NPV.LessThan(set.Neutral.NPV),
		"lower revenue must lower the NPV")
	assert.True(t, set.Neutral.NPV.LessThan(set.Optimistic.NPV),
		"higher revenue must raise the NPV")
}

func TestAnalyzeScenarios_RevenueScaling(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	set, err := engine.AnalyzeScenarios(input)
	require.NoError(t, err)

	// Year-1 revenue under the pessimistic run is 600M * 0.8.
	assert.True(t, set.Pessimistic.CashFlows[1].Revenue.Equal(decimal.NewFromInt(480_000_000)))
	assert.True(t, set.Optimistic.CashFlows[1].Revenue.Equal(decimal.NewFromInt(720_000_000)))
}

func TestAnalyzeScenariosWith_CustomAdjustments(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	set, err := engine.AnalyzeScenariosWith(input, domain.ScenarioAdjustments{
		PessimisticPct: decimal.NewFromInt(-50),
		NeutralPct:     decimal.Zero,
		OptimisticPct:  decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	assert.True(t, set.Pessimistic.CashFlows[1].Revenue.Equal(decimal.NewFromInt(300_000_000)))
	assert.True(t, set.Optimistic.CashFlows[1].Revenue.Equal(decimal.NewFromInt(900_000_000)))
}

func TestAnalyzeScenarios_GeometricInputScalesFirstYear(t *testing.T) {
	engine := NewDefaultEngine()

	input := baseProjection()
	input.AnnualRevenue = nil
	input.FirstYearRevenue = decimal.NewFromInt(600_000_000)
	input.RevenueGrowthRate = decimal.NewFromInt(10)

	set, err := engine.AnalyzeScenarios(input)
	require.NoError(t, err)

	// The multiplier hits the starting point; growth still compounds on top.
	assert.True(t, set.Optimistic.CashFlows[1].Revenue.Equal(decimal.NewFromInt(720_000_000)))
	assert.True(t, set.Optimistic.CashFlows[2].Revenue.Equal(decimal.NewFromInt(792_000_000)))
}

func TestAnalyzeScenarios_DoesNotMutateInput(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()
	originalFirstYear := input.AnnualRevenue[0]

	_, err := engine.AnalyzeScenarios(input)
	require.NoError(t, err)

	assert.True(t, input.AnnualRevenue[0].Equal(originalFirstYear),
		"scenario runs must work on copies")
}

func TestAnalyzeScenarios_InvalidInputPropagates(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()
	input.InitialInvestment = decimal.Zero

	_, err := engine.AnalyzeScenarios(input)
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
}
