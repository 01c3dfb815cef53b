package calculation

import (
	"testing"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeSensitivity_DiscountRateSweep(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	analysis, err := engine.AnalyzeSensitivity(input, domain.ParamDiscountRate)
	require.NoError(t, err)

	assert.Equal(t, domain.ParamDiscountRate, analysis.Parameter)
	assert.True(t, analysis.BaseValue.Equal(decimal.NewFromInt(8)))
	require.Len(t, analysis.Points, 5)

	// Grid: 8% scaled by 0.6..1.4.
	assert.True(t, analysis.Points[0].Value.Equal(decimal.NewFromFloat(4.8)))
	assert.True(t, analysis.Points[2].Value.Equal(decimal.NewFromInt(8)))
	assert.True(t, analysis.Points[4].Value.Equal(decimal.NewFromFloat(11.2)))

	// Higher discount rate, lower NPV: the series must strictly decrease.
	for i := 1; i < len(analysis.Points); i++ {
		assert.True(t, analysis.Points[i].NPV.LessThan(analysis.Points[i-1].NPV),
			"NPV must fall as the discount rate rises (point %d)", i)
	}
}

func TestAnalyzeSensitivity_MidpointMatchesBaseCase(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	base, err := engine.AnalyzeInvestment(input)
	require.NoError(t, err)
	analysis, err := engine.AnalyzeSensitivity(input, domain.ParamOperatingProfit)
	require.NoError(t, err)

	// The 1.0 multiplier point is the unmodified input.
	assert.True(t, analysis.Points[2].NPV.Equal(base.NPV),
		"midpoint must reproduce the base case: %s vs %s", analysis.Points[2].NPV, base.NPV)
	assert.True(t, analysis.Points[2].IRR.Equal(base.IRR))
}

func TestAnalyzeSensitivity_OperatingProfitRaisesNPV(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	analysis, err := engine.AnalyzeSensitivity(input, domain.ParamOperatingProfit)
	require.NoError(t, err)

	for i := 1; i < len(analysis.Points); i++ {
		assert.True(t, analysis.Points[i].NPV.GreaterThan(analysis.Points[i-1].NPV),
			"NPV must rise with the operating profit rate (point %d)", i)
	}
}

func TestAnalyzeSensitivity_ZeroBaseUsesOffsets(t *testing.T) {
	engine := NewDefaultEngine()

	input := baseProjection()
	input.AnnualRevenue = nil
	input.FirstYearRevenue = decimal.NewFromInt(600_000_000)
	input.RevenueGrowthRate = decimal.Zero

	analysis, err := engine.AnalyzeSensitivity(input, domain.ParamRevenueGrowthRate)
	require.NoError(t, err)

	require.Len(t, analysis.Points, 5)
	// Multiplying zero would collapse the grid to a single point; offsets
	// keep the sweep meaningful.
	assert.True(t, analysis.Points[0].Value.Equal(decimal.NewFromInt(-2)))
	assert.True(t, analysis.Points[2].Value.IsZero())
	assert.True(t, analysis.Points[4].Value.Equal(decimal.NewFromInt(2)))
	assert.True(t, analysis.Points[0].NPV.LessThan(analysis.Points[4].NPV),
		"higher growth must raise the NPV")
}

func TestAnalyzeSensitivity_ZeroInterestLoanSweepSucceeds(t *testing.T) {
	engine := NewDefaultEngine()

	// A subsidized policy loan at 0% is ordinary business input; the sweep
	// must drop the negative grid points rather than fail the analysis.
	input := baseProjection()
	input.PolicyFundAmount = decimal.NewFromInt(100_000_000)
	input.LoanYears = 5
	input.InterestRate = decimal.Zero

	analysis, err := engine.AnalyzeSensitivity(input, domain.ParamInterestRate)
	require.NoError(t, err, "a valid zero-interest base input must not fail the sweep")

	require.Len(t, analysis.Points, 3, "the two negative offsets are out of range")
	assert.True(t, analysis.Points[0].Value.IsZero())
	assert.True(t, analysis.Points[1].Value.Equal(decimal.NewFromInt(1)))
	assert.True(t, analysis.Points[2].Value.Equal(decimal.NewFromInt(2)))
	assert.True(t, analysis.Points[0].NPV.GreaterThan(analysis.Points[2].NPV),
		"costlier debt lowers the NPV")
}

func TestAnalyzeSensitivity_HighProfitRateStaysUnderCeiling(t *testing.T) {
	engine := NewDefaultEngine()

	input := baseProjection()
	input.OperatingProfitRate = decimal.NewFromInt(80)

	analysis, err := engine.AnalyzeSensitivity(input, domain.ParamOperatingProfit)
	require.NoError(t, err, "80%% base must not fail on the 1.4x grid point")

	require.Len(t, analysis.Points, 4, "the 112%% grid point is out of range")
	last := analysis.Points[len(analysis.Points)-1]
	assert.True(t, last.Value.Equal(decimal.NewFromInt(96)))
}

func TestAnalyzeSensitivity_UnknownParameter(t *testing.T) {
	engine := NewDefaultEngine()

	_, err := engine.AnalyzeSensitivity(baseProjection(), domain.SensitivityParameter("inflation"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sensitivity parameter")
}

func TestAnalyzeSensitivity_DoesNotMutateInput(t *testing.T) {
	engine := NewDefaultEngine()
	input := baseProjection()

	_, err := engine.AnalyzeSensitivity(input, domain.ParamDiscountRate)
	require.NoError(t, err)

	assert.True(t, input.DiscountRate.Equal(decimal.NewFromInt(8)),
		"the sweep must modify copies only")
}

func TestSensitivityMagnitudeAndRiskLevel(t *testing.T) {
	points := func(npvs ...int64) []domain.SensitivityPoint {
		ps := make([]domain.SensitivityPoint, len(npvs))
		for i, n := range npvs {
			ps[i] = domain.SensitivityPoint{NPV: decimal.NewFromInt(n)}
		}
		return ps
	}

	// (1000-900)/1000 = 0.1 -> LOW.
	low := sensitivityMagnitude(points(900, 1000))
	assert.True(t, low.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, "LOW", riskLevel(low))

	// (1000-600)/1000 = 0.4 -> MEDIUM.
	medium := sensitivityMagnitude(points(600, 1000))
	assert.Equal(t, "MEDIUM", riskLevel(medium))

	// (1000+200)/1000 = 1.2 -> HIGH.
	high := sensitivityMagnitude(points(-200, 1000))
	assert.Equal(t, "HIGH", riskLevel(high))

	assert.True(t, sensitivityMagnitude(nil).IsZero())
	assert.True(t, sensitivityMagnitude(points(0, 0)).IsZero(), "zero maximum reports zero magnitude")
}
