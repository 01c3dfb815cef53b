package calculation

import (
	"fmt"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// sweepMultipliers is the default sweep grid: the base value scaled by
// 0.6..1.4. When the base value is zero the grid degrades to absolute
// percentage-point offsets so the sweep still covers a range.
var sweepMultipliers = []decimal.Decimal{
	decimal.NewFromFloat(0.6),
	decimal.NewFromFloat(0.8),
	decimal.NewFromInt(1),
	decimal.NewFromFloat(1.2),
	decimal.NewFromFloat(1.4),
}

var sweepOffsets = []decimal.Decimal{
	decimal.NewFromInt(-2),
	decimal.NewFromInt(-1),
	decimal.Zero,
	decimal.NewFromInt(1),
	decimal.NewFromInt(2),
}

// AnalyzeSensitivity sweeps one parameter across the grid, reruns the full
// projection pipeline per value, and reports the NPV/IRR series plus the
// sensitivity magnitude (max-min)/|max| over the swept NPVs. Each sweep
// point evaluates an independent input copy; no state is shared. Grid
// points falling outside the parameter's valid range are skipped, so a
// valid base input always yields a result.
func (e *Engine) AnalyzeSensitivity(input *domain.InvestmentInput, parameter domain.SensitivityParameter) (*domain.SensitivityAnalysis, error) {
	base, err := parameterValue(input, parameter)
	if err != nil {
		return nil, err
	}

	values := sweepValues(base, parameter)
	points := make([]domain.SensitivityPoint, 0, len(values))
	for _, value := range values {
		modified := *input
		if len(input.AnnualRevenue) > 0 {
			modified.AnnualRevenue = append([]decimal.Decimal(nil), input.AnnualRevenue...)
		}
		setParameterValue(&modified, parameter, value)

		result, err := e.AnalyzeInvestment(&modified)
		if err != nil {
			return nil, fmt.Errorf("sensitivity run for %s=%s failed: %w", parameter, value, err)
		}
		points = append(points, domain.SensitivityPoint{
			Value: value,
			NPV:   result.NPV,
			IRR:   result.IRR,
		})
	}

	magnitude := sensitivityMagnitude(points)
	return &domain.SensitivityAnalysis{
		Parameter: parameter,
		BaseValue: base,
		Points:    points,
		Magnitude: magnitude,
		RiskLevel: riskLevel(magnitude),
	}, nil
}

func sweepValues(base decimal.Decimal, parameter domain.SensitivityParameter) []decimal.Decimal {
	values := make([]decimal.Decimal, 0, len(sweepMultipliers))
	if base.IsZero() {
		for _, offset := range sweepOffsets {
			if parameterInDomain(parameter, offset) {
				values = append(values, offset)
			}
		}
		return values
	}
	for _, m := range sweepMultipliers {
		value := base.Mul(m)
		if parameterInDomain(parameter, value) {
			values = append(values, value)
		}
	}
	return values
}

// parameterInDomain reports whether a grid point stays inside the range
// ValidateInvestment accepts for the parameter. A zero-interest loan must
// not sweep into negative rates, and a high profit rate must not sweep
// past the 100% ceiling.
func parameterInDomain(parameter domain.SensitivityParameter, value decimal.Decimal) bool {
	switch parameter {
	case domain.ParamInterestRate:
		return value.GreaterThanOrEqual(decimal.Zero)
	case domain.ParamOperatingProfit:
		return value.GreaterThanOrEqual(decimal.NewFromInt(-100)) &&
			value.LessThanOrEqual(decimal.NewFromInt(100))
	default:
		// Discount and revenue growth rates only need to exceed -100%.
		return value.GreaterThan(decimal.NewFromInt(-100))
	}
}

func parameterValue(input *domain.InvestmentInput, parameter domain.SensitivityParameter) (decimal.Decimal, error) {
	switch parameter {
	case domain.ParamDiscountRate:
		return input.DiscountRate, nil
	case domain.ParamInterestRate:
		return input.InterestRate, nil
	case domain.ParamOperatingProfit:
		return input.OperatingProfitRate, nil
	case domain.ParamRevenueGrowthRate:
		return input.RevenueGrowthRate, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown sensitivity parameter: %s", parameter)
	}
}

func setParameterValue(input *domain.InvestmentInput, parameter domain.SensitivityParameter, value decimal.Decimal) {
	switch parameter {
	case domain.ParamDiscountRate:
		input.DiscountRate = value
	case domain.ParamInterestRate:
		input.InterestRate = value
	case domain.ParamOperatingProfit:
		input.OperatingProfitRate = value
	case domain.ParamRevenueGrowthRate:
		input.RevenueGrowthRate = value
	}
}

// sensitivityMagnitude is (max-min)/|max| over the swept NPVs, zero when
// the maximum NPV is zero.
func sensitivityMagnitude(points []domain.SensitivityPoint) decimal.Decimal {
	if len(points) == 0 {
		return decimal.Zero
	}
	minNPV, maxNPV := points[0].NPV, points[0].NPV
	for _, p := range points[1:] {
		if p.NPV.LessThan(minNPV) {
			minNPV = p.NPV
		}
		if p.NPV.GreaterThan(maxNPV) {
			maxNPV = p.NPV
		}
	}
	if maxNPV.IsZero() {
		return decimal.Zero
	}
	return maxNPV.Sub(minNPV).Div(maxNPV.Abs())
}

func riskLevel(magnitude decimal.Decimal) string {
	switch {
	case magnitude.GreaterThan(decimal.NewFromFloat(0.5)):
		return "HIGH"
	case magnitude.GreaterThan(decimal.NewFromFloat(0.2)):
		return "MEDIUM"
	default:
		return "LOW"
	}
}
