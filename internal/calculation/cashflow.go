package calculation

import (
	"math"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalHundred = decimal.NewFromInt(100)
)

// ProjectCashFlows builds the year-indexed cash-flow vector. Year 0 is the
// initial outlay net of the policy fund, clamped so excess funding never
// becomes a positive inflow. Years 1..N are operating profit minus tax
// minus debt service; tax is charged on EBIT after straight-line
// depreciation, so the depreciation add-back is already reflected.
func (e *Engine) ProjectCashFlows(input *domain.InvestmentInput) []domain.YearCashFlow {
	years := input.AnalysisYears
	revenues := e.revenueSchedule(input)
	debtService := e.debtServiceSchedule(input)

	outlay := input.InitialInvestment.Sub(input.PolicyFundAmount)
	if outlay.LessThan(decimal.Zero) {
		outlay = decimal.Zero
	}

	flows := make([]domain.YearCashFlow, 0, years+1)
	flows = append(flows, domain.YearCashFlow{
		Year:        0,
		NetCashFlow: outlay.Neg(),
		Cumulative:  outlay.Neg(),
	})

	profitRate := input.OperatingProfitRate.Div(decimalHundred)
	taxRate := input.TaxRate.Div(decimalHundred)

	annualDepreciation := decimal.Zero
	if input.DepreciationYears > 0 {
		annualDepreciation = input.InitialInvestment.Div(decimal.NewFromInt(int64(input.DepreciationYears)))
	}

	cumulative := outlay.Neg()
	for y := 1; y <= years; y++ {
		revenue := revenues[y-1]
		operatingProfit := revenue.Mul(profitRate)

		depreciation := decimal.Zero
		if input.DepreciationYears > 0 && y <= input.DepreciationYears {
			depreciation = annualDepreciation
		}

		ebit := operatingProfit.Sub(depreciation)
		tax := decimal.Zero
		if ebit.GreaterThan(decimal.Zero) {
			tax = ebit.Mul(taxRate)
		}

		// EBIT - tax + depreciation add-back - debt service collapses to
		// operating profit - tax - debt service.
		net := operatingProfit.Sub(tax).Sub(debtService[y-1])
		cumulative = cumulative.Add(net)

		flows = append(flows, domain.YearCashFlow{
			Year:            y,
			Revenue:         revenue,
			OperatingProfit: operatingProfit,
			Depreciation:    depreciation,
			Tax:             tax,
			DebtService:     debtService[y-1],
			NetCashFlow:     net,
			Cumulative:      cumulative,
		})
	}

	return flows
}

// revenueSchedule returns the per-year revenue, either the explicit array
// or a geometric sequence compounding from the first year's value. The two
// paths agree when the array equals the geometric sequence.
func (e *Engine) revenueSchedule(input *domain.InvestmentInput) []decimal.Decimal {
	years := input.AnalysisYears
	revenues := make([]decimal.Decimal, years)

	if len(input.AnnualRevenue) >= years {
		copy(revenues, input.AnnualRevenue[:years])
		return revenues
	}

	growth := decimalOne.Add(input.RevenueGrowthRate.Div(decimalHundred))
	current := input.FirstYearRevenue
	for y := 0; y < years; y++ {
		revenues[y] = current
		current = current.Mul(growth)
	}
	return revenues
}

// debtServiceSchedule amortizes the policy fund loan. During an optional
// grace period only interest is due; afterwards a level payment retires
// the full principal over the remaining term. Zero after the loan ends.
func (e *Engine) debtServiceSchedule(input *domain.InvestmentInput) []decimal.Decimal {
	years := input.AnalysisYears
	schedule := make([]decimal.Decimal, years)
	for i := range schedule {
		schedule[i] = decimal.Zero
	}

	principal := input.PolicyFundAmount
	if principal.LessThanOrEqual(decimal.Zero) || input.LoanYears <= 0 {
		return schedule
	}

	rate := input.InterestRate.Div(decimalHundred)
	interestOnly := principal.Mul(rate)

	repayYears := input.LoanYears - input.GraceYears
	var levelPayment decimal.Decimal
	if rate.IsZero() {
		levelPayment = principal.Div(decimal.NewFromInt(int64(repayYears)))
	} else {
		// P * r * (1+r)^n / ((1+r)^n - 1); float64 only for the power,
		// as with the monthly amortization formula.
		r := rate.InexactFloat64()
		factor := math.Pow(1+r, float64(repayYears))
		payment := principal.InexactFloat64() * r * factor / (factor - 1)
		levelPayment = decimal.NewFromFloat(payment)
	}

	for y := 1; y <= years && y <= input.LoanYears; y++ {
		if y <= input.GraceYears {
			schedule[y-1] = interestOnly
		} else {
			schedule[y-1] = levelPayment
		}
	}
	return schedule
}
