package calculation

import (
	"math"

	"github.com/kobiz/taxcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// IRR solver constants. These are part of the public contract and pinned
// by golden tests: the solver seeds at 10%, runs at most 100 Newton steps,
// converges when the rate step falls under 1e-7, and the returned rate is
// clamped to [-99%, +999%]. A vector with no sign change returns zero.
const (
	irrSeed          = 0.10
	irrMaxIterations = 100
	irrTolerance     = 1e-7
	irrLowerBound    = -0.99
	irrUpperBound    = 9.99
)

// AnalyzeInvestment projects the cash-flow vector and derives the
// appraisal metrics from it.
func (e *Engine) AnalyzeInvestment(input *domain.InvestmentInput) (*domain.InvestmentResult, error) {
	v := e.ValidateInvestment(input)
	if !v.IsValid {
		return nil, &domain.InvalidInputError{Fields: v.Errors}
	}

	flows := e.ProjectCashFlows(input)
	discountRate := input.DiscountRate.Div(decimalHundred)

	npv := NetPresentValue(flows, discountRate)
	irr := InternalRateOfReturn(flows)
	payback := PaybackPeriod(flows)
	discountedPayback := DiscountedPaybackPeriod(flows, discountRate)
	breakEven := BreakEvenYear(flows)
	dscr, minDSCR := DebtServiceCoverage(flows)

	outlay := flows[0].NetCashFlow.Neg()
	pi := decimal.Zero
	roi := decimal.Zero
	if outlay.GreaterThan(decimal.Zero) {
		pi = npv.Add(outlay).Div(outlay)
		total := decimal.Zero
		for _, f := range flows[1:] {
			total = total.Add(f.NetCashFlow)
		}
		roi = total.Sub(outlay).Div(outlay).Mul(decimalHundred)
	}

	return &domain.InvestmentResult{
		NPV:                    npv.Round(0),
		IRR:                    irr,
		ROI:                    roi,
		PaybackYears:           payback,
		DiscountedPaybackYears: discountedPayback,
		BreakEvenYear:          breakEven,
		DSCR:                   dscr,
		MinDSCR:                minDSCR,
		ProfitabilityIndex:     pi,
		CashFlows:              flows,
		Warnings:               v.Warnings,
	}, nil
}

// NetPresentValue discounts the vector at the given rate (0.08 for 8%).
// The year-0 flow is undiscounted, so a vector with no later flows equals
// its first entry, and a zero rate degrades to a plain sum.
func NetPresentValue(flows []domain.YearCashFlow, rate decimal.Decimal) decimal.Decimal {
	factor := decimalOne
	growth := decimalOne.Add(rate)
	npv := decimal.Zero
	for _, f := range flows {
		if f.Year > 0 {
			factor = factor.Mul(growth)
		}
		if factor.IsZero() {
			continue
		}
		npv = npv.Add(f.NetCashFlow.Div(factor))
	}
	return npv
}

// InternalRateOfReturn finds the rate where NPV crosses zero by
// Newton-Raphson on the float64 image of the vector. See the solver
// constants above for the seed, bounds and convergence contract.
func InternalRateOfReturn(flows []domain.YearCashFlow) decimal.Decimal {
	if !hasSignChange(flows) {
		return decimal.Zero
	}

	cf := make([]float64, len(flows))
	for i, f := range flows {
		cf[i] = f.NetCashFlow.InexactFloat64()
	}

	rate := irrSeed
	for i := 0; i < irrMaxIterations; i++ {
		value, derivative := npvWithDerivative(cf, rate)
		if derivative == 0 {
			break
		}
		next := rate - value/derivative
		if next <= irrLowerBound {
			next = irrLowerBound
		}
		if next >= irrUpperBound {
			next = irrUpperBound
		}
		if math.Abs(next-rate) < irrTolerance {
			rate = next
			break
		}
		rate = next
	}

	if rate < irrLowerBound {
		rate = irrLowerBound
	}
	if rate > irrUpperBound {
		rate = irrUpperBound
	}
	return decimal.NewFromFloat(rate).Round(6)
}

func npvWithDerivative(cf []float64, rate float64) (value, derivative float64) {
	for t, c := range cf {
		ft := float64(t)
		discount := math.Pow(1+rate, ft)
		value += c / discount
		if t > 0 {
			derivative -= ft * c / math.Pow(1+rate, ft+1)
		}
	}
	return value, derivative
}

func hasSignChange(flows []domain.YearCashFlow) bool {
	sawNegative, sawPositive := false, false
	for _, f := range flows {
		if f.NetCashFlow.LessThan(decimal.Zero) {
			sawNegative = true
		}
		if f.NetCashFlow.GreaterThan(decimal.Zero) {
			sawPositive = true
		}
	}
	return sawNegative && sawPositive
}

// PaybackPeriod is the smallest year whose running cumulative sum turns
// non-negative, PaybackNotReached when the horizon never recovers.
func PaybackPeriod(flows []domain.YearCashFlow) int {
	cumulative := decimal.Zero
	for _, f := range flows {
		cumulative = cumulative.Add(f.NetCashFlow)
		if cumulative.GreaterThanOrEqual(decimal.Zero) {
			return f.Year
		}
	}
	return domain.PaybackNotReached
}

// BreakEvenYear is the first year whose cumulative operating surplus turns
// positive. The year-0 outlay is excluded, so it reports when operations
// start carrying themselves, not when the investment is recovered.
func BreakEvenYear(flows []domain.YearCashFlow) int {
	cumulative := decimal.Zero
	for _, f := range flows {
		if f.Year == 0 {
			continue
		}
		cumulative = cumulative.Add(f.NetCashFlow)
		if cumulative.GreaterThan(decimal.Zero) {
			return f.Year
		}
	}
	return domain.PaybackNotReached
}

// DiscountedPaybackPeriod is the payback computed on discounted flows.
func DiscountedPaybackPeriod(flows []domain.YearCashFlow, rate decimal.Decimal) int {
	factor := decimalOne
	growth := decimalOne.Add(rate)
	cumulative := decimal.Zero
	for _, f := range flows {
		if f.Year > 0 {
			factor = factor.Mul(growth)
		}
		if factor.IsZero() {
			continue
		}
		cumulative = cumulative.Add(f.NetCashFlow.Div(factor))
		if cumulative.GreaterThanOrEqual(decimal.Zero) {
			return f.Year
		}
	}
	return domain.PaybackNotReached
}

// DebtServiceCoverage returns the per-year DSCR vector and the minimum
// over years that actually carry debt service. Years without debt service
// report zero and are excluded from the minimum; no Infinity or NaN ever
// reaches a report.
func DebtServiceCoverage(flows []domain.YearCashFlow) ([]decimal.Decimal, decimal.Decimal) {
	dscr := []decimal.Decimal{}
	minDSCR := decimal.Zero
	found := false
	for _, f := range flows {
		if f.Year == 0 {
			continue
		}
		if f.DebtService.LessThanOrEqual(decimal.Zero) {
			dscr = append(dscr, decimal.Zero)
			continue
		}
		available := f.OperatingProfit.Sub(f.Tax)
		ratio := available.Div(f.DebtService)
		dscr = append(dscr, ratio)
		if !found || ratio.LessThan(minDSCR) {
			minDSCR = ratio
			found = true
		}
	}
	return dscr, minDSCR
}
