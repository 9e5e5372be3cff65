package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
)

// TradingDaysPerYear annualizes daily volatility.
const TradingDaysPerYear = 252

// Volatility is the annualized rolling sample standard deviation of daily percentage changes.
type Volatility struct {
	period int
}

// NewVolatility creates a new Volatility indicator with a 20 day window.
func NewVolatility() Indicator {
	return &Volatility{
		period: 20,
	}
}

// NewVolatilityWithPeriod creates a Volatility indicator over period percentage changes.
func NewVolatilityWithPeriod(period int) (Indicator, error) {
	v := NewVolatility()
	if err := v.Config(period); err != nil {
		return nil, err
	}

	return v, nil
}

// Name returns the name of the indicator.
func (v *Volatility) Name() string {
	return string(types.IndicatorTypeVolatility)
}

// Type returns the kind of the indicator.
func (v *Volatility) Type() types.IndicatorType {
	return types.IndicatorTypeVolatility
}

// Period returns the rolling window length.
func (v *Volatility) Period() int {
	return v.period
}

// Config expects one parameter: period (int or float64), at least 2.
func (v *Volatility) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := periodParam(params[0])
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int or float")
	}

	if period < 2 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be at least 2, got %d", period)
	}

	v.period = period

	return nil
}

// Calculate returns the rolling volatility of the series close prices.
func (v *Volatility) Calculate(series types.PriceSeries) ([]float64, error) {
	return RollingVolatility(series.Closes(), v.period)
}

// PercentChange returns values[i]/values[i-1] - 1. Index 0 is NaN, and so is any
// index whose previous value is zero.
func PercentChange(values []float64) []float64 {
	result := make([]float64, len(values))

	for i := range values {
		if i == 0 || values[i-1] == 0 {
			result[i] = math.NaN()

			continue
		}

		result[i] = values[i]/values[i-1] - 1
	}

	return result
}

// RollingStdDev returns the sample standard deviation (n-1 denominator) of the trailing
// window entries. An index is NaN when the window is incomplete or contains a NaN.
func RollingStdDev(values []float64, window int) ([]float64, error) {
	if window < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "window must be at least 2, got %d", window)
	}

	result := make([]float64, len(values))

	for i := range values {
		result[i] = math.NaN()

		if i < window-1 {
			continue
		}

		slice := values[i-window+1 : i+1]
		if hasNaN(slice) {
			continue
		}

		var sum float64
		for _, x := range slice {
			sum += x
		}

		mean := sum / float64(window)

		var squaredDiffSum float64

		for _, x := range slice {
			diff := x - mean
			squaredDiffSum += diff * diff
		}

		result[i] = math.Sqrt(squaredDiffSum / float64(window-1))
	}

	return result, nil
}

// RollingVolatility returns the rolling standard deviation of the day-over-day percentage
// change of closes, annualized by sqrt(252). The first window entries are NaN.
func RollingVolatility(closes []float64, window int) ([]float64, error) {
	std, err := RollingStdDev(PercentChange(closes), window)
	if err != nil {
		return nil, err
	}

	factor := math.Sqrt(TradingDaysPerYear)
	for i := range std {
		std[i] *= factor
	}

	return std, nil
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
