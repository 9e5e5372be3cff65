package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
)

// MA indicator implements Simple Moving Average calculation over close prices.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// NewMAWithPeriod creates a MA indicator over period bars.
func NewMAWithPeriod(period int) (Indicator, error) {
	ma := NewMA()
	if err := ma.Config(period); err != nil {
		return nil, err
	}

	return ma, nil
}

// Name returns the name of the indicator.
func (m *MA) Name() string {
	return types.MAName(m.period)
}

// Type returns the kind of the indicator.
func (m *MA) Type() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config expects one parameter: period (int or float64).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, ok := periodParam(params[0])
	if !ok {
		return errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int or float")
	}

	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	m.period = period

	return nil
}

// Calculate returns the moving average of the series close prices.
func (m *MA) Calculate(series types.PriceSeries) ([]float64, error) {
	return MovingAverage(series.Closes(), m.period)
}

// MovingAverage returns the trailing arithmetic mean of values over window entries.
// Index i holds the mean of values[i-window+1..i]; indices below window-1 are NaN.
// A window longer than values yields an all-NaN result.
func MovingAverage(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "window must be a positive integer, got %d", window)
	}

	result := make([]float64, len(values))

	for i := range values {
		if i < window-1 {
			result[i] = math.NaN()

			continue
		}

		var sum float64
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}

		result[i] = sum / float64(window)
	}

	return result, nil
}
