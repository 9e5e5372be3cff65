package indicator

import (
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
)

// Config selects the indicators a Calculator produces.
type Config struct {
	// MAWindows are the moving average windows, in output order.
	MAWindows []int
	// VolatilityWindow is the number of percentage changes per volatility sample.
	VolatilityWindow int
}

// DefaultConfig returns the 20/50/200 day moving averages and a 20 day volatility.
func DefaultConfig() Config {
	return Config{
		MAWindows:        []int{20, 50, 200},
		VolatilityWindow: 20,
	}
}

// Calculator derives an IndicatorSet from a PriceSeries.
type Calculator struct {
	registry IndicatorRegistry
}

// NewCalculator registers one MA per window followed by the volatility indicator.
func NewCalculator(config Config) (*Calculator, error) {
	registry := NewIndicatorRegistry()

	for _, window := range config.MAWindows {
		ma, err := NewMAWithPeriod(window)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid moving average window %d", window)
		}

		if err := registry.RegisterIndicator(ma); err != nil {
			return nil, err
		}
	}

	volatility, err := NewVolatilityWithPeriod(config.VolatilityWindow)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid volatility window %d", config.VolatilityWindow)
	}

	if err := registry.RegisterIndicator(volatility); err != nil {
		return nil, err
	}

	return NewCalculatorWithRegistry(registry), nil
}

// NewCalculatorWithRegistry creates a Calculator evaluating the indicators in registry.
func NewCalculatorWithRegistry(registry IndicatorRegistry) *Calculator {
	return &Calculator{
		registry: registry,
	}
}

// Registry returns the registry the calculator evaluates.
func (c *Calculator) Registry() IndicatorRegistry {
	return c.registry
}

// Calculate evaluates every registered indicator over series and returns a new set.
// The series is never modified; an empty series yields empty sequences.
func (c *Calculator) Calculate(series types.PriceSeries) (types.IndicatorSet, error) {
	set := types.NewIndicatorSet(series.Len())

	for _, name := range c.registry.ListIndicators() {
		ind, err := c.registry.GetIndicator(name)
		if err != nil {
			return types.IndicatorSet{}, err
		}

		values, err := ind.Calculate(series)
		if err != nil {
			return types.IndicatorSet{}, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to calculate %s for %s", name, series.Symbol)
		}

		if err := set.Add(name, values); err != nil {
			return types.IndicatorSet{}, errors.Wrap(errors.ErrCodeIndicatorCalculation, "failed to store indicator", err)
		}
	}

	return set, nil
}
