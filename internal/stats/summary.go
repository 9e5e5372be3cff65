// Package stats derives the console summary for an analysed price series.
package stats

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
)

// Summary holds the statistics printed for one ticker.
type Summary struct {
	Symbol       string  `yaml:"symbol"`
	CurrentPrice float64 `yaml:"current_price"`
	PeriodHigh   float64 `yaml:"period_high"`
	PeriodLow    float64 `yaml:"period_low"`
	// CurrentVolatility is the last defined volatility value. None when no value is defined.
	CurrentVolatility optional.Option[float64] `yaml:"current_volatility"`
	// TotalReturn is the first-to-last close change in percent. NaN or Inf when the first close is zero.
	TotalReturn float64 `yaml:"total_return"`
}

// Summarize computes the summary of series using the Volatility sequence of indicators.
// An empty series is an error.
func Summarize(series types.PriceSeries, indicators types.IndicatorSet) (Summary, error) {
	first, ok := series.First()
	if !ok {
		return Summary{}, errors.Newf(errors.ErrCodeNoDataFound, "no price data for %s", series.Symbol)
	}

	last, _ := series.Last()

	high, low := periodRange(series.Bars)

	volatility := optional.None[float64]()
	if values, ok := indicators.Get(string(types.IndicatorTypeVolatility)); ok {
		volatility = types.LastDefined(values)
	}

	return Summary{
		Symbol:            series.Symbol,
		CurrentPrice:      last.Close,
		PeriodHigh:        high,
		PeriodLow:         low,
		CurrentVolatility: volatility,
		TotalReturn:       TotalReturn(first.Close, last.Close),
	}, nil
}

// periodRange returns the highest high and lowest low, skipping NaN entries.
// Both are NaN when no bar has a defined value.
func periodRange(bars []types.MarketData) (float64, float64) {
	high := math.NaN()
	low := math.NaN()

	for _, bar := range bars {
		if !math.IsNaN(bar.High) && (math.IsNaN(high) || bar.High > high) {
			high = bar.High
		}

		if !math.IsNaN(bar.Low) && (math.IsNaN(low) || bar.Low < low) {
			low = bar.Low
		}
	}

	return high, low
}

// TotalReturn returns (last - first) / first as a percentage.
func TotalReturn(first, last float64) float64 {
	return (last - first) / first * 100
}
