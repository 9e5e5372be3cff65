package types

import "time"

// MarketData is a single daily price bar.
type MarketData struct {
	Id     string    `csv:"id"`
	Symbol string    `csv:"symbol"`
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// PriceSeries is the ordered sequence of bars fetched for one ticker over one date range.
// Bars are ascending by time and must not be modified after the fetch.
type PriceSeries struct {
	Symbol string
	Bars   []MarketData
}

// NewPriceSeries creates a series for symbol. The bars slice is copied.
func NewPriceSeries(symbol string, bars []MarketData) PriceSeries {
	copied := make([]MarketData, len(bars))
	copy(copied, bars)

	return PriceSeries{
		Symbol: symbol,
		Bars:   copied,
	}
}

// Len returns the number of bars in the series.
func (s PriceSeries) Len() int {
	return len(s.Bars)
}

// IsEmpty reports whether the series has no bars.
func (s PriceSeries) IsEmpty() bool {
	return len(s.Bars) == 0
}

// Closes returns the close prices in bar order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		closes[i] = bar.Close
	}

	return closes
}

// Times returns the bar timestamps in bar order.
func (s PriceSeries) Times() []time.Time {
	times := make([]time.Time, len(s.Bars))
	for i, bar := range s.Bars {
		times[i] = bar.Time
	}

	return times
}

// First returns the earliest bar. The second return value is false for an empty series.
func (s PriceSeries) First() (MarketData, bool) {
	if len(s.Bars) == 0 {
		return MarketData{}, false
	}

	return s.Bars[0], true
}

// Last returns the latest bar. The second return value is false for an empty series.
func (s PriceSeries) Last() (MarketData, bool) {
	if len(s.Bars) == 0 {
		return MarketData{}, false
	}

	return s.Bars[len(s.Bars)-1], true
}
