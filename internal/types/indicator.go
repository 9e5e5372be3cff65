package types

import (
	"fmt"
	"math"

	"github.com/moznion/go-optional"
)

type IndicatorType string

const (
	IndicatorTypeMA         IndicatorType = "MA"
	IndicatorTypeVolatility IndicatorType = "Volatility"
)

// MAName returns the indicator set key for a moving average over window bars, e.g. "MA_20".
func MAName(window int) string {
	return fmt.Sprintf("%s_%d", IndicatorTypeMA, window)
}

// IndicatorSet maps indicator names to value sequences aligned with a PriceSeries.
// Undefined entries are NaN. Names keep their insertion order.
type IndicatorSet struct {
	names  []string
	values map[string][]float64
	length int
}

// NewIndicatorSet creates an empty set whose sequences must all have the given length.
func NewIndicatorSet(length int) IndicatorSet {
	return IndicatorSet{
		names:  []string{},
		values: make(map[string][]float64),
		length: length,
	}
}

// Add stores values under name. It fails on a duplicate name or a misaligned sequence.
func (s *IndicatorSet) Add(name string, values []float64) error {
	if s.values == nil {
		s.values = make(map[string][]float64)
	}

	if _, exists := s.values[name]; exists {
		return fmt.Errorf("indicator %s already exists", name)
	}

	if len(values) != s.length {
		return fmt.Errorf("indicator %s has %d values, expected %d", name, len(values), s.length)
	}

	s.names = append(s.names, name)
	s.values[name] = values

	return nil
}

// Get returns a copy of the sequence stored under name.
func (s IndicatorSet) Get(name string) ([]float64, bool) {
	values, ok := s.values[name]
	if !ok {
		return nil, false
	}

	copied := make([]float64, len(values))
	copy(copied, values)

	return copied, true
}

// Names returns the indicator names in insertion order.
func (s IndicatorSet) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)

	return names
}

// Len returns the length every sequence in the set shares.
func (s IndicatorSet) Len() int {
	return s.length
}

// LastDefined returns the last value in values that is not NaN.
func LastDefined(values []float64) optional.Option[float64] {
	for i := len(values) - 1; i >= 0; i-- {
		if !math.IsNaN(values[i]) {
			return optional.Some(values[i])
		}
	}

	return optional.None[float64]()
}

// CountDefined returns the number of entries in values that are not NaN.
func CountDefined(values []float64) int {
	count := 0

	for _, v := range values {
		if !math.IsNaN(v) {
			count++
		}
	}

	return count
}
