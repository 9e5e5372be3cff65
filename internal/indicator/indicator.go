package indicator

import (
	"github.com/rxtech-lab/argo-report/internal/types"
)

// Indicator is a causal transformation over a price series. The value at index i of the
// result depends only on bars [0..i]. Entries without enough history are NaN.
type Indicator interface {
	// Name returns the key the indicator is stored under in an IndicatorSet, e.g. "MA_20".
	Name() string
	// Type returns the kind of the indicator.
	Type() types.IndicatorType
	// Calculate returns a new sequence aligned with series. The series is not modified.
	Calculate(series types.PriceSeries) ([]float64, error)
	// Config configures the indicator.
	Config(params ...any) error
}

// periodParam extracts a window length from an int or float64 parameter.
func periodParam(param any) (int, bool) {
	switch p := param.(type) {
	case int:
		return p, true
	case float64:
		return int(p), true
	default:
		return 0, false
	}
}
