package writer

import (
	"github.com/rxtech-lab/argo-report/internal/types"
)

// MarketDataWriter exports fetched bars to a destination.
type MarketDataWriter interface {
	// Initialize prepares the destination. It must be called before Write.
	Initialize() error
	// Write buffers a single bar.
	Write(data types.MarketData) error
	// Finalize flushes the buffered bars and returns where they were written.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}

// WriteAll initializes w, writes every bar and finalizes, closing w on every path.
func WriteAll(w MarketDataWriter, bars []types.MarketData) (outputPath string, err error) {
	if err = w.Initialize(); err != nil {
		return "", err
	}

	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			outputPath = ""
			err = cerr
		}
	}()

	for _, bar := range bars {
		if err = w.Write(bar); err != nil {
			return "", err
		}
	}

	return w.Finalize()
}
