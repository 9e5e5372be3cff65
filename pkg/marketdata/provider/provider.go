package provider

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
	ProviderDuckDB  ProviderType = "duckdb"
)

type OnFetchProgress = func(current float64, total float64, message string)

type Provider interface {
	// Fetch returns the daily bars of ticker between startDate and endDate, ascending by time.
	// The context can be used to cancel the request.
	// example:
	// Fetch(ctx, "AAPL", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), onProgress)
	Fetch(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnFetchProgress) ([]types.MarketData, error)
}

// Config carries the settings any provider may need.
type Config struct {
	// PolygonApiKey authenticates against Polygon.io.
	PolygonApiKey string
	// DataPath is the directory of Parquet files read by the DuckDB provider.
	DataPath string
}

// NewMarketDataProvider creates a new market data provider based on the provider type.
func NewMarketDataProvider(providerType ProviderType, config Config) (Provider, error) {
	switch providerType {
	case ProviderYahoo:
		return NewYahooClient(), nil
	case ProviderPolygon:
		return NewPolygonClient(config.PolygonApiKey)
	case ProviderBinance:
		return NewBinanceClient()
	case ProviderDuckDB:
		source, err := NewDuckDBSource(config.DataPath)
		if err != nil {
			return nil, err
		}

		return source, nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}

// reportProgress calls onProgress when it is set.
func reportProgress(onProgress OnFetchProgress, current float64, total float64, message string) {
	if onProgress != nil {
		onProgress(current, total, message)
	}
}
