package marketdata

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-report/internal/logger"
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/rxtech-lab/argo-report/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-report/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=yahoo polygon binance duckdb"`
	PolygonApiKey string                `validate:"required_if=ProviderType polygon"`
	DataPath      string                `validate:"required_if=ProviderType duckdb"`
	// ExportPath, when set, is the directory the fetched bars are exported to as Parquet.
	ExportPath string
}

// FetchParams holds the parameters for a single fetch.
type FetchParams struct {
	Ticker    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
}

// Client fetches daily bars from a provider and optionally exports them.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	logger     *logger.Logger
	onProgress provider.OnFetchProgress
}

// NewClient creates a market data client for the configured provider.
func NewClient(config ClientConfig, log *logger.Logger, onProgress provider.OnFetchProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, provider.Config{
		PolygonApiKey: config.PolygonApiKey,
		DataPath:      config.DataPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", config.ProviderType, err)
	}

	return newClient(config, validate, marketProvider, log, onProgress), nil
}

// NewClientWithProvider creates a client around an existing provider.
func NewClientWithProvider(config ClientConfig, marketProvider provider.Provider, log *logger.Logger, onProgress provider.OnFetchProgress) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid client configuration", err)
	}

	if marketProvider == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "provider is required")
	}

	return newClient(config, validate, marketProvider, log, onProgress), nil
}

func newClient(config ClientConfig, validate *validator.Validate, marketProvider provider.Provider, log *logger.Logger, onProgress provider.OnFetchProgress) *Client {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		logger:     log,
		onProgress: onProgress,
	}
}

// Fetch returns the daily bars of params.Ticker as an ascending PriceSeries.
// The context can be used to cancel the fetch.
func (c *Client) Fetch(ctx context.Context, params FetchParams) (types.PriceSeries, error) {
	if err := c.validate.Struct(params); err != nil {
		return types.PriceSeries{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid fetch parameters", err)
	}

	c.logger.Debug("Fetching market data",
		zap.String("ticker", params.Ticker),
		zap.Time("start", params.StartDate),
		zap.Time("end", params.EndDate),
		zap.String("provider", string(c.config.ProviderType)),
	)

	bars, err := c.provider.Fetch(ctx, params.Ticker, params.StartDate, params.EndDate, c.onProgress)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("fetch failed: %w", err)
	}

	series := types.NewPriceSeries(params.Ticker, bars)

	c.logger.Info("Fetched market data", zap.String("ticker", params.Ticker), zap.Int("bars", series.Len()))

	if c.config.ExportPath != "" && !series.IsEmpty() {
		if _, err := c.export(params, series.Bars); err != nil {
			return types.PriceSeries{}, err
		}
	}

	return series, nil
}

// Close releases the provider when it holds resources.
func (c *Client) Close() error {
	if closer, ok := c.provider.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// export writes bars to TICKER_START_END.parquet inside the export directory.
func (c *Client) export(params FetchParams, bars []types.MarketData) (string, error) {
	if err := os.MkdirAll(c.config.ExportPath, 0o755); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create export directory %s", c.config.ExportPath)
	}

	outputPath := filepath.Join(c.config.ExportPath, ExportFileName(params))

	path, err := writer.WriteAll(writer.NewDuckDBWriter(outputPath, c.logger), bars)
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", params.Ticker, err)
	}

	return path, nil
}

// ExportFileName returns the Parquet file name used for an export of params.
func ExportFileName(params FetchParams) string {
	return fmt.Sprintf("%s_%s_%s.parquet",
		params.Ticker,
		params.StartDate.Format("2006-01-02"),
		params.EndDate.Format("2006-01-02"))
}

// DateRange returns the window of the last days days ending at now.
func DateRange(now time.Time, days int) (start time.Time, end time.Time) {
	return now.AddDate(0, 0, -days), now
}
