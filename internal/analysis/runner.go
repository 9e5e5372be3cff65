package analysis

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rxtech-lab/argo-report/internal/indicator"
	"github.com/rxtech-lab/argo-report/internal/logger"
	"github.com/rxtech-lab/argo-report/internal/report"
	"github.com/rxtech-lab/argo-report/internal/stats"
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/rxtech-lab/argo-report/pkg/marketdata"
	"go.uber.org/zap"
)

// Fetcher returns the daily bars of one ticker. *marketdata.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, params marketdata.FetchParams) (types.PriceSeries, error)
}

// Options configures a Runner.
type Options struct {
	Tickers    []string
	Days       int
	OutputDir  string
	Indicators indicator.Config
	Style      report.ChartStyle
	// Now returns the end of the date range. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of analyzing one ticker.
type Result struct {
	Ticker    string
	ChartPath string
	Summary   stats.Summary
}

// Runner analyzes tickers one after another: fetch, compute, render, summarize, print.
type Runner struct {
	fetcher    Fetcher
	calculator *indicator.Calculator
	renderer   *report.ChartRenderer
	console    *report.ConsoleWriter
	logger     *logger.Logger
	options    Options
}

// NewRunner creates a Runner printing to out.
func NewRunner(fetcher Fetcher, options Options, out io.Writer, log *logger.Logger) (*Runner, error) {
	if fetcher == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "fetcher is required")
	}

	if options.Days <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidDateRange, "days must be positive, got %d", options.Days)
	}

	if err := options.Style.Validate(); err != nil {
		return nil, err
	}

	calculator, err := indicator.NewCalculator(options.Indicators)
	if err != nil {
		return nil, err
	}

	if options.Now == nil {
		options.Now = time.Now
	}

	if options.OutputDir == "" {
		options.OutputDir = "."
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Runner{
		fetcher:    fetcher,
		calculator: calculator,
		renderer:   report.NewChartRenderer(log),
		console:    report.NewConsoleWriter(out),
		logger:     log,
		options:    options,
	}, nil
}

// Run analyzes every configured ticker in order and stops at the first failure.
// Results of the tickers completed before the failure are returned with the error.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	if err := os.MkdirAll(r.options.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create output directory %s", r.options.OutputDir)
	}

	start, end := marketdata.DateRange(r.options.Now(), r.options.Days)
	results := make([]Result, 0, len(r.options.Tickers))

	for _, ticker := range r.options.Tickers {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := r.Analyze(ctx, ticker, start, end)
		if errors.HasCode(err, errors.ErrCodeNoDataFound) {
			r.logger.Warn("No price data for ticker", zap.String("ticker", ticker), zap.Int("days", r.options.Days))
		}

		if err != nil {
			return results, fmt.Errorf("failed to analyze %s: %w", ticker, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// Analyze runs the full pipeline for ticker over [start, end].
func (r *Runner) Analyze(ctx context.Context, ticker string, start time.Time, end time.Time) (Result, error) {
	if err := r.console.Analyzing(ticker); err != nil {
		return Result{}, err
	}

	series, err := r.fetcher.Fetch(ctx, marketdata.FetchParams{
		Ticker:    ticker,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return Result{}, err
	}

	indicators, err := r.calculator.Calculate(series)
	if err != nil {
		return Result{}, err
	}

	chartPath, err := r.renderer.RenderFile(report.ChartRequest{
		Series:           series,
		Indicators:       indicators,
		VolatilityWindow: r.options.Indicators.VolatilityWindow,
	}, r.options.Style, r.options.OutputDir)
	if err != nil {
		return Result{}, err
	}

	summary, err := stats.Summarize(series, indicators)
	if err != nil {
		return Result{}, err
	}

	if err := r.console.Summary(summary); err != nil {
		return Result{}, err
	}

	r.logger.Info("Analysis complete",
		zap.String("ticker", ticker),
		zap.Int("bars", series.Len()),
		zap.String("chart", chartPath),
	)

	return Result{
		Ticker:    ticker,
		ChartPath: chartPath,
		Summary:   summary,
	}, nil
}
