package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rxtech-lab/argo-report/internal/analysis"
	"github.com/rxtech-lab/argo-report/internal/config"
	"github.com/rxtech-lab/argo-report/internal/logger"
	"github.com/rxtech-lab/argo-report/internal/report"
	"github.com/rxtech-lab/argo-report/pkg/marketdata"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// reportAction analyzes every configured ticker and prints its statistics to stdout.
func reportAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync fails on some terminals

	progress := newProgressReporter(os.Stderr)
	defer progress.Finish()

	client, err := marketdata.NewClient(cfg.ClientConfig(), log, progress.OnProgress)
	if err != nil {
		return fmt.Errorf("failed to create market data client: %w", err)
	}
	defer client.Close()

	runner, err := analysis.NewRunner(client, analysis.Options{
		Tickers:    cfg.Tickers,
		Days:       cfg.Days,
		OutputDir:  cfg.OutputDir,
		Indicators: cfg.IndicatorConfig(),
		Style:      report.DefaultChartStyle(),
	}, os.Stdout, log)
	if err != nil {
		return err
	}

	log.Info("Starting analysis",
		zap.Strings("tickers", cfg.Tickers),
		zap.Int("days", cfg.Days),
		zap.String("provider", cfg.Provider),
	)

	results, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	for _, result := range results {
		log.Debug("Chart saved", zap.String("ticker", result.Ticker), zap.String("path", result.ChartPath))
	}

	return nil
}

// schemaAction prints the config file JSON schema.
func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, schema)

	return err
}

// loadConfig builds the configuration from the optional config file and the flags that were set.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.Default()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}

		cfg = loaded
	}

	if cmd.IsSet("ticker") {
		cfg.Tickers = cmd.StringSlice("ticker")
	}

	if cmd.IsSet("days") {
		cfg.Days = cmd.Int("days")
	}

	if cmd.IsSet("provider") {
		cfg.Provider = cmd.String("provider")
	}

	if cmd.IsSet("ma") {
		cfg.MAWindows = cmd.IntSlice("ma")
	}

	if cmd.IsSet("volatility-window") {
		cfg.VolatilityWindow = cmd.Int("volatility-window")
	}

	if cmd.IsSet("output") {
		cfg.OutputDir = cmd.String("output")
	}

	if cmd.IsSet("export") {
		cfg.ExportDir = cmd.String("export")
	}

	if cmd.IsSet("data") {
		cfg.DataPath = cmd.String("data")
	}

	if key := cmd.String("polygon-api-key"); key != "" {
		cfg.PolygonApiKey = key
	}

	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}
