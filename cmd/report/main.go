package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-report/internal/config"
	"github.com/rxtech-lab/argo-report/internal/version"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/rxtech-lab/argo-report/pkg/marketdata/provider"
	"github.com/urfave/cli/v3"
)

func newCommand() *cli.Command {
	defaults := config.Default()

	return &cli.Command{
		Name:    "argo-report",
		Version: version.GetVersion(),
		Usage:   "Chart moving averages and rolling volatility for stock tickers",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "ticker",
				Aliases: []string{"t"},
				Usage:   "Ticker symbol to analyze, repeatable",
				Value:   defaults.Tickers,
			},
			&cli.IntFlag{
				Name:  "days",
				Usage: "Number of calendar days of history ending today",
				Value: defaults.Days,
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage: fmt.Sprintf("Data provider to use (%s, %s, %s, %s)",
					provider.ProviderYahoo, provider.ProviderPolygon, provider.ProviderBinance, provider.ProviderDuckDB),
				Value: defaults.Provider,
			},
			&cli.IntSliceFlag{
				Name:  "ma",
				Usage: "Moving average window in trading days, repeatable",
				Value: defaults.MAWindows,
			},
			&cli.IntFlag{
				Name:  "volatility-window",
				Usage: "Rolling volatility window in trading days",
				Value: defaults.VolatilityWindow,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the chart images are written to",
				Value:   defaults.OutputDir,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file. Flags override its values",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "Directory to export the fetched bars to as Parquet",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "Directory of Parquet files read by the duckdb provider",
			},
			&cli.StringFlag{
				Name:    "polygon-api-key",
				Usage:   "Polygon.io API key",
				Sources: cli.EnvVars("POLYGON_API_KEY"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: defaults.LogLevel,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the config file",
				Action: schemaAction,
			},
		},
		Action: reportAction,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(errors.ExitStatus(err))
	}
}
