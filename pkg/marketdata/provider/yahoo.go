package provider

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/tidwall/gjson"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches daily bars from the public Yahoo Finance chart API.
type YahooClient struct {
	client *resty.Client
	// SymbolMap maps ticker aliases to Yahoo symbols.
	SymbolMap map[string]string
	// AutoAdjust scales open, high, low and close by the split and dividend adjustment factor.
	AutoAdjust bool
}

// NewYahooClient creates a Yahoo client against the public endpoint.
func NewYahooClient() *YahooClient {
	return NewYahooClientWithBaseURL(yahooBaseURL)
}

// NewYahooClientWithBaseURL creates a Yahoo client against baseURL.
func NewYahooClientWithBaseURL(baseURL string) *YahooClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")

	return &YahooClient{
		client: client,
		SymbolMap: map[string]string{
			"SPX":   "^GSPC",
			"SP500": "^GSPC",
		},
		AutoAdjust: true,
	}
}

func (c *YahooClient) yahooSymbol(ticker string) string {
	if mapped, ok := c.SymbolMap[ticker]; ok {
		return mapped
	}

	return ticker
}

// Fetch implements Provider.
func (c *YahooClient) Fetch(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnFetchProgress) ([]types.MarketData, error) {
	reportProgress(onProgress, 0, 1, fmt.Sprintf("Fetching %s", ticker))

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("symbol", c.yahooSymbol(ticker)).
		SetQueryParams(map[string]string{
			"period1":  strconv.FormatInt(startDate.Unix(), 10),
			"period2":  strconv.FormatInt(endDate.Unix(), 10),
			"interval": "1d",
			"events":   "history",
		}).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "failed to fetch %s from yahoo", ticker)
	}

	if resp.IsError() {
		description := gjson.GetBytes(resp.Body(), "chart.error.description").String()

		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo returned status %d for %s: %s", resp.StatusCode(), ticker, description)
	}

	bars, err := parseYahooChart(ticker, resp.Body(), c.AutoAdjust)
	if err != nil {
		return nil, err
	}

	reportProgress(onProgress, 1, 1, fmt.Sprintf("Fetched %d bars for %s", len(bars), ticker))

	return bars, nil
}

// parseYahooChart converts a v8 chart response into bars. Bars with a null close are skipped.
// Other null fields are NaN.
func parseYahooChart(ticker string, body []byte, autoAdjust bool) ([]types.MarketData, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Newf(errors.ErrCodeMarketDataParseFailed, "invalid yahoo response for %s", ticker)
	}

	chart := gjson.GetBytes(body, "chart")

	if apiErr := chart.Get("error"); apiErr.Exists() && apiErr.Type != gjson.Null {
		return nil, errors.Newf(errors.ErrCodeMarketDataFetchFailed, "yahoo api error for %s: %s", ticker, apiErr.Get("description").String())
	}

	result := chart.Get("result.0")
	if !result.Exists() {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "yahoo returned no result for %s", ticker)
	}

	timestamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()
	adjCloses := result.Get("indicators.adjclose.0.adjclose").Array()

	bars := make([]types.MarketData, 0, len(timestamps))

	for i, ts := range timestamps {
		if i >= len(closes) || closes[i].Type == gjson.Null {
			continue
		}

		bar := types.MarketData{
			Id:     "",
			Symbol: ticker,
			Time:   time.Unix(ts.Int(), 0).UTC(),
			Open:   valueAt(opens, i),
			High:   valueAt(highs, i),
			Low:    valueAt(lows, i),
			Close:  closes[i].Float(),
			Volume: valueAt(volumes, i),
		}

		if autoAdjust && i < len(adjCloses) && adjCloses[i].Type != gjson.Null && bar.Close != 0 {
			ratio := adjCloses[i].Float() / bar.Close
			bar.Open *= ratio
			bar.High *= ratio
			bar.Low *= ratio
			bar.Close = adjCloses[i].Float()
		}

		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	return bars, nil
}

// valueAt returns values[i], or NaN when the entry is missing or null.
func valueAt(values []gjson.Result, i int) float64 {
	if i >= len(values) || values[i].Type == gjson.Null {
		return math.NaN()
	}

	return values[i].Float()
}
