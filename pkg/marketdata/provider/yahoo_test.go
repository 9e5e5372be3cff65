package provider

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/stretchr/testify/suite"
)

const yahooChartFixture = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "currency": "USD"},
      "timestamp": [1704292200, 1704205800, 1704378600],
      "indicators": {
        "quote": [{
          "open":   [184.22, 187.15, null],
          "high":   [185.88, 188.44, null],
          "low":    [183.43, 183.89, null],
          "close":  [184.25, 185.64, null],
          "volume": [58414500, 82488700, null]
        }],
        "adjclose": [{"adjclose": [92.125, 185.64, null]}]
      }
    }],
    "error": null
  }
}`

type YahooClientTestSuite struct {
	suite.Suite
}

func TestYahooClientSuite(t *testing.T) {
	suite.Run(t, new(YahooClientTestSuite))
}

func (suite *YahooClientTestSuite) newServer(status int, body string, onRequest func(r *http.Request)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if onRequest != nil {
			onRequest(r)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	suite.T().Cleanup(server.Close)

	return server
}

func (suite *YahooClientTestSuite) TestFetchSortsAndSkipsNullBars() {
	var gotPath, gotInterval, gotPeriod1 string

	server := suite.newServer(http.StatusOK, yahooChartFixture, func(r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		gotPeriod1 = r.URL.Query().Get("period1")
	})

	client := NewYahooClientWithBaseURL(server.URL)
	client.AutoAdjust = false

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	var progressCalls int

	bars, err := client.Fetch(context.Background(), "AAPL", start, end, func(current, total float64, message string) {
		progressCalls++
	})
	suite.Require().NoError(err)

	suite.Equal("/v8/finance/chart/AAPL", gotPath)
	suite.Equal("1d", gotInterval)
	suite.Equal("1704067200", gotPeriod1)
	suite.Equal(2, progressCalls)

	suite.Require().Len(bars, 2)
	suite.True(bars[0].Time.Before(bars[1].Time))
	suite.Equal(185.64, bars[0].Close)
	suite.Equal(184.25, bars[1].Close)
	suite.Equal("AAPL", bars[0].Symbol)
	suite.Equal(82488700.0, bars[0].Volume)
}

func (suite *YahooClientTestSuite) TestFetchAutoAdjust() {
	server := suite.newServer(http.StatusOK, yahooChartFixture, nil)

	client := NewYahooClientWithBaseURL(server.URL)

	bars, err := client.Fetch(context.Background(), "AAPL", time.Unix(1704067200, 0), time.Unix(1704412800, 0), nil)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)

	// The second bar has an adjustment ratio of 0.5
	suite.InDelta(92.125, bars[1].Close, 1e-9)
	suite.InDelta(92.11, bars[1].Open, 1e-9)
	suite.InDelta(92.94, bars[1].High, 1e-9)
	suite.InDelta(91.715, bars[1].Low, 1e-9)
	suite.InDelta(185.64, bars[0].Close, 1e-9)
}

func (suite *YahooClientTestSuite) TestFetchSymbolMap() {
	var gotPath string

	server := suite.newServer(http.StatusOK, yahooChartFixture, func(r *http.Request) {
		gotPath = r.URL.Path
	})

	client := NewYahooClientWithBaseURL(server.URL)

	_, err := client.Fetch(context.Background(), "SPX", time.Unix(0, 0), time.Unix(86400, 0), nil)
	suite.Require().NoError(err)
	suite.Equal("/v8/finance/chart/^GSPC", gotPath)
}

func (suite *YahooClientTestSuite) TestFetchHTTPError() {
	body := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`
	server := suite.newServer(http.StatusNotFound, body, nil)

	client := NewYahooClientWithBaseURL(server.URL)

	bars, err := client.Fetch(context.Background(), "NOPE", time.Unix(0, 0), time.Unix(86400, 0), nil)
	suite.Error(err)
	suite.Nil(bars)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	suite.Contains(err.Error(), "symbol may be delisted")
}

func (suite *YahooClientTestSuite) TestParseYahooChart() {
	tests := []struct {
		name      string
		body      string
		wantCode  errors.ErrorCode
		wantErr   bool
		wantCount int
	}{
		{
			name:     "invalid json",
			body:     `{not json`,
			wantErr:  true,
			wantCode: errors.ErrCodeMarketDataParseFailed,
		},
		{
			name:     "api error object",
			body:     `{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input"}}}`,
			wantErr:  true,
			wantCode: errors.ErrCodeMarketDataFetchFailed,
		},
		{
			name:     "missing result",
			body:     `{"chart":{"result":[],"error":null}}`,
			wantErr:  true,
			wantCode: errors.ErrCodeNoDataFound,
		},
		{
			name:      "no timestamps",
			body:      `{"chart":{"result":[{"meta":{},"indicators":{"quote":[{}]}}],"error":null}}`,
			wantCount: 0,
		},
		{
			name:      "fixture",
			body:      yahooChartFixture,
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			bars, err := parseYahooChart("AAPL", []byte(tt.body), true)
			if tt.wantErr {
				suite.Error(err)
				suite.Equal(tt.wantCode, errors.GetCode(err))

				return
			}

			suite.NoError(err)
			suite.Len(bars, tt.wantCount)
		})
	}
}

func (suite *YahooClientTestSuite) TestParseYahooChartNullFieldsAreNaN() {
	body := `{"chart":{"result":[{
		"timestamp": [1704205800, 1704292200],
		"indicators": {"quote": [{
			"open":   [187.15, 184.22],
			"high":   [188.44, null],
			"low":    [183.89, null],
			"close":  [185.64, 184.25],
			"volume": [82488700]
		}]}
	}],"error":null}}`

	bars, err := parseYahooChart("AAPL", []byte(body), false)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)

	suite.Equal(183.89, bars[0].Low)
	suite.Equal(184.25, bars[1].Close)
	suite.Equal(184.22, bars[1].Open)
	suite.True(math.IsNaN(bars[1].High))
	suite.True(math.IsNaN(bars[1].Low))
	suite.True(math.IsNaN(bars[1].Volume))
}
