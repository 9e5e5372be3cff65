package provider

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/rxtech-lab/argo-report/pkg/marketdata/writer"
	"github.com/stretchr/testify/suite"
)

type DuckDBSourceTestSuite struct {
	suite.Suite
	dataDir string
	aapl    []types.MarketData
}

func TestDuckDBSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBSourceTestSuite))
}

func (suite *DuckDBSourceTestSuite) SetupTest() {
	suite.dataDir = suite.T().TempDir()

	suite.aapl = dailyBars("AAPL", 30, 185)
	tsla := dailyBars("TSLA", 30, 248)

	for name, bars := range map[string][]types.MarketData{"AAPL": suite.aapl, "TSLA": tsla} {
		_, err := writer.WriteAll(writer.NewDuckDBWriter(filepath.Join(suite.dataDir, name+".parquet"), nil), bars)
		suite.Require().NoError(err)
	}
}

func dailyBars(symbol string, count int, price float64) []types.MarketData {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.MarketData, count)

	for i := range bars {
		closePrice := price + float64(i)*0.5
		bars[i] = types.MarketData{
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   closePrice - 0.25,
			High:   closePrice + 1,
			Low:    closePrice - 1,
			Close:  closePrice,
			Volume: 1_000_000,
		}
	}

	return bars
}

func (suite *DuckDBSourceTestSuite) TestNewDuckDBSourceRequiresPath() {
	source, err := NewDuckDBSource("")
	suite.Error(err)
	suite.Nil(source)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *DuckDBSourceTestSuite) TestFetchFiltersBySymbolAndRange() {
	source, err := NewDuckDBSource(suite.dataDir)
	suite.Require().NoError(err)
	defer source.Close()

	start := suite.aapl[5].Time
	end := suite.aapl[15].Time

	bars, err := source.Fetch(context.Background(), "AAPL", start, end, nil)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 10)

	for i, bar := range bars {
		suite.Equal("AAPL", bar.Symbol)
		suite.True(bar.Time.Equal(suite.aapl[5+i].Time))
		suite.InDelta(suite.aapl[5+i].Close, bar.Close, 1e-9)
		suite.NotEmpty(bar.Id)
	}
}

func (suite *DuckDBSourceTestSuite) TestFetchUnknownSymbol() {
	source, err := NewDuckDBSource(suite.dataDir)
	suite.Require().NoError(err)
	defer source.Close()

	bars, err := source.Fetch(context.Background(), "MSFT", time.Time{}, time.Now(), nil)
	suite.NoError(err)
	suite.Empty(bars)
}

func (suite *DuckDBSourceTestSuite) TestFetchMissingFiles() {
	source, err := NewDuckDBSource(filepath.Join(suite.dataDir, "empty"))
	suite.Require().NoError(err)
	defer source.Close()

	_, err = source.Fetch(context.Background(), "AAPL", time.Time{}, time.Now(), nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}
