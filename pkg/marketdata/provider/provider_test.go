package provider

import (
	"testing"

	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ProviderTestSuite struct {
	suite.Suite
}

func TestProviderSuite(t *testing.T) {
	suite.Run(t, new(ProviderTestSuite))
}

func (suite *ProviderTestSuite) TestNewMarketDataProvider() {
	tests := []struct {
		name         string
		providerType ProviderType
		config       Config
		wantType     any
		wantCode     errors.ErrorCode
	}{
		{name: "yahoo", providerType: ProviderYahoo, wantType: &YahooClient{}},
		{name: "polygon", providerType: ProviderPolygon, config: Config{PolygonApiKey: "key"}, wantType: &PolygonClient{}},
		{name: "polygon without key", providerType: ProviderPolygon, wantCode: errors.ErrCodeMissingParameter},
		{name: "binance", providerType: ProviderBinance, wantType: &BinanceClient{}},
		{name: "duckdb", providerType: ProviderDuckDB, config: Config{DataPath: suite.T().TempDir()}, wantType: &DuckDBSource{}},
		{name: "duckdb without path", providerType: ProviderDuckDB, wantCode: errors.ErrCodeMissingParameter},
		{name: "unknown", providerType: ProviderType("bloomberg"), wantCode: errors.ErrCodeInvalidProvider},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			p, err := NewMarketDataProvider(tt.providerType, tt.config)
			if tt.wantType == nil {
				suite.Error(err)
				suite.Nil(p)
				suite.Equal(tt.wantCode, errors.GetCode(err))

				return
			}

			suite.Require().NoError(err)
			suite.IsType(tt.wantType, p)

			if source, ok := p.(*DuckDBSource); ok {
				suite.NoError(source.Close())
			}
		})
	}
}
