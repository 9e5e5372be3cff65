package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/mocks"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type VolatilityTestSuite struct {
	suite.Suite
}

func TestVolatilitySuite(t *testing.T) {
	suite.Run(t, new(VolatilityTestSuite))
}

func (suite *VolatilityTestSuite) TestNewVolatility() {
	v := NewVolatility()
	suite.Equal("Volatility", v.Name())
	suite.Equal(types.IndicatorTypeVolatility, v.Type())
	suite.Equal(20, v.(*Volatility).Period())
}

func (suite *VolatilityTestSuite) TestConfig() {
	v := NewVolatility()

	suite.NoError(v.Config(10))
	suite.Equal(10, v.(*Volatility).Period())

	err := v.Config(1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))

	err = v.Config("ten")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))

	err = v.Config(10, 20)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *VolatilityTestSuite) TestPercentChange() {
	pct := PercentChange([]float64{100, 110, 99})
	suite.True(math.IsNaN(pct[0]))
	suite.InDelta(0.1, pct[1], 1e-12)
	suite.InDelta(-0.1, pct[2], 1e-12)
}

func (suite *VolatilityTestSuite) TestPercentChangeZeroPriorClose() {
	pct := PercentChange([]float64{10, 0, 5, 6})
	suite.True(math.IsNaN(pct[0]))
	suite.InDelta(-1.0, pct[1], 1e-12)
	suite.True(math.IsNaN(pct[2]))
	suite.InDelta(0.2, pct[3], 1e-12)
}

func (suite *VolatilityTestSuite) TestRollingVolatilityKnownValues() {
	result, err := RollingVolatility([]float64{100, 110, 99, 99}, 2)
	suite.NoError(err)
	suite.Len(result, 4)
	suite.True(math.IsNaN(result[0]))
	suite.True(math.IsNaN(result[1]))
	suite.InDelta(math.Sqrt(0.02)*math.Sqrt(252), result[2], 1e-9)
	suite.InDelta(math.Sqrt(0.005)*math.Sqrt(252), result[3], 1e-9)
}

func (suite *VolatilityTestSuite) TestRollingVolatilityUndefinedPrefix() {
	generator := mocks.NewDataGenerator(7)
	config := mocks.DefaultConfig()
	config.Count = 60
	closes := types.NewPriceSeries(config.Symbol, generator.Generate(config)).Closes()

	result, err := RollingVolatility(closes, 20)
	suite.NoError(err)
	suite.Len(result, 60)

	for i := 0; i < 20; i++ {
		suite.True(math.IsNaN(result[i]), "index %d should be undefined", i)
	}

	suite.Equal(40, types.CountDefined(result))

	for i := 20; i < len(result); i++ {
		suite.GreaterOrEqual(result[i], 0.0)
	}
}

func (suite *VolatilityTestSuite) TestRollingVolatilityConstantPrices() {
	result, err := RollingVolatility([]float64{5, 5, 5, 5, 5}, 3)
	suite.NoError(err)
	suite.Equal(0.0, result[3])
	suite.Equal(0.0, result[4])
}

func (suite *VolatilityTestSuite) TestRollingVolatilityZeroPriorCloseIsUndefined() {
	result, err := RollingVolatility([]float64{10, 0, 5, 6, 7, 8}, 2)
	suite.NoError(err)
	suite.Len(result, 6)
	suite.True(math.IsNaN(result[2]))
	suite.True(math.IsNaN(result[3]))
	suite.False(math.IsNaN(result[4]))
	suite.False(math.IsInf(result[4], 0))
}

func (suite *VolatilityTestSuite) TestRollingVolatilityShortSeries() {
	result, err := RollingVolatility([]float64{10, 11, 12}, 20)
	suite.NoError(err)
	suite.Equal(0, types.CountDefined(result))

	result, err = RollingVolatility([]float64{42}, 20)
	suite.NoError(err)
	suite.Len(result, 1)
	suite.True(math.IsNaN(result[0]))

	result, err = RollingVolatility(nil, 20)
	suite.NoError(err)
	suite.Empty(result)
}

func (suite *VolatilityTestSuite) TestRollingStdDevInvalidWindow() {
	_, err := RollingStdDev([]float64{1, 2, 3}, 1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
}
