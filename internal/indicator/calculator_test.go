package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-report/internal/types"
	"github.com/rxtech-lab/argo-report/mocks"
	"github.com/rxtech-lab/argo-report/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CalculatorTestSuite struct {
	suite.Suite
	calculator *Calculator
}

func TestCalculatorSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}

func (suite *CalculatorTestSuite) SetupTest() {
	calculator, err := NewCalculator(DefaultConfig())
	suite.Require().NoError(err)
	suite.calculator = calculator
}

func (suite *CalculatorTestSuite) TestDefaultIndicatorOrder() {
	suite.Equal([]string{"MA_20", "MA_50", "MA_200", "Volatility"}, suite.calculator.Registry().ListIndicators())
}

func (suite *CalculatorTestSuite) TestCalculateYearOfBars() {
	generator := mocks.NewDataGenerator(1)
	config := mocks.DefaultConfig()
	config.Count = 250
	series := types.NewPriceSeries(config.Symbol, generator.Generate(config))

	set, err := suite.calculator.Calculate(series)
	suite.NoError(err)
	suite.Equal(250, set.Len())
	suite.Equal([]string{"MA_20", "MA_50", "MA_200", "Volatility"}, set.Names())

	for _, tc := range []struct {
		name    string
		defined int
	}{
		{"MA_20", 231},
		{"MA_50", 201},
		{"MA_200", 51},
		{"Volatility", 230},
	} {
		values, ok := set.Get(tc.name)
		suite.True(ok)
		suite.Len(values, 250)
		suite.Equal(tc.defined, types.CountDefined(values), tc.name)
	}
}

func (suite *CalculatorTestSuite) TestCalculateDoesNotModifySeries() {
	series := seriesFromCloses(10, 20, 30, 40, 50)
	before := series.Closes()

	_, err := suite.calculator.Calculate(series)
	suite.NoError(err)
	suite.Equal(before, series.Closes())
}

func (suite *CalculatorTestSuite) TestCalculateIsCausal() {
	generator := mocks.NewDataGenerator(3)
	config := mocks.DefaultConfig()
	config.Count = 80
	bars := generator.Generate(config)

	calculator, err := NewCalculator(Config{MAWindows: []int{5, 10}, VolatilityWindow: 5})
	suite.Require().NoError(err)

	full, err := calculator.Calculate(types.NewPriceSeries("TEST", bars))
	suite.Require().NoError(err)

	prefix, err := calculator.Calculate(types.NewPriceSeries("TEST", bars[:40]))
	suite.Require().NoError(err)

	for _, name := range full.Names() {
		fullValues, _ := full.Get(name)
		prefixValues, _ := prefix.Get(name)

		for i := range prefixValues {
			if math.IsNaN(prefixValues[i]) {
				suite.True(math.IsNaN(fullValues[i]), "%s[%d]", name, i)

				continue
			}

			suite.Equal(prefixValues[i], fullValues[i], "%s[%d]", name, i)
		}
	}
}

func (suite *CalculatorTestSuite) TestCalculateEmptySeries() {
	set, err := suite.calculator.Calculate(types.NewPriceSeries("EMPTY", nil))
	suite.NoError(err)
	suite.Equal(0, set.Len())

	for _, name := range set.Names() {
		values, ok := set.Get(name)
		suite.True(ok)
		suite.Empty(values)
	}
}

func (suite *CalculatorTestSuite) TestCalculateSingleBar() {
	set, err := suite.calculator.Calculate(seriesFromCloses(123.45))
	suite.NoError(err)

	for _, name := range set.Names() {
		values, _ := set.Get(name)
		suite.Len(values, 1)
		suite.True(math.IsNaN(values[0]), name)
	}
}

func (suite *CalculatorTestSuite) TestNewCalculatorRejectsInvalidConfig() {
	_, err := NewCalculator(Config{MAWindows: []int{0}, VolatilityWindow: 20})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	_, err = NewCalculator(Config{MAWindows: []int{20, 20}, VolatilityWindow: 20})
	suite.Error(err)
	suite.Contains(err.Error(), "already registered")

	_, err = NewCalculator(Config{MAWindows: []int{20}, VolatilityWindow: 1})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *CalculatorTestSuite) TestRegistryRemove() {
	registry := NewIndicatorRegistry()
	suite.NoError(registry.RegisterIndicator(NewMA()))
	suite.NoError(registry.RegisterIndicator(NewVolatility()))

	suite.NoError(registry.RemoveIndicator("MA_20"))
	suite.Equal([]string{"Volatility"}, registry.ListIndicators())

	err := registry.RemoveIndicator("MA_20")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))

	_, err = registry.GetIndicator("MA_20")
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorNotFound))
}

func (suite *CalculatorTestSuite) TestCalculateWrapsIndicatorFailure() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	broken := mocks.NewMockIndicator(ctrl)
	broken.EXPECT().Name().Return("Broken").AnyTimes()
	broken.EXPECT().Calculate(gomock.Any()).Return(nil, errors.New(errors.ErrCodeInsufficientData, "not enough bars"))

	registry := NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(broken))

	_, err := NewCalculatorWithRegistry(registry).Calculate(seriesFromCloses(1, 2, 3))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
	suite.Contains(err.Error(), "Broken")
}

func (suite *CalculatorTestSuite) TestCalculateRejectsMisalignedIndicator() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	short := mocks.NewMockIndicator(ctrl)
	short.EXPECT().Name().Return("Short").AnyTimes()
	short.EXPECT().Calculate(gomock.Any()).Return([]float64{1}, nil)

	registry := NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(short))

	_, err := NewCalculatorWithRegistry(registry).Calculate(seriesFromCloses(1, 2, 3))
	suite.True(errors.HasCode(err, errors.ErrCodeIndicatorCalculation))
}
