package errors

// ErrorCode identifies a failure. The hundreds digit is its Category.
type ErrorCode int

// Category is the range an ErrorCode belongs to.
type Category int

const (
	CategoryGeneral    Category = 0
	CategoryValidation Category = 1
	CategoryData       Category = 2
	CategoryIndicator  Category = 3
	CategoryMarketData Category = 7
	CategoryReport     Category = 9
)

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 106
	ErrCodeInvalidType          ErrorCode = 107
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidDateRange     ErrorCode = 110

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound    ErrorCode = 300
	ErrCodeIndicatorCalculation ErrorCode = 302

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidProvider       ErrorCode = 704

	// Report errors (900-999)
	ErrCodeChartRenderFailed ErrorCode = 900
	ErrCodeReportWriteFailed ErrorCode = 901
)

func (c ErrorCode) Category() Category {
	return Category(c / 100)
}
