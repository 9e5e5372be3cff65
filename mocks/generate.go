package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-report/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_fetcher.go -package=mocks github.com/rxtech-lab/argo-report/internal/analysis Fetcher
//go:generate mockgen -destination=./mock_indicator.go -package=mocks github.com/rxtech-lab/argo-report/internal/indicator Indicator
