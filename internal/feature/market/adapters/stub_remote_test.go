package adapters

import (
	"context"
	"errors"

	"stockwatch_backend/internal/feature/market/domain/entity"
)

var errStub = errors.New("not stubbed")

// stubRemote answers only TopMovers.
type stubRemote struct {
	topMovers func() (entity.QuoteSnapshot, error)
}

func (s *stubRemote) TopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
	return s.topMovers()
}

func (s *stubRemote) CompanyOverview(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
	return entity.CompanyProfile{}, errStub
}

func (s *stubRemote) SymbolSearch(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error) {
	return entity.SearchResults{}, errStub
}

func (s *stubRemote) TimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error) {
	return entity.TimeSeries{}, errStub
}

func (s *stubRemote) MonthlyAdjusted(ctx context.Context, symbol, apiKey string) (entity.AdjustedTimeSeries, error) {
	return entity.AdjustedTimeSeries{}, errStub
}

func (s *stubRemote) NewsSentiment(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error) {
	return entity.NewsFeed{}, errStub
}
