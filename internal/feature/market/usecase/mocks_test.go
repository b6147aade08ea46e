package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"stockwatch_backend/internal/feature/market/domain/entity"
)

// mockRemoteSource is a function-field mock of RemoteSource that counts calls per method.
type mockRemoteSource struct {
	TopMoversFunc       func(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error)
	CompanyOverviewFunc func(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error)
	SymbolSearchFunc    func(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error)
	TimeSeriesFunc      func(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error)
	MonthlyAdjustedFunc func(ctx context.Context, symbol, apiKey string) (entity.AdjustedTimeSeries, error)
	NewsSentimentFunc   func(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error)

	TopMoversCalls       atomic.Int32
	CompanyOverviewCalls atomic.Int32
	SymbolSearchCalls    atomic.Int32
	TimeSeriesCalls      atomic.Int32
	MonthlyAdjustedCalls atomic.Int32
	NewsSentimentCalls   atomic.Int32
}

var errNotImplemented = errors.New("mock func is not implemented")

func (m *mockRemoteSource) TopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
	m.TopMoversCalls.Add(1)
	if m.TopMoversFunc != nil {
		return m.TopMoversFunc(ctx, apiKey)
	}
	return entity.QuoteSnapshot{}, errNotImplemented
}

func (m *mockRemoteSource) CompanyOverview(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
	m.CompanyOverviewCalls.Add(1)
	if m.CompanyOverviewFunc != nil {
		return m.CompanyOverviewFunc(ctx, symbol, apiKey)
	}
	return entity.CompanyProfile{}, errNotImplemented
}

func (m *mockRemoteSource) SymbolSearch(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error) {
	m.SymbolSearchCalls.Add(1)
	if m.SymbolSearchFunc != nil {
		return m.SymbolSearchFunc(ctx, keywords, apiKey)
	}
	return entity.SearchResults{}, errNotImplemented
}

func (m *mockRemoteSource) TimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error) {
	m.TimeSeriesCalls.Add(1)
	if m.TimeSeriesFunc != nil {
		return m.TimeSeriesFunc(ctx, symbol, g, apiKey)
	}
	return entity.TimeSeries{}, errNotImplemented
}

func (m *mockRemoteSource) MonthlyAdjusted(ctx context.Context, symbol, apiKey string) (entity.AdjustedTimeSeries, error) {
	m.MonthlyAdjustedCalls.Add(1)
	if m.MonthlyAdjustedFunc != nil {
		return m.MonthlyAdjustedFunc(ctx, symbol, apiKey)
	}
	return entity.AdjustedTimeSeries{}, errNotImplemented
}

func (m *mockRemoteSource) NewsSentiment(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error) {
	m.NewsSentimentCalls.Add(1)
	if m.NewsSentimentFunc != nil {
		return m.NewsSentimentFunc(ctx, tickers, apiKey)
	}
	return entity.NewsFeed{}, errNotImplemented
}

// memorySnapshotStore keeps the latest snapshot in memory, like a single-row table.
type memorySnapshotStore struct {
	mu        sync.Mutex
	stored    *entity.StoredSnapshot
	saveErr   error
	latestErr error
	saves     int
}

func (s *memorySnapshotStore) Save(_ context.Context, snapshot entity.QuoteSnapshot, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.stored = &entity.StoredSnapshot{Snapshot: snapshot, FetchedAt: fetchedAt}
	return nil
}

func (s *memorySnapshotStore) Latest(_ context.Context) (*entity.StoredSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latestErr != nil {
		return nil, s.latestErr
	}
	if s.stored == nil {
		return nil, nil
	}
	cp := *s.stored
	return &cp, nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
