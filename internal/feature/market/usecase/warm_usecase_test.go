package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockwatch_backend/internal/feature/market/domain"
	"stockwatch_backend/internal/feature/market/domain/entity"
)

type mockSymbolLister struct {
	WatchedSymbolsFunc func(ctx context.Context) ([]string, error)
}

func (m *mockSymbolLister) WatchedSymbols(ctx context.Context) ([]string, error) {
	if m.WatchedSymbolsFunc != nil {
		return m.WatchedSymbolsFunc(ctx)
	}
	return nil, errNotImplemented
}

func watched(symbols ...string) *mockSymbolLister {
	return &mockSymbolLister{WatchedSymbolsFunc: func(ctx context.Context) ([]string, error) { return symbols, nil }}
}

// TestWarmUsecase_WarmAll はウォッチリストの全銘柄について企業情報と日足・週足を取得することを検証します。
func TestWarmUsecase_WarmAll(t *testing.T) {
	t.Parallel()

	remote := &mockRemoteSource{
		TopMoversFunc: func(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
			return sampleSnapshot(), nil
		},
		CompanyOverviewFunc: func(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
			if symbol == "GONE" {
				return entity.CompanyProfile{}, nil
			}
			return entity.CompanyProfile{Name: symbol}, nil
		},
		TimeSeriesFunc: func(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error) {
			if symbol == "MSFT" && g == entity.Weekly {
				return entity.TimeSeries{}, errors.New("alphavantage http 500")
			}
			return entity.TimeSeries{Bars: map[string]entity.Bar{"2024-01-02": {Close: "1"}}}, nil
		},
	}
	market := NewMarketUsecase(remote, nil)
	wu := NewWarmUsecase(market, watched("AAPL", "MSFT", "GONE"))

	report, err := wu.WarmAll(context.Background(), testAPIKey)
	require.NoError(t, err)

	// top movers + 2 profiles + 5 series
	assert.Equal(t, 8, report.Fetched)
	assert.Equal(t, 1, report.Absent)
	assert.Equal(t, 1, report.Failed)
	assert.EqualValues(t, 6, remote.TimeSeriesCalls.Load())
}

// TestWarmUsecase_WarmAll_StopsOnQuota はクォータ到達で以降の取得を打ち切ることを検証します。
func TestWarmUsecase_WarmAll_StopsOnQuota(t *testing.T) {
	t.Parallel()

	remote := &mockRemoteSource{
		TopMoversFunc: func(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
			return sampleSnapshot(), nil
		},
		CompanyOverviewFunc: func(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
			return entity.CompanyProfile{}, fmt.Errorf("%w: 25 requests per day", domain.ErrQuotaExhausted)
		},
	}
	wu := NewWarmUsecase(NewMarketUsecase(remote, nil), watched("AAPL", "MSFT"))

	report, err := wu.WarmAll(context.Background(), testAPIKey)
	assert.ErrorIs(t, err, domain.ErrQuotaExhausted)
	assert.Equal(t, 1, report.Fetched)
	assert.EqualValues(t, 1, remote.CompanyOverviewCalls.Load())
	assert.EqualValues(t, 0, remote.TimeSeriesCalls.Load())
}

// TestWarmUsecase_WarmAll_SymbolListError は銘柄一覧の取得失敗をそのまま返すことを検証します。
func TestWarmUsecase_WarmAll_SymbolListError(t *testing.T) {
	t.Parallel()

	listErr := errors.New("db closed")
	remote := &mockRemoteSource{
		TopMoversFunc: func(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
			return sampleSnapshot(), nil
		},
	}
	wu := NewWarmUsecase(NewMarketUsecase(remote, nil), &mockSymbolLister{
		WatchedSymbolsFunc: func(ctx context.Context) ([]string, error) { return nil, listErr },
	})

	_, err := wu.WarmAll(context.Background(), testAPIKey)
	assert.ErrorIs(t, err, listErr)
}

// TestWarmUsecase_WarmAll_RequestTimeoutContinues は1件のリクエストのタイムアウトでは処理を続けることを検証します。
func TestWarmUsecase_WarmAll_RequestTimeoutContinues(t *testing.T) {
	t.Parallel()

	remote := &mockRemoteSource{
		TopMoversFunc: func(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
			return sampleSnapshot(), nil
		},
		CompanyOverviewFunc: func(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
			if symbol == "SLOW" {
				return entity.CompanyProfile{}, &url.Error{Op: "Get", URL: "https://www.alphavantage.co/query", Err: context.DeadlineExceeded}
			}
			return entity.CompanyProfile{Name: symbol}, nil
		},
		TimeSeriesFunc: func(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error) {
			return entity.TimeSeries{Bars: map[string]entity.Bar{"2024-01-02": {Close: "1"}}}, nil
		},
	}
	wu := NewWarmUsecase(NewMarketUsecase(remote, nil), watched("SLOW", "AAPL"))

	report, err := wu.WarmAll(context.Background(), testAPIKey)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	// top movers + AAPL profile + 4 series
	assert.Equal(t, 6, report.Fetched)
	assert.EqualValues(t, 2, remote.CompanyOverviewCalls.Load())
}

// TestWarmUsecase_WarmAll_StopsWhenCanceled は実行全体の ctx が終わると打ち切ることを検証します。
func TestWarmUsecase_WarmAll_StopsWhenCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	remote := &mockRemoteSource{
		TopMoversFunc: func(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
			return sampleSnapshot(), nil
		},
		CompanyOverviewFunc: func(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
			cancel()
			return entity.CompanyProfile{}, ctx.Err()
		},
	}
	wu := NewWarmUsecase(NewMarketUsecase(remote, nil), watched("AAPL", "MSFT"))

	report, err := wu.WarmAll(ctx, testAPIKey)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, report.Fetched)
	assert.Zero(t, report.Failed)
	assert.EqualValues(t, 1, remote.CompanyOverviewCalls.Load())
	assert.EqualValues(t, 0, remote.TimeSeriesCalls.Load())
}
