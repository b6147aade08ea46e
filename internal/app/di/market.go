// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	marketadapters "stockwatch_backend/internal/feature/market/adapters"
	"stockwatch_backend/internal/feature/market/usecase"
	"stockwatch_backend/internal/platform/cache"
	"stockwatch_backend/internal/platform/externalapi/alphavantage"
	infrahttp "stockwatch_backend/internal/platform/http"
)

// NewMarketSource creates the Alpha Vantage client with HTTP client and rate limiter,
// decorated with the shared Redis cache. A nil rdb disables the shared cache.
func NewMarketSource(rdb *redis.Client) usecase.RemoteSource {
	cfg := alphavantage.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	remote := alphavantage.NewAlphaVantageMarket(cfg, httpClient, nil)
	return cache.NewCachingMarketSource(rdb, remote, "market")
}

// NewMarketUsecase wires the data access layer over the remote source and the top-movers store.
func NewMarketUsecase(db *gorm.DB, rdb *redis.Client) *usecase.MarketUsecase {
	return usecase.NewMarketUsecase(NewMarketSource(rdb), marketadapters.NewSnapshotStore(db))
}
