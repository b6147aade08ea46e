// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"stockwatch_backend/internal/feature/market/domain/entity"
	"stockwatch_backend/internal/feature/market/usecase"
)

// CachingMarketSource decorates a RemoteSource with a Redis cache shared
// between server instances, so that they spend one upstream quota together.
// Entries expire after the validity window of their data kind. Results that
// mean "not found" or "quota reached" are never stored.
type CachingMarketSource struct {
	inner     usecase.RemoteSource
	rdb       *redis.Client
	namespace string
}

var _ usecase.RemoteSource = (*CachingMarketSource)(nil)

// NewCachingMarketSource decorates a RemoteSource with Redis caching.
// If rdb is nil every call goes straight to inner. If namespace is empty, it uses "market".
func NewCachingMarketSource(rdb *redis.Client, inner usecase.RemoteSource, namespace string) *CachingMarketSource {
	if namespace == "" {
		namespace = "market"
	}
	return &CachingMarketSource{inner: inner, rdb: rdb, namespace: namespace}
}

func (c *CachingMarketSource) TopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
	return cached(ctx, c, usecase.KindTopMovers, "latest", always[entity.QuoteSnapshot], func() (entity.QuoteSnapshot, error) {
		return c.inner.TopMovers(ctx, apiKey)
	})
}

func (c *CachingMarketSource) CompanyOverview(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
	return cached(ctx, c, usecase.KindCompanyProfile, symbol, entity.CompanyProfile.Found, func() (entity.CompanyProfile, error) {
		return c.inner.CompanyOverview(ctx, symbol, apiKey)
	})
}

func (c *CachingMarketSource) SymbolSearch(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error) {
	keep := func(r entity.SearchResults) bool { return r.Information == "" }
	return cached(ctx, c, usecase.KindSymbolSearch, strings.ToLower(keywords), keep, func() (entity.SearchResults, error) {
		return c.inner.SymbolSearch(ctx, keywords, apiKey)
	})
}

func (c *CachingMarketSource) TimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error) {
	keep := func(s entity.TimeSeries) bool { return !s.Empty() }
	return cached(ctx, c, usecase.SeriesKind(g), symbol, keep, func() (entity.TimeSeries, error) {
		return c.inner.TimeSeries(ctx, symbol, g, apiKey)
	})
}

func (c *CachingMarketSource) MonthlyAdjusted(ctx context.Context, symbol, apiKey string) (entity.AdjustedTimeSeries, error) {
	keep := func(s entity.AdjustedTimeSeries) bool { return !s.Empty() }
	return cached(ctx, c, usecase.SeriesKind(entity.MonthlyAdjusted), symbol, keep, func() (entity.AdjustedTimeSeries, error) {
		return c.inner.MonthlyAdjusted(ctx, symbol, apiKey)
	})
}

// NewsSentiment は ticker の組ごとにキャッシュします。
func (c *CachingMarketSource) NewsSentiment(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error) {
	key := strings.Join(tickers, ",")
	if key == "" {
		key = "all"
	}
	return cached(ctx, c, usecase.KindNews, key, always[entity.NewsFeed], func() (entity.NewsFeed, error) {
		return c.inner.NewsSentiment(ctx, tickers, apiKey)
	})
}

// cached checks Redis first, falls back to fetch, and stores results accepted by keep.
func cached[T any](ctx context.Context, c *CachingMarketSource, kind usecase.Kind, key string, keep func(T) bool, fetch func() (T, error)) (T, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return fetch()
	}

	k := c.cacheKey(kind, key)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, k).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, k).Err()
	}

	// 2) Fallback to the upstream API
	out, err := fetch()
	if err != nil {
		return out, err
	}
	if !keep(out) {
		return out, nil
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, k, b, usecase.WindowFor(kind)).Err()
	}
	return out, nil
}

func always[T any](T) bool { return true }

// cacheKey generates a cache key for a kind and key. The API key is never part of it.
func (c *CachingMarketSource) cacheKey(kind usecase.Kind, key string) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(string(kind)), safe(key))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
