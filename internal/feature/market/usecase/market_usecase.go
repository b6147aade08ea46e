package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"stockwatch_backend/internal/feature/market/domain"
	"stockwatch_backend/internal/feature/market/domain/entity"
	"stockwatch_backend/internal/shared/ttlcache"
)

// RemoteSource はマーケットデータ API を抽象化するインターフェースです。
// 各メソッドは通信エラーをそのまま返し、分類は MarketUsecase が行います。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type RemoteSource interface {
	TopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error)
	CompanyOverview(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error)
	SymbolSearch(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error)
	// TimeSeries は intraday, daily, weekly, monthly の系列を取得します。
	TimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error)
	MonthlyAdjusted(ctx context.Context, symbol, apiKey string) (entity.AdjustedTimeSeries, error)
	NewsSentiment(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error)
}

// SnapshotStore は Top Movers の永続化先です。保持するのは最新の1件だけです。
type SnapshotStore interface {
	Save(ctx context.Context, snapshot entity.QuoteSnapshot, fetchedAt time.Time) error
	// Latest は保存済みの最新スナップショットを返します。1件もなければ nil を返します。
	Latest(ctx context.Context) (*entity.StoredSnapshot, error)
}

// MarketUsecase はキャッシュ、永続化、リモート取得の順でマーケットデータを解決するデータアクセス層です。
//
// インスタンス全体で1つのロックを持ち、キャッシュ確認から取得、保存までを直列化します。
// 同じ種別とキーへの同時要求は1回のリモート呼び出しにまとめられ、全員が同じ結果を受け取ります。
type MarketUsecase struct {
	remote RemoteSource
	store  SnapshotStore
	now    func() time.Time

	lock    *semaphore.Weighted
	flights singleflight.Group

	topMovers *ttlcache.Cache[entity.QuoteSnapshot]
	profiles  *ttlcache.Cache[entity.CompanyProfile]
	searches  *ttlcache.Cache[entity.SearchResults]
	series    map[entity.Granularity]*ttlcache.Cache[entity.TimeSeries]
	adjusted  *ttlcache.Cache[entity.AdjustedTimeSeries]
	news      *ttlcache.Cache[entity.NewsFeed]
}

// Option configures a MarketUsecase.
type Option func(*MarketUsecase)

// WithClock はキャッシュの鮮度判定と永続化のタイムスタンプに使う時刻源を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(u *MarketUsecase) {
		if now != nil {
			u.now = now
		}
	}
}

// NewMarketUsecase は新しい MarketUsecase を作成します。store が nil の場合は永続化を行いません。
func NewMarketUsecase(remote RemoteSource, store SnapshotStore, opts ...Option) *MarketUsecase {
	u := &MarketUsecase{
		remote: remote,
		store:  store,
		now:    time.Now,
		lock:   semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(u)
	}

	u.topMovers = ttlcache.New[entity.QuoteSnapshot](u.now)
	u.profiles = ttlcache.New[entity.CompanyProfile](u.now)
	u.searches = ttlcache.New[entity.SearchResults](u.now)
	u.series = map[entity.Granularity]*ttlcache.Cache[entity.TimeSeries]{
		entity.Intraday: ttlcache.New[entity.TimeSeries](u.now),
		entity.Daily:    ttlcache.New[entity.TimeSeries](u.now),
		entity.Weekly:   ttlcache.New[entity.TimeSeries](u.now),
		entity.Monthly:  ttlcache.New[entity.TimeSeries](u.now),
	}
	u.adjusted = ttlcache.New[entity.AdjustedTimeSeries](u.now)
	u.news = ttlcache.New[entity.NewsFeed](u.now)
	return u
}

// GetTopMovers は値上がり・値下がり・出来高ランキングを返します。
// メモリ上のキャッシュ、永続化されたスナップショット、リモート API の順に参照します。
func (u *MarketUsecase) GetTopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
	snap, err := guarded(ctx, u, KindTopMovers, singletonKey, func(ctx context.Context) (entity.QuoteSnapshot, error) {
		if snap, ok := u.topMovers.GetFresh(singletonKey, DefaultWindow); ok {
			slog.Debug("market cache hit", "kind", KindTopMovers)
			return snap, nil
		}

		if stored := u.loadSnapshot(ctx); stored != nil {
			u.topMovers.PutAt(singletonKey, stored.Snapshot, stored.FetchedAt)
			slog.Debug("market store hit", "kind", KindTopMovers, "fetched_at", stored.FetchedAt)
			return stored.Snapshot, nil
		}

		snap, err := u.remote.TopMovers(ctx, apiKey)
		if err != nil {
			return entity.QuoteSnapshot{}, u.fail(ctx, KindTopMovers, "", err)
		}

		fetchedAt := u.now()
		u.topMovers.PutAt(singletonKey, snap, fetchedAt)
		u.saveSnapshot(ctx, snap, fetchedAt)
		slog.Debug("market remote fetch", "kind", KindTopMovers)
		return snap, nil
	})
	return snap.Clone(), err
}

// GetTopGainers は Top Movers のうち値上がりランキングだけを返します。
func (u *MarketUsecase) GetTopGainers(ctx context.Context, apiKey string) ([]entity.QuoteRecord, error) {
	snap, err := u.GetTopMovers(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return snap.TopGainers, nil
}

// GetTopLosers は Top Movers のうち値下がりランキングだけを返します。
func (u *MarketUsecase) GetTopLosers(ctx context.Context, apiKey string) ([]entity.QuoteRecord, error) {
	snap, err := u.GetTopMovers(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	return snap.TopLosers, nil
}

// GetCachedQuote は現在メモリにある Top Movers から銘柄の気配値を探します。
// 鮮度は問わず、リモート取得もロックの取得も行いません。
func (u *MarketUsecase) GetCachedQuote(symbol string) (*entity.QuoteRecord, bool) {
	e, ok := u.topMovers.Get(singletonKey)
	if !ok {
		return nil, false
	}
	q, ok := e.Value.FindQuote(normalizeSymbol(symbol))
	if !ok {
		return nil, false
	}
	return &q, true
}

// GetCompanyProfile は企業情報を返します。上流が該当なしを返した場合は nil を返し、キャッシュしません。
func (u *MarketUsecase) GetCompanyProfile(ctx context.Context, symbol, apiKey string) (*entity.CompanyProfile, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.ErrInvalidSymbol
	}

	profile, err := guarded(ctx, u, KindCompanyProfile, symbol, func(ctx context.Context) (*entity.CompanyProfile, error) {
		if p, ok := u.profiles.GetFresh(symbol, DefaultWindow); ok {
			slog.Debug("market cache hit", "kind", KindCompanyProfile, "key", symbol)
			return &p, nil
		}

		p, err := u.remote.CompanyOverview(ctx, symbol, apiKey)
		if err != nil {
			return nil, u.fail(ctx, KindCompanyProfile, symbol, err)
		}
		if !p.Found() {
			slog.Warn("company profile not found", "kind", KindCompanyProfile, "key", symbol)
			return nil, nil
		}

		u.profiles.Put(symbol, p)
		return &p, nil
	})
	if err != nil || profile == nil {
		return nil, err
	}
	out := *profile
	return &out, nil
}

// SearchSymbols はキーワードでシンボルを検索します。
// 上流が Information を付けて応答した場合はクォータ到達として失敗を返します。
func (u *MarketUsecase) SearchSymbols(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error) {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return entity.SearchResults{}, nil
	}

	r, err := guarded(ctx, u, KindSymbolSearch, keywords, func(ctx context.Context) (entity.SearchResults, error) {
		if r, ok := u.searches.GetFresh(keywords, DefaultWindow); ok {
			slog.Debug("market cache hit", "kind", KindSymbolSearch, "key", keywords)
			return r, nil
		}

		r, err := u.remote.SymbolSearch(ctx, keywords, apiKey)
		if err != nil {
			return entity.SearchResults{}, u.fail(ctx, KindSymbolSearch, keywords, err)
		}
		if r.Information != "" {
			return entity.SearchResults{}, u.fail(ctx, KindSymbolSearch, keywords, fmt.Errorf("%w: %s", domain.ErrQuotaExhausted, r.Information))
		}

		u.searches.Put(keywords, r)
		return r, nil
	})
	return r.Clone(), err
}

// GetTimeSeries は指定した足の時系列を返します。データ点が1つもなければ nil を返し、キャッシュしません。
// 配当調整済み月足は通常の月足と同じ形に変換して返します。
func (u *MarketUsecase) GetTimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (*entity.TimeSeries, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.ErrInvalidSymbol
	}
	if g == entity.MonthlyAdjusted {
		return u.getMonthlyAdjusted(ctx, symbol, apiKey)
	}

	cache, ok := u.series[g]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidGranularity, g)
	}
	kind := SeriesKind(g)
	window := WindowFor(kind)

	series, err := guarded(ctx, u, kind, symbol, func(ctx context.Context) (*entity.TimeSeries, error) {
		if s, ok := cache.GetFresh(symbol, window); ok {
			slog.Debug("market cache hit", "kind", kind, "key", symbol)
			return &s, nil
		}

		s, err := u.remote.TimeSeries(ctx, symbol, g, apiKey)
		if err != nil {
			return nil, u.fail(ctx, kind, symbol, err)
		}
		if s.Empty() {
			slog.Warn("time series not found", "kind", kind, "key", symbol)
			return nil, nil
		}

		s.Granularity = g
		cache.Put(symbol, s)
		return &s, nil
	})
	if err != nil || series == nil {
		return nil, err
	}
	out := series.Clone()
	return &out, nil
}

// GetTimeSeriesForRange はチャートの表示期間ラベルに対応する足で時系列を返します。
func (u *MarketUsecase) GetTimeSeriesForRange(ctx context.Context, symbol, rangeLabel, apiKey string) (*entity.TimeSeries, error) {
	g, err := entity.GranularityForRange(rangeLabel)
	if err != nil {
		return nil, err
	}
	return u.GetTimeSeries(ctx, symbol, g, apiKey)
}

func (u *MarketUsecase) getMonthlyAdjusted(ctx context.Context, symbol, apiKey string) (*entity.TimeSeries, error) {
	kind := SeriesKind(entity.MonthlyAdjusted)

	adjusted, err := guarded(ctx, u, kind, symbol, func(ctx context.Context) (*entity.AdjustedTimeSeries, error) {
		if s, ok := u.adjusted.GetFresh(symbol, DefaultWindow); ok {
			slog.Debug("market cache hit", "kind", kind, "key", symbol)
			return &s, nil
		}

		s, err := u.remote.MonthlyAdjusted(ctx, symbol, apiKey)
		if err != nil {
			return nil, u.fail(ctx, kind, symbol, err)
		}
		if s.Empty() {
			slog.Warn("time series not found", "kind", kind, "key", symbol)
			return nil, nil
		}

		u.adjusted.Put(symbol, s)
		return &s, nil
	})
	if err != nil || adjusted == nil {
		return nil, err
	}

	canonical := adjusted.ToTimeSeries()
	return &canonical, nil
}

// GetNewsFeed はニュースとセンチメントを返します。
// キャッシュは ticker に関係なく1枠だけで、15分以内であれば前回の結果を返します。
func (u *MarketUsecase) GetNewsFeed(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error) {
	feed, err := guarded(ctx, u, KindNews, singletonKey, func(ctx context.Context) (entity.NewsFeed, error) {
		if feed, ok := u.news.GetFresh(singletonKey, NewsWindow); ok {
			slog.Debug("market cache hit", "kind", KindNews)
			return feed, nil
		}

		feed, err := u.remote.NewsSentiment(ctx, tickers, apiKey)
		if err != nil {
			return entity.NewsFeed{}, u.fail(ctx, KindNews, strings.Join(tickers, ","), err)
		}

		u.news.Put(singletonKey, feed)
		return feed, nil
	})
	return feed.Clone(), err
}

// GetStockDetails は銘柄詳細を返します。企業情報が見つからない場合は
// キャッシュ済みの Top Movers にある気配値で代替し、それもなければ空の詳細を返します。
func (u *MarketUsecase) GetStockDetails(ctx context.Context, symbol, apiKey string) (entity.StockDetails, error) {
	symbol = normalizeSymbol(symbol)
	profile, err := u.GetCompanyProfile(ctx, symbol, apiKey)
	if err != nil {
		return entity.StockDetails{}, err
	}

	details := entity.StockDetails{Symbol: symbol, Profile: profile}
	if profile == nil {
		details.Quote, _ = u.GetCachedQuote(symbol)
	}
	return details, nil
}

func (u *MarketUsecase) loadSnapshot(ctx context.Context) *entity.StoredSnapshot {
	if u.store == nil {
		return nil
	}
	stored, err := u.store.Latest(ctx)
	if err != nil {
		slog.Warn("failed to read top movers snapshot", "error", err)
		return nil
	}
	if stored == nil || !u.topMovers.IsValid(stored.FetchedAt, DefaultWindow) {
		return nil
	}
	return stored
}

// saveSnapshot は取得済みのスナップショットを永続化します。失敗しても取得結果は返します。
func (u *MarketUsecase) saveSnapshot(ctx context.Context, snap entity.QuoteSnapshot, fetchedAt time.Time) {
	if u.store == nil {
		return
	}
	if err := u.store.Save(context.WithoutCancel(ctx), snap, fetchedAt); err != nil {
		slog.Warn("failed to persist top movers snapshot", "error", err)
	}
}

// fail はリモート取得のエラーを分類してログに残します。
// 呼び出し元の ctx の終了によるエラーは分類せずに返します。HTTP クライアント自身のタイムアウトは Timeout です。
func (u *MarketUsecase) fail(ctx context.Context, kind Kind, key string, err error) error {
	if errors.Is(err, context.Canceled) || (ctx.Err() != nil && errors.Is(err, context.DeadlineExceeded)) {
		return err
	}
	fe := domain.Classify(err)
	slog.Error("market fetch failed", "kind", kind, "key", key, "category", fe.Category, "error", fe.Cause)
	return fe
}

// guarded はインスタンスのロックを保持したまま fn を実行します。
// 同じ種別とキーで実行中の呼び出しがあれば、新たに実行せずその結果を共有します。
func guarded[T any](ctx context.Context, u *MarketUsecase, kind Kind, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	flightKey := string(kind) + ":" + key

	for {
		ch := u.flights.DoChan(flightKey, func() (any, error) {
			if err := u.lock.Acquire(ctx, 1); err != nil {
				return zero, err
			}
			defer u.lock.Release(1)
			return fn(ctx)
		})

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				// The leader's context ended; followers with a live context retry on their own.
				if res.Shared && ctx.Err() == nil && leaderAborted(res.Err) {
					continue
				}
				return zero, res.Err
			}
			return res.Val.(T), nil
		}
	}
}

// leaderAborted は err が取得処理ではなく先行呼び出し側の ctx の終了によるものかを判定します。
func leaderAborted(err error) bool {
	var fe *domain.FetchError
	if errors.As(err, &fe) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
