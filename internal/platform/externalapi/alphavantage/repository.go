package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stockwatch_backend/internal/feature/market/domain"
	"stockwatch_backend/internal/feature/market/domain/entity"
	"stockwatch_backend/internal/feature/market/usecase"
	"stockwatch_backend/internal/platform/externalapi/alphavantage/dto"
	"stockwatch_backend/internal/shared/ratelimiter"
)

const intradayInterval = "5min"

// seriesFunctions は足ごとの API function 名です。
var seriesFunctions = map[entity.Granularity]string{
	entity.Intraday: "TIME_SERIES_INTRADAY",
	entity.Daily:    "TIME_SERIES_DAILY",
	entity.Weekly:   "TIME_SERIES_WEEKLY",
	entity.Monthly:  "TIME_SERIES_MONTHLY",
}

// AlphaVantageMarket は Alpha Vantage 外部APIからマーケットデータを取得する RemoteSource 実装です。
type AlphaVantageMarket struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// AlphaVantageMarketがRemoteSourceを実装していることをコンパイル時に検証します。
var _ usecase.RemoteSource = (*AlphaVantageMarket)(nil)

// NewAlphaVantageMarket は指定された設定とHTTPクライアントで AlphaVantageMarket の新しいインスタンスを生成します。
// limiter が nil の場合は cfg.RatePerMinute から生成します。
func NewAlphaVantageMarket(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *AlphaVantageMarket {
	if limiter == nil {
		limiter = ratelimiter.NewRateLimiter(cfg.RatePerMinute, time.Minute)
	}
	return &AlphaVantageMarket{cfg: cfg, client: client, limiter: limiter}
}

// TopMovers は値上がり・値下がり・出来高ランキングを取得します。
func (a *AlphaVantageMarket) TopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error) {
	var body dto.TopMoversResponse
	if err := a.get(ctx, "TOP_GAINERS_LOSERS", nil, apiKey, true, &body); err != nil {
		return entity.QuoteSnapshot{}, err
	}
	return body.ToEntity(), nil
}

// CompanyOverview は企業情報を取得します。未知のシンボルでは Name が空の値を返します。
func (a *AlphaVantageMarket) CompanyOverview(ctx context.Context, symbol, apiKey string) (entity.CompanyProfile, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.CompanyOverviewResponse
	if err := a.get(ctx, "OVERVIEW", q, apiKey, true, &body); err != nil {
		return entity.CompanyProfile{}, err
	}
	return body.ToEntity(), nil
}

// SymbolSearch はキーワードでシンボルを検索します。
// クォータ到達の判定は呼び出し側が行うため、Information はエラーにせず結果に含めて返します。
func (a *AlphaVantageMarket) SymbolSearch(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error) {
	q := url.Values{}
	q.Set("keywords", keywords)

	var body dto.SymbolSearchResponse
	if err := a.get(ctx, "SYMBOL_SEARCH", q, apiKey, false, &body); err != nil {
		return entity.SearchResults{}, err
	}
	return body.ToEntity(), nil
}

// TimeSeries は分足・日足・週足・月足の系列を取得します。
func (a *AlphaVantageMarket) TimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (entity.TimeSeries, error) {
	function, ok := seriesFunctions[g]
	if !ok {
		return entity.TimeSeries{}, fmt.Errorf("%w: %q", domain.ErrInvalidGranularity, g)
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	if g == entity.Intraday {
		q.Set("interval", intradayInterval)
	}

	var body dto.TimeSeriesResponse
	if err := a.get(ctx, function, q, apiKey, true, &body); err != nil {
		return entity.TimeSeries{}, err
	}
	return body.ToEntity(g), nil
}

// MonthlyAdjusted は配当調整済み月足を取得します。
func (a *AlphaVantageMarket) MonthlyAdjusted(ctx context.Context, symbol, apiKey string) (entity.AdjustedTimeSeries, error) {
	q := url.Values{}
	q.Set("symbol", symbol)

	var body dto.MonthlyAdjustedResponse
	if err := a.get(ctx, "TIME_SERIES_MONTHLY_ADJUSTED", q, apiKey, true, &body); err != nil {
		return entity.AdjustedTimeSeries{}, err
	}
	return body.ToEntity(), nil
}

// NewsSentiment はニュースとセンチメントを取得します。tickers が空の場合は全体のニュースになります。
func (a *AlphaVantageMarket) NewsSentiment(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error) {
	q := url.Values{}
	if len(tickers) > 0 {
		q.Set("tickers", strings.Join(tickers, ","))
	}

	var body dto.NewsSentimentResponse
	if err := a.get(ctx, "NEWS_SENTIMENT", q, apiKey, true, &body); err != nil {
		return entity.NewsFeed{}, err
	}
	return body.ToEntity(), nil
}

// apiNotice は 200 応答の本文に埋め込まれる案内メッセージです。
type apiNotice struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

// get は /query に function と q を付けて GET し、本文を out にデコードします。
// detectQuota が true の場合、Note または Information を含む応答を domain.ErrQuotaExhausted として返します。
func (a *AlphaVantageMarket) get(ctx context.Context, function string, q url.Values, apiKey string, detectQuota bool, out any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}

	if q == nil {
		q = url.Values{}
	}
	if apiKey == "" {
		apiKey = a.cfg.APIKey
	}
	// クエリパラメータを追加
	q.Set("function", function)
	q.Set("apikey", apiKey)

	// URLを生成
	u := fmt.Sprintf("%s/query?%s", strings.TrimRight(a.cfg.BaseURL, "/"), q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	// リクエストを実行
	res, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("alphavantage http %d", res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("alphavantage read body: %w", err)
	}

	var notice apiNotice
	if err := json.Unmarshal(raw, &notice); err != nil {
		return fmt.Errorf("alphavantage decode %s: %w", function, err)
	}
	if detectQuota {
		if msg := firstNonEmpty(notice.Note, notice.Information); msg != "" {
			return fmt.Errorf("%w: %s", domain.ErrQuotaExhausted, msg)
		}
	}
	if notice.ErrorMessage != "" {
		// 未知のシンボルなど。本文は空の系列として扱われ、呼び出し側で該当なしになる
		slog.Warn("alphavantage returned an error message", "function", function, "message", notice.ErrorMessage)
	}

	// JSONレスポンスをDTOにデコード
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("alphavantage decode %s: %w", function, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
