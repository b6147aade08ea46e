package usecase

import (
	"context"
	"errors"
	"log/slog"

	"stockwatch_backend/internal/feature/market/domain"
	"stockwatch_backend/internal/feature/market/domain/entity"
)

// warmGranularities はウォームアップ対象の足です。
var warmGranularities = []entity.Granularity{entity.Daily, entity.Weekly}

// MarketReader はウォームアップで使うデータアクセス層の操作です。
type MarketReader interface {
	GetTopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error)
	GetCompanyProfile(ctx context.Context, symbol, apiKey string) (*entity.CompanyProfile, error)
	GetTimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (*entity.TimeSeries, error)
}

// SymbolLister はウォッチリストに登録されている銘柄を列挙します。
type SymbolLister interface {
	WatchedSymbols(ctx context.Context) ([]string, error)
}

// WarmReport はウォームアップの結果です。
type WarmReport struct {
	Fetched int
	Absent  int
	Failed  int
}

// WarmUsecase はウォッチリストの銘柄についてデータを事前に取得し、
// 永続化されたスナップショットと共有キャッシュを温めます。
type WarmUsecase struct {
	market  MarketReader
	symbols SymbolLister
}

// NewWarmUsecase は新しい WarmUsecase を作成します。
func NewWarmUsecase(market MarketReader, symbols SymbolLister) *WarmUsecase {
	return &WarmUsecase{market: market, symbols: symbols}
}

// WarmAll は Top Movers と、ウォッチリストの全銘柄の企業情報・日足・週足を取得します。
// 1件の失敗では止まりませんが、クォータ到達以降の呼び出しは無駄になるためその時点で打ち切ります。
func (wu *WarmUsecase) WarmAll(ctx context.Context, apiKey string) (WarmReport, error) {
	var report WarmReport

	if _, err := wu.market.GetTopMovers(ctx, apiKey); err != nil {
		if stop(ctx, err) {
			return report, err
		}
		slog.Error("failed to warm top movers", "error", err)
		report.Failed++
	} else {
		report.Fetched++
	}

	symbols, err := wu.symbols.WatchedSymbols(ctx)
	if err != nil {
		return report, err
	}

	for _, s := range symbols {
		p, err := wu.market.GetCompanyProfile(ctx, s, apiKey)
		if stopErr := wu.record(ctx, &report, s, string(KindCompanyProfile), p == nil, err); stopErr != nil {
			return report, stopErr
		}

		for _, g := range warmGranularities {
			series, err := wu.market.GetTimeSeries(ctx, s, g, apiKey)
			if stopErr := wu.record(ctx, &report, s, string(SeriesKind(g)), series == nil, err); stopErr != nil {
				return report, stopErr
			}
		}
	}
	return report, nil
}

// record は1回の取得結果を集計します。打ち切るべきエラーだけを返します。
func (wu *WarmUsecase) record(ctx context.Context, report *WarmReport, symbol, kind string, absent bool, err error) error {
	switch {
	case err != nil && stop(ctx, err):
		return err
	case err != nil:
		// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
		slog.Error("failed to warm market data", "symbol", symbol, "kind", kind, "error", err)
		report.Failed++
	case absent:
		report.Absent++
	default:
		report.Fetched++
	}
	return nil
}

// stop はクォータ到達か、実行全体の ctx が終わった場合に true を返します。
// 個々のリクエストのタイムアウトでは止めません。
func stop(ctx context.Context, err error) bool {
	return errors.Is(err, domain.ErrQuotaExhausted) || ctx.Err() != nil
}
