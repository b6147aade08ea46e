package usecase

import (
	"time"

	"stockwatch_backend/internal/feature/market/domain/entity"
)

// Kind はキャッシュとリモート取得の単位となるデータ種別です。
type Kind string

const (
	KindTopMovers      Kind = "top_movers"
	KindCompanyProfile Kind = "company_profile"
	KindSymbolSearch   Kind = "symbol_search"
	KindNews           Kind = "news"
)

// SeriesKind は足ごとの時系列データ種別を返します。
func SeriesKind(g entity.Granularity) Kind {
	return Kind("series_" + string(g))
}

// 鮮度の時間窓。実行時には変更できません。
const (
	DefaultWindow  = 24 * time.Hour
	IntradayWindow = time.Minute
	NewsWindow     = 15 * time.Minute
)

// WindowFor はデータ種別ごとのキャッシュ有効期間を返します。
func WindowFor(k Kind) time.Duration {
	switch k {
	case SeriesKind(entity.Intraday):
		return IntradayWindow
	case KindNews:
		return NewsWindow
	default:
		return DefaultWindow
	}
}

// singletonKey is the cache key of kinds that hold a single unkeyed value.
const singletonKey = "_"
