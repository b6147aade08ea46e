package entity

import (
	"fmt"
	"maps"
	"strings"

	"stockwatch_backend/internal/feature/market/domain"
)

// Granularity は時系列データの足の種類です。
type Granularity string

const (
	Intraday        Granularity = "intraday"
	Daily           Granularity = "daily"
	Weekly          Granularity = "weekly"
	Monthly         Granularity = "monthly"
	MonthlyAdjusted Granularity = "monthly_adjusted"
)

// Granularities lists every supported granularity in display order.
var Granularities = []Granularity{Intraday, Daily, Weekly, Monthly, MonthlyAdjusted}

// ParseGranularity は文字列を Granularity に変換します。
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Granularities {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidGranularity, s)
}

// rangeGranularity はチャートの表示期間ごとに取得する足を対応付けます。
// 3M は日足を、1M は配当調整済みの月足を使います。
var rangeGranularity = map[string]Granularity{
	"1D": Intraday,
	"1W": Daily,
	"1M": MonthlyAdjusted,
	"3M": Daily,
	"1Y": Weekly,
}

// GranularityForRange は表示期間ラベル（1D, 1W, 1M, 3M, 1Y）から取得する足を決めます。
func GranularityForRange(label string) (Granularity, error) {
	g, ok := rangeGranularity[strings.ToUpper(strings.TrimSpace(label))]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidRange, label)
	}
	return g, nil
}

// SeriesMeta は時系列レスポンスのメタデータです。
type SeriesMeta struct {
	Information   string
	Symbol        string
	LastRefreshed string
	Interval      string
	OutputSize    string
	TimeZone      string
}

// Bar is one OHLCV sample. Values keep the upstream decimal strings.
type Bar struct {
	Open   string
	High   string
	Low    string
	Close  string
	Volume string
}

// TimeSeries はタイムスタンプ文字列をキーにした OHLCV の系列です。
type TimeSeries struct {
	Granularity Granularity
	Meta        SeriesMeta
	Bars        map[string]Bar
}

// Empty は系列にデータ点が1つもないかを返します。
func (s TimeSeries) Empty() bool {
	return len(s.Bars) == 0
}

// Clone は Bars を共有しないコピーを返します。
func (s TimeSeries) Clone() TimeSeries {
	s.Bars = maps.Clone(s.Bars)
	return s
}

// AdjustedBar は配当調整済み月足の1本です。
type AdjustedBar struct {
	Open           string
	High           string
	Low            string
	Close          string
	AdjustedClose  string
	Volume         string
	DividendAmount string
}

// AdjustedTimeSeries は配当調整済み月足の系列です。
type AdjustedTimeSeries struct {
	Meta SeriesMeta
	Bars map[string]AdjustedBar
}

// Empty は系列にデータ点が1つもないかを返します。
func (s AdjustedTimeSeries) Empty() bool {
	return len(s.Bars) == 0
}

// ToTimeSeries は調整後終値と配当額を落として通常の月足として扱える形に変換します。
// キーと OHLCV の値はそのまま引き継ぎます。
func (s AdjustedTimeSeries) ToTimeSeries() TimeSeries {
	out := TimeSeries{Granularity: Monthly, Meta: s.Meta}
	if s.Bars == nil {
		return out
	}
	out.Bars = make(map[string]Bar, len(s.Bars))
	for ts, b := range s.Bars {
		out.Bars[ts] = Bar{
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	return out
}
