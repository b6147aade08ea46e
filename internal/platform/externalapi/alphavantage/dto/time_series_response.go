package dto

import (
	"strings"

	"stockwatch_backend/internal/feature/market/domain/entity"
)

// TimeSeriesResponse は TIME_SERIES_* のレスポンスです。
// 足ごとに系列のキー名が異なるため、該当する1つだけが埋まります。
type TimeSeriesResponse struct {
	MetaData map[string]string `json:"Meta Data"`
	Intraday map[string]BarDTO `json:"Time Series (5min)"`
	Daily    map[string]BarDTO `json:"Time Series (Daily)"`
	Weekly   map[string]BarDTO `json:"Weekly Time Series"`
	Monthly  map[string]BarDTO `json:"Monthly Time Series"`
}

type BarDTO struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// ToEntity は g に対応する系列だけを取り出して変換します。
func (r TimeSeriesResponse) ToEntity(g entity.Granularity) entity.TimeSeries {
	var bars map[string]BarDTO
	switch g {
	case entity.Intraday:
		bars = r.Intraday
	case entity.Daily:
		bars = r.Daily
	case entity.Weekly:
		bars = r.Weekly
	case entity.Monthly:
		bars = r.Monthly
	}

	out := entity.TimeSeries{Granularity: g, Meta: ParseMeta(r.MetaData)}
	if len(bars) == 0 {
		return out
	}
	out.Bars = make(map[string]entity.Bar, len(bars))
	for ts, b := range bars {
		out.Bars[ts] = entity.Bar{Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
	}
	return out
}

// MonthlyAdjustedResponse は TIME_SERIES_MONTHLY_ADJUSTED のレスポンスです。
type MonthlyAdjustedResponse struct {
	MetaData map[string]string         `json:"Meta Data"`
	Series   map[string]AdjustedBarDTO `json:"Monthly Adjusted Time Series"`
}

type AdjustedBarDTO struct {
	Open           string `json:"1. open"`
	High           string `json:"2. high"`
	Low            string `json:"3. low"`
	Close          string `json:"4. close"`
	AdjustedClose  string `json:"5. adjusted close"`
	Volume         string `json:"6. volume"`
	DividendAmount string `json:"7. dividend amount"`
}

// ToEntity はレスポンスをドメインの配当調整済み系列に変換します。
func (r MonthlyAdjustedResponse) ToEntity() entity.AdjustedTimeSeries {
	out := entity.AdjustedTimeSeries{Meta: ParseMeta(r.MetaData)}
	if len(r.Series) == 0 {
		return out
	}
	out.Bars = make(map[string]entity.AdjustedBar, len(r.Series))
	for ts, b := range r.Series {
		out.Bars[ts] = entity.AdjustedBar{
			Open:           b.Open,
			High:           b.High,
			Low:            b.Low,
			Close:          b.Close,
			AdjustedClose:  b.AdjustedClose,
			Volume:         b.Volume,
			DividendAmount: b.DividendAmount,
		}
	}
	return out
}

// ParseMeta は "1. Information" のような番号付きキーを番号を除いた名前で解釈します。
// 足によって番号がずれる（分足だけ Interval が入る）ため、名前で対応付けます。
func ParseMeta(raw map[string]string) entity.SeriesMeta {
	var m entity.SeriesMeta
	for k, v := range raw {
		name := k
		if _, after, ok := strings.Cut(k, ". "); ok {
			name = after
		}
		switch strings.ToLower(name) {
		case "information":
			m.Information = v
		case "symbol":
			m.Symbol = v
		case "last refreshed":
			m.LastRefreshed = v
		case "interval":
			m.Interval = v
		case "output size":
			m.OutputSize = v
		case "time zone":
			m.TimeZone = v
		}
	}
	return m
}
