package dto

import (
	"maps"
	"slices"

	"stockwatch_backend/internal/feature/market/domain/entity"
)

// BarResponse は時系列1本のレスポンスDTOです。
type BarResponse struct {
	Time   string `json:"time"`   // 日付または日時
	Open   string `json:"open"`   // 始値
	High   string `json:"high"`   // 高値
	Low    string `json:"low"`    // 安値
	Close  string `json:"close"`  // 終値
	Volume string `json:"volume"` // 出来高
}

// SeriesResponse は時系列のレスポンスDTOです。bars は古い順に並びます。
type SeriesResponse struct {
	Symbol        string        `json:"symbol"`
	Granularity   string        `json:"granularity"`
	LastRefreshed string        `json:"last_refreshed,omitempty"`
	TimeZone      string        `json:"time_zone,omitempty"`
	Bars          []BarResponse `json:"bars"`
}

func NewSeriesResponse(symbol string, s entity.TimeSeries) SeriesResponse {
	out := SeriesResponse{
		Symbol:        symbol,
		Granularity:   string(s.Granularity),
		LastRefreshed: s.Meta.LastRefreshed,
		TimeZone:      s.Meta.TimeZone,
		Bars:          make([]BarResponse, 0, len(s.Bars)),
	}
	for _, ts := range slices.Sorted(maps.Keys(s.Bars)) {
		b := s.Bars[ts]
		out.Bars = append(out.Bars, BarResponse{Time: ts, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume})
	}
	return out
}
