// Package dto は Alpha Vantage API のレスポンス形式を定義します。
package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// TopMoversResponse は TOP_GAINERS_LOSERS のレスポンスです。
type TopMoversResponse struct {
	Metadata           string      `json:"metadata"`
	LastUpdated        string      `json:"last_updated"`
	TopGainers         []StockInfo `json:"top_gainers"`
	TopLosers          []StockInfo `json:"top_losers"`
	MostActivelyTraded []StockInfo `json:"most_actively_traded"`
}

type StockInfo struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}

// ToEntity はレスポンスをドメインのスナップショットに変換します。
func (r TopMoversResponse) ToEntity() entity.QuoteSnapshot {
	return entity.QuoteSnapshot{
		Metadata:           r.Metadata,
		LastUpdated:        r.LastUpdated,
		TopGainers:         toQuotes(r.TopGainers),
		TopLosers:          toQuotes(r.TopLosers),
		MostActivelyTraded: toQuotes(r.MostActivelyTraded),
	}
}

func toQuotes(in []StockInfo) []entity.QuoteRecord {
	out := make([]entity.QuoteRecord, 0, len(in))
	for _, s := range in {
		out = append(out, entity.QuoteRecord{
			Ticker:           s.Ticker,
			Price:            s.Price,
			ChangeAmount:     s.ChangeAmount,
			ChangePercentage: s.ChangePercentage,
			Volume:           s.Volume,
		})
	}
	return out
}
