// Package dto はマーケットフィーチャーの HTTP レスポンス DTO を定義します。
package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// QuoteResponse はランキング1行のレスポンスDTOです。
type QuoteResponse struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}

// TopMoversResponse は Top Movers のレスポンスDTOです。
type TopMoversResponse struct {
	Metadata           string          `json:"metadata"`
	LastUpdated        string          `json:"last_updated"`
	TopGainers         []QuoteResponse `json:"top_gainers"`
	TopLosers          []QuoteResponse `json:"top_losers"`
	MostActivelyTraded []QuoteResponse `json:"most_actively_traded"`
}

func NewQuoteResponse(q entity.QuoteRecord) QuoteResponse {
	return QuoteResponse{
		Ticker:           q.Ticker,
		Price:            q.Price,
		ChangeAmount:     q.ChangeAmount,
		ChangePercentage: q.ChangePercentage,
		Volume:           q.Volume,
	}
}

// NewQuoteList は nil を空配列に揃えて変換します。
func NewQuoteList(qs []entity.QuoteRecord) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, NewQuoteResponse(q))
	}
	return out
}

func NewTopMoversResponse(s entity.QuoteSnapshot) TopMoversResponse {
	return TopMoversResponse{
		Metadata:           s.Metadata,
		LastUpdated:        s.LastUpdated,
		TopGainers:         NewQuoteList(s.TopGainers),
		TopLosers:          NewQuoteList(s.TopLosers),
		MostActivelyTraded: NewQuoteList(s.MostActivelyTraded),
	}
}
