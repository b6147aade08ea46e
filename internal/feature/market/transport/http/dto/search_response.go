package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// SearchMatchResponse はシンボル検索候補のレスポンスDTOです。
type SearchMatchResponse struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Region      string `json:"region"`
	MarketOpen  string `json:"market_open"`
	MarketClose string `json:"market_close"`
	Timezone    string `json:"timezone"`
	Currency    string `json:"currency"`
	MatchScore  string `json:"match_score"`
}

// NewSearchMatches は nil を空配列に揃えて変換します。
func NewSearchMatches(ms []entity.SearchMatch) []SearchMatchResponse {
	out := make([]SearchMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, SearchMatchResponse{
			Symbol:      m.Symbol,
			Name:        m.Name,
			Type:        m.Type,
			Region:      m.Region,
			MarketOpen:  m.MarketOpen,
			MarketClose: m.MarketClose,
			Timezone:    m.Timezone,
			Currency:    m.Currency,
			MatchScore:  m.MatchScore,
		})
	}
	return out
}
