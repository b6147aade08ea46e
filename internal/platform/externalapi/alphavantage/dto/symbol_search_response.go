package dto

import "stockwatch_backend/internal/feature/market/domain/entity"

// SymbolSearchResponse は SYMBOL_SEARCH のレスポンスです。
// クォータ到達時は bestMatches の代わりに Information（古い応答では Note）が返ります。
type SymbolSearchResponse struct {
	BestMatches []SymbolMatch `json:"bestMatches"`
	Information string        `json:"Information"`
	Note        string        `json:"Note"`
}

type SymbolMatch struct {
	Symbol      string `json:"1. symbol"`
	Name        string `json:"2. name"`
	Type        string `json:"3. type"`
	Region      string `json:"4. region"`
	MarketOpen  string `json:"5. marketOpen"`
	MarketClose string `json:"6. marketClose"`
	Timezone    string `json:"7. timezone"`
	Currency    string `json:"8. currency"`
	MatchScore  string `json:"9. matchScore"`
}

// ToEntity はレスポンスをドメインの検索結果に変換します。Information はそのまま引き継ぎます。
func (r SymbolSearchResponse) ToEntity() entity.SearchResults {
	info := r.Information
	if info == "" {
		info = r.Note
	}
	out := entity.SearchResults{
		BestMatches: make([]entity.SearchMatch, 0, len(r.BestMatches)),
		Information: info,
	}
	for _, m := range r.BestMatches {
		out.BestMatches = append(out.BestMatches, entity.SearchMatch{
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
