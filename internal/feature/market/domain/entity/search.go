package entity

import "slices"

// SearchMatch はシンボル検索の候補1件です。
type SearchMatch struct {
	Symbol      string
	Name        string
	Type        string
	Region      string
	MarketOpen  string
	MarketClose string
	Timezone    string
	Currency    string
	MatchScore  string
}

// SearchResults はシンボル検索の結果です。
// Information には上流の案内メッセージ（主にクォータ到達の通知）がそのまま入ります。
type SearchResults struct {
	BestMatches []SearchMatch
	Information string
}

// Clone は候補のスライスを共有しないコピーを返します。
func (r SearchResults) Clone() SearchResults {
	r.BestMatches = slices.Clone(r.BestMatches)
	return r
}
