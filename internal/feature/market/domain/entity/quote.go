// Package entity はマーケット機能のドメインモデルを定義します。
package entity

import (
	"slices"
	"time"
)

// QuoteRecord は値上がり・値下がり・出来高ランキングの1行です。
// 数値は上流の表記をそのまま文字列で保持します。
type QuoteRecord struct {
	Ticker           string
	Price            string
	ChangeAmount     string
	ChangePercentage string
	Volume           string
}

// QuoteSnapshot は Top Movers の一括取得結果です。
type QuoteSnapshot struct {
	Metadata           string
	LastUpdated        string
	TopGainers         []QuoteRecord
	TopLosers          []QuoteRecord
	MostActivelyTraded []QuoteRecord
}

// Clone はランキングのスライスを共有しないコピーを返します。
func (s QuoteSnapshot) Clone() QuoteSnapshot {
	s.TopGainers = slices.Clone(s.TopGainers)
	s.TopLosers = slices.Clone(s.TopLosers)
	s.MostActivelyTraded = slices.Clone(s.MostActivelyTraded)
	return s
}

// FindQuote は値上がりリスト、値下がりリストの順に ticker を探します。
// 出来高ランキングは検索対象に含みません。
func (s QuoteSnapshot) FindQuote(ticker string) (QuoteRecord, bool) {
	for _, q := range s.TopGainers {
		if q.Ticker == ticker {
			return q, true
		}
	}
	for _, q := range s.TopLosers {
		if q.Ticker == ticker {
			return q, true
		}
	}
	return QuoteRecord{}, false
}

// StoredSnapshot is a snapshot read back from durable storage together with
// the time it was originally fetched.
type StoredSnapshot struct {
	Snapshot  QuoteSnapshot
	FetchedAt time.Time
}
