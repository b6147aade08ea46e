// Package entity はウォッチリスト機能のドメインモデルを定義します。
package entity

import "time"

// Watchlist は利用者が作成した銘柄リストです。
type Watchlist struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Member はウォッチリストに登録された銘柄1件です。
// 同じウォッチリストに同じ銘柄が複数回登録されることもあります。
type Member struct {
	ID          int64
	WatchlistID int64
	Symbol      string
	Name        string
	AddedAt     time.Time
}
