// Package dto はウォッチリストフィーチャーのリクエストとレスポンスの DTO を定義します。
package dto

import (
	"time"

	"stockwatch_backend/internal/feature/watchlist/domain/entity"
)

// CreateWatchlistRequest はウォッチリスト作成のリクエストです。
type CreateWatchlistRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddStockRequest は銘柄登録のリクエストです。name は省略できます。
type AddStockRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
}

type WatchlistResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type MemberResponse struct {
	ID          int64     `json:"id"`
	WatchlistID int64     `json:"watchlist_id"`
	Symbol      string    `json:"symbol"`
	Name        string    `json:"name"`
	AddedAt     time.Time `json:"added_at"`
}

// WatchlistedResponse は銘柄がいずれかのウォッチリストに入っているかを返します。
type WatchlistedResponse struct {
	Symbol      string `json:"symbol"`
	Watchlisted bool   `json:"watchlisted"`
}

func NewWatchlistResponse(w entity.Watchlist) WatchlistResponse {
	return WatchlistResponse{ID: w.ID, Name: w.Name, CreatedAt: w.CreatedAt.UTC()}
}

func NewWatchlistList(ws []entity.Watchlist) []WatchlistResponse {
	out := make([]WatchlistResponse, 0, len(ws))
	for _, w := range ws {
		out = append(out, NewWatchlistResponse(w))
	}
	return out
}

func NewMemberResponse(m entity.Member) MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		WatchlistID: m.WatchlistID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		AddedAt:     m.AddedAt.UTC(),
	}
}

func NewMemberList(ms []entity.Member) []MemberResponse {
	out := make([]MemberResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMemberResponse(m))
	}
	return out
}
