// Package dto はlogosearchフィーチャーのリクエストとレスポンスの DTO を定義します。
package dto

import (
	"stockwatch_backend/internal/feature/logosearch/domain/entity"
	marketdto "stockwatch_backend/internal/feature/market/transport/http/dto"
)

// BriefRequest は企業要約のリクエストです。
type BriefRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// LogoMatchResponse は検出したロゴ1件とその検索候補です。
type LogoMatchResponse struct {
	Name       string                          `json:"name"`
	Confidence float32                         `json:"confidence"`
	Matches    []marketdto.SearchMatchResponse `json:"matches"`
}

type BriefResponse struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Brief  string `json:"brief"`
}

func NewLogoMatchList(ms []entity.LogoMatch) []LogoMatchResponse {
	out := make([]LogoMatchResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, LogoMatchResponse{
			Name:       m.Logo.Name,
			Confidence: m.Logo.Confidence,
			Matches:    marketdto.NewSearchMatches(m.Matches),
		})
	}
	return out
}

func NewBriefResponse(b entity.CompanyBrief) BriefResponse {
	return BriefResponse{Symbol: b.Symbol, Name: b.Name, Brief: b.Brief}
}
