// Package entity はlogosearchフィーチャーのドメインモデルを定義します。
package entity

import marketentity "stockwatch_backend/internal/feature/market/domain/entity"

// DetectedLogo は画像から検出されたロゴを表します。
type DetectedLogo struct {
	Name       string  // 検出された企業名
	Confidence float32 // 信頼度スコア（0.0 ~ 1.0）
}

// LogoMatch は検出したロゴと、その名前でシンボル検索した候補の組です。
type LogoMatch struct {
	Logo    DetectedLogo
	Matches []marketentity.SearchMatch
}
