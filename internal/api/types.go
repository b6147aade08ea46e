// Package api は全フィーチャーで共通の HTTP リクエスト/レスポンス型を定義します。
package api

// ErrorResponse はエラー時のレスポンスです。Error は利用者にそのまま表示できるメッセージです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は本文を持たない操作の結果メッセージです。
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse は件数だけを返す操作のレスポンスです。
type CountResponse struct {
	Count int `json:"count"`
}
