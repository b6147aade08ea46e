package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockwatch_backend/internal/api"
	"stockwatch_backend/internal/feature/market/domain"
)

// APIKeyHeader は呼び出し元が自分の Alpha Vantage キーを渡すためのヘッダーです。
// 省略した場合はサーバーの設定値が使われます。
const APIKeyHeader = "X-API-Key"

// StatusClientClosedRequest は呼び出し元が応答を待たずに切断したことを表す非標準のステータスです。
const StatusClientClosedRequest = 499

const (
	messageCanceled   = "Request was canceled."
	messageUnexpected = "An unexpected error occurred."
)

// StatusFor はマーケット取得のエラーを HTTP ステータスに対応付けます。
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidSymbol),
		errors.Is(err, domain.ErrInvalidGranularity),
		errors.Is(err, domain.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrQuotaExhausted):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrConnectivity), errors.Is(err, domain.ErrTransportIO):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError はエラーを対応するステータスと利用者向けメッセージで返します。
// 分類されていないエラーの文言はそのまま返しません。
func WriteError(c *gin.Context, err error) {
	status := StatusFor(err)
	c.JSON(status, api.ErrorResponse{Error: messageFor(err, status)})
}

func messageFor(err error, status int) string {
	var fe *domain.FetchError
	switch {
	case errors.As(err, &fe):
		return fe.Error()
	case status == http.StatusBadRequest:
		return err.Error()
	case errors.Is(err, context.Canceled):
		return messageCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return domain.MessageTimeout
	default:
		return messageUnexpected
	}
}
