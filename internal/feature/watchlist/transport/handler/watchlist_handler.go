// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stockwatch_backend/internal/api"
	"stockwatch_backend/internal/feature/watchlist/domain/entity"
	"stockwatch_backend/internal/feature/watchlist/transport/http/dto"
	"stockwatch_backend/internal/feature/watchlist/usecase"
)

// keepAliveInterval は SSE 接続を維持するためのコメント送信間隔です。
const keepAliveInterval = 30 * time.Second

// WatchlistUsecase はウォッチリスト操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	ListWatchlists(ctx context.Context) ([]entity.Watchlist, error)
	ObserveWatchlists(ctx context.Context) (<-chan []entity.Watchlist, error)
	CreateWatchlist(ctx context.Context, name string) (entity.Watchlist, error)
	DeleteWatchlist(ctx context.Context, id int64) error
	ListStocks(ctx context.Context, watchlistID int64) ([]entity.Member, error)
	ObserveStocks(ctx context.Context, watchlistID int64) (<-chan []entity.Member, error)
	AddStock(ctx context.Context, watchlistID int64, symbol, name string) (entity.Member, error)
	RemoveStock(ctx context.Context, watchlistID int64, symbol string) error
	IsInAnyWatchlist(ctx context.Context, symbol string) (bool, error)
	WatchlistsContaining(ctx context.Context, symbol string) ([]entity.Member, error)
	RemoveFromAllWatchlists(ctx context.Context, symbol string) (int, error)
}

var _ WatchlistUsecase = (*usecase.WatchlistUsecase)(nil)

// WatchlistHandler はウォッチリストのHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は指定されたusecaseでWatchlistHandlerの新しいインスタンスを生成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// ListWatchlists はウォッチリストを作成日時の新しい順に返します。
//
// GET /watchlists
func (h *WatchlistHandler) ListWatchlists(c *gin.Context) {
	ws, err := h.uc.ListWatchlists(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewWatchlistList(ws))
}

// StreamWatchlists はウォッチリスト一覧を Server-Sent Events で配信します。
//
// GET /watchlists/stream
func (h *WatchlistHandler) StreamWatchlists(c *gin.Context) {
	updates, err := h.uc.ObserveWatchlists(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	stream(c, "watchlists", updates, dto.NewWatchlistList)
}

// CreateWatchlist はウォッチリストを作成します。
//
// POST /watchlists {"name": "Tech"}
func (h *WatchlistHandler) CreateWatchlist(c *gin.Context) {
	var req dto.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	w, err := h.uc.CreateWatchlist(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewWatchlistResponse(w))
}

// DeleteWatchlist はウォッチリストを登録銘柄ごと削除します。
//
// DELETE /watchlists/:id
func (h *WatchlistHandler) DeleteWatchlist(c *gin.Context) {
	id, ok := watchlistID(c)
	if !ok {
		return
	}
	if err := h.uc.DeleteWatchlist(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStocks はウォッチリストの登録銘柄を返します。
//
// GET /watchlists/:id/stocks
func (h *WatchlistHandler) ListStocks(c *gin.Context) {
	id, ok := watchlistID(c)
	if !ok {
		return
	}
	ms, err := h.uc.ListStocks(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMemberList(ms))
}

// StreamStocks は登録銘柄を Server-Sent Events で配信します。
//
// GET /watchlists/:id/stocks/stream
func (h *WatchlistHandler) StreamStocks(c *gin.Context) {
	id, ok := watchlistID(c)
	if !ok {
		return
	}
	updates, err := h.uc.ObserveStocks(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	stream(c, "stocks", updates, dto.NewMemberList)
}

// AddStock は銘柄をウォッチリストに登録します。
//
// POST /watchlists/:id/stocks {"symbol": "AAPL", "name": "Apple Inc"}
func (h *WatchlistHandler) AddStock(c *gin.Context) {
	id, ok := watchlistID(c)
	if !ok {
		return
	}
	var req dto.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	m, err := h.uc.AddStock(c.Request.Context(), id, req.Symbol, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewMemberResponse(m))
}

// RemoveStock はウォッチリストから銘柄を外します。
//
// DELETE /watchlists/:id/stocks/:symbol
func (h *WatchlistHandler) RemoveStock(c *gin.Context) {
	id, ok := watchlistID(c)
	if !ok {
		return
	}
	if err := h.uc.RemoveStock(c.Request.Context(), id, c.Param("symbol")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMemberships は銘柄が登録されているウォッチリストの登録情報を返します。
//
// GET /stocks/:symbol/watchlists
func (h *WatchlistHandler) ListMemberships(c *gin.Context) {
	ms, err := h.uc.WatchlistsContaining(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMemberList(ms))
}

// IsWatchlisted は銘柄がいずれかのウォッチリストに登録されているかを返します。
//
// GET /stocks/:symbol/watchlisted
func (h *WatchlistHandler) IsWatchlisted(c *gin.Context) {
	symbol := c.Param("symbol")
	ok, err := h.uc.IsInAnyWatchlist(c.Request.Context(), symbol)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WatchlistedResponse{Symbol: symbol, Watchlisted: ok})
}

// RemoveFromAll は銘柄をすべてのウォッチリストから外し、影響を受けたウォッチリスト数を返します。
//
// DELETE /stocks/:symbol/watchlists
func (h *WatchlistHandler) RemoveFromAll(c *gin.Context) {
	n, err := h.uc.RemoveFromAllWatchlists(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.CountResponse{Count: n})
}

func watchlistID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid watchlist id"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidName), errors.Is(err, usecase.ErrInvalidSymbol):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrWatchlistNotFound), errors.Is(err, usecase.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("watchlist operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

// stream は購読チャネルの値を SSE のイベントとして書き出します。
// クライアントが切断するかチャネルが閉じると戻ります。
func stream[T, R any](c *gin.Context, event string, updates <-chan T, render func(T) R) {
	c.Header("Content-Type", "text/event-stream;charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent(event, render(v))
			c.Writer.Flush()
		case <-keepAlive.C:
			_, _ = c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
