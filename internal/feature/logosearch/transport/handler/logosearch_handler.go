// Package handler はlogosearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stockwatch_backend/internal/api"
	"stockwatch_backend/internal/feature/logosearch/domain/entity"
	"stockwatch_backend/internal/feature/logosearch/transport/http/dto"
	"stockwatch_backend/internal/feature/logosearch/usecase"
	"stockwatch_backend/internal/feature/market/domain"
	markethandler "stockwatch_backend/internal/feature/market/transport/handler"
)

// LogoSearchUsecase はロゴ検索・企業要約のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type LogoSearchUsecase interface {
	SearchByLogo(ctx context.Context, imageData []byte, apiKey string) ([]entity.LogoMatch, error)
	BriefCompany(ctx context.Context, symbol, apiKey string) (*entity.CompanyBrief, error)
}

var _ LogoSearchUsecase = (*usecase.LogoSearchUsecase)(nil)

// LogoSearchHandler はロゴ検索・企業要約のHTTPリクエストを処理します。
type LogoSearchHandler struct {
	uc LogoSearchUsecase
}

// NewLogoSearchHandler はLogoSearchHandlerの新しいインスタンスを生成します。
func NewLogoSearchHandler(uc LogoSearchUsecase) *LogoSearchHandler {
	return &LogoSearchHandler{uc: uc}
}

// SearchByLogo は画像をアップロードしてロゴを検出し、銘柄候補を返します。
//
// エンドポイント: POST /logos/search
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *LogoSearchHandler) SearchByLogo(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	// 上限を1バイト超えて読み、サイズ超過の判定はユースケースに任せる
	imageData, err := io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	matches, err := h.uc.SearchByLogo(c.Request.Context(), imageData, c.GetHeader(markethandler.APIKeyHeader))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLogoMatchList(matches))
}

// BriefCompany は銘柄の企業要約を生成します。
//
// エンドポイント: POST /logos/brief
// Content-Type: application/json
func (h *LogoSearchHandler) BriefCompany(c *gin.Context) {
	var req dto.BriefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("企業要約リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbol is required"})
		return
	}

	brief, err := h.uc.BriefCompany(c.Request.Context(), req.Symbol, c.GetHeader(markethandler.APIKeyHeader))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewBriefResponse(*brief))
}

func writeError(c *gin.Context, err error) {
	var fe *domain.FetchError
	switch {
	case errors.Is(err, usecase.ErrEmptyImage), errors.Is(err, usecase.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
	case errors.As(err, &fe), errors.Is(err, domain.ErrInvalidSymbol):
		markethandler.WriteError(c, err)
	default:
		slog.Error("logo search failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "upstream service failed"})
	}
}
