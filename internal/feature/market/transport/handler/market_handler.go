// Package handler はマーケットフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stockwatch_backend/internal/api"
	"stockwatch_backend/internal/feature/market/domain/entity"
	"stockwatch_backend/internal/feature/market/transport/http/dto"
)

// MarketUsecase はマーケットデータ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketUsecase interface {
	GetTopMovers(ctx context.Context, apiKey string) (entity.QuoteSnapshot, error)
	GetTopGainers(ctx context.Context, apiKey string) ([]entity.QuoteRecord, error)
	GetTopLosers(ctx context.Context, apiKey string) ([]entity.QuoteRecord, error)
	GetCachedQuote(symbol string) (*entity.QuoteRecord, bool)
	GetCompanyProfile(ctx context.Context, symbol, apiKey string) (*entity.CompanyProfile, error)
	GetStockDetails(ctx context.Context, symbol, apiKey string) (entity.StockDetails, error)
	SearchSymbols(ctx context.Context, keywords, apiKey string) (entity.SearchResults, error)
	GetTimeSeries(ctx context.Context, symbol string, g entity.Granularity, apiKey string) (*entity.TimeSeries, error)
	GetTimeSeriesForRange(ctx context.Context, symbol, rangeLabel, apiKey string) (*entity.TimeSeries, error)
	GetNewsFeed(ctx context.Context, tickers []string, apiKey string) (entity.NewsFeed, error)
}

// MarketHandler はマーケットデータのHTTPリクエストを処理します。
type MarketHandler struct {
	uc MarketUsecase
}

// NewMarketHandler は指定されたusecaseでMarketHandlerの新しいインスタンスを生成します。
func NewMarketHandler(uc MarketUsecase) *MarketHandler {
	return &MarketHandler{uc: uc}
}

// GetTopMovers は値上がり・値下がり・出来高ランキングを返します。
//
// GET /market/top-movers
func (h *MarketHandler) GetTopMovers(c *gin.Context) {
	snap, err := h.uc.GetTopMovers(c.Request.Context(), c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTopMoversResponse(snap))
}

// GetTopGainers は値上がりランキングを返します。
//
// GET /market/gainers
func (h *MarketHandler) GetTopGainers(c *gin.Context) {
	qs, err := h.uc.GetTopGainers(c.Request.Context(), c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteList(qs))
}

// GetTopLosers は値下がりランキングを返します。
//
// GET /market/losers
func (h *MarketHandler) GetTopLosers(c *gin.Context) {
	qs, err := h.uc.GetTopLosers(c.Request.Context(), c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteList(qs))
}

// GetCachedQuote はメモリ上の Top Movers にある気配値を返します。外部 API は呼びません。
//
// GET /market/quotes/:symbol
func (h *MarketHandler) GetCachedQuote(c *gin.Context) {
	q, ok := h.uc.GetCachedQuote(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "quote not cached"})
		return
	}
	c.JSON(http.StatusOK, dto.NewQuoteResponse(*q))
}

// GetCompany は企業情報を返します。
//
// GET /market/companies/:symbol
func (h *MarketHandler) GetCompany(c *gin.Context) {
	p, err := h.uc.GetCompanyProfile(c.Request.Context(), c.Param("symbol"), c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "company not found"})
		return
	}
	c.JSON(http.StatusOK, dto.NewCompanyResponse(*p))
}

// GetStockDetails は銘柄詳細を返します。企業情報も気配値もなければ 404 です。
//
// GET /market/stocks/:symbol
func (h *MarketHandler) GetStockDetails(c *gin.Context) {
	d, err := h.uc.GetStockDetails(c.Request.Context(), c.Param("symbol"), c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	if d.Kind() == entity.DetailsEmpty {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stock not found"})
		return
	}
	c.JSON(http.StatusOK, dto.NewStockDetailsResponse(d))
}

// SearchSymbols はキーワードでシンボルを検索します。
//
// GET /market/search?keywords=apple
func (h *MarketHandler) SearchSymbols(c *gin.Context) {
	r, err := h.uc.SearchSymbols(c.Request.Context(), c.Query("keywords"), c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSearchMatches(r.BestMatches))
}

// GetTimeSeries は時系列を返します。range を指定した場合は granularity より優先します。
//
// エンドポイント例:
// GET /market/series/:symbol?granularity=daily
// GET /market/series/:symbol?range=1M
func (h *MarketHandler) GetTimeSeries(c *gin.Context) {
	symbol := c.Param("symbol")
	ctx := c.Request.Context()
	apiKey := c.GetHeader(APIKeyHeader)

	var (
		s   *entity.TimeSeries
		err error
	)
	if r := c.Query("range"); r != "" {
		s, err = h.uc.GetTimeSeriesForRange(ctx, symbol, r, apiKey)
	} else {
		var g entity.Granularity
		g, err = entity.ParseGranularity(c.DefaultQuery("granularity", string(entity.Daily)))
		if err == nil {
			s, err = h.uc.GetTimeSeries(ctx, symbol, g, apiKey)
		}
	}
	if err != nil {
		WriteError(c, err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "time series not found"})
		return
	}
	c.JSON(http.StatusOK, dto.NewSeriesResponse(strings.ToUpper(symbol), *s))
}

// GetNews はニュースとセンチメントを返します。
//
// GET /market/news?tickers=AAPL,MSFT
func (h *MarketHandler) GetNews(c *gin.Context) {
	var tickers []string
	for _, t := range strings.Split(c.Query("tickers"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, strings.ToUpper(t))
		}
	}

	feed, err := h.uc.GetNewsFeed(c.Request.Context(), tickers, c.GetHeader(APIKeyHeader))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNewsResponse(feed))
}
