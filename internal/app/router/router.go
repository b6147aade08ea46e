// Package router はアプリケーションの HTTP ルーティングを定義します。
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	logosearchhandler "stockwatch_backend/internal/feature/logosearch/transport/handler"
	markethandler "stockwatch_backend/internal/feature/market/transport/handler"
	watchlisthandler "stockwatch_backend/internal/feature/watchlist/transport/handler"
	platformhandler "stockwatch_backend/internal/platform/http/handler"
	jwtmw "stockwatch_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するハンドラーの集合です。Logos は nil にできます。
type Handlers struct {
	Health    *platformhandler.HealthHandler
	Market    *markethandler.MarketHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Logos     *logosearchhandler.LogoSearchHandler
}

// NewRouter はルートを登録した gin.Engine を返します。
// jwtSecret が空でなければ /healthz 以外のルートに JWT を要求します。
func NewRouter(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 認証不要
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	api := r.Group("/")
	if jwtSecret != "" {
		api.Use(jwtmw.AuthRequired(jwtSecret))
	} else {
		slog.Warn("JWT_SECRET is not set; API routes are unprotected")
	}

	market := api.Group("/market")
	{
		market.GET("/top-movers", h.Market.GetTopMovers)
		market.GET("/gainers", h.Market.GetTopGainers)
		market.GET("/losers", h.Market.GetTopLosers)
		market.GET("/quotes/:symbol", h.Market.GetCachedQuote)
		market.GET("/companies/:symbol", h.Market.GetCompany)
		market.GET("/stocks/:symbol", h.Market.GetStockDetails)
		market.GET("/search", h.Market.SearchSymbols)
		market.GET("/series/:symbol", h.Market.GetTimeSeries)
		market.GET("/news", h.Market.GetNews)
	}

	watchlists := api.Group("/watchlists")
	{
		watchlists.GET("", h.Watchlist.ListWatchlists)
		watchlists.GET("/stream", h.Watchlist.StreamWatchlists)
		watchlists.POST("", h.Watchlist.CreateWatchlist)
		watchlists.DELETE("/:id", h.Watchlist.DeleteWatchlist)
		watchlists.GET("/:id/stocks", h.Watchlist.ListStocks)
		watchlists.GET("/:id/stocks/stream", h.Watchlist.StreamStocks)
		watchlists.POST("/:id/stocks", h.Watchlist.AddStock)
		watchlists.DELETE("/:id/stocks/:symbol", h.Watchlist.RemoveStock)
	}

	stocks := api.Group("/stocks")
	{
		stocks.GET("/:symbol/watchlists", h.Watchlist.ListMemberships)
		stocks.GET("/:symbol/watchlisted", h.Watchlist.IsWatchlisted)
		stocks.DELETE("/:symbol/watchlists", h.Watchlist.RemoveFromAll)
	}

	if h.Logos != nil {
		logos := api.Group("/logos")
		logos.POST("/search", h.Logos.SearchByLogo)
		logos.POST("/brief", h.Logos.BriefCompany)
	}

	return r
}
