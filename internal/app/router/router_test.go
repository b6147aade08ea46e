package router_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockwatch_backend/internal/app/router"
	logosearchhandler "stockwatch_backend/internal/feature/logosearch/transport/handler"
	markethandler "stockwatch_backend/internal/feature/market/transport/handler"
	watchlisthandler "stockwatch_backend/internal/feature/watchlist/transport/handler"
	platformhandler "stockwatch_backend/internal/platform/http/handler"
	jwtmw "stockwatch_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func handlers() router.Handlers {
	return router.Handlers{
		Health:    platformhandler.NewHealthHandler(nil),
		Market:    markethandler.NewMarketHandler(nil),
		Watchlist: watchlisthandler.NewWatchlistHandler(nil),
	}
}

func do(r http.Handler, method, url, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func routeSet(r *gin.Engine) map[string]bool {
	set := map[string]bool{}
	for _, ri := range r.Routes() {
		set[ri.Method+" "+ri.Path] = true
	}
	return set
}

// TestNewRouter_Routes は API のルートが登録されていることを検証します。
func TestNewRouter_Routes(t *testing.T) {
	r := router.NewRouter(handlers(), "")
	routes := routeSet(r)

	for _, want := range []string{
		"GET /healthz",
		"GET /market/top-movers",
		"GET /market/gainers",
		"GET /market/losers",
		"GET /market/quotes/:symbol",
		"GET /market/companies/:symbol",
		"GET /market/stocks/:symbol",
		"GET /market/search",
		"GET /market/series/:symbol",
		"GET /market/news",
		"GET /watchlists",
		"GET /watchlists/stream",
		"POST /watchlists",
		"DELETE /watchlists/:id",
		"GET /watchlists/:id/stocks",
		"GET /watchlists/:id/stocks/stream",
		"POST /watchlists/:id/stocks",
		"DELETE /watchlists/:id/stocks/:symbol",
		"GET /stocks/:symbol/watchlists",
		"GET /stocks/:symbol/watchlisted",
		"DELETE /stocks/:symbol/watchlists",
	} {
		assert.True(t, routes[want], want)
	}
	assert.False(t, routes["POST /logos/search"])
}

// TestNewRouter_LogoRoutes はロゴ検索ハンドラーがあるときだけ /logos が登録されることを検証します。
func TestNewRouter_LogoRoutes(t *testing.T) {
	h := handlers()
	h.Logos = logosearchhandler.NewLogoSearchHandler(nil)
	routes := routeSet(router.NewRouter(h, ""))

	assert.True(t, routes["POST /logos/search"])
	assert.True(t, routes["POST /logos/brief"])
}

// TestNewRouter_JWT は JWT_SECRET 設定時に /healthz 以外がトークンを要求することを検証します。
func TestNewRouter_JWT(t *testing.T) {
	const secret = "router-test-secret"
	r := router.NewRouter(handlers(), secret)

	w := do(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/watchlists", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwtmw.NewGenerator(secret, time.Hour).GenerateToken("tester")
	require.NoError(t, err)

	// 認証を通過した後、ID の検証でハンドラーが 400 を返す
	w = do(r, http.MethodDelete, "/watchlists/abc", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestNewRouter_NoSecret は JWT_SECRET 未設定ならトークンなしで到達できることを検証します。
func TestNewRouter_NoSecret(t *testing.T) {
	r := router.NewRouter(handlers(), "")

	w := do(r, http.MethodDelete, "/watchlists/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
