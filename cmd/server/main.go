package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stockwatch_backend/internal/app/di"
	"stockwatch_backend/internal/app/router"
	logosearchhandler "stockwatch_backend/internal/feature/logosearch/transport/handler"
	markethandler "stockwatch_backend/internal/feature/market/transport/handler"
	watchlisthandler "stockwatch_backend/internal/feature/watchlist/transport/handler"
	infradb "stockwatch_backend/internal/platform/db"
	platformhandler "stockwatch_backend/internal/platform/http/handler"
	jwtmw "stockwatch_backend/internal/platform/jwt"
	infraredis "stockwatch_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("failed to get sql.DB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Running without shared cache.", "error", err)
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Usecase
	marketUC := di.NewMarketUsecase(db, rdb)
	watchlistUC := di.NewWatchlistUsecase(db)

	// Handler
	checks := map[string]platformhandler.Check{"database": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	handlers := router.Handlers{
		Health:    platformhandler.NewHealthHandler(checks),
		Market:    markethandler.NewMarketHandler(marketUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
	}

	if di.LogoSearchEnabled() {
		var logos *logosearchhandler.LogoSearchHandler
		var cleanup func()
		logos, cleanup, err = di.NewLogoSearchHandler(ctx, marketUC)
		if err != nil {
			slog.Error("failed to initialize logo search", "error", err)
			os.Exit(1)
		}
		defer cleanup()
		handlers.Logos = logos
	}

	// ルータ生成
	r := router.NewRouter(handlers, jwtmw.SecretFromEnv())

	srv := &http.Server{
		Addr:              ":" + port(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}
