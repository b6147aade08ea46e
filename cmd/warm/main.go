// Command warm はウォッチリストの全銘柄について市場データを事前取得します。
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stockwatch_backend/internal/app/di"
	marketusecase "stockwatch_backend/internal/feature/market/usecase"
	infradb "stockwatch_backend/internal/platform/db"
	infraredis "stockwatch_backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, infraredis.LoadConfig()); err != nil {
		slog.Warn("Redis unavailable. Warming the snapshot only.", "error", err)
	} else {
		rdb = tmp
	}

	uc := marketusecase.NewWarmUsecase(di.NewMarketUsecase(db, rdb), di.NewWatchlistUsecase(db))

	// 空のキーは ALPHAVANTAGE_API_KEY を使う
	report, err := uc.WarmAll(ctx, "")
	if rdb != nil {
		_ = rdb.Close()
	}
	if err != nil {
		slog.Error("warm failed", "error", err, "fetched", report.Fetched, "absent", report.Absent, "failed", report.Failed)
		os.Exit(1)
	}
	slog.Info("warm ok", "fetched", report.Fetched, "absent", report.Absent, "failed", report.Failed)
}
