package ratelimiter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回までに呼び出しを制限します。
// バースト上限は limit と同じで、使い切った後は均等な間隔で補充されます。
type RateLimiter struct {
	limiter *rate.Limiter
	limit   int
}

// NewRateLimiter は新しい RateLimiter を生成します。limit が 0 以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{limiter: rate.NewLimiter(every, limit), limit: limit}
}

// Wait は次の呼び出しが許可されるまで待機します。ctx が先に終了した場合は ctx のエラーを返し、枠は消費しません。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.limiter.Reserve()
	if !r.OK() {
		return fmt.Errorf("rate limiter: reservation exceeds burst %d", rl.limit)
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}

	slog.Info("rate limit reached, waiting", "limit", rl.limit, "delay", delay)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
