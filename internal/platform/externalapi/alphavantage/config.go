// Package alphavantage provides a client for the Alpha Vantage market data API.
package alphavantage

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultBaseURL       = "https://www.alphavantage.co"
	defaultRatePerMinute = 5
)

// Config holds configuration for the Alpha Vantage API client.
type Config struct {
	APIKey        string        // 呼び出し元が API キーを渡さなかった場合に使うキー
	BaseURL       string        // Base URL for the API (e.g., "https://www.alphavantage.co")
	Timeout       time.Duration // HTTP request timeout
	RatePerMinute int           // 1分あたりのリクエスト上限（0以下で無制限）
}

// LoadConfig loads Alpha Vantage configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		APIKey:        os.Getenv("ALPHAVANTAGE_API_KEY"),
		BaseURL:       os.Getenv("ALPHAVANTAGE_BASE_URL"),
		Timeout:       10 * time.Second,
		RatePerMinute: defaultRatePerMinute,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if v := os.Getenv("ALPHAVANTAGE_RATE_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid ALPHAVANTAGE_RATE_PER_MINUTE, using default", "value", v, "default", defaultRatePerMinute)
		} else {
			cfg.RatePerMinute = n
		}
	}
	return cfg
}
