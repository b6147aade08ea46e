package di

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"stockwatch_backend/internal/feature/logosearch/adapters/gemini"
	"stockwatch_backend/internal/feature/logosearch/adapters/vision"
	"stockwatch_backend/internal/feature/logosearch/transport/handler"
	"stockwatch_backend/internal/feature/logosearch/usecase"
)

// LogoSearchEnabled reports whether LOGO_SEARCH_ENABLED is "true".
func LogoSearchEnabled() bool {
	return os.Getenv("LOGO_SEARCH_ENABLED") == "true"
}

// NewLogoSearchHandler creates the logo search handler with Cloud Vision and Gemini clients.
// The returned cleanup closes the Vision client.
func NewLogoSearchHandler(ctx context.Context, market usecase.MarketLookup) (*handler.LogoSearchHandler, func(), error) {
	detector, err := vision.NewVisionLogoDetector(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("logo search: %w", err)
	}
	briefer, err := gemini.NewGeminiBriefer(ctx)
	if err != nil {
		_ = detector.Close()
		return nil, nil, fmt.Errorf("logo search: %w", err)
	}

	cleanup := func() {
		if err := detector.Close(); err != nil {
			slog.Warn("failed to close vision client", "error", err)
		}
	}
	uc := usecase.NewLogoSearchUsecase(detector, briefer, market)
	return handler.NewLogoSearchHandler(uc), cleanup, nil
}
