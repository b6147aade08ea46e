package di

import (
	"gorm.io/gorm"

	watchlistadapters "stockwatch_backend/internal/feature/watchlist/adapters"
	"stockwatch_backend/internal/feature/watchlist/usecase"
)

// NewWatchlistUsecase creates a WatchlistUsecase backed by the GORM repository.
func NewWatchlistUsecase(db *gorm.DB) *usecase.WatchlistUsecase {
	return usecase.NewWatchlistUsecase(watchlistadapters.NewWatchlistRepository(db))
}
