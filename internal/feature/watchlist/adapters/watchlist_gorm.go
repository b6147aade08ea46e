// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stockwatch_backend/internal/feature/watchlist/domain/entity"
	"stockwatch_backend/internal/feature/watchlist/usecase"
)

// WatchlistModel は watchlists テーブルです。
type WatchlistModel struct {
	ID        int64                 `gorm:"primaryKey;autoIncrement"`
	Name      string                `gorm:"size:255;not null"`
	CreatedAt int64                 `gorm:"autoCreateTime:milli;index"` // Unix ミリ秒
	Stocks    []WatchlistStockModel `gorm:"foreignKey:WatchlistID;constraint:OnDelete:CASCADE"`
}

func (WatchlistModel) TableName() string {
	return "watchlists"
}

// WatchlistStockModel は watchlist_stocks テーブルです。
type WatchlistStockModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	WatchlistID int64  `gorm:"not null;index"`
	Symbol      string `gorm:"size:32;not null;index"`
	Name        string `gorm:"size:255;not null"`
	AddedAt     int64  `gorm:"not null"` // Unix ミリ秒
}

func (WatchlistStockModel) TableName() string {
	return "watchlist_stocks"
}

// WatchlistGorm はWatchlistRepositoryインターフェースのGORM実装です。
type WatchlistGorm struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*WatchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でリポジトリの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *WatchlistGorm {
	return &WatchlistGorm{db: db}
}

func (r *WatchlistGorm) ListWatchlists(ctx context.Context) ([]entity.Watchlist, error) {
	var rows []WatchlistModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Watchlist, 0, len(rows))
	for _, m := range rows {
		out = append(out, toWatchlist(m))
	}
	return out, nil
}

func (r *WatchlistGorm) CreateWatchlist(ctx context.Context, w entity.Watchlist) (entity.Watchlist, error) {
	m := WatchlistModel{Name: w.Name, CreatedAt: w.CreatedAt.UnixMilli()}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.Watchlist{}, err
	}
	return toWatchlist(m), nil
}

// DeleteWatchlist は登録銘柄を明示的に削除してからウォッチリストを削除します。
// SQLite は外部キー制約が既定で無効なため、カスケードに頼りません。
func (r *WatchlistGorm) DeleteWatchlist(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watchlist_id = ?", id).Delete(&WatchlistStockModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&WatchlistModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrWatchlistNotFound
		}
		return nil
	})
}

func (r *WatchlistGorm) ListMembers(ctx context.Context, watchlistID int64) ([]entity.Member, error) {
	var rows []WatchlistStockModel
	if err := r.db.WithContext(ctx).
		Where("watchlist_id = ?", watchlistID).
		Order("added_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMembers(rows), nil
}

func (r *WatchlistGorm) AddMember(ctx context.Context, m entity.Member) (entity.Member, error) {
	row := WatchlistStockModel{
		WatchlistID: m.WatchlistID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		AddedAt:     m.AddedAt.UnixMilli(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&WatchlistModel{}).Where("id = ?", m.WatchlistID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrWatchlistNotFound
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return entity.Member{}, err
	}
	return toMember(row), nil
}

func (r *WatchlistGorm) RemoveMember(ctx context.Context, watchlistID int64, symbol string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("watchlist_id = ? AND symbol = ?", watchlistID, symbol).
		Delete(&WatchlistStockModel{})
	return res.RowsAffected, res.Error
}

func (r *WatchlistGorm) MembershipsBySymbol(ctx context.Context, symbol string) ([]entity.Member, error) {
	var rows []WatchlistStockModel
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("watchlist_id ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMembers(rows), nil
}

func (r *WatchlistGorm) ExistsBySymbol(ctx context.Context, symbol string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&WatchlistStockModel{}).
		Where("symbol = ?", symbol).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WatchlistGorm) RemoveSymbolEverywhere(ctx context.Context, symbol string) (int, error) {
	var affected []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&WatchlistStockModel{}).
			Where("symbol = ?", symbol).
			Distinct("watchlist_id").
			Pluck("watchlist_id", &affected).Error; err != nil {
			return err
		}
		if len(affected) == 0 {
			return nil
		}
		return tx.Where("symbol = ?", symbol).Delete(&WatchlistStockModel{}).Error
	})
	if err != nil {
		return 0, err
	}
	return len(affected), nil
}

func (r *WatchlistGorm) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&WatchlistStockModel{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

func toWatchlist(m WatchlistModel) entity.Watchlist {
	return entity.Watchlist{ID: m.ID, Name: m.Name, CreatedAt: time.UnixMilli(m.CreatedAt)}
}

func toMember(m WatchlistStockModel) entity.Member {
	return entity.Member{
		ID:          m.ID,
		WatchlistID: m.WatchlistID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		AddedAt:     time.UnixMilli(m.AddedAt),
	}
}

func toMembers(rows []WatchlistStockModel) []entity.Member {
	out := make([]entity.Member, 0, len(rows))
	for _, m := range rows {
		out = append(out, toMember(m))
	}
	return out
}
