package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockwatch_backend/internal/feature/market/domain/entity"
	"stockwatch_backend/internal/feature/market/usecase"
)

// latestSnapshotID は常に上書きされる唯一の行の主キーです。
const latestSnapshotID = 1

type SnapshotGorm struct {
	db *gorm.DB
}

var _ usecase.SnapshotStore = (*SnapshotGorm)(nil)

// NewSnapshotStore は Top Movers を1行だけ保持するストアを作成します。
func NewSnapshotStore(db *gorm.DB) *SnapshotGorm {
	return &SnapshotGorm{db: db}
}

// TopGainersLosersModel は Top Movers のスナップショットを保存するテーブルです。
// 3つのランキングは JSON テキストとして保存します。
type TopGainersLosersModel struct {
	ID                 uint                 `gorm:"primaryKey"`
	Metadata           string               `gorm:"type:text;not null"`
	LastUpdated        string               `gorm:"size:64;not null"`
	TopGainers         []entity.QuoteRecord `gorm:"type:text;serializer:json"`
	TopLosers          []entity.QuoteRecord `gorm:"type:text;serializer:json"`
	MostActivelyTraded []entity.QuoteRecord `gorm:"type:text;serializer:json"`
	Timestamp          int64                `gorm:"index;not null"` // 取得時刻（Unix ミリ秒）
}

func (TopGainersLosersModel) TableName() string {
	return "top_gainers_losers"
}

// Save は唯一の行を置き換えます。
func (r *SnapshotGorm) Save(ctx context.Context, snapshot entity.QuoteSnapshot, fetchedAt time.Time) error {
	m := TopGainersLosersModel{
		ID:                 latestSnapshotID,
		Metadata:           snapshot.Metadata,
		LastUpdated:        snapshot.LastUpdated,
		TopGainers:         snapshot.TopGainers,
		TopLosers:          snapshot.TopLosers,
		MostActivelyTraded: snapshot.MostActivelyTraded,
		Timestamp:          fetchedAt.UnixMilli(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&m).Error
}

// Latest はタイムスタンプが最も新しい行を返します。行がなければ nil を返します。
func (r *SnapshotGorm) Latest(ctx context.Context) (*entity.StoredSnapshot, error) {
	var m TopGainersLosersModel
	err := r.db.WithContext(ctx).Order("timestamp DESC").Limit(1).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.StoredSnapshot{
		Snapshot: entity.QuoteSnapshot{
			Metadata:           m.Metadata,
			LastUpdated:        m.LastUpdated,
			TopGainers:         m.TopGainers,
			TopLosers:          m.TopLosers,
			MostActivelyTraded: m.MostActivelyTraded,
		},
		FetchedAt: time.UnixMilli(m.Timestamp),
	}, nil
}
