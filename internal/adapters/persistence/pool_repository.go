package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// GormPoolRepository implements workforce.PoolRepository using GORM
type GormPoolRepository struct {
	db *gorm.DB
}

// NewGormPoolRepository creates a new GORM worker pool repository
func NewGormPoolRepository(db *gorm.DB) *GormPoolRepository {
	return &GormPoolRepository{db: db}
}

// ListDueIDs returns pools that were never reset or whose next reset has passed
func (r *GormPoolRepository) ListDueIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&AirportWorkerPoolModel{}).
		Where("next_reset_at IS NULL OR next_reset_at <= ?", now.UTC()).
		Order("airport_ident").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due worker pools: %w", err)
	}
	return ids, nil
}

// FindForUpdate loads a pool and locks its row
func (r *GormPoolRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*workforce.Pool, error) {
	var m AirportWorkerPoolModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to find worker pool: %w", notFound(err, "worker_pool", id.String()))
	}
	return &workforce.Pool{
		ID:               m.ID,
		AirportIdent:     m.AirportIdent,
		MaxWorkers:       m.MaxWorkers,
		MaxEngineers:     m.MaxEngineers,
		CurrentWorkers:   m.CurrentWorkers,
		CurrentEngineers: m.CurrentEngineers,
		LastResetAt:      utcPtr(m.LastResetAt),
		NextResetAt:      utcPtr(m.NextResetAt),
	}, nil
}

// Save upserts the pool
func (r *GormPoolRepository) Save(ctx context.Context, pool *workforce.Pool) error {
	model := &AirportWorkerPoolModel{
		ID:               pool.ID,
		AirportIdent:     pool.AirportIdent,
		MaxWorkers:       pool.MaxWorkers,
		MaxEngineers:     pool.MaxEngineers,
		CurrentWorkers:   pool.CurrentWorkers,
		CurrentEngineers: pool.CurrentEngineers,
		LastResetAt:      pool.LastResetAt,
		NextResetAt:      pool.NextResetAt,
	}
	err := upsert(conn(ctx, r.db), model,
		"max_workers", "max_engineers", "current_workers", "current_engineers",
		"last_reset_at", "next_reset_at",
	)
	if err != nil {
		return fmt.Errorf("failed to save worker pool: %w", err)
	}
	return nil
}
