package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
)

// GormBatchRepository implements production.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GORM batch repository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

func openStatuses() []string {
	statuses := make([]string, len(production.OpenBatchStatuses))
	for i, s := range production.OpenBatchStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// FindForUpdate loads a batch and locks its row
func (r *GormBatchRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*production.Batch, error) {
	var model ProductionBatchModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to find batch: %w", notFound(err, "production_batch", id.String()))
	}
	return modelToBatch(&model), nil
}

// ListDueIDs returns open batches whose estimated completion is at or before now
func (r *GormBatchRepository) ListDueIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&ProductionBatchModel{}).
		Where("status IN ? AND estimated_completion IS NOT NULL AND estimated_completion <= ?", openStatuses(), now.UTC()).
		Order("estimated_completion").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due batches: %w", err)
	}
	return ids, nil
}

// FindOpenByFactory returns the factory's open batch
func (r *GormBatchRepository) FindOpenByFactory(ctx context.Context, factoryID uuid.UUID) (*production.Batch, error) {
	var model ProductionBatchModel
	err := forUpdate(conn(ctx, r.db)).
		Where("factory_id = ? AND status IN ?", factoryID, openStatuses()).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find open batch: %w", notFound(err, "production_batch", factoryID.String()))
	}
	return modelToBatch(&model), nil
}

// Save upserts the batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *production.Batch) error {
	d := batch.Snapshot()
	model := &ProductionBatchModel{
		ID:                   d.ID,
		FactoryID:            d.FactoryID,
		RecipeID:             d.RecipeID,
		Status:               string(d.Status),
		WorkersAssigned:      d.WorkersAssigned,
		ResultQuantity:       d.ResultQuantity,
		EngineerBonusApplied: d.EngineerBonusApplied,
		StartedAt:            d.StartedAt,
		EstimatedCompletion:  d.EstimatedCompletion,
		CompletedAt:          d.CompletedAt,
		CreatedAt:            d.CreatedAt,
	}
	err := upsert(conn(ctx, r.db), model,
		"status", "workers_assigned", "result_quantity", "engineer_bonus_applied",
		"started_at", "estimated_completion", "completed_at",
	)
	if err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	return nil
}

func modelToBatch(m *ProductionBatchModel) *production.Batch {
	return production.ReconstructBatch(production.BatchData{
		ID:                   m.ID,
		FactoryID:            m.FactoryID,
		RecipeID:             m.RecipeID,
		Status:               production.BatchStatus(m.Status),
		WorkersAssigned:      m.WorkersAssigned,
		ResultQuantity:       m.ResultQuantity,
		EngineerBonusApplied: m.EngineerBonusApplied,
		StartedAt:            utcPtr(m.StartedAt),
		EstimatedCompletion:  utcPtr(m.EstimatedCompletion),
		CompletedAt:          utcPtr(m.CompletedAt),
		CreatedAt:            m.CreatedAt.UTC(),
	})
}
