package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
)

// GormAuditRepository implements production.AuditRepository over factory_transactions
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores one audit entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *production.AuditEntry) error {
	model := &FactoryTransactionModel{
		ID:              entry.ID,
		FactoryID:       entry.FactoryID,
		TransactionType: string(entry.Type),
		ItemID:          entry.ItemID,
		Quantity:        entry.Quantity,
		BatchID:         entry.BatchID,
		Notes:           entry.Notes,
		CreatedAt:       entry.CreatedAt.UTC(),
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append factory audit entry: %w", err)
	}
	return nil
}

// ListByFactory returns a factory's audit trail, oldest first
func (r *GormAuditRepository) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]*production.AuditEntry, error) {
	var models []FactoryTransactionModel
	err := conn(ctx, r.db).
		Where("factory_id = ?", factoryID).
		Order("created_at").Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list factory audit entries: %w", err)
	}

	entries := make([]*production.AuditEntry, len(models))
	for i, m := range models {
		entries[i] = &production.AuditEntry{
			ID:        m.ID,
			FactoryID: m.FactoryID,
			Type:      production.AuditType(m.TransactionType),
			ItemID:    m.ItemID,
			Quantity:  m.Quantity,
			BatchID:   m.BatchID,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt.UTC(),
		}
	}
	return entries, nil
}
