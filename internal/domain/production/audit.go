package production

import (
	"time"

	"github.com/google/uuid"
)

// AuditType classifies factory audit entries
type AuditType string

const (
	AuditTypeProduced     AuditType = "produced"
	AuditTypeFoodConsumed AuditType = "food_consumed"
)

// AuditEntry is an append-only record of goods moving through a factory
type AuditEntry struct {
	ID        uuid.UUID
	FactoryID uuid.UUID
	Type      AuditType
	ItemID    *uuid.UUID
	Quantity  int
	BatchID   *uuid.UUID
	Notes     string
	CreatedAt time.Time
}

// NewProducedEntry records output credited by a completed batch
func NewProducedEntry(factoryID, itemID, batchID uuid.UUID, quantity int, recipeName string, now time.Time) *AuditEntry {
	return &AuditEntry{
		ID:        uuid.New(),
		FactoryID: factoryID,
		Type:      AuditTypeProduced,
		ItemID:    &itemID,
		Quantity:  quantity,
		BatchID:   &batchID,
		Notes:     "Production completed: " + recipeName,
		CreatedAt: now,
	}
}

// NewFoodConsumedEntry records food eaten during a cycle
func NewFoodConsumedEntry(factoryID uuid.UUID, quantity int, fed bool, now time.Time) *AuditEntry {
	notes := "fed"
	if !fed {
		notes = "unfed"
	}
	return &AuditEntry{
		ID:        uuid.New(),
		FactoryID: factoryID,
		Type:      AuditTypeFoodConsumed,
		Quantity:  quantity,
		Notes:     notes,
		CreatedAt: now,
	}
}
