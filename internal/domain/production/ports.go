package production

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FactoryRepository persists factories
type FactoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Factory, error)
	// FindForUpdate loads the factory and locks its row for the current transaction
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Factory, error)
	// ListNPCProducingIDs returns active Tier-0 factories that are producing
	ListNPCProducingIDs(ctx context.Context) ([]uuid.UUID, error)
	// ListStaffedIDs returns active player factories with at least one working worker
	ListStaffedIDs(ctx context.Context) ([]uuid.UUID, error)
	Save(ctx context.Context, factory *Factory) error
}

// BatchRepository persists production batches
type BatchRepository interface {
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Batch, error)
	// ListDueIDs returns open batches whose completion time is at or before now
	ListDueIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	// FindOpenByFactory returns the factory's non-terminal batch, or a not-found error
	FindOpenByFactory(ctx context.Context, factoryID uuid.UUID) (*Batch, error)
	Save(ctx context.Context, batch *Batch) error
}

// RecipeRepository is the recipe catalog
type RecipeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)
}

// AuditRepository appends factory audit entries
type AuditRepository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]*AuditEntry, error)
}
