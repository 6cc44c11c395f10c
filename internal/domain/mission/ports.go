package mission

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists missions
type Repository interface {
	// ListExpiredIDs returns in-progress missions started before cutoff
	ListExpiredIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Mission, error)
	Save(ctx context.Context, mission *Mission) error
}

// AircraftRepository persists aircraft
type AircraftRepository interface {
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Aircraft, error)
	Save(ctx context.Context, aircraft *Aircraft) error
}
