package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/mission"
)

// GormMissionRepository implements mission.Repository using GORM
type GormMissionRepository struct {
	db *gorm.DB
}

// NewGormMissionRepository creates a new GORM mission repository
func NewGormMissionRepository(db *gorm.DB) *GormMissionRepository {
	return &GormMissionRepository{db: db}
}

// ListExpiredIDs returns in-progress missions started before cutoff
func (r *GormMissionRepository) ListExpiredIDs(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&MissionModel{}).
		Where("status = ? AND started_at IS NOT NULL AND started_at < ?", string(mission.StatusInProgress), cutoff.UTC()).
		Order("started_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired missions: %w", err)
	}
	return ids, nil
}

// FindForUpdate loads a mission and locks its row
func (r *GormMissionRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*mission.Mission, error) {
	var m MissionModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to find mission: %w", notFound(err, "mission", id.String()))
	}

	cargo, err := mission.UnmarshalCargo(m.CargoSnapshot)
	if err != nil {
		return nil, err
	}

	return mission.Reconstruct(mission.Data{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		PilotID:         m.PilotID,
		AircraftID:      m.AircraftID,
		OriginICAO:      m.OriginICAO,
		DestinationICAO: m.DestinationICAO,
		Status:          mission.Status(m.Status),
		Cargo:           cargo,
		StartedAt:       utcPtr(m.StartedAt),
		CompletedAt:     utcPtr(m.CompletedAt),
		FailureReason:   m.FailureReason,
		XPEarned:        m.XPEarned,
	}), nil
}

// Save upserts the mission
func (r *GormMissionRepository) Save(ctx context.Context, ms *mission.Mission) error {
	d := ms.Snapshot()
	cargo, err := mission.MarshalCargo(d.Cargo)
	if err != nil {
		return err
	}

	model := &MissionModel{
		ID:              d.ID,
		CompanyID:       d.CompanyID,
		PilotID:         d.PilotID,
		AircraftID:      d.AircraftID,
		OriginICAO:      d.OriginICAO,
		DestinationICAO: d.DestinationICAO,
		Status:          string(d.Status),
		CargoSnapshot:   cargo,
		StartedAt:       d.StartedAt,
		CompletedAt:     d.CompletedAt,
		FailureReason:   d.FailureReason,
		XPEarned:        d.XPEarned,
	}
	err = upsert(conn(ctx, r.db), model,
		"aircraft_id", "status", "cargo_snapshot", "started_at",
		"completed_at", "failure_reason", "xp_earned",
	)
	if err != nil {
		return fmt.Errorf("failed to save mission: %w", err)
	}
	return nil
}

// GormAircraftRepository implements mission.AircraftRepository using GORM
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) *GormAircraftRepository {
	return &GormAircraftRepository{db: db}
}

// FindForUpdate loads an aircraft and locks its row
func (r *GormAircraftRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*mission.Aircraft, error) {
	var m AircraftModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to find aircraft: %w", notFound(err, "aircraft", id.String()))
	}
	return &mission.Aircraft{
		ID:             m.ID,
		CompanyID:      m.CompanyID,
		Registration:   m.Registration,
		Status:         mission.AircraftStatus(m.Status),
		CurrentAirport: m.CurrentAirport,
	}, nil
}

// Save upserts the aircraft
func (r *GormAircraftRepository) Save(ctx context.Context, a *mission.Aircraft) error {
	model := &AircraftModel{
		ID:             a.ID,
		CompanyID:      a.CompanyID,
		Registration:   a.Registration,
		Status:         string(a.Status),
		CurrentAirport: a.CurrentAirport,
	}
	if err := upsert(conn(ctx, r.db), model, "registration", "status", "current_airport"); err != nil {
		return fmt.Errorf("failed to save aircraft: %w", err)
	}
	return nil
}
