package mission

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// Status is the lifecycle state of a cargo mission
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// FailureReasonTimeout is set on missions closed by expiry
const FailureReasonTimeout = "timeout"

var transitions = shared.TransitionTable[Status]{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusFailed, StatusCancelled},
}

// Mission is a cargo flight between two airports
type Mission struct {
	id              uuid.UUID
	companyID       uuid.UUID
	pilotID         uuid.UUID
	aircraftID      *uuid.UUID
	originICAO      string
	destinationICAO string
	status          Status
	cargo           CargoSnapshot
	startedAt       *time.Time
	completedAt     *time.Time
	failureReason   string
	xpEarned        int
}

// Data carries persisted mission state into Reconstruct
type Data struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	PilotID         uuid.UUID
	AircraftID      *uuid.UUID
	OriginICAO      string
	DestinationICAO string
	Status          Status
	Cargo           CargoSnapshot
	StartedAt       *time.Time
	CompletedAt     *time.Time
	FailureReason   string
	XPEarned        int
}

// New creates a pending mission
func New(companyID, pilotID uuid.UUID, aircraftID *uuid.UUID, origin, destination string) *Mission {
	return &Mission{
		id:              uuid.New(),
		companyID:       companyID,
		pilotID:         pilotID,
		aircraftID:      aircraftID,
		originICAO:      origin,
		destinationICAO: destination,
		status:          StatusPending,
	}
}

// Reconstruct rebuilds a mission from persistence
func Reconstruct(d Data) *Mission {
	return &Mission{
		id:              d.ID,
		companyID:       d.CompanyID,
		pilotID:         d.PilotID,
		aircraftID:      d.AircraftID,
		originICAO:      d.OriginICAO,
		destinationICAO: d.DestinationICAO,
		status:          d.Status,
		cargo:           d.Cargo,
		startedAt:       d.StartedAt,
		completedAt:     d.CompletedAt,
		failureReason:   d.FailureReason,
		xpEarned:        d.XPEarned,
	}
}

// Snapshot exports the mission state for persistence
func (m *Mission) Snapshot() Data {
	return Data{
		ID:              m.id,
		CompanyID:       m.companyID,
		PilotID:         m.pilotID,
		AircraftID:      m.aircraftID,
		OriginICAO:      m.originICAO,
		DestinationICAO: m.destinationICAO,
		Status:          m.status,
		Cargo:           m.cargo,
		StartedAt:       m.startedAt,
		CompletedAt:     m.completedAt,
		FailureReason:   m.failureReason,
		XPEarned:        m.xpEarned,
	}
}

func (m *Mission) ID() uuid.UUID           { return m.id }
func (m *Mission) CompanyID() uuid.UUID    { return m.companyID }
func (m *Mission) PilotID() uuid.UUID      { return m.pilotID }
func (m *Mission) AircraftID() *uuid.UUID  { return m.aircraftID }
func (m *Mission) OriginICAO() string      { return m.originICAO }
func (m *Mission) DestinationICAO() string { return m.destinationICAO }
func (m *Mission) Status() Status          { return m.status }
func (m *Mission) Cargo() CargoSnapshot    { return m.cargo }
func (m *Mission) StartedAt() *time.Time   { return m.startedAt }
func (m *Mission) CompletedAt() *time.Time { return m.completedAt }
func (m *Mission) FailureReason() string   { return m.failureReason }
func (m *Mission) XPEarned() int           { return m.xpEarned }

// Depart starts the mission with the cargo captured at departure
func (m *Mission) Depart(cargo CargoSnapshot, now time.Time) error {
	if err := m.transition(StatusInProgress); err != nil {
		return err
	}
	m.cargo = cargo
	m.startedAt = &now
	return nil
}

// IsExpired reports whether an in-progress mission has outlived ttl at now
func (m *Mission) IsExpired(now time.Time, ttl time.Duration) bool {
	return m.status == StatusInProgress && m.startedAt != nil && m.startedAt.Before(now.Add(-ttl))
}

// Expire fails the mission with the timeout reason
func (m *Mission) Expire(now time.Time) error {
	if err := m.transition(StatusFailed); err != nil {
		return err
	}
	m.failureReason = FailureReasonTimeout
	m.completedAt = &now
	m.xpEarned = 0
	return nil
}

func (m *Mission) transition(to Status) error {
	if err := transitions.Check("mission", m.id.String(), m.status, to); err != nil {
		return err
	}
	m.status = to
	return nil
}
