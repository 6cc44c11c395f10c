package workforce

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// Status is the lifecycle state of a worker
type Status string

const (
	StatusAvailable Status = "available"
	StatusWorking   Status = "working"
	StatusInjured   Status = "injured"
	StatusDead      Status = "dead"
)

// Kind separates regular workers from engineers
type Kind string

const (
	KindWorker   Kind = "worker"
	KindEngineer Kind = "engineer"
)

// transitions is the single authority for worker status changes.
// Dead is terminal; purging removes the row and is not a status.
var transitions = shared.TransitionTable[Status]{
	StatusAvailable: {StatusWorking, StatusInjured},
	StatusWorking:   {StatusAvailable, StatusInjured},
	StatusInjured:   {StatusAvailable, StatusDead},
}

// Worker is a hireable person. Pool-generated and hired workers share this
// one representation and one lifecycle.
type Worker struct {
	id           uuid.UUID
	employerID   *uuid.UUID
	airportIdent string
	factoryID    *uuid.UUID
	countryCode  string
	kind         Kind
	firstName    string
	lastName     string
	speed        int
	resistance   int
	xp           int
	tier         int
	hourlyWage   decimal.Decimal
	status       Status
	injuredAt    *time.Time
	diedAt       *time.Time
	createdAt    time.Time
}

// WorkerData carries persisted worker state into ReconstructWorker
type WorkerData struct {
	ID           uuid.UUID
	EmployerID   *uuid.UUID
	AirportIdent string
	FactoryID    *uuid.UUID
	CountryCode  string
	Kind         Kind
	FirstName    string
	LastName     string
	Speed        int
	Resistance   int
	XP           int
	Tier         int
	HourlyWage   decimal.Decimal
	Status       Status
	InjuredAt    *time.Time
	DiedAt       *time.Time
	CreatedAt    time.Time
}

// NewWorker creates an unemployed, available worker at an airport
func NewWorker(
	kind Kind,
	firstName, lastName string,
	airportIdent, countryCode string,
	speed, resistance int,
	hourlyWage decimal.Decimal,
	now time.Time,
) (*Worker, error) {
	if kind != KindWorker && kind != KindEngineer {
		return nil, shared.NewValidationError("kind", fmt.Sprintf("unknown worker kind %q", kind))
	}
	if speed < MinStat || speed > MaxStat {
		return nil, shared.NewValidationError("speed", fmt.Sprintf("must be within [%d, %d]", MinStat, MaxStat))
	}
	if resistance < MinStat || resistance > MaxStat {
		return nil, shared.NewValidationError("resistance", fmt.Sprintf("must be within [%d, %d]", MinStat, MaxStat))
	}
	if hourlyWage.IsNegative() {
		return nil, shared.NewValidationError("hourly_wage", "cannot be negative")
	}

	return &Worker{
		id:           uuid.New(),
		airportIdent: airportIdent,
		countryCode:  countryCode,
		kind:         kind,
		firstName:    firstName,
		lastName:     lastName,
		speed:        speed,
		resistance:   resistance,
		tier:         TierForXP(0),
		hourlyWage:   hourlyWage,
		status:       StatusAvailable,
		createdAt:    now,
	}, nil
}

// ReconstructWorker rebuilds a worker from persistence
func ReconstructWorker(d WorkerData) *Worker {
	return &Worker{
		id:           d.ID,
		employerID:   d.EmployerID,
		airportIdent: d.AirportIdent,
		factoryID:    d.FactoryID,
		countryCode:  d.CountryCode,
		kind:         d.Kind,
		firstName:    d.FirstName,
		lastName:     d.LastName,
		speed:        d.Speed,
		resistance:   d.Resistance,
		xp:           d.XP,
		tier:         d.Tier,
		hourlyWage:   d.HourlyWage,
		status:       d.Status,
		injuredAt:    d.InjuredAt,
		diedAt:       d.DiedAt,
		createdAt:    d.CreatedAt,
	}
}

// Snapshot exports the worker state for persistence
func (w *Worker) Snapshot() WorkerData {
	return WorkerData{
		ID:           w.id,
		EmployerID:   w.employerID,
		AirportIdent: w.airportIdent,
		FactoryID:    w.factoryID,
		CountryCode:  w.countryCode,
		Kind:         w.kind,
		FirstName:    w.firstName,
		LastName:     w.lastName,
		Speed:        w.speed,
		Resistance:   w.resistance,
		XP:           w.xp,
		Tier:         w.tier,
		HourlyWage:   w.hourlyWage,
		Status:       w.status,
		InjuredAt:    w.injuredAt,
		DiedAt:       w.diedAt,
		CreatedAt:    w.createdAt,
	}
}

func (w *Worker) ID() uuid.UUID               { return w.id }
func (w *Worker) EmployerID() *uuid.UUID      { return w.employerID }
func (w *Worker) AirportIdent() string        { return w.airportIdent }
func (w *Worker) FactoryID() *uuid.UUID       { return w.factoryID }
func (w *Worker) CountryCode() string         { return w.countryCode }
func (w *Worker) Kind() Kind                  { return w.kind }
func (w *Worker) FullName() string            { return w.firstName + " " + w.lastName }
func (w *Worker) Speed() int                  { return w.speed }
func (w *Worker) Resistance() int             { return w.resistance }
func (w *Worker) XP() int                     { return w.xp }
func (w *Worker) Tier() int                   { return w.tier }
func (w *Worker) HourlyWage() decimal.Decimal { return w.hourlyWage }
func (w *Worker) Status() Status              { return w.status }
func (w *Worker) InjuredAt() *time.Time       { return w.injuredAt }
func (w *Worker) DiedAt() *time.Time          { return w.diedAt }
func (w *Worker) IsEngineer() bool            { return w.kind == KindEngineer }

// IsEmployed reports whether a company employs the worker
func (w *Worker) IsEmployed() bool {
	return w.employerID != nil
}

// Hire sets the employer of an available worker
func (w *Worker) Hire(companyID uuid.UUID) error {
	if w.status != StatusAvailable {
		return &shared.InvalidTransitionError{Entity: "worker", ID: w.id.String(), From: string(w.status), To: "hired"}
	}
	w.employerID = &companyID
	return nil
}

// AssignTo puts an available worker to work at a factory
func (w *Worker) AssignTo(factoryID uuid.UUID) error {
	if err := w.transition(StatusWorking); err != nil {
		return err
	}
	w.factoryID = &factoryID
	return nil
}

// Unassign takes a working worker off the factory floor
func (w *Worker) Unassign() error {
	if err := w.transition(StatusAvailable); err != nil {
		return err
	}
	w.factoryID = nil
	return nil
}

// Injure flags the worker as injured at now
func (w *Worker) Injure(now time.Time) error {
	if err := w.transition(StatusInjured); err != nil {
		return err
	}
	w.injuredAt = &now
	return nil
}

// Recover returns an injured worker to availability
func (w *Worker) Recover() error {
	if err := w.transition(StatusAvailable); err != nil {
		return err
	}
	w.injuredAt = nil
	w.factoryID = nil
	return nil
}

// InjuryExceeds reports whether the worker has been injured for longer than grace at now
func (w *Worker) InjuryExceeds(now time.Time, grace time.Duration) bool {
	return w.status == StatusInjured && w.injuredAt != nil && now.Sub(*w.injuredAt) > grace
}

// Die marks an injured worker dead, detaches employer and factory, and
// returns the former employer (nil when unemployed).
func (w *Worker) Die(now time.Time) (*uuid.UUID, error) {
	if err := w.transition(StatusDead); err != nil {
		return nil, err
	}
	employer := w.employerID
	w.employerID = nil
	w.factoryID = nil
	w.injuredAt = nil
	w.diedAt = &now
	return employer, nil
}

// DeadLongerThan reports whether the worker has been dead for more than retention
func (w *Worker) DeadLongerThan(now time.Time, retention time.Duration) bool {
	return w.status == StatusDead && w.diedAt != nil && now.Sub(*w.diedAt) > retention
}

// GrantXP adds experience and recomputes the tier
func (w *Worker) GrantXP(xp int) {
	if xp <= 0 || w.status == StatusDead {
		return
	}
	w.xp += xp
	w.tier = TierForXP(w.xp)
}

func (w *Worker) transition(to Status) error {
	if err := transitions.Check("worker", w.id.String(), w.status, to); err != nil {
		return err
	}
	w.status = to
	return nil
}
