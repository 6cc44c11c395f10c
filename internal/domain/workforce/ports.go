package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollLine is one employed worker's wage obligation
type PayrollLine struct {
	EmployerID uuid.UUID
	WorkerID   uuid.UUID
	HourlyWage decimal.Decimal
}

// WorkerRepository persists workers
type WorkerRepository interface {
	Create(ctx context.Context, worker *Worker) error
	Save(ctx context.Context, worker *Worker) error
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Worker, error)
	// ListWorkingAtFactory loads and locks the workers currently working at a factory
	ListWorkingAtFactory(ctx context.Context, factoryID uuid.UUID) ([]*Worker, error)
	ListInjuredIDs(ctx context.Context) ([]uuid.UUID, error)
	// ListDeadIDsBefore returns dead workers whose death is older than cutoff
	ListDeadIDsBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
	// PurgeDead permanently removes the worker when it is still dead and died
	// before cutoff. It reports whether a row was removed.
	PurgeDead(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error)
	// ListPayrollLines returns employed workers that are working or available
	ListPayrollLines(ctx context.Context) ([]PayrollLine, error)
	// ListPayrollLinesForEmployer is ListPayrollLines restricted to one employer
	ListPayrollLinesForEmployer(ctx context.Context, employerID uuid.UUID) ([]PayrollLine, error)
	// DeleteUnemployedAvailableAt removes the hireable workers at an airport
	DeleteUnemployedAvailableAt(ctx context.Context, airportIdent string) (int64, error)
}

// PoolRepository persists airport worker pools
type PoolRepository interface {
	ListDueIDs(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Pool, error)
	Save(ctx context.Context, pool *Pool) error
}

// CountryStatsRepository reads base stats per country
type CountryStatsRepository interface {
	FindByCountry(ctx context.Context, countryCode string) (*CountryStats, error)
}

// AirportDirectory resolves airport metadata
type AirportDirectory interface {
	CountryOf(ctx context.Context, airportIdent string) (string, error)
}
