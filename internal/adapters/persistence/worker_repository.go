package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

var payableStatuses = []string{string(workforce.StatusWorking), string(workforce.StatusAvailable)}

// GormWorkerRepository implements workforce.WorkerRepository using GORM
type GormWorkerRepository struct {
	db *gorm.DB
}

// NewGormWorkerRepository creates a new GORM worker repository
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{db: db}
}

// Create inserts a new worker
func (r *GormWorkerRepository) Create(ctx context.Context, worker *workforce.Worker) error {
	if err := conn(ctx, r.db).Create(workerToModel(worker)).Error; err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Save upserts the worker
func (r *GormWorkerRepository) Save(ctx context.Context, worker *workforce.Worker) error {
	err := upsert(conn(ctx, r.db), workerToModel(worker),
		"employer_id", "airport_ident", "factory_id", "country_code", "kind",
		"first_name", "last_name", "speed", "resistance", "xp", "tier",
		"hourly_wage", "status", "injured_at", "died_at", "updated_at",
	)
	if err != nil {
		return fmt.Errorf("failed to save worker: %w", err)
	}
	return nil
}

// FindForUpdate loads a worker and locks its row
func (r *GormWorkerRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*workforce.Worker, error) {
	var model WorkerModel
	if err := forUpdate(conn(ctx, r.db)).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to find worker: %w", notFound(err, "worker", id.String()))
	}
	return modelToWorker(&model), nil
}

// ListWorkingAtFactory loads and locks the workers currently working at a factory
func (r *GormWorkerRepository) ListWorkingAtFactory(ctx context.Context, factoryID uuid.UUID) ([]*workforce.Worker, error) {
	var models []WorkerModel
	err := forUpdate(conn(ctx, r.db)).
		Where("factory_id = ? AND status = ?", factoryID, string(workforce.StatusWorking)).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list factory workers: %w", err)
	}

	workers := make([]*workforce.Worker, len(models))
	for i := range models {
		workers[i] = modelToWorker(&models[i])
	}
	return workers, nil
}

// ListInjuredIDs returns every injured worker
func (r *GormWorkerRepository) ListInjuredIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&WorkerModel{}).
		Where("status = ?", string(workforce.StatusInjured)).
		Order("injured_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list injured workers: %w", err)
	}
	return ids, nil
}

// ListDeadIDsBefore returns dead workers whose death is older than cutoff
func (r *GormWorkerRepository) ListDeadIDsBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&WorkerModel{}).
		Where("status = ? AND died_at < ?", string(workforce.StatusDead), cutoff.UTC()).
		Order("died_at").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dead workers: %w", err)
	}
	return ids, nil
}

// PurgeDead removes the worker when it is still dead and died before cutoff
func (r *GormWorkerRepository) PurgeDead(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error) {
	result := conn(ctx, r.db).
		Where("id = ? AND status = ? AND died_at < ?", id, string(workforce.StatusDead), cutoff.UTC()).
		Delete(&WorkerModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to purge worker: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

type payrollRow struct {
	EmployerID uuid.UUID
	ID         uuid.UUID
	HourlyWage decimal.Decimal
}

// ListPayrollLines returns employed workers that are working or available
func (r *GormWorkerRepository) ListPayrollLines(ctx context.Context) ([]workforce.PayrollLine, error) {
	return r.payrollLines(conn(ctx, r.db).Where("employer_id IS NOT NULL"))
}

// ListPayrollLinesForEmployer is ListPayrollLines restricted to one employer
func (r *GormWorkerRepository) ListPayrollLinesForEmployer(ctx context.Context, employerID uuid.UUID) ([]workforce.PayrollLine, error) {
	return r.payrollLines(conn(ctx, r.db).Where("employer_id = ?", employerID))
}

func (r *GormWorkerRepository) payrollLines(db *gorm.DB) ([]workforce.PayrollLine, error) {
	var rows []payrollRow
	err := db.Model(&WorkerModel{}).
		Select("employer_id, id, hourly_wage").
		Where("status IN ?", payableStatuses).
		Order("employer_id").Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll lines: %w", err)
	}

	lines := make([]workforce.PayrollLine, len(rows))
	for i, row := range rows {
		lines[i] = workforce.PayrollLine{
			EmployerID: row.EmployerID,
			WorkerID:   row.ID,
			HourlyWage: row.HourlyWage,
		}
	}
	return lines, nil
}

// DeleteUnemployedAvailableAt removes the hireable workers at an airport
func (r *GormWorkerRepository) DeleteUnemployedAvailableAt(ctx context.Context, airportIdent string) (int64, error) {
	result := conn(ctx, r.db).
		Where("airport_ident = ? AND employer_id IS NULL AND status = ?", airportIdent, string(workforce.StatusAvailable)).
		Delete(&WorkerModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear worker pool: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func modelToWorker(m *WorkerModel) *workforce.Worker {
	return workforce.ReconstructWorker(workforce.WorkerData{
		ID:           m.ID,
		EmployerID:   m.EmployerID,
		AirportIdent: m.AirportIdent,
		FactoryID:    m.FactoryID,
		CountryCode:  m.CountryCode,
		Kind:         workforce.Kind(m.Kind),
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Speed:        m.Speed,
		Resistance:   m.Resistance,
		XP:           m.XP,
		Tier:         m.Tier,
		HourlyWage:   m.HourlyWage,
		Status:       workforce.Status(m.Status),
		InjuredAt:    utcPtr(m.InjuredAt),
		DiedAt:       utcPtr(m.DiedAt),
		CreatedAt:    m.CreatedAt.UTC(),
	})
}

func workerToModel(w *workforce.Worker) *WorkerModel {
	d := w.Snapshot()
	return &WorkerModel{
		ID:           d.ID,
		EmployerID:   d.EmployerID,
		AirportIdent: d.AirportIdent,
		FactoryID:    d.FactoryID,
		CountryCode:  d.CountryCode,
		Kind:         string(d.Kind),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Speed:        d.Speed,
		Resistance:   d.Resistance,
		XP:           d.XP,
		Tier:         d.Tier,
		HourlyWage:   d.HourlyWage,
		Status:       string(d.Status),
		InjuredAt:    d.InjuredAt,
		DiedAt:       d.DiedAt,
		CreatedAt:    d.CreatedAt,
	}
}
