package production

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// BatchStatus is the lifecycle state of a production batch
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "pending"
	BatchStatusInProgress BatchStatus = "in_progress"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
	BatchStatusCancelled  BatchStatus = "cancelled"
)

// OpenBatchStatuses are the non-terminal statuses
var OpenBatchStatuses = []BatchStatus{BatchStatusPending, BatchStatusInProgress}

var batchTransitions = shared.TransitionTable[BatchStatus]{
	BatchStatusPending:    {BatchStatusInProgress, BatchStatusCompleted, BatchStatusFailed, BatchStatusCancelled},
	BatchStatusInProgress: {BatchStatusCompleted, BatchStatusFailed, BatchStatusCancelled},
}

// IsTerminal reports whether the status can no longer change
func (s BatchStatus) IsTerminal() bool {
	return batchTransitions.IsTerminal(s)
}

// Batch is one production run of a recipe at a factory
type Batch struct {
	id                   uuid.UUID
	factoryID            uuid.UUID
	recipeID             uuid.UUID
	status               BatchStatus
	workersAssigned      int
	resultQuantity       int
	engineerBonusApplied bool
	startedAt            *time.Time
	estimatedCompletion  *time.Time
	completedAt          *time.Time
	createdAt            time.Time
}

// BatchData carries persisted batch state into ReconstructBatch
type BatchData struct {
	ID                   uuid.UUID
	FactoryID            uuid.UUID
	RecipeID             uuid.UUID
	Status               BatchStatus
	WorkersAssigned      int
	ResultQuantity       int
	EngineerBonusApplied bool
	StartedAt            *time.Time
	EstimatedCompletion  *time.Time
	CompletedAt          *time.Time
	CreatedAt            time.Time
}

// NewBatch creates a pending batch
func NewBatch(factoryID, recipeID uuid.UUID, resultQuantity int, now time.Time) *Batch {
	return &Batch{
		id:             uuid.New(),
		factoryID:      factoryID,
		recipeID:       recipeID,
		status:         BatchStatusPending,
		resultQuantity: resultQuantity,
		createdAt:      now,
	}
}

// ReconstructBatch rebuilds a batch from persistence
func ReconstructBatch(d BatchData) *Batch {
	return &Batch{
		id:                   d.ID,
		factoryID:            d.FactoryID,
		recipeID:             d.RecipeID,
		status:               d.Status,
		workersAssigned:      d.WorkersAssigned,
		resultQuantity:       d.ResultQuantity,
		engineerBonusApplied: d.EngineerBonusApplied,
		startedAt:            d.StartedAt,
		estimatedCompletion:  d.EstimatedCompletion,
		completedAt:          d.CompletedAt,
		createdAt:            d.CreatedAt,
	}
}

// Snapshot exports the batch state for persistence
func (b *Batch) Snapshot() BatchData {
	return BatchData{
		ID:                   b.id,
		FactoryID:            b.factoryID,
		RecipeID:             b.recipeID,
		Status:               b.status,
		WorkersAssigned:      b.workersAssigned,
		ResultQuantity:       b.resultQuantity,
		EngineerBonusApplied: b.engineerBonusApplied,
		StartedAt:            b.startedAt,
		EstimatedCompletion:  b.estimatedCompletion,
		CompletedAt:          b.completedAt,
		CreatedAt:            b.createdAt,
	}
}

func (b *Batch) ID() uuid.UUID                   { return b.id }
func (b *Batch) FactoryID() uuid.UUID            { return b.factoryID }
func (b *Batch) RecipeID() uuid.UUID             { return b.recipeID }
func (b *Batch) Status() BatchStatus             { return b.status }
func (b *Batch) WorkersAssigned() int            { return b.workersAssigned }
func (b *Batch) ResultQuantity() int             { return b.resultQuantity }
func (b *Batch) EngineerBonusApplied() bool      { return b.engineerBonusApplied }
func (b *Batch) StartedAt() *time.Time           { return b.startedAt }
func (b *Batch) EstimatedCompletion() *time.Time { return b.estimatedCompletion }
func (b *Batch) CompletedAt() *time.Time         { return b.completedAt }
func (b *Batch) CreatedAt() time.Time            { return b.createdAt }

// IsDue reports whether the batch is open and its completion time has passed
func (b *Batch) IsDue(now time.Time) bool {
	if b.status.IsTerminal() || b.estimatedCompletion == nil {
		return false
	}
	return !b.estimatedCompletion.After(now)
}

// Start moves a pending batch to in_progress
func (b *Batch) Start(now time.Time, duration time.Duration, workers int, engineerBonus bool) error {
	if err := b.transition(BatchStatusInProgress); err != nil {
		return err
	}
	eta := now.Add(duration)
	b.startedAt = &now
	b.estimatedCompletion = &eta
	b.workersAssigned = workers
	b.engineerBonusApplied = engineerBonus
	return nil
}

// Complete closes the batch successfully
func (b *Batch) Complete(now time.Time) error {
	if err := b.transition(BatchStatusCompleted); err != nil {
		return err
	}
	b.completedAt = &now
	return nil
}

// Fail closes the batch as failed
func (b *Batch) Fail(now time.Time) error {
	if err := b.transition(BatchStatusFailed); err != nil {
		return err
	}
	b.completedAt = &now
	return nil
}

// Cancel closes the batch on operator request
func (b *Batch) Cancel(now time.Time) error {
	if err := b.transition(BatchStatusCancelled); err != nil {
		return err
	}
	b.completedAt = &now
	return nil
}

// FinalYield is the output credited on completion
func (b *Batch) FinalYield(engineers int) int {
	return Yield(b.resultQuantity, engineers, b.engineerBonusApplied)
}

func (b *Batch) transition(to BatchStatus) error {
	if err := batchTransitions.Check("batch", b.id.String(), b.status, to); err != nil {
		return err
	}
	b.status = to
	return nil
}
