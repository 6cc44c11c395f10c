package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// CompleteProductionBatchesCommand closes every batch whose completion time has passed
type CompleteProductionBatchesCommand struct{}

// CompleteProductionBatchesResponse summarizes one sweep
type CompleteProductionBatchesResponse struct {
	Completed     int
	Failed        int
	UnitsProduced int
	Sweep         common.SweepResult
}

// CompleteProductionBatchesHandler credits batch output, grants experience
// and frees the factory. Each batch runs in its own transaction.
type CompleteProductionBatchesHandler struct {
	tx        common.Transactor
	batches   production.BatchRepository
	factories production.FactoryRepository
	recipes   production.RecipeRepository
	audit     production.AuditRepository
	workers   workforce.WorkerRepository
	keeper    *inventory.Keeper
	clock     shared.Clock
	limiter   *rate.Limiter
}

// NewCompleteProductionBatchesHandler creates a new handler
func NewCompleteProductionBatchesHandler(
	tx common.Transactor,
	batches production.BatchRepository,
	factories production.FactoryRepository,
	recipes production.RecipeRepository,
	audit production.AuditRepository,
	workers workforce.WorkerRepository,
	keeper *inventory.Keeper,
	clock shared.Clock,
	limiter *rate.Limiter,
) *CompleteProductionBatchesHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CompleteProductionBatchesHandler{
		tx:        tx,
		batches:   batches,
		factories: factories,
		recipes:   recipes,
		audit:     audit,
		workers:   workers,
		keeper:    keeper,
		clock:     clock,
		limiter:   limiter,
	}
}

type batchOutcome int

const (
	batchCompleted batchOutcome = iota
	batchFailed
)

// Handle executes the command
func (h *CompleteProductionBatchesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*CompleteProductionBatchesCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompleteProductionBatchesCommand")
	}

	logger := common.LoggerFromContext(ctx)
	now := h.clock.Now()

	ids, err := h.batches.ListDueIDs(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due batches: %w", err)
	}

	response := &CompleteProductionBatchesResponse{}
	response.Sweep = common.Sweep(ctx, "batch", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var (
			outcome batchOutcome
			units   int
		)
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			outcome, units, err = h.completeBatch(ctx, id, now)
			return err
		})
		if err != nil {
			return err
		}
		if outcome == batchFailed {
			response.Failed++
			return nil
		}
		response.Completed++
		response.UnitsProduced += units
		return nil
	})

	metrics.RecordProcessed("production_completion", "completed", response.Completed)
	metrics.RecordProcessed("production_completion", "failed", response.Failed)
	metrics.RecordProcessed("production_completion", "error", response.Sweep.Failed)
	metrics.RecordUnitsProduced("player", response.UnitsProduced)

	if len(ids) > 0 {
		logger.Info("production batches processed",
			"due", len(ids),
			"completed", response.Completed,
			"failed", response.Failed,
			"errors", response.Sweep.Failed,
		)
	}
	return response, nil
}

func (h *CompleteProductionBatchesHandler) completeBatch(ctx context.Context, id uuid.UUID, now time.Time) (batchOutcome, int, error) {
	logger := common.LoggerFromContext(ctx)

	batch, err := h.batches.FindForUpdate(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return 0, 0, common.ErrSkip
		}
		return 0, 0, err
	}
	if !batch.IsDue(now) {
		return 0, 0, common.ErrSkip
	}

	recipe, err := h.recipes.FindByID(ctx, batch.RecipeID())
	if err != nil && !shared.IsNotFound(err) {
		return 0, 0, err
	}
	missingRecipe := err != nil

	factory, err := h.factories.FindForUpdate(ctx, batch.FactoryID())
	if err != nil && !shared.IsNotFound(err) {
		return 0, 0, err
	}
	missingFactory := err != nil

	if missingRecipe || missingFactory {
		logger.Warn("batch references missing data, failing it",
			"batch_id", batch.ID(),
			"missing_recipe", missingRecipe,
			"missing_factory", missingFactory,
		)
		if err := h.failBatch(ctx, batch, factory, now); err != nil {
			return 0, 0, err
		}
		return batchFailed, 0, nil
	}

	staff, err := h.workers.ListWorkingAtFactory(ctx, factory.ID())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load factory staff: %w", err)
	}

	engineers := 0
	for _, w := range staff {
		if w.IsEngineer() {
			engineers++
		}
	}

	units := batch.FinalYield(engineers)
	if units > 0 {
		owner := inventory.CompanyAt(factory.CompanyID(), factory.AirportIdent())
		if _, err := h.keeper.Credit(ctx, owner, recipe.ResultItemID, units); err != nil {
			return 0, 0, fmt.Errorf("failed to credit output: %w", err)
		}
		entry := production.NewProducedEntry(factory.ID(), recipe.ResultItemID, batch.ID(), units, recipe.Name, now)
		if err := h.audit.Append(ctx, entry); err != nil {
			return 0, 0, fmt.Errorf("failed to record audit entry: %w", err)
		}
	}

	for _, w := range staff {
		xp := recipe.WorkerXP()
		if w.IsEngineer() {
			xp = recipe.EngineerXP()
		}
		w.GrantXP(xp)
		if err := h.workers.Save(ctx, w); err != nil {
			return 0, 0, fmt.Errorf("failed to save worker %s: %w", w.ID(), err)
		}
	}

	if err := batch.Complete(now); err != nil {
		return 0, 0, err
	}
	if err := h.batches.Save(ctx, batch); err != nil {
		return 0, 0, fmt.Errorf("failed to save batch: %w", err)
	}

	factory.FinishProducing()
	if err := h.factories.Save(ctx, factory); err != nil {
		return 0, 0, fmt.Errorf("failed to save factory: %w", err)
	}

	logger.Debug("batch completed",
		"batch_id", batch.ID(),
		"factory_id", factory.ID(),
		"units", units,
		"engineers", engineers,
	)
	return batchCompleted, units, nil
}

// failBatch closes a batch whose recipe or factory vanished. The factory,
// when it still exists, is released so it does not stay producing.
func (h *CompleteProductionBatchesHandler) failBatch(
	ctx context.Context,
	batch *production.Batch,
	factory *production.Factory,
	now time.Time,
) error {
	if err := batch.Fail(now); err != nil {
		return err
	}
	if err := h.batches.Save(ctx, batch); err != nil {
		return fmt.Errorf("failed to save batch: %w", err)
	}
	if factory != nil && factory.FinishProducing() {
		if err := h.factories.Save(ctx, factory); err != nil {
			return fmt.Errorf("failed to save factory: %w", err)
		}
	}
	return nil
}
