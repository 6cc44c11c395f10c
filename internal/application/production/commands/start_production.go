package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// StartProductionCommand opens a batch of a recipe at an idle factory
type StartProductionCommand struct {
	FactoryID uuid.UUID
	RecipeID  uuid.UUID
}

// StartProductionResponse describes the opened batch
type StartProductionResponse struct {
	BatchID             uuid.UUID
	EstimatedCompletion time.Time
	EngineerBonus       bool
}

// StartProductionHandler reserves ingredients from the owner's stock at the
// factory airport and opens the batch
type StartProductionHandler struct {
	tx        common.Transactor
	factories production.FactoryRepository
	batches   production.BatchRepository
	recipes   production.RecipeRepository
	workers   workforce.WorkerRepository
	keeper    *inventory.Keeper
	clock     shared.Clock
}

// NewStartProductionHandler creates a new handler
func NewStartProductionHandler(
	tx common.Transactor,
	factories production.FactoryRepository,
	batches production.BatchRepository,
	recipes production.RecipeRepository,
	workers workforce.WorkerRepository,
	keeper *inventory.Keeper,
	clock shared.Clock,
) *StartProductionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &StartProductionHandler{
		tx:        tx,
		factories: factories,
		batches:   batches,
		recipes:   recipes,
		workers:   workers,
		keeper:    keeper,
		clock:     clock,
	}
}

// Handle executes the command
func (h *StartProductionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*StartProductionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *StartProductionCommand")
	}

	now := h.clock.Now()
	response := &StartProductionResponse{}

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		factory, err := h.factories.FindForUpdate(ctx, cmd.FactoryID)
		if err != nil {
			return err
		}
		if !factory.IsActive() {
			return &production.ErrFactoryInactive{FactoryID: factory.ID()}
		}

		open, err := h.batches.FindOpenByFactory(ctx, factory.ID())
		if err == nil {
			return &production.ErrFactoryBusy{FactoryID: factory.ID(), BatchID: open.ID()}
		}
		if !shared.IsNotFound(err) {
			return err
		}

		recipe, err := h.recipes.FindByID(ctx, cmd.RecipeID)
		if err != nil {
			return err
		}

		if err := factory.StartProducing(recipe.ID); err != nil {
			return err
		}

		owner := inventory.CompanyAt(factory.CompanyID(), factory.AirportIdent())
		for _, ing := range recipe.Ingredients {
			if err := h.keeper.Reserve(ctx, owner, ing.ItemID, ing.Quantity); err != nil {
				return fmt.Errorf("failed to reserve ingredient %s: %w", ing.ItemID, err)
			}
		}

		staff, err := h.workers.ListWorkingAtFactory(ctx, factory.ID())
		if err != nil {
			return fmt.Errorf("failed to load factory staff: %w", err)
		}
		speeds := make([]int, 0, len(staff))
		engineers := 0
		for _, w := range staff {
			speeds = append(speeds, w.Speed())
			if w.IsEngineer() {
				engineers++
			}
		}

		duration := production.ProductionDuration(recipe.ProductionTimeHours, speeds, factory.HasFood())
		batch := production.NewBatch(factory.ID(), recipe.ID, recipe.ResultQuantity, now)
		if err := batch.Start(now, duration, len(staff), engineers > 0); err != nil {
			return err
		}
		if err := h.batches.Save(ctx, batch); err != nil {
			return fmt.Errorf("failed to save batch: %w", err)
		}
		if err := h.factories.Save(ctx, factory); err != nil {
			return fmt.Errorf("failed to save factory: %w", err)
		}

		response.BatchID = batch.ID()
		response.EstimatedCompletion = *batch.EstimatedCompletion()
		response.EngineerBonus = batch.EngineerBonusApplied()
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Info("production started",
		"factory_id", cmd.FactoryID,
		"batch_id", response.BatchID,
		"eta", response.EstimatedCompletion,
	)
	return response, nil
}
