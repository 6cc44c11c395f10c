package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// CancelProductionCommand stops the open batch of a factory
type CancelProductionCommand struct {
	FactoryID uuid.UUID
}

// CancelProductionResponse reports the cancelled batch
type CancelProductionResponse struct {
	BatchID uuid.UUID
}

// CancelProductionHandler cancels the batch, releases its ingredients back
// to the owner's stock and returns the factory to idle
type CancelProductionHandler struct {
	tx        common.Transactor
	factories production.FactoryRepository
	batches   production.BatchRepository
	recipes   production.RecipeRepository
	keeper    *inventory.Keeper
	clock     shared.Clock
}

// NewCancelProductionHandler creates a new handler
func NewCancelProductionHandler(
	tx common.Transactor,
	factories production.FactoryRepository,
	batches production.BatchRepository,
	recipes production.RecipeRepository,
	keeper *inventory.Keeper,
	clock shared.Clock,
) *CancelProductionHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CancelProductionHandler{
		tx:        tx,
		factories: factories,
		batches:   batches,
		recipes:   recipes,
		keeper:    keeper,
		clock:     clock,
	}
}

// Handle executes the command
func (h *CancelProductionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CancelProductionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelProductionCommand")
	}

	now := h.clock.Now()
	response := &CancelProductionResponse{}

	err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		factory, err := h.factories.FindForUpdate(ctx, cmd.FactoryID)
		if err != nil {
			return err
		}

		batch, err := h.batches.FindOpenByFactory(ctx, factory.ID())
		if err != nil {
			return err
		}
		if err := batch.Cancel(now); err != nil {
			return err
		}

		recipe, err := h.recipes.FindByID(ctx, batch.RecipeID())
		switch {
		case err == nil:
			owner := inventory.CompanyAt(factory.CompanyID(), factory.AirportIdent())
			for _, ing := range recipe.Ingredients {
				if err := h.keeper.Release(ctx, owner, ing.ItemID, ing.Quantity); err != nil {
					return fmt.Errorf("failed to release ingredient %s: %w", ing.ItemID, err)
				}
			}
		case shared.IsNotFound(err):
			common.LoggerFromContext(ctx).Warn("recipe missing, ingredients not released",
				"batch_id", batch.ID(), "recipe_id", batch.RecipeID())
		default:
			return err
		}

		if err := h.batches.Save(ctx, batch); err != nil {
			return fmt.Errorf("failed to save batch: %w", err)
		}
		factory.FinishProducing()
		if err := h.factories.Save(ctx, factory); err != nil {
			return fmt.Errorf("failed to save factory: %w", err)
		}

		response.BatchID = batch.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}
