package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// RunNPCProductionCommand grows the raw-good stockpiles of Tier-0 factories
type RunNPCProductionCommand struct{}

// RunNPCProductionResponse summarizes one cycle
type RunNPCProductionResponse struct {
	UnitsProduced int
	Sweep         common.SweepResult
}

// NPCProductionSettings are the stockpile rules for NPC extraction
type NPCProductionSettings struct {
	CompanyID    uuid.UUID
	StockCeiling int
	RatePerCycle int
}

// RunNPCProductionHandler credits each producing NPC factory's warehouse up
// to the ceiling and lists the stock for sale at the item's base value
type RunNPCProductionHandler struct {
	tx        common.Transactor
	factories production.FactoryRepository
	items     inventory.ItemRepository
	keeper    *inventory.Keeper
	catalog   *production.RawGoodCatalog
	settings  NPCProductionSettings
	limiter   *rate.Limiter
}

// NewRunNPCProductionHandler creates a new handler
func NewRunNPCProductionHandler(
	tx common.Transactor,
	factories production.FactoryRepository,
	items inventory.ItemRepository,
	keeper *inventory.Keeper,
	catalog *production.RawGoodCatalog,
	settings NPCProductionSettings,
	limiter *rate.Limiter,
) *RunNPCProductionHandler {
	if catalog == nil {
		catalog = production.NewRawGoodCatalog(nil)
	}
	return &RunNPCProductionHandler{
		tx:        tx,
		factories: factories,
		items:     items,
		keeper:    keeper,
		catalog:   catalog,
		settings:  settings,
		limiter:   limiter,
	}
}

// Handle executes the command
func (h *RunNPCProductionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*RunNPCProductionCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunNPCProductionCommand")
	}

	ids, err := h.factories.ListNPCProducingIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list NPC factories: %w", err)
	}

	response := &RunNPCProductionResponse{}
	response.Sweep = common.Sweep(ctx, "factory", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var added int
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			added, err = h.produce(ctx, id)
			return err
		})
		response.UnitsProduced += added
		return err
	})

	metrics.RecordProcessed("npc_production", "produced", response.Sweep.Processed)
	metrics.RecordProcessed("npc_production", "skipped", response.Sweep.Skipped)
	metrics.RecordProcessed("npc_production", "error", response.Sweep.Failed)
	metrics.RecordUnitsProduced("npc", response.UnitsProduced)

	common.LoggerFromContext(ctx).Info("NPC production cycle finished",
		"factories", len(ids),
		"produced", response.Sweep.Processed,
		"units", response.UnitsProduced,
	)
	return response, nil
}

func (h *RunNPCProductionHandler) produce(ctx context.Context, id uuid.UUID) (int, error) {
	factory, err := h.factories.FindForUpdate(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return 0, common.ErrSkip
		}
		return 0, err
	}
	if !factory.IsNPC() || !factory.IsActive() || factory.Status() != production.FactoryStatusProducing {
		return 0, common.ErrSkip
	}

	itemName, ok := h.catalog.ItemFor(factory.Name())
	if !ok {
		common.LoggerFromContext(ctx).Warn("no raw good matches NPC factory name",
			"factory_id", factory.ID(), "name", factory.Name())
		return 0, common.ErrSkip
	}

	item, err := h.items.FindByName(ctx, itemName)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve item %q: %w", itemName, err)
	}

	owner := inventory.WarehouseAt(h.settings.CompanyID, factory.AirportIdent())
	stock, err := h.keeper.Open(ctx, owner, item.ID)
	if err != nil {
		return 0, err
	}

	added := stock.CreditUpTo(h.settings.RatePerCycle, h.settings.StockCeiling)
	if added == 0 {
		return 0, common.ErrSkip
	}
	stock.OfferForSale(item.BaseValue)

	if err := h.keeper.Save(ctx, stock); err != nil {
		return 0, fmt.Errorf("failed to save warehouse stock: %w", err)
	}
	return added, nil
}
