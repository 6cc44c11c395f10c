package commands_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/production/commands"
	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func newNPCHandler(w *helpers.World, ceiling, rate int) *commands.RunNPCProductionHandler {
	r := w.Repos
	return commands.NewRunNPCProductionHandler(
		r.Transactor, r.Factories, r.Items,
		inventory.NewKeeper(r.Locations, r.Stocks),
		production.NewRawGoodCatalog(nil),
		commands.NPCProductionSettings{CompanyID: setup.NPCCompanyID, StockCeiling: ceiling, RatePerCycle: rate},
		nil,
	)
}

func TestRunNPCProduction_GrowsWarehouseUpToCeiling(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	npc := w.NPCCompany()
	wheat := w.Item("Raw Wheat", 0, 1.25)
	w.Factory(npc, "Coopérative Céréalière", "LFPG", helpers.FactoryOptions{Tier: production.NPCTier, Status: production.FactoryStatusProducing})

	warehouse := inventory.WarehouseAt(npc, "LFPG")
	w.Stock(warehouse, wheat, 980)

	resp, err := newNPCHandler(w, 1000, 50).Handle(context.Background(), &commands.RunNPCProductionCommand{})
	require.NoError(t, err)

	assert.Equal(t, 20, resp.(*commands.RunNPCProductionResponse).UnitsProduced)

	stock := w.StockOf(warehouse, wheat)
	require.NotNil(t, stock)
	assert.Equal(t, 1000, stock.Quantity())
	assert.True(t, stock.ForSale())
	assert.Equal(t, 1000, stock.SaleQuantity())
	assert.True(t, stock.SalePrice().Equal(decimal.NewFromFloat(1.25)))

	// At the ceiling nothing more is produced
	resp, err = newNPCHandler(w, 1000, 50).Handle(context.Background(), &commands.RunNPCProductionCommand{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.(*commands.RunNPCProductionResponse).UnitsProduced)
	assert.Equal(t, 1, resp.(*commands.RunNPCProductionResponse).Sweep.Skipped)
}

func TestRunNPCProduction_CreatesWarehouseOnFirstRun(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	npc := w.NPCCompany()
	milk := w.Item("Raw Milk", 0, 0.8)
	w.Factory(npc, "Laiterie de Normandie", "LFRN", helpers.FactoryOptions{Tier: production.NPCTier, Status: production.FactoryStatusProducing})

	_, err := newNPCHandler(w, 1000, 50).Handle(context.Background(), &commands.RunNPCProductionCommand{})
	require.NoError(t, err)

	assert.Equal(t, 50, w.QuantityOf(inventory.WarehouseAt(npc, "LFRN"), milk))
}

func TestRunNPCProduction_SkipsIneligibleFactories(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	npc := w.NPCCompany()
	wheat := w.Item("Raw Wheat", 0, 1)
	player := w.Company("Player", 100)

	w.Factory(npc, "Ferme Agricole Idle", "LFPG", helpers.FactoryOptions{Tier: production.NPCTier})
	w.Factory(npc, "Ferme Agricole Fermée", "LFPB", helpers.FactoryOptions{Tier: production.NPCTier, Status: production.FactoryStatusProducing, Inactive: true})
	w.Factory(player, "Ferme Agricole Privée", "LFPO", helpers.FactoryOptions{Tier: 1, Status: production.FactoryStatusProducing})
	w.Factory(npc, "Usine Mystère", "LFLL", helpers.FactoryOptions{Tier: production.NPCTier, Status: production.FactoryStatusProducing})

	resp, err := newNPCHandler(w, 1000, 50).Handle(context.Background(), &commands.RunNPCProductionCommand{})
	require.NoError(t, err)

	result := resp.(*commands.RunNPCProductionResponse)
	assert.Equal(t, 0, result.UnitsProduced)
	assert.Equal(t, 1, result.Sweep.Skipped, "only the unmatched name is listed and skipped")
	for _, airport := range []string{"LFPG", "LFPB", "LFPO", "LFLL"} {
		assert.Equal(t, 0, w.QuantityOf(inventory.WarehouseAt(npc, airport), wheat), airport)
	}
}
