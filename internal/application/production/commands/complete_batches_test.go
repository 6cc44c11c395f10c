package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/persistence"
	"github.com/andrescamacho/carrierplus-go/internal/application/production/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func newCompleteHandler(w *helpers.World) *commands.CompleteProductionBatchesHandler {
	r := w.Repos
	return commands.NewCompleteProductionBatchesHandler(
		r.Transactor, r.Batches, r.Factories, r.Recipes, r.Audit, r.Workers,
		inventory.NewKeeper(r.Locations, r.Stocks), w.Clock, nil,
	)
}

type producingFactory struct {
	companyID uuid.UUID
	factoryID uuid.UUID
	recipeID  uuid.UUID
	itemID    uuid.UUID
	batchID   uuid.UUID
}

func seedProducingFactory(w *helpers.World, quantity int, engineerBonus bool) producingFactory {
	var p producingFactory
	p.companyID = w.Company("Boulangerie SA", 1000)
	p.itemID = w.Item("Bread", 2, 4)
	p.recipeID = w.Recipe("Bake bread", 2, p.itemID, quantity, 1)
	p.factoryID = w.Factory(p.companyID, "Boulangerie", "LFPG", helpers.FactoryOptions{
		Tier:     2,
		Status:   production.FactoryStatusProducing,
		RecipeID: &p.recipeID,
	})
	p.batchID = w.Batch(p.factoryID, p.recipeID, quantity, helpers.Epoch.Add(-2*time.Hour), time.Hour, engineerBonus)
	return p
}

func TestCompleteBatches_CreditsOutputWithEngineerBonus(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	p := seedProducingFactory(w, 100, true)

	workerID := w.Worker(helpers.WorkerOptions{EmployerID: &p.companyID, FactoryID: &p.factoryID, XP: 990})
	engineerA := w.Worker(helpers.WorkerOptions{Kind: workforce.KindEngineer, EmployerID: &p.companyID, FactoryID: &p.factoryID})
	w.Worker(helpers.WorkerOptions{Kind: workforce.KindEngineer, EmployerID: &p.companyID, FactoryID: &p.factoryID})

	resp, err := newCompleteHandler(w).Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)

	result := resp.(*commands.CompleteProductionBatchesResponse)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 120, result.UnitsProduced, "two engineers add 20%")

	owner := inventory.CompanyAt(p.companyID, "LFPG")
	assert.Equal(t, 120, w.QuantityOf(owner, p.itemID))

	batch := w.LoadBatch(p.batchID)
	assert.Equal(t, production.BatchStatusCompleted, batch.Status())
	require.NotNil(t, batch.CompletedAt())
	assert.True(t, batch.CompletedAt().Equal(helpers.Epoch))

	factory := w.LoadFactory(p.factoryID)
	assert.Equal(t, production.FactoryStatusIdle, factory.Status())
	assert.Nil(t, factory.CurrentRecipeID())

	worker := w.LoadWorker(workerID)
	assert.Equal(t, 1010, worker.XP(), "tier 2 recipe grants 20 xp per worker")
	assert.Equal(t, 2, worker.Tier())
	assert.Equal(t, 40, w.LoadWorker(engineerA).XP(), "engineers earn double")

	audit, err := persistence.NewGormAuditRepository(w.DB).ListByFactory(context.Background(), p.factoryID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, production.AuditTypeProduced, audit[0].Type)
	assert.Equal(t, 120, audit[0].Quantity)
}

func TestCompleteBatches_NoBonusWhenFlagUnset(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	p := seedProducingFactory(w, 50, false)
	w.Worker(helpers.WorkerOptions{Kind: workforce.KindEngineer, EmployerID: &p.companyID, FactoryID: &p.factoryID})

	resp, err := newCompleteHandler(w).Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)

	assert.Equal(t, 50, resp.(*commands.CompleteProductionBatchesResponse).UnitsProduced)
	assert.Equal(t, 50, w.QuantityOf(inventory.CompanyAt(p.companyID, "LFPG"), p.itemID))
}

func TestCompleteBatches_AddsToExistingStock(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	p := seedProducingFactory(w, 10, false)
	owner := inventory.CompanyAt(p.companyID, "LFPG")
	w.Stock(owner, p.itemID, 5)

	_, err := newCompleteHandler(w).Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)

	assert.Equal(t, 15, w.QuantityOf(owner, p.itemID))
}

func TestCompleteBatches_LeavesBatchesThatAreNotDue(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 0)
	itemID := w.Item("Flour", 1, 1)
	recipeID := w.Recipe("Mill", 1, itemID, 10, 1)
	factoryID := w.Factory(companyID, "Moulin", "LFPG", helpers.FactoryOptions{Tier: 1, Status: production.FactoryStatusProducing, RecipeID: &recipeID})
	batchID := w.Batch(factoryID, recipeID, 10, helpers.Epoch, time.Hour, false)

	resp, err := newCompleteHandler(w).Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.(*commands.CompleteProductionBatchesResponse).Completed)
	assert.Equal(t, production.BatchStatusInProgress, w.LoadBatch(batchID).Status())

	// Exactly at the estimated completion the batch is due
	w.Clock.Advance(time.Hour)
	resp, err = newCompleteHandler(w).Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.(*commands.CompleteProductionBatchesResponse).Completed)
}

func TestCompleteBatches_FailsBatchWithMissingRecipe(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 0)
	ghostRecipe := uuid.New()
	factoryID := w.Factory(companyID, "Moulin", "LFPG", helpers.FactoryOptions{Tier: 1, Status: production.FactoryStatusProducing, RecipeID: &ghostRecipe})
	batchID := w.Batch(factoryID, ghostRecipe, 10, helpers.Epoch.Add(-3*time.Hour), time.Hour, false)

	resp, err := newCompleteHandler(w).Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)

	result := resp.(*commands.CompleteProductionBatchesResponse)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, result.Completed)
	assert.Equal(t, production.BatchStatusFailed, w.LoadBatch(batchID).Status())
	assert.Equal(t, production.FactoryStatusIdle, w.LoadFactory(factoryID).Status())
}

func TestCompleteBatches_IsIdempotent(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	p := seedProducingFactory(w, 10, false)
	handler := newCompleteHandler(w)

	_, err := handler.Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)
	resp, err := handler.Handle(context.Background(), &commands.CompleteProductionBatchesCommand{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.(*commands.CompleteProductionBatchesResponse).Completed)
	assert.Equal(t, 10, w.QuantityOf(inventory.CompanyAt(p.companyID, "LFPG"), p.itemID), "output is credited once")
}
