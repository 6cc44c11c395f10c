package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/persistence"
	"github.com/andrescamacho/carrierplus-go/internal/application/workforce/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func fixedRandom(v float64) shared.RandomFactory {
	return func() shared.RandomSource { return shared.FixedRandom{Value: v} }
}

func newFoodHandler(w *helpers.World, random shared.RandomFactory, baseRate float64) *commands.ProcessFoodAndInjuriesHandler {
	r := w.Repos
	return commands.NewProcessFoodAndInjuriesHandler(r.Transactor, r.Factories, r.Workers, r.Audit, w.Clock, random,
		commands.FoodAndInjurySettings{Cycle: time.Hour, BaseInjuryRate: baseRate}, nil)
}

func TestFoodCycle_FeedsStaffedFactories(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	factoryID := w.Factory(companyID, "Atelier", "LFPG", helpers.FactoryOptions{Tier: 1, FoodStock: 20})
	for i := 0; i < 5; i++ {
		w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID})
	}
	// Available staff does not eat
	w.Worker(helpers.WorkerOptions{EmployerID: &companyID})

	resp, err := newFoodHandler(w, fixedRandom(0.99), 0.005).Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ProcessFoodAndInjuriesResponse)
	assert.Equal(t, 1, result.FactoriesFed)
	assert.Equal(t, 5, result.FoodConsumed)
	assert.Equal(t, 0, result.WorkersInjured)

	factory := w.LoadFactory(factoryID)
	assert.Equal(t, 15, factory.FoodStock())
	assert.True(t, factory.HasFood())

	audit, err := persistence.NewGormAuditRepository(w.DB).ListByFactory(context.Background(), factoryID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, production.AuditTypeFoodConsumed, audit[0].Type)
	assert.Equal(t, 5, audit[0].Quantity)
}

func TestFoodCycle_ShortfallMarksUnfedAndDoublesInjuries(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	factoryID := w.Factory(companyID, "Atelier", "LFPG", helpers.FactoryOptions{Tier: 1, FoodStock: 3})
	workerID := w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID, Resistance: 50})
	for i := 0; i < 4; i++ {
		w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID, Resistance: 50})
	}

	// Fed probability would be 0.25 and the draw of 0.3 would miss; unfed it is 0.5
	resp, err := newFoodHandler(w, fixedRandom(0.3), 0.5).Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ProcessFoodAndInjuriesResponse)
	assert.Equal(t, 1, result.FactoriesUnfed)
	assert.Equal(t, 3, result.FoodConsumed)
	assert.Equal(t, 5, result.WorkersInjured)

	factory := w.LoadFactory(factoryID)
	assert.Equal(t, 0, factory.FoodStock())
	assert.False(t, factory.HasFood())

	worker := w.LoadWorker(workerID)
	assert.Equal(t, workforce.StatusInjured, worker.Status())
	require.NotNil(t, worker.InjuredAt())
	assert.True(t, worker.InjuredAt().Equal(helpers.Epoch))
}

func TestFoodCycle_RunsOncePerCycle(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	factoryID := w.Factory(companyID, "Atelier", "LFPG", helpers.FactoryOptions{Tier: 1, FoodStock: 100})
	w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID})
	w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID})
	handler := newFoodHandler(w, fixedRandom(0.99), 0)

	_, err := handler.Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)

	// An early re-run is a no-op
	w.Clock.Advance(20 * time.Minute)
	resp, err := handler.Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.(*commands.ProcessFoodAndInjuriesResponse).Sweep.Skipped)
	assert.Equal(t, 98, w.LoadFactory(factoryID).FoodStock())

	// After three hours the elapsed time is billed
	w.Clock.Advance(2*time.Hour + 40*time.Minute)
	_, err = handler.Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)
	assert.Equal(t, 92, w.LoadFactory(factoryID).FoodStock())
}

func TestFoodCycle_TickJustBeforeBoundaryRuns(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	factoryID := w.Factory(companyID, "Atelier", "LFPG", helpers.FactoryOptions{Tier: 1, FoodStock: 100})
	w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID})
	w.Worker(helpers.WorkerOptions{EmployerID: &companyID, FactoryID: &factoryID})
	handler := newFoodHandler(w, fixedRandom(0.99), 0)

	_, err := handler.Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)
	require.Equal(t, 98, w.LoadFactory(factoryID).FoodStock())

	// The hourly job fires a hair early relative to the previous tick
	w.Clock.Advance(time.Hour - time.Millisecond)
	resp, err := handler.Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ProcessFoodAndInjuriesResponse)
	assert.Equal(t, 1, result.FactoriesFed)
	assert.Equal(t, 0, result.Sweep.Skipped)
	assert.Equal(t, 96, w.LoadFactory(factoryID).FoodStock())
}

func TestFoodCycle_IgnoresNPCAndEmptyFactories(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	npc := w.NPCCompany()
	companyID := w.Company("Acme", 100)
	npcFactory := w.Factory(npc, "Ferme Agricole", "LFPG", helpers.FactoryOptions{Tier: production.NPCTier, FoodStock: 10})
	w.Worker(helpers.WorkerOptions{FactoryID: &npcFactory})
	emptyFactory := w.Factory(companyID, "Atelier", "LFPG", helpers.FactoryOptions{Tier: 1, FoodStock: 10})

	resp, err := newFoodHandler(w, fixedRandom(0), 1).Handle(context.Background(), &commands.ProcessFoodAndInjuriesCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ProcessFoodAndInjuriesResponse)
	assert.Equal(t, 0, result.FactoriesFed+result.FactoriesUnfed)
	assert.Equal(t, 10, w.LoadFactory(npcFactory).FoodStock())
	assert.Equal(t, 10, w.LoadFactory(emptyFactory).FoodStock())
}
