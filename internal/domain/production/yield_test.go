package production_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

func TestYield(t *testing.T) {
	tests := []struct {
		name      string
		base      int
		engineers int
		bonus     bool
		want      int
	}{
		{"no bonus flag", 100, 3, false, 100},
		{"no engineers", 100, 0, true, 100},
		{"one engineer", 100, 1, true, 110},
		{"two engineers", 100, 2, true, 120},
		{"capped at five", 100, 5, true, 150},
		{"cap holds above five", 100, 9, true, 150},
		{"floors the result", 7, 1, true, 7},
		{"floors larger values", 15, 3, true, 19},
		{"zero base", 0, 2, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, production.Yield(tt.base, tt.engineers, tt.bonus))
		})
	}
}

func TestFoodRequired(t *testing.T) {
	assert.Equal(t, 5, production.FoodRequired(5, time.Hour))
	assert.Equal(t, 1, production.FoodRequired(1, 10*time.Minute), "partial hours round up")
	assert.Equal(t, 8, production.FoodRequired(5, 90*time.Minute))
	assert.Equal(t, 0, production.FoodRequired(0, time.Hour))
	assert.Equal(t, 0, production.FoodRequired(3, 0))
}

func TestProductionDuration(t *testing.T) {
	// Without staff the base time is quadrupled
	assert.Equal(t, 8*time.Hour, production.ProductionDuration(2, nil, true))

	// Total speed 200 runs at base time
	assert.Equal(t, 2*time.Hour, production.ProductionDuration(2, []int{100, 100}, true))

	// Hunger halves the effective speed
	assert.Equal(t, 4*time.Hour, production.ProductionDuration(2, []int{100, 100}, false))

	// Very slow staff is floored at a total speed of 10
	assert.Equal(t, 40*time.Hour, production.ProductionDuration(2, []int{1}, true))
}

func TestBatchLifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := production.NewBatch(uuid.New(), uuid.New(), 10, now)
	assert.Equal(t, production.BatchStatusPending, batch.Status())
	assert.False(t, batch.IsDue(now), "a batch without completion time is never due")

	require.NoError(t, batch.Start(now, time.Hour, 3, true))
	assert.Equal(t, production.BatchStatusInProgress, batch.Status())
	assert.False(t, batch.IsDue(now.Add(59*time.Minute)))
	assert.True(t, batch.IsDue(now.Add(time.Hour)), "due exactly at the estimated completion")
	assert.Equal(t, 12, batch.FinalYield(2))

	require.NoError(t, batch.Complete(now.Add(time.Hour)))
	assert.True(t, batch.Status().IsTerminal())
	assert.False(t, batch.IsDue(now.Add(2*time.Hour)))

	err := batch.Fail(now)
	require.Error(t, err)
	assert.True(t, shared.IsInvalidTransition(err))
}

func TestBatchCancelFromPending(t *testing.T) {
	now := time.Now().UTC()
	batch := production.NewBatch(uuid.New(), uuid.New(), 1, now)

	require.NoError(t, batch.Cancel(now))
	assert.Equal(t, production.BatchStatusCancelled, batch.Status())
	assert.NotNil(t, batch.CompletedAt())
	assert.Error(t, batch.Start(now, time.Hour, 0, false))
}

func TestFactoryProducingTransitions(t *testing.T) {
	factory := production.NewFactory(uuid.New(), "Boulangerie", "LFPG", 1)
	recipeID := uuid.New()

	require.NoError(t, factory.StartProducing(recipeID))
	assert.Equal(t, production.FactoryStatusProducing, factory.Status())
	require.NotNil(t, factory.CurrentRecipeID())
	assert.Equal(t, recipeID, *factory.CurrentRecipeID())

	err := factory.StartProducing(uuid.New())
	assert.True(t, shared.IsInvalidTransition(err), "a producing factory cannot start another batch")

	assert.True(t, factory.FinishProducing())
	assert.Equal(t, production.FactoryStatusIdle, factory.Status())
	assert.Nil(t, factory.CurrentRecipeID())
	assert.False(t, factory.FinishProducing(), "an idle factory has nothing to finish")
}

func TestFactoryConsumeFood(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("enough stock", func(t *testing.T) {
		factory := production.NewFactory(uuid.New(), "Atelier", "LFPG", 1)
		factory.SetFoodStock(20)

		consumed := factory.ConsumeFood(5, time.Hour, now)

		assert.Equal(t, 5, consumed)
		assert.Equal(t, 15, factory.FoodStock())
		assert.True(t, factory.HasFood())
		assert.Equal(t, 5, factory.FoodConsumptionPerHour())
	})

	t.Run("shortfall zeroes the stock and marks unfed", func(t *testing.T) {
		factory := production.NewFactory(uuid.New(), "Atelier", "LFPG", 1)
		factory.SetFoodStock(3)

		consumed := factory.ConsumeFood(5, time.Hour, now)

		assert.Equal(t, 3, consumed)
		assert.Equal(t, 0, factory.FoodStock())
		assert.False(t, factory.HasFood())
	})

	t.Run("cycle gating", func(t *testing.T) {
		factory := production.NewFactory(uuid.New(), "Atelier", "LFPG", 1)
		assert.True(t, factory.FoodCycleDue(now, time.Hour), "a factory never fed is due")

		factory.ConsumeFood(1, time.Hour, now)
		assert.False(t, factory.FoodCycleDue(now.Add(30*time.Minute), time.Hour))
		assert.True(t, factory.FoodCycleDue(now.Add(time.Hour), time.Hour))
		assert.True(t, factory.FoodCycleDue(now.Add(time.Hour-time.Millisecond), time.Hour), "a slightly early tick still runs")
		assert.True(t, factory.FoodCycleDue(now.Add(54*time.Minute), time.Hour))
		assert.False(t, factory.FoodCycleDue(now.Add(54*time.Minute-time.Second), time.Hour))
	})

	t.Run("elapsed time is capped", func(t *testing.T) {
		factory := production.NewFactory(uuid.New(), "Atelier", "LFPG", 1)
		assert.Equal(t, time.Hour, factory.ElapsedSinceFoodTick(now, time.Hour, 24*time.Hour))

		factory.ConsumeFood(1, time.Hour, now)
		assert.Equal(t, 3*time.Hour, factory.ElapsedSinceFoodTick(now.Add(3*time.Hour), time.Hour, 24*time.Hour))
		assert.Equal(t, 24*time.Hour, factory.ElapsedSinceFoodTick(now.Add(72*time.Hour), time.Hour, 24*time.Hour))
	})
}

func TestSetFoodStockClamps(t *testing.T) {
	factory := production.NewFactory(uuid.New(), "Atelier", "LFPG", 1)

	factory.SetFoodStock(500)
	assert.Equal(t, factory.FoodCapacity(), factory.FoodStock())

	factory.SetFoodStock(-4)
	assert.Equal(t, 0, factory.FoodStock())
}

func TestRecipeExperience(t *testing.T) {
	recipe := &production.Recipe{Tier: 3}
	assert.Equal(t, 30, recipe.WorkerXP())
	assert.Equal(t, 60, recipe.EngineerXP())
}
