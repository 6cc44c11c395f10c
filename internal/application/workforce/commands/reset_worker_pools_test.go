package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/workforce/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func newPoolHandler(w *helpers.World) *commands.ResetWorkerPoolsHandler {
	r := w.Repos
	return commands.NewResetWorkerPoolsHandler(r.Transactor, r.Pools, r.Workers, r.CountryStats, r.Airports,
		w.Clock, shared.NewRandomFactory(99),
		commands.PoolSettings{
			ResetInterval:  24 * time.Hour,
			DefaultCountry: "US",
			DefaultStats: workforce.CountryStats{
				BaseSpeed:      50,
				BaseResistance: 50,
				BaseHourlyWage: decimal.NewFromInt(10),
			},
		}, nil)
}

func TestResetWorkerPools_ReplacesHireableWorkers(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	w.Airport("LFPG", "FR")
	w.CountryStats("FR", 80, 30, 20)
	companyID := w.Company("Acme", 100)

	stale := w.Worker(helpers.WorkerOptions{Airport: "LFPG"})
	hired := w.Worker(helpers.WorkerOptions{Airport: "LFPG", EmployerID: &companyID})
	injured := w.Worker(helpers.WorkerOptions{Airport: "LFPG", Status: workforce.StatusInjured, InjuredAt: helpers.Ptr(helpers.Epoch)})
	poolID := w.Pool("LFPG", 4, 2, nil)

	resp, err := newPoolHandler(w).Handle(context.Background(), &commands.ResetWorkerPoolsCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ResetWorkerPoolsResponse)
	assert.Equal(t, 1, result.PoolsReset)
	assert.Equal(t, int64(1), result.WorkersRemoved)
	assert.Equal(t, 4, result.WorkersGenerated)
	assert.Equal(t, 2, result.EngineersGenerated)

	assert.Nil(t, w.LoadWorker(stale))
	assert.NotNil(t, w.LoadWorker(hired), "employed workers survive a reset")
	assert.NotNil(t, w.LoadWorker(injured))

	assert.Equal(t, int64(4), w.CountWorkers("airport_ident = ? AND employer_id IS NULL AND kind = ? AND status = ?", "LFPG", "worker", "available"))
	assert.Equal(t, int64(2), w.CountWorkers("airport_ident = ? AND kind = ?", "LFPG", "engineer"))
	assert.Equal(t, int64(0), w.CountWorkers("airport_ident = ? AND employer_id IS NULL AND country_code <> ? AND status = ?", "LFPG", "FR", "available"))
	assert.Equal(t, int64(0), w.CountWorkers("employer_id IS NULL AND status = ? AND (speed < 63 OR speed > 96)", "available"),
		"generated speed stays within 20% of the country base")

	pool := w.LoadPool(poolID)
	assert.Equal(t, 4, pool.CurrentWorkers)
	assert.Equal(t, 2, pool.CurrentEngineers)
	require.NotNil(t, pool.NextResetAt)
	assert.True(t, pool.NextResetAt.Equal(helpers.Epoch.Add(24*time.Hour)))
}

func TestResetWorkerPools_SkipsPoolsNotDue(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	w.Pool("LFPG", 4, 2, helpers.Ptr(helpers.Epoch.Add(time.Hour)))

	resp, err := newPoolHandler(w).Handle(context.Background(), &commands.ResetWorkerPoolsCommand{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.(*commands.ResetWorkerPoolsResponse).PoolsReset)
	assert.Equal(t, int64(0), w.CountWorkers("airport_ident = ?", "LFPG"))
}

func TestResetWorkerPools_FallsBackToDefaults(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	w.Pool("ZZZZ", 3, 0, nil)

	_, err := newPoolHandler(w).Handle(context.Background(), &commands.ResetWorkerPoolsCommand{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), w.CountWorkers("airport_ident = ? AND country_code = ?", "ZZZZ", "US"))
	assert.Equal(t, int64(0), w.CountWorkers("kind = ?", "engineer"))
}
