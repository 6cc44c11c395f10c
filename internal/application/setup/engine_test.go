package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func newEngine(t *testing.T, w *helpers.World, intervals setup.Intervals) *setup.Engine {
	t.Helper()
	engine, err := setup.NewEngine(setup.EngineOptions{
		Repositories: w.Repos,
		Settings:     setup.DefaultSettings(),
		Intervals:    intervals,
		Clock:        w.Clock,
		Random:       shared.NewRandomFactory(7),
	})
	require.NoError(t, err)
	return engine
}

func TestEngine_RegistersEveryJob(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	engine := newEngine(t, w, nil)

	jobs := engine.Jobs()
	require.Len(t, jobs, 8)

	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name
		assert.Equal(t, setup.DefaultIntervals()[j.Name], j.Interval)
	}
	assert.Equal(t, setup.JobNames(), names)
}

func TestEngine_NegativeIntervalDisablesJob(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	engine := newEngine(t, w, setup.Intervals{
		setup.JobPayroll:       -1,
		setup.JobMissionExpiry: time.Minute,
	})

	jobs := engine.Jobs()
	require.Len(t, jobs, 7)
	for _, j := range jobs {
		assert.NotEqual(t, setup.JobPayroll, j.Name)
		if j.Name == setup.JobMissionExpiry {
			assert.Equal(t, time.Minute, j.Interval)
		}
	}

	err := engine.RunJob(context.Background(), setup.JobPayroll)
	assert.ErrorIs(t, err, scheduler.ErrJobNotFound)
}

func TestEngine_RunJobDispatchesThroughMediator(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	w.Worker(helpers.WorkerOptions{EmployerID: &companyID, Wage: 25})
	engine := newEngine(t, w, nil)

	require.NoError(t, engine.RunJob(context.Background(), setup.JobPayroll))
	assert.True(t, w.Balance(companyID).Equal(decimal.NewFromInt(75)))

	for _, j := range engine.Jobs() {
		if j.Name == setup.JobPayroll {
			assert.Equal(t, 1, j.Runs)
			assert.Zero(t, j.Failures)
		}
	}
}

func TestEngine_EveryJobRunsOnAnEmptyWorld(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	engine := newEngine(t, w, nil)

	for _, name := range setup.JobNames() {
		assert.NoError(t, engine.RunJob(context.Background(), name), name)
	}
}
