package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/workforce/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func TestCleanupDeadWorkers_PurgesAfterRetention(t *testing.T) {
	retention := 30 * 24 * time.Hour
	w := helpers.NewWorld(helpers.NewTestDB(t))

	old := w.Worker(helpers.WorkerOptions{Status: workforce.StatusDead, DiedAt: helpers.Ptr(helpers.Epoch.Add(-retention - time.Hour))})
	boundary := w.Worker(helpers.WorkerOptions{Status: workforce.StatusDead, DiedAt: helpers.Ptr(helpers.Epoch.Add(-retention))})
	recent := w.Worker(helpers.WorkerOptions{Status: workforce.StatusDead, DiedAt: helpers.Ptr(helpers.Epoch.Add(-time.Hour))})
	alive := w.Worker(helpers.WorkerOptions{})

	handler := commands.NewCleanupDeadWorkersHandler(w.Repos.Workers, w.Clock, retention, nil)
	resp, err := handler.Handle(context.Background(), &commands.CleanupDeadWorkersCommand{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.(*commands.CleanupDeadWorkersResponse).Purged)
	assert.Nil(t, w.LoadWorker(old))
	assert.NotNil(t, w.LoadWorker(boundary))
	assert.NotNil(t, w.LoadWorker(recent))
	assert.NotNil(t, w.LoadWorker(alive))
}
