package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/workforce/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

const grace = 10 * 24 * time.Hour

func newInjuredHandler(w *helpers.World) *commands.ProcessInjuredWorkersHandler {
	r := w.Repos
	return commands.NewProcessInjuredWorkersHandler(r.Transactor, r.Workers,
		ledger.NewTreasury(r.Companies, r.Transactions), w.Clock,
		commands.InjurySettings{GracePeriod: grace, DeathPenalty: decimal.NewFromInt(10000)}, nil)
}

func TestInjuredWorkers_DieAfterGraceAndChargePenalty(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 25000)
	factoryID := w.Factory(companyID, "Atelier", "LFPG", helpers.FactoryOptions{Tier: 1})

	longInjured := w.Worker(helpers.WorkerOptions{
		EmployerID: &companyID, FactoryID: &factoryID, Status: workforce.StatusInjured,
		InjuredAt: helpers.Ptr(helpers.Epoch.Add(-grace - time.Hour)),
	})
	onBoundary := w.Worker(helpers.WorkerOptions{
		EmployerID: &companyID, Status: workforce.StatusInjured,
		InjuredAt: helpers.Ptr(helpers.Epoch.Add(-grace)),
	})

	resp, err := newInjuredHandler(w).Handle(context.Background(), &commands.ProcessInjuredWorkersCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ProcessInjuredWorkersResponse)
	assert.Equal(t, 1, result.Died)
	assert.True(t, result.PenaltiesCharged.Equal(decimal.NewFromInt(10000)))

	dead := w.LoadWorker(longInjured)
	assert.Equal(t, workforce.StatusDead, dead.Status())
	assert.Nil(t, dead.EmployerID())
	assert.Nil(t, dead.FactoryID())
	require.NotNil(t, dead.DiedAt())
	assert.True(t, dead.DiedAt().Equal(helpers.Epoch))

	assert.Equal(t, workforce.StatusInjured, w.LoadWorker(onBoundary).Status(), "the grace boundary is exclusive")
	assert.True(t, w.Balance(companyID).Equal(decimal.NewFromInt(15000)))

	txs := w.Transactions(companyID)
	require.Len(t, txs, 1)
	assert.Equal(t, ledger.TransactionTypeDeathPenalty, txs[0].TransactionType())
	assert.True(t, txs[0].Amount().Equal(decimal.NewFromInt(-10000)))
}

func TestInjuredWorkers_PenaltyClampsAtZero(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Poor Co", 4000)
	w.Worker(helpers.WorkerOptions{
		EmployerID: &companyID, Status: workforce.StatusInjured,
		InjuredAt: helpers.Ptr(helpers.Epoch.Add(-grace - time.Minute)),
	})

	_, err := newInjuredHandler(w).Handle(context.Background(), &commands.ProcessInjuredWorkersCommand{})
	require.NoError(t, err)

	assert.True(t, w.Balance(companyID).IsZero())
	txs := w.Transactions(companyID)
	require.Len(t, txs, 1)
	assert.True(t, txs[0].Amount().Equal(decimal.NewFromInt(-4000)))
	assert.True(t, txs[0].BalanceAfter().IsZero())
}

func TestInjuredWorkers_UnemployedDieWithoutCharge(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	workerID := w.Worker(helpers.WorkerOptions{
		Status:    workforce.StatusInjured,
		InjuredAt: helpers.Ptr(helpers.Epoch.Add(-30 * 24 * time.Hour)),
	})

	resp, err := newInjuredHandler(w).Handle(context.Background(), &commands.ProcessInjuredWorkersCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ProcessInjuredWorkersResponse)
	assert.Equal(t, 1, result.Died)
	assert.True(t, result.PenaltiesCharged.IsZero())
	assert.Equal(t, workforce.StatusDead, w.LoadWorker(workerID).Status())
}
