package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/mission/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/mission"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

const ttl = 24 * time.Hour

func newExpireHandler(w *helpers.World) *commands.ExpireMissionsHandler {
	r := w.Repos
	return commands.NewExpireMissionsHandler(r.Transactor, r.Missions, r.Aircraft, r.Items,
		inventory.NewKeeper(r.Locations, r.Stocks), w.Clock, ttl, nil)
}

func TestExpireMissions_RestoresCargoAndParksAircraft(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	wine := w.Item("Wine", 1, 12)
	cheese := w.Item("Cheese", 1, 8)
	aircraftID := w.Aircraft(companyID, "LFPG")

	origin := inventory.CompanyAt(companyID, "LFPG")
	w.Stock(origin, wine, 5)

	missionID := w.Mission(companyID, &aircraftID, "LFPG", "EGLL", helpers.Epoch.Add(-ttl-time.Minute),
		mission.CargoLine{ItemID: wine, ItemName: "Wine", Quantity: 10},
		// Older payloads only carry the name
		mission.CargoLine{ItemName: "Cheese", Quantity: 4},
	)

	resp, err := newExpireHandler(w).Handle(context.Background(), &commands.ExpireMissionsCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ExpireMissionsResponse)
	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, 14, result.UnitsRestored)
	assert.Equal(t, 0, result.LinesFailed)
	assert.Equal(t, 1, result.AircraftParked)

	assert.Equal(t, 15, w.QuantityOf(origin, wine))
	assert.Equal(t, 4, w.QuantityOf(origin, cheese))

	m := w.LoadMission(missionID)
	assert.Equal(t, mission.StatusFailed, m.Status())
	assert.Equal(t, mission.FailureReasonTimeout, m.FailureReason())
	require.NotNil(t, m.CompletedAt())
	assert.True(t, m.CompletedAt().Equal(helpers.Epoch))
	assert.Zero(t, m.XPEarned())

	aircraft := w.LoadAircraft(aircraftID)
	assert.Equal(t, mission.AircraftStatusParked, aircraft.Status)
	assert.Equal(t, "LFPG", aircraft.CurrentAirport)
}

func TestExpireMissions_LeavesFreshMissionsAlone(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	onBoundary := w.Mission(companyID, nil, "LFPG", "EGLL", helpers.Epoch.Add(-ttl))
	recent := w.Mission(companyID, nil, "LFPG", "EGLL", helpers.Epoch.Add(-time.Hour))

	resp, err := newExpireHandler(w).Handle(context.Background(), &commands.ExpireMissionsCommand{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.(*commands.ExpireMissionsResponse).Expired)
	assert.Equal(t, mission.StatusInProgress, w.LoadMission(onBoundary).Status())
	assert.Equal(t, mission.StatusInProgress, w.LoadMission(recent).Status())
}

func TestExpireMissions_UnknownItemDoesNotBlockExpiry(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	wine := w.Item("Wine", 1, 12)
	missingAircraft := uuid.New()

	missionID := w.Mission(companyID, &missingAircraft, "LFPG", "EGLL", helpers.Epoch.Add(-48*time.Hour),
		mission.CargoLine{ItemName: "Unobtainium", Quantity: 3},
		mission.CargoLine{ItemID: wine, ItemName: "Wine", Quantity: 2},
	)

	resp, err := newExpireHandler(w).Handle(context.Background(), &commands.ExpireMissionsCommand{})
	require.NoError(t, err)

	result := resp.(*commands.ExpireMissionsResponse)
	assert.Equal(t, 1, result.Expired)
	assert.Equal(t, 1, result.LinesFailed)
	assert.Equal(t, 2, result.UnitsRestored)
	assert.Equal(t, 0, result.AircraftParked)

	assert.Equal(t, 2, w.QuantityOf(inventory.CompanyAt(companyID, "LFPG"), wine))
	assert.Equal(t, mission.StatusFailed, w.LoadMission(missionID).Status())
}
