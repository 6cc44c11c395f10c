package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/mission"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// ExpireMissionsCommand fails missions that stayed in progress past their time-to-live
type ExpireMissionsCommand struct{}

// ExpireMissionsResponse summarizes one pass
type ExpireMissionsResponse struct {
	Expired        int
	UnitsRestored  int
	LinesFailed    int
	AircraftParked int
	Sweep          common.SweepResult
}

// ExpireMissionsHandler returns the cargo of stale missions to the origin,
// parks the aircraft where it stands and fails the mission with a timeout
type ExpireMissionsHandler struct {
	tx       common.Transactor
	missions mission.Repository
	aircraft mission.AircraftRepository
	items    inventory.ItemRepository
	keeper   *inventory.Keeper
	clock    shared.Clock
	ttl      time.Duration
	limiter  *rate.Limiter
}

// NewExpireMissionsHandler creates a new handler
func NewExpireMissionsHandler(
	tx common.Transactor,
	missions mission.Repository,
	aircraft mission.AircraftRepository,
	items inventory.ItemRepository,
	keeper *inventory.Keeper,
	clock shared.Clock,
	ttl time.Duration,
	limiter *rate.Limiter,
) *ExpireMissionsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ExpireMissionsHandler{
		tx:       tx,
		missions: missions,
		aircraft: aircraft,
		items:    items,
		keeper:   keeper,
		clock:    clock,
		ttl:      ttl,
		limiter:  limiter,
	}
}

type expiryOutcome struct {
	restored    int
	linesFailed int
	parked      bool
}

// Handle executes the command
func (h *ExpireMissionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ExpireMissionsCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ExpireMissionsCommand")
	}

	now := h.clock.Now()
	ids, err := h.missions.ListExpiredIDs(ctx, now.Add(-h.ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to list expired missions: %w", err)
	}

	response := &ExpireMissionsResponse{}
	response.Sweep = common.Sweep(ctx, "mission", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var outcome expiryOutcome
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			outcome, err = h.expire(ctx, id, now)
			return err
		})
		if err != nil {
			return err
		}
		response.Expired++
		response.UnitsRestored += outcome.restored
		response.LinesFailed += outcome.linesFailed
		if outcome.parked {
			response.AircraftParked++
		}
		return nil
	})

	metrics.RecordProcessed("mission_expiry", "expired", response.Expired)
	metrics.RecordProcessed("mission_expiry", "error", response.Sweep.Failed)

	if response.Expired > 0 {
		common.LoggerFromContext(ctx).Info("missions expired",
			"expired", response.Expired,
			"units_restored", response.UnitsRestored,
			"lines_failed", response.LinesFailed,
		)
	}
	return response, nil
}

func (h *ExpireMissionsHandler) expire(ctx context.Context, id uuid.UUID, now time.Time) (expiryOutcome, error) {
	var outcome expiryOutcome
	logger := common.LoggerFromContext(ctx)

	m, err := h.missions.FindForUpdate(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return outcome, common.ErrSkip
		}
		return outcome, err
	}
	if !m.IsExpired(now, h.ttl) {
		return outcome, common.ErrSkip
	}

	owner := inventory.CompanyAt(m.CompanyID(), m.OriginICAO())
	for _, line := range m.Cargo().Items {
		// Each line commits or rolls back on its own savepoint.
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return h.restoreLine(ctx, owner, line)
		})
		if err != nil {
			outcome.linesFailed++
			logger.Error("failed to restore cargo line",
				"mission_id", m.ID(),
				"item", line.ItemName,
				"quantity", line.Quantity,
				"error", err,
			)
			continue
		}
		outcome.restored += line.Quantity
	}

	if aircraftID := m.AircraftID(); aircraftID != nil {
		aircraft, err := h.aircraft.FindForUpdate(ctx, *aircraftID)
		switch {
		case err == nil:
			aircraft.Park()
			if err := h.aircraft.Save(ctx, aircraft); err != nil {
				return outcome, fmt.Errorf("failed to park aircraft: %w", err)
			}
			outcome.parked = true
		case shared.IsNotFound(err):
			logger.Warn("mission aircraft no longer exists", "mission_id", m.ID(), "aircraft_id", *aircraftID)
		default:
			return outcome, err
		}
	}

	if err := m.Expire(now); err != nil {
		return outcome, err
	}
	if err := h.missions.Save(ctx, m); err != nil {
		return outcome, fmt.Errorf("failed to save mission: %w", err)
	}
	return outcome, nil
}

// restoreLine credits one cargo line back to the origin. Lines recorded
// without an item id are resolved by name.
func (h *ExpireMissionsHandler) restoreLine(ctx context.Context, owner inventory.Owner, line mission.CargoLine) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("invalid cargo quantity %d", line.Quantity)
	}

	itemID := line.ItemID
	if itemID == uuid.Nil {
		item, err := h.items.FindByName(ctx, line.ItemName)
		if err != nil {
			return err
		}
		itemID = item.ID
	}

	_, err := h.keeper.Credit(ctx, owner, itemID, line.Quantity)
	return err
}
