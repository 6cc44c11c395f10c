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
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// maxFoodCatchUp bounds how much elapsed time one food cycle may bill
const maxFoodCatchUp = 24 * time.Hour

// ProcessFoodAndInjuriesCommand feeds staffed factories and rolls injuries
type ProcessFoodAndInjuriesCommand struct{}

// ProcessFoodAndInjuriesResponse summarizes one cycle
type ProcessFoodAndInjuriesResponse struct {
	FactoriesFed   int
	FactoriesUnfed int
	FoodConsumed   int
	WorkersInjured int
	Sweep          common.SweepResult
}

// FoodAndInjurySettings tune the cycle
type FoodAndInjurySettings struct {
	// Cycle is the minimum time between two food cycles of one factory
	Cycle time.Duration
	// BaseInjuryRate is the per-cycle injury chance of a fed worker with zero resistance
	BaseInjuryRate float64
}

// ProcessFoodAndInjuriesHandler debits food for the working staff of each
// player factory and flags newly injured workers. A factory is processed at
// most once per cycle.
type ProcessFoodAndInjuriesHandler struct {
	tx        common.Transactor
	factories production.FactoryRepository
	workers   workforce.WorkerRepository
	audit     production.AuditRepository
	clock     shared.Clock
	random    shared.RandomFactory
	settings  FoodAndInjurySettings
	limiter   *rate.Limiter
}

// NewProcessFoodAndInjuriesHandler creates a new handler
func NewProcessFoodAndInjuriesHandler(
	tx common.Transactor,
	factories production.FactoryRepository,
	workers workforce.WorkerRepository,
	audit production.AuditRepository,
	clock shared.Clock,
	random shared.RandomFactory,
	settings FoodAndInjurySettings,
	limiter *rate.Limiter,
) *ProcessFoodAndInjuriesHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if random == nil {
		random = shared.NewRandomFactory(0)
	}
	return &ProcessFoodAndInjuriesHandler{
		tx:        tx,
		factories: factories,
		workers:   workers,
		audit:     audit,
		clock:     clock,
		random:    random,
		settings:  settings,
		limiter:   limiter,
	}
}

type foodOutcome struct {
	fed      bool
	consumed int
	injured  int
}

// Handle executes the command
func (h *ProcessFoodAndInjuriesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ProcessFoodAndInjuriesCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessFoodAndInjuriesCommand")
	}

	now := h.clock.Now()
	rng := h.random()

	ids, err := h.factories.ListStaffedIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list staffed factories: %w", err)
	}

	response := &ProcessFoodAndInjuriesResponse{}
	response.Sweep = common.Sweep(ctx, "factory", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var outcome foodOutcome
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			outcome, err = h.processFactory(ctx, id, now, rng)
			return err
		})
		if err != nil {
			return err
		}
		if outcome.fed {
			response.FactoriesFed++
		} else {
			response.FactoriesUnfed++
		}
		response.FoodConsumed += outcome.consumed
		response.WorkersInjured += outcome.injured
		return nil
	})

	metrics.RecordProcessed("food_and_injuries", "fed", response.FactoriesFed)
	metrics.RecordProcessed("food_and_injuries", "unfed", response.FactoriesUnfed)
	metrics.RecordProcessed("food_and_injuries", "error", response.Sweep.Failed)
	metrics.RecordWorkerEvent("injured", response.WorkersInjured)

	common.LoggerFromContext(ctx).Info("food and injury cycle finished",
		"factories", len(ids),
		"unfed", response.FactoriesUnfed,
		"food_consumed", response.FoodConsumed,
		"injured", response.WorkersInjured,
	)
	return response, nil
}

func (h *ProcessFoodAndInjuriesHandler) processFactory(
	ctx context.Context,
	id uuid.UUID,
	now time.Time,
	rng shared.RandomSource,
) (foodOutcome, error) {
	var outcome foodOutcome

	factory, err := h.factories.FindForUpdate(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return outcome, common.ErrSkip
		}
		return outcome, err
	}
	if factory.IsNPC() || !factory.IsActive() || !factory.FoodCycleDue(now, h.settings.Cycle) {
		return outcome, common.ErrSkip
	}

	staff, err := h.workers.ListWorkingAtFactory(ctx, factory.ID())
	if err != nil {
		return outcome, fmt.Errorf("failed to load factory staff: %w", err)
	}
	if len(staff) == 0 {
		return outcome, common.ErrSkip
	}

	elapsed := factory.ElapsedSinceFoodTick(now, h.settings.Cycle, maxFoodCatchUp)
	outcome.consumed = factory.ConsumeFood(len(staff), elapsed, now)
	outcome.fed = factory.HasFood()

	if err := h.factories.Save(ctx, factory); err != nil {
		return outcome, fmt.Errorf("failed to save factory: %w", err)
	}
	if err := h.audit.Append(ctx, production.NewFoodConsumedEntry(factory.ID(), outcome.consumed, outcome.fed, now)); err != nil {
		return outcome, fmt.Errorf("failed to record food audit: %w", err)
	}

	for _, w := range staff {
		if !workforce.RollInjury(rng, h.settings.BaseInjuryRate, w.Resistance(), outcome.fed) {
			continue
		}
		if err := w.Injure(now); err != nil {
			return outcome, err
		}
		if err := h.workers.Save(ctx, w); err != nil {
			return outcome, fmt.Errorf("failed to save worker %s: %w", w.ID(), err)
		}
		outcome.injured++
	}

	if !outcome.fed {
		common.LoggerFromContext(ctx).Warn("factory ran out of food",
			"factory_id", factory.ID(), "workers", len(staff))
	}
	return outcome, nil
}
