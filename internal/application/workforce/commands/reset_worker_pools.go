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
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// ResetWorkerPoolsCommand regenerates every airport pool whose refresh is due
type ResetWorkerPoolsCommand struct{}

// ResetWorkerPoolsResponse summarizes one pass
type ResetWorkerPoolsResponse struct {
	PoolsReset         int
	WorkersRemoved     int64
	WorkersGenerated   int
	EngineersGenerated int
	Sweep              common.SweepResult
}

// PoolSettings tune pool regeneration
type PoolSettings struct {
	ResetInterval  time.Duration
	DefaultCountry string
	DefaultStats   workforce.CountryStats
}

// ResetWorkerPoolsHandler replaces the unemployed workers of a due pool with
// freshly generated ones derived from the airport country's base stats
type ResetWorkerPoolsHandler struct {
	tx       common.Transactor
	pools    workforce.PoolRepository
	workers  workforce.WorkerRepository
	stats    workforce.CountryStatsRepository
	airports workforce.AirportDirectory
	clock    shared.Clock
	random   shared.RandomFactory
	settings PoolSettings
	limiter  *rate.Limiter
}

// NewResetWorkerPoolsHandler creates a new handler
func NewResetWorkerPoolsHandler(
	tx common.Transactor,
	pools workforce.PoolRepository,
	workers workforce.WorkerRepository,
	stats workforce.CountryStatsRepository,
	airports workforce.AirportDirectory,
	clock shared.Clock,
	random shared.RandomFactory,
	settings PoolSettings,
	limiter *rate.Limiter,
) *ResetWorkerPoolsHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if random == nil {
		random = shared.NewRandomFactory(0)
	}
	return &ResetWorkerPoolsHandler{
		tx:       tx,
		pools:    pools,
		workers:  workers,
		stats:    stats,
		airports: airports,
		clock:    clock,
		random:   random,
		settings: settings,
		limiter:  limiter,
	}
}

type poolOutcome struct {
	removed   int64
	workers   int
	engineers int
}

// Handle executes the command
func (h *ResetWorkerPoolsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ResetWorkerPoolsCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ResetWorkerPoolsCommand")
	}

	now := h.clock.Now()
	generator := workforce.NewGenerator(h.random())

	ids, err := h.pools.ListDueIDs(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due pools: %w", err)
	}

	response := &ResetWorkerPoolsResponse{}
	response.Sweep = common.Sweep(ctx, "pool", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var outcome poolOutcome
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			outcome, err = h.resetPool(ctx, id, now, generator)
			return err
		})
		if err != nil {
			return err
		}
		response.PoolsReset++
		response.WorkersRemoved += outcome.removed
		response.WorkersGenerated += outcome.workers
		response.EngineersGenerated += outcome.engineers
		return nil
	})

	metrics.RecordProcessed("pool_replenishment", "reset", response.PoolsReset)
	metrics.RecordProcessed("pool_replenishment", "error", response.Sweep.Failed)
	metrics.RecordWorkerEvent("generated", response.WorkersGenerated+response.EngineersGenerated)

	if response.PoolsReset > 0 {
		common.LoggerFromContext(ctx).Info("worker pools reset",
			"pools", response.PoolsReset,
			"removed", response.WorkersRemoved,
			"workers", response.WorkersGenerated,
			"engineers", response.EngineersGenerated,
		)
	}
	return response, nil
}

func (h *ResetWorkerPoolsHandler) resetPool(
	ctx context.Context,
	id uuid.UUID,
	now time.Time,
	generator *workforce.Generator,
) (poolOutcome, error) {
	var outcome poolOutcome

	pool, err := h.pools.FindForUpdate(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return outcome, common.ErrSkip
		}
		return outcome, err
	}
	if !pool.IsDue(now) {
		return outcome, common.ErrSkip
	}

	country, stats, err := h.countryStats(ctx, pool.AirportIdent)
	if err != nil {
		return outcome, err
	}

	outcome.removed, err = h.workers.DeleteUnemployedAvailableAt(ctx, pool.AirportIdent)
	if err != nil {
		return outcome, fmt.Errorf("failed to clear pool: %w", err)
	}

	create := func(kind workforce.Kind, count int) (int, error) {
		for i := 0; i < count; i++ {
			c := generator.Generate(kind, stats)
			w, err := workforce.NewWorker(c.Kind, c.FirstName, c.LastName, pool.AirportIdent, country,
				c.Speed, c.Resistance, c.HourlyWage, now)
			if err != nil {
				return i, err
			}
			if err := h.workers.Create(ctx, w); err != nil {
				return i, fmt.Errorf("failed to create %s: %w", kind, err)
			}
		}
		return count, nil
	}

	if outcome.workers, err = create(workforce.KindWorker, pool.MaxWorkers); err != nil {
		return outcome, err
	}
	if outcome.engineers, err = create(workforce.KindEngineer, pool.MaxEngineers); err != nil {
		return outcome, err
	}

	pool.MarkReset(outcome.workers, outcome.engineers, now, h.settings.ResetInterval)
	if err := h.pools.Save(ctx, pool); err != nil {
		return outcome, fmt.Errorf("failed to save pool: %w", err)
	}
	return outcome, nil
}

// countryStats resolves the base stats for the airport's country, falling
// back to the default country and default stats
func (h *ResetWorkerPoolsHandler) countryStats(ctx context.Context, airportIdent string) (string, workforce.CountryStats, error) {
	country, err := h.airports.CountryOf(ctx, airportIdent)
	if err != nil && !shared.IsNotFound(err) {
		return "", workforce.CountryStats{}, fmt.Errorf("failed to resolve airport country: %w", err)
	}
	if country == "" {
		country = h.settings.DefaultCountry
	}

	stats, err := h.stats.FindByCountry(ctx, country)
	if err != nil {
		if !shared.IsNotFound(err) {
			return "", workforce.CountryStats{}, fmt.Errorf("failed to load country stats: %w", err)
		}
		fallback := h.settings.DefaultStats
		fallback.CountryCode = country
		return country, fallback, nil
	}
	return country, *stats, nil
}
