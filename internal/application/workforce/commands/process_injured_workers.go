package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// ProcessInjuredWorkersCommand promotes injuries past the grace period to death
type ProcessInjuredWorkersCommand struct{}

// ProcessInjuredWorkersResponse summarizes one pass
type ProcessInjuredWorkersResponse struct {
	Died             int
	PenaltiesCharged decimal.Decimal
	Sweep            common.SweepResult
}

// InjurySettings tune the death pass
type InjurySettings struct {
	GracePeriod  time.Duration
	DeathPenalty decimal.Decimal
}

// ProcessInjuredWorkersHandler kills workers injured for longer than the
// grace period and charges their employer the death penalty, clamped at zero
type ProcessInjuredWorkersHandler struct {
	tx       common.Transactor
	workers  workforce.WorkerRepository
	treasury *ledger.Treasury
	clock    shared.Clock
	settings InjurySettings
	limiter  *rate.Limiter
}

// NewProcessInjuredWorkersHandler creates a new handler
func NewProcessInjuredWorkersHandler(
	tx common.Transactor,
	workers workforce.WorkerRepository,
	treasury *ledger.Treasury,
	clock shared.Clock,
	settings InjurySettings,
	limiter *rate.Limiter,
) *ProcessInjuredWorkersHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ProcessInjuredWorkersHandler{
		tx:       tx,
		workers:  workers,
		treasury: treasury,
		clock:    clock,
		settings: settings,
		limiter:  limiter,
	}
}

// Handle executes the command
func (h *ProcessInjuredWorkersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ProcessInjuredWorkersCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessInjuredWorkersCommand")
	}

	now := h.clock.Now()
	ids, err := h.workers.ListInjuredIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list injured workers: %w", err)
	}

	response := &ProcessInjuredWorkersResponse{PenaltiesCharged: decimal.Zero}
	response.Sweep = common.Sweep(ctx, "worker", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var charged decimal.Decimal
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			charged, err = h.processWorker(ctx, id, now)
			return err
		})
		if err != nil {
			return err
		}
		response.Died++
		response.PenaltiesCharged = response.PenaltiesCharged.Add(charged)
		return nil
	})

	metrics.RecordWorkerEvent("died", response.Died)
	metrics.RecordProcessed("injured_workers", "error", response.Sweep.Failed)
	metrics.RecordBalanceDebit(ledger.TransactionTypeDeathPenalty.String(), response.PenaltiesCharged.InexactFloat64())

	if response.Died > 0 {
		common.LoggerFromContext(ctx).Info("injured workers died",
			"died", response.Died,
			"penalties", response.PenaltiesCharged.String(),
		)
	}
	return response, nil
}

func (h *ProcessInjuredWorkersHandler) processWorker(ctx context.Context, id uuid.UUID, now time.Time) (decimal.Decimal, error) {
	worker, err := h.workers.FindForUpdate(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return decimal.Zero, common.ErrSkip
		}
		return decimal.Zero, err
	}
	if !worker.InjuryExceeds(now, h.settings.GracePeriod) {
		return decimal.Zero, common.ErrSkip
	}

	employerID, err := worker.Die(now)
	if err != nil {
		return decimal.Zero, err
	}
	if err := h.workers.Save(ctx, worker); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save worker: %w", err)
	}

	if employerID == nil {
		return decimal.Zero, nil
	}

	charged, err := h.treasury.Debit(ctx, ledger.Charge{
		CompanyID:   *employerID,
		Amount:      h.settings.DeathPenalty,
		Type:        ledger.TransactionTypeDeathPenalty,
		Description: fmt.Sprintf("Death of worker %s", worker.FullName()),
		Metadata:    map[string]interface{}{"worker_id": worker.ID().String()},
		Timestamp:   now,
	})
	if err != nil {
		if shared.IsNotFound(err) {
			common.LoggerFromContext(ctx).Warn("employer of dead worker no longer exists",
				"worker_id", worker.ID(), "company_id", *employerID)
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to charge death penalty: %w", err)
	}
	return charged, nil
}
