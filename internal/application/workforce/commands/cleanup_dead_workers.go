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

// CleanupDeadWorkersCommand removes workers dead for longer than the retention window
type CleanupDeadWorkersCommand struct{}

// CleanupDeadWorkersResponse summarizes one pass
type CleanupDeadWorkersResponse struct {
	Purged int
	Sweep  common.SweepResult
}

// CleanupDeadWorkersHandler purges dead workers
type CleanupDeadWorkersHandler struct {
	workers   workforce.WorkerRepository
	clock     shared.Clock
	retention time.Duration
	limiter   *rate.Limiter
}

// NewCleanupDeadWorkersHandler creates a new handler
func NewCleanupDeadWorkersHandler(
	workers workforce.WorkerRepository,
	clock shared.Clock,
	retention time.Duration,
	limiter *rate.Limiter,
) *CleanupDeadWorkersHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CleanupDeadWorkersHandler{
		workers:   workers,
		clock:     clock,
		retention: retention,
		limiter:   limiter,
	}
}

// Handle executes the command
func (h *CleanupDeadWorkersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*CleanupDeadWorkersCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *CleanupDeadWorkersCommand")
	}

	cutoff := h.clock.Now().Add(-h.retention)
	ids, err := h.workers.ListDeadIDsBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list dead workers: %w", err)
	}

	response := &CleanupDeadWorkersResponse{}
	// A purge is one conditional delete, so it needs no explicit transaction.
	response.Sweep = common.Sweep(ctx, "worker", ids, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		removed, err := h.workers.PurgeDead(ctx, id, cutoff)
		if err != nil {
			return err
		}
		if !removed {
			return common.ErrSkip
		}
		response.Purged++
		return nil
	})

	metrics.RecordWorkerEvent("purged", response.Purged)

	if response.Purged > 0 {
		common.LoggerFromContext(ctx).Info("dead workers purged", "purged", response.Purged)
	}
	return response, nil
}
