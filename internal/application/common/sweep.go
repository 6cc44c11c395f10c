package common

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// SweepResult summarizes one pass over a set of entities
type SweepResult struct {
	Processed int
	Skipped   int
	Failed    int
	// Interrupted is set when the context ended before every entity was visited
	Interrupted bool
}

// ErrSkip tells Sweep the entity no longer met its trigger condition
var ErrSkip = errors.New("entity skipped")

// Sweep visits each id with fn, one at a time. Failures are logged and counted
// without stopping the pass. The context is checked between entities only, so
// an entity in flight always runs to commit or rollback. A nil limiter means
// no throttling.
func Sweep(
	ctx context.Context,
	entity string,
	ids []uuid.UUID,
	limiter *rate.Limiter,
	fn func(ctx context.Context, id uuid.UUID) error,
) SweepResult {
	logger := LoggerFromContext(ctx)
	var result SweepResult

	for _, id := range ids {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				result.Interrupted = true
				break
			}
		}

		// Entity work runs to completion even if shutdown starts meanwhile.
		err := fn(context.WithoutCancel(ctx), id)
		switch {
		case err == nil:
			result.Processed++
		case errors.Is(err, ErrSkip):
			result.Skipped++
		default:
			result.Failed++
			logger.Error("failed to process "+entity, entity+"_id", id, "error", err)
		}
	}

	return result
}
