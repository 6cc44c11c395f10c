package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func TestSweep_CountsOutcomesAndContinuesPastFailures(t *testing.T) {
	list := ids(5)
	var visited []uuid.UUID

	result := common.Sweep(context.Background(), "thing", list, nil, func(ctx context.Context, id uuid.UUID) error {
		visited = append(visited, id)
		switch id {
		case list[1]:
			return errors.New("boom")
		case list[3]:
			return common.ErrSkip
		}
		return nil
	})

	assert.Equal(t, list, visited)
	assert.Equal(t, common.SweepResult{Processed: 3, Skipped: 1, Failed: 1}, result)
}

func TestSweep_StopsBetweenEntitiesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	list := ids(4)
	calls := 0

	result := common.Sweep(ctx, "thing", list, nil, func(inner context.Context, id uuid.UUID) error {
		calls++
		if calls == 2 {
			cancel()
			assert.NoError(t, inner.Err(), "the entity in flight keeps a live context")
		}
		return nil
	})

	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, result.Processed)
	assert.True(t, result.Interrupted)
}

func TestSweep_WithLimiter(t *testing.T) {
	limiter := rate.NewLimiter(rate.Inf, 1)

	result := common.Sweep(context.Background(), "thing", ids(3), limiter, func(context.Context, uuid.UUID) error {
		return nil
	})

	assert.Equal(t, 3, result.Processed)
	assert.False(t, result.Interrupted)
}

func TestLoggerFromContext_DefaultsToNop(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())
	assert.IsType(t, common.NopLogger{}, logger)

	ctx := common.WithLogger(context.Background(), logger.With("k", "v"))
	assert.NotNil(t, common.LoggerFromContext(ctx))
}
