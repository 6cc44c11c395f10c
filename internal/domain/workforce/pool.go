package workforce

import (
	"time"

	"github.com/google/uuid"
)

// Pool is the per-airport cache of hireable workers, regenerated on a
// fixed cadence. Current counts never exceed the caps.
type Pool struct {
	ID               uuid.UUID
	AirportIdent     string
	MaxWorkers       int
	MaxEngineers     int
	CurrentWorkers   int
	CurrentEngineers int
	LastResetAt      *time.Time
	NextResetAt      *time.Time
}

// IsDue reports whether the pool should be regenerated at now
func (p *Pool) IsDue(now time.Time) bool {
	return p.NextResetAt == nil || !p.NextResetAt.After(now)
}

// MarkReset records a regeneration at now with the generated counts
func (p *Pool) MarkReset(workers, engineers int, now time.Time, interval time.Duration) {
	p.CurrentWorkers = min(workers, p.MaxWorkers)
	p.CurrentEngineers = min(engineers, p.MaxEngineers)
	next := now.Add(interval)
	p.LastResetAt = &now
	p.NextResetAt = &next
}
