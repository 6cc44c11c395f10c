package setup

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	ledgerCommands "github.com/andrescamacho/carrierplus-go/internal/application/ledger/commands"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	missionCommands "github.com/andrescamacho/carrierplus-go/internal/application/mission/commands"
	productionCommands "github.com/andrescamacho/carrierplus-go/internal/application/production/commands"
	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
	workforceCommands "github.com/andrescamacho/carrierplus-go/internal/application/workforce/commands"
)

// NPCCompanyID owns every Tier-0 factory and warehouse
var NPCCompanyID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// Job names
const (
	JobNPCProduction        = "npc_production"
	JobProductionCompletion = "production_completion"
	JobFoodAndInjuries      = "food_and_injuries"
	JobPayroll              = "payroll"
	JobInjuredWorkers       = "injured_workers"
	JobDeadWorkerCleanup    = "dead_worker_cleanup"
	JobMissionExpiry        = "mission_expiry"
	JobPoolReplenishment    = "pool_replenishment"
)

// Intervals maps job names to their firing interval
type Intervals map[string]time.Duration

// DefaultIntervals returns the standard cadence of every job
func DefaultIntervals() Intervals {
	return Intervals{
		JobNPCProduction:        5 * time.Minute,
		JobProductionCompletion: time.Minute,
		JobFoodAndInjuries:      time.Hour,
		JobPayroll:              time.Hour,
		JobInjuredWorkers:       24 * time.Hour,
		JobDeadWorkerCleanup:    24 * time.Hour,
		JobMissionExpiry:        15 * time.Minute,
		JobPoolReplenishment:    6 * time.Hour,
	}
}

// jobCommands builds the command each job sends. Commands carry no arguments.
var jobCommands = map[string]func() mediator.Request{
	JobNPCProduction:        func() mediator.Request { return &productionCommands.RunNPCProductionCommand{} },
	JobProductionCompletion: func() mediator.Request { return &productionCommands.CompleteProductionBatchesCommand{} },
	JobFoodAndInjuries:      func() mediator.Request { return &workforceCommands.ProcessFoodAndInjuriesCommand{} },
	JobPayroll:              func() mediator.Request { return &ledgerCommands.ProcessPayrollCommand{} },
	JobInjuredWorkers:       func() mediator.Request { return &workforceCommands.ProcessInjuredWorkersCommand{} },
	JobDeadWorkerCleanup:    func() mediator.Request { return &workforceCommands.CleanupDeadWorkersCommand{} },
	JobMissionExpiry:        func() mediator.Request { return &missionCommands.ExpireMissionsCommand{} },
	JobPoolReplenishment:    func() mediator.Request { return &workforceCommands.ResetWorkerPoolsCommand{} },
}

// JobNames lists every known job in alphabetical order
func JobNames() []string {
	names := make([]string, 0, len(jobCommands))
	for name := range jobCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterJobs binds every job to its command on the scheduler. A job whose
// interval is missing falls back to the default; a negative interval
// disables the job.
func RegisterJobs(s *scheduler.Scheduler, m mediator.Mediator, intervals Intervals) error {
	defaults := DefaultIntervals()
	for name, newCommand := range jobCommands {
		interval, ok := intervals[name]
		if !ok || interval == 0 {
			interval = defaults[name]
		}
		if interval < 0 {
			continue
		}

		build := newCommand
		job := func(ctx context.Context) error {
			_, err := m.Send(ctx, build())
			return err
		}
		if err := s.Register(name, interval, job); err != nil {
			return fmt.Errorf("failed to register job %s: %w", name, err)
		}
	}
	return nil
}
