// Package engine assembles the simulation engine from configuration.
package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/adapters/persistence"
	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/config"
)

// New builds an engine over db. When the metrics registry is initialized the
// command middleware, job observer and simulation counters are registered.
func New(cfg *config.Config, db *gorm.DB, logger common.Logger, clock shared.Clock) (*setup.Engine, error) {
	settings, err := SettingsFromConfig(cfg.Simulation, cfg.Scheduler)
	if err != nil {
		return nil, err
	}

	opts := setup.EngineOptions{
		Repositories: persistence.NewRepositories(db),
		Settings:     settings,
		Intervals:    IntervalsFromConfig(cfg.Scheduler.Intervals),
		Clock:        clock,
		Random:       shared.NewRandomFactory(cfg.Simulation.RandomSeed),
		Logger:       logger,
	}

	if metrics.IsEnabled() {
		commandCollector := metrics.NewCommandMetricsCollector()
		jobCollector := metrics.NewJobMetricsCollector()
		simulationCollector := metrics.NewSimulationMetricsCollector()
		for _, register := range []func() error{commandCollector.Register, jobCollector.Register, simulationCollector.Register} {
			if err := register(); err != nil {
				return nil, fmt.Errorf("failed to register metrics: %w", err)
			}
		}
		metrics.SetGlobalSimulationCollector(simulationCollector)
		opts.Middlewares = []mediator.Middleware{metrics.PrometheusMiddleware(commandCollector)}
		opts.Observer = jobCollector
	}

	return setup.NewEngine(opts)
}

// SettingsFromConfig converts the simulation section into handler settings
func SettingsFromConfig(sim config.SimulationConfig, sched config.SchedulerConfig) (setup.Settings, error) {
	settings := setup.DefaultSettings()

	if sim.NPCCompanyID != "" {
		id, err := uuid.Parse(sim.NPCCompanyID)
		if err != nil {
			return settings, fmt.Errorf("invalid npc_company_id: %w", err)
		}
		settings.NPC.CompanyID = id
	}
	settings.NPC.StockCeiling = sim.NPCStockCeiling
	settings.NPC.RatePerCycle = sim.NPCProductionRate

	settings.Food.Cycle = sim.FoodCycle
	settings.Food.BaseInjuryRate = sim.BaseInjuryRate

	settings.Injury.GracePeriod = sim.InjuryGracePeriod
	settings.Injury.DeathPenalty = decimal.NewFromFloat(sim.DeathPenalty).Round(2)

	settings.DeadRetention = sim.DeadRetention
	settings.MissionTTL = sim.MissionTTL

	settings.Pools.ResetInterval = sim.PoolResetInterval
	settings.Pools.DefaultCountry = sim.DefaultCountry
	settings.Pools.DefaultStats = workforce.CountryStats{
		CountryCode:    sim.DefaultCountry,
		BaseSpeed:      sim.DefaultStats.Speed,
		BaseResistance: sim.DefaultStats.Resistance,
		BaseHourlyWage: decimal.NewFromFloat(sim.DefaultStats.HourlyWage).Round(2),
	}

	settings.EntitiesPerSecond = sched.EntitiesPerSecond
	return settings, nil
}

// IntervalsFromConfig maps the configured intervals to job names
func IntervalsFromConfig(iv config.JobIntervalsConfig) setup.Intervals {
	return setup.Intervals{
		setup.JobNPCProduction:        iv.NPCProduction,
		setup.JobProductionCompletion: iv.ProductionCompletion,
		setup.JobFoodAndInjuries:      iv.FoodAndInjuries,
		setup.JobPayroll:              iv.Payroll,
		setup.JobInjuredWorkers:       iv.InjuredWorkers,
		setup.JobDeadWorkerCleanup:    iv.DeadWorkerCleanup,
		setup.JobMissionExpiry:        iv.MissionExpiry,
		setup.JobPoolReplenishment:    iv.PoolReplenishment,
	}
}
