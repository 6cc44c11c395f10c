package config

import "time"

// SchedulerConfig holds the job cadence and daemon lifecycle settings
type SchedulerConfig struct {
	// Per-job intervals; a negative interval disables the job
	Intervals JobIntervalsConfig `mapstructure:"intervals"`

	// Graceful shutdown timeout for in-flight jobs
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Per-sweep throttle in entities per second (0 = unlimited)
	EntitiesPerSecond float64 `mapstructure:"entities_per_second" validate:"min=0"`

	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Unix socket the CLI uses to reach the daemon's scheduler
	SocketPath string `mapstructure:"socket_path" validate:"required"`
}

// JobIntervalsConfig is the firing interval of every simulation job
type JobIntervalsConfig struct {
	NPCProduction        time.Duration `mapstructure:"npc_production"`
	ProductionCompletion time.Duration `mapstructure:"production_completion"`
	FoodAndInjuries      time.Duration `mapstructure:"food_and_injuries"`
	Payroll              time.Duration `mapstructure:"payroll"`
	InjuredWorkers       time.Duration `mapstructure:"injured_workers"`
	DeadWorkerCleanup    time.Duration `mapstructure:"dead_worker_cleanup"`
	MissionExpiry        time.Duration `mapstructure:"mission_expiry"`
	PoolReplenishment    time.Duration `mapstructure:"pool_replenishment"`
}
