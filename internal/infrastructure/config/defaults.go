package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	setDatabaseDefaults(&cfg.Database)
	setSchedulerDefaults(&cfg.Scheduler)
	setSimulationDefaults(&cfg.Simulation)

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}

func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Type == "" {
		db.Type = "postgres"
	}
	if db.Host == "" {
		db.Host = "localhost"
	}
	if db.Port == 0 {
		db.Port = 5432
	}
	if db.User == "" {
		db.User = "carrierplus"
	}
	if db.Name == "" {
		db.Name = "carrierplus"
	}
	if db.SSLMode == "" {
		db.SSLMode = "disable"
	}
	if db.Pool.MaxOpen == 0 {
		db.Pool.MaxOpen = 25
	}
	if db.Pool.MaxIdle == 0 {
		db.Pool.MaxIdle = 5
	}
	if db.Pool.MaxLifetime == 0 {
		db.Pool.MaxLifetime = 5 * time.Minute
	}
}

func setSchedulerDefaults(s *SchedulerConfig) {
	iv := &s.Intervals
	fill := func(d *time.Duration, def time.Duration) {
		if *d == 0 {
			*d = def
		}
	}
	fill(&iv.NPCProduction, 5*time.Minute)
	fill(&iv.ProductionCompletion, time.Minute)
	fill(&iv.FoodAndInjuries, time.Hour)
	fill(&iv.Payroll, time.Hour)
	fill(&iv.InjuredWorkers, 24*time.Hour)
	fill(&iv.DeadWorkerCleanup, 24*time.Hour)
	fill(&iv.MissionExpiry, 15*time.Minute)
	fill(&iv.PoolReplenishment, 6*time.Hour)

	fill(&s.ShutdownTimeout, 30*time.Second)
	if s.PIDFile == "" {
		s.PIDFile = "/tmp/carrierplus-daemon.pid"
	}
	if s.SocketPath == "" {
		s.SocketPath = "/tmp/carrierplus-daemon.sock"
	}
}

func setSimulationDefaults(sim *SimulationConfig) {
	if sim.NPCStockCeiling == 0 {
		sim.NPCStockCeiling = 1000
	}
	if sim.NPCProductionRate == 0 {
		sim.NPCProductionRate = 50
	}
	if sim.BaseInjuryRate == 0 {
		sim.BaseInjuryRate = 0.005
	}
	if sim.InjuryGracePeriod == 0 {
		sim.InjuryGracePeriod = 240 * time.Hour
	}
	if sim.DeadRetention == 0 {
		sim.DeadRetention = 720 * time.Hour
	}
	if sim.DeathPenalty == 0 {
		sim.DeathPenalty = 10000
	}
	if sim.MissionTTL == 0 {
		sim.MissionTTL = 24 * time.Hour
	}
	if sim.PoolResetInterval == 0 {
		sim.PoolResetInterval = 24 * time.Hour
	}
	if sim.FoodCycle == 0 {
		sim.FoodCycle = time.Hour
	}
	if sim.DefaultCountry == "" {
		sim.DefaultCountry = "US"
	}
	if sim.DefaultStats.Speed == 0 {
		sim.DefaultStats.Speed = 50
	}
	if sim.DefaultStats.Resistance == 0 {
		sim.DefaultStats.Resistance = 50
	}
	if sim.DefaultStats.HourlyWage == 0 {
		sim.DefaultStats.HourlyWage = 10
	}
}
