package config

import "time"

// SimulationConfig holds the tunable rules of the simulation
type SimulationConfig struct {
	// System company owning NPC factories and warehouses (empty = built-in id)
	NPCCompanyID string `mapstructure:"npc_company_id" validate:"omitempty,uuid"`

	NPCStockCeiling   int `mapstructure:"npc_stock_ceiling" validate:"min=1"`
	NPCProductionRate int `mapstructure:"npc_production_rate" validate:"min=1"`

	// Hourly injury probability before resistance and food modifiers
	BaseInjuryRate    float64       `mapstructure:"base_injury_rate" validate:"min=0,max=1"`
	InjuryGracePeriod time.Duration `mapstructure:"injury_grace_period" validate:"required"`
	DeadRetention     time.Duration `mapstructure:"dead_retention" validate:"required"`
	DeathPenalty      float64       `mapstructure:"death_penalty" validate:"min=0"`

	MissionTTL        time.Duration `mapstructure:"mission_ttl" validate:"required"`
	PoolResetInterval time.Duration `mapstructure:"pool_reset_interval" validate:"required"`
	FoodCycle         time.Duration `mapstructure:"food_cycle" validate:"required"`

	// Country used for pool generation when an airport has none
	DefaultCountry string             `mapstructure:"default_country" validate:"required,len=2"`
	DefaultStats   CountryStatsConfig `mapstructure:"default_stats"`

	// Seed for simulation draws (0 = seeded from the clock)
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// CountryStatsConfig are fallback base stats for worker generation
type CountryStatsConfig struct {
	Speed      int     `mapstructure:"speed" validate:"min=1,max=100"`
	Resistance int     `mapstructure:"resistance" validate:"min=1,max=100"`
	HourlyWage float64 `mapstructure:"hourly_wage" validate:"min=0"`
}
