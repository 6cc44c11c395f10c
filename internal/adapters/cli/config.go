package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect the effective configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CP_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			printConfig(cfg)
			return nil
		},
	})

	return cmd
}

func printConfig(cfg *config.Config) {
	fmt.Println("CarrierPlus Configuration")
	fmt.Println("=========================")

	fmt.Println("\nDatabase:")
	fmt.Printf("  Type:     %s\n", cfg.Database.Type)
	if cfg.Database.Type == "sqlite" {
		fmt.Printf("  Path:     %s\n", cfg.Database.Path)
	} else if cfg.Database.URL != "" {
		fmt.Println("  URL:      (set)")
	} else {
		fmt.Printf("  Host:     %s:%d\n", cfg.Database.Host, cfg.Database.Port)
		fmt.Printf("  Name:     %s\n", cfg.Database.Name)
		fmt.Printf("  User:     %s\n", cfg.Database.User)
	}

	iv := cfg.Scheduler.Intervals
	fmt.Println("\nScheduler:")
	fmt.Printf("  npc_production:        %s\n", describeInterval(iv.NPCProduction))
	fmt.Printf("  production_completion: %s\n", describeInterval(iv.ProductionCompletion))
	fmt.Printf("  food_and_injuries:     %s\n", describeInterval(iv.FoodAndInjuries))
	fmt.Printf("  payroll:               %s\n", describeInterval(iv.Payroll))
	fmt.Printf("  injured_workers:       %s\n", describeInterval(iv.InjuredWorkers))
	fmt.Printf("  dead_worker_cleanup:   %s\n", describeInterval(iv.DeadWorkerCleanup))
	fmt.Printf("  mission_expiry:        %s\n", describeInterval(iv.MissionExpiry))
	fmt.Printf("  pool_replenishment:    %s\n", describeInterval(iv.PoolReplenishment))
	fmt.Printf("  shutdown_timeout:      %s\n", cfg.Scheduler.ShutdownTimeout)
	fmt.Printf("  entities_per_second:   %g\n", cfg.Scheduler.EntitiesPerSecond)

	sim := cfg.Simulation
	fmt.Println("\nSimulation:")
	fmt.Printf("  NPC stock ceiling:     %d\n", sim.NPCStockCeiling)
	fmt.Printf("  NPC rate per cycle:    %d\n", sim.NPCProductionRate)
	fmt.Printf("  Base injury rate:      %g\n", sim.BaseInjuryRate)
	fmt.Printf("  Injury grace period:   %s\n", sim.InjuryGracePeriod)
	fmt.Printf("  Death penalty:         %.2f\n", sim.DeathPenalty)
	fmt.Printf("  Dead retention:        %s\n", sim.DeadRetention)
	fmt.Printf("  Mission TTL:           %s\n", sim.MissionTTL)
	fmt.Printf("  Pool reset interval:   %s\n", sim.PoolResetInterval)

	fmt.Println("\nLogging:")
	fmt.Printf("  %s / %s → %s\n", cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	fmt.Println("\nMetrics:")
	if cfg.Metrics.Enabled {
		fmt.Printf("  http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
	} else {
		fmt.Println("  disabled")
	}
}
