package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/database"
)

// NewDatabaseCommand creates the db command
func NewDatabaseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the simulation tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := database.AutoMigrate(s.db); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Printf("✓ %s database migrated\n", s.cfg.Database.Type)
			return nil
		},
	})

	return cmd
}
