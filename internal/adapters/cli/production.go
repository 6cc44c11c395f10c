package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	productionCommands "github.com/andrescamacho/carrierplus-go/internal/application/production/commands"
)

// NewProductionCommand creates the production command with subcommands
func NewProductionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "production",
		Short: "Start or cancel factory batches",
	}

	cmd.AddCommand(newProductionStartCommand())
	cmd.AddCommand(newProductionCancelCommand())

	return cmd
}

func newProductionStartCommand() *cobra.Command {
	var factoryID, recipeID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a batch at an idle factory",
		Long: `Reserve the recipe's ingredients from the owner's storage at the factory
airport and open a batch. The production_completion job finishes it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := uuid.Parse(factoryID)
			if err != nil {
				return fmt.Errorf("invalid --factory: %w", err)
			}
			recipe, err := uuid.Parse(recipeID)
			if err != nil {
				return fmt.Errorf("invalid --recipe: %w", err)
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			eng, err := s.engine()
			if err != nil {
				return err
			}

			result, err := eng.Mediator().Send(context.Background(), &productionCommands.StartProductionCommand{
				FactoryID: factory,
				RecipeID:  recipe,
			})
			if err != nil {
				return fmt.Errorf("failed to start production: %w", err)
			}

			resp := result.(*productionCommands.StartProductionResponse)
			fmt.Printf("✓ Batch %s started\n", resp.BatchID)
			fmt.Printf("  Estimated completion: %s\n", resp.EstimatedCompletion.Format("2006-01-02 15:04:05 MST"))
			if resp.EngineerBonus {
				fmt.Println("  Engineer bonus applied")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&factoryID, "factory", "", "Factory ID [required]")
	cmd.Flags().StringVar(&recipeID, "recipe", "", "Recipe ID [required]")
	_ = cmd.MarkFlagRequired("factory")
	_ = cmd.MarkFlagRequired("recipe")

	return cmd
}

func newProductionCancelCommand() *cobra.Command {
	var factoryID string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a factory's open batch and release its ingredients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := uuid.Parse(factoryID)
			if err != nil {
				return fmt.Errorf("invalid --factory: %w", err)
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			eng, err := s.engine()
			if err != nil {
				return err
			}

			result, err := eng.Mediator().Send(context.Background(), &productionCommands.CancelProductionCommand{FactoryID: factory})
			if err != nil {
				return fmt.Errorf("failed to cancel production: %w", err)
			}
			fmt.Printf("✓ Batch %s cancelled\n", result.(*productionCommands.CancelProductionResponse).BatchID)
			return nil
		},
	}

	cmd.Flags().StringVar(&factoryID, "factory", "", "Factory ID [required]")
	_ = cmd.MarkFlagRequired("factory")

	return cmd
}
