package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
)

// GormRecipeRepository implements production.RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID loads a recipe with its ingredients
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Recipe, error) {
	var model RecipeModel
	err := conn(ctx, r.db).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("item_id") }).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recipe: %w", notFound(err, "recipe", id.String()))
	}

	recipe := &production.Recipe{
		ID:                  model.ID,
		Name:                model.Name,
		Tier:                model.Tier,
		ResultItemID:        model.ResultItemID,
		ResultQuantity:      model.ResultQuantity,
		ProductionTimeHours: model.ProductionTimeHours,
		Ingredients:         make([]production.Ingredient, len(model.Ingredients)),
	}
	for i, ing := range model.Ingredients {
		recipe.Ingredients[i] = production.Ingredient{ItemID: ing.ItemID, Quantity: ing.Quantity}
	}
	return recipe, nil
}

// Create stores a recipe and its ingredients
func (r *GormRecipeRepository) Create(ctx context.Context, recipe *production.Recipe) error {
	model := &RecipeModel{
		ID:                  recipe.ID,
		Name:                recipe.Name,
		Tier:                recipe.Tier,
		ResultItemID:        recipe.ResultItemID,
		ResultQuantity:      recipe.ResultQuantity,
		ProductionTimeHours: recipe.ProductionTimeHours,
	}
	for _, ing := range recipe.Ingredients {
		model.Ingredients = append(model.Ingredients, RecipeIngredientModel{
			RecipeID: recipe.ID,
			ItemID:   ing.ItemID,
			Quantity: ing.Quantity,
		})
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}
	return nil
}
