package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// GormFactoryRepository implements production.FactoryRepository using GORM
type GormFactoryRepository struct {
	db *gorm.DB
}

// NewGormFactoryRepository creates a new GORM factory repository
func NewGormFactoryRepository(db *gorm.DB) *GormFactoryRepository {
	return &GormFactoryRepository{db: db}
}

// FindByID loads a factory without locking it
func (r *GormFactoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*production.Factory, error) {
	return r.find(conn(ctx, r.db), id)
}

// FindForUpdate loads a factory and locks its row
func (r *GormFactoryRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*production.Factory, error) {
	return r.find(forUpdate(conn(ctx, r.db)), id)
}

func (r *GormFactoryRepository) find(db *gorm.DB, id uuid.UUID) (*production.Factory, error) {
	var model FactoryModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to find factory: %w", notFound(err, "factory", id.String()))
	}
	return modelToFactory(&model), nil
}

// ListNPCProducingIDs returns active Tier-0 factories that are producing
func (r *GormFactoryRepository) ListNPCProducingIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&FactoryModel{}).
		Where("tier = ? AND is_active = ? AND status = ?",
			production.NPCTier, true, string(production.FactoryStatusProducing)).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list NPC factories: %w", err)
	}
	return ids, nil
}

// ListStaffedIDs returns active player factories with at least one working worker
func (r *GormFactoryRepository) ListStaffedIDs(ctx context.Context) ([]uuid.UUID, error) {
	staffed := conn(ctx, r.db).Model(&WorkerModel{}).
		Select("1").
		Where("workers.factory_id = factories.id AND workers.status = ?", string(workforce.StatusWorking))

	var ids []uuid.UUID
	err := conn(ctx, r.db).Model(&FactoryModel{}).
		Where("tier > ? AND is_active = ?", production.NPCTier, true).
		Where("EXISTS (?)", staffed).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staffed factories: %w", err)
	}
	return ids, nil
}

// Save upserts the factory
func (r *GormFactoryRepository) Save(ctx context.Context, factory *production.Factory) error {
	model := factoryToModel(factory)
	err := upsert(conn(ctx, r.db), model,
		"company_id", "name", "airport_ident", "tier", "status", "is_active",
		"max_workers", "max_engineers", "food_stock", "food_capacity",
		"food_consumption_per_hour", "food_tier", "has_food", "last_food_tick_at",
		"current_recipe_id", "updated_at",
	)
	if err != nil {
		return fmt.Errorf("failed to save factory: %w", err)
	}
	return nil
}

func modelToFactory(m *FactoryModel) *production.Factory {
	return production.ReconstructFactory(production.FactoryData{
		ID:                     m.ID,
		CompanyID:              m.CompanyID,
		Name:                   m.Name,
		AirportIdent:           m.AirportIdent,
		Tier:                   m.Tier,
		Status:                 production.FactoryStatus(m.Status),
		IsActive:               m.IsActive,
		MaxWorkers:             m.MaxWorkers,
		MaxEngineers:           m.MaxEngineers,
		FoodStock:              m.FoodStock,
		FoodCapacity:           m.FoodCapacity,
		FoodConsumptionPerHour: m.FoodConsumptionPerHour,
		FoodTier:               m.FoodTier,
		HasFood:                m.HasFood,
		LastFoodTickAt:         utcPtr(m.LastFoodTickAt),
		CurrentRecipeID:        m.CurrentRecipeID,
	})
}

func factoryToModel(f *production.Factory) *FactoryModel {
	d := f.Snapshot()
	return &FactoryModel{
		ID:                     d.ID,
		CompanyID:              d.CompanyID,
		Name:                   d.Name,
		AirportIdent:           d.AirportIdent,
		Tier:                   d.Tier,
		Status:                 string(d.Status),
		IsActive:               d.IsActive,
		MaxWorkers:             d.MaxWorkers,
		MaxEngineers:           d.MaxEngineers,
		FoodStock:              d.FoodStock,
		FoodCapacity:           d.FoodCapacity,
		FoodConsumptionPerHour: d.FoodConsumptionPerHour,
		FoodTier:               d.FoodTier,
		HasFood:                d.HasFood,
		LastFoodTickAt:         d.LastFoodTickAt,
		CurrentRecipeID:        d.CurrentRecipeID,
	}
}
