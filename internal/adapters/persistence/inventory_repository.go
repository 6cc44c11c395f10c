package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
)

// GormLocationRepository implements inventory.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByOwner returns the location for a company, airport and kind
func (r *GormLocationRepository) FindByOwner(ctx context.Context, owner inventory.Owner) (*inventory.Location, error) {
	var m InventoryLocationModel
	err := conn(ctx, r.db).
		Where("company_id = ? AND airport_ident = ? AND kind = ?", owner.CompanyID, owner.AirportIdent, string(owner.Kind)).
		First(&m).Error
	if err != nil {
		key := fmt.Sprintf("%s/%s/%s", owner.CompanyID, owner.AirportIdent, owner.Kind)
		return nil, fmt.Errorf("failed to find inventory location: %w", notFound(err, "inventory_location", key))
	}
	return &inventory.Location{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		AirportIdent: m.AirportIdent,
		Kind:         inventory.LocationKind(m.Kind),
		Name:         m.Name,
	}, nil
}

// Save upserts the location
func (r *GormLocationRepository) Save(ctx context.Context, loc *inventory.Location) error {
	model := &InventoryLocationModel{
		ID:           loc.ID,
		CompanyID:    loc.CompanyID,
		AirportIdent: loc.AirportIdent,
		Kind:         string(loc.Kind),
		Name:         loc.Name,
	}
	if err := upsert(conn(ctx, r.db), model, "name"); err != nil {
		return fmt.Errorf("failed to save inventory location: %w", err)
	}
	return nil
}

// GormStockRepository implements inventory.StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindForUpdate loads and locks the stock row for an item at a location
func (r *GormStockRepository) FindForUpdate(ctx context.Context, locationID, itemID uuid.UUID) (*inventory.Stock, error) {
	var m StockModel
	err := forUpdate(conn(ctx, r.db)).
		Where("location_id = ? AND item_id = ?", locationID, itemID).
		First(&m).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stock: %w", notFound(err, "stock", locationID.String()+"/"+itemID.String()))
	}
	return inventory.ReconstructStock(m.ID, m.LocationID, m.ItemID, m.Quantity, m.ForSale, m.SalePrice, m.SaleQuantity), nil
}

// Save upserts the stock row
func (r *GormStockRepository) Save(ctx context.Context, s *inventory.Stock) error {
	model := &StockModel{
		ID:           s.ID(),
		LocationID:   s.LocationID(),
		ItemID:       s.ItemID(),
		Quantity:     s.Quantity(),
		ForSale:      s.ForSale(),
		SalePrice:    s.SalePrice(),
		SaleQuantity: s.SaleQuantity(),
	}
	if err := upsert(conn(ctx, r.db), model, "quantity", "for_sale", "sale_price", "sale_quantity", "updated_at"); err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}

// Delete removes the stock row
func (r *GormStockRepository) Delete(ctx context.Context, s *inventory.Stock) error {
	if err := conn(ctx, r.db).Where("id = ?", s.ID()).Delete(&StockModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return nil
}

// GormItemRepository implements inventory.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM item repository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID looks an item up by id
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	return r.find(ctx, "id = ?", id, id.String())
}

// FindByName looks an item up by its unique name
func (r *GormItemRepository) FindByName(ctx context.Context, name string) (*inventory.Item, error) {
	return r.find(ctx, "name = ?", name, name)
}

func (r *GormItemRepository) find(ctx context.Context, cond string, arg interface{}, key string) (*inventory.Item, error) {
	var m ItemModel
	if err := conn(ctx, r.db).Where(cond, arg).First(&m).Error; err != nil {
		return nil, fmt.Errorf("failed to find item: %w", notFound(err, "item", key))
	}
	return &inventory.Item{ID: m.ID, Name: m.Name, Tier: m.Tier, BaseValue: m.BaseValue}, nil
}
