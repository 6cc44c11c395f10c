package inventory

import (
	"context"

	"github.com/google/uuid"
)

// LocationRepository persists inventory locations
type LocationRepository interface {
	FindByOwner(ctx context.Context, owner Owner) (*Location, error)
	Save(ctx context.Context, location *Location) error
}

// StockRepository persists stock rows
type StockRepository interface {
	// FindForUpdate loads and locks the stock row for an item at a location
	FindForUpdate(ctx context.Context, locationID, itemID uuid.UUID) (*Stock, error)
	Save(ctx context.Context, stock *Stock) error
	Delete(ctx context.Context, stock *Stock) error
}

// ItemRepository reads the item catalog
type ItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByName(ctx context.Context, name string) (*Item, error)
}
