package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// Keeper owns the stock rules shared by every processor: credit (create the
// row on demand), reserve, release and zero-collapse. Callers run it inside
// their own transaction.
type Keeper struct {
	locations LocationRepository
	stocks    StockRepository
}

// NewKeeper creates a stock keeper
func NewKeeper(locations LocationRepository, stocks StockRepository) *Keeper {
	return &Keeper{locations: locations, stocks: stocks}
}

// EnsureLocation returns the owner's location, creating it when absent
func (k *Keeper) EnsureLocation(ctx context.Context, owner Owner) (*Location, error) {
	location, err := k.locations.FindByOwner(ctx, owner)
	if err == nil {
		return location, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}

	location = NewLocation(owner)
	if err := k.locations.Save(ctx, location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return location, nil
}

// Open returns the locked stock row for an item at the owner's location,
// creating an empty row when absent. Empty rows are not persisted until saved.
func (k *Keeper) Open(ctx context.Context, owner Owner, itemID uuid.UUID) (*Stock, error) {
	location, err := k.EnsureLocation(ctx, owner)
	if err != nil {
		return nil, err
	}

	stock, err := k.stocks.FindForUpdate(ctx, location.ID, itemID)
	if err == nil {
		return stock, nil
	}
	if !shared.IsNotFound(err) {
		return nil, err
	}
	return NewStock(location.ID, itemID), nil
}

// Credit adds units of an item to the owner's stock
func (k *Keeper) Credit(ctx context.Context, owner Owner, itemID uuid.UUID, quantity int) (*Stock, error) {
	stock, err := k.Open(ctx, owner, itemID)
	if err != nil {
		return nil, err
	}
	if err := stock.Credit(quantity); err != nil {
		return nil, err
	}
	if err := k.stocks.Save(ctx, stock); err != nil {
		return nil, fmt.Errorf("failed to save stock: %w", err)
	}
	return stock, nil
}

// Reserve removes units of an item from the owner's stock and collapses the
// row when it empties
func (k *Keeper) Reserve(ctx context.Context, owner Owner, itemID uuid.UUID, quantity int) error {
	location, err := k.locations.FindByOwner(ctx, owner)
	if err != nil {
		if shared.IsNotFound(err) {
			return &ErrInsufficientStock{ItemID: itemID, Requested: quantity}
		}
		return err
	}

	stock, err := k.stocks.FindForUpdate(ctx, location.ID, itemID)
	if err != nil {
		if shared.IsNotFound(err) {
			return &ErrInsufficientStock{ItemID: itemID, Requested: quantity}
		}
		return err
	}

	if err := stock.Reserve(quantity); err != nil {
		return err
	}
	return k.ZeroCollapse(ctx, stock)
}

// Release returns reserved units to the owner's stock
func (k *Keeper) Release(ctx context.Context, owner Owner, itemID uuid.UUID, quantity int) error {
	_, err := k.Credit(ctx, owner, itemID, quantity)
	return err
}

// ZeroCollapse persists the stock row, deleting it when empty
func (k *Keeper) ZeroCollapse(ctx context.Context, stock *Stock) error {
	if stock.IsEmpty() {
		if err := k.stocks.Delete(ctx, stock); err != nil {
			return fmt.Errorf("failed to collapse empty stock: %w", err)
		}
		return nil
	}
	if err := k.stocks.Save(ctx, stock); err != nil {
		return fmt.Errorf("failed to save stock: %w", err)
	}
	return nil
}

// Save persists a stock row as is
func (k *Keeper) Save(ctx context.Context, stock *Stock) error {
	return k.stocks.Save(ctx, stock)
}
