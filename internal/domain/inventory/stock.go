package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is the quantity of one item held at one inventory location.
// A stock row whose quantity reaches zero is collapsed (removed) by the keeper.
type Stock struct {
	id           uuid.UUID
	locationID   uuid.UUID
	itemID       uuid.UUID
	quantity     int
	forSale      bool
	salePrice    decimal.Decimal
	saleQuantity int
}

// NewStock creates an empty stock row for an item at a location
func NewStock(locationID, itemID uuid.UUID) *Stock {
	return &Stock{
		id:         uuid.New(),
		locationID: locationID,
		itemID:     itemID,
		salePrice:  decimal.Zero,
	}
}

// ReconstructStock rebuilds a stock row from persistence
func ReconstructStock(
	id, locationID, itemID uuid.UUID,
	quantity int,
	forSale bool,
	salePrice decimal.Decimal,
	saleQuantity int,
) *Stock {
	return &Stock{
		id:           id,
		locationID:   locationID,
		itemID:       itemID,
		quantity:     quantity,
		forSale:      forSale,
		salePrice:    salePrice,
		saleQuantity: saleQuantity,
	}
}

func (s *Stock) ID() uuid.UUID              { return s.id }
func (s *Stock) LocationID() uuid.UUID      { return s.locationID }
func (s *Stock) ItemID() uuid.UUID          { return s.itemID }
func (s *Stock) Quantity() int              { return s.quantity }
func (s *Stock) ForSale() bool              { return s.forSale }
func (s *Stock) SalePrice() decimal.Decimal { return s.salePrice }
func (s *Stock) SaleQuantity() int          { return s.saleQuantity }

// IsEmpty reports whether the row should be collapsed
func (s *Stock) IsEmpty() bool {
	return s.quantity <= 0
}

// Credit adds units to the stock
func (s *Stock) Credit(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("credit quantity must be positive, got %d", quantity)
	}
	s.quantity += quantity
	return nil
}

// Reserve removes units from the stock. The sale offer never exceeds what is left.
func (s *Stock) Reserve(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("reserve quantity must be positive, got %d", quantity)
	}
	if quantity > s.quantity {
		return &ErrInsufficientStock{ItemID: s.itemID, Requested: quantity, Available: s.quantity}
	}
	s.quantity -= quantity
	if s.saleQuantity > s.quantity {
		s.saleQuantity = s.quantity
	}
	if s.quantity == 0 {
		s.forSale = false
	}
	return nil
}

// Release returns previously reserved units
func (s *Stock) Release(quantity int) error {
	return s.Credit(quantity)
}

// CreditUpTo adds at most quantity units without exceeding ceiling and
// returns how many were added (zero when already at or above the ceiling).
func (s *Stock) CreditUpTo(quantity, ceiling int) int {
	if s.quantity >= ceiling || quantity <= 0 {
		return 0
	}
	added := quantity
	if room := ceiling - s.quantity; room < added {
		added = room
	}
	s.quantity += added
	return added
}

// OfferForSale lists the whole stock at the given unit price
func (s *Stock) OfferForSale(price decimal.Decimal) {
	s.forSale = true
	s.salePrice = price
	s.saleQuantity = s.quantity
}
