package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a catalog entry for a tradable good
type Item struct {
	ID        uuid.UUID
	Name      string
	Tier      int
	BaseValue decimal.Decimal
}
