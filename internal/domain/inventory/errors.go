package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned when a reservation exceeds the available quantity
type ErrInsufficientStock struct {
	ItemID    uuid.UUID
	Requested int
	Available int
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock of item %s: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}
