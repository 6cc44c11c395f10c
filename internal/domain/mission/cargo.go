package mission

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// CargoLine is one item captured in a mission's payload
type CargoLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemName string    `json:"item_name"`
	Quantity int       `json:"quantity"`
	WeightKg float64   `json:"weight_kg"`
}

// CargoSnapshot is the payload recorded at departure
type CargoSnapshot struct {
	Items []CargoLine `json:"items"`
}

// TotalQuantity sums the quantities of every line
func (c CargoSnapshot) TotalQuantity() int {
	total := 0
	for _, l := range c.Items {
		total += l.Quantity
	}
	return total
}

// MarshalCargo encodes a snapshot for storage
func MarshalCargo(c CargoSnapshot) (string, error) {
	if c.Items == nil {
		c.Items = []CargoLine{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cargo snapshot: %w", err)
	}
	return string(b), nil
}

// UnmarshalCargo decodes a stored snapshot; an empty string is an empty snapshot
func UnmarshalCargo(raw string) (CargoSnapshot, error) {
	var c CargoSnapshot
	if raw == "" {
		return c, nil
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return c, fmt.Errorf("failed to unmarshal cargo snapshot: %w", err)
	}
	return c, nil
}
