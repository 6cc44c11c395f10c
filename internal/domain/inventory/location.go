package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// LocationKind distinguishes company storage from system warehouses
type LocationKind string

const (
	LocationKindCompany   LocationKind = "company"
	LocationKindWarehouse LocationKind = "warehouse"
)

// Owner identifies the stock holder at an airport
type Owner struct {
	CompanyID    uuid.UUID
	AirportIdent string
	Kind         LocationKind
}

// CompanyAt is the owner key for a company's storage at an airport
func CompanyAt(companyID uuid.UUID, airportIdent string) Owner {
	return Owner{CompanyID: companyID, AirportIdent: airportIdent, Kind: LocationKindCompany}
}

// WarehouseAt is the owner key for a system warehouse at an airport
func WarehouseAt(companyID uuid.UUID, airportIdent string) Owner {
	return Owner{CompanyID: companyID, AirportIdent: airportIdent, Kind: LocationKindWarehouse}
}

// Location is a place where a company keeps stock
type Location struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	AirportIdent string
	Kind         LocationKind
	Name         string
}

// NewLocation creates the location for an owner key
func NewLocation(owner Owner) *Location {
	name := fmt.Sprintf("Storage %s", owner.AirportIdent)
	if owner.Kind == LocationKindWarehouse {
		name = fmt.Sprintf("NPC Warehouse %s", owner.AirportIdent)
	}
	return &Location{
		ID:           uuid.New(),
		CompanyID:    owner.CompanyID,
		AirportIdent: owner.AirportIdent,
		Kind:         owner.Kind,
		Name:         name,
	}
}
