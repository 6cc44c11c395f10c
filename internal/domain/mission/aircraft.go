package mission

import "github.com/google/uuid"

// AircraftStatus is where an aircraft stands operationally
type AircraftStatus string

const (
	AircraftStatusStored      AircraftStatus = "stored"
	AircraftStatusParked      AircraftStatus = "parked"
	AircraftStatusInFlight    AircraftStatus = "in_flight"
	AircraftStatusMaintenance AircraftStatus = "maintenance"
)

// Aircraft is a company-owned airframe
type Aircraft struct {
	ID             uuid.UUID
	CompanyID      uuid.UUID
	Registration   string
	Status         AircraftStatus
	CurrentAirport string
}

// Park sets the aircraft on the ground where it is
func (a *Aircraft) Park() {
	a.Status = AircraftStatusParked
}
