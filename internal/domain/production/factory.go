package production

import (
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
)

// FactoryStatus is the operating state of a factory
type FactoryStatus string

const (
	FactoryStatusIdle        FactoryStatus = "idle"
	FactoryStatusProducing   FactoryStatus = "producing"
	FactoryStatusMaintenance FactoryStatus = "maintenance"
	FactoryStatusOffline     FactoryStatus = "offline"
)

// NPCTier marks system-owned extraction factories
const NPCTier = 0

var factoryTransitions = shared.TransitionTable[FactoryStatus]{
	FactoryStatusIdle:        {FactoryStatusProducing, FactoryStatusMaintenance, FactoryStatusOffline},
	FactoryStatusProducing:   {FactoryStatusIdle},
	FactoryStatusMaintenance: {FactoryStatusIdle},
	FactoryStatusOffline:     {FactoryStatusIdle},
}

// Factory is a production site owned by a company at an airport.
// A producing factory has exactly one open batch.
type Factory struct {
	id                     uuid.UUID
	companyID              uuid.UUID
	name                   string
	airportIdent           string
	tier                   int
	status                 FactoryStatus
	isActive               bool
	maxWorkers             int
	maxEngineers           int
	foodStock              int
	foodCapacity           int
	foodConsumptionPerHour int
	foodTier               int
	hasFood                bool
	lastFoodTickAt         *time.Time
	currentRecipeID        *uuid.UUID
}

// FactoryData carries persisted factory state into ReconstructFactory
type FactoryData struct {
	ID                     uuid.UUID
	CompanyID              uuid.UUID
	Name                   string
	AirportIdent           string
	Tier                   int
	Status                 FactoryStatus
	IsActive               bool
	MaxWorkers             int
	MaxEngineers           int
	FoodStock              int
	FoodCapacity           int
	FoodConsumptionPerHour int
	FoodTier               int
	HasFood                bool
	LastFoodTickAt         *time.Time
	CurrentRecipeID        *uuid.UUID
}

// NewFactory creates an idle, active factory with default capacities
func NewFactory(companyID uuid.UUID, name, airportIdent string, tier int) *Factory {
	return &Factory{
		id:           uuid.New(),
		companyID:    companyID,
		name:         name,
		airportIdent: airportIdent,
		tier:         tier,
		status:       FactoryStatusIdle,
		isActive:     true,
		maxWorkers:   10,
		maxEngineers: 2,
		foodCapacity: 100,
		hasFood:      true,
	}
}

// ReconstructFactory rebuilds a factory from persistence
func ReconstructFactory(d FactoryData) *Factory {
	return &Factory{
		id:                     d.ID,
		companyID:              d.CompanyID,
		name:                   d.Name,
		airportIdent:           d.AirportIdent,
		tier:                   d.Tier,
		status:                 d.Status,
		isActive:               d.IsActive,
		maxWorkers:             d.MaxWorkers,
		maxEngineers:           d.MaxEngineers,
		foodStock:              d.FoodStock,
		foodCapacity:           d.FoodCapacity,
		foodConsumptionPerHour: d.FoodConsumptionPerHour,
		foodTier:               d.FoodTier,
		hasFood:                d.HasFood,
		lastFoodTickAt:         d.LastFoodTickAt,
		currentRecipeID:        d.CurrentRecipeID,
	}
}

// Snapshot exports the factory state for persistence
func (f *Factory) Snapshot() FactoryData {
	return FactoryData{
		ID:                     f.id,
		CompanyID:              f.companyID,
		Name:                   f.name,
		AirportIdent:           f.airportIdent,
		Tier:                   f.tier,
		Status:                 f.status,
		IsActive:               f.isActive,
		MaxWorkers:             f.maxWorkers,
		MaxEngineers:           f.maxEngineers,
		FoodStock:              f.foodStock,
		FoodCapacity:           f.foodCapacity,
		FoodConsumptionPerHour: f.foodConsumptionPerHour,
		FoodTier:               f.foodTier,
		HasFood:                f.hasFood,
		LastFoodTickAt:         f.lastFoodTickAt,
		CurrentRecipeID:        f.currentRecipeID,
	}
}

func (f *Factory) ID() uuid.UUID               { return f.id }
func (f *Factory) CompanyID() uuid.UUID        { return f.companyID }
func (f *Factory) Name() string                { return f.name }
func (f *Factory) AirportIdent() string        { return f.airportIdent }
func (f *Factory) Tier() int                   { return f.tier }
func (f *Factory) Status() FactoryStatus       { return f.status }
func (f *Factory) IsActive() bool              { return f.isActive }
func (f *Factory) FoodStock() int              { return f.foodStock }
func (f *Factory) FoodCapacity() int           { return f.foodCapacity }
func (f *Factory) FoodConsumptionPerHour() int { return f.foodConsumptionPerHour }
func (f *Factory) FoodTier() int               { return f.foodTier }
func (f *Factory) HasFood() bool               { return f.hasFood }
func (f *Factory) CurrentRecipeID() *uuid.UUID { return f.currentRecipeID }
func (f *Factory) IsNPC() bool                 { return f.tier == NPCTier }

// StartProducing moves an idle factory to producing with the given recipe
func (f *Factory) StartProducing(recipeID uuid.UUID) error {
	if err := f.transition(FactoryStatusProducing); err != nil {
		return err
	}
	f.currentRecipeID = &recipeID
	return nil
}

// FinishProducing returns a producing factory to idle.
// It reports false when the factory was not producing.
func (f *Factory) FinishProducing() bool {
	if f.status != FactoryStatusProducing {
		return false
	}
	f.status = FactoryStatusIdle
	f.currentRecipeID = nil
	return true
}

func (f *Factory) transition(to FactoryStatus) error {
	if err := factoryTransitions.Check("factory", f.id.String(), f.status, to); err != nil {
		return err
	}
	f.status = to
	return nil
}

// SetFoodStock sets the stored food, bounded by the factory's capacity
func (f *Factory) SetFoodStock(units int) {
	if units < 0 {
		units = 0
	}
	if f.foodCapacity > 0 && units > f.foodCapacity {
		units = f.foodCapacity
	}
	f.foodStock = units
}

// FoodCycleDue reports whether a food cycle should run at now. A run that
// lands within a tenth of a cycle before the nominal boundary still counts,
// so timer jitter on a job firing once per cycle never drops a cycle.
func (f *Factory) FoodCycleDue(now time.Time, cycle time.Duration) bool {
	if f.lastFoodTickAt == nil {
		return true
	}
	return !now.Before(f.lastFoodTickAt.Add(cycle - cycle/10))
}

// ElapsedSinceFoodTick is the time covered by a food cycle at now, bounded
// by maxElapsed. A factory that never ran a cycle covers one default cycle.
func (f *Factory) ElapsedSinceFoodTick(now time.Time, defaultCycle, maxElapsed time.Duration) time.Duration {
	if f.lastFoodTickAt == nil {
		return defaultCycle
	}
	elapsed := now.Sub(*f.lastFoodTickAt)
	if elapsed > maxElapsed {
		return maxElapsed
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ConsumeFood feeds the active workers for the elapsed time. Required units
// are ceil(workers × hours). When stock falls short it is zeroed and the
// factory is marked unfed. Returns the units consumed.
func (f *Factory) ConsumeFood(activeWorkers int, elapsed time.Duration, now time.Time) int {
	f.foodConsumptionPerHour = activeWorkers
	f.lastFoodTickAt = &now

	required := FoodRequired(activeWorkers, elapsed)
	if f.foodStock >= required {
		f.foodStock -= required
		f.hasFood = true
		return required
	}

	consumed := f.foodStock
	f.foodStock = 0
	f.hasFood = false
	return consumed
}

// FoodRequired is ceil(workers × elapsed hours), computed on whole minutes
func FoodRequired(workers int, elapsed time.Duration) int {
	if workers <= 0 || elapsed <= 0 {
		return 0
	}
	minutes := int(elapsed / time.Minute)
	return (workers*minutes + 59) / 60
}
