package helpers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/persistence"
	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/internal/domain/mission"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// Epoch is the simulated "now" every fixture world starts at
var Epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// World bundles a database, its repositories and a controllable clock.
// Seed methods panic on failure so they can be used from both tests and
// BDD steps.
type World struct {
	DB    *gorm.DB
	Repos setup.Repositories
	Clock *shared.MockClock
}

// NewWorld wires repositories over db with a clock at Epoch
func NewWorld(db *gorm.DB) *World {
	return &World{
		DB:    db,
		Repos: persistence.NewRepositories(db),
		Clock: shared.NewMockClock(Epoch),
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Company creates a company with the given balance
func (w *World) Company(name string, balance float64) uuid.UUID {
	company, err := ledger.NewCompany(uuid.New(), name, decimal.NewFromFloat(balance))
	must(err)
	must(w.Repos.Companies.Save(context.Background(), company))
	return company.ID()
}

// NPCCompany creates the system company that owns Tier-0 factories
func (w *World) NPCCompany() uuid.UUID {
	company := ledger.ReconstructCompany(setup.NPCCompanyID, "World Market", decimal.Zero)
	must(w.Repos.Companies.Save(context.Background(), company))
	return company.ID()
}

// Balance reads a company's current balance
func (w *World) Balance(companyID uuid.UUID) decimal.Decimal {
	var m persistence.CompanyModel
	must(w.DB.First(&m, "id = ?", companyID).Error)
	return m.Balance
}

// Airport registers an airport in a country
func (w *World) Airport(ident, country string) {
	must(w.DB.Create(&persistence.AirportModel{Ident: ident, Name: ident, IsoCountry: country}).Error)
}

// CountryStats registers base worker stats for a country
func (w *World) CountryStats(country string, speed, resistance int, wage float64) {
	must(w.DB.Create(&persistence.CountryWorkerStatsModel{
		CountryCode:    country,
		BaseSpeed:      speed,
		BaseResistance: resistance,
		BaseHourlyWage: decimal.NewFromFloat(wage),
	}).Error)
}

// Item adds a catalog item
func (w *World) Item(name string, tier int, baseValue float64) uuid.UUID {
	id := uuid.New()
	must(w.DB.Create(&persistence.ItemModel{
		ID:        id,
		Name:      name,
		Tier:      tier,
		BaseValue: decimal.NewFromFloat(baseValue),
	}).Error)
	return id
}

// FactoryOptions customize Factory
type FactoryOptions struct {
	Tier      int
	Status    production.FactoryStatus
	Inactive  bool
	FoodStock int
	HasFood   *bool
	LastFedAt *time.Time
	RecipeID  *uuid.UUID
}

// Factory creates a factory owned by companyID at airport
func (w *World) Factory(companyID uuid.UUID, name, airport string, opts FactoryOptions) uuid.UUID {
	status := opts.Status
	if status == "" {
		status = production.FactoryStatusIdle
	}
	hasFood := true
	if opts.HasFood != nil {
		hasFood = *opts.HasFood
	}
	factory := production.ReconstructFactory(production.FactoryData{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Name:            name,
		AirportIdent:    airport,
		Tier:            opts.Tier,
		Status:          status,
		IsActive:        !opts.Inactive,
		MaxWorkers:      10,
		MaxEngineers:    2,
		FoodStock:       opts.FoodStock,
		FoodCapacity:    1000,
		HasFood:         hasFood,
		LastFoodTickAt:  opts.LastFedAt,
		CurrentRecipeID: opts.RecipeID,
	})
	must(w.Repos.Factories.Save(context.Background(), factory))
	return factory.ID()
}

// LoadFactory loads a factory
func (w *World) LoadFactory(id uuid.UUID) *production.Factory {
	f, err := w.Repos.Factories.FindByID(context.Background(), id)
	must(err)
	return f
}

// Recipe creates a recipe producing quantity units of resultItem
func (w *World) Recipe(name string, tier int, resultItem uuid.UUID, quantity int, hours float64, ingredients ...production.Ingredient) uuid.UUID {
	recipe := &production.Recipe{
		ID:                  uuid.New(),
		Name:                name,
		Tier:                tier,
		ResultItemID:        resultItem,
		ResultQuantity:      quantity,
		ProductionTimeHours: hours,
		Ingredients:         ingredients,
	}
	repo := persistence.NewGormRecipeRepository(w.DB)
	must(repo.Create(context.Background(), recipe))
	return recipe.ID
}

// Batch creates an in-progress batch that started at startedAt and runs for duration
func (w *World) Batch(factoryID, recipeID uuid.UUID, quantity int, startedAt time.Time, duration time.Duration, engineerBonus bool) uuid.UUID {
	batch := production.NewBatch(factoryID, recipeID, quantity, startedAt)
	must(batch.Start(startedAt, duration, 0, engineerBonus))
	must(w.Repos.Batches.Save(context.Background(), batch))
	return batch.ID()
}

// LoadBatch reads a batch
func (w *World) LoadBatch(id uuid.UUID) *production.Batch {
	var batch *production.Batch
	must(w.Repos.Transactor.WithinTransaction(context.Background(), func(ctx context.Context) error {
		var err error
		batch, err = w.Repos.Batches.FindForUpdate(ctx, id)
		return err
	}))
	return batch
}

// WorkerOptions customize Worker
type WorkerOptions struct {
	Kind       workforce.Kind
	EmployerID *uuid.UUID
	FactoryID  *uuid.UUID
	Airport    string
	Status     workforce.Status
	Resistance int
	Speed      int
	Wage       float64
	XP         int
	InjuredAt  *time.Time
	DiedAt     *time.Time
}

// Worker creates a worker with the given state
func (w *World) Worker(opts WorkerOptions) uuid.UUID {
	kind := opts.Kind
	if kind == "" {
		kind = workforce.KindWorker
	}
	status := opts.Status
	if status == "" {
		status = workforce.StatusAvailable
		if opts.FactoryID != nil {
			status = workforce.StatusWorking
		}
	}
	airport := opts.Airport
	if airport == "" {
		airport = "LFPG"
	}
	speed := opts.Speed
	if speed == 0 {
		speed = 50
	}
	resistance := opts.Resistance
	if resistance == 0 {
		resistance = 50
	}

	worker := workforce.ReconstructWorker(workforce.WorkerData{
		ID:           uuid.New(),
		EmployerID:   opts.EmployerID,
		AirportIdent: airport,
		FactoryID:    opts.FactoryID,
		CountryCode:  "FR",
		Kind:         kind,
		FirstName:    "Test",
		LastName:     fmt.Sprintf("Worker-%s", kind),
		Speed:        speed,
		Resistance:   resistance,
		XP:           opts.XP,
		Tier:         workforce.TierForXP(opts.XP),
		HourlyWage:   decimal.NewFromFloat(opts.Wage),
		Status:       status,
		InjuredAt:    opts.InjuredAt,
		DiedAt:       opts.DiedAt,
		CreatedAt:    w.Clock.Now(),
	})
	must(w.Repos.Workers.Create(context.Background(), worker))
	return worker.ID()
}

// LoadWorker reads a worker, returning nil when it no longer exists
func (w *World) LoadWorker(id uuid.UUID) *workforce.Worker {
	var worker *workforce.Worker
	err := w.Repos.Transactor.WithinTransaction(context.Background(), func(ctx context.Context) error {
		var err error
		worker, err = w.Repos.Workers.FindForUpdate(ctx, id)
		return err
	})
	if shared.IsNotFound(err) {
		return nil
	}
	must(err)
	return worker
}

// CountWorkers counts workers matching a condition, e.g. "airport_ident = ?"
func (w *World) CountWorkers(query string, args ...interface{}) int64 {
	var n int64
	must(w.DB.Model(&persistence.WorkerModel{}).Where(query, args...).Count(&n).Error)
	return n
}

// Stock sets the quantity of an item held by owner
func (w *World) Stock(owner inventory.Owner, itemID uuid.UUID, quantity int) {
	keeper := inventory.NewKeeper(w.Repos.Locations, w.Repos.Stocks)
	must(w.Repos.Transactor.WithinTransaction(context.Background(), func(ctx context.Context) error {
		_, err := keeper.Credit(ctx, owner, itemID, quantity)
		return err
	}))
}

// StockOf returns the stock row of an item held by owner, or nil when absent
func (w *World) StockOf(owner inventory.Owner, itemID uuid.UUID) *inventory.Stock {
	ctx := context.Background()
	location, err := w.Repos.Locations.FindByOwner(ctx, owner)
	if shared.IsNotFound(err) {
		return nil
	}
	must(err)
	stock, err := w.Repos.Stocks.FindForUpdate(ctx, location.ID, itemID)
	if shared.IsNotFound(err) {
		return nil
	}
	must(err)
	return stock
}

// QuantityOf returns how many units of an item owner holds
func (w *World) QuantityOf(owner inventory.Owner, itemID uuid.UUID) int {
	stock := w.StockOf(owner, itemID)
	if stock == nil {
		return 0
	}
	return stock.Quantity()
}

// Aircraft creates an in-flight aircraft
func (w *World) Aircraft(companyID uuid.UUID, airport string) uuid.UUID {
	aircraft := &mission.Aircraft{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Registration:   "F-TEST",
		Status:         mission.AircraftStatusInFlight,
		CurrentAirport: airport,
	}
	must(w.Repos.Aircraft.Save(context.Background(), aircraft))
	return aircraft.ID
}

// LoadAircraft reads an aircraft
func (w *World) LoadAircraft(id uuid.UUID) *mission.Aircraft {
	a, err := w.Repos.Aircraft.FindForUpdate(context.Background(), id)
	must(err)
	return a
}

// Mission creates a mission that departed at startedAt with cargo
func (w *World) Mission(companyID uuid.UUID, aircraftID *uuid.UUID, origin, destination string, startedAt time.Time, cargo ...mission.CargoLine) uuid.UUID {
	m := mission.New(companyID, uuid.New(), aircraftID, origin, destination)
	must(m.Depart(mission.CargoSnapshot{Items: cargo}, startedAt))
	must(w.Repos.Missions.Save(context.Background(), m))
	return m.ID()
}

// LoadMission reads a mission
func (w *World) LoadMission(id uuid.UUID) *mission.Mission {
	m, err := w.Repos.Missions.FindForUpdate(context.Background(), id)
	must(err)
	return m
}

// Pool creates an airport worker pool
func (w *World) Pool(airport string, maxWorkers, maxEngineers int, nextResetAt *time.Time) uuid.UUID {
	pool := &workforce.Pool{
		ID:           uuid.New(),
		AirportIdent: airport,
		MaxWorkers:   maxWorkers,
		MaxEngineers: maxEngineers,
		NextResetAt:  nextResetAt,
	}
	must(w.Repos.Pools.Save(context.Background(), pool))
	return pool.ID
}

// LoadPool reads a pool
func (w *World) LoadPool(id uuid.UUID) *workforce.Pool {
	p, err := w.Repos.Pools.FindForUpdate(context.Background(), id)
	must(err)
	return p
}

// Transactions lists a company's ledger rows, newest first
func (w *World) Transactions(companyID uuid.UUID) []*ledger.Transaction {
	txs, err := w.Repos.Transactions.FindByCompany(context.Background(), companyID, ledger.QueryOptions{Limit: 100})
	must(err)
	return txs
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
