package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/internal/domain/mission"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

const day = 24 * time.Hour

type simulationContext struct {
	world  *helpers.World
	engine *setup.Engine

	companies map[string]uuid.UUID
	items     map[string]uuid.UUID
	staff     map[string][]uuid.UUID
	dead      []uuid.UUID

	npcID      uuid.UUID
	factoryID  uuid.UUID
	recipeID   uuid.UUID
	engineers  int
	missionID  uuid.UUID
	aircraftID uuid.UUID
}

func (s *simulationContext) reset() {
	if err := helpers.TruncateAllTables(); err != nil {
		panic(fmt.Errorf("failed to truncate tables: %w", err))
	}

	s.world = helpers.NewWorld(helpers.SharedTestDB)
	s.engine = nil
	s.companies = make(map[string]uuid.UUID)
	s.items = make(map[string]uuid.UUID)
	s.staff = make(map[string][]uuid.UUID)
	s.dead = nil
	s.npcID = uuid.Nil
	s.factoryID = uuid.Nil
	s.recipeID = uuid.Nil
	s.engineers = 0
	s.missionID = uuid.Nil
	s.aircraftID = uuid.Nil
}

func (s *simulationContext) company(name string) (uuid.UUID, error) {
	id, ok := s.companies[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown company %q", name)
	}
	return id, nil
}

func (s *simulationContext) item(name string) (uuid.UUID, error) {
	id, ok := s.items[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown item %q", name)
	}
	return id, nil
}

// Given steps

func (s *simulationContext) aCompanyWithABalanceOf(name string, balance int) error {
	s.companies[name] = s.world.Company(name, float64(balance))
	return nil
}

func (s *simulationContext) theWorldMarketCompany() error {
	s.npcID = s.world.NPCCompany()
	return nil
}

func (s *simulationContext) anItem(name string) error {
	tier := 1
	if name == "Raw Wheat" {
		tier = 0
	}
	s.items[name] = s.world.Item(name, tier, 1.25)
	return nil
}

func (s *simulationContext) employsWorkersEarning(name string, count, wage int) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		id := s.world.Worker(helpers.WorkerOptions{EmployerID: &companyID, Wage: float64(wage)})
		s.staff[name] = append(s.staff[name], id)
	}
	return nil
}

func (s *simulationContext) employsAWorkerInjuredDaysAgo(name string, days int) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	id := s.world.Worker(helpers.WorkerOptions{
		EmployerID: &companyID,
		Status:     workforce.StatusInjured,
		InjuredAt:  helpers.Ptr(helpers.Epoch.Add(-time.Duration(days) * day)),
		Wage:       10,
	})
	s.staff[name] = append(s.staff[name], id)
	return nil
}

func (s *simulationContext) aWorkerWhoDiedDaysAgo(days int) error {
	id := s.world.Worker(helpers.WorkerOptions{
		Status: workforce.StatusDead,
		DiedAt: helpers.Ptr(helpers.Epoch.Add(-time.Duration(days) * day)),
	})
	s.dead = append(s.dead, id)
	return nil
}

func (s *simulationContext) flewAMission(name, origin, destination string, hours, quantity int, itemName string) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	itemID, err := s.item(itemName)
	if err != nil {
		return err
	}
	s.aircraftID = s.world.Aircraft(companyID, origin)
	s.missionID = s.world.Mission(companyID, &s.aircraftID, origin, destination,
		helpers.Epoch.Add(-time.Duration(hours)*time.Hour),
		mission.CargoLine{ItemID: itemID, ItemName: itemName, Quantity: quantity})
	return nil
}

func (s *simulationContext) aFactoryBaking(tier int, name, airport string, quantity int, itemName string) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	itemID := s.world.Item(itemName, tier, 4)
	s.items[itemName] = itemID
	s.recipeID = s.world.Recipe("Bake "+itemName, tier, itemID, quantity, 1)
	s.factoryID = s.world.Factory(companyID, name+" "+itemName, airport, helpers.FactoryOptions{
		Tier:     tier,
		Status:   production.FactoryStatusProducing,
		RecipeID: &s.recipeID,
	})
	return nil
}

func (s *simulationContext) theFactoryEmploys(workers, engineers int) error {
	factory := s.world.LoadFactory(s.factoryID)
	employer := factory.CompanyID()
	for i := 0; i < workers; i++ {
		s.world.Worker(helpers.WorkerOptions{EmployerID: &employer, FactoryID: &s.factoryID})
	}
	for i := 0; i < engineers; i++ {
		s.world.Worker(helpers.WorkerOptions{Kind: workforce.KindEngineer, EmployerID: &employer, FactoryID: &s.factoryID})
	}
	s.engineers = engineers
	return nil
}

func (s *simulationContext) theFactoryStartedABatch(hoursAgo, hours int) error {
	recipe, err := s.world.Repos.Recipes.FindByID(context.Background(), s.recipeID)
	if err != nil {
		return err
	}
	s.world.Batch(s.factoryID, s.recipeID, recipe.ResultQuantity,
		helpers.Epoch.Add(-time.Duration(hoursAgo)*time.Hour), time.Duration(hours)*time.Hour, s.engineers > 0)
	return nil
}

func (s *simulationContext) anNPCFactoryAt(name, airport string) error {
	s.world.Factory(s.npcID, name, airport, helpers.FactoryOptions{
		Tier:   production.NPCTier,
		Status: production.FactoryStatusProducing,
	})
	return nil
}

func (s *simulationContext) theNPCWarehouseHolds(airport string, quantity int, itemName string) error {
	itemID, err := s.item(itemName)
	if err != nil {
		return err
	}
	s.world.Stock(inventory.WarehouseAt(s.npcID, airport), itemID, quantity)
	return nil
}

// When steps

func (s *simulationContext) theJobRuns(name string) error {
	if s.engine == nil {
		engine, err := setup.NewEngine(setup.EngineOptions{
			Repositories: s.world.Repos,
			Settings:     setup.DefaultSettings(),
			Clock:        s.world.Clock,
			Random:       shared.NewRandomFactory(1),
		})
		if err != nil {
			return err
		}
		s.engine = engine
	}
	return s.engine.RunJob(context.Background(), name)
}

func (s *simulationContext) anHourPasses() error {
	s.world.Clock.Advance(time.Hour)
	return nil
}

// Then steps

func (s *simulationContext) theBalanceShouldBe(name string, expected int) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	if got := s.world.Balance(companyID); !got.Equal(decimal.NewFromInt(int64(expected))) {
		return fmt.Errorf("expected balance %d but got %s", expected, got)
	}
	return nil
}

func (s *simulationContext) shouldHaveTransactions(name string, count int, kind string) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	want, err := ledger.ParseTransactionType(kind)
	if err != nil {
		return err
	}
	got := 0
	for _, tx := range s.world.Transactions(companyID) {
		if tx.TransactionType() == want {
			got++
		}
	}
	if got != count {
		return fmt.Errorf("expected %d %s transactions but got %d", count, kind, got)
	}
	return nil
}

func (s *simulationContext) workersOfShouldBe(count int, name, status string) error {
	got := 0
	for _, id := range s.staff[name] {
		if w := s.world.LoadWorker(id); w != nil && string(w.Status()) == status {
			got++
		}
	}
	if got != count {
		return fmt.Errorf("expected %d %s workers of %s but got %d", count, status, name, got)
	}
	return nil
}

func (s *simulationContext) deadWorkersShouldRemain(count int) error {
	got := 0
	for _, id := range s.dead {
		if s.world.LoadWorker(id) != nil {
			got++
		}
	}
	if got != count {
		return fmt.Errorf("expected %d dead workers to remain but got %d", count, got)
	}
	return nil
}

func (s *simulationContext) theMissionShouldHaveFailedWithReason(reason string) error {
	m := s.world.LoadMission(s.missionID)
	if m.Status() != mission.StatusFailed {
		return fmt.Errorf("expected mission to be failed but it is %s", m.Status())
	}
	if m.FailureReason() != reason {
		return fmt.Errorf("expected failure reason %q but got %q", reason, m.FailureReason())
	}
	return nil
}

func (s *simulationContext) theMissionShouldBe(status string) error {
	if got := s.world.LoadMission(s.missionID).Status(); string(got) != status {
		return fmt.Errorf("expected mission to be %s but it is %s", status, got)
	}
	return nil
}

func (s *simulationContext) theMissionAircraftShouldBeParked() error {
	if got := s.world.LoadAircraft(s.aircraftID).Status; got != mission.AircraftStatusParked {
		return fmt.Errorf("expected aircraft to be parked but it is %s", got)
	}
	return nil
}

func (s *simulationContext) shouldHoldAt(name string, quantity int, itemName, airport string) error {
	companyID, err := s.company(name)
	if err != nil {
		return err
	}
	itemID, err := s.item(itemName)
	if err != nil {
		return err
	}
	if got := s.world.QuantityOf(inventory.CompanyAt(companyID, airport), itemID); got != quantity {
		return fmt.Errorf("expected %s to hold %d %s at %s but got %d", name, quantity, itemName, airport, got)
	}
	return nil
}

func (s *simulationContext) theNPCWarehouseShouldHold(airport string, quantity int, itemName string) error {
	itemID, err := s.item(itemName)
	if err != nil {
		return err
	}
	if got := s.world.QuantityOf(inventory.WarehouseAt(s.npcID, airport), itemID); got != quantity {
		return fmt.Errorf("expected the warehouse at %s to hold %d %s but got %d", airport, quantity, itemName, got)
	}
	return nil
}

// InitializeSimulationScenario registers the simulation steps
func InitializeSimulationScenario(sc *godog.ScenarioContext) {
	s := &simulationContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		s.reset()
		return ctx, nil
	})

	sc.Step(`^a company "([^"]*)" with a balance of (\d+)$`, s.aCompanyWithABalanceOf)
	sc.Step(`^the world market company$`, s.theWorldMarketCompany)
	sc.Step(`^an item "([^"]*)"$`, s.anItem)
	sc.Step(`^"([^"]*)" employs (\d+) workers earning (\d+) per hour$`, s.employsWorkersEarning)
	sc.Step(`^"([^"]*)" employs a worker injured (\d+) days ago$`, s.employsAWorkerInjuredDaysAgo)
	sc.Step(`^a worker who died (\d+) days ago$`, s.aWorkerWhoDiedDaysAgo)
	sc.Step(`^"([^"]*)" flew a mission from "([^"]*)" to "([^"]*)" (\d+) hours ago carrying (\d+) "([^"]*)"$`, s.flewAMission)
	sc.Step(`^a tier (\d+) factory of "([^"]*)" at "([^"]*)" baking (\d+) "([^"]*)" per batch$`, s.aFactoryBaking)
	sc.Step(`^the factory employs (\d+) workers and (\d+) engineers$`, s.theFactoryEmploys)
	sc.Step(`^the factory started a batch (\d+) hours ago that takes (\d+) hours?$`, s.theFactoryStartedABatch)
	sc.Step(`^an NPC factory "([^"]*)" at "([^"]*)"$`, s.anNPCFactoryAt)
	sc.Step(`^the NPC warehouse at "([^"]*)" holds (\d+) "([^"]*)"$`, s.theNPCWarehouseHolds)

	sc.Step(`^the "([^"]*)" job runs$`, s.theJobRuns)
	sc.Step(`^an hour passes$`, s.anHourPasses)

	sc.Step(`^the balance of "([^"]*)" should be (\d+)$`, s.theBalanceShouldBe)
	sc.Step(`^"([^"]*)" should have (\d+) (\w+) transactions?$`, s.shouldHaveTransactions)
	sc.Step(`^(\d+) workers? of "([^"]*)" should be (\w+)$`, s.workersOfShouldBe)
	sc.Step(`^(\d+) dead workers? should remain$`, s.deadWorkersShouldRemain)
	sc.Step(`^the mission should have failed with reason "([^"]*)"$`, s.theMissionShouldHaveFailedWithReason)
	sc.Step(`^the mission should be (\w+)$`, s.theMissionShouldBe)
	sc.Step(`^the mission aircraft should be parked$`, s.theMissionAircraftShouldBeParked)
	sc.Step(`^"([^"]*)" should hold (\d+) "([^"]*)" at "([^"]*)"$`, s.shouldHoldAt)
	sc.Step(`^the NPC warehouse at "([^"]*)" should hold (\d+) "([^"]*)"$`, s.theNPCWarehouseShouldHold)
}
