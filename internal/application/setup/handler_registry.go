package setup

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	ledgerCommands "github.com/andrescamacho/carrierplus-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/carrierplus-go/internal/application/ledger/queries"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	missionCommands "github.com/andrescamacho/carrierplus-go/internal/application/mission/commands"
	productionCommands "github.com/andrescamacho/carrierplus-go/internal/application/production/commands"
	workforceCommands "github.com/andrescamacho/carrierplus-go/internal/application/workforce/commands"
	"github.com/andrescamacho/carrierplus-go/internal/domain/inventory"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/internal/domain/mission"
	"github.com/andrescamacho/carrierplus-go/internal/domain/production"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// Repositories groups the persistence ports the handlers depend on
type Repositories struct {
	Transactor   common.Transactor
	Factories    production.FactoryRepository
	Batches      production.BatchRepository
	Recipes      production.RecipeRepository
	Audit        production.AuditRepository
	Workers      workforce.WorkerRepository
	Pools        workforce.PoolRepository
	CountryStats workforce.CountryStatsRepository
	Airports     workforce.AirportDirectory
	Missions     mission.Repository
	Aircraft     mission.AircraftRepository
	Companies    ledger.CompanyRepository
	Transactions ledger.TransactionRepository
	Locations    inventory.LocationRepository
	Stocks       inventory.StockRepository
	Items        inventory.ItemRepository
}

// Settings are the simulation tunables shared by the handlers
type Settings struct {
	NPC           productionCommands.NPCProductionSettings
	RawGoodRules  []production.RawGoodRule
	Food          workforceCommands.FoodAndInjurySettings
	Injury        workforceCommands.InjurySettings
	DeadRetention time.Duration
	MissionTTL    time.Duration
	Pools         workforceCommands.PoolSettings
	// EntitiesPerSecond throttles every sweep; zero disables throttling
	EntitiesPerSecond float64
}

// DefaultSettings returns the standard simulation rules
func DefaultSettings() Settings {
	return Settings{
		NPC: productionCommands.NPCProductionSettings{
			CompanyID:    NPCCompanyID,
			StockCeiling: 1000,
			RatePerCycle: 50,
		},
		Food: workforceCommands.FoodAndInjurySettings{
			Cycle:          time.Hour,
			BaseInjuryRate: 0.005,
		},
		Injury: workforceCommands.InjurySettings{
			GracePeriod:  10 * 24 * time.Hour,
			DeathPenalty: decimal.NewFromInt(10000),
		},
		DeadRetention: 30 * 24 * time.Hour,
		MissionTTL:    24 * time.Hour,
		Pools: workforceCommands.PoolSettings{
			ResetInterval:  24 * time.Hour,
			DefaultCountry: "US",
			DefaultStats: workforce.CountryStats{
				BaseSpeed:      50,
				BaseResistance: 50,
				BaseHourlyWage: decimal.NewFromInt(10),
			},
		},
	}
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	repos    Repositories
	settings Settings
	clock    shared.Clock
	random   shared.RandomFactory
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	repos Repositories,
	settings Settings,
	clock shared.Clock,
	random shared.RandomFactory,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if random == nil {
		random = shared.NewRandomFactory(0)
	}

	return &HandlerRegistry{
		repos:    repos,
		settings: settings,
		clock:    clock,
		random:   random,
	}
}

// limiter returns a fresh per-handler throttle, or nil when disabled
func (r *HandlerRegistry) limiter() *rate.Limiter {
	if r.settings.EntitiesPerSecond <= 0 {
		return nil
	}
	burst := int(r.settings.EntitiesPerSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(r.settings.EntitiesPerSecond), burst)
}

// RegisterAll registers every simulation command and query handler with the mediator
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterProductionHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterWorkforceHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterLedgerHandlers(m); err != nil {
		return err
	}
	return r.RegisterMissionHandlers(m)
}

// RegisterProductionHandlers registers batch completion, NPC production and
// the manual start/cancel commands
func (r *HandlerRegistry) RegisterProductionHandlers(m mediator.Mediator) error {
	repos := r.repos
	keeper := inventory.NewKeeper(repos.Locations, repos.Stocks)

	if err := mediator.RegisterHandler[*productionCommands.CompleteProductionBatchesCommand](m,
		productionCommands.NewCompleteProductionBatchesHandler(
			repos.Transactor, repos.Batches, repos.Factories, repos.Recipes, repos.Audit,
			repos.Workers, keeper, r.clock, r.limiter(),
		)); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*productionCommands.RunNPCProductionCommand](m,
		productionCommands.NewRunNPCProductionHandler(
			repos.Transactor, repos.Factories, repos.Items, keeper,
			production.NewRawGoodCatalog(r.settings.RawGoodRules), r.settings.NPC, r.limiter(),
		)); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*productionCommands.StartProductionCommand](m,
		productionCommands.NewStartProductionHandler(
			repos.Transactor, repos.Factories, repos.Batches, repos.Recipes, repos.Workers, keeper, r.clock,
		)); err != nil {
		return err
	}

	return mediator.RegisterHandler[*productionCommands.CancelProductionCommand](m,
		productionCommands.NewCancelProductionHandler(
			repos.Transactor, repos.Factories, repos.Batches, repos.Recipes, keeper, r.clock,
		))
}

// RegisterWorkforceHandlers registers the food, injury, purge and pool handlers
func (r *HandlerRegistry) RegisterWorkforceHandlers(m mediator.Mediator) error {
	repos := r.repos
	treasury := ledger.NewTreasury(repos.Companies, repos.Transactions)

	if err := mediator.RegisterHandler[*workforceCommands.ProcessFoodAndInjuriesCommand](m,
		workforceCommands.NewProcessFoodAndInjuriesHandler(
			repos.Transactor, repos.Factories, repos.Workers, repos.Audit,
			r.clock, r.random, r.settings.Food, r.limiter(),
		)); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*workforceCommands.ProcessInjuredWorkersCommand](m,
		workforceCommands.NewProcessInjuredWorkersHandler(
			repos.Transactor, repos.Workers, treasury, r.clock, r.settings.Injury, r.limiter(),
		)); err != nil {
		return err
	}

	if err := mediator.RegisterHandler[*workforceCommands.CleanupDeadWorkersCommand](m,
		workforceCommands.NewCleanupDeadWorkersHandler(
			repos.Workers, r.clock, r.settings.DeadRetention, r.limiter(),
		)); err != nil {
		return err
	}

	return mediator.RegisterHandler[*workforceCommands.ResetWorkerPoolsCommand](m,
		workforceCommands.NewResetWorkerPoolsHandler(
			repos.Transactor, repos.Pools, repos.Workers, repos.CountryStats, repos.Airports,
			r.clock, r.random, r.settings.Pools, r.limiter(),
		))
}

// RegisterLedgerHandlers registers payroll and the transaction query
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	repos := r.repos
	treasury := ledger.NewTreasury(repos.Companies, repos.Transactions)

	if err := mediator.RegisterHandler[*ledgerCommands.ProcessPayrollCommand](m,
		ledgerCommands.NewProcessPayrollHandler(
			repos.Transactor, repos.Workers, treasury, r.clock, r.limiter(),
		)); err != nil {
		return err
	}

	return mediator.RegisterHandler[*ledgerQueries.GetTransactionsQuery](m,
		ledgerQueries.NewGetTransactionsHandler(repos.Transactions))
}

// RegisterMissionHandlers registers mission expiry
func (r *HandlerRegistry) RegisterMissionHandlers(m mediator.Mediator) error {
	repos := r.repos
	keeper := inventory.NewKeeper(repos.Locations, repos.Stocks)

	return mediator.RegisterHandler[*missionCommands.ExpireMissionsCommand](m,
		missionCommands.NewExpireMissionsHandler(
			repos.Transactor, repos.Missions, repos.Aircraft, repos.Items, keeper,
			r.clock, r.settings.MissionTTL, r.limiter(),
		))
}
