package persistence

import (
	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
)

// NewRepositories wires every GORM repository over db
func NewRepositories(db *gorm.DB) setup.Repositories {
	return setup.Repositories{
		Transactor:   NewGormTransactor(db),
		Factories:    NewGormFactoryRepository(db),
		Batches:      NewGormBatchRepository(db),
		Recipes:      NewGormRecipeRepository(db),
		Audit:        NewGormAuditRepository(db),
		Workers:      NewGormWorkerRepository(db),
		Pools:        NewGormPoolRepository(db),
		CountryStats: NewGormCountryStatsRepository(db),
		Airports:     NewGormAirportDirectory(db),
		Missions:     NewGormMissionRepository(db),
		Aircraft:     NewGormAircraftRepository(db),
		Companies:    NewGormCompanyRepository(db),
		Transactions: NewGormTransactionRepository(db),
		Locations:    NewGormLocationRepository(db),
		Stocks:       NewGormStockRepository(db),
		Items:        NewGormItemRepository(db),
	}
}
