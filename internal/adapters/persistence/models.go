package persistence

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompanyModel represents the companies table
type CompanyModel struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Balance   decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;not null"`
}

func (CompanyModel) TableName() string {
	return "companies"
}

// CompanyTransactionModel represents the company_transactions table
type CompanyTransactionModel struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID       uuid.UUID       `gorm:"column:company_id;type:uuid;not null;index:idx_company_tx_company_ts,priority:1"`
	Timestamp       time.Time       `gorm:"column:timestamp;not null;index:idx_company_tx_company_ts,priority:2"`
	TransactionType string          `gorm:"column:transaction_type;size:32;not null"`
	Category        string          `gorm:"column:category;size:32;not null"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	BalanceBefore   decimal.Decimal `gorm:"column:balance_before;type:numeric(14,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"column:balance_after;type:numeric(14,2);not null"`
	Description     string          `gorm:"column:description;size:120"`
	Metadata        string          `gorm:"column:metadata;type:text"` // JSON as text
}

func (CompanyTransactionModel) TableName() string {
	return "company_transactions"
}

// AirportModel represents the airports table
type AirportModel struct {
	Ident      string `gorm:"column:ident;primaryKey;size:8"`
	Name       string `gorm:"column:name"`
	IsoCountry string `gorm:"column:iso_country;size:2"`
}

func (AirportModel) TableName() string {
	return "airports"
}

// ItemModel represents the items table
type ItemModel struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name      string          `gorm:"column:name;uniqueIndex;not null"`
	Tier      int             `gorm:"column:tier;not null;default:0"`
	BaseValue decimal.Decimal `gorm:"column:base_value;type:numeric(12,2);not null;default:0"`
}

func (ItemModel) TableName() string {
	return "items"
}

// InventoryLocationModel represents the inventory_locations table
type InventoryLocationModel struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_location_owner,priority:1"`
	AirportIdent string    `gorm:"column:airport_ident;size:8;not null;uniqueIndex:idx_location_owner,priority:2"`
	Kind         string    `gorm:"column:kind;size:16;not null;uniqueIndex:idx_location_owner,priority:3"`
	Name         string    `gorm:"column:name"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

func (InventoryLocationModel) TableName() string {
	return "inventory_locations"
}

// StockModel represents the inventory_stocks table
type StockModel struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	LocationID   uuid.UUID       `gorm:"column:location_id;type:uuid;not null;uniqueIndex:idx_stock_location_item,priority:1"`
	ItemID       uuid.UUID       `gorm:"column:item_id;type:uuid;not null;uniqueIndex:idx_stock_location_item,priority:2"`
	Quantity     int             `gorm:"column:quantity;not null;default:0"`
	ForSale      bool            `gorm:"column:for_sale;not null;default:false"`
	SalePrice    decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2);not null;default:0"`
	SaleQuantity int             `gorm:"column:sale_quantity;not null;default:0"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;not null"`
}

func (StockModel) TableName() string {
	return "inventory_stocks"
}

// FactoryModel represents the factories table
type FactoryModel struct {
	ID                     uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID              uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	Name                   string     `gorm:"column:name;not null"`
	AirportIdent           string     `gorm:"column:airport_ident;size:8;not null;index"`
	Tier                   int        `gorm:"column:tier;not null"`
	Status                 string     `gorm:"column:status;size:16;not null"`
	IsActive               bool       `gorm:"column:is_active;not null"`
	MaxWorkers             int        `gorm:"column:max_workers;not null"`
	MaxEngineers           int        `gorm:"column:max_engineers;not null"`
	FoodStock              int        `gorm:"column:food_stock;not null;default:0"`
	FoodCapacity           int        `gorm:"column:food_capacity;not null"`
	FoodConsumptionPerHour int        `gorm:"column:food_consumption_per_hour;not null;default:0"`
	FoodTier               int        `gorm:"column:food_tier;not null;default:0"`
	HasFood                bool       `gorm:"column:has_food;not null"`
	LastFoodTickAt         *time.Time `gorm:"column:last_food_tick_at"`
	CurrentRecipeID        *uuid.UUID `gorm:"column:current_recipe_id;type:uuid"`
	CreatedAt              time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt              time.Time  `gorm:"column:updated_at;not null"`
}

func (FactoryModel) TableName() string {
	return "factories"
}

// RecipeModel represents the recipes table
type RecipeModel struct {
	ID                  uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	Name                string                  `gorm:"column:name;not null"`
	Tier                int                     `gorm:"column:tier;not null"`
	ResultItemID        uuid.UUID               `gorm:"column:result_item_id;type:uuid;not null"`
	ResultQuantity      int                     `gorm:"column:result_quantity;not null"`
	ProductionTimeHours float64                 `gorm:"column:production_time_hours;not null"`
	Ingredients         []RecipeIngredientModel `gorm:"foreignKey:RecipeID;references:ID"`
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeIngredientModel represents the recipe_ingredients table
type RecipeIngredientModel struct {
	RecipeID uuid.UUID `gorm:"column:recipe_id;type:uuid;primaryKey"`
	ItemID   uuid.UUID `gorm:"column:item_id;type:uuid;primaryKey"`
	Quantity int       `gorm:"column:quantity;not null"`
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

// ProductionBatchModel represents the production_batches table
type ProductionBatchModel struct {
	ID                   uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	FactoryID            uuid.UUID  `gorm:"column:factory_id;type:uuid;not null;index"`
	RecipeID             uuid.UUID  `gorm:"column:recipe_id;type:uuid;not null"`
	Status               string     `gorm:"column:status;size:16;not null;index:idx_batch_status_eta,priority:1"`
	WorkersAssigned      int        `gorm:"column:workers_assigned;not null;default:0"`
	ResultQuantity       int        `gorm:"column:result_quantity;not null"`
	EngineerBonusApplied bool       `gorm:"column:engineer_bonus_applied;not null;default:false"`
	StartedAt            *time.Time `gorm:"column:started_at"`
	EstimatedCompletion  *time.Time `gorm:"column:estimated_completion;index:idx_batch_status_eta,priority:2"`
	CompletedAt          *time.Time `gorm:"column:completed_at"`
	CreatedAt            time.Time  `gorm:"column:created_at;not null"`
}

func (ProductionBatchModel) TableName() string {
	return "production_batches"
}

// FactoryTransactionModel represents the factory_transactions audit table
type FactoryTransactionModel struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	FactoryID       uuid.UUID  `gorm:"column:factory_id;type:uuid;not null;index"`
	TransactionType string     `gorm:"column:transaction_type;size:32;not null"`
	ItemID          *uuid.UUID `gorm:"column:item_id;type:uuid"`
	Quantity        int        `gorm:"column:quantity;not null"`
	BatchID         *uuid.UUID `gorm:"column:batch_id;type:uuid"`
	Notes           string     `gorm:"column:notes"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null"`
}

func (FactoryTransactionModel) TableName() string {
	return "factory_transactions"
}

// WorkerModel represents the workers table
type WorkerModel struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	EmployerID   *uuid.UUID      `gorm:"column:employer_id;type:uuid;index"`
	AirportIdent string          `gorm:"column:airport_ident;size:8;not null;index"`
	FactoryID    *uuid.UUID      `gorm:"column:factory_id;type:uuid;index"`
	CountryCode  string          `gorm:"column:country_code;size:2;not null"`
	Kind         string          `gorm:"column:kind;size:16;not null"`
	FirstName    string          `gorm:"column:first_name;not null"`
	LastName     string          `gorm:"column:last_name;not null"`
	Speed        int             `gorm:"column:speed;not null"`
	Resistance   int             `gorm:"column:resistance;not null"`
	XP           int             `gorm:"column:xp;not null;default:0"`
	Tier         int             `gorm:"column:tier;not null;default:1"`
	HourlyWage   decimal.Decimal `gorm:"column:hourly_wage;type:numeric(10,2);not null"`
	Status       string          `gorm:"column:status;size:16;not null;index"`
	InjuredAt    *time.Time      `gorm:"column:injured_at"`
	DiedAt       *time.Time      `gorm:"column:died_at"`
	CreatedAt    time.Time       `gorm:"column:created_at;not null"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;not null"`
}

func (WorkerModel) TableName() string {
	return "workers"
}

// AirportWorkerPoolModel represents the airport_worker_pools table
type AirportWorkerPoolModel struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	AirportIdent     string     `gorm:"column:airport_ident;size:8;not null;uniqueIndex"`
	MaxWorkers       int        `gorm:"column:max_workers;not null"`
	MaxEngineers     int        `gorm:"column:max_engineers;not null"`
	CurrentWorkers   int        `gorm:"column:current_workers;not null;default:0"`
	CurrentEngineers int        `gorm:"column:current_engineers;not null;default:0"`
	LastResetAt      *time.Time `gorm:"column:last_reset_at"`
	NextResetAt      *time.Time `gorm:"column:next_reset_at;index"`
}

func (AirportWorkerPoolModel) TableName() string {
	return "airport_worker_pools"
}

// CountryWorkerStatsModel represents the country_worker_stats table
type CountryWorkerStatsModel struct {
	CountryCode    string          `gorm:"column:country_code;primaryKey;size:2"`
	BaseSpeed      int             `gorm:"column:base_speed;not null"`
	BaseResistance int             `gorm:"column:base_resistance;not null"`
	BaseHourlyWage decimal.Decimal `gorm:"column:base_hourly_wage;type:numeric(10,2);not null"`
}

func (CountryWorkerStatsModel) TableName() string {
	return "country_worker_stats"
}

// MissionModel represents the missions table
type MissionModel struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	PilotID         uuid.UUID  `gorm:"column:pilot_id;type:uuid;not null;index"`
	AircraftID      *uuid.UUID `gorm:"column:aircraft_id;type:uuid"`
	OriginICAO      string     `gorm:"column:origin_icao;size:8;not null"`
	DestinationICAO string     `gorm:"column:destination_icao;size:8;not null"`
	Status          string     `gorm:"column:status;size:16;not null;index:idx_mission_status_started,priority:1"`
	CargoSnapshot   string     `gorm:"column:cargo_snapshot;type:text"` // JSON as text
	StartedAt       *time.Time `gorm:"column:started_at;index:idx_mission_status_started,priority:2"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
	FailureReason   string     `gorm:"column:failure_reason;size:64"`
	XPEarned        int        `gorm:"column:xp_earned;not null;default:0"`
}

func (MissionModel) TableName() string {
	return "missions"
}

// AircraftModel represents the company_aircraft table
type AircraftModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CompanyID      uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	Registration   string    `gorm:"column:registration;size:16"`
	Status         string    `gorm:"column:status;size:16;not null"`
	CurrentAirport string    `gorm:"column:current_airport;size:8"`
}

func (AircraftModel) TableName() string {
	return "company_aircraft"
}

// AllModels lists every model in migration order
func AllModels() []interface{} {
	return []interface{}{
		&CompanyModel{},
		&CompanyTransactionModel{},
		&AirportModel{},
		&ItemModel{},
		&InventoryLocationModel{},
		&StockModel{},
		&FactoryModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&ProductionBatchModel{},
		&FactoryTransactionModel{},
		&WorkerModel{},
		&AirportWorkerPoolModel{},
		&CountryWorkerStatsModel{},
		&MissionModel{},
		&AircraftModel{},
	}
}
