package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/persistence"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/database"
)

// SharedTestDB is the singleton database instance used across BDD scenarios
var SharedTestDB *gorm.DB

// InitializeSharedTestDB creates and migrates the shared test database.
// Called once in TestMain before running any scenario.
func InitializeSharedTestDB() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

type tabler interface {
	TableName() string
}

// TruncateAllTables clears every simulation table.
// Called before each scenario to keep scenarios isolated.
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	for _, model := range persistence.AllModels() {
		t, ok := model.(tabler)
		if !ok {
			continue
		}
		if err := SharedTestDB.Exec(fmt.Sprintf("DELETE FROM %s", t.TableName())).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", t.TableName(), err)
		}
	}
	return nil
}

// CloseSharedTestDB closes the shared database connection.
// Called in TestMain after all scenarios complete.
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	return database.Close(SharedTestDB)
}
