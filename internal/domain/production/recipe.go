package production

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is one input line of a recipe
type Ingredient struct {
	ItemID   uuid.UUID
	Quantity int
}

// Recipe describes what a batch consumes and produces
type Recipe struct {
	ID                  uuid.UUID
	Name                string
	Tier                int
	ResultItemID        uuid.UUID
	ResultQuantity      int
	ProductionTimeHours float64
	Ingredients         []Ingredient
}

// WorkerXP is the experience granted per regular worker on completion
func (r *Recipe) WorkerXP() int {
	return r.Tier * 10
}

// EngineerXP is the experience granted per engineer on completion
func (r *Recipe) EngineerXP() int {
	return r.WorkerXP() * 2
}

// ProductionDuration estimates how long a batch runs given the speeds of the
// assigned workers. Without workers the base time is quadrupled; without food
// every worker runs at half speed.
func ProductionDuration(baseHours float64, speeds []int, hasFood bool) time.Duration {
	if len(speeds) == 0 {
		return hoursToDuration(baseHours * 4)
	}

	total := 0.0
	for _, s := range speeds {
		total += float64(s)
	}
	if !hasFood {
		total *= 0.5
	}
	if total < 10 {
		total = 10
	}
	return hoursToDuration(baseHours * 200 / total)
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour)).Round(time.Second)
}
