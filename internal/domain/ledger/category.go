package ledger

import "fmt"

// Category groups transaction types for reporting
type Category string

const (
	CategoryLaborCosts Category = "LABOR_COSTS"
	CategoryPenalties  Category = "PENALTIES"
)

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypePayroll:      CategoryLaborCosts,
	TransactionTypeDeathPenalty: CategoryPenalties,
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	switch c {
	case CategoryLaborCosts, CategoryPenalties:
		return true
	default:
		return false
	}
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
