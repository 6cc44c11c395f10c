package ledger

import "fmt"

// TransactionType represents the reason for a balance change
type TransactionType string

const (
	// TransactionTypePayroll is the hourly wage charge for employed workers
	TransactionTypePayroll TransactionType = "PAYROLL"

	// TransactionTypeDeathPenalty is charged when an employed worker dies
	TransactionTypeDeathPenalty TransactionType = "DEATH_PENALTY"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypePayroll,
		TransactionTypeDeathPenalty,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
