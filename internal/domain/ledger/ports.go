package ledger

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository persists company balances
type CompanyRepository interface {
	// FindForUpdate loads the company and locks its row for the current transaction
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Company, error)
	Save(ctx context.Context, company *Company) error
}

// TransactionRepository defines persistence operations for transactions
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindByCompany(ctx context.Context, companyID uuid.UUID, opts QueryOptions) ([]*Transaction, error)
}

// QueryOptions defines filtering and pagination for transaction queries
type QueryOptions struct {
	TransactionType *TransactionType
	Limit           int
	Offset          int
}

// DefaultQueryOptions returns default query options
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50}
}
