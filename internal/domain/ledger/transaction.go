package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a balance change on a company
type Transaction struct {
	id              uuid.UUID
	companyID       uuid.UUID
	timestamp       time.Time
	transactionType TransactionType
	category        Category
	amount          decimal.Decimal // negative for charges
	balanceBefore   decimal.Decimal
	balanceAfter    decimal.Decimal
	description     string
	metadata        map[string]interface{}
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	companyID uuid.UUID,
	timestamp time.Time,
	transactionType TransactionType,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
	metadata map[string]interface{},
) (*Transaction, error) {
	if companyID == uuid.Nil {
		return nil, &ErrInvalidTransaction{
			Field:  "company_id",
			Reason: "company_id cannot be empty",
		}
	}

	if !transactionType.IsValid() {
		return nil, &ErrInvalidTransaction{
			Field:  "transaction_type",
			Reason: fmt.Sprintf("invalid transaction type: %s", transactionType),
		}
	}

	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{
			Field:  "category",
			Reason: err.Error(),
		}
	}

	t := &Transaction{
		id:              uuid.New(),
		companyID:       companyID,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
		metadata:        metadata,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ReconstructTransaction reconstructs a transaction from persistence
func ReconstructTransaction(
	id uuid.UUID,
	companyID uuid.UUID,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	amount decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	description string,
	metadata map[string]interface{},
) *Transaction {
	return &Transaction{
		id:              id,
		companyID:       companyID,
		timestamp:       timestamp,
		transactionType: transactionType,
		category:        category,
		amount:          amount,
		balanceBefore:   balanceBefore,
		balanceAfter:    balanceAfter,
		description:     description,
		metadata:        metadata,
	}
}

// Validate checks the amount and the balance invariant
func (t *Transaction) Validate() error {
	if t.amount.IsZero() {
		return &ErrInvalidTransaction{
			Field:  "amount",
			Reason: "amount cannot be zero",
		}
	}

	expected := t.balanceBefore.Add(t.amount)
	if !t.balanceAfter.Equal(expected) {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.balanceAfter.IsNegative() {
		return &ErrInvalidTransaction{
			Field:  "balance_after",
			Reason: "balance cannot go negative",
		}
	}

	return nil
}

func (t *Transaction) ID() uuid.UUID                    { return t.id }
func (t *Transaction) CompanyID() uuid.UUID             { return t.companyID }
func (t *Transaction) Timestamp() time.Time             { return t.timestamp }
func (t *Transaction) TransactionType() TransactionType { return t.transactionType }
func (t *Transaction) Category() Category               { return t.category }
func (t *Transaction) Amount() decimal.Decimal          { return t.amount }
func (t *Transaction) BalanceBefore() decimal.Decimal   { return t.balanceBefore }
func (t *Transaction) BalanceAfter() decimal.Decimal    { return t.balanceAfter }
func (t *Transaction) Description() string              { return t.description }

func (t *Transaction) Metadata() map[string]interface{} {
	if t.metadata == nil {
		return nil
	}
	copy := make(map[string]interface{}, len(t.metadata))
	for k, v := range t.metadata {
		copy[k] = v
	}
	return copy
}

// String provides a human-readable representation
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%s, balance=%s->%s]",
		t.id, t.transactionType, t.amount, t.balanceBefore, t.balanceAfter)
}
