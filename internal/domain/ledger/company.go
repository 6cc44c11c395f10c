package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company holds the balance that simulation charges are drawn from
type Company struct {
	id      uuid.UUID
	name    string
	balance decimal.Decimal
}

// NewCompany creates a company with an opening balance
func NewCompany(id uuid.UUID, name string, balance decimal.Decimal) (*Company, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("opening balance cannot be negative: %s", balance)
	}
	return &Company{id: id, name: name, balance: balance}, nil
}

// ReconstructCompany rebuilds a company from persistence
func ReconstructCompany(id uuid.UUID, name string, balance decimal.Decimal) *Company {
	return &Company{id: id, name: name, balance: balance}
}

func (c *Company) ID() uuid.UUID            { return c.id }
func (c *Company) Name() string             { return c.name }
func (c *Company) Balance() decimal.Decimal { return c.balance }

// DebitClamped removes up to amount from the balance without letting it go
// below zero and returns the amount actually removed.
func (c *Company) DebitClamped(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	debited := decimal.Min(amount, c.balance)
	if debited.IsNegative() {
		debited = decimal.Zero
	}
	c.balance = c.balance.Sub(debited)
	return debited
}
