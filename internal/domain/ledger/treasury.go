package ledger

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Charge describes a debit against a company balance
type Charge struct {
	CompanyID   uuid.UUID
	Amount      decimal.Decimal
	Type        TransactionType
	Description string
	Metadata    map[string]interface{}
	Timestamp   time.Time
}

// Treasury applies charges to company balances, clamping at zero and
// recording a transaction for every non-zero debit. It must run inside the
// caller's transaction.
type Treasury struct {
	companies    CompanyRepository
	transactions TransactionRepository
}

// NewTreasury creates a treasury
func NewTreasury(companies CompanyRepository, transactions TransactionRepository) *Treasury {
	return &Treasury{companies: companies, transactions: transactions}
}

// Debit applies the charge and returns the amount actually removed
func (t *Treasury) Debit(ctx context.Context, charge Charge) (decimal.Decimal, error) {
	company, err := t.companies.FindForUpdate(ctx, charge.CompanyID)
	if err != nil {
		return decimal.Zero, err
	}

	before := company.Balance()
	debited := company.DebitClamped(charge.Amount)
	if debited.IsZero() {
		return decimal.Zero, nil
	}

	if err := t.companies.Save(ctx, company); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save company balance: %w", err)
	}

	metadata := charge.Metadata
	if !debited.Equal(charge.Amount) {
		metadata = make(map[string]interface{}, len(charge.Metadata)+1)
		maps.Copy(metadata, charge.Metadata)
		metadata["requested"] = charge.Amount.String()
	}

	tx, err := NewTransaction(
		company.ID(),
		charge.Timestamp,
		charge.Type,
		debited.Neg(),
		before,
		company.Balance(),
		charge.Description,
		metadata,
	)
	if err != nil {
		return decimal.Zero, err
	}
	if err := t.transactions.Create(ctx, tx); err != nil {
		return decimal.Zero, fmt.Errorf("failed to record transaction: %w", err)
	}

	return debited, nil
}
