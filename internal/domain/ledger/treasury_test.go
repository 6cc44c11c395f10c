package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCompanies map[uuid.UUID]*Company

func (m memoryCompanies) FindForUpdate(_ context.Context, id uuid.UUID) (*Company, error) {
	return m[id], nil
}

func (m memoryCompanies) Save(_ context.Context, company *Company) error {
	m[company.ID()] = company
	return nil
}

type memoryTransactions struct {
	created []*Transaction
}

func (m *memoryTransactions) Create(_ context.Context, tx *Transaction) error {
	m.created = append(m.created, tx)
	return nil
}

func (m *memoryTransactions) FindByCompany(context.Context, uuid.UUID, QueryOptions) ([]*Transaction, error) {
	return m.created, nil
}

func TestTreasury_ClampedDebitLeavesChargeMetadataUntouched(t *testing.T) {
	company := ReconstructCompany(uuid.New(), "Acme", decimal.NewFromInt(15))
	transactions := &memoryTransactions{}
	treasury := NewTreasury(memoryCompanies{company.ID(): company}, transactions)

	charge := Charge{
		CompanyID:   company.ID(),
		Amount:      decimal.NewFromInt(40),
		Type:        TransactionTypePayroll,
		Description: "payroll",
		Metadata:    map[string]interface{}{"workers": 3},
		Timestamp:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	debited, err := treasury.Debit(context.Background(), charge)
	require.NoError(t, err)

	assert.True(t, debited.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, map[string]interface{}{"workers": 3}, charge.Metadata)
	require.Len(t, transactions.created, 1)
	assert.Equal(t, "40", transactions.created[0].Metadata()["requested"])
	assert.Equal(t, 3, transactions.created[0].Metadata()["workers"])
}
