package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/carrierplus-go/internal/application/ledger/queries"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/test/helpers"
)

func TestGetTransactions_ReturnsFormattedRows(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	companyID := w.Company("Acme", 100)
	ctx := context.Background()
	treasury := ledger.NewTreasury(w.Repos.Companies, w.Repos.Transactions)

	for i, kind := range []ledger.TransactionType{ledger.TransactionTypePayroll, ledger.TransactionTypeDeathPenalty, ledger.TransactionTypePayroll} {
		err := w.Repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			_, err := treasury.Debit(ctx, ledger.Charge{
				CompanyID: companyID,
				Amount:    decimal.NewFromInt(int64(10 * (i + 1))),
				Type:      kind,
				Timestamp: helpers.Epoch.Add(time.Duration(i) * time.Hour),
			})
			return err
		})
		require.NoError(t, err)
	}

	handler := queries.NewGetTransactionsHandler(w.Repos.Transactions)
	resp, err := handler.Handle(ctx, &queries.GetTransactionsQuery{CompanyID: companyID})
	require.NoError(t, err)

	rows := resp.(*queries.GetTransactionsResponse).Transactions
	require.Len(t, rows, 3)
	assert.Equal(t, "-30.00", rows[0].Amount)
	assert.Equal(t, "70.00", rows[0].BalanceBefore)
	assert.Equal(t, "40.00", rows[0].BalanceAfter)
	assert.Equal(t, "PAYROLL", rows[0].Type)
	assert.Equal(t, "LABOR_COSTS", rows[0].Category)

	kind := ledger.TransactionTypeDeathPenalty.String()
	resp, err = handler.Handle(ctx, &queries.GetTransactionsQuery{CompanyID: companyID, TransactionType: &kind})
	require.NoError(t, err)
	rows = resp.(*queries.GetTransactionsResponse).Transactions
	require.Len(t, rows, 1)
	assert.Equal(t, "-20.00", rows[0].Amount)
}

func TestGetTransactions_RejectsUnknownType(t *testing.T) {
	w := helpers.NewWorld(helpers.NewTestDB(t))
	kind := "LOTTERY"

	_, err := queries.NewGetTransactionsHandler(w.Repos.Transactions).Handle(context.Background(),
		&queries.GetTransactionsQuery{CompanyID: w.Company("Acme", 0), TransactionType: &kind})
	assert.Error(t, err)
}
