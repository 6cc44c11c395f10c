package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
)

// GetTransactionsQuery lists the balance changes of a company, newest first
type GetTransactionsQuery struct {
	CompanyID       uuid.UUID
	TransactionType *string
	Limit           int
	Offset          int
}

// GetTransactionsResponse represents the result of the query
type GetTransactionsResponse struct {
	Transactions []*TransactionDTO
}

// TransactionDTO represents a transaction data transfer object
type TransactionDTO struct {
	ID            string
	CompanyID     string
	Timestamp     time.Time
	Type          string
	Category      string
	Amount        string
	BalanceBefore string
	BalanceAfter  string
	Description   string
	Metadata      map[string]interface{}
}

// GetTransactionsHandler handles the GetTransactions query
type GetTransactionsHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetTransactionsHandler creates a new GetTransactionsHandler
func NewGetTransactionsHandler(transactionRepo ledger.TransactionRepository) *GetTransactionsHandler {
	return &GetTransactionsHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetTransactions query
func (h *GetTransactionsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetTransactionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetTransactionsQuery")
	}

	opts := ledger.DefaultQueryOptions()
	if query.Limit > 0 {
		opts.Limit = query.Limit
	}
	if query.Offset > 0 {
		opts.Offset = query.Offset
	}
	if query.TransactionType != nil {
		t, err := ledger.ParseTransactionType(*query.TransactionType)
		if err != nil {
			return nil, err
		}
		opts.TransactionType = &t
	}

	transactions, err := h.transactionRepo.FindByCompany(ctx, query.CompanyID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	dtos := make([]*TransactionDTO, len(transactions))
	for i, tx := range transactions {
		dtos[i] = &TransactionDTO{
			ID:            tx.ID().String(),
			CompanyID:     tx.CompanyID().String(),
			Timestamp:     tx.Timestamp(),
			Type:          tx.TransactionType().String(),
			Category:      tx.Category().String(),
			Amount:        tx.Amount().StringFixed(2),
			BalanceBefore: tx.BalanceBefore().StringFixed(2),
			BalanceAfter:  tx.BalanceAfter().StringFixed(2),
			Description:   tx.Description(),
			Metadata:      tx.Metadata(),
		}
	}

	return &GetTransactionsResponse{Transactions: dtos}, nil
}
