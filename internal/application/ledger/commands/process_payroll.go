package commands

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/metrics"
	"github.com/andrescamacho/carrierplus-go/internal/application/common"
	"github.com/andrescamacho/carrierplus-go/internal/application/mediator"
	"github.com/andrescamacho/carrierplus-go/internal/domain/ledger"
	"github.com/andrescamacho/carrierplus-go/internal/domain/shared"
	"github.com/andrescamacho/carrierplus-go/internal/domain/workforce"
)

// ProcessPayrollCommand charges every employer its hourly wage bill
type ProcessPayrollCommand struct{}

// ProcessPayrollResponse summarizes one payroll run
type ProcessPayrollResponse struct {
	Employers    int
	TotalOwed    decimal.Decimal
	TotalCharged decimal.Decimal
	Sweep        common.SweepResult
}

// ProcessPayrollHandler debits each employer the sum of the hourly wages of
// its working and available workers. Balances are clamped at zero. Food has
// no bearing on wages.
type ProcessPayrollHandler struct {
	tx       common.Transactor
	workers  workforce.WorkerRepository
	treasury *ledger.Treasury
	clock    shared.Clock
	limiter  *rate.Limiter
}

// NewProcessPayrollHandler creates a new handler
func NewProcessPayrollHandler(
	tx common.Transactor,
	workers workforce.WorkerRepository,
	treasury *ledger.Treasury,
	clock shared.Clock,
	limiter *rate.Limiter,
) *ProcessPayrollHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &ProcessPayrollHandler{
		tx:       tx,
		workers:  workers,
		treasury: treasury,
		clock:    clock,
		limiter:  limiter,
	}
}

// Handle executes the command
func (h *ProcessPayrollHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ProcessPayrollCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ProcessPayrollCommand")
	}

	now := h.clock.Now()
	lines, err := h.workers.ListPayrollLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}

	employers := EmployersOf(lines)
	response := &ProcessPayrollResponse{
		Employers:    len(employers),
		TotalOwed:    decimal.Zero,
		TotalCharged: decimal.Zero,
	}

	response.Sweep = common.Sweep(ctx, "company", employers, h.limiter, func(ctx context.Context, id uuid.UUID) error {
		var owed, charged decimal.Decimal
		err := h.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			owed, charged, err = h.payEmployer(ctx, id, now)
			return err
		})
		if err != nil {
			return err
		}
		response.TotalOwed = response.TotalOwed.Add(owed)
		response.TotalCharged = response.TotalCharged.Add(charged)
		return nil
	})

	metrics.RecordProcessed("payroll", "paid", response.Sweep.Processed)
	metrics.RecordProcessed("payroll", "error", response.Sweep.Failed)
	metrics.RecordBalanceDebit(ledger.TransactionTypePayroll.String(), response.TotalCharged.InexactFloat64())

	common.LoggerFromContext(ctx).Info("payroll processed",
		"employers", response.Employers,
		"owed", response.TotalOwed.String(),
		"charged", response.TotalCharged.String(),
	)
	return response, nil
}

// payEmployer recomputes the employer's bill inside the transaction so a
// worker hired or fired since listing is billed correctly
func (h *ProcessPayrollHandler) payEmployer(ctx context.Context, employerID uuid.UUID, now time.Time) (decimal.Decimal, decimal.Decimal, error) {
	lines, err := h.workers.ListPayrollLinesForEmployer(ctx, employerID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to load payroll lines: %w", err)
	}

	owed := SumWages(lines)
	if !owed.IsPositive() {
		return decimal.Zero, decimal.Zero, common.ErrSkip
	}

	charged, err := h.treasury.Debit(ctx, ledger.Charge{
		CompanyID:   employerID,
		Amount:      owed,
		Type:        ledger.TransactionTypePayroll,
		Description: fmt.Sprintf("Hourly payroll for %d workers", len(lines)),
		Metadata:    map[string]interface{}{"workers": len(lines)},
		Timestamp:   now,
	})
	if err != nil {
		if shared.IsNotFound(err) {
			return decimal.Zero, decimal.Zero, common.ErrSkip
		}
		return decimal.Zero, decimal.Zero, err
	}

	if charged.LessThan(owed) {
		common.LoggerFromContext(ctx).Warn("employer could not cover payroll",
			"company_id", employerID,
			"owed", owed.String(),
			"charged", charged.String(),
		)
	}
	return owed, charged, nil
}

// EmployersOf returns the distinct employers of the lines in a stable order
func EmployersOf(lines []workforce.PayrollLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	employers := make([]uuid.UUID, 0)
	for _, l := range lines {
		if _, ok := seen[l.EmployerID]; ok {
			continue
		}
		seen[l.EmployerID] = struct{}{}
		employers = append(employers, l.EmployerID)
	}
	sort.Slice(employers, func(i, j int) bool {
		return employers[i].String() < employers[j].String()
	})
	return employers
}

// SumWages adds up the hourly wages of the lines
func SumWages(lines []workforce.PayrollLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.HourlyWage)
	}
	return total
}
