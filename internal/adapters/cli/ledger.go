package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/carrierplus-go/internal/application/ledger/queries"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Company balance history",
	}

	cmd.AddCommand(newLedgerTransactionsCommand())

	return cmd
}

func newLedgerTransactionsCommand() *cobra.Command {
	var (
		companyID string
		txType    string
		limit     int
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List a company's balance changes",
		Long: `List the transactions written by simulation charges, newest first.

Transaction Types:
  PAYROLL        - Hourly wages of employed workers
  DEATH_PENALTY  - Charge for a worker who died of an untreated injury

Example:
  carrierplus ledger transactions --company 3f1c... --type PAYROLL --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(companyID)
			if err != nil {
				return fmt.Errorf("invalid --company: %w", err)
			}

			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			eng, err := s.engine()
			if err != nil {
				return err
			}

			query := &queries.GetTransactionsQuery{CompanyID: id, Limit: limit, Offset: offset}
			if txType != "" {
				query.TransactionType = &txType
			}

			result, err := eng.Mediator().Send(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to query transactions: %w", err)
			}
			displayTransactions(result.(*queries.GetTransactionsResponse))
			return nil
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID [required]")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func displayTransactions(response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Println("No transactions found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Timestamp\tType\tAmount\tBefore\tAfter\tDescription")
	fmt.Fprintln(w, "─────────\t────\t──────\t──────\t─────\t───────────")
	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Type,
			tx.Amount,
			tx.BalanceBefore,
			tx.BalanceAfter,
			tx.Description,
		)
	}
	_ = w.Flush()
}
