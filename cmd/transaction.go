package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"txn"},
	Short:   "Inspect transactions",
}

var txnListLimit int

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions across all portfolios, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		txns, err := svc.Transactions(context.Background(), txnListLimit)
		if err != nil {
			return err
		}
		if len(txns) == 0 {
			fmt.Println("No transactions found.")
			return nil
		}
		fmt.Printf("  %-16s %-4s %-8s %10s  %s\n", "DATE", "TYPE", "TICKER", "QTY", "PORTFOLIO")
		for _, t := range txns {
			printTransaction(t)
		}
		return nil
	},
}

func init() {
	transactionListCmd.Flags().IntVar(&txnListLimit, "limit", -1, "Maximum number of transactions (negative for all)")
	transactionCmd.AddCommand(transactionListCmd)
	rootCmd.AddCommand(transactionCmd)
}
