package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/simonvc/networth/internal/networth"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show net worth, portfolios and recent transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		ov, err := svc.Overview(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Net worth: %s\n\n", portfolio.FormatMoney(ov.NetWorth))

		if len(ov.Rows) == 0 {
			fmt.Println("No portfolios found.")
			return nil
		}
		fmt.Printf("%-6s %-24s %-8s %16s %10s\n", "ID", "NAME", "EXCHANGE", "VALUE", "WEEKLY")
		fmt.Printf("%-6s %-24s %-8s %16s %10s\n", "--", "----", "--------", "-----", "------")
		for _, r := range ov.Rows {
			fmt.Printf("%-6d %-24s %-8s %16s %10s\n",
				r.Portfolio.ID, clip(r.Portfolio.Name, 24), r.Portfolio.Exchange, money(r.Value), percent(r.WeeklyChange))
		}

		fmt.Println()
		fmt.Println("Recent transactions:")
		if len(ov.Recent) == 0 {
			fmt.Println("  none")
		}
		for _, t := range ov.Recent {
			printTransaction(t)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func money(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return portfolio.FormatMoney(decimal.NewFromFloat(*v))
}

func percent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return portfolio.FormatPercent(*v)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-2] + ".."
}

func printTransaction(t networth.TransactionLine) {
	when := "-"
	if !t.DateTime.IsZero() {
		when = t.DateTime.Format("2006-01-02 15:04")
	}
	fmt.Printf("  %-16s %-4s %-8s %10s  %s\n",
		when, t.Type, t.Ticker, decimal.NewFromFloat(t.Quantity).String(), t.Portfolio)
}
