package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/simonvc/networth/internal/client"
	"github.com/simonvc/networth/internal/portfolio"
	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:     "portfolio",
	Aliases: []string{"pf"},
	Short:   "Manage portfolios",
}

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolios",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, c, err := newService()
		if err != nil {
			return err
		}
		portfolios, err := c.ListPortfolios(context.Background())
		if err != nil {
			return err
		}
		if len(portfolios) == 0 {
			fmt.Println("No portfolios found.")
			return nil
		}
		fmt.Printf("%-6s %-30s %s\n", "ID", "NAME", "EXCHANGE")
		fmt.Printf("%-6s %-30s %s\n", "--", "----", "--------")
		for _, p := range portfolios {
			fmt.Printf("%-6d %-30s %s\n", p.ID, clip(p.Name, 30), p.Exchange)
		}
		return nil
	},
}

// portfolio create
var (
	pfCreateName     string
	pfCreateExchange string
	pfCreateTicker   string
	pfCreateQuantity float64
)

var portfolioCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a portfolio with its first holding",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		p, err := svc.CreatePortfolio(context.Background(), client.NewPortfolio{
			Name:     pfCreateName,
			Exchange: pfCreateExchange,
			Ticker:   pfCreateTicker,
			Quantity: pfCreateQuantity,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Portfolio created: %d %s (%s)\n", p.ID, p.Name, p.Exchange)
		return nil
	},
}

var portfolioShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a portfolio's value, holdings and transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		svc, _, err := newService()
		if err != nil {
			return err
		}
		v, err := svc.Portfolio(context.Background(), id)
		if err != nil {
			return err
		}

		fmt.Printf("Portfolio:      %s (%s)\n", v.Portfolio.Name, v.Portfolio.Exchange)
		fmt.Printf("Value:          %s\n", money(v.Value))
		fmt.Printf("Yearly change:  %s\n", percent(v.YearlyChange))
		fmt.Printf("Weekly average: %s\n", percent(v.WeeklyAverage))
		fmt.Printf("Stocks:         %d\n", v.StockCount())

		fmt.Println()
		fmt.Println("Holdings:")
		if len(v.Assets) == 0 {
			fmt.Println("  none")
		}
		for _, sh := range portfolio.Composition(v.Assets) {
			fmt.Printf("  %-10s %12s %7.1f%%\n", sh.Ticker, strconv.FormatFloat(sh.Quantity, 'f', -1, 64), sh.Pct)
		}

		fmt.Println()
		fmt.Println("Transactions:")
		if len(v.Transactions) == 0 {
			fmt.Println("  none")
		}
		for _, t := range v.Transactions {
			printTransaction(t)
		}
		return nil
	},
}

func init() {
	portfolioCreateCmd.Flags().StringVar(&pfCreateName, "name", "", "Portfolio name (required)")
	portfolioCreateCmd.Flags().StringVar(&pfCreateExchange, "exchange", "", "Exchange the holdings trade on")
	portfolioCreateCmd.Flags().StringVar(&pfCreateTicker, "ticker", "", "First holding's ticker (required)")
	portfolioCreateCmd.Flags().Float64Var(&pfCreateQuantity, "quantity", 0, "First holding's quantity (required)")
	portfolioCreateCmd.MarkFlagRequired("name")
	portfolioCreateCmd.MarkFlagRequired("ticker")
	portfolioCreateCmd.MarkFlagRequired("quantity")

	portfolioCmd.AddCommand(portfolioListCmd)
	portfolioCmd.AddCommand(portfolioCreateCmd)
	portfolioCmd.AddCommand(portfolioShowCmd)
	rootCmd.AddCommand(portfolioCmd)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid portfolio id %q", s)
	}
	return id, nil
}
