package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/networth/internal/portfolio"
	"github.com/spf13/cobra"
)

var assetCmd = &cobra.Command{
	Use:   "asset",
	Short: "Manage holdings within a portfolio",
}

var (
	assetTicker   string
	assetQuantity float64
	tradeType     string
	tradeQuantity int
)

var assetAddCmd = &cobra.Command{
	Use:   "add <portfolio-id>",
	Short: "Add a new holding to a portfolio",
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
		if err := svc.AddAsset(context.Background(), id, assetTicker, assetQuantity); err != nil {
			return err
		}
		fmt.Printf("Added %s x %v to portfolio %d\n", portfolio.NormalizeTicker(assetTicker), assetQuantity, id)
		return nil
	},
}

var assetTradeCmd = &cobra.Command{
	Use:   "trade <portfolio-id>",
	Short: "Buy or sell shares of an existing holding",
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
		if err := svc.Trade(context.Background(), id, assetTicker, tradeType, tradeQuantity); err != nil {
			return err
		}
		tt, _ := portfolio.ParseTradeType(tradeType)
		fmt.Printf("%s %d %s in portfolio %d\n", tt, tradeQuantity, portfolio.NormalizeTicker(assetTicker), id)
		return nil
	},
}

func init() {
	assetAddCmd.Flags().StringVar(&assetTicker, "ticker", "", "Ticker symbol (required)")
	assetAddCmd.Flags().Float64Var(&assetQuantity, "quantity", 0, "Number of shares (required)")
	assetAddCmd.MarkFlagRequired("ticker")
	assetAddCmd.MarkFlagRequired("quantity")

	assetTradeCmd.Flags().StringVar(&assetTicker, "ticker", "", "Ticker symbol (required)")
	assetTradeCmd.Flags().StringVar(&tradeType, "type", "BUY", "BUY or SELL")
	assetTradeCmd.Flags().IntVar(&tradeQuantity, "quantity", 0, "Whole number of shares (required)")
	assetTradeCmd.MarkFlagRequired("ticker")
	assetTradeCmd.MarkFlagRequired("quantity")

	assetCmd.AddCommand(assetAddCmd)
	assetCmd.AddCommand(assetTradeCmd)
	rootCmd.AddCommand(assetCmd)
}
