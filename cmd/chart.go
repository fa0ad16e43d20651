package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/simonvc/networth/internal/series"
	"github.com/spf13/cobra"
)

var chartJSON bool

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Show every portfolio's value history on one date axis",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		chart, err := svc.Chart(context.Background())
		if err != nil {
			return err
		}

		if chartJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(chart.Datasets())
		}

		if len(chart.Axis) == 0 {
			fmt.Println("No portfolio history available.")
			return nil
		}

		fmt.Printf("%-10s", "DATE")
		for _, a := range chart.Aligned {
			fmt.Printf(" %14s", clip(a.Name, 14))
		}
		fmt.Printf(" %14s\n", "TOTAL")

		total := chart.Total()
		for i, d := range chart.Axis {
			fmt.Printf("%-10s", d)
			for _, a := range chart.Aligned {
				fmt.Printf(" %14s", chartCell(a.Values[i]))
			}
			fmt.Printf(" %14s\n", chartCell(total[i]))
		}

		for _, r := range chart.Rejected {
			fmt.Fprintf(os.Stderr, "left out %s: %v\n", r.Name, r.Err)
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().BoolVar(&chartJSON, "json", false, "Print the chart payload as JSON")
	rootCmd.AddCommand(chartCmd)
}

func chartCell(v series.Value) string {
	if !v.Present {
		return v.String()
	}
	return fmt.Sprintf("%.2f", v.Amount)
}
