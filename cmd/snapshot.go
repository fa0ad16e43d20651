package cmd

import (
	"context"
	"fmt"

	"github.com/simonvc/networth/internal/portfolio"
	"github.com/simonvc/networth/internal/scheduler"
	"github.com/simonvc/networth/internal/store"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Record and inspect net-worth snapshots",
}

var snapshotTakeCmd = &cobra.Command{
	Use:   "take",
	Short: "Value every portfolio now and record the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		st, err := store.Open(cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		snap, err := scheduler.New(context.Background(), svc, st, logger).RunNow()
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

var snapshotListLimit int

var snapshotListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"history"},
	Short:   "List recorded snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		snaps, err := st.List(context.Background(), snapshotListLimit)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("No snapshots recorded.")
			return nil
		}
		fmt.Printf("%-36s %-20s %16s\n", "ID", "TAKEN", "NET WORTH")
		fmt.Printf("%-36s %-20s %16s\n", "--", "-----", "---------")
		for _, s := range snaps {
			fmt.Printf("%-36s %-20s %16s\n", s.ID, s.TakenAt.Format("2006-01-02 15:04:05"), portfolio.FormatMoney(s.NetWorth))
		}
		return nil
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one snapshot with per-portfolio values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		snap, err := st.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		printSnapshot(snap)
		return nil
	},
}

func init() {
	snapshotListCmd.Flags().IntVar(&snapshotListLimit, "limit", 30, "Maximum number of snapshots")
	snapshotCmd.AddCommand(snapshotTakeCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func printSnapshot(s *store.Snapshot) {
	fmt.Printf("Snapshot:  %s\n", s.ID)
	fmt.Printf("Taken:     %s\n", s.TakenAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Net worth: %s\n\n", portfolio.FormatMoney(s.NetWorth))
	for _, l := range s.Lines {
		value := "n/a"
		if l.Value != nil {
			value = portfolio.FormatMoney(*l.Value)
		}
		fmt.Printf("  %-6d %-24s %16s\n", l.PortfolioID, clip(l.Name, 24), value)
	}
}
