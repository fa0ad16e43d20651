package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/networth/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		// The dashboard owns the terminal; only errors may reach stderr.
		logger = logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))

		svc, c, err := newService()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			return fmt.Errorf("portfolio api unreachable at %s: %w", cfg.API.BaseURL, err)
		}

		app := tui.NewApp(svc)
		p := tea.NewProgram(app, tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
