package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/simonvc/networth/internal/scheduler"
	"github.com/simonvc/networth/internal/server"
	"github.com/simonvc/networth/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API and the snapshot schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd, false)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.listen)")
	rootCmd.AddCommand(serveCmd)
}

// listener is what runServer starts: the API alone or with the dashboard.
type listener interface {
	ListenAndServe() error
}

func runServer(cmd *cobra.Command, withDashboard bool) error {
	if cmd.Flags().Changed("addr") {
		cfg.Server.Listen = serveAddr
	}

	svc, _, err := newService()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Database.SQLitePath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched := scheduler.New(ctx, svc, st, logger)
	if err := sched.Register(cfg.Snapshot.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	api := server.New(svc, st, cfg.Server.Listen, logger)
	var srv listener = api
	if withDashboard {
		srv = newDashboard(api, svc)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down", zap.String("addr", cfg.Server.Listen))
		return nil
	}
}
