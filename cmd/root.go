package cmd

import (
	"fmt"

	"github.com/simonvc/networth/internal/client"
	"github.com/simonvc/networth/internal/config"
	"github.com/simonvc/networth/internal/networth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	flagConfig string
	flagServer string
	flagToken  string
	flagDB     string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "networth",
	Short:         "Portfolio net-worth dashboard",
	Long:          "Tracks the combined value of your investment portfolios from the command line, a terminal dashboard or a browser.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			cfg.API.BaseURL = flagServer
		}
		if cmd.Flags().Changed("token") {
			cfg.API.Token = flagToken
		}
		if cmd.Flags().Changed("db") {
			cfg.Database.SQLitePath = flagDB
		}
		logger, err = newLogger(cfg)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "networth.yaml", "Config file")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:3000", "Portfolio API address")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Portfolio API bearer token")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "networth.db", "SQLite snapshot database path")
}

func Execute() error {
	return rootCmd.Execute()
}

func newLogger(c *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Log.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// newService connects to the portfolio API described by the loaded config.
func newService() (*networth.Service, *client.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	c := client.New(cfg.API.BaseURL, cfg.API.Token)
	return networth.NewService(c, logger), c, nil
}
