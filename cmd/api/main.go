package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"robotdemo/internal/app"
	"robotdemo/internal/config"
	"robotdemo/internal/database"
	"robotdemo/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "robotdemo",
		Short:         "Robot fleet demo API with cookie sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newMigrateCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lg, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg, lg)
			if err != nil {
				lg.Errorw("startup failed", "error", err)
				return err
			}
			if err := a.Run(ctx, shutdownTimeout); err != nil {
				lg.Errorw("server stopped", "error", err)
				return err
			}
			lg.Infow("shutdown complete")
			return nil
		},
	}
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Grace period for in-flight requests")
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and seed the demo robots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lg, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is empty")
			}
			db, err := database.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			return database.Migrate(cmd.Context(), db, lg)
		},
	}
}

func setup() (config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger.New(cfg.LogLevel), nil
}
