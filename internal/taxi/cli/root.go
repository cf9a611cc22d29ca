package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/taxi/internal/taxi/app"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/cryptox"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:          "taxi",
		Short:        "Taxi service administration",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading the environment (default: ./.env when present)")

	cmd.AddCommand(
		serveCmd(&envFiles),
		migrateCmd(&envFiles),
		createDriverCmd(&envFiles),
		loadDataCmd(&envFiles),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion)
		},
	}
}

// withStore opens the configured store for a one-shot management command.
// The logger travels in the context handed to fn.
func withStore(ctx context.Context, envFiles []string, fn func(ctx context.Context, db store.Store) error) error {
	cfg, err := app.LoadConfig(envFiles...)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg)
	cryptox.SetPepperPath(cfg.PepperFile)

	db, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", "error", err)
		}
	}()

	return fn(slogx.WithContext(ctx, logger.With(slog.String("component", "cli"))), db)
}
