package main

import (
	"errors"
	"fmt"

	"clepsydra-backend/config"
	"clepsydra-backend/pkg/database"
	"clepsydra-backend/pkg/logger"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply postgres schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger.Init(cfg.LogLevel)

			if cfg.DBUrl == "" {
				return errors.New("DATABASE_URL is required for migrations")
			}
			if err := database.Migrate(cmd.Context(), cfg.DBUrl, args[0]); err != nil {
				return err
			}
			logger.Log.Info("Migration finished", "command", args[0])
			return nil
		},
	}
}
