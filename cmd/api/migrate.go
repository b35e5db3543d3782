package main

import (
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/audiencelab/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema and seed reference data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("setting up database: %w", err)
		}

		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}

		slog.InfoContext(cmd.Context(), "migration complete", "database", cfg.Database.Name)
		return nil
	},
}
