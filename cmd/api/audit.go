package main

import (
	"encoding/json"
	"fmt"

	"github.com/dangerclosesec/audiencelab/internal/database"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/spf13/cobra"
)

var auditParams repository.QueryParams

func init() {
	auditCmd.Flags().StringVar(&auditParams.ActionType, "action", "", "Only show entries with this action type (cross_tenant_access, resource_missing, app_unknown)")
	auditCmd.Flags().StringVar(&auditParams.EntityType, "entity", "", "Only show entries for this entity type")
	auditCmd.Flags().IntVar(&auditParams.Limit, "limit", 50, "Maximum number of entries")
	auditCmd.Flags().IntVar(&auditParams.Offset, "offset", 0, "Entries to skip")
}

// auditCmd prints the audit entries that are never served to tenants, one JSON
// object per line.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "List operator audit entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(cfg)
		if err != nil {
			return fmt.Errorf("setting up database: %w", err)
		}

		page, err := service.NewAccessAuditService(repository.NewStore(db)).QueryOperator(cmd.Context(), auditParams)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, entry := range page.Logs {
			if err := enc.Encode(entry); err != nil {
				return err
			}
		}
		cmd.PrintErrf("%d of %d entries\n", len(page.Logs), page.Total)
		return nil
	},
}
