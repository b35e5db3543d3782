// Command genai prints the prompt and response schema a generation request
// would send, built from live tenant data, without calling the model.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dangerclosesec/audiencelab/internal/analytics"
	"github.com/dangerclosesec/audiencelab/internal/config"
	"github.com/dangerclosesec/audiencelab/internal/database"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/genai"
	"github.com/dangerclosesec/audiencelab/internal/generation"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	orgID      string
	showSchema bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&orgID, "org", "", "Organization id the data is read from")
	rootCmd.PersistentFlags().BoolVar(&showSchema, "schema", false, "Also print the response schema")
	rootCmd.MarkPersistentFlagRequired("org")

	contentCmd.Flags().StringVar(&contentTitle, "title", "", "Content title or theme")
	contentCmd.Flags().StringSliceVar(&contentPlatforms, "platforms", nil, "Comma separated platforms")
	contentCmd.Flags().StringVar(&contentContext, "context", "", "Additional context")

	rootCmd.AddCommand(personaCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(contentCmd)
}

var rootCmd = &cobra.Command{
	Use:          "genai",
	Short:        "Preview generation prompts",
	SilenceUsage: true,
}

var personaCmd = &cobra.Command{
	Use:   "persona [applicationId]",
	Short: "Preview the persona prompt for an application's platform users",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store, org uuid.UUID) error {
			app, err := store.Applications.FindByApplicationID(ctx, org, args[0])
			if err != nil {
				return err
			}
			users, err := store.PlatformUsers.ListByApplication(ctx, org, app.ID)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				return domain.ErrInsufficientData
			}

			prompt, err := generation.PersonaPrompt(analytics.Summarize(users))
			if err != nil {
				return err
			}
			return preview(cmd.OutOrStdout(), prompt, generation.PersonaSchema())
		})
	},
}

var campaignCmd = &cobra.Command{
	Use:   "campaign [personaId]",
	Short: "Preview the campaign prompt for a persona",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid persona id: %w", err)
		}

		return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store, org uuid.UUID) error {
			persona, err := store.Personas.FindByID(ctx, org, id)
			if err != nil {
				return err
			}

			prompt, err := generation.CampaignPrompt(persona)
			if err != nil {
				return err
			}
			return preview(cmd.OutOrStdout(), prompt, generation.CampaignSchema())
		})
	},
}

var (
	contentTitle     string
	contentPlatforms []string
	contentContext   string
)

var contentCmd = &cobra.Command{
	Use:   "content [campaignId]",
	Short: "Preview the content prompt for a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid campaign id: %w", err)
		}
		if strings.TrimSpace(contentTitle) == "" || len(contentPlatforms) == 0 {
			return fmt.Errorf("--title and --platforms are required")
		}

		return withStore(cmd.Context(), func(ctx context.Context, store *repository.Store, org uuid.UUID) error {
			campaign, err := store.Campaigns.FindByID(ctx, org, id)
			if err != nil {
				return err
			}

			prompt, err := generation.ContentPrompt(generation.ContentInput{
				Campaign:          campaign,
				Persona:           campaign.Persona,
				Title:             contentTitle,
				Platforms:         contentPlatforms,
				AdditionalContext: contentContext,
			})
			if err != nil {
				return err
			}
			return preview(cmd.OutOrStdout(), prompt, generation.ContentSchema(contentPlatforms))
		})
	},
}

func withStore(ctx context.Context, fn func(context.Context, *repository.Store, uuid.UUID) error) error {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return fmt.Errorf("invalid organization id: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	return fn(ctx, repository.NewStore(db), org)
}

func preview(w io.Writer, prompt string, schema *genai.Schema) error {
	fmt.Fprintln(w, prompt)
	if !showSchema {
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
