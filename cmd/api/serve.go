package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/config"
	"github.com/dangerclosesec/audiencelab/internal/database"
	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/dangerclosesec/audiencelab/internal/email"
	"github.com/dangerclosesec/audiencelab/internal/email/mailer"
	"github.com/dangerclosesec/audiencelab/internal/genai"
	"github.com/dangerclosesec/audiencelab/internal/handler"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/repository"
	"github.com/dangerclosesec/audiencelab/internal/service"
	"github.com/spf13/cobra"
)

var autoMigrate bool

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Migrate the schema before serving")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := slog.Default()

	// Initialize database
	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}
	if autoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	store := repository.NewStore(db)
	validate := domain.NewValidator()
	m := metrics.New()

	// Initialize auth services
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service
	emailService, err := email.NewEmailService(cfg, nil)
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}
	if !emailService.Enabled() {
		logger.WarnContext(ctx, "email delivery disabled", "provider", cfg.Email.Provider)
	}
	notifier := mailer.NewMemberJoinedNotifier(emailService, cfg.BaseURL)

	var generator genai.Generator = genai.Unavailable{}
	client, err := genai.NewClient(ctx, &genai.Config{
		BaseURL: cfg.GenAI.BaseURL,
		APIKey:  cfg.GenAI.APIKey,
		Model:   cfg.GenAI.Model,
		Timeout: cfg.GenAI.Timeout,
	})
	switch {
	case errors.Is(err, genai.ErrNotConfigured):
		logger.WarnContext(ctx, "generation disabled", "reason", "GENAI_API_KEY not set")
	case err != nil:
		return fmt.Errorf("initializing generation client: %w", err)
	default:
		generator = client
	}

	// Initialize services
	auditService := service.NewAccessAuditService(store)
	cache := service.NewCredentialCache(service.CacheConfig{Size: cfg.AppCache.Size, TTL: cfg.AppCache.TTL}, m)
	accounts := service.NewAccountService(store, hasher, tokens, notifier, validate)
	applications := service.NewApplicationService(store, cache, auditService, m, validate)
	analyticsService := service.NewAnalyticsService(store, applications)
	personas := service.NewPersonaService(store, auditService, validate)
	campaigns := service.NewCampaignService(store, personas, auditService, validate)
	contents := service.NewContentService(store, auditService, validate)
	generation := service.NewGenerationService(store, generator, applications, personas, campaigns, m, validate)
	catalog := service.NewCatalogService(store)

	// Initialize handlers
	rs := handler.NewResponder(!cfg.IsProduction())
	router := handler.NewRouter(handler.RouterConfig{
		Logger:       logger,
		Metrics:      m,
		Responder:    rs,
		Sessions:     auth.NewSessionAuthenticator(cfg.Session.CookieName, tokens),
		Applications: auth.NewApplicationAuthenticator(applications, applications),
		Timeout:      cfg.Server.WriteTimeout,

		AllowedOrigins: cfg.CORS.AllowedOrigins,

		Auth: handler.NewAuthHandler(accounts, handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.IsProduction(),
			MaxAge: tokens.ExpiryPeriod(),
		}, rs),
		Apps:       handler.NewApplicationHandler(applications, rs),
		Analytics:  handler.NewAnalyticsHandler(analyticsService, rs),
		Personas:   handler.NewPersonaHandler(personas, rs),
		Campaigns:  handler.NewCampaignHandler(campaigns, rs),
		Contents:   handler.NewContentHandler(contents, rs),
		Generation: handler.NewGenerationHandler(generation, rs),
		Catalog:    handler.NewCatalogHandler(catalog, rs),
		AuditLogs:  handler.NewAuditLogHandler(auditService, rs),
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.InfoContext(ctx, "server starting", "port", cfg.Server.Port, "environment", cfg.Environment)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.InfoContext(ctx, "shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
