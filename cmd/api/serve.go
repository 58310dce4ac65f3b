package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"clepsydra-backend/config"
	"clepsydra-backend/internal/delivery/http/middleware"
	v1 "clepsydra-backend/internal/delivery/http/v1"
	"clepsydra-backend/internal/domain"
	"clepsydra-backend/internal/repository/memory"
	"clepsydra-backend/internal/repository/postgres"
	"clepsydra-backend/internal/repository/sqlite"
	"clepsydra-backend/internal/usecase"
	"clepsydra-backend/pkg/database"
	"clepsydra-backend/pkg/email"
	"clepsydra-backend/pkg/logger"
	"clepsydra-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact backend",
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"mail_transport", cfg.MailTransport,
	)

	// 3. Setup Submission Store
	repo, closeStore, err := newContactRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	var cache usecase.Pinger
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable - rate limiting uses in-memory fallback", "error", err)
		} else {
			defer redisClient.Close()
			cache = redis.HealthChecker{Client: redisClient}
		}
	}

	// 5. Setup Mailer and Notifier
	mailer, err := newMailer(ctx, cfg)
	if err != nil {
		return err
	}
	notifier := usecase.NewContactNotifier(mailer, notifierConfig(cfg))

	// 6. Setup UseCases
	contactUC := usecase.NewContactUsecase(
		usecase.NewContactValidator(cfg.Site.ServiceValues()),
		repo,
		notifier,
		cfg.Site.Services,
	)
	healthUC := usecase.NewHealthUsecase(repo, cache)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			Limit:     cfg.ContactRateLimit,
			Window:    cfg.ContactRateWindow,
			KeyPrefix: "rl:contact:",
		}, redisClient),
		Config: cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful Shutdown
	select {
	case err := <-errCh:
		if err != nil {
			logger.Log.Error("Listen failed", "error", err)
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}

func newContactRepository(ctx context.Context, cfg *config.Config) (domain.ContactRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewContactRepository(pool), pool.Close, nil

	case config.StorageSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return sqlite.NewContactRepository(db), closeFn, nil

	default:
		logger.Log.Warn("Using in-memory submission store - submissions are lost on restart")
		return memory.NewContactRepository(), func() {}, nil
	}
}

func newMailer(ctx context.Context, cfg *config.Config) (email.Mailer, error) {
	switch cfg.MailTransport {
	case config.MailTransportSES:
		m, err := email.NewSESMailer(ctx, email.SESOptions{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
			ConfigSet:       cfg.SESConfigSet,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to set up SES mailer: %w", err)
		}
		return m, nil

	case config.MailTransportNone:
		return email.LogMailer{}, nil

	default:
		m := email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPTimeout)
		if !m.IsConfigured() {
			logger.Log.Warn("SMTP not fully configured - contact notifications will fail")
		}
		return m, nil
	}
}

func notifierConfig(cfg *config.Config) usecase.NotifierConfig {
	site := cfg.Site

	loc, err := time.LoadLocation(site.Timezone)
	if err != nil {
		logger.Log.Warn("Unknown site timezone, using UTC", "timezone", site.Timezone)
		loc = time.UTC
	}

	labels := make(map[string]string, len(site.Services))
	for _, s := range site.Services {
		labels[s.Value] = s.Label
	}

	return usecase.NotifierConfig{
		From:           cfg.MailFrom,
		BusinessTo:     cfg.ContactEmailTo,
		CompanyName:    site.CompanyName,
		Tagline:        site.Tagline,
		WebsiteURL:     site.WebsiteURL,
		SupportEmail:   site.SupportEmail,
		SupportPhone:   site.SupportPhone,
		WhatsAppURL:    site.WhatsAppURL,
		ResponseWindow: site.ResponseWindow,
		Location:       loc,
		ServiceLabels:  labels,
	}
}
