package config

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Mail transports
const (
	MailTransportSMTP = "smtp"
	MailTransportSES  = "ses"
	MailTransportNone = "none"
)

type Config struct {
	Port        string `env:"PORT,default=8080"`
	GinMode     string `env:"GIN_MODE,default=debug"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	FrontendURL string `env:"FRONTEND_URL,default=http://localhost:3000"`
	// Extra allowed CORS origins, comma separated
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS"`

	// Storage
	StorageDriver string `env:"STORAGE_DRIVER,default=memory"`
	DBUrl         string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH,default=clepsydra.db"`

	// Mail
	MailTransport string `env:"MAIL_TRANSPORT,default=smtp"`
	SMTPHost      string `env:"SMTP_HOST,default=smtp.gmail.com"`
	SMTPPort      string `env:"SMTP_PORT,default=587"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`
	// Bounds dial plus the whole SMTP conversation
	SMTPTimeout time.Duration `env:"SMTP_TIMEOUT,default=15s"`
	// Sender and business inbox are configured independently
	MailFrom       string `env:"MAIL_FROM"`
	ContactEmailTo string `env:"CONTACT_EMAIL_TO,default=clepsydratechnologies@gmail.com"`
	SESRegion      string `env:"SES_REGION,default=us-east-1"`
	SESConfigSet   string `env:"SES_CONFIGURATION_SET"`
	// Static SES credentials; the default AWS chain is used when empty
	SESAccessKeyID     string `env:"SES_ACCESS_KEY_ID"`
	SESSecretAccessKey string `env:"SES_SECRET_ACCESS_KEY"`

	// Redis/Upstash Configuration
	UpstashRedisURL      string `env:"UPSTASH_REDIS_URL"`
	UpstashRedisPassword string `env:"UPSTASH_REDIS_PASSWORD"`

	// Rate Limiting Configuration
	ContactRateLimit  int           `env:"CONTACT_RATE_LIMIT,default=5"`
	ContactRateWindow time.Duration `env:"CONTACT_RATE_WINDOW,default=1m"`

	// Admin read API
	AdminJWTSecret string `env:"ADMIN_JWT_SECRET"`

	SiteConfigPath string `env:"SITE_CONFIG_PATH"`
	Site           *Site
}

// to help with testing
var envProcess = envconfig.Process

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	var cfg Config
	if err := envProcess(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	cfg.MailTransport = strings.ToLower(strings.TrimSpace(cfg.MailTransport))
	if cfg.MailFrom == "" {
		cfg.MailFrom = cfg.SMTPUsername
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	site, err := LoadSite(cfg.SiteConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Site = site

	if cfg.MailTransport == MailTransportSMTP && (cfg.SMTPUsername == "" || cfg.SMTPPassword == "") {
		log.Println("WARNING: SMTP_USERNAME/SMTP_PASSWORD missing. Contact notifications will fail.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if strings.TrimSpace(cfg.DBUrl) == "" {
			errors = append(errors, "DATABASE_URL is required when STORAGE_DRIVER=postgres")
		}
	default:
		errors = append(errors, fmt.Sprintf("STORAGE_DRIVER must be one of memory, postgres, sqlite (got %q)", cfg.StorageDriver))
	}

	switch cfg.MailTransport {
	case MailTransportSMTP, MailTransportSES, MailTransportNone:
	default:
		errors = append(errors, fmt.Sprintf("MAIL_TRANSPORT must be one of smtp, ses, none (got %q)", cfg.MailTransport))
	}

	if cfg.MailTransport != MailTransportNone && strings.TrimSpace(cfg.ContactEmailTo) == "" {
		errors = append(errors, "CONTACT_EMAIL_TO is required")
	}

	if cfg.SMTPTimeout <= 0 {
		errors = append(errors, "SMTP_TIMEOUT must be positive")
	}

	if cfg.ContactRateLimit < 0 {
		errors = append(errors, "CONTACT_RATE_LIMIT must be non-negative")
	}
	if cfg.ContactRateWindow <= 0 {
		errors = append(errors, "CONTACT_RATE_WINDOW must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "; "))
	}
	return nil
}

// IsProduction mirrors gin's release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
