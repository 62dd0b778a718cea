package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv            string
	Port              string
	DataBackend       string
	DatabaseURL       string
	JWTSecret         string
	SessionTTL        time.Duration
	Timezone          string
	Location          *time.Location
	HTTPReadTimeout   time.Duration
	HTTPWriteTimeout  time.Duration
	HTTPIdleTimeout   time.Duration
	LoginRatePerMin   int
	CORSOrigins       []string
	ExpenseCategories []string

	AMQPURL      string
	AMQPExchange string

	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	MailFrom            string
	StatementRecipients []string

	GenerateSchedule string
	ArchivePath      string
	OrganizationName string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		DataBackend:         strings.ToLower(getEnv("DATA_BACKEND", BackendPostgres)),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		SessionTTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
		Timezone:            getEnv("TIMEZONE", "UTC"),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		LoginRatePerMin:     getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 10),
		CORSOrigins:         getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ExpenseCategories:   getEnvList("EXPENSE_CATEGORIES", nil),
		AMQPURL:             os.Getenv("AMQP_URL"),
		AMQPExchange:        getEnv("AMQP_EXCHANGE", "donorbook.events"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            getEnvInt("SMTP_PORT", 587),
		SMTPUsername:        os.Getenv("SMTP_USERNAME"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		MailFrom:            os.Getenv("MAIL_FROM"),
		StatementRecipients: getEnvList("STATEMENT_RECIPIENTS", nil),
		GenerateSchedule:    getEnv("GENERATE_SCHEDULE", "0 6 1 * *"),
		ArchivePath:         os.Getenv("ARCHIVE_PATH"),
		OrganizationName:    getEnv("ORGANIZATION_NAME", "Donorbook"),
	}

	switch cfg.DataBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	case BackendMemory:
	default:
		return nil, fmt.Errorf("DATA_BACKEND must be %q or %q", BackendPostgres, BackendMemory)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

// MailEnabled reports whether statement e-mails can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != "" && len(c.StatementRecipients) > 0
}

// Now returns the current time in the configured location.
func (c *Config) Now() time.Time {
	if c.Location == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Location)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
