package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret                string
	JWTExpiry                time.Duration
	TokenPasswordResetExpiry time.Duration

	// Email (RESEND_API_KEY optional in development, emails are logged instead)
	EmailFrom    string
	ResendAPIKey string

	// Advisor (LLM provider selection and endpoints)
	LLMProvider    string // "ollama" or "openai"
	OllamaURL      string
	OllamaModel    string
	OpenAIBaseURL  string
	OpenAIAPIKey   string
	OpenAIModel    string
	AdvisorTimeout time.Duration

	// Progress
	PacingThreshold float64 // percentage points around the expected trajectory

	// Scheduler cron specs
	WeeklyProgressSpec string
	DeadlineCheckSpec  string

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "Financial Advisor"),
		AppEnv:       envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:       envString("APP_URL", "http://localhost:8090"),
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "hello@example.com"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/advisor.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:                envRequired("JWT_SECRET"),
		JWTExpiry:                envDuration("JWT_EXPIRY", 24*time.Hour),
		TokenPasswordResetExpiry: envDuration("TOKEN_PASSWORD_RESET_EXPIRY", 1*time.Hour),

		// Email
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Advisor
		LLMProvider:    envString("DEFAULT_LLM_PROVIDER", "ollama"),
		OllamaURL:      envString("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:    envString("OLLAMA_MODEL", "llama3.1:8b"),
		OpenAIBaseURL:  envString("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:   envString("OPENAI_API_KEY", ""),
		OpenAIModel:    envString("OPENAI_MODEL", "gpt-4o-mini"),
		AdvisorTimeout: envDuration("ADVISOR_TIMEOUT", 30*time.Second),

		// Progress
		PacingThreshold: envFloat("PACING_THRESHOLD", 5.0),

		// Scheduler (cron specs, local server time)
		WeeklyProgressSpec: envString("WEEKLY_PROGRESS_CRON", "0 9 * * MON"),
		DeadlineCheckSpec:  envString("DEADLINE_CHECK_CRON", "0 8 * * *"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures required services are configured for production
// deployments. Development allows email to fall back to log mode.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envFloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("config invalid float, using default", "key", key, "value", v, "default", def)
		return def
	}
	return f
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
