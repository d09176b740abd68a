package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/SscSPs/library_management_app/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	// Operator credentials for Basic auth and token issuing
	AuthUsername      string
	AuthPassword      string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Lending rules
	LoanDefaultDays          int
	LoanFinePerDay           decimal.Decimal
	LoanMaxActiveLoans       int
	LoanRenewalExtensionDays int
	LoanMaxRenewals          int
	ReservationExpiryDays    int

	// Cache
	CacheMaxSize   int
	CacheEntityTTL time.Duration
	CacheStatusTTL time.Duration

	// Due date notifications; disabled when NotifyWebhookURL is empty
	NotifyWebhookURL    string
	NotifyTimeout       time.Duration
	NotifyRatePerMinute int

	RateLimit          string // ulule limiter format, e.g. "100-M"
	CORSAllowedOrigins []string
	OTLPEndpoint       string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("AUTH_USERNAME", "admin")
	viper.SetDefault("AUTH_PASSWORD", "")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "library-management-app")
	viper.SetDefault("LOAN_DEFAULT_DAYS", 14)
	viper.SetDefault("LOAN_FINE_PER_DAY", "2.00")
	viper.SetDefault("LOAN_MAX_ACTIVE_LOANS", 3)
	viper.SetDefault("LOAN_RENEWAL_EXTENSION_DAYS", 7)
	viper.SetDefault("LOAN_MAX_RENEWALS", 0)
	viper.SetDefault("RESERVATION_EXPIRY_DAYS", 7)
	viper.SetDefault("CACHE_MAX_SIZE", 1000)
	viper.SetDefault("CACHE_ENTITY_TTL", "60s")
	viper.SetDefault("CACHE_STATUS_TTL", "300s")
	viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
	viper.SetDefault("NOTIFY_TIMEOUT", "3s")
	viper.SetDefault("NOTIFY_RATE_PER_MINUTE", 60)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.AuthUsername = viper.GetString("AUTH_USERNAME")
	cfg.AuthPassword = viper.GetString("AUTH_PASSWORD")
	if cfg.AuthPassword == "" {
		log.Println("Warning: AUTH_PASSWORD not set. Every authenticated route will reject Basic credentials.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.LoanDefaultDays = positiveIntOrDefault("LOAN_DEFAULT_DAYS", 14)
	cfg.LoanMaxActiveLoans = positiveIntOrDefault("LOAN_MAX_ACTIVE_LOANS", 3)
	cfg.LoanRenewalExtensionDays = positiveIntOrDefault("LOAN_RENEWAL_EXTENSION_DAYS", 7)
	cfg.ReservationExpiryDays = positiveIntOrDefault("RESERVATION_EXPIRY_DAYS", 7)
	cfg.LoanMaxRenewals = viper.GetInt("LOAN_MAX_RENEWALS")
	if cfg.LoanMaxRenewals < 0 {
		log.Printf("Warning: Invalid value for LOAN_MAX_RENEWALS (%d). Defaulting to unlimited.\n", cfg.LoanMaxRenewals)
		cfg.LoanMaxRenewals = 0
	}

	fineStr := viper.GetString("LOAN_FINE_PER_DAY")
	fine, err := decimal.NewFromString(fineStr)
	if err != nil || fine.IsNegative() {
		fine = decimal.NewFromFloat(2.0)
		log.Printf("Warning: Invalid value for LOAN_FINE_PER_DAY ('%s'). Defaulting to %s.\n", fineStr, fine.StringFixed(2))
	}
	cfg.LoanFinePerDay = fine

	cfg.CacheMaxSize = positiveIntOrDefault("CACHE_MAX_SIZE", 1000)
	cfg.CacheEntityTTL = durationOrDefault("CACHE_ENTITY_TTL", 60*time.Second)
	cfg.CacheStatusTTL = durationOrDefault("CACHE_STATUS_TTL", 300*time.Second)

	cfg.NotifyWebhookURL = viper.GetString("NOTIFY_WEBHOOK_URL")
	cfg.NotifyTimeout = durationOrDefault("NOTIFY_TIMEOUT", 3*time.Second)
	cfg.NotifyRatePerMinute = positiveIntOrDefault("NOTIFY_RATE_PER_MINUTE", 60)

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.OTLPEndpoint = viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT")

	return cfg, nil
}

// LoanPolicy returns the lending rules described by the configuration.
func (c *Config) LoanPolicy() domain.LoanPolicy {
	return domain.LoanPolicy{
		LoanPeriod:       days(c.LoanDefaultDays),
		RenewalExtension: days(c.LoanRenewalExtensionDays),
		MaxActiveLoans:   c.LoanMaxActiveLoans,
		MaxRenewals:      c.LoanMaxRenewals,
		FinePerDay:       c.LoanFinePerDay,
	}
}

// ReservationExpiry returns how long a new reservation stays valid.
func (c *Config) ReservationExpiry() time.Duration {
	return days(c.ReservationExpiryDays)
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// durationOrDefault accepts Go durations ("90s", "1h") and bare integers, read as seconds.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs := viper.GetInt(key); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
	return def
}

func positiveIntOrDefault(key string, def int) int {
	v := viper.GetInt(key)
	if v <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, viper.GetString(key), def)
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
