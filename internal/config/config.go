package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Xero endpoint defaults. Overridable through the environment so tests and
// sandbox organisations can point the service elsewhere.
const (
	DefaultTokenURL            = "https://identity.xero.com/connect/token"
	DefaultConnectionsURL      = "https://api.xero.com/connections"
	DefaultBankTransactionsURL = "https://api.xero.com/api.xro/2.0/BankTransactions"

	DefaultHTTPTimeout = 30 * time.Second
)

// Config holds everything the sync binary needs. All values come from the
// environment; a .env file is honored for local development.
type Config struct {
	// DatabaseURL is a Postgres connection string (pgx format). Required.
	DatabaseURL string

	TokenURL            string
	ConnectionsURL      string
	BankTransactionsURL string

	// HTTPTimeout bounds every call to the identity provider and the
	// accounting API.
	HTTPTimeout time.Duration

	// MaxConcurrentTenants caps how many tenant sync tasks run at once.
	// Zero means no cap: one goroutine per active tenant.
	MaxConcurrentTenants int

	LogLevel string
}

// Load reads configuration from the environment, loading a .env file first
// if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		TokenURL:            getEnv("XERO_TOKEN_URL", DefaultTokenURL),
		ConnectionsURL:      getEnv("XERO_CONNECTIONS_URL", DefaultConnectionsURL),
		BankTransactionsURL: getEnv("XERO_BANK_TRANSACTIONS_URL", DefaultBankTransactionsURL),
		HTTPTimeout:         DefaultHTTPTimeout,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config: invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	if v := os.Getenv("MAX_CONCURRENT_TENANTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("config: invalid MAX_CONCURRENT_TENANTS %q", v)
		}
		cfg.MaxConcurrentTenants = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
