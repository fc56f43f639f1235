package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/banksync")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/banksync", cfg.DatabaseURL)
	assert.Equal(t, DefaultTokenURL, cfg.TokenURL)
	assert.Equal(t, DefaultConnectionsURL, cfg.ConnectionsURL)
	assert.Equal(t, DefaultBankTransactionsURL, cfg.BankTransactionsURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.MaxConcurrentTenants)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/x")
	t.Setenv("XERO_TOKEN_URL", "http://localhost:9999/token")
	t.Setenv("XERO_CONNECTIONS_URL", "http://localhost:9999/connections")
	t.Setenv("XERO_BANK_TRANSACTIONS_URL", "http://localhost:9999/banktransactions")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("MAX_CONCURRENT_TENANTS", "4")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/token", cfg.TokenURL)
	assert.Equal(t, "http://localhost:9999/connections", cfg.ConnectionsURL)
	assert.Equal(t, "http://localhost:9999/banktransactions", cfg.BankTransactionsURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.MaxConcurrentTenants)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad timeout", "HTTP_TIMEOUT", "soon"},
		{"bad concurrency", "MAX_CONCURRENT_TENANTS", "many"},
		{"negative concurrency", "MAX_CONCURRENT_TENANTS", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://db:5432/x")
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
