package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TenantStatusActive marks tenants that are sync targets; every other status
// is skipped.
const TenantStatusActive = "ACTIVE"

// Tenant is an organizational unit owning customers. Read-only to this
// service; created and managed elsewhere.
type Tenant struct {
	ID         string
	TenantCode string
}

// Customer is one account under a tenant holding its own Xero connection.
// RawCredentials is the stored api_credentials blob; it is parsed with
// ParseAPICredentials inside the per-customer sync boundary so one malformed
// blob cannot take down a tenant's run.
type Customer struct {
	ID             string
	TenantID       string
	RawCredentials []byte
}

// APICredentials is the structured form of the api_credentials blob stored
// per customer. The access token is ephemeral and never stored; the refresh
// token is replaced whenever the identity provider rotates it.
type APICredentials struct {
	RefreshToken string `json:"refresh_token"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ParseAPICredentials decodes the stored credential blob and rejects it when
// any required field is missing or blank, so malformed settings fail loudly
// at the store boundary instead of deep inside a sync cycle.
func ParseAPICredentials(raw []byte) (APICredentials, error) {
	var creds APICredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return APICredentials{}, fmt.Errorf("ParseAPICredentials: %w", err)
	}

	var missing []string
	if strings.TrimSpace(creds.RefreshToken) == "" {
		missing = append(missing, "refresh_token")
	}
	if strings.TrimSpace(creds.ClientID) == "" {
		missing = append(missing, "client_id")
	}
	if strings.TrimSpace(creds.ClientSecret) == "" {
		missing = append(missing, "client_secret")
	}
	if len(missing) > 0 {
		return APICredentials{}, fmt.Errorf("ParseAPICredentials: missing required fields: %s", strings.Join(missing, ", "))
	}

	return creds, nil
}
