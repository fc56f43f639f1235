package xero

import (
	"errors"
	"fmt"
)

// ErrNoConnections means the connections endpoint answered successfully but
// listed zero tenant connections for the token. Distinct from an HTTP error:
// the customer's Xero consent is gone or was never granted.
var ErrNoConnections = errors.New("xero: no tenant connections found for access token")

// AuthError is a failed refresh-token exchange: a non-success status from the
// identity provider or a token response we could not decode. Terminal for the
// customer's current cycle; never retried locally.
type AuthError struct {
	StatusCode int
	Detail     string
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("xero: token exchange failed with status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("xero: token exchange failed: %s", e.Detail)
}

// APIError is any non-success response from the accounting API itself.
type APIError struct {
	StatusCode int
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("xero: %s returned status %d", e.Endpoint, e.StatusCode)
}
