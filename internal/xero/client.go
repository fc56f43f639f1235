package xero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client talks to the Xero accounting API: resolving which organisation a
// token is connected to, and listing that organisation's bank transactions.
type Client struct {
	httpClient          *http.Client
	connectionsURL      string
	bankTransactionsURL string
}

// NewClient creates a Client against the given API endpoints.
func NewClient(httpClient *http.Client, connectionsURL, bankTransactionsURL string) *Client {
	return &Client{
		httpClient:          httpClient,
		connectionsURL:      connectionsURL,
		bankTransactionsURL: bankTransactionsURL,
	}
}

// ResolveTenantID returns the provider-side tenant id the access token is
// connected to. An empty connection list is ErrNoConnections, which is a
// semantic failure rather than a transport one.
func (c *Client) ResolveTenantID(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.connectionsURL, nil)
	if err != nil {
		return "", fmt.Errorf("ResolveTenantID: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ResolveTenantID: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Endpoint: "connections"}
	}

	var connections []connection
	if err := json.NewDecoder(resp.Body).Decode(&connections); err != nil {
		return "", fmt.Errorf("ResolveTenantID: decoding connections: %w", err)
	}
	if len(connections) == 0 {
		return "", ErrNoConnections
	}

	return connections[0].TenantID, nil
}

// FetchBankTransactions lists the current window of bank transactions for the
// resolved organisation. An empty list is a normal result.
func (c *Client) FetchBankTransactions(ctx context.Context, accessToken, providerTenantID string) ([]BankTransaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.bankTransactionsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("FetchBankTransactions: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("xero-tenant-id", providerTenantID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FetchBankTransactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Endpoint: "bank transactions"}
	}

	var body bankTransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("FetchBankTransactions: decoding response: %w", err)
	}

	return body.BankTransactions, nil
}
