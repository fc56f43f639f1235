package xero

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dvloznov/bank-sync/internal/domain"
)

// TokenSource exchanges refresh tokens against the identity provider's token
// endpoint using the refresh_token grant.
type TokenSource struct {
	httpClient *http.Client
	tokenURL   string
}

// NewTokenSource creates a TokenSource for the given token endpoint.
func NewTokenSource(httpClient *http.Client, tokenURL string) *TokenSource {
	return &TokenSource{
		httpClient: httpClient,
		tokenURL:   tokenURL,
	}
}

// Refresh exchanges the customer's refresh token for a fresh access/refresh
// pair. Any non-success status or undecodable body is an *AuthError; the
// caller decides whether the returned refresh token rotated.
func (s *TokenSource) Refresh(ctx context.Context, creds domain.APICredentials) (Token, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", creds.RefreshToken)
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, &AuthError{Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Token{}, &AuthError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Token{}, &AuthError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return Token{}, &AuthError{StatusCode: resp.StatusCode, Detail: "malformed token response: " + err.Error()}
	}
	if token.AccessToken == "" || token.RefreshToken == "" {
		return Token{}, &AuthError{StatusCode: resp.StatusCode, Detail: "token response missing access_token or refresh_token"}
	}

	return token, nil
}
