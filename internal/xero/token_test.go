package xero

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dvloznov/bank-sync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCredentials() domain.APICredentials {
	return domain.APICredentials{
		RefreshToken: "rt-old",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
	}
}

func TestTokenSource_Refresh(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"grant_type":    r.PostFormValue("grant_type"),
			"refresh_token": r.PostFormValue("refresh_token"),
			"client_id":     r.PostFormValue("client_id"),
			"client_secret": r.PostFormValue("client_secret"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-new","refresh_token":"rt-new"}`))
	}))
	defer srv.Close()

	source := NewTokenSource(srv.Client(), srv.URL)
	token, err := source.Refresh(context.Background(), testCredentials())
	require.NoError(t, err)

	assert.Equal(t, "at-new", token.AccessToken)
	assert.Equal(t, "rt-new", token.RefreshToken)
	assert.Equal(t, map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": "rt-old",
		"client_id":     "client-1",
		"client_secret": "secret-1",
	}, gotForm)
}

func TestTokenSource_Refresh_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	source := NewTokenSource(srv.Client(), srv.URL)
	_, err := source.Refresh(context.Background(), testCredentials())

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.StatusCode)
	assert.Contains(t, authErr.Detail, "invalid_grant")
}

func TestTokenSource_Refresh_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"missing refresh token", `{"access_token":"at-new"}`},
		{"missing access token", `{"refresh_token":"rt-new"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			source := NewTokenSource(srv.Client(), srv.URL)
			_, err := source.Refresh(context.Background(), testCredentials())

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
		})
	}
}
