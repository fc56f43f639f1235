package pipeline

import (
	"context"

	"github.com/dvloznov/bank-sync/internal/domain"
	"github.com/dvloznov/bank-sync/internal/xero"
)

// TokenSource exchanges a stored refresh token for a fresh token pair.
// This interface enables mocking and testing of the identity-provider call.
type TokenSource interface {
	Refresh(ctx context.Context, creds domain.APICredentials) (xero.Token, error)
}

// ProviderClient is the accounting-provider surface the pipeline needs:
// resolving the provider-side tenant for a token and fetching its current
// bank transactions.
type ProviderClient interface {
	ResolveTenantID(ctx context.Context, accessToken string) (string, error)
	FetchBankTransactions(ctx context.Context, accessToken, providerTenantID string) ([]xero.BankTransaction, error)
}
