package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dvloznov/bank-sync/internal/domain"
	"github.com/dvloznov/bank-sync/internal/logger"
)

// CustomerResult is the outcome of one customer's sync cycle. Err is set when
// the cycle aborted before its batch was committed; counts are only
// meaningful when Err is nil. RotationErr records a failed refresh-token
// write-back after a successful commit.
type CustomerResult struct {
	CustomerID  string
	Fetched     int
	Inserted    int
	Duplicates  int
	Failed      int
	Err         error
	RotationErr error
}

// syncCustomer runs the five-step cycle for one customer: refresh the token,
// resolve the provider tenant, fetch transactions, persist them idempotently
// in one batch, then write back a rotated refresh token. Every failure —
// typed or unexpected, including a panic — is captured in the result so a
// broken customer can never take down its tenant's run.
func (s *Syncer) syncCustomer(ctx context.Context, tenant domain.Tenant, customer domain.Customer) (res CustomerResult) {
	res.CustomerID = customer.ID
	log := logger.FromContext(ctx).With().Str("customer_id", customer.ID).Logger()

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("customer %s: panic: %v", customer.ID, r)
		}
	}()

	creds, err := domain.ParseAPICredentials(customer.RawCredentials)
	if err != nil {
		res.Err = err
		return res
	}

	token, err := s.tokens.Refresh(ctx, creds)
	if err != nil {
		res.Err = err
		return res
	}

	providerTenantID, err := s.provider.ResolveTenantID(ctx, token.AccessToken)
	if err != nil {
		res.Err = err
		return res
	}

	txns, err := s.provider.FetchBankTransactions(ctx, token.AccessToken, providerTenantID)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fetched = len(txns)
	log.Info().Int("transaction_count", len(txns)).Msg("Fetched bank transactions")

	batch, err := s.transactions.BeginBatch(ctx)
	if err != nil {
		res.Err = err
		return res
	}
	defer batch.Close(ctx)

	now := time.Now().UTC()
	for _, txn := range txns {
		rec := normalizeTransaction(txn, tenant.ID, customer.ID, now)

		inserted, err := batch.Insert(ctx, rec)
		if err != nil {
			res.Failed++
			perr := &PersistenceError{TransactionID: txn.BankTransactionID, Err: err}
			log.Error().Err(perr).Str("transaction_id", txn.BankTransactionID).Msg("Failed to persist transaction")
			continue
		}
		if inserted {
			res.Inserted++
		} else {
			res.Duplicates++
		}
	}

	if err := batch.Commit(ctx); err != nil {
		res.Err = err
		return res
	}
	log.Info().
		Int("inserted", res.Inserted).
		Int("duplicates", res.Duplicates).
		Int("failed", res.Failed).
		Msg("Transaction batch committed")

	// Write back the refresh token only when the provider rotated it. A
	// failure here is surfaced but the committed inserts stand.
	if token.RefreshToken != creds.RefreshToken {
		if err := s.directory.UpdateRefreshToken(ctx, customer.ID, token.RefreshToken); err != nil {
			res.RotationErr = err
			log.Error().Err(err).Msg("Failed to store rotated refresh token")
		} else {
			log.Info().Msg("Refresh token rotated and stored")
		}
	}

	return res
}
