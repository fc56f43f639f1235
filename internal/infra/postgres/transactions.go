package postgres

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dvloznov/bank-sync/internal/domain"
)

const insertTransactionSQL = `
INSERT INTO bank_transactions (
	id, tenant_id, customer_id, transaction_id,
	bank_account_id, bank_account_code, bank_account_name,
	transaction_date, amount, sub_total, total_tax, total, currency_code,
	description, reference, transaction_type, status, line_amount_types,
	contact_id, contact_name,
	is_reconciled, has_attachments,
	raw_date_string, raw_date_timestamp, updated_date_utc,
	imported_from, reconciliation_status, created_at
) VALUES (
	$1, $2, $3, $4,
	$5, $6, $7,
	$8, $9, $10, $11, $12, $13,
	$14, $15, $16, $17, $18,
	$19, $20,
	$21, $22,
	$23, $24, $25,
	$26, $27, $28
)
ON CONFLICT (tenant_id, customer_id, transaction_id) DO NOTHING`

// txnBatch is one customer's insert batch: a single transaction holding a
// dedicated pooled connection. Each row insert runs in a savepoint so a
// failed row can be rolled back without aborting the batch.
type txnBatch struct {
	conn *pgxpool.Conn
	tx   pgx.Tx
	done bool
}

// BeginBatch implements TransactionStore.
func (s *Store) BeginBatch(ctx context.Context) (TransactionBatch, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("BeginBatch: acquire: %w", err)
	}
	tx, err := conn.Begin(ctx)
	if err != nil {
		conn.Release()
		return nil, fmt.Errorf("BeginBatch: begin: %w", err)
	}
	return &txnBatch{conn: conn, tx: tx}, nil
}

// Insert implements TransactionBatch. The ON CONFLICT target is the
// (tenant_id, customer_id, transaction_id) uniqueness constraint; zero rows
// affected means the transaction was already imported.
func (b *txnBatch) Insert(ctx context.Context, rec domain.BankTransaction) (bool, error) {
	sp, err := b.tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("Insert: savepoint: %w", err)
	}

	tag, err := sp.Exec(ctx, insertTransactionSQL,
		rec.ID, rec.TenantID, rec.CustomerID, rec.TransactionID,
		rec.BankAccountID, rec.BankAccountCode, rec.BankAccountName,
		dateArg(rec.TransactionDate), rec.Amount.String(), rec.SubTotal.String(), rec.TotalTax.String(), rec.Total.String(), rec.CurrencyCode,
		rec.Description, rec.Reference, rec.Type, rec.Status, rec.LineAmountTypes,
		rec.ContactID, rec.ContactName,
		rec.IsReconciled, rec.HasAttachments,
		rec.RawDateString, rec.RawDateTimestamp, rec.UpdatedDateUTC,
		rec.ImportedFrom, rec.ReconciliationStatus, rec.CreatedAt,
	)
	if err != nil {
		_ = sp.Rollback(ctx)
		return false, fmt.Errorf("Insert: transaction %s: %w", rec.TransactionID, err)
	}
	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("Insert: transaction %s: release savepoint: %w", rec.TransactionID, err)
	}

	return tag.RowsAffected() > 0, nil
}

// Commit implements TransactionBatch.
func (b *txnBatch) Commit(ctx context.Context) error {
	if b.done {
		return nil
	}
	b.done = true
	defer b.conn.Release()

	if err := b.tx.Commit(ctx); err != nil {
		return fmt.Errorf("Commit: %w", err)
	}
	return nil
}

// Close implements TransactionBatch.
func (b *txnBatch) Close(ctx context.Context) {
	if b.done {
		return
	}
	b.done = true
	_ = b.tx.Rollback(ctx)
	b.conn.Release()
}

// dateArg converts an optional calendar date into a driver-friendly value.
// Midnight UTC keeps the DATE column free of timezone drift.
func dateArg(d *civil.Date) any {
	if d == nil {
		return nil
	}
	return d.In(time.UTC)
}
