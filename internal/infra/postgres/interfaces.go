package postgres

import (
	"context"

	"github.com/dvloznov/bank-sync/internal/domain"
)

// DirectoryStore reads tenant/customer directory data and writes rotated
// refresh tokens. Tenants and customers are owned by other systems; this
// service only reads them.
type DirectoryStore interface {
	// ListActiveTenants returns every tenant with status ACTIVE.
	ListActiveTenants(ctx context.Context) ([]domain.Tenant, error)

	// ListCustomers returns the tenant's customers with their credential
	// blobs, in stable listing order.
	ListCustomers(ctx context.Context, tenantID string) ([]domain.Customer, error)

	// UpdateRefreshToken replaces the refresh_token field of the customer's
	// stored credential blob.
	UpdateRefreshToken(ctx context.Context, customerID, refreshToken string) error
}

// TransactionStore opens per-customer insert batches.
type TransactionStore interface {
	// BeginBatch starts a batch on its own connection. The batch is committed
	// as one unit; individual row failures inside it are isolated.
	BeginBatch(ctx context.Context) (TransactionBatch, error)
}

// TransactionBatch accumulates idempotent inserts for one customer.
type TransactionBatch interface {
	// Insert attempts one row. Returns (false, nil) when a row with the same
	// (tenant, customer, transaction) identity already exists; the row is
	// left untouched. Any other failure is rolled back without poisoning the
	// rest of the batch.
	Insert(ctx context.Context, rec domain.BankTransaction) (inserted bool, err error)

	// Commit makes all accumulated inserts durable together.
	Commit(ctx context.Context) error

	// Close releases the batch; a no-op after Commit, a rollback otherwise.
	Close(ctx context.Context)
}
