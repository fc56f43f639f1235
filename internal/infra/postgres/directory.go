package postgres

import (
	"context"
	"fmt"

	"github.com/dvloznov/bank-sync/internal/domain"
)

// ListActiveTenants implements DirectoryStore.
func (s *Store) ListActiveTenants(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, tenant_code FROM tenants WHERE status = $1 ORDER BY tenant_code`,
		domain.TenantStatusActive,
	)
	if err != nil {
		return nil, fmt.Errorf("ListActiveTenants: %w", err)
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		if err := rows.Scan(&t.ID, &t.TenantCode); err != nil {
			return nil, fmt.Errorf("ListActiveTenants: scan: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListActiveTenants: %w", err)
	}

	return tenants, nil
}

// ListCustomers implements DirectoryStore. Customers come back in stable id
// order; within a tenant they are synced in exactly this order.
func (s *Store) ListCustomers(ctx context.Context, tenantID string) ([]domain.Customer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.id, c.tenant_id, st.api_credentials
		   FROM customers c
		   JOIN customer_accounting_settings st ON st.customer_id = c.id
		  WHERE c.tenant_id = $1
		  ORDER BY c.id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListCustomers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.TenantID, &c.RawCredentials); err != nil {
			return nil, fmt.Errorf("ListCustomers: scan: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListCustomers: %w", err)
	}

	return customers, nil
}

// UpdateRefreshToken implements DirectoryStore. Only the refresh_token key of
// the credential blob is rewritten; client id and secret stay as stored.
func (s *Store) UpdateRefreshToken(ctx context.Context, customerID, refreshToken string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE customer_accounting_settings
		    SET api_credentials = jsonb_set(api_credentials, '{refresh_token}', to_jsonb($1::text))
		  WHERE customer_id = $2`,
		refreshToken, customerID,
	)
	if err != nil {
		return fmt.Errorf("UpdateRefreshToken: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("UpdateRefreshToken: no settings row for customer %s", customerID)
	}
	return nil
}
