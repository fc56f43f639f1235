package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dvloznov/bank-sync/internal/domain"
	"github.com/dvloznov/bank-sync/internal/infra/postgres"
	"github.com/dvloznov/bank-sync/internal/logger"
)

// Syncer runs one full synchronization sweep: every customer of every active
// tenant, tenants in parallel, customers sequential within their tenant.
type Syncer struct {
	directory    postgres.DirectoryStore
	transactions postgres.TransactionStore
	tokens       TokenSource
	provider     ProviderClient

	// maxConcurrentTenants caps parallel tenant tasks; zero means one
	// goroutine per tenant with no cap.
	maxConcurrentTenants int
}

// New creates a Syncer.
func New(directory postgres.DirectoryStore, transactions postgres.TransactionStore, tokens TokenSource, provider ProviderClient, maxConcurrentTenants int) *Syncer {
	return &Syncer{
		directory:            directory,
		transactions:         transactions,
		tokens:               tokens,
		provider:             provider,
		maxConcurrentTenants: maxConcurrentTenants,
	}
}

// TenantResult is the outcome of one tenant's sweep. Err is a tenant-level
// failure (customer listing, or a panic escaping the coordinator); individual
// customer failures live in Customers and FailedCustomers.
type TenantResult struct {
	TenantID        string
	TenantCode      string
	Customers       []CustomerResult
	Inserted        int
	FailedCustomers int
	Err             error
}

// Report summarizes a full sweep.
type Report struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Tenants    []TenantResult
}

// TotalInserted sums durable inserts across all tenants.
func (r Report) TotalInserted() int {
	total := 0
	for _, t := range r.Tenants {
		total += t.Inserted
	}
	return total
}

// Run executes one sweep and always returns a report for the tenants it
// attempted. The returned error is only for being unable to start at all
// (the tenant directory was unreachable); customer and tenant failures are
// informational, recorded in the report, and never abort siblings.
func (s *Syncer) Run(ctx context.Context) (Report, error) {
	log := logger.FromContext(ctx)
	report := Report{StartedAt: time.Now().UTC()}

	tenants, err := s.directory.ListActiveTenants(ctx)
	if err != nil {
		report.FinishedAt = time.Now().UTC()
		return report, fmt.Errorf("sync: listing active tenants: %w", err)
	}
	if len(tenants) == 0 {
		log.Warn().Msg("No active tenants found")
		report.FinishedAt = time.Now().UTC()
		return report, nil
	}

	log.Info().Int("tenant_count", len(tenants)).Msg("Starting sync sweep")

	results := make([]TenantResult, len(tenants))
	var wg sync.WaitGroup
	var sem chan struct{}
	if s.maxConcurrentTenants > 0 {
		sem = make(chan struct{}, s.maxConcurrentTenants)
	}

	for i, tenant := range tenants {
		results[i] = TenantResult{TenantID: tenant.ID, TenantCode: tenant.TenantCode}

		wg.Add(1)
		go func(i int, tenant domain.Tenant) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			// A tenant task must never bring down the sweep; a panic here is
			// recorded and the remaining tenants keep running.
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("tenant %s: panic: %v", tenant.TenantCode, r)
				}
			}()
			results[i] = s.syncTenant(ctx, tenant)
		}(i, tenant)
	}
	wg.Wait()

	report.Tenants = results
	report.FinishedAt = time.Now().UTC()

	for _, t := range results {
		if t.Err != nil {
			log.Error().Err(t.Err).Str("tenant_code", t.TenantCode).Msg("Tenant sync summary")
			continue
		}
		log.Info().
			Str("tenant_code", t.TenantCode).
			Int("inserted", t.Inserted).
			Int("customers", len(t.Customers)).
			Int("failed_customers", t.FailedCustomers).
			Msg("Tenant sync summary")
	}
	log.Info().
		Time("started_at", report.StartedAt).
		Time("finished_at", report.FinishedAt).
		Int("total_inserted", report.TotalInserted()).
		Msg("Sync sweep finished")

	return report, nil
}

// syncTenant processes one tenant's customers in listing order. An empty
// customer list reports zero and is not an error. One customer's failure
// never prevents the rest from being processed.
func (s *Syncer) syncTenant(ctx context.Context, tenant domain.Tenant) TenantResult {
	res := TenantResult{TenantID: tenant.ID, TenantCode: tenant.TenantCode}

	log := logger.FromContext(ctx).With().Str("tenant_code", tenant.TenantCode).Logger()
	ctx = logger.WithContext(ctx, log)
	log.Info().Msg("Tenant sync started")

	customers, err := s.directory.ListCustomers(ctx, tenant.ID)
	if err != nil {
		res.Err = fmt.Errorf("tenant %s: listing customers: %w", tenant.TenantCode, err)
		log.Error().Err(err).Msg("Failed to list customers")
		return res
	}
	if len(customers) == 0 {
		log.Warn().Msg("No customers found for tenant")
		return res
	}

	for _, customer := range customers {
		cres := s.syncCustomer(ctx, tenant, customer)
		res.Customers = append(res.Customers, cres)

		if cres.Err != nil {
			res.FailedCustomers++
			log.Error().Err(cres.Err).Str("customer_id", customer.ID).Msg("Customer sync failed")
			continue
		}
		res.Inserted += cres.Inserted
	}

	log.Info().Int("inserted", res.Inserted).Msg("Tenant sync finished")
	return res
}
