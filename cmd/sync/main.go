package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dvloznov/bank-sync/internal/config"
	"github.com/dvloznov/bank-sync/internal/infra/postgres"
	"github.com/dvloznov/bank-sync/internal/logger"
	"github.com/dvloznov/bank-sync/internal/pipeline"
	"github.com/dvloznov/bank-sync/internal/xero"
)

// main runs one full synchronization sweep and exits. Scheduling (cron,
// systemd timers) lives outside this binary. The exit code reflects only
// whether the sweep could start: customer and tenant failures are reported
// and left for the next scheduled run to heal through idempotent inserts.
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New()
		bootLog.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.NewWithLevel(cfg.LogLevel)
	ctx := logger.WithContext(context.Background(), log)

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	store := postgres.NewStore(pool)
	tokens := xero.NewTokenSource(httpClient, cfg.TokenURL)
	provider := xero.NewClient(httpClient, cfg.ConnectionsURL, cfg.BankTransactionsURL)

	syncer := pipeline.New(store, store, tokens, provider, cfg.MaxConcurrentTenants)

	log.Info().Msg("Starting Xero bank transaction sync")

	report, err := syncer.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Sync sweep could not start")
	}

	fmt.Printf("Sync finished: %d transactions inserted across %d tenant(s) in %s\n",
		report.TotalInserted(), len(report.Tenants), report.FinishedAt.Sub(report.StartedAt))
}
