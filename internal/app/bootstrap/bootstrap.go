package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	campaignreview "opsdesk/contexts/marketplace-ops/campaign-review-service"
	reviewpostgres "opsdesk/contexts/marketplace-ops/campaign-review-service/adapters/postgres"
	"opsdesk/contexts/marketplace-ops/campaign-review-service/application/queries"
	reviewworkers "opsdesk/contexts/marketplace-ops/campaign-review-service/application/workers"
	console "opsdesk/contexts/marketplace-ops/console-service"
	consolememory "opsdesk/contexts/marketplace-ops/console-service/adapters/memory"
	"opsdesk/internal/platform/config"
	"opsdesk/internal/platform/db"
	"opsdesk/internal/platform/httpserver"
	"opsdesk/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server         *httpserver.Server
	postgres       *db.Postgres
	consoleModule  console.Module
	consolePolling bool
	logger         *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  reviewworkers.OutboxRelay
	relayEnabled bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := reviewpostgres.NewRepository(pg.DB, logger)
	reviewModule := campaignreview.NewModule(campaignreview.Dependencies{
		Campaigns: repo,
		Edits:     repo,
		Creators:  repo,
		Outbox:    repo,
		Clock:     reviewpostgres.SystemClock{},
		IDGen:     reviewpostgres.UUIDGenerator{},
		Logger:    logger,
	})

	consoleModule := console.NewModule(console.Dependencies{
		Source: campaignSource{
			list: queries.ListCampaignsUseCase{
				Campaigns: repo,
				Creators:  repo,
				Logger:    logger,
			},
			detail: queries.GetCampaignUseCase{
				Campaigns: repo,
				Creators:  repo,
				Logger:    logger,
			},
		},
		Cache:        consolememory.NewFallbackCache(),
		Clock:        reviewpostgres.SystemClock{},
		ReadTimeout:  cfg.ConsoleReadTimeout,
		PageSize:     cfg.ConsolePageSize,
		PollInterval: cfg.ConsolePollInterval,
		Logger:       logger,
	})

	server := httpserver.New(reviewModule, consoleModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:         server,
		postgres:       pg,
		consoleModule:  consoleModule,
		consolePolling: cfg.EnableConsolePolling,
		logger:         logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	repo := reviewpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		outboxRelay: reviewworkers.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     reviewpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		relayEnabled: cfg.EnableOutboxRelay,
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	if a.consolePolling {
		go a.consoleModule.Controller.Run(ctx)
	}
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if !w.relayEnabled {
		w.logger.Info("outbox relay disabled, worker idle",
			"event", "bootstrap_worker_idle",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
