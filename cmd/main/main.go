package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/UnknownOlympus/hrnet/internal/config"
	"github.com/UnknownOlympus/hrnet/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hrnet/internal/metrics"
	"github.com/UnknownOlympus/hrnet/internal/repository"
	"github.com/UnknownOlympus/hrnet/internal/server"
	"github.com/UnknownOlympus/hrnet/internal/services/employees"
	"github.com/UnknownOlympus/hrnet/internal/store"
)

const readHeaderTimeout = 5 * time.Second

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup
	delta := 2

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg := config.MustLoad()

	logger := sl.Setup(cfg.Env, os.Stdout)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	storage, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open storage", "backend", cfg.Storage.Backend, sl.Err(err))
		stop()
		os.Exit(1)
	}
	defer stop()
	defer storage.Close()

	persister := store.NewPersister(logger, storage, store.Key(cfg.Storage.KeyPrefix), appMetrics)
	staff := employees.NewStaff(logger, persister, appMetrics,
		employees.WithSaveTimeout(cfg.HTTP.SaveTimeout),
		employees.WithLocale(cfg.Table.Locale),
	)
	staff.Rehydrate(ctx)

	web, err := server.NewWeb(logger, staff, appMetrics, cfg.HTTP.SessionKey, cfg.Table.PageSize)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to build web handlers", sl.Err(err))
		storage.Close()
		stop()
		os.Exit(1)
	}

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, logger, reg, storage, cfg.Storage.Backend, cfg.HTTP.MonitoringPort)
	}()

	go func() {
		defer wgr.Done()
		server.Run(ctx, logger.With("server", "web"), &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           web.Routes(),
			ReadHeaderTimeout: readHeaderTimeout,
		})
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	wgr.Wait()

	logger.InfoContext(ctx, "Application stopped gracefully...")
}
