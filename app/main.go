package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/debtofwar/tracker/app/api"
	"github.com/debtofwar/tracker/app/cfg"
	"github.com/debtofwar/tracker/app/database"
	"github.com/debtofwar/tracker/app/feed"
	"github.com/debtofwar/tracker/app/store"
	"github.com/debtofwar/tracker/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting The Debt of War tracker", "version", appCfg.Version)

	sources, err := feed.LoadSources(appCfg.FeedsFile)
	if err != nil {
		slog.Error("Failed to load feed sources", "error", err)
		os.Exit(1)
	}
	slog.Info("Feed sources loaded", "count", len(sources))

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open archive database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Archive database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	eventRepo := database.NewEventRepository(db)
	runRepo := database.NewRunRepository(db)

	st := store.New(appCfg.DataDir)
	httpClient := &http.Client{Timeout: time.Duration(appCfg.FetchTimeout) * time.Second}
	fetcher := feed.NewFetcher(httpClient, appCfg.UserAgent)

	if appCfg.Once {
		runOnce(sources, fetcher, st, eventRepo, runRepo)
		return
	}

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.FetchInterval)
	scheduler := tasks.NewScheduler(sources, fetcher, st, eventRepo, runRepo)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(st, sources, fetcher, eventRepo, runRepo, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// runOnce executes a single ingest cycle synchronously, matching the cadence
// of running the tracker from cron instead of as a daemon.
func runOnce(sources []feed.Source, fetcher *feed.Fetcher, st *store.Store,
	eventRepo database.EventRepository, runRepo database.RunRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	task := tasks.NewIngestTask(sources, fetcher, st, eventRepo, runRepo)
	task.Start()
	if err := task.Execute(ctx); err != nil {
		slog.Error("Ingest run failed", "error", err)
		os.Exit(1)
	}
}
