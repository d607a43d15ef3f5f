package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/adnanfarms/chickledger/internal/config"
	"github.com/adnanfarms/chickledger/internal/repository/sheets"
	"github.com/adnanfarms/chickledger/internal/scheduler"
	"github.com/adnanfarms/chickledger/internal/server/handlers"
	"github.com/adnanfarms/chickledger/internal/server/router"
	reportingsvc "github.com/adnanfarms/chickledger/internal/service/reporting"
	statssvc "github.com/adnanfarms/chickledger/internal/service/stats"
	"github.com/adnanfarms/chickledger/internal/storage/kv"
	"github.com/adnanfarms/chickledger/internal/store"
	"github.com/adnanfarms/chickledger/pkg/clients/webhook"
	"github.com/adnanfarms/chickledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	kvStore, err := kv.Open(context.Background(), cfg.Storage)
	if err != nil {
		baseLogger.Fatal("failed to open snapshot storage", zap.Error(err))
	}
	defer func() {
		if err := kvStore.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close snapshot storage", zap.Error(err))
		}
	}()

	recordStore := store.New(context.Background(), kvStore, baseLogger.Named("store"))
	engine := statssvc.NewEngine(context.Background(), recordStore, kvStore, baseLogger.Named("svc.stats"))
	reportingSvc := reportingsvc.NewService(engine, baseLogger.Named("svc.reporting"))

	// Optional integrations: daily summary webhook and sheets export.
	var notifier webhook.Client
	if cfg.Reporting.WebhookURL != "" {
		notifier = webhook.NewClient(cfg.Reporting.WebhookURL)
		baseLogger.Info("daily summary webhook enabled")
	} else {
		baseLogger.Warn("report webhook url missing, daily summary push disabled")
	}

	var sheetsRepo sheets.Repository
	if cfg.SheetsEnabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet export disabled")
	}

	recordsHandler := handlers.NewRecordsHandler(recordStore, baseLogger.Named("handlers.records"))
	statsHandler := handlers.NewStatsHandler(engine, reportingSvc, baseLogger.Named("handlers.stats"))
	engineRouter := router.New(recordsHandler, statsHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, engine, reportingSvc, notifier, sheetsRepo, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engineRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
