package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/config"
	"github.com/mamadbah2/rancher/internal/repository"
	filerepo "github.com/mamadbah2/rancher/internal/repository/file"
	"github.com/mamadbah2/rancher/internal/repository/mongodb"
	"github.com/mamadbah2/rancher/internal/repository/sheets"
	"github.com/mamadbah2/rancher/internal/scheduler"
	"github.com/mamadbah2/rancher/internal/server/handlers"
	"github.com/mamadbah2/rancher/internal/server/router"
	advisorsvc "github.com/mamadbah2/rancher/internal/service/advisor"
	herdsvc "github.com/mamadbah2/rancher/internal/service/herd"
	ledgersvc "github.com/mamadbah2/rancher/internal/service/ledger"
	reportingsvc "github.com/mamadbah2/rancher/internal/service/reporting"
	"github.com/mamadbah2/rancher/internal/state"
	"github.com/mamadbah2/rancher/pkg/clients/anthropic"
	"github.com/mamadbah2/rancher/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var repo repository.Repository
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		repo = mongoRepo
	default:
		fileRepo, err := filerepo.NewFileRepository(cfg.Storage.DataFile, baseLogger.Named("repo.file"))
		if err != nil {
			baseLogger.Fatal("failed to init file repository", zap.Error(err))
		}
		repo = fileRepo
	}

	store, err := state.Open(context.Background(), repo, baseLogger.Named("state"))
	if err != nil {
		baseLogger.Fatal("failed to load document", zap.Error(err))
	}

	herdService := herdsvc.NewService(store, baseLogger.Named("svc.herd"))
	ledgerService := ledgersvc.NewService(store, baseLogger.Named("svc.ledger"))
	reportingService := reportingsvc.NewService(store, baseLogger.Named("svc.reporting"))

	// Initialize AI client
	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic advisory client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, advisory answers will use fallbacks")
	}
	advisorService := advisorsvc.NewService(aiClient, baseLogger.Named("svc.advisor"))

	var exporter sheets.Exporter
	if cfg.Sheets.Enabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
	}

	herdHandler := handlers.NewHerdHandler(herdService, reportingService, baseLogger.Named("handlers.herd"))
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, baseLogger.Named("handlers.ledger"))
	reportsHandler := handlers.NewReportsHandler(reportingService, store, baseLogger.Named("handlers.reports"))
	advisorHandler := handlers.NewAdvisorHandler(advisorService, reportingService, baseLogger.Named("handlers.advisor"))
	engine := router.New(herdHandler, ledgerHandler, reportsHandler, advisorHandler, baseLogger.Named("router"))

	// Initialize scheduler
	sched := scheduler.NewScheduler(*cfg, reportingService, advisorService, exporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
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
