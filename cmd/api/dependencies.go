package main

import (
	"fmt"
	"log/slog"
	"time"

	ingesthandler "github.com/settleline/broker-settlements/internal/domain/ingest/handler"
	"github.com/settleline/broker-settlements/internal/domain/ingest/normalizer"
	ingestrepo "github.com/settleline/broker-settlements/internal/domain/ingest/repository"
	ingestservice "github.com/settleline/broker-settlements/internal/domain/ingest/service"
	"github.com/settleline/broker-settlements/internal/domain/reporting"
	reportinghandler "github.com/settleline/broker-settlements/internal/domain/reporting/handler"
	"github.com/settleline/broker-settlements/internal/extract"
	"github.com/settleline/broker-settlements/pkg/config"
	"github.com/settleline/broker-settlements/pkg/cron"
	"github.com/settleline/broker-settlements/pkg/db"
	"github.com/settleline/broker-settlements/pkg/storage"
)

// Dependencies holds all application dependencies.
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Collaborators
	FileStorage storage.Storage
	Extractor   extract.Extractor

	// Repositories
	LoanRepo   ingestrepo.LoanRepository
	ReportRepo reporting.Repository

	// Services
	IngestService    *ingestservice.IngestService
	ReportingService *reporting.Service
	Sweeper          *cron.Scheduler

	// Handlers
	IngestHandler    *ingesthandler.IngestHandler
	ReportingHandler *reportinghandler.ReportingHandler
}

// InitDependencies initializes all application dependencies.
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	database, err := db.New(db.Config{
		DSN:             cfg.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}
	deps.DB = database

	if err := deps.DB.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	deps.FileStorage, err = storage.New(storage.Config{BasePath: cfg.Storage.UploadPath})
	if err != nil {
		return nil, fmt.Errorf("failed to init file storage: %w", err)
	}
	deps.Extractor = extract.NewPDFExtractor()

	deps.LoanRepo = ingestrepo.NewPostgresRepository(database.Pool)
	deps.ReportRepo = reporting.NewPostgresRepository(database.Pool)

	deps.IngestService = ingestservice.NewIngestService(
		deps.FileStorage,
		deps.Extractor,
		normalizer.NewUppercaseRunExtractor(),
		deps.LoanRepo,
		logger,
	)
	deps.ReportingService = reporting.NewService(deps.ReportRepo, logger)
	deps.Sweeper = cron.NewScheduler(deps.IngestService, cfg.Ingest.InboxPath, cfg.Ingest.SweepSchedule, logger)

	deps.IngestHandler = ingesthandler.NewIngestHandler(deps.IngestService, logger)
	deps.ReportingHandler = reportinghandler.NewReportingHandler(deps.ReportingService, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}
