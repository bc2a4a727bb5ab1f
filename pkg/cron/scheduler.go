// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	ingestservice "github.com/settleline/broker-settlements/internal/domain/ingest/service"
)

// Scheduler sweeps the ingest inbox on a cron schedule: any PDF dropped into
// the inbox directory is ingested and then moved aside so it is not picked
// up twice.
type Scheduler struct {
	cron      *cron.Cron
	ingestSvc *ingestservice.IngestService
	inboxPath string
	schedule  string
	logger    *slog.Logger

	// sweeps are serialized; ingest runs are batch-style and must not overlap.
	mu sync.Mutex
}

// NewScheduler creates an inbox sweeper.
func NewScheduler(ingestSvc *ingestservice.IngestService, inboxPath, schedule string, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	return &Scheduler{
		cron:      c,
		ingestSvc: ingestSvc,
		inboxPath: inboxPath,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start begins the scheduled sweeps.
func (s *Scheduler) Start() error {
	if err := os.MkdirAll(s.inboxPath, 0o755); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.schedule, s.sweepInbox); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("inbox sweeper started",
		slog.String("inbox", s.inboxPath),
		slog.String("schedule", s.schedule),
	)
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("inbox sweeper stopping")
	return s.cron.Stop()
}

// RunNow manually triggers a sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepInbox()
}

func (s *Scheduler) sweepInbox() {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	entries, err := os.ReadDir(s.inboxPath)
	if err != nil {
		s.logger.Error("failed to read inbox", slog.Any("error", err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(s.inboxPath, entry.Name())

		result, err := s.ingestSvc.IngestFile(ctx, path)
		if err != nil {
			s.logger.Error("inbox document ingest failed",
				slog.String("file", entry.Name()),
				slog.Any("error", err),
			)
			s.moveAside(path, "failed")
			continue
		}

		s.logger.Info("inbox document ingested",
			slog.String("file", entry.Name()),
			slog.Int("records", result.Records),
		)
		s.moveAside(path, "done")
	}
}

// moveAside relocates a swept file into a status subdirectory of the inbox.
func (s *Scheduler) moveAside(path, status string) {
	dir := filepath.Join(s.inboxPath, status)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Error("failed to create inbox subdirectory", slog.Any("error", err))
		return
	}
	if err := os.Rename(path, filepath.Join(dir, filepath.Base(path))); err != nil {
		s.logger.Error("failed to move swept file", slog.Any("error", err))
	}
}
