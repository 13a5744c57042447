// Package scheduler owns the once-per-day trigger for the retention
// sweep. The cron entry fires hourly; a last-run-date guard decides
// whether the sweep is due, so a wakeup delayed past the configured
// hour still runs that day's sweep.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"filecrate/internal/domain/services"
)

// Sweeper runs the cleanup service once per UTC day at (or after) the
// configured hour.
type Sweeper struct {
	cleanup services.CleanupService
	hour    int
	logger  *slog.Logger
	cron    *cron.Cron
	now     func() time.Time

	mu      sync.Mutex
	lastRun string // date (2006-01-02, UTC) of the last completed sweep
}

// NewSweeper creates a sweeper firing at the given UTC hour (0-23)
func NewSweeper(cleanup services.CleanupService, hour int, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		cleanup: cleanup,
		hour:    hour,
		logger:  logger,
		now:     time.Now,
	}
}

// Start begins the hourly tick. The first check happens on the next
// full hour; Stop waits for an in-flight sweep to finish.
func (s *Sweeper) Start(ctx context.Context) {
	s.cron = cron.New(cron.WithLocation(time.UTC))
	if _, err := s.cron.AddFunc("0 * * * *", func() { s.tick(ctx) }); err != nil {
		s.logger.Error("failed to register cleanup schedule", "error", err)
		return
	}
	s.cron.Start()
	s.logger.Info("cleanup scheduler started", "hour_utc", s.hour)
}

// Stop halts the tick and blocks until a running sweep completes
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("cleanup scheduler stopped")
}

func (s *Sweeper) tick(ctx context.Context) {
	s.RunDue(ctx, s.now())
}

// RunDue runs the sweep if it is due at the given instant: the UTC hour
// has reached the configured hour and no sweep completed today. A failed
// sweep is logged and retried on the next tick; the guard only advances
// on success, and it never crashes the process.
func (s *Sweeper) RunDue(ctx context.Context, at time.Time) bool {
	now := at.UTC()
	if now.Hour() < s.hour {
		return false
	}

	today := now.Format("2006-01-02")
	s.mu.Lock()
	done := s.lastRun == today
	s.mu.Unlock()
	if done {
		return false
	}

	report, err := s.cleanup.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("retention sweep failed", "error", err)
		return false
	}

	s.mu.Lock()
	s.lastRun = today
	s.mu.Unlock()

	s.logger.Info("retention sweep ran",
		"date", today,
		"folders_purged", report.FoldersPurged,
		"files_purged", report.FilesPurged,
	)
	return true
}
