// Package sweep deletes past events on a schedule, directly ported
// from the teacher's CleanupService lifecycle (Start/Stop/run over a
// goroutine + channel + sync.WaitGroup) with the deletion query itself
// grounded on original_source's cron_clear_past_events.py.
package sweep

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"culturefeed-backend/internal/logger"
	"culturefeed-backend/internal/models"
)

// DefaultInterval matches the cron job's weekly cadence.
const DefaultInterval = 7 * 24 * time.Hour

// Service runs the past-event sweep on a timer, mirroring
// services.CleanupService in shape (same Start/Stop/run split, same
// stopCh+WaitGroup shutdown).
type Service struct {
	db       *gorm.DB
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewService(db *gorm.DB) *Service {
	interval := DefaultInterval
	if raw := os.Getenv("SWEEP_INTERVAL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			interval = time.Duration(hours) * time.Hour
		}
	}
	return &Service{db: db, interval: interval, stopCh: make(chan struct{})}
}

// Start begins the background sweep loop.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(ctx)
	logger.EventInfo(ctx, "sweep: service started", "interval_hours", s.interval.Hours())
}

// Stop gracefully stops the sweep loop.
func (s *Service) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

func (s *Service) run(ctx context.Context) {
	defer s.wg.Done()

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	deleted, err := ClearPastEvents(s.db)
	if err != nil {
		logger.EventError(ctx, "sweep: clear past events failed", err)
		return
	}
	if deleted == 0 {
		logger.EventInfo(ctx, "sweep: no past events to delete")
		return
	}
	logger.EventInfo(ctx, "sweep: cleared past events", "count", deleted)
}

// ClearPastEvents implements spec.md §3's lifecycle rule: an event
// whose end_date (or start_date, when end_date is null) is before
// today and that is not is_permanent is deleted. Used both by the
// scheduled sweep and by the synchronous
// POST /api/admin/clear-past-events endpoint.
func ClearPastEvents(db *gorm.DB) (int64, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	result := db.Where(
		"is_permanent = false AND ((end_date IS NOT NULL AND end_date < ?) OR (end_date IS NULL AND start_date < ?))",
		today, today,
	).Delete(&models.Event{})
	return result.RowsAffected, result.Error
}
