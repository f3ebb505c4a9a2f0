// Package scheduler runs the background maintenance jobs of the API: periodic
// stats refreshes into the in-memory snapshot and the nightly retention purge.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/giygas/pharmacovigilance-api/interfaces"
	"github.com/giygas/pharmacovigilance-api/logging"
	"github.com/giygas/pharmacovigilance-api/metrics"
)

// jobTimeout bounds every scheduled database operation.
const jobTimeout = 30 * time.Second

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles stats refreshes and retention purges using dependency injection
type Scheduler struct {
	store         interfaces.ReportStore
	stats         interfaces.StatsStore
	retentionDays int
	scheduler     *gocron.Scheduler
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(store interfaces.ReportStore, stats interfaces.StatsStore, retentionDays int) *Scheduler {
	return &Scheduler{
		store:         store,
		stats:         stats,
		retentionDays: retentionDays,
		scheduler:     gocron.NewScheduler(time.Local),
	}
}

// Start performs the initial stats refresh and schedules the recurring jobs.
func (s *Scheduler) Start() error {
	// Initial snapshot
	if err := s.refreshStats(); err != nil {
		logging.Error("Failed to perform initial stats refresh", "error", err)
		return fmt.Errorf("initial stats refresh failed: %w", err)
	}

	_, err := s.scheduler.Every(15).Minutes().Do(func() {
		if err := s.refreshStats(); err != nil {
			logging.Error("Failed to refresh stats", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule stats refresh", "error", err)
		return fmt.Errorf("failed to schedule stats refresh: %w", err)
	}

	_, err = s.scheduler.Every(1).Days().At("03:00").Do(func() {
		if err := s.purgeExpiredReports(); err != nil {
			logging.Error("Failed to purge expired reports", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule retention purge", "error", err)
		return fmt.Errorf("failed to schedule retention purge: %w", err)
	}

	s.scheduler.StartAsync()

	s.startStalenessMonitoring()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// refreshStats aggregates report counts and swaps them into the snapshot.
func (s *Scheduler) refreshStats() error {
	// Prevent concurrent refreshes
	if !s.stats.BeginRefresh() {
		logging.Info("Stats refresh already in progress, skipping...")
		return nil
	}
	defer s.stats.EndRefresh()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	stats, err := s.store.AggregateStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to aggregate stats: %w", err)
	}

	s.stats.UpdateStats(stats)

	logging.Info("Stats refresh completed",
		"duration", time.Since(start).String(),
		"total_reports", stats.Total)

	return nil
}

// purgeExpiredReports deletes reports older than the retention window and
// refreshes the snapshot so /stats reflects the deletion.
func (s *Scheduler) purgeExpiredReports() error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	purged, err := s.store.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge reports: %w", err)
	}

	if purged > 0 {
		metrics.ReportsPurgedTotal.Add(float64(purged))
		logging.Info("Retention purge completed",
			"purged", purged,
			"cutoff", cutoff.Format(time.RFC3339))

		if err := s.refreshStats(); err != nil {
			logging.Error("Failed to refresh stats after purge", "error", err)
		}
	}

	return nil
}

// startStalenessMonitoring warns when the snapshot stops refreshing.
func (s *Scheduler) startStalenessMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			lastRefreshed := s.stats.GetLastRefreshed()
			if time.Since(lastRefreshed) > time.Hour {
				logging.Warn("Stats haven't been refreshed in over an hour")
			}
		}
	}()
}
