// Package storage provides SQLite persistence for processed adverse-event
// reports. It wraps gorm with a small store type implementing the
// interfaces.ReportStore contract.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a report id does not exist.
var ErrNotFound = errors.New("report not found")

// SQLiteStore persists reports in a local SQLite file.
type SQLiteStore struct {
	db *gorm.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// gorm's own logger is noisy at default level, slog covers us.
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Report{}); err != nil {
		return nil, fmt.Errorf("failed to migrate reports table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// SaveReport inserts a processed report and fills in its surrogate id.
func (s *SQLiteStore) SaveReport(ctx context.Context, report *Report) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// ListReports returns all stored reports, newest first.
func (s *SQLiteStore) ListReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

// GetReport returns a single report by id, or ErrNotFound.
func (s *SQLiteStore) GetReport(ctx context.Context, id uint) (*Report, error) {
	var report Report
	err := s.db.WithContext(ctx).First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report %d: %w", id, err)
	}
	return &report, nil
}

// labelCount is the scan target for grouped count queries.
type labelCount struct {
	Label string
	N     int64
}

// AggregateStats computes report counts grouped by outcome and severity.
func (s *SQLiteStore) AggregateStats(ctx context.Context) (*ReportStats, error) {
	stats := &ReportStats{
		ByOutcome:  make(map[string]int64),
		BySeverity: make(map[string]int64),
	}

	if err := s.db.WithContext(ctx).Model(&Report{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	var byOutcome []labelCount
	err := s.db.WithContext(ctx).Model(&Report{}).
		Select("outcome AS label, COUNT(*) AS n").
		Group("outcome").
		Scan(&byOutcome).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate outcomes: %w", err)
	}
	for _, row := range byOutcome {
		stats.ByOutcome[row.Label] = row.N
	}

	var bySeverity []labelCount
	err = s.db.WithContext(ctx).Model(&Report{}).
		Select("severity AS label, COUNT(*) AS n").
		Group("severity").
		Scan(&bySeverity).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate severities: %w", err)
	}
	for _, row := range bySeverity {
		stats.BySeverity[row.Label] = row.N
	}

	return stats, nil
}

// PurgeOlderThan deletes reports created before cutoff and returns the
// number of rows removed.
func (s *SQLiteStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&Report{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge reports: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
