// Package data provides thread-safe storage for the latest report statistics
// snapshot. The StatsContainer uses atomic values so the scheduler can swap
// in a fresh snapshot with zero downtime while handlers keep reading.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/pharmacovigilance-api/interfaces"
	"github.com/giygas/pharmacovigilance-api/logging"
	"github.com/giygas/pharmacovigilance-api/storage"
)

// Compile-time check to ensure StatsContainer implements StatsStore
var _ interfaces.StatsStore = (*StatsContainer)(nil)

// StatsContainer holds the current stats snapshot with atomic pointers
// for zero-downtime refreshes
type StatsContainer struct {
	stats           atomic.Value // *storage.ReportStats
	lastRefreshed   atomic.Value // time.Time
	refreshing      atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewStatsContainer creates a new StatsContainer with an empty snapshot
func NewStatsContainer() *StatsContainer {
	sc := &StatsContainer{}
	sc.stats.Store(&storage.ReportStats{
		ByOutcome:  make(map[string]int64),
		BySeverity: make(map[string]int64),
	})
	sc.lastRefreshed.Store(time.Time{})
	sc.serverStartTime.Store(time.Time{})
	return sc
}

// Thread-safe getters with type check

// GetStats returns the current stats snapshot
func (sc *StatsContainer) GetStats() *storage.ReportStats {
	if v := sc.stats.Load(); v != nil {
		if stats, ok := v.(*storage.ReportStats); ok {
			return stats
		}
	}

	logging.Warn("Stats snapshot is empty or invalid")
	return &storage.ReportStats{
		ByOutcome:  make(map[string]int64),
		BySeverity: make(map[string]int64),
	}
}

// GetLastRefreshed returns the timestamp of the last stats refresh
func (sc *StatsContainer) GetLastRefreshed() time.Time {
	if v := sc.lastRefreshed.Load(); v != nil {
		if lastRefreshed, ok := v.(time.Time); ok {
			return lastRefreshed
		}
	}

	logging.Warn("Could not get the last refreshed value")
	return time.Time{}
}

// IsRefreshing returns true if a stats refresh is currently in progress
func (sc *StatsContainer) IsRefreshing() bool {
	return sc.refreshing.Load()
}

// SetServerStartTime sets the server start time
func (sc *StatsContainer) SetServerStartTime(startTime time.Time) {
	sc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (sc *StatsContainer) GetServerStartTime() time.Time {
	if v := sc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateStats atomically swaps in a fresh stats snapshot
func (sc *StatsContainer) UpdateStats(stats *storage.ReportStats) {
	if stats == nil {
		logging.Warn("Ignoring nil stats snapshot")
		return
	}

	sc.stats.Store(stats)
	sc.lastRefreshed.Store(time.Now())
}

// BeginRefresh marks the start of a stats refresh.
// Returns true if the refresh can proceed, false if another one is in progress
func (sc *StatsContainer) BeginRefresh() bool {
	return sc.refreshing.CompareAndSwap(false, true)
}

// EndRefresh marks the end of a stats refresh
func (sc *StatsContainer) EndRefresh() {
	sc.refreshing.Store(false)
}
