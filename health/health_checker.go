// Package health implements the service health check over the report store
// and the in-memory stats snapshot.
package health

import (
	"context"
	"time"

	"github.com/giygas/pharmacovigilance-api/interfaces"
	"github.com/giygas/pharmacovigilance-api/logging"
)

// staleThreshold marks the stats snapshot as degraded when the scheduler has
// not refreshed it within this window.
const staleThreshold = time.Hour

// HealthCheckerImpl implements interfaces.HealthChecker.
type HealthCheckerImpl struct {
	store interfaces.ReportStore
	stats interfaces.StatsStore
}

// Compile-time check to ensure HealthCheckerImpl implements interfaces.HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// NewHealthChecker creates a new health checker.
func NewHealthChecker(store interfaces.ReportStore, stats interfaces.StatsStore) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		store: store,
		stats: stats,
	}
}

// HealthCheck verifies database connectivity and stats snapshot freshness.
// Database failures report unhealthy with 503; a stale or never-refreshed
// snapshot only degrades the status since reads keep serving the last copy.
func (h *HealthCheckerImpl) HealthCheck(ctx context.Context) (string, map[string]any, int) {
	status := "healthy"
	httpStatus := 200

	database := "ok"
	if err := h.store.Ping(ctx); err != nil {
		logging.Error("Health check database ping failed", "error", err)
		database = "unreachable"
		status = "unhealthy"
		httpStatus = 503
	}

	lastRefreshed := h.stats.GetLastRefreshed()
	statsAge := time.Duration(0)
	if !lastRefreshed.IsZero() {
		statsAge = time.Since(lastRefreshed)
	}

	if status == "healthy" && (lastRefreshed.IsZero() || statsAge > staleThreshold) {
		status = "degraded"
	}

	var totalReports int64
	if snapshot := h.stats.GetStats(); snapshot != nil {
		totalReports = snapshot.Total
	}

	details := map[string]any{
		"database":          database,
		"total_reports":     totalReports,
		"last_refreshed":    lastRefreshed.UTC().Format(time.RFC3339),
		"stats_age_minutes": int(statsAge.Minutes()),
		"is_refreshing":     h.stats.IsRefreshing(),
	}

	return status, details, httpStatus
}
