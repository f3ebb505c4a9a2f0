// Package interfaces defines core abstractions for the pharmacovigilance API
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/pharmacovigilance-api/extractor"
	"github.com/giygas/pharmacovigilance-api/storage"
)

// HTTPHandler defines the contract for the HTTP handlers of the API.
type HTTPHandler interface {
	ProcessReport(w http.ResponseWriter, r *http.Request)
	ListReports(w http.ResponseWriter, r *http.Request)
	GetReportByID(w http.ResponseWriter, r *http.Request)
	TranslateOutcome(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// ReportStore defines the contract for report persistence. Implementations
// back onto a local SQLite database; all operations honor the request context.
type ReportStore interface {
	// SaveReport inserts a processed report and fills in its surrogate id.
	SaveReport(ctx context.Context, report *storage.Report) error

	// ListReports returns all stored reports, newest first.
	ListReports(ctx context.Context) ([]storage.Report, error)

	// GetReport returns a single report by id.
	GetReport(ctx context.Context, id uint) (*storage.Report, error)

	// AggregateStats computes report counts grouped by outcome and severity.
	AggregateStats(ctx context.Context) (*storage.ReportStats, error)

	// PurgeOlderThan deletes reports created before cutoff and returns the
	// number of rows removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error
}

// StatsStore provides thread-safe access to the latest stats snapshot with
// atomic operations for zero-downtime refreshes.
type StatsStore interface {
	GetStats() *storage.ReportStats
	GetLastRefreshed() time.Time
	IsRefreshing() bool
	GetServerStartTime() time.Time
	SetServerStartTime(startTime time.Time)

	UpdateStats(stats *storage.ReportStats)
	BeginRefresh() bool
	EndRefresh()
}

// Extractor defines the contract for deriving structured adverse-event
// fields from free report text.
type Extractor interface {
	Extract(text string) extractor.Extraction
}

// Translator defines the contract for outcome-label translation lookups.
type Translator interface {
	// ParseLanguage validates a requested language and returns its
	// canonical code.
	ParseLanguage(lang string) (string, error)

	// Translate returns the translation of an outcome label in the given
	// language, falling back to a not-available marker for unknown labels.
	Translate(outcome, lang string) string

	// CanonicalLabel returns the title-cased form used as dictionary key.
	CanonicalLabel(outcome string) string
}

// Scheduler defines the contract for background maintenance jobs.
type Scheduler interface {
	Start() error
	Stop()
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns the current status, detail payload and the HTTP
	// status code to serve it with.
	HealthCheck(ctx context.Context) (status string, details map[string]any, httpStatus int)
}

// ReportValidator defines the contract for validating user-supplied input
// before it reaches extraction or translation.
type ReportValidator interface {
	// ValidateReport checks raw report text.
	ValidateReport(text string) error

	// ValidateOutcomeLabel checks an outcome label sent to /translate.
	ValidateOutcomeLabel(label string) error
}
