package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"

	"github.com/giygas/pharmacovigilance-api/interfaces"
	"github.com/giygas/pharmacovigilance-api/logging"
	"github.com/giygas/pharmacovigilance-api/metrics"
	"github.com/giygas/pharmacovigilance-api/storage"
	"github.com/giygas/pharmacovigilance-api/translation"
)

// HTTPHandlerImpl implements interfaces.HTTPHandler with injected
// dependencies for persistence, extraction, translation and validation.
type HTTPHandlerImpl struct {
	store      interfaces.ReportStore
	extractor  interfaces.Extractor
	translator interfaces.Translator
	validator  interfaces.ReportValidator
	stats      interfaces.StatsStore
	health     interfaces.HealthChecker
}

// Compile-time check to ensure HTTPHandlerImpl implements interfaces.HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// NewHTTPHandler creates a new HTTP handler with the given dependencies.
func NewHTTPHandler(
	store interfaces.ReportStore,
	ext interfaces.Extractor,
	translator interfaces.Translator,
	validator interfaces.ReportValidator,
	stats interfaces.StatsStore,
	health interfaces.HealthChecker,
) *HTTPHandlerImpl {
	return &HTTPHandlerImpl{
		store:      store,
		extractor:  ext,
		translator: translator,
		validator:  validator,
		stats:      stats,
		health:     health,
	}
}

type processReportRequest struct {
	Report string `json:"report"`
}

type translateRequest struct {
	Outcome  string `json:"outcome"`
	Language string `json:"language"`
}

// ProcessReport extracts structured adverse-event fields from a free-text
// report, persists the result and returns the extraction.
func (h *HTTPHandlerImpl) ProcessReport(w http.ResponseWriter, r *http.Request) {
	var req processReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if strings.TrimSpace(req.Report) == "" {
		RespondWithError(w, http.StatusBadRequest, "Missing 'report' field in request body")
		return
	}

	if err := h.validator.ValidateReport(req.Report); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.extractor.Extract(req.Report)

	events, err := json.Marshal(result.AdverseEvents)
	if err != nil {
		logging.Error("Failed to encode adverse events", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal processing error")
		return
	}

	report := &storage.Report{
		RawReport:     req.Report,
		Drug:          result.Drug,
		AdverseEvents: datatypes.JSON(events),
		Severity:      result.Severity,
		Outcome:       result.Outcome,
	}
	if err := h.store.SaveReport(r.Context(), report); err != nil {
		logging.Error("Failed to save report", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal processing error")
		return
	}

	metrics.ReportsProcessedTotal.WithLabelValues(result.Severity, result.Outcome).Inc()
	logging.Info("Report processed",
		"id", report.ID,
		"drug", result.Drug,
		"severity", result.Severity,
		"outcome", result.Outcome)

	RespondWithJSON(w, http.StatusOK, result)
}

// ListReports returns every stored report, newest first.
func (h *HTTPHandlerImpl) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.ListReports(r.Context())
	if err != nil {
		logging.Error("Failed to list reports", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reports")
		return
	}

	RespondWithJSON(w, http.StatusOK, reports)
}

// GetReportByID returns a single stored report.
func (h *HTTPHandlerImpl) GetReportByID(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "reportId")
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil || id == 0 {
		RespondWithError(w, http.StatusBadRequest, "Report id must be a positive integer")
		return
	}

	report, err := h.store.GetReport(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			RespondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		logging.Error("Failed to get report", "id", id, "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve report")
		return
	}

	RespondWithJSON(w, http.StatusOK, report)
}

// TranslateOutcome returns the translation of an outcome label in the
// requested language.
func (h *HTTPHandlerImpl) TranslateOutcome(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	if strings.TrimSpace(req.Outcome) == "" || strings.TrimSpace(req.Language) == "" {
		RespondWithError(w, http.StatusBadRequest, "Both 'outcome' and 'language' fields are required")
		return
	}

	if err := h.validator.ValidateOutcomeLabel(req.Outcome); err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	lang, err := h.translator.ParseLanguage(req.Language)
	if err != nil {
		RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	translated := h.translator.Translate(req.Outcome, lang)
	metrics.TranslationLookupsTotal.WithLabelValues(
		lang,
		strconv.FormatBool(translated != translation.NotAvailable),
	).Inc()

	RespondWithJSON(w, http.StatusOK, map[string]string{
		"original":    h.translator.CanonicalLabel(req.Outcome),
		"language":    lang,
		"translation": translated,
	})
}

// Stats serves the latest aggregated report counts from the in-memory
// snapshot, without touching the database.
func (h *HTTPHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.stats.GetStats()

	response := map[string]interface{}{
		"stats":          stats,
		"last_refreshed": h.stats.GetLastRefreshed().UTC().Format(time.RFC3339),
		"is_refreshing":  h.stats.IsRefreshing(),
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// HealthCheck reports service health plus basic runtime information.
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.health.HealthCheck(r.Context())

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	response := map[string]interface{}{
		"status":         status,
		"uptime_seconds": int64(time.Since(h.stats.GetServerStartTime()).Seconds()),
		"data":           details,
		"system": map[string]interface{}{
			"goroutines":      runtime.NumGoroutine(),
			"memory_alloc_mb": memStats.Alloc / 1024 / 1024,
			"gc_runs":         memStats.NumGC,
		},
	}

	RespondWithJSON(w, httpStatus, response)
}
