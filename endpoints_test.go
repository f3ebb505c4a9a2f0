package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giygas/pharmacovigilance-api/config"
	"github.com/giygas/pharmacovigilance-api/data"
	"github.com/giygas/pharmacovigilance-api/extractor"
	"github.com/giygas/pharmacovigilance-api/handlers"
	"github.com/giygas/pharmacovigilance-api/health"
	"github.com/giygas/pharmacovigilance-api/server"
	"github.com/giygas/pharmacovigilance-api/storage"
	"github.com/giygas/pharmacovigilance-api/translation"
	"github.com/giygas/pharmacovigilance-api/validation"
)

// newTestServer wires the full stack over a throwaway SQLite database.
func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := &config.Config{
		Port:                "8000",
		Address:             "127.0.0.1",
		Env:                 "test",
		LogLevel:            "info",
		LogRetentionWeeks:   4,
		MaxLogFileSize:      10 * 1024 * 1024,
		MaxRequestBody:      1024 * 1024,
		MaxHeaderSize:       1024 * 1024,
		DatabasePath:        filepath.Join(t.TempDir(), "reports.db"),
		ReportRetentionDays: 365,
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	stats := data.NewStatsContainer()
	stats.SetServerStartTime(time.Now())
	stats.UpdateStats(&storage.ReportStats{
		ByOutcome:  make(map[string]int64),
		BySeverity: make(map[string]int64),
	})

	handler := handlers.NewHTTPHandler(
		store,
		extractor.NewRuleExtractor(),
		translation.NewDictionary(),
		validation.NewReportValidator(),
		stats,
		health.NewHealthChecker(store, stats),
	)

	return server.NewServer(cfg, handler)
}

func doJSON(t *testing.T, srv *server.Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "192.0.2.50:3000"

	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	return rr
}

func TestProcessReportEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, "POST", "/process-report",
		`{"report": "The patient was taking Ibuprofen and experienced severe headaches and nausea. She recovered after two days."}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var extraction extractor.Extraction
	if err := json.Unmarshal(resp.Body.Bytes(), &extraction); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if extraction.Drug != "Ibuprofen" {
		t.Errorf("Expected drug Ibuprofen, got %q", extraction.Drug)
	}
	if extraction.Outcome != "Recovered" {
		t.Errorf("Expected outcome Recovered, got %q", extraction.Outcome)
	}

	// The report is now queryable
	resp = doJSON(t, srv, "GET", "/reports", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.Code)
	}

	var reports []storage.Report
	if err := json.Unmarshal(resp.Body.Bytes(), &reports); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("Expected 1 stored report, got %d", len(reports))
	}
	if reports[0].Drug != "Ibuprofen" || reports[0].Severity != "severe" {
		t.Errorf("Stored report mismatch: %+v", reports[0])
	}

	// And addressable by id
	resp = doJSON(t, srv, "GET", "/reports/1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.Code)
	}
}

func TestProcessReportRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, "POST", "/process-report", `{"report": ""}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty report, got %d", resp.Code)
	}

	resp = doJSON(t, srv, "GET", "/reports", "")
	var reports []storage.Report
	if err := json.Unmarshal(resp.Body.Bytes(), &reports); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("Rejected input must not be stored, found %d reports", len(reports))
	}
}

func TestTranslateEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, "POST", "/translate", `{"outcome": "Recovered", "language": "sw"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var result map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if result["translation"] != "Amepona" {
		t.Errorf("Expected Amepona, got %q", result["translation"])
	}

	resp = doJSON(t, srv, "POST", "/translate", `{"outcome": "Recovered", "language": "de"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unsupported language, got %d", resp.Code)
	}
}

func TestHealthEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, "GET", "/health", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected healthy, got %v", body["status"])
	}
}

func TestStatsEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, "GET", "/stats", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if _, ok := body["stats"]; !ok {
		t.Error("Expected a stats object")
	}
}

func TestRateLimitHeadersPresent(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, "GET", "/health", "")
	if resp.Header().Get("X-RateLimit-Limit") == "" {
		t.Error("Expected rate limit headers on responses")
	}
}
