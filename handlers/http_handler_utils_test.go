package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/datatypes"

	"github.com/giygas/pharmacovigilance-api/storage"
)

// ============================================================================
// TEST DATA FACTORY
// ============================================================================

// TestDataFactory creates consistent test data across all tests
type TestDataFactory struct{}

func NewTestDataFactory() *TestDataFactory {
	return &TestDataFactory{}
}

// CreateReport creates a single stored report with realistic data
func (f *TestDataFactory) CreateReport(id uint, drug string, events []string, severity, outcome string) storage.Report {
	raw := fmt.Sprintf("Patient was taking %s and experienced %s %s.",
		drug, severity, strings.Join(events, " and "))

	encoded, _ := json.Marshal(events)
	return storage.Report{
		ID:            id,
		RawReport:     raw,
		Drug:          drug,
		AdverseEvents: datatypes.JSON(encoded),
		Severity:      severity,
		Outcome:       outcome,
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour),
	}
}

// CreateReports creates multiple stored reports
func (f *TestDataFactory) CreateReports(count int) []storage.Report {
	reports := make([]storage.Report, count)
	for i := 0; i < count; i++ {
		reports[i] = f.CreateReport(uint(i+1), fmt.Sprintf("Drug%d", i+1),
			[]string{"nausea"}, "severe", "Recovered")
	}
	return reports
}

// ============================================================================
// MOCK BUILDERS
// ============================================================================

// MockReportStoreBuilder provides fluent interface for building mock stores
type MockReportStoreBuilder struct {
	mock *MockReportStore
}

func NewMockReportStoreBuilder() *MockReportStoreBuilder {
	return &MockReportStoreBuilder{
		mock: &MockReportStore{
			reports: []storage.Report{},
		},
	}
}

func (b *MockReportStoreBuilder) WithReports(reports []storage.Report) *MockReportStoreBuilder {
	b.mock.reports = reports
	return b
}

func (b *MockReportStoreBuilder) WithSaveError(err error) *MockReportStoreBuilder {
	b.mock.saveError = err
	return b
}

func (b *MockReportStoreBuilder) WithListError(err error) *MockReportStoreBuilder {
	b.mock.listError = err
	return b
}

func (b *MockReportStoreBuilder) WithPingError(err error) *MockReportStoreBuilder {
	b.mock.pingError = err
	return b
}

func (b *MockReportStoreBuilder) Build() *MockReportStore {
	return b.mock
}

// ============================================================================
// HTTP TEST UTILITIES
// ============================================================================

// HTTPTestHelper provides utilities for HTTP handler testing
type HTTPTestHelper struct {
	t *testing.T
}

func NewHTTPTestHelper(t *testing.T) *HTTPTestHelper {
	return &HTTPTestHelper{t: t}
}

// ExecuteRequest executes an HTTP handler with given parameters
func (h *HTTPTestHelper) ExecuteRequest(handler http.HandlerFunc, method, path, body string, urlParams map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	if len(urlParams) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range urlParams {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

// AssertJSONResponse asserts that response contains valid JSON with expected status
func (h *HTTPTestHelper) AssertJSONResponse(resp *httptest.ResponseRecorder, expectedStatus int, target any) {
	if resp.Code != expectedStatus {
		h.t.Errorf("Expected status %d, got %d", expectedStatus, resp.Code)
	}

	bodyStr := resp.Body.String()
	if bodyStr == "" {
		h.t.Error("Response body should not be empty")
	}

	err := json.Unmarshal([]byte(bodyStr), target)
	if err != nil {
		h.t.Errorf("Response should be valid JSON, got error: %v", err)
	}
}

// AssertErrorResponse asserts that response contains an error with expected status
func (h *HTTPTestHelper) AssertErrorResponse(resp *httptest.ResponseRecorder, expectedStatus int) {
	if resp.Code != expectedStatus {
		h.t.Errorf("Expected status %d, got %d", expectedStatus, resp.Code)
	}

	var errorResp map[string]any
	err := json.Unmarshal(resp.Body.Bytes(), &errorResp)
	if err != nil {
		h.t.Errorf("Error response should be valid JSON, got error: %v", err)
	}

	if _, ok := errorResp["message"]; !ok {
		h.t.Error("Error response should have message field")
	}
	if _, ok := errorResp["code"]; !ok {
		h.t.Error("Error response should have code field")
	}
}

// ============================================================================
// MOCK IMPLEMENTATIONS
// ============================================================================

// MockReportStore implements interfaces.ReportStore for testing
type MockReportStore struct {
	reports []storage.Report

	saveError error
	listError error
	pingError error

	// Method call tracking
	saveCalled bool
	lastSaved  *storage.Report
}

func (m *MockReportStore) SaveReport(ctx context.Context, report *storage.Report) error {
	m.saveCalled = true
	if m.saveError != nil {
		return m.saveError
	}
	report.ID = uint(len(m.reports) + 1)
	report.CreatedAt = time.Now()
	m.reports = append(m.reports, *report)
	m.lastSaved = report
	return nil
}

func (m *MockReportStore) ListReports(ctx context.Context) ([]storage.Report, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	// Newest first, same order as the real store
	out := make([]storage.Report, len(m.reports))
	for i, r := range m.reports {
		out[len(m.reports)-1-i] = r
	}
	return out, nil
}

func (m *MockReportStore) GetReport(ctx context.Context, id uint) (*storage.Report, error) {
	for i := range m.reports {
		if m.reports[i].ID == id {
			return &m.reports[i], nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *MockReportStore) AggregateStats(ctx context.Context) (*storage.ReportStats, error) {
	stats := &storage.ReportStats{
		Total:      int64(len(m.reports)),
		ByOutcome:  make(map[string]int64),
		BySeverity: make(map[string]int64),
	}
	for _, r := range m.reports {
		stats.ByOutcome[r.Outcome]++
		stats.BySeverity[r.Severity]++
	}
	return stats, nil
}

func (m *MockReportStore) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var kept []storage.Report
	var purged int64
	for _, r := range m.reports {
		if r.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, r)
	}
	m.reports = kept
	return purged, nil
}

func (m *MockReportStore) Ping(ctx context.Context) error {
	return m.pingError
}

// MockHealthChecker implements interfaces.HealthChecker for testing
type MockHealthChecker struct {
	status     string
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) (string, map[string]any, int) {
	status := m.status
	if status == "" {
		status = "healthy"
	}
	httpStatus := m.httpStatus
	if httpStatus == 0 {
		httpStatus = 200
	}
	return status, map[string]any{"database": "ok"}, httpStatus
}
