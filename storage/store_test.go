package storage

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/datatypes"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "reports.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return store
}

func testReport(drug string, events []string, severity, outcome string) *Report {
	encoded, _ := json.Marshal(events)
	return &Report{
		RawReport:     "Patient was taking " + drug + " and experienced " + severity + " symptoms.",
		Drug:          drug,
		AdverseEvents: datatypes.JSON(encoded),
		Severity:      severity,
		Outcome:       outcome,
	}
}

func TestSaveAndGetReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := testReport("Ibuprofen", []string{"nausea", "headaches"}, "severe", "Recovered")
	if err := store.SaveReport(ctx, report); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	if report.ID == 0 {
		t.Fatal("Expected the surrogate id to be filled in")
	}

	got, err := store.GetReport(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetReport failed: %v", err)
	}
	if got.Drug != "Ibuprofen" {
		t.Errorf("Expected Ibuprofen, got %q", got.Drug)
	}
	if got.Severity != "severe" || got.Outcome != "Recovered" {
		t.Errorf("Unexpected fields: severity=%q outcome=%q", got.Severity, got.Outcome)
	}

	var events []string
	if err := json.Unmarshal(got.AdverseEvents, &events); err != nil {
		t.Fatalf("AdverseEvents should round-trip as JSON: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected 2 adverse events, got %v", events)
	}
}

func TestSaveReportNil(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveReport(context.Background(), nil); err == nil {
		t.Error("Expected error for nil report")
	}
}

func TestGetReportNotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetReport(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListReportsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, drug := range []string{"Aspirin", "Metformin", "Warfarin"} {
		if err := store.SaveReport(ctx, testReport(drug, []string{"dizziness"}, "mild", "Ongoing")); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
	}

	reports, err := store.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(reports))
	}
	if reports[0].Drug != "Warfarin" {
		t.Errorf("Expected newest report first, got %q", reports[0].Drug)
	}
	if reports[2].Drug != "Aspirin" {
		t.Errorf("Expected oldest report last, got %q", reports[2].Drug)
	}
}

func TestAggregateStats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := []struct {
		severity string
		outcome  string
	}{
		{"severe", "Recovered"},
		{"severe", "Ongoing"},
		{"mild", "Recovered"},
	}
	for _, s := range seed {
		if err := store.SaveReport(ctx, testReport("Ibuprofen", []string{"rash"}, s.severity, s.outcome)); err != nil {
			t.Fatalf("SaveReport failed: %v", err)
		}
	}

	stats, err := store.AggregateStats(ctx)
	if err != nil {
		t.Fatalf("AggregateStats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Expected total 3, got %d", stats.Total)
	}
	if stats.ByOutcome["Recovered"] != 2 {
		t.Errorf("Expected 2 Recovered, got %d", stats.ByOutcome["Recovered"])
	}
	if stats.BySeverity["severe"] != 2 {
		t.Errorf("Expected 2 severe, got %d", stats.BySeverity["severe"])
	}
}

func TestAggregateStatsEmpty(t *testing.T) {
	store := newTestStore(t)

	stats, err := store.AggregateStats(context.Background())
	if err != nil {
		t.Fatalf("AggregateStats failed: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Expected total 0, got %d", stats.Total)
	}
	if len(stats.ByOutcome) != 0 || len(stats.BySeverity) != 0 {
		t.Errorf("Expected empty maps, got %v / %v", stats.ByOutcome, stats.BySeverity)
	}
}

func TestPurgeOlderThan(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := testReport("Aspirin", []string{"nausea"}, "mild", "Recovered")
	if err := store.SaveReport(ctx, old); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}
	// Backdate the first report past the cutoff
	backdated := time.Now().AddDate(0, 0, -400)
	if err := store.db.Model(&Report{}).Where("id = ?", old.ID).Update("created_at", backdated).Error; err != nil {
		t.Fatalf("Failed to backdate report: %v", err)
	}

	recent := testReport("Metformin", []string{"dizziness"}, "mild", "Ongoing")
	if err := store.SaveReport(ctx, recent); err != nil {
		t.Fatalf("SaveReport failed: %v", err)
	}

	purged, err := store.PurgeOlderThan(ctx, time.Now().AddDate(0, 0, -365))
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if purged != 1 {
		t.Errorf("Expected 1 purged report, got %d", purged)
	}

	reports, err := store.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 1 || reports[0].Drug != "Metformin" {
		t.Errorf("Expected only the recent report to survive, got %v", reports)
	}
}

func TestPing(t *testing.T) {
	store := newTestStore(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}
