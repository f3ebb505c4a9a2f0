package storage

import (
	"time"

	"gorm.io/datatypes"
)

// ReportStats summarizes the stored reports for /stats and /health.
type ReportStats struct {
	Total      int64            `json:"total"`
	ByOutcome  map[string]int64 `json:"by_outcome"`
	BySeverity map[string]int64 `json:"by_severity"`
}

// Report is a processed adverse-event report. The raw text is kept next to
// the derived fields so extractions can be re-run after rule changes.
// AdverseEvents is stored as a JSON array column and marshals back to an
// array on the wire.
type Report struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RawReport     string         `gorm:"type:text;not null" json:"raw_report"`
	Drug          string         `gorm:"type:varchar(200)" json:"drug"`
	AdverseEvents datatypes.JSON `json:"adverse_events"`
	Severity      string         `gorm:"type:varchar(50)" json:"severity"`
	Outcome       string         `gorm:"type:varchar(50)" json:"outcome"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index" json:"timestamp"`
}
