// Package validation provides input validation for the pharmacovigilance API.
package validation

import (
	"fmt"
	"strings"

	"github.com/giygas/pharmacovigilance-api/interfaces"
)

// Report text bounds. Reports are short clinical narratives; anything beyond
// a few thousand characters is not a patient report.
const (
	minReportLength  = 10
	maxReportLength  = 10000
	maxOutcomeLength = 50
)

// Dangerous patterns as strings (faster than regex for simple substring
// matching). Report text is free prose, so only markup/script payloads are
// screened here, not punctuation that occurs in normal sentences.
var dangerousPatterns = []string{
	"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
	"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
	"eval(", "expression(", "@import", "binding(", "behavior(",
	"union select", "drop table", "delete from", "insert into",
	"%2e%2e", "file://",
}

// ReportValidatorImpl implements the interfaces.ReportValidator interface
type ReportValidatorImpl struct{}

// NewReportValidator creates a new report validator
func NewReportValidator() interfaces.ReportValidator {
	return &ReportValidatorImpl{}
}

// ValidateReport checks raw report text before it reaches extraction.
func (v *ReportValidatorImpl) ValidateReport(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("report text cannot be empty")
	}

	if len(trimmed) < minReportLength {
		return fmt.Errorf("report text too short: minimum %d characters", minReportLength)
	}

	if len(text) > maxReportLength {
		return fmt.Errorf("report text too long: maximum %d characters", maxReportLength)
	}

	lower := strings.ToLower(text)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("report text contains potentially dangerous content")
		}
	}

	if hasExcessiveRepetition(text) {
		return fmt.Errorf("report text contains excessive character repetition")
	}

	return nil
}

// ValidateOutcomeLabel checks an outcome label sent to /translate.
func (v *ReportValidatorImpl) ValidateOutcomeLabel(label string) error {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return fmt.Errorf("outcome cannot be empty")
	}

	if len(trimmed) > maxOutcomeLength {
		return fmt.Errorf("outcome too long: maximum %d characters", maxOutcomeLength)
	}

	// Labels are single words or short phrases
	if len(strings.Fields(trimmed)) > 4 {
		return fmt.Errorf("outcome must be a short label, got %d words", len(strings.Fields(trimmed)))
	}

	return nil
}

// hasExcessiveRepetition checks for potential DoS patterns with the same
// character repeated more than 20 times consecutively
func hasExcessiveRepetition(input string) bool {
	const limit = 20

	run := 1
	var prev rune
	for i, r := range input {
		if i > 0 && r == prev {
			run++
			if run > limit {
				return true
			}
		} else {
			run = 1
		}
		prev = r
	}
	return false
}
