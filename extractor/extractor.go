// Package extractor implements the rule-based extraction of structured
// adverse-event fields from free-text patient reports. It tokenizes the
// report into sentences and runs flat keyword/window rules over the tokens:
// drug verbs anchor the medication name, symptom verbs anchor adverse-event
// nouns, severity adjectives qualify them and outcome keywords map to a
// canonical resolution label. Every request is evaluated from scratch; the
// rule tables live in rules.go.
package extractor

import (
	"sort"
	"strings"
)

// Fallback labels returned when no rule fires.
const (
	UnknownDrug     = "Unknown Drug"
	UnknownSeverity = "unknown"
	UnknownOutcome  = "Unknown"
	NoEvents        = "N/A"
)

// drugScanWindow bounds how far past a drug verb the name may appear
// ("was given some Aspirin" still matches, unrelated clauses do not).
const drugScanWindow = 5

// Extraction holds the structured fields derived from one report.
type Extraction struct {
	Drug          string   `json:"drug"`
	AdverseEvents []string `json:"adverse_events"`
	Severity      string   `json:"severity"`
	Outcome       string   `json:"outcome"`
}

// RuleExtractor evaluates the keyword rule tables against report text.
type RuleExtractor struct{}

// NewRuleExtractor creates a rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract derives the drug name, adverse events, severity and outcome from
// raw report text. It never fails: fields without a matching rule keep their
// fallback label.
func (e *RuleExtractor) Extract(text string) Extraction {
	sents := tokenize(text)

	drug := e.extractDrug(sents)
	events, severity := e.extractEvents(sents)
	outcome := e.extractOutcome(sents)

	return Extraction{
		Drug:          drug,
		AdverseEvents: events,
		Severity:      severity,
		Outcome:       outcome,
	}
}

// extractDrug looks for the first content word after a drug verb, then falls
// back to a title-cased neighbor of "medicine"/"drug".
func (e *RuleExtractor) extractDrug(sents [][]token) string {
	for _, sent := range sents {
		for i, tok := range sent {
			if !drugVerbs[tok.lower] {
				continue
			}

			end := i + 1 + drugScanWindow
			if end > len(sent) {
				end = len(sent)
			}

			for j := i + 1; j < end; j++ {
				cand := sent[j]
				if functionWords[cand.lower] || severityAdjectives[cand.lower] {
					continue
				}
				if symptomVerbs[cand.lower] || drugVerbs[cand.lower] {
					break
				}
				// "medicine"/"drug" alone names nothing, keep scanning.
				if cand.lower == "medicine" || cand.lower == "drug" {
					continue
				}
				if nounStoplist[cand.lower] {
					continue
				}

				name := cand.lower
				// Compound names like "aspirin medicine" keep the qualifier.
				if j+1 < len(sent) && (sent[j+1].lower == "medicine" || sent[j+1].lower == "drug") {
					name = name + " " + sent[j+1].lower
				}
				return titleCase(name)
			}
		}
	}

	// Fallback: a title-cased word right before "medicine" or "drug".
	for _, sent := range sents {
		for i, tok := range sent {
			if tok.lower != "medicine" && tok.lower != "drug" {
				continue
			}
			if i > 0 && sent[i-1].isTitleCased() && !functionWords[sent[i-1].lower] {
				return titleCase(sent[i-1].lower)
			}
		}
	}

	return UnknownDrug
}

// extractEvents collects adverse-event nouns following symptom verbs and the
// severity adjective qualifying them. Events are lowercased, deduplicated and
// sorted; an empty result collapses to ["N/A"].
func (e *RuleExtractor) extractEvents(sents [][]token) ([]string, string) {
	severity := UnknownSeverity
	seen := make(map[string]bool)

	for _, sent := range sents {
		for i, tok := range sent {
			if !symptomVerbs[tok.lower] {
				continue
			}

			for j := i + 1; j < len(sent); j++ {
				cand := sent[j]

				// Another clause started, stop collecting for this verb.
				if symptomVerbs[cand.lower] || drugVerbs[cand.lower] || outcomeLabels[cand.lower] != "" {
					break
				}
				if severityAdjectives[cand.lower] {
					if severity == UnknownSeverity {
						severity = cand.lower
					}
					continue
				}
				if functionWords[cand.lower] || nounStoplist[cand.lower] {
					continue
				}
				if cand.lower == "medicine" || cand.lower == "drug" {
					continue
				}

				seen[strings.TrimSpace(cand.lower)] = true
			}
		}
	}

	events := make([]string, 0, len(seen))
	for ev := range seen {
		if ev != "" {
			events = append(events, ev)
		}
	}
	sort.Strings(events)

	if len(events) == 0 {
		events = []string{NoEvents}
	}

	return events, severity
}

// extractOutcome returns the label of the first outcome keyword in token
// order, or "Unknown".
func (e *RuleExtractor) extractOutcome(sents [][]token) string {
	for _, sent := range sents {
		for _, tok := range sent {
			if label, ok := outcomeLabels[tok.lower]; ok {
				return label
			}
		}
	}
	return UnknownOutcome
}
