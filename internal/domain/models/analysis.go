package models

import "jobshield/internal/domain/catalog"

// RiskLevel is the tier derived from the aggregate risk score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

// SignalKind distinguishes matched phrase categories from channel-derived
// boolean flags
type SignalKind string

const (
	SignalKindPhraseCategory SignalKind = "phrase_category"
	SignalKindBooleanFlag    SignalKind = "boolean_flag"
)

// Signal is a normalized, weighted unit of evidence fed to the scorer,
// independent of the channel that produced it
type Signal struct {
	Kind        SignalKind `json:"kind"`
	Name        string     `json:"name"`
	Weight      int        `json:"weight"`
	Explanation string     `json:"explanation"`
	Advice      string     `json:"advice"`
}

// Match is a positioned phrase occurrence in a specific text buffer. Valid
// only for the buffer it was computed from; never persisted.
type Match struct {
	Phrase     string            `json:"phrase"`
	Category   *catalog.Category `json:"-"`
	StartIndex int               `json:"start_index"`
	EndIndex   int               `json:"end_index"`
}

// AnalysisResult is produced fresh per request and carries no identity
// beyond it. detected_patterns preserves first-detected order with
// duplicates removed.
type AnalysisResult struct {
	RiskLevel        RiskLevel `json:"risk_level"`
	RiskScore        int       `json:"risk_score"`
	DetectedPatterns []string  `json:"detected_patterns"`
	Explanation      string    `json:"explanation"`
	Advice           string    `json:"advice"`
}

// HighlightSpan is a phrase occurrence projected back onto page text,
// carrying the presentation data the client renders.
type HighlightSpan struct {
	Text       string `json:"text"`
	Category   string `json:"category"`
	Color      string `json:"color"`
	Tooltip    string `json:"tooltip"`
	StartIndex int    `json:"start_index"`
	EndIndex   int    `json:"end_index"`
}
