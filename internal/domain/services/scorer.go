package services

import (
	"strings"

	"jobshield/internal/config"
	"jobshield/internal/domain/models"
	"jobshield/pkg/logger"
)

// Advice templates keyed by tier.
const (
	adviceHigh = "Do not engage. This shows strong signs of a job scam — verify the employer independently before taking any action."
	adviceMed  = "Proceed cautiously. Verify the employer through official channels before sharing personal information."
	adviceLow  = "No action needed. Apply standard diligence when engaging with employers."

	explanationNone = "No significant risk indicators found."
)

// Scorer aggregates normalized signals into a risk score, tier, explanation
// and advice. Pure and deterministic: the same signal set always yields the
// same result.
type Scorer struct {
	config config.ScoringConfig
	logger *logger.Logger
}

// NewScorer creates a new Scorer
func NewScorer(cfg config.ScoringConfig, log *logger.Logger) *Scorer {
	if cfg.HighThreshold == 0 {
		cfg.HighThreshold = 70
	}
	if cfg.MediumThreshold == 0 {
		cfg.MediumThreshold = 40
	}
	return &Scorer{
		config: cfg,
		logger: log.WithComponent("scorer"),
	}
}

// Score sums the weights of all distinct signals (a signal contributes once
// regardless of how many phrases produced it), clamps to [0, 100], and maps
// the total onto a tier. detected_patterns preserves first-detected order.
func (s *Scorer) Score(signals []models.Signal) models.AnalysisResult {
	var (
		total   int
		names   []string
		clauses []string
		seen    = make(map[string]struct{})
	)

	for _, sig := range signals {
		if _, dup := seen[sig.Name]; dup {
			continue
		}
		seen[sig.Name] = struct{}{}

		total += s.weightFor(sig)
		names = append(names, sig.Name)
		if sig.Explanation != "" {
			clauses = append(clauses, sig.Explanation)
		}
	}

	score := clampScore(total)
	level := s.tierFor(score)

	return models.AnalysisResult{
		RiskLevel:        level,
		RiskScore:        score,
		DetectedPatterns: names,
		Explanation:      composeExplanation(clauses),
		Advice:           adviceFor(level),
	}
}

// weightFor returns the configured override for a signal's weight, or the
// catalog weight it was emitted with.
func (s *Scorer) weightFor(sig models.Signal) int {
	if w, ok := s.config.WeightOverrides[sig.Name]; ok {
		return w
	}
	return sig.Weight
}

// tierFor maps a clamped score onto a tier. Ties at the boundaries round up.
func (s *Scorer) tierFor(score int) models.RiskLevel {
	switch {
	case score >= s.config.HighThreshold:
		return models.RiskLevelHigh
	case score >= s.config.MediumThreshold:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

func adviceFor(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelHigh:
		return adviceHigh
	case models.RiskLevelMedium:
		return adviceMed
	default:
		return adviceLow
	}
}

// composeExplanation joins per-signal rationale clauses into one sentence.
func composeExplanation(clauses []string) string {
	switch len(clauses) {
	case 0:
		return explanationNone
	case 1:
		return "This content " + clauses[0] + "."
	case 2:
		return "This content " + clauses[0] + " and " + clauses[1] + "."
	default:
		return "This content " + strings.Join(clauses[:len(clauses)-1], ", ") +
			", and " + clauses[len(clauses)-1] + "."
	}
}

// clampScore clamps a raw weight sum to [0, 100]
func clampScore(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
