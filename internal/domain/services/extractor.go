package services

import (
	"strings"

	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/models"
	"jobshield/pkg/logger"
)

// Extractor normalizes message and email content into signal sets for the
// scorer. Presence of a category drives the score, not match frequency.
type Extractor struct {
	matcher *Matcher
	logger  *logger.Logger
}

// NewExtractor creates a new Extractor
func NewExtractor(matcher *Matcher, log *logger.Logger) *Extractor {
	return &Extractor{
		matcher: matcher,
		logger:  log.WithComponent("extractor"),
	}
}

// ExtractMessage runs the phrase matcher over a message body and emits one
// signal per category with at least one match.
func (e *Extractor) ExtractMessage(text string) []models.Signal {
	return phraseSignals(e.matcher, text, catalog.MessageCategories())
}

// ExtractEmail extracts signals from an email body plus its sender address:
// the message-channel phrase categories, a Free Email Domain flag when the
// sender uses a free provider, and a best-effort formatting heuristic. The
// heuristics never fail the analysis.
func (e *Extractor) ExtractEmail(body, senderEmail string) []models.Signal {
	var signals []models.Signal

	if domain := emailDomain(senderEmail); domain != "" && catalog.IsFreeMailProvider(domain) {
		signals = append(signals, flagSignal(catalog.FreeEmailDomain))
	}

	signals = append(signals, phraseSignals(e.matcher, body, catalog.MessageCategories())...)

	if hasFormattingIrregularities(body) {
		signals = append(signals, flagSignal(catalog.PoorFormatting))
	}

	return signals
}

// phraseSignals collapses matches into one signal per matched category,
// ordered by each category's first occurrence in the text.
func phraseSignals(matcher *Matcher, text string, categories []catalog.Category) []models.Signal {
	matches := matcher.FindMatches(text, categories)
	if len(matches) == 0 {
		return nil
	}

	var signals []models.Signal
	seen := make(map[string]struct{}, len(categories))
	for _, m := range matches {
		if _, dup := seen[m.Category.Name]; dup {
			continue
		}
		seen[m.Category.Name] = struct{}{}
		signals = append(signals, categorySignal(*m.Category))
	}
	return signals
}

func categorySignal(c catalog.Category) models.Signal {
	return models.Signal{
		Kind:        models.SignalKindPhraseCategory,
		Name:        c.Name,
		Weight:      c.Weight,
		Explanation: c.Explanation,
		Advice:      c.Advice,
	}
}

func flagSignal(name string) models.Signal {
	f, ok := catalog.FlagByName(name)
	if !ok {
		return models.Signal{Kind: models.SignalKindBooleanFlag, Name: name}
	}
	return models.Signal{
		Kind:        models.SignalKindBooleanFlag,
		Name:        f.Name,
		Weight:      f.Weight,
		Explanation: f.Explanation,
		Advice:      f.Advice,
	}
}

// emailDomain returns the registrable part after the last "@", lower-cased.
func emailDomain(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(addr[at+1:]))
}

// Shorthand misspellings that legitimate recruiters rarely use.
var shorthandWords = []string{"kindley", "ur", "pls", "plz"}

// Greetings that open a normally formatted recruiting email.
var salutations = []string{"dear", "hello", "hi ", "greetings", "good morning", "good afternoon", "good evening"}

// hasFormattingIrregularities applies rudimentary grammar/formatting checks:
// shorthand misspellings, runs of repeated punctuation, sustained ALL-CAPS,
// and a missing salutation on longer emails. Best effort only.
func hasFormattingIrregularities(body string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)

	for _, w := range shorthandWords {
		if containsWholeWord(lower, w) {
			return true
		}
	}

	if strings.Contains(trimmed, "!!!") || strings.Contains(trimmed, "???") {
		return true
	}

	if hasCapsRun(trimmed, 12) {
		return true
	}

	// Short one-liners legitimately skip greetings.
	if len(trimmed) > 200 && !hasSalutation(lower) {
		return true
	}

	return false
}

func containsWholeWord(lower, word string) bool {
	for from := 0; ; {
		idx := strings.Index(lower[from:], word)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(word)
		if isWholeWord(lower, start, end) {
			return true
		}
		from = start + 1
	}
}

// hasCapsRun reports whether the text contains a run of at least n
// consecutive uppercase letters (spaces do not break the run).
func hasCapsRun(text string, n int) bool {
	run := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= 'A' && c <= 'Z':
			run++
			if run >= n {
				return true
			}
		case c == ' ':
			// keep the run alive across word boundaries
		default:
			run = 0
		}
	}
	return false
}

func hasSalutation(lower string) bool {
	head := lower
	if len(head) > 120 {
		head = head[:120]
	}
	for _, s := range salutations {
		if strings.Contains(head, s) {
			return true
		}
	}
	return false
}
