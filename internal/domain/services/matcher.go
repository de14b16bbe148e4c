package services

import (
	"sort"
	"strings"

	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/models"
)

// Matcher scans text buffers against catalog categories. It is a pure
// function over its inputs; a Matcher value carries no state.
type Matcher struct{}

// NewMatcher creates a new Matcher
func NewMatcher() *Matcher {
	return &Matcher{}
}

// FindMatches returns every whole-word, case-insensitive occurrence of the
// categories' phrases in text, sorted by start index with overlaps resolved
// greedily left to right. Matches index into the original buffer, so the
// matched substring keeps its original casing. Empty or whitespace-only text
// yields no matches.
func (m *Matcher) FindMatches(text string, categories []catalog.Category) []models.Match {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// ASCII-only fold keeps byte offsets identical between the folded and
	// original buffers.
	folded := foldASCII(text)

	var candidates []models.Match
	for i := range categories {
		cat := &categories[i]
		for _, phrase := range cat.Phrases {
			if phrase == "" {
				continue
			}
			needle := foldASCII(phrase)
			for from := 0; ; {
				idx := strings.Index(folded[from:], needle)
				if idx < 0 {
					break
				}
				start := from + idx
				end := start + len(needle)
				if isWholeWord(text, start, end) {
					candidates = append(candidates, models.Match{
						Phrase:     text[start:end],
						Category:   cat,
						StartIndex: start,
						EndIndex:   end,
					})
				}
				from = start + 1
			}
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	// Deterministic order before overlap resolution: by start, then end,
	// then category name for same-position phrases.
	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].StartIndex != candidates[b].StartIndex {
			return candidates[a].StartIndex < candidates[b].StartIndex
		}
		if candidates[a].EndIndex != candidates[b].EndIndex {
			return candidates[a].EndIndex < candidates[b].EndIndex
		}
		return candidates[a].Category.Name < candidates[b].Category.Name
	})

	// Greedy left-to-right overlap resolution: the earlier-starting match
	// wins, later overlapping candidates are dropped.
	matches := candidates[:1]
	lastEnd := candidates[0].EndIndex
	for _, c := range candidates[1:] {
		if c.StartIndex >= lastEnd {
			matches = append(matches, c)
			lastEnd = c.EndIndex
		}
	}

	return matches
}

// isWholeWord reports whether the occurrence at [start, end) is bounded by
// non-alphanumeric characters in the original text. Punctuation and currency
// symbols inside the phrase itself are untouched by this check.
func isWholeWord(text string, start, end int) bool {
	if start > 0 && isAlnum(text[start-1]) {
		return false
	}
	if end < len(text) && isAlnum(text[end]) {
		return false
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// foldASCII lower-cases ASCII letters without changing byte length, so
// indices computed on the folded buffer remain valid for the original.
func foldASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
