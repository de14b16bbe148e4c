package highlight

import (
	"strings"

	"golang.org/x/net/html"

	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/models"
	"jobshield/internal/domain/services"
	"jobshield/pkg/logger"
)

// MarkerAttr tags injected marker elements so re-scans skip them.
const MarkerAttr = "data-jobshield"

// Options is the explicit per-scan configuration. Ignored phrases are
// matched case-insensitively and never highlighted.
type Options struct {
	IgnoredPhrases []string
}

// Projector maps detected category names back onto literal page text: it
// re-runs the phrase matcher restricted to those categories over visible
// text nodes and wraps matches in marker elements carrying the category's
// color and tooltip. Highlighting is best-effort: a document that cannot be
// processed is returned unchanged.
type Projector struct {
	matcher *services.Matcher
	logger  *logger.Logger
}

// NewProjector creates a new Projector
func NewProjector(matcher *services.Matcher, log *logger.Logger) *Projector {
	return &Projector{
		matcher: matcher,
		logger:  log.WithComponent("highlight"),
	}
}

// Project annotates rawHTML with markers for every whole-word occurrence of
// the detected categories' phrases and returns the rewritten document plus
// the spans it produced. Unknown category names are skipped. The result is
// deterministic: projecting the same document and patterns twice yields the
// same markup.
func (p *Projector) Project(rawHTML string, detectedPatterns []string, opts Options) (string, []models.HighlightSpan) {
	categories := resolveCategories(detectedPatterns)
	if len(categories) == 0 {
		return rawHTML, nil
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		p.logger.Warn().Err(err).Msg("document not parseable, skipping highlight")
		return rawHTML, nil
	}

	ignored := foldSet(opts.IgnoredPhrases)

	var spans []models.HighlightSpan
	for _, node := range collectTextNodes(doc) {
		spans = append(spans, p.annotateTextNode(node, categories, ignored)...)
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		p.logger.Warn().Err(err).Msg("document not renderable, skipping highlight")
		return rawHTML, nil
	}

	return sb.String(), spans
}

// annotateTextNode splits one text node around its matches and inserts
// marker elements in place. Returns the spans created.
func (p *Projector) annotateTextNode(node *html.Node, categories []catalog.Category, ignored map[string]struct{}) []models.HighlightSpan {
	matches := p.matcher.FindMatches(node.Data, categories)
	matches = dropIgnored(matches, ignored)
	if len(matches) == 0 {
		return nil
	}

	parent := node.Parent
	if parent == nil {
		return nil
	}

	var spans []models.HighlightSpan
	text := node.Data
	cursor := 0
	for _, m := range matches {
		if m.StartIndex > cursor {
			parent.InsertBefore(textNode(text[cursor:m.StartIndex]), node)
		}
		parent.InsertBefore(markerNode(m), node)
		spans = append(spans, models.HighlightSpan{
			Text:       m.Phrase,
			Category:   m.Category.Name,
			Color:      m.Category.Color,
			Tooltip:    m.Category.Tooltip,
			StartIndex: m.StartIndex,
			EndIndex:   m.EndIndex,
		})
		cursor = m.EndIndex
	}
	if cursor < len(text) {
		parent.InsertBefore(textNode(text[cursor:]), node)
	}
	parent.RemoveChild(node)

	return spans
}

// Elements whose subtrees are page chrome or non-content and are never
// scanned.
var skippedContainers = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"svg":      {},
	"head":     {},
	"nav":      {},
	"header":   {},
	"footer":   {},
	"form":     {},
	"select":   {},
	"textarea": {},
	"button":   {},
}

// collectTextNodes walks the document depth-first and returns the visible
// text nodes, skipping chrome containers, hidden elements, and subtrees
// already carrying markers.
func collectTextNodes(doc *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name := strings.ToLower(n.Data)
			if _, skip := skippedContainers[name]; skip {
				return
			}
			if isHidden(n) || isMarker(n) {
				return
			}
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return nodes
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			folded := strings.ReplaceAll(strings.ToLower(a.Val), " ", "")
			if strings.Contains(folded, "display:none") || strings.Contains(folded, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}

func isMarker(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == MarkerAttr {
			return true
		}
	}
	return false
}

func markerNode(m models.Match) *html.Node {
	n := &html.Node{
		Type: html.ElementNode,
		Data: "mark",
		Attr: []html.Attribute{
			{Key: MarkerAttr, Val: m.Category.Name},
			{Key: "style", Val: "background-color: " + m.Category.Color + "; color: #fff"},
			{Key: "title", Val: m.Category.Tooltip},
		},
	}
	n.AppendChild(textNode(m.Phrase))
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func resolveCategories(names []string) []catalog.Category {
	var categories []catalog.Category
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if c, ok := catalog.CategoryByName(name); ok {
			categories = append(categories, c)
		}
	}
	return categories
}

func dropIgnored(matches []models.Match, ignored map[string]struct{}) []models.Match {
	if len(ignored) == 0 {
		return matches
	}
	kept := matches[:0]
	for _, m := range matches {
		if _, skip := ignored[strings.ToLower(m.Phrase)]; skip {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

func foldSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
