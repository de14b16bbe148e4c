package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"jobshield/internal/config"
	"jobshield/pkg/logger"
)

// PageInfo holds the facts about a fetched page that the link-channel
// extractor turns into signals. The engine never sees raw HTML.
type PageInfo struct {
	FinalURL       string
	Domain         string
	Title          string
	Text           string
	HasContactInfo bool
	DomainAgeDays  int // -1 when the registration age is unknown
	DomainMismatch bool
}

// WebsiteFetcher retrieves a page and derives its metadata. Implementations
// must honor the context deadline; an unreachable target is an error, never
// a partial PageInfo.
type WebsiteFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (*PageInfo, error)
}

// DomainAgeFunc looks up a domain's registration age in days. Returning an
// error or a negative age marks the age unknown.
type DomainAgeFunc func(ctx context.Context, domain string) (int, error)

// HTTPFetcher implements WebsiteFetcher over a bounded http.Client.
type HTTPFetcher struct {
	client    *http.Client
	config    config.FetcherConfig
	domainAge DomainAgeFunc
	logger    *logger.Logger
}

// NewHTTPFetcher creates a new HTTPFetcher. domainAge may be nil, in which
// case registration age is reported unknown.
func NewHTTPFetcher(cfg config.FetcherConfig, domainAge DomainAgeFunc, log *logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		config:    cfg,
		domainAge: domainAge,
		logger:    log.WithComponent("fetcher"),
	}
}

var contactInfoPattern = regexp.MustCompile(`(?i)\b(contact|address|phone)\b`)

// FetchPage retrieves rawURL and extracts the page facts the extractor
// needs. Timeouts, DNS failures and non-2xx responses are returned as
// errors.
func (f *HTTPFetcher) FetchPage(ctx context.Context, rawURL string) (*PageInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request for %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %q: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %q: %w", rawURL, err)
	}

	title, text := ExtractText(string(body))
	domain := registeredDomain(resp.Request.URL)

	info := &PageInfo{
		FinalURL:       resp.Request.URL.String(),
		Domain:         domain,
		Title:          title,
		Text:           text,
		HasContactInfo: contactInfoPattern.MatchString(text),
		DomainAgeDays:  f.lookupDomainAge(ctx, domain),
		DomainMismatch: titleMismatchesDomain(title, domain),
	}

	f.logger.Debug().
		Str("url", info.FinalURL).
		Str("domain", info.Domain).
		Int("text_len", len(info.Text)).
		Int("domain_age_days", info.DomainAgeDays).
		Msg("page fetched")

	return info, nil
}

func (f *HTTPFetcher) lookupDomainAge(ctx context.Context, domain string) int {
	if f.domainAge == nil || domain == "" {
		return -1
	}
	age, err := f.domainAge(ctx, domain)
	if err != nil || age < 0 {
		f.logger.Debug().Str("domain", domain).Err(err).Msg("domain age unavailable")
		return -1
	}
	return age
}

// Elements whose text is never page content.
var skippedElements = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"iframe":   {},
	"svg":      {},
}

// ExtractText returns the page title and the visible text of an HTML
// document, with script/style subtrees removed and whitespace collapsed.
func ExtractText(rawHTML string) (title, text string) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		// html.Parse recovers from malformed markup; a hard error means the
		// input is not HTML at all, so treat it as plain text.
		return "", strings.Join(strings.Fields(rawHTML), " ")
	}

	var sb strings.Builder
	var walk func(n *html.Node, inTitle bool)
	walk = func(n *html.Node, inTitle bool) {
		switch n.Type {
		case html.ElementNode:
			name := strings.ToLower(n.Data)
			if _, skip := skippedElements[name]; skip {
				return
			}
			if name == "title" {
				inTitle = true
			}
		case html.TextNode:
			trimmed := strings.TrimSpace(n.Data)
			if trimmed == "" {
				break
			}
			if inTitle {
				if title == "" {
					title = trimmed
				}
			} else {
				sb.WriteString(trimmed)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inTitle)
		}
	}
	walk(doc, false)

	return title, strings.Join(strings.Fields(sb.String()), " ")
}

// registeredDomain approximates the registrable domain: hostname without a
// leading "www.".
func registeredDomain(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// titleMismatchesDomain reports whether none of the company-name tokens in
// the page title appear in the domain. An empty title is inconclusive and
// never a mismatch.
func titleMismatchesDomain(title, domain string) bool {
	if title == "" || domain == "" {
		return false
	}
	label := domain
	if dot := strings.IndexByte(label, '.'); dot > 0 {
		label = label[:dot]
	}
	for _, token := range strings.Fields(strings.ToLower(title)) {
		token = strings.Trim(token, ".,!?:;-|()\"'")
		if len(token) < 3 {
			continue
		}
		if strings.Contains(label, token) || strings.Contains(token, label) {
			return false
		}
	}
	return true
}
