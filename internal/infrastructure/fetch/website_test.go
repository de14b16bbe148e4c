package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobshield/internal/config"
	"jobshield/pkg/logger"
)

func testFetcherConfig() config.FetcherConfig {
	return config.FetcherConfig{
		Timeout:      2 * time.Second,
		MaxBodyBytes: 1 << 20,
		UserAgent:    "test-agent",
	}
}

func newTestLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "console"})
}

func TestExtractText(t *testing.T) {
	title, text := ExtractText(`<html>
		<head><title>Acme Jobs</title><style>p { color: red }</style></head>
		<body>
			<p>Hello   world</p>
			<script>var hidden = "never seen";</script>
			<div>Apply today</div>
		</body>
	</html>`)

	assert.Equal(t, "Acme Jobs", title)
	assert.Equal(t, "Hello world Apply today", text)
}

func TestExtractText_PlainTextFallback(t *testing.T) {
	title, text := ExtractText("just   some words")

	assert.Equal(t, "", title)
	assert.Equal(t, "just some words", text)
}

func TestTitleMismatchesDomain(t *testing.T) {
	tests := []struct {
		name   string
		title  string
		domain string
		want   bool
	}{
		{"title names the domain", "Acme Jobs", "acme.com", false},
		{"token contains label", "SuperAcme Careers", "acme.com", false},
		{"no shared tokens", "Global Careers Portal", "scamsite.xyz", true},
		{"empty title is inconclusive", "", "scamsite.xyz", false},
		{"short tokens ignored", "Go Co", "scamsite.xyz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titleMismatchesDomain(tt.title, tt.domain))
		})
	}
}

func TestFetchPage(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><head><title>Acme Jobs</title></head>` +
			`<body><p>Contact us: jobs@acme.com</p></body></html>`))
	}))
	defer server.Close()

	f := NewHTTPFetcher(testFetcherConfig(), nil, newTestLogger())
	page, err := f.FetchPage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "test-agent", gotAgent)
	assert.Equal(t, "Acme Jobs", page.Title)
	assert.Contains(t, page.Text, "Contact us")
	assert.True(t, page.HasContactInfo)
	assert.Equal(t, -1, page.DomainAgeDays)
}

func TestFetchPage_NoContactInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Earn big money fast</p></body></html>`))
	}))
	defer server.Close()

	f := NewHTTPFetcher(testFetcherConfig(), nil, newTestLogger())
	page, err := f.FetchPage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.False(t, page.HasContactInfo)
}

func TestFetchPage_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewHTTPFetcher(testFetcherConfig(), nil, newTestLogger())
	_, err := f.FetchPage(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestFetchPage_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	f := NewHTTPFetcher(testFetcherConfig(), nil, newTestLogger())
	_, err := f.FetchPage(context.Background(), server.URL)

	assert.Error(t, err)
}

func TestFetchPage_DomainAgeLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer server.Close()

	age := func(ctx context.Context, domain string) (int, error) {
		return 42, nil
	}

	f := NewHTTPFetcher(testFetcherConfig(), age, newTestLogger())
	page, err := f.FetchPage(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, 42, page.DomainAgeDays)
}

func TestRDAPDomainAge(t *testing.T) {
	registered := time.Now().AddDate(0, 0, -30).UTC().Format(time.RFC3339)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domain/acme.com", r.URL.Path)
		w.Header().Set("Content-Type", "application/rdap+json")
		w.Write([]byte(`{"events":[` +
			`{"eventAction":"last changed","eventDate":"2024-01-01T00:00:00Z"},` +
			`{"eventAction":"registration","eventDate":"` + registered + `"}]}`))
	}))
	defer server.Close()

	c := NewRDAPClient(2*time.Second, newTestLogger())
	c.baseURL = server.URL

	age, err := c.DomainAgeDays(context.Background(), "acme.com")

	require.NoError(t, err)
	assert.Equal(t, 30, age)
}

func TestRDAPDomainAge_NoRegistrationEvent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events":[]}`))
	}))
	defer server.Close()

	c := NewRDAPClient(2*time.Second, newTestLogger())
	c.baseURL = server.URL

	age, err := c.DomainAgeDays(context.Background(), "acme.com")

	assert.Error(t, err)
	assert.Equal(t, -1, age)
}
