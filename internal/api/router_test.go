package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobshield/internal/api/handlers"
	"jobshield/internal/config"
	"jobshield/internal/domain/services"
	"jobshield/internal/highlight"
	"jobshield/internal/infrastructure/fetch"
	"jobshield/pkg/logger"
)

type noopFetcher struct{}

func (noopFetcher) FetchPage(ctx context.Context, rawURL string) (*fetch.PageInfo, error) {
	return &fetch.PageInfo{Domain: "example.com", HasContactInfo: true, DomainAgeDays: -1}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "console"})
	cfg := config.Config{
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		},
	}

	matcher := services.NewMatcher()
	scorer := services.NewScorer(config.ScoringConfig{}, log)
	linkAnalyzer := services.NewLinkAnalyzer(noopFetcher{}, matcher, scorer, nil, config.FetcherConfig{}, log)

	h := handlers.NewHandlers(handlers.Dependencies{
		Extractor:    services.NewExtractor(matcher, log),
		LinkAnalyzer: linkAnalyzer,
		Scorer:       scorer,
		Projector:    highlight.NewProjector(matcher, log),
		Logger:       log,
	})

	server := httptest.NewServer(NewRouter(cfg, h, nil, log).Setup())
	t.Cleanup(server.Close)
	return server
}

func TestRouter_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_AnalyzeMessageRoute(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(
		server.URL+"/api/analyze-message",
		"application/json",
		strings.NewReader(`{"message_text":"pay a small fee on whatsapp"}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_UnknownRoute(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
