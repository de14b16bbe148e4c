package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobshield/internal/config"
	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/models"
	"jobshield/internal/infrastructure/fetch"
	"jobshield/pkg/apperr"
)

type stubFetcher struct {
	page *fetch.PageInfo
	err  error
}

func (s *stubFetcher) FetchPage(ctx context.Context, rawURL string) (*fetch.PageInfo, error) {
	return s.page, s.err
}

func newLinkAnalyzer(f fetch.WebsiteFetcher) *LinkAnalyzer {
	log := newTestLogger()
	return NewLinkAnalyzer(
		f,
		NewMatcher(),
		NewScorer(config.ScoringConfig{}, log),
		nil,
		config.FetcherConfig{NewDomainDays: 90},
		log,
	)
}

func TestAnalyzeLink_CleanHTTPSPage(t *testing.T) {
	a := newLinkAnalyzer(&stubFetcher{page: &fetch.PageInfo{
		Domain:         "acme.com",
		Title:          "Acme Careers",
		Text:           "We are hiring engineers. Contact us at jobs@acme.com",
		HasContactInfo: true,
		DomainAgeDays:  3650,
	}})

	result, err := a.Analyze(context.Background(), "https://acme.com/careers")

	require.NoError(t, err)
	assert.Empty(t, result.DetectedPatterns)
	assert.Equal(t, models.RiskLevelLow, result.RiskLevel)
	assert.Equal(t, 0, result.RiskScore)
}

func TestAnalyzeLink_SuspiciousPage(t *testing.T) {
	a := newLinkAnalyzer(&stubFetcher{page: &fetch.PageInfo{
		Domain:         "quick-jobs.xyz",
		Title:          "Global Careers Portal",
		Text:           "Guaranteed income! Pay a small fee to register.",
		HasContactInfo: false,
		DomainAgeDays:  14,
		DomainMismatch: true,
	}})

	result, err := a.Analyze(context.Background(), "http://quick-jobs.xyz")

	require.NoError(t, err)
	assert.Contains(t, result.DetectedPatterns, catalog.NoHTTPS)
	assert.Contains(t, result.DetectedPatterns, catalog.NewDomain)
	assert.Contains(t, result.DetectedPatterns, catalog.PaymentInstructions)
	assert.Contains(t, result.DetectedPatterns, catalog.PagePromises)
	assert.Contains(t, result.DetectedPatterns, catalog.NoContactInfo)
	assert.Contains(t, result.DetectedPatterns, catalog.DomainMismatch)
	assert.Equal(t, models.RiskLevelHigh, result.RiskLevel)
	assert.Equal(t, 100, result.RiskScore)
}

func TestAnalyzeLink_UnknownDomainAgeNeverFlagsNewDomain(t *testing.T) {
	a := newLinkAnalyzer(&stubFetcher{page: &fetch.PageInfo{
		Domain:         "acme.com",
		Text:           "contact us",
		HasContactInfo: true,
		DomainAgeDays:  -1,
	}})

	result, err := a.Analyze(context.Background(), "https://acme.com")

	require.NoError(t, err)
	assert.NotContains(t, result.DetectedPatterns, catalog.NewDomain)
}

func TestAnalyzeLink_FetchFailure(t *testing.T) {
	a := newLinkAnalyzer(&stubFetcher{err: errors.New("context deadline exceeded")})

	result, err := a.Analyze(context.Background(), "https://unreachable.example")

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, apperr.StatusCode(err))
	assert.Equal(t, models.AnalysisResult{}, result)
}
