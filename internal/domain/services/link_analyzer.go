package services

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"jobshield/internal/config"
	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/models"
	"jobshield/internal/infrastructure/cache"
	"jobshield/internal/infrastructure/fetch"
	"jobshield/pkg/apperr"
	"jobshield/pkg/logger"
)

// LinkAnalyzer is the link-channel signal extractor. It delegates page
// retrieval and metadata derivation to the fetch collaborator and turns the
// resulting facts into boolean-flag signals, plus phrase signals over the
// page text. Results are cached per URL when a cache is available.
type LinkAnalyzer struct {
	fetcher fetch.WebsiteFetcher
	matcher *Matcher
	scorer  *Scorer
	cache   *cache.RedisCache
	config  config.FetcherConfig
	logger  *logger.Logger
}

// NewLinkAnalyzer creates a new LinkAnalyzer. cache may be nil; analyses
// then run uncached.
func NewLinkAnalyzer(fetcher fetch.WebsiteFetcher, matcher *Matcher, scorer *Scorer, c *cache.RedisCache, cfg config.FetcherConfig, log *logger.Logger) *LinkAnalyzer {
	return &LinkAnalyzer{
		fetcher: fetcher,
		matcher: matcher,
		scorer:  scorer,
		cache:   c,
		config:  cfg,
		logger:  log.WithComponent("link-analyzer"),
	}
}

// Analyze fetches rawURL and scores its derived signals. An unreachable
// target is a fetch failure: no degraded partial analysis is produced.
func (a *LinkAnalyzer) Analyze(ctx context.Context, rawURL string) (models.AnalysisResult, error) {
	analysisID := uuid.New().String()
	log := a.logger.WithAnalysisID(analysisID)

	if a.cache != nil {
		var cached models.AnalysisResult
		err := a.cache.GetCachedLinkAnalysis(ctx, rawURL, &cached)
		if err == nil {
			log.Debug().Str("url", rawURL).Msg("link analysis served from cache")
			return cached, nil
		}
		if !cache.IsMiss(err) {
			log.Warn().Err(err).Msg("link cache read failed")
		}
	}

	signals, err := a.extract(ctx, rawURL)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("link fetch failed")
		return models.AnalysisResult{}, err
	}

	result := a.scorer.Score(signals)

	log.Info().
		Str("url", rawURL).
		Str("risk_level", string(result.RiskLevel)).
		Int("risk_score", result.RiskScore).
		Int("signals", len(signals)).
		Msg("link analyzed")

	if a.cache != nil {
		if err := a.cache.CacheLinkAnalysis(ctx, rawURL, result, a.config.CacheTTL); err != nil {
			log.Warn().Err(err).Msg("link cache write failed")
		}
	}

	return result, nil
}

// extract builds the link-channel signal set: scheme check, page-derived
// boolean flags, and phrase categories over the visible page text.
func (a *LinkAnalyzer) extract(ctx context.Context, rawURL string) ([]models.Signal, error) {
	var signals []models.Signal

	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "https" {
		signals = append(signals, flagSignal(catalog.NoHTTPS))
	}

	page, err := a.fetcher.FetchPage(ctx, rawURL)
	if err != nil {
		return nil, apperr.FetchFailure(err)
	}

	if page.DomainAgeDays >= 0 && page.DomainAgeDays < a.config.NewDomainDays {
		signals = append(signals, flagSignal(catalog.NewDomain))
	}

	signals = append(signals, phraseSignals(a.matcher, page.Text, catalog.LinkCategories())...)

	if !page.HasContactInfo {
		signals = append(signals, flagSignal(catalog.NoContactInfo))
	}

	if page.DomainMismatch {
		signals = append(signals, flagSignal(catalog.DomainMismatch))
	}

	return signals, nil
}
