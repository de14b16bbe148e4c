package handlers

import (
	"jobshield/internal/domain/services"
	"jobshield/internal/highlight"
	"jobshield/internal/infrastructure/cache"
	"jobshield/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Analysis  *AnalysisHandler
	Patterns  *PatternsHandler
	Highlight *HighlightHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Extractor    *services.Extractor
	LinkAnalyzer *services.LinkAnalyzer
	Scorer       *services.Scorer
	Projector    *highlight.Projector
	Cache        *cache.RedisCache
	Logger       *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Cache, deps.Logger),
		Analysis:  NewAnalysisHandler(deps.Extractor, deps.LinkAnalyzer, deps.Scorer, deps.Logger),
		Patterns:  NewPatternsHandler(deps.Logger),
		Highlight: NewHighlightHandler(deps.Projector, deps.Logger),
	}
}
