package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"jobshield/internal/domain/models"
	"jobshield/internal/highlight"
	"jobshield/pkg/apperr"
	"jobshield/pkg/logger"
)

// HighlightHandler serves the projection endpoint used by browser clients to
// render detected categories over page markup.
type HighlightHandler struct {
	projector *highlight.Projector
	logger    *logger.Logger
}

// NewHighlightHandler creates a new HighlightHandler
func NewHighlightHandler(projector *highlight.Projector, log *logger.Logger) *HighlightHandler {
	return &HighlightHandler{
		projector: projector,
		logger:    log.WithComponent("highlight-handler"),
	}
}

// HighlightRequest is the request body for highlight projection
type HighlightRequest struct {
	HTML             string   `json:"html"`
	DetectedPatterns []string `json:"detected_patterns"`
	IgnoredPhrases   []string `json:"ignored_phrases,omitempty"`
}

// HighlightResponse carries the annotated markup plus the spans produced
type HighlightResponse struct {
	HTML       string                 `json:"html"`
	Highlights []models.HighlightSpan `json:"highlights"`
}

// Project handles POST /api/highlight
func (h *HighlightHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req HighlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingHTML))
		return
	}

	if strings.TrimSpace(req.HTML) == "" {
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingHTML))
		return
	}

	annotated, spans := h.projector.Project(req.HTML, req.DetectedPatterns, highlight.Options{
		IgnoredPhrases: req.IgnoredPhrases,
	})

	h.logger.Info().
		Int("patterns", len(req.DetectedPatterns)).
		Int("highlights", len(spans)).
		Msg("highlight projected")

	writeJSON(w, http.StatusOK, HighlightResponse{HTML: annotated, Highlights: spans})
}
