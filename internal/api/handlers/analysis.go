package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"jobshield/internal/domain/services"
	"jobshield/pkg/apperr"
	"jobshield/pkg/logger"
)

// AnalysisHandler handles the per-channel analysis endpoints
type AnalysisHandler struct {
	extractor    *services.Extractor
	linkAnalyzer *services.LinkAnalyzer
	scorer       *services.Scorer
	logger       *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(extractor *services.Extractor, linkAnalyzer *services.LinkAnalyzer, scorer *services.Scorer, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		extractor:    extractor,
		linkAnalyzer: linkAnalyzer,
		scorer:       scorer,
		logger:       log.WithComponent("analysis-handler"),
	}
}

// AnalyzeMessageRequest is the request body for message analysis
type AnalyzeMessageRequest struct {
	MessageText string `json:"message_text"`
}

// AnalyzeEmailRequest is the request body for email analysis
type AnalyzeEmailRequest struct {
	EmailText   string `json:"email_text"`
	SenderEmail string `json:"sender_email"`
}

// AnalyzeLinkRequest is the request body for link analysis
type AnalyzeLinkRequest struct {
	URL string `json:"url"`
}

// AnalyzeMessage handles POST /api/analyze-message
func (h *AnalysisHandler) AnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingMessageText))
		return
	}

	if strings.TrimSpace(req.MessageText) == "" {
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingMessageText))
		return
	}
	if !isAnalyzableText(req.MessageText) {
		writeError(w, h.logger, apperr.Unprocessable(apperr.ErrNotText))
		return
	}

	signals := h.extractor.ExtractMessage(req.MessageText)
	result := h.scorer.Score(signals)

	h.logger.Info().
		Str("channel", "message").
		Str("risk_level", string(result.RiskLevel)).
		Int("risk_score", result.RiskScore).
		Msg("message analyzed")

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeEmail handles POST /api/analyze-email
func (h *AnalysisHandler) AnalyzeEmail(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingEmailText))
		return
	}

	if strings.TrimSpace(req.EmailText) == "" {
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingEmailText))
		return
	}
	if strings.TrimSpace(req.SenderEmail) == "" {
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingSenderEmail))
		return
	}
	if !isAnalyzableText(req.EmailText) {
		writeError(w, h.logger, apperr.Unprocessable(apperr.ErrNotText))
		return
	}
	if !isEmailAddress(req.SenderEmail) {
		writeError(w, h.logger, apperr.Unprocessable(apperr.ErrInvalidSenderEmail))
		return
	}

	signals := h.extractor.ExtractEmail(req.EmailText, req.SenderEmail)
	result := h.scorer.Score(signals)

	h.logger.Info().
		Str("channel", "email").
		Str("risk_level", string(result.RiskLevel)).
		Int("risk_score", result.RiskScore).
		Msg("email analyzed")

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeLink handles POST /api/analyze-link
func (h *AnalysisHandler) AnalyzeLink(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingURL))
		return
	}

	if strings.TrimSpace(req.URL) == "" {
		writeError(w, h.logger, apperr.Validation(apperr.ErrMissingURL))
		return
	}
	if !isWebURL(req.URL) {
		writeError(w, h.logger, apperr.Unprocessable(apperr.ErrInvalidURL))
		return
	}

	result, err := h.linkAnalyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.logger.Info().
		Str("channel", "link").
		Str("risk_level", string(result.RiskLevel)).
		Int("risk_score", result.RiskScore).
		Msg("link analyzed")

	writeJSON(w, http.StatusOK, result)
}

// isAnalyzableText rejects binary payloads smuggled into a text field.
func isAnalyzableText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, '\x00')
}

func isEmailAddress(addr string) bool {
	at := strings.IndexByte(addr, '@')
	return at > 0 && at < len(addr)-1 && strings.ContainsRune(addr[at+1:], '.')
}

func isWebURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
