package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobshield/internal/domain/catalog"
	"jobshield/internal/domain/services"
	"jobshield/internal/highlight"
)

func newHighlightHandler() *HighlightHandler {
	log := newTestLogger()
	return NewHighlightHandler(highlight.NewProjector(services.NewMatcher(), log), log)
}

func TestHighlight_ProjectsDetectedPatterns(t *testing.T) {
	h := newHighlightHandler()

	rec := postJSON(t, h.Project, "/api/highlight", HighlightRequest{
		HTML:             `<html><body><p>pay the fee</p></body></html>`,
		DetectedPatterns: []string{catalog.PaymentRequest},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HighlightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, `<mark data-jobshield="Payment Request"`)
	assert.Len(t, resp.Highlights, 2)
}

func TestHighlight_MissingHTML(t *testing.T) {
	h := newHighlightHandler()

	rec := postJSON(t, h.Project, "/api/highlight", HighlightRequest{
		DetectedPatterns: []string{catalog.PaymentRequest},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "html is required", decodeErrorBody(t, rec))
}

func TestPatterns_ExportsCatalog(t *testing.T) {
	h := NewPatternsHandler(newTestLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/patterns", nil)
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PatternsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	names := make([]string, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, catalog.PaymentRequest)
	assert.Contains(t, names, catalog.UrgencyManipulation)
	assert.NotEmpty(t, resp.Flags)

	for _, c := range resp.Categories {
		assert.NotEmpty(t, c.Phrases, "category %s has no phrases", c.Name)
		assert.Greater(t, c.Weight, 0)
	}
}
