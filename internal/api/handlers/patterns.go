package handlers

import (
	"net/http"

	"jobshield/internal/domain/catalog"
	"jobshield/pkg/logger"
)

// PatternsHandler exposes the detection catalog so clients can run local
// phrase matching against the same data the server scores with.
type PatternsHandler struct {
	logger *logger.Logger
}

// NewPatternsHandler creates a new PatternsHandler
func NewPatternsHandler(log *logger.Logger) *PatternsHandler {
	return &PatternsHandler{
		logger: log.WithComponent("patterns-handler"),
	}
}

// PatternCategory is the wire form of one phrase category
type PatternCategory struct {
	Name    string   `json:"name"`
	Phrases []string `json:"phrases"`
	Weight  int      `json:"weight"`
	Color   string   `json:"color"`
	Tooltip string   `json:"tooltip"`
}

// PatternFlag is the wire form of one boolean flag
type PatternFlag struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Explanation string `json:"explanation"`
}

// PatternsResponse is the catalog export
type PatternsResponse struct {
	Version    string            `json:"version"`
	Categories []PatternCategory `json:"categories"`
	Flags      []PatternFlag     `json:"flags"`
}

// Get handles GET /api/patterns
func (h *PatternsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var categories []PatternCategory
	for _, c := range catalog.AllCategories() {
		categories = append(categories, PatternCategory{
			Name:    c.Name,
			Phrases: c.Phrases,
			Weight:  c.Weight,
			Color:   c.Color,
			Tooltip: c.Tooltip,
		})
	}

	var flags []PatternFlag
	for _, f := range catalog.AllFlags() {
		flags = append(flags, PatternFlag{
			Name:        f.Name,
			Weight:      f.Weight,
			Explanation: f.Explanation,
		})
	}

	writeJSON(w, http.StatusOK, PatternsResponse{
		Version:    "1.0.0",
		Categories: categories,
		Flags:      flags,
	})
}
