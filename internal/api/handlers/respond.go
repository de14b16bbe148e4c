package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"jobshield/pkg/apperr"
	"jobshield/pkg/logger"
)

// errorResponse is the shared failure body: {"error": "..."}
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error onto its HTTP status and the {"error": string}
// body. Errors without an attached status are internal and never leak their
// message to the client.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := apperr.StatusCode(err)

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, status, errorResponse{Error: appErr.Error()})
		return
	}

	log.Error().Err(err).Msg("unhandled error")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
