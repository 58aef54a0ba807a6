package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"stockroom/internal/model"

	"github.com/rs/zerolog"
)

// DetailResponse is the API error body; the detail field carries
// human-readable text.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// writeJSON writes a JSON response with the given status code. The status is
// already on the wire by the time encoding could fail, so failures are not
// surfaced to the client.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeDetail writes an error response with the given status and detail text.
func writeDetail(w http.ResponseWriter, status int, detail string, logger zerolog.Logger) {
	logger.Debug().Str("detail", detail).Int("status", status).Msg("handler error")
	writeJSON(w, status, DetailResponse{Detail: detail})
}

// writeServiceError maps a service error onto an HTTP response. Domain errors
// surface their message; everything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == model.ErrCodeProductNotFound {
			status = http.StatusNotFound
		}
		writeDetail(w, status, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected handler error")
	writeDetail(w, http.StatusInternalServerError, "Internal server error.", logger)
}
