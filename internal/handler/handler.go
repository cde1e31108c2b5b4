package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tent9481/product-apis/internal/model"
	"github.com/Tent9481/product-apis/internal/source"
	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful to tell the client.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps an error returned by a service to a response.
// Storage and transport details never reach the client: anything not
// recognised here is logged and answered with fallback.
func writeServiceError(w http.ResponseWriter, err error, fallback string, logger zerolog.Logger) {
	var valErr *model.ValidationError
	if errors.As(err, &valErr) {
		logger.Warn().Err(err).Msg("request validation failed")
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{
			Error:   model.ErrCodeMissingField,
			Message: model.ErrMissingFields.Message,
			Fields:  valErr.Fields,
		})
		return
	}

	if errors.Is(err, source.ErrCircuitOpen) {
		writeError(w, http.StatusServiceUnavailable, model.ErrCodeUpstreamDown, "Upstream service unavailable", logger)
		return
	}

	var domErr *model.DomainError
	if errors.As(err, &domErr) {
		writeError(w, statusForCode(domErr.Code), domErr.Code, domErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unhandled service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField,
		model.ErrCodeInvalidPagination, model.ErrCodeInvalidDate:
		return http.StatusBadRequest
	case model.ErrCodeProductNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
