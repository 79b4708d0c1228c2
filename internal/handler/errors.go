package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// ErrorDetail is the machine-readable code and human-readable message of a
// failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "facility not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

// parameterBody returns an ErrorResponse for a path or query parameter that
// could not be bound.
func parameterBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "invalid_parameter", Message: err.Error()}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.FacilityService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return msg
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck — the client has gone away if this fails.
	json.NewEncoder(w).Encode(v)
}

// respondError maps a service error onto the HTTP status and envelope.
// notFound is the message used for domain.ErrNotFound.
// 5xx causes are logged; the client only sees a generic message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		detail := ErrorDetail{Code: "internal_error", Message: "internal error"}
		if errors.Is(err, domain.ErrStorage) {
			detail = ErrorDetail{Code: "storage_error", Message: "storage error"}
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: detail})
	}
}
