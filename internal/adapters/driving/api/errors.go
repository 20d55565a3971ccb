package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/bureau-cli/internal/core/domain"
	"github.com/custodia-labs/bureau-cli/internal/logger"
)

// Reason is the machine-parseable failure code in error responses.
type Reason string

// Failure reasons.
const (
	ReasonNoFile            Reason = "no_file"
	ReasonUnsupportedFile   Reason = "unsupported_file"
	ReasonMalformedDocument Reason = "malformed_document"
	ReasonNotFound          Reason = "not_found"
	ReasonInvalidInput      Reason = "invalid_input"
	ReasonTooLarge          Reason = "too_large"
	ReasonRateLimited       Reason = "rate_limited"
	ReasonStorageFailure    Reason = "storage_failure"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Reason  Reason `json:"reason"`
	Details string `json:"details,omitempty"`
}

// classify maps a service error onto a status code, reason and message.
func classify(err error) (int, Reason, string) {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFile):
		return http.StatusBadRequest, ReasonUnsupportedFile, "Only XML files are accepted"
	case errors.Is(err, domain.ErrMalformedDocument):
		return http.StatusBadRequest, ReasonMalformedDocument, "The file is not a well-formed XML document"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ReasonNotFound, "Report not found"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ReasonInvalidInput, "Invalid request"
	default:
		return http.StatusInternalServerError, ReasonStorageFailure, "Failed to parse or save the report"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, reason Reason, message, details string) {
	writeJSON(w, status, ErrorResponse{Error: message, Reason: reason, Details: details})
}

// writeServiceError classifies err and writes the matching error response.
func writeServiceError(w http.ResponseWriter, err error) {
	status, reason, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
	}
	writeError(w, status, reason, message, err.Error())
}
