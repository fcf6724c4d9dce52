package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/averyk/lifequest/internal/domain"
	"github.com/averyk/lifequest/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode to a pooled buffer first so a marshal failure never writes
	// a half response body.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and maps the error to
// a user-facing HTTP response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, message)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgInvalidStatCodeErr = "Unknown attribute code"

	// Character messages
	ErrMsgCharacterNotFoundError = "Character not found"
	ErrMsgCharacterExistsError   = "You already have a character"

	// Activity messages
	ErrMsgActivityNotFoundError = "Activity not found"

	// Tree messages
	ErrMsgNodeNotFoundError       = "Node not found"
	ErrMsgInsufficientPointsError = "Not enough stat points"
	ErrMsgAlreadyAllocatedError   = "Node is already allocated"
	ErrMsgNodeUnreachableError    = "Node is not reachable from your allocated nodes"
	ErrMsgNoRespecTokensError     = "No respec tokens remaining"

	// Skill messages
	ErrMsgSkillNotFoundError = "Skill not found or not unlocked"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Not-found errors map to 404, conflicts to 409, rule violations to 400,
// and anything unrecognized to a generic 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrActivityNotFound):
		return http.StatusNotFound, ErrMsgActivityNotFoundError
	case errors.Is(err, domain.ErrNodeNotFound):
		return http.StatusNotFound, ErrMsgNodeNotFoundError
	case errors.Is(err, domain.ErrSkillNotFound):
		return http.StatusNotFound, ErrMsgSkillNotFoundError
	case errors.Is(err, domain.ErrCharacterExists):
		return http.StatusConflict, ErrMsgCharacterExistsError
	case errors.Is(err, domain.ErrAlreadyAllocated):
		return http.StatusConflict, ErrMsgAlreadyAllocatedError
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusBadRequest, ErrMsgInsufficientPointsError
	case errors.Is(err, domain.ErrNodeUnreachable):
		return http.StatusBadRequest, ErrMsgNodeUnreachableError
	case errors.Is(err, domain.ErrNoRespecTokens):
		return http.StatusBadRequest, ErrMsgNoRespecTokensError
	case errors.Is(err, domain.ErrInvalidStatCode):
		return http.StatusBadRequest, ErrMsgInvalidStatCodeErr
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
