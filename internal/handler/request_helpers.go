package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/averyk/lifequest/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written
// and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves and validates a required query parameter from the request.
// If the parameter is missing or empty, it writes an error response and returns false.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	log := logger.FromContext(r.Context())
	value := r.URL.Query().Get(paramName)
	if value == "" {
		log.Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, paramName))
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter from the request.
// Unlike GetQueryParam, this does not write an error response if the parameter is missing.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetUUIDQueryParam retrieves a required query parameter and parses it as a UUID.
// On a missing or malformed value the error response is already written.
func GetUUIDQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (uuid.UUID, bool) {
	value, ok := GetQueryParam(r, w, paramName)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(value)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid UUID parameter", "param", paramName, "value", value)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidUUIDParam, paramName))
		return uuid.Nil, false
	}
	return id, true
}

// GetIntQueryParam parses an optional non-negative integer query parameter.
// A missing parameter yields the default; a malformed one writes a 400.
func GetIntQueryParam(r *http.Request, w http.ResponseWriter, paramName string, defaultValue int, errMsg string) (int, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue, true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		logger.FromContext(r.Context()).Warn("Invalid integer parameter", "param", paramName, "value", value)
		respondError(w, http.StatusBadRequest, errMsg)
		return 0, false
	}
	return n, true
}

// GetTimeQueryParam retrieves a required RFC 3339 timestamp query parameter.
func GetTimeQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (time.Time, bool) {
	value, ok := GetQueryParam(r, w, paramName)
	if !ok {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		logger.FromContext(r.Context()).Warn("Invalid time parameter", "param", paramName, "value", value)
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidTimeParam, paramName))
		return time.Time{}, false
	}
	return t, true
}
