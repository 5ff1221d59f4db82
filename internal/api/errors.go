package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// ErrorCode represents machine-readable error codes
type ErrorCode string

const (
	// General error codes
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidJSON  ErrorCode = "INVALID_JSON"

	// Validation error codes
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidAircraft ErrorCode = "INVALID_AIRCRAFT"

	// Parse error codes mirror the parser's ErrorKind values so API
	// clients see the same taxonomy as library consumers.
	ErrCodeParseFailed ErrorCode = "PARSE_FAILED"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	Error     string            `json:"error"`                // HTTP status text
	Message   string            `json:"message"`              // Human-readable description
	Code      ErrorCode         `json:"code"`                 // Machine-readable error code
	Fields    map[string]string `json:"fields,omitempty"`     // Field-level errors
	RequestID string            `json:"request_id,omitempty"` // Request ID for debugging
}

// NewErrorResponse creates a new error response
func NewErrorResponse(statusCode int, code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    code,
	}
}

// WithFields adds field-level errors to the response
func (e *ErrorResponse) WithFields(fields map[string]string) *ErrorResponse {
	e.Fields = fields
	return e
}

// writeErrorResponse writes a structured error response to the http response writer
func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, errResp *ErrorResponse) {
	// Add request ID from chi middleware if available
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		errResp.RequestID = reqID
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errResp)
}

// BadRequestError creates a bad request error response
func BadRequestError(w http.ResponseWriter, r *http.Request, code ErrorCode, message string) {
	writeErrorResponse(w, r, http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, code, message))
}

// UnauthorizedError creates an unauthorized error response
func UnauthorizedError(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorResponse(w, r, http.StatusUnauthorized, NewErrorResponse(http.StatusUnauthorized, ErrCodeUnauthorized, message))
}

// ForbiddenError creates a forbidden error response
func ForbiddenError(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorResponse(w, r, http.StatusForbidden, NewErrorResponse(http.StatusForbidden, ErrCodeForbidden, message))
}

// NotFoundError creates a not found error response
func NotFoundError(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorResponse(w, r, http.StatusNotFound, NewErrorResponse(http.StatusNotFound, ErrCodeNotFound, message))
}

// InternalError creates an internal server error response
func InternalError(w http.ResponseWriter, r *http.Request, message string) {
	writeErrorResponse(w, r, http.StatusInternalServerError, NewErrorResponse(http.StatusInternalServerError, ErrCodeInternal, message))
}

// UnprocessableError reports a document that was received but could not
// be parsed; code carries the parse error kind.
func UnprocessableError(w http.ResponseWriter, r *http.Request, code ErrorCode, message string, fields map[string]string) {
	errResp := NewErrorResponse(http.StatusUnprocessableEntity, code, message).WithFields(fields)
	writeErrorResponse(w, r, http.StatusUnprocessableEntity, errResp)
}
