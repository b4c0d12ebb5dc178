package chi

import (
	"errors"
	"net/http"

	"github.com/kailas-cloud/hireboard/internal/domain"
)

// ErrorCode is the machine-readable error kind in API error bodies.
type ErrorCode string

// API error codes.
const (
	CodeBadRequest         ErrorCode = "bad_request"
	CodeInvalidQuery       ErrorCode = "invalid_query"
	CodeValidationFailed   ErrorCode = "validation_failed"
	CodeCollectionNotFound ErrorCode = "collection_not_found"
	CodeRecordNotFound     ErrorCode = "record_not_found"
	CodeUnauthorized       ErrorCode = "unauthorized"
	CodeInternalError      ErrorCode = "internal_error"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		fieldErrorHandler,
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, CodeValidationFailed),
		detailHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidQuery),
		sentinelHandler(domain.ErrUnknownCollection, http.StatusNotFound, CodeCollectionNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeRecordNotFound),
	}
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRecord,
		domain.ErrInvalidQuery,
		domain.ErrUnknownCollection,
		domain.ErrNotFound,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// detailHandler is sentinelHandler for errors whose full text is built from
// request input only and is safe to echo.
func detailHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, _ string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

// fieldErrorHandler reports which field an insert was rejected on.
func fieldErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var fe *domain.FieldError
	if !errors.As(err, &fe) {
		return false
	}
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: fe.Error(),
		Field:   fe.Field,
	})
	return true
}
