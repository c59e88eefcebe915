package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/MJE43/maze-arcade-go/internal/maze"
	"github.com/MJE43/maze-arcade-go/internal/service"
	"github.com/MJE43/maze-arcade-go/internal/store"
)

// ErrorBuilder helps construct structured errors with context
type ErrorBuilder struct {
	errType   string
	message   string
	context   map[string]interface{}
	requestID string
}

// NewError creates a new error builder
func NewError(errType, message string) *ErrorBuilder {
	return &ErrorBuilder{
		errType: errType,
		message: message,
		context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (eb *ErrorBuilder) WithContext(key string, value interface{}) *ErrorBuilder {
	eb.context[key] = value
	return eb
}

// WithRequestID adds request ID to the error
func (eb *ErrorBuilder) WithRequestID(requestID string) *ErrorBuilder {
	eb.requestID = requestID
	return eb
}

// Build creates the final APIError
func (eb *ErrorBuilder) Build() APIError {
	var ctx map[string]interface{}
	if len(eb.context) > 0 {
		ctx = eb.context
	}
	return APIError{
		OK:        false,
		Type:      eb.errType,
		Message:   eb.message,
		Context:   ctx,
		RequestID: eb.requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *logrus.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleError classifies err and writes the matching response. Storage and
// internal failures are logged with their cause but reported generically.
func (eh *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetReqID(r.Context())

	var apiErr APIError
	if errors.As(err, &apiErr) {
		eh.respond(w, r, statusFor(apiErr.Type), apiErr, nil)
		return
	}

	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		eh.HandleValidationError(w, r, ve.Field, ve.Message)
		return

	case errors.Is(err, maze.ErrInvalidDimensions):
		apiErr = NewError(ErrTypeInvalidParams, err.Error()).
			WithRequestID(requestID).
			Build()
		eh.respond(w, r, http.StatusBadRequest, apiErr, nil)
		return

	case errors.Is(err, context.DeadlineExceeded):
		eh.HandleTimeoutError(w, r, r.URL.Path)
		return

	case errors.Is(err, store.ErrStorage):
		apiErr = NewError(ErrTypeStorage, "Storage unavailable").
			WithRequestID(requestID).
			Build()
		eh.respond(w, r, http.StatusInternalServerError, apiErr, err)
		return
	}

	apiErr = NewError(ErrTypeInternal, "Internal server error").
		WithRequestID(requestID).
		Build()
	eh.respond(w, r, http.StatusInternalServerError, apiErr, err)
}

// HandleValidationError handles validation-specific errors
func (eh *ErrorHandler) HandleValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	apiErr := NewError(ErrTypeValidation, fmt.Sprintf("Validation failed: %s %s", field, message)).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("field", field).
		Build()

	eh.respond(w, r, http.StatusBadRequest, apiErr, nil)
}

// HandleTimeoutError handles timeout-specific errors
func (eh *ErrorHandler) HandleTimeoutError(w http.ResponseWriter, r *http.Request, operation string) {
	apiErr := NewError(ErrTypeTimeout, fmt.Sprintf("Operation timed out: %s", operation)).
		WithRequestID(middleware.GetReqID(r.Context())).
		WithContext("operation", operation).
		Build()

	eh.respond(w, r, http.StatusRequestTimeout, apiErr, nil)
}

func (eh *ErrorHandler) respond(w http.ResponseWriter, r *http.Request, status int, apiErr APIError, cause error) {
	eh.logError(r, apiErr, status, cause)
	eh.writeErrorResponse(w, status, apiErr)
}

// logError logs the error with appropriate level and context
func (eh *ErrorHandler) logError(r *http.Request, apiErr APIError, status int, cause error) {
	category := GetErrorCategory(apiErr.Type)

	fields := logrus.Fields{
		"type":       apiErr.Type,
		"category":   category,
		"status":     status,
		"request_id": apiErr.RequestID,
		"method":     r.Method,
		"path":       r.URL.Path,
		"remote_ip":  r.RemoteAddr,
	}
	for key, value := range apiErr.Context {
		fields[key] = value
	}
	entry := eh.logger.WithFields(fields)
	if cause != nil {
		entry = entry.WithError(cause)
	}

	if category == CategoryValidation {
		entry.Warn(apiErr.Message)
		return
	}
	entry.Error(apiErr.Message)
}

// writeErrorResponse writes the error response as JSON
func (eh *ErrorHandler) writeErrorResponse(w http.ResponseWriter, status int, apiErr APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Maze-Version", Version)
	w.Header().Set("X-Error-Type", apiErr.Type)
	w.Header().Set("X-Error-Category", string(GetErrorCategory(apiErr.Type)))
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		eh.logger.WithError(err).Error("failed to encode error response")
	}
}

// RecoveryHandler provides panic recovery with structured error logging
func (eh *ErrorHandler) RecoveryHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}
				requestID := middleware.GetReqID(r.Context())

				eh.logger.WithFields(logrus.Fields{
					"request_id": requestID,
					"path":       r.URL.Path,
					"method":     r.Method,
					"panic":      fmt.Sprintf("%v", rvr),
				}).Error("panic recovered")

				apiErr := NewError(ErrTypeInternal, "Internal server error").
					WithRequestID(requestID).
					Build()

				eh.writeErrorResponse(w, http.StatusInternalServerError, apiErr)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func statusFor(errType string) int {
	switch GetErrorCategory(errType) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryTimeout:
		return http.StatusRequestTimeout
	}
	if errType == ErrTypeServiceUnavailable {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
