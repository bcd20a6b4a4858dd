package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different classes of failures
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeAPI        ErrorType = "api"
	ErrorTypeParse      ErrorType = "parse"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  fmt.Sprintf("%s:%d", file, line),
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   fmt.Sprintf("%s:%d", file, line),
		Context:  make(map[string]interface{}),
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle logs an error according to its type. Storage and parse failures
// have a degraded-but-working fallback and log as warnings; everything else
// is an error.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
		return
	}

	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeStorage, ErrorTypeParse:
		h.logger.WarnContext(ctx, "Recovered error", appErr.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Critical error", appErr.LogFields()...)
	}
}

// LogAndReturn logs an error and returns it
func (h *Handler) LogAndReturn(ctx context.Context, err error) error {
	h.Handle(ctx, err)
	return err
}

// Convenience constructors for the failure classes the app actually hits.

// NewStorageReadError marks a malformed or unreadable persisted record. The
// caller recovers by treating the value as absent.
func NewStorageReadError(err error, key string) *AppError {
	return Wrap(err, ErrorTypeStorage, "STORAGE_READ", "Failed to read persisted record").
		WithContext("key", key)
}

// NewStorageWriteError marks a dropped write. No retry is attempted.
func NewStorageWriteError(err error, key string) *AppError {
	return Wrap(err, ErrorTypeStorage, "STORAGE_WRITE", "Failed to persist record").
		WithContext("key", key)
}

// NewNetworkError marks an unreachable or timed-out generation endpoint.
func NewNetworkError(err error) *AppError {
	return Wrap(err, ErrorTypeNetwork, "NETWORK", "Model endpoint unreachable")
}

// NewAPIError marks a non-success response from the generation endpoint.
func NewAPIError(err error, provider string) *AppError {
	return Wrap(err, ErrorTypeAPI, "API", fmt.Sprintf("%s API error", provider)).
		WithContext("provider", provider)
}

// NewControlParseError marks malformed JSON inside control markers. The reply
// is still shown; no directives are applied.
func NewControlParseError(err error) *AppError {
	return Wrap(err, ErrorTypeParse, "CONTROL_PARSE", "Malformed control block")
}

// NewClassificationError marks a failed AI-assisted categorization. The
// caller falls back to unknown.
func NewClassificationError(err error, exercise string) *AppError {
	return Wrap(err, ErrorTypeParse, "CLASSIFY_AI", "AI classification failed").
		WithContext("exercise", exercise)
}
