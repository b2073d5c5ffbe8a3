package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// AppError represents an application error
type AppError struct {
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	HTTPStatus int       `json:"-"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	Path       string    `json:"path,omitempty"`
	Method     string    `json:"method,omitempty"`
	Redirect   Page      `json:"redirect,omitempty"`
	Err        error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(code, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Timestamp:  time.Now(),
		Err:        err,
	}
}

// WithRedirect attaches the page the client session was moved to
func (e *AppError) WithRedirect(page Page) *AppError {
	e.Redirect = page
	return e
}

// WithDetails attaches a human-readable detail string
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewValidationError creates a validation error
func NewValidationError(field, message string) *AppError {
	return NewAppError(
		"VALIDATION_ERROR",
		fmt.Sprintf("Validation failed for field '%s': %s", field, message),
		http.StatusBadRequest,
		nil,
	)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Unauthorized access"
	}
	return NewAppError(
		"UNAUTHORIZED",
		message,
		http.StatusUnauthorized,
		nil,
	)
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return NewAppError(
		"FORBIDDEN",
		message,
		http.StatusForbidden,
		nil,
	)
}

// NewInternalError creates an internal server error
func NewInternalError(message string, err error) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return NewAppError(
		"INTERNAL_ERROR",
		message,
		http.StatusInternalServerError,
		err,
	)
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, err error) *AppError {
	return NewAppError(
		"DATABASE_ERROR",
		fmt.Sprintf("Database operation failed: %s", operation),
		http.StatusInternalServerError,
		err,
	)
}

// NewExternalServiceError creates an external service error
func NewExternalServiceError(service, operation string, err error) *AppError {
	return NewAppError(
		"EXTERNAL_SERVICE_ERROR",
		fmt.Sprintf("External service '%s' operation '%s' failed", service, operation),
		http.StatusServiceUnavailable,
		err,
	)
}

// NewBusinessRuleError creates an error for a rejected precondition.
// The message is the user-facing toast text.
func NewBusinessRuleError(code, message string, httpStatus int) *AppError {
	return NewAppError(code, message, httpStatus, nil)
}

// NewBackendError wraps a failed backend or auth call. The message follows
// the "Error in <context>: <cause>" format surfaced to the session toast.
// An AppError cause keeps its code and status.
func NewBackendError(context string, err error) *AppError {
	code := ErrCodeBackendWrite
	status := http.StatusBadGateway
	cause := "unknown error"
	if err != nil {
		cause = err.Error()
	}
	if appErr, ok := IsAppError(err); ok {
		code, status, cause = appErr.Code, appErr.HTTPStatus, appErr.Message
	} else if be, ok := IsBackendError(err); ok {
		cause = be.Message
		if be.Is4xxError() {
			status = http.StatusUnprocessableEntity
		}
	}
	return NewAppError(code, fmt.Sprintf("Error in %s: %s", context, cause), status, err)
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Error   *AppError `json:"error"`
	Success bool      `json:"success"`
}

// NewErrorResponse creates a new error response
func NewErrorResponse(err *AppError) ErrorResponse {
	return ErrorResponse{
		Error:   err,
		Success: false,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Error codes for different categories of errors
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenMissing       = "TOKEN_MISSING"
	ErrCodeNotAuthenticated   = "NOT_AUTHENTICATED"
	ErrCodeEmailNotConfirmed  = "EMAIL_NOT_CONFIRMED"

	ErrCodeProfileNotFound     = "PROFILE_NOT_FOUND"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"

	ErrCodeTournamentNotFound = "TOURNAMENT_NOT_FOUND"
	ErrCodeAlreadyJoined      = "ALREADY_JOINED"
	ErrCodeTournamentFull     = "TOURNAMENT_FULL"

	ErrCodeInvalidStatus      = "INVALID_STATUS"
	ErrCodeInvalidAmount      = "INVALID_AMOUNT"
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"

	ErrCodeRequiredField = "REQUIRED_FIELD"
	ErrCodeInvalidFormat = "INVALID_FORMAT"
	ErrCodeInvalidRange  = "INVALID_RANGE"

	ErrCodeBackendWrite    = "BACKEND_ERROR"
	ErrCodeStorageDisabled = "STORAGE_DISABLED"
)
